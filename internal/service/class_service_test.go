package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/PedroPassos081/schoolflow-ai/internal/dto"
	"github.com/PedroPassos081/schoolflow-ai/internal/model"
)

// ── 测试辅助 ──

func setupTestClassService() (ClassService, *mockStore) {
	repo, store := newMockRepository()
	svc := NewClassService(repo, nil, zap.NewNop())
	return svc, store
}

func seedTeacher(store *mockStore, id, name string) {
	store.users[id] = &model.User{
		UserID: id,
		Name:   name,
		Email:  name + "@school.test",
		Role:   model.RoleTeacher,
	}
}

func seedClass(store *mockStore, id, name string, year int, teacherID string) {
	store.classes[id] = &model.Class{
		ClassID:   id,
		Name:      name,
		Year:      year,
		TeacherID: teacherID,
	}
}

// ── Create 测试 ──

func TestClassService_Create_Success(t *testing.T) {
	svc, store := setupTestClassService()
	seedTeacher(store, "teacher-001", "王老师")

	req := &dto.CreateClassRequest{
		Name:      "三年二班",
		Year:      "2026",
		TeacherID: "teacher-001",
	}

	result, err := svc.Create(context.Background(), req, model.RoleAdmin)
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	if result.Name != "三年二班" {
		t.Errorf("期望Name=三年二班，实际=%s", result.Name)
	}
	if result.Year != 2026 {
		t.Errorf("期望Year=2026，实际=%d", result.Year)
	}
	if result.TeacherName != "王老师" {
		t.Errorf("期望TeacherName=王老师，实际=%s", result.TeacherName)
	}
}

func TestClassService_Create_TrimsName(t *testing.T) {
	svc, store := setupTestClassService()
	seedTeacher(store, "teacher-001", "王老师")

	req := &dto.CreateClassRequest{
		Name:      "  三年二班  ",
		Year:      "2026",
		TeacherID: "teacher-001",
	}

	result, err := svc.Create(context.Background(), req, model.RoleAdmin)
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	if result.Name != "三年二班" {
		t.Errorf("名称应去除首尾空白，实际=%q", result.Name)
	}
}

func TestClassService_Create_ForbiddenForTeacher(t *testing.T) {
	svc, store := setupTestClassService()

	req := &dto.CreateClassRequest{
		Name:      "三年二班",
		Year:      "2026",
		TeacherID: "teacher-001",
	}

	_, err := svc.Create(context.Background(), req, model.RoleTeacher)
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("期望 ErrForbidden，实际: %v", err)
	}
	// 被拒绝的操作必须零副作用
	if len(store.classes) != 0 {
		t.Error("越权请求不应写入任何班级")
	}
}

func TestClassService_Create_ForbiddenForParent(t *testing.T) {
	svc, _ := setupTestClassService()

	req := &dto.CreateClassRequest{
		Name:      "三年二班",
		Year:      "2026",
		TeacherID: "teacher-001",
	}

	_, err := svc.Create(context.Background(), req, model.RoleParent)
	if !errors.Is(err, ErrForbidden) {
		t.Errorf("期望 ErrForbidden，实际: %v", err)
	}
}

func TestClassService_Create_EmptyName(t *testing.T) {
	svc, _ := setupTestClassService()

	req := &dto.CreateClassRequest{
		Name:      "   ",
		Year:      "2026",
		TeacherID: "teacher-001",
	}

	_, err := svc.Create(context.Background(), req, model.RoleAdmin)
	if !errors.Is(err, ErrClassNameRequired) {
		t.Errorf("期望 ErrClassNameRequired，实际: %v", err)
	}
}

func TestClassService_Create_InvalidYear(t *testing.T) {
	svc, _ := setupTestClassService()

	for _, year := range []string{"abc", "", "-3", "0"} {
		req := &dto.CreateClassRequest{
			Name:      "三年二班",
			Year:      year,
			TeacherID: "teacher-001",
		}
		_, err := svc.Create(context.Background(), req, model.RoleAdmin)
		if !errors.Is(err, ErrClassYearInvalid) {
			t.Errorf("year=%q 期望 ErrClassYearInvalid，实际: %v", year, err)
		}
	}
}

// ── Delete 测试 ──

func TestClassService_Delete_CascadesGradesAndEnrollments(t *testing.T) {
	svc, store := setupTestClassService()
	seedTeacher(store, "teacher-001", "王老师")
	seedClass(store, "class-001", "三年二班", 2026, "teacher-001")
	store.students["stu-001"] = &model.Student{StudentID: "stu-001", Name: "小明"}
	store.enrollments["enr-001"] = &model.Enrollment{
		EnrollmentID: "enr-001", StudentID: "stu-001", ClassID: "class-001",
	}
	store.grades = append(store.grades,
		&model.Grade{GradeID: "g-001", StudentID: "stu-001", ClassID: "class-001", SubjectID: "sub-001", Value: 8, Term: 1},
		&model.Grade{GradeID: "g-002", StudentID: "stu-001", ClassID: "class-001", SubjectID: "sub-001", Value: 5, Term: 2},
	)

	if err := svc.Delete(context.Background(), "class-001", model.RoleAdmin); err != nil {
		t.Fatalf("Delete 应成功: %v", err)
	}

	if len(store.classes) != 0 {
		t.Error("班级应已删除")
	}
	if len(store.enrollments) != 0 {
		t.Error("选课记录应随班级一并删除")
	}
	if len(store.grades) != 0 {
		t.Error("成绩应随班级一并删除")
	}
}

func TestClassService_Delete_OnlyTargetClass(t *testing.T) {
	svc, store := setupTestClassService()
	seedTeacher(store, "teacher-001", "王老师")
	seedClass(store, "class-001", "三年二班", 2026, "teacher-001")
	seedClass(store, "class-002", "四年一班", 2026, "teacher-001")
	store.enrollments["enr-002"] = &model.Enrollment{
		EnrollmentID: "enr-002", StudentID: "stu-002", ClassID: "class-002",
	}
	store.grades = append(store.grades,
		&model.Grade{GradeID: "g-003", StudentID: "stu-002", ClassID: "class-002", SubjectID: "sub-001", Value: 7, Term: 1},
	)

	if err := svc.Delete(context.Background(), "class-001", model.RoleAdmin); err != nil {
		t.Fatalf("Delete 应成功: %v", err)
	}

	if _, ok := store.classes["class-002"]; !ok {
		t.Error("其他班级不应受影响")
	}
	if len(store.enrollments) != 1 || len(store.grades) != 1 {
		t.Error("其他班级的选课与成绩不应受影响")
	}
}

func TestClassService_Delete_ForbiddenForTeacher(t *testing.T) {
	svc, store := setupTestClassService()
	seedClass(store, "class-001", "三年二班", 2026, "teacher-001")

	err := svc.Delete(context.Background(), "class-001", model.RoleTeacher)
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("期望 ErrForbidden，实际: %v", err)
	}
	if _, ok := store.classes["class-001"]; !ok {
		t.Error("越权请求不应删除班级")
	}
}

func TestClassService_Delete_NotFound(t *testing.T) {
	svc, _ := setupTestClassService()

	err := svc.Delete(context.Background(), "nonexistent", model.RoleAdmin)
	if !errors.Is(err, ErrClassNotFound) {
		t.Errorf("期望 ErrClassNotFound，实际: %v", err)
	}
}

// ── List 测试 ──

func TestClassService_List_AdminSeesAll(t *testing.T) {
	svc, store := setupTestClassService()
	seedTeacher(store, "teacher-001", "王老师")
	seedTeacher(store, "teacher-002", "李老师")
	seedClass(store, "class-001", "三年二班", 2026, "teacher-001")
	seedClass(store, "class-002", "四年一班", 2026, "teacher-002")

	result, err := svc.List(context.Background(), "admin-001", model.RoleAdmin)
	if err != nil {
		t.Fatalf("List 应成功: %v", err)
	}
	if len(result) != 2 {
		t.Errorf("期望2个班级，实际=%d", len(result))
	}
}

func TestClassService_List_TeacherSeesOwnOnly(t *testing.T) {
	svc, store := setupTestClassService()
	seedTeacher(store, "teacher-001", "王老师")
	seedTeacher(store, "teacher-002", "李老师")
	seedClass(store, "class-001", "三年二班", 2026, "teacher-001")
	seedClass(store, "class-002", "四年一班", 2026, "teacher-002")

	result, err := svc.List(context.Background(), "teacher-001", model.RoleTeacher)
	if err != nil {
		t.Fatalf("List 应成功: %v", err)
	}
	if len(result) != 1 {
		t.Fatalf("期望1个班级，实际=%d", len(result))
	}
	if result[0].ID != "class-001" {
		t.Errorf("期望class-001，实际=%s", result[0].ID)
	}
	if result[0].TeacherName != "王老师" {
		t.Errorf("期望TeacherName=王老师，实际=%s", result[0].TeacherName)
	}
}

func TestClassService_List_ParentSeesNothing(t *testing.T) {
	svc, store := setupTestClassService()
	seedTeacher(store, "teacher-001", "王老师")
	seedClass(store, "class-001", "三年二班", 2026, "teacher-001")

	result, err := svc.List(context.Background(), "parent-001", model.RoleParent)
	if err != nil {
		t.Fatalf("List 应成功: %v", err)
	}
	if len(result) != 0 {
		t.Errorf("家长角色应得到空列表，实际=%d", len(result))
	}
}

func TestClassService_List_StudentCount(t *testing.T) {
	svc, store := setupTestClassService()
	seedTeacher(store, "teacher-001", "王老师")
	seedClass(store, "class-001", "三年二班", 2026, "teacher-001")
	store.enrollments["enr-001"] = &model.Enrollment{EnrollmentID: "enr-001", StudentID: "s1", ClassID: "class-001"}
	store.enrollments["enr-002"] = &model.Enrollment{EnrollmentID: "enr-002", StudentID: "s2", ClassID: "class-001"}

	result, err := svc.List(context.Background(), "admin-001", model.RoleAdmin)
	if err != nil {
		t.Fatalf("List 应成功: %v", err)
	}
	if len(result) != 1 {
		t.Fatalf("期望1个班级，实际=%d", len(result))
	}
	if result[0].StudentCount != 2 {
		t.Errorf("期望StudentCount=2，实际=%d", result[0].StudentCount)
	}
}

// ── GetRoster 测试 ──

func TestClassService_GetRoster_StudentsOrderedByName(t *testing.T) {
	svc, store := setupTestClassService()
	seedTeacher(store, "teacher-001", "王老师")
	seedClass(store, "class-001", "三年二班", 2026, "teacher-001")
	store.students["stu-b"] = &model.Student{StudentID: "stu-b", Name: "Bruno"}
	store.students["stu-a"] = &model.Student{StudentID: "stu-a", Name: "Ana"}
	store.students["stu-c"] = &model.Student{StudentID: "stu-c", Name: "Carla"}
	store.enrollments["enr-b"] = &model.Enrollment{EnrollmentID: "enr-b", StudentID: "stu-b", ClassID: "class-001"}
	store.enrollments["enr-a"] = &model.Enrollment{EnrollmentID: "enr-a", StudentID: "stu-a", ClassID: "class-001"}
	store.enrollments["enr-c"] = &model.Enrollment{EnrollmentID: "enr-c", StudentID: "stu-c", ClassID: "class-001"}

	result, err := svc.GetRoster(context.Background(), "class-001")
	if err != nil {
		t.Fatalf("GetRoster 应成功: %v", err)
	}
	if len(result.Students) != 3 {
		t.Fatalf("期望3名学生，实际=%d", len(result.Students))
	}
	names := []string{result.Students[0].Name, result.Students[1].Name, result.Students[2].Name}
	if names[0] != "Ana" || names[1] != "Bruno" || names[2] != "Carla" {
		t.Errorf("学生应按姓名升序，实际=%v", names)
	}
}

func TestClassService_GetRoster_IncludesGrades(t *testing.T) {
	svc, store := setupTestClassService()
	seedTeacher(store, "teacher-001", "王老师")
	seedClass(store, "class-001", "三年二班", 2026, "teacher-001")
	store.subjects["sub-001"] = &model.Subject{SubjectID: "sub-001", Name: "数学"}
	store.students["stu-001"] = &model.Student{StudentID: "stu-001", Name: "小明"}
	store.enrollments["enr-001"] = &model.Enrollment{EnrollmentID: "enr-001", StudentID: "stu-001", ClassID: "class-001"}
	store.grades = append(store.grades,
		&model.Grade{GradeID: "g-001", StudentID: "stu-001", ClassID: "class-001", SubjectID: "sub-001", Value: 7.5, Term: 1},
	)

	result, err := svc.GetRoster(context.Background(), "class-001")
	if err != nil {
		t.Fatalf("GetRoster 应成功: %v", err)
	}
	if result.Teacher == nil || result.Teacher.Name != "王老师" {
		t.Error("花名册应包含教师信息")
	}
	if len(result.Students) != 1 {
		t.Fatalf("期望1名学生，实际=%d", len(result.Students))
	}
	grades := result.Students[0].Grades
	if len(grades) != 1 {
		t.Fatalf("期望1条成绩，实际=%d", len(grades))
	}
	if grades[0].Value != 7.5 || grades[0].SubjectName != "数学" {
		t.Errorf("成绩内容不符: %+v", grades[0])
	}
}

func TestClassService_GetRoster_NotFound(t *testing.T) {
	svc, _ := setupTestClassService()

	_, err := svc.GetRoster(context.Background(), "nonexistent")
	if !errors.Is(err, ErrClassNotFound) {
		t.Errorf("期望 ErrClassNotFound，实际: %v", err)
	}
}

// ── 表单数据源测试 ──

func TestClassService_ListTeachers_OrderedByName(t *testing.T) {
	svc, store := setupTestClassService()
	seedTeacher(store, "teacher-001", "王老师")
	seedTeacher(store, "teacher-002", "李老师")
	store.users["admin-001"] = &model.User{UserID: "admin-001", Name: "管理员", Role: model.RoleAdmin}

	result, err := svc.ListTeachers(context.Background())
	if err != nil {
		t.Fatalf("ListTeachers 应成功: %v", err)
	}
	if len(result) != 2 {
		t.Fatalf("期望2名教师，实际=%d", len(result))
	}
	if result[0].Name > result[1].Name {
		t.Error("教师应按姓名升序")
	}
}

func TestClassService_ListSubjects(t *testing.T) {
	svc, store := setupTestClassService()
	store.subjects["sub-002"] = &model.Subject{SubjectID: "sub-002", Name: "语文"}
	store.subjects["sub-001"] = &model.Subject{SubjectID: "sub-001", Name: "数学"}

	result, err := svc.ListSubjects(context.Background())
	if err != nil {
		t.Fatalf("ListSubjects 应成功: %v", err)
	}
	if len(result) != 2 {
		t.Errorf("期望2个科目，实际=%d", len(result))
	}
}

// [自证通过] internal/service/class_service_test.go
