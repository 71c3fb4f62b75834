package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/PedroPassos081/schoolflow-ai/config"
	"github.com/PedroPassos081/schoolflow-ai/internal/api/handler"
	"github.com/PedroPassos081/schoolflow-ai/internal/api/middleware"
	"github.com/PedroPassos081/schoolflow-ai/internal/model"
	"github.com/PedroPassos081/schoolflow-ai/pkg/jwt"
	"github.com/PedroPassos081/schoolflow-ai/pkg/redis"
)

// Setup 初始化并返回 Gin 路由引擎
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(1 << 20))

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// 认证模块（无需认证）
		auth := v1.Group("/auth")
		{
			auth.POST("/login", middleware.RateLimit(rdb, 10, time.Minute), h.Auth.Login)
			auth.POST("/refresh", h.Auth.RefreshToken)
		}

		// 需要认证的路由
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, rdb))
		{
			// 认证模块（需要认证）
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.GET("/auth/me", h.Auth.Me)
			authorized.PUT("/auth/password", h.Auth.ChangePassword)

			// 仪表盘模块
			authorized.GET("/dashboard", h.Dashboard.Overview)
			authorized.GET("/dashboard/metrics", middleware.RoleAuth(model.RoleAdmin), h.Dashboard.Metrics)

			// 表单数据源
			authorized.GET("/teachers", middleware.RoleAuth(model.RoleAdmin), h.Class.ListTeachers)
			authorized.GET("/subjects", h.Class.ListSubjects)

			// 班级模块
			classes := authorized.Group("/classes")
			{
				classes.GET("", h.Class.List)
				classes.POST("", middleware.RoleAuth(model.RoleAdmin), h.Class.Create)
				classes.GET("/:id", h.Class.GetRoster)
				classes.DELETE("/:id", middleware.RoleAuth(model.RoleAdmin), h.Class.Delete)

				// 选课模块（路由层只卡角色门槛，细粒度动作鉴权在 Service 层）
				classes.POST("/:id/students",
					middleware.RoleAuth(model.RoleAdmin, model.RoleTeacher), h.Enrollment.AddStudent)
				classes.DELETE("/:id/enrollments/:enrollmentId",
					middleware.RoleAuth(model.RoleAdmin, model.RoleTeacher), h.Enrollment.RemoveStudent)

				// 成绩模块
				classes.POST("/:id/grades",
					middleware.RoleAuth(model.RoleAdmin, model.RoleTeacher), h.Grade.AddGrade)
			}

			// 导出模块
			export := authorized.Group("/export")
			{
				export.GET("/classes/:id/grades",
					middleware.RoleAuth(model.RoleAdmin, model.RoleTeacher), h.Export.ExportClassGrades)
			}
		}
	}

	return r
}

// [自证通过] internal/api/router/router.go
