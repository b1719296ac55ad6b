package payroll

import (
	"go-shien/internal/domain"
	"go-shien/internal/middleware"
	"go-shien/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service, rdb *redis.Client) {
	runs := r.Group("/payroll-runs")
	runs.Use(middleware.AuthMiddleware(), middleware.StaffOnly())
	{
		runs.GET("", middleware.RBACAuthorize(rbacService, "payroll", "read"), h.GetAll)
		runs.GET("/:id", middleware.RBACAuthorize(rbacService, "payroll", "read"), h.GetByID)
		runs.GET("/:id/lines", middleware.RBACAuthorize(rbacService, "payroll", "read"), h.GetLines)
		runs.GET("/:id/export", middleware.RBACAuthorize(rbacService, "payroll", "read"), h.ExportCSV)
		runs.GET("/:id/lines/:lineId/payslip", middleware.RBACAuthorize(rbacService, "payroll", "read"), h.DownloadPayslip)

		elevated := middleware.RoleMiddleware(domain.RoleAdmin, domain.RoleManager)
		runs.POST("",
			elevated,
			middleware.RBACAuthorize(rbacService, "payroll", "create"),
			middleware.Idempotency(rdb),
			h.CreateRun,
		)
		runs.POST("/:id/confirm", elevated, middleware.RBACAuthorize(rbacService, "payroll", "update"), h.Confirm)
		runs.POST("/:id/mark-paid", elevated, middleware.RBACAuthorize(rbacService, "payroll", "update"), h.MarkPaid)
		runs.DELETE("/:id", elevated, middleware.RBACAuthorize(rbacService, "payroll", "delete"), h.Delete)
	}
}
