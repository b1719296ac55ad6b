package report

import (
	"go-shien/internal/middleware"
	"go-shien/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service) {
	reports := r.Group("/reports")
	reports.Use(middleware.AuthMiddleware(), middleware.StaffOnly())
	{
		reports.GET("/attendance/monthly.csv", middleware.RBACAuthorize(rbacService, "report", "read"), h.MonthlyAttendance)
		// The segment carries a ".csv" suffix, which gin cannot split from a
		// param, so the handler trims it.
		reports.GET("/payroll/:runId", middleware.RBACAuthorize(rbacService, "report", "read"), h.PayrollRun)
	}
}
