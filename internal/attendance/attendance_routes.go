package attendance

import (
	"go-shien/internal/middleware"
	"go-shien/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service) {
	reports := r.Group("/attendance-reports")
	reports.Use(middleware.AuthMiddleware(), middleware.ClientOnly())
	{
		reports.POST("/check-in", h.CheckIn)
		reports.POST("/check-out", h.CheckOut)
		reports.GET("", h.GetMyReports)
	}

	confirmations := r.Group("/attendance-confirmations")
	confirmations.Use(middleware.AuthMiddleware(), middleware.StaffOnly())
	{
		confirmations.GET("", middleware.RBACAuthorize(rbacService, "attendance", "read"), h.GetConfirmations)
		confirmations.PUT("", middleware.RBACAuthorize(rbacService, "attendance", "confirm"), h.Confirm)
	}
}
