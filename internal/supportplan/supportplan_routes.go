package supportplan

import (
	"go-shien/internal/middleware"
	"go-shien/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service) {
	plans := r.Group("/support-plans")
	plans.Use(middleware.AuthMiddleware(), middleware.StaffOnly())
	{
		plans.GET("", middleware.RBACAuthorize(rbacService, "support_plan", "read"), h.GetAll)
		plans.GET("/:id", middleware.RBACAuthorize(rbacService, "support_plan", "read"), h.GetByID)
		plans.GET("/:id/monitoring-sessions", middleware.RBACAuthorize(rbacService, "support_plan", "read"), h.GetMonitoringSessions)
		plans.POST("", middleware.RBACAuthorize(rbacService, "support_plan", "create"), h.Create)
		plans.PUT("/:id", middleware.RBACAuthorize(rbacService, "support_plan", "update"), h.Update)
		plans.DELETE("/:id", middleware.RBACAuthorize(rbacService, "support_plan", "delete"), h.Delete)
	}
}
