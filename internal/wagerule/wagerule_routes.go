package wagerule

import (
	"go-shien/internal/domain"
	"go-shien/internal/middleware"
	"go-shien/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service) {
	rules := r.Group("/wage-rules")
	rules.Use(middleware.AuthMiddleware(), middleware.StaffOnly())
	{
		rules.GET("", middleware.RBACAuthorize(rbacService, "wage_rule", "read"), h.GetAll)
		rules.GET("/:id", middleware.RBACAuthorize(rbacService, "wage_rule", "read"), h.GetByID)

		// pricing policy edits need an elevated role on top of the permission
		elevated := middleware.RoleMiddleware(domain.RoleAdmin, domain.RoleManager)
		rules.POST("", elevated, middleware.RBACAuthorize(rbacService, "wage_rule", "create"), h.Create)
		rules.PUT("/:id", elevated, middleware.RBACAuthorize(rbacService, "wage_rule", "update"), h.Update)
		rules.DELETE("/:id", elevated, middleware.RBACAuthorize(rbacService, "wage_rule", "delete"), h.Delete)
	}
}
