package certificate

import (
	"go-shien/internal/middleware"
	"go-shien/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service) {
	certs := r.Group("/certificates")
	certs.Use(middleware.AuthMiddleware(), middleware.StaffOnly())
	{
		certs.GET("", middleware.RBACAuthorize(rbacService, "certificate", "read"), h.GetAll)
		certs.GET("/expiry-report", middleware.RBACAuthorize(rbacService, "certificate", "read"), h.ExpiryReport)
		certs.GET("/:id", middleware.RBACAuthorize(rbacService, "certificate", "read"), h.GetByID)
		certs.POST("", middleware.RBACAuthorize(rbacService, "certificate", "create"), h.Create)
		certs.PUT("/:id", middleware.RBACAuthorize(rbacService, "certificate", "update"), h.Update)
		certs.DELETE("/:id", middleware.RBACAuthorize(rbacService, "certificate", "delete"), h.Delete)
	}
}
