package worklog

import (
	"go-shien/internal/middleware"
	"go-shien/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service) {
	logs := r.Group("/work-logs")
	logs.Use(middleware.AuthMiddleware(), middleware.StaffOnly())
	{
		logs.GET("", middleware.RBACAuthorize(rbacService, "work_log", "read"), h.GetByClientAndMonth)
		logs.POST("", middleware.RBACAuthorize(rbacService, "work_log", "create"), h.Create)
		logs.PUT("/:id", middleware.RBACAuthorize(rbacService, "work_log", "update"), h.Update)
		logs.DELETE("/:id", middleware.RBACAuthorize(rbacService, "work_log", "delete"), h.Delete)
	}
}
