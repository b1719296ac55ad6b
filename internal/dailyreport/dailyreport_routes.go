package dailyreport

import (
	"go-shien/internal/middleware"
	"go-shien/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service) {
	// client self-service
	mine := r.Group("/daily-reports")
	mine.Use(middleware.AuthMiddleware(), middleware.ClientOnly())
	{
		mine.POST("", h.Create)
		mine.GET("/mine", h.GetMine)
	}

	// staff review
	staff := r.Group("/daily-reports")
	staff.Use(middleware.AuthMiddleware(), middleware.StaffOnly())
	{
		staff.GET("", middleware.RBACAuthorize(rbacService, "daily_report", "read"), h.GetAll)
		staff.PUT("/:id/comment", middleware.RBACAuthorize(rbacService, "daily_report", "update"), h.Comment)
	}
}
