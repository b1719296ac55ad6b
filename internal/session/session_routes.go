package session

import (
	"go-shien/internal/middleware"
	"go-shien/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service) {
	sessions := r.Group("/interview-sessions")
	sessions.Use(middleware.AuthMiddleware(), middleware.StaffOnly())
	{
		read := middleware.RBACAuthorize(rbacService, "interview_session", "read")
		write := middleware.RBACAuthorize(rbacService, "interview_session", "update")

		sessions.GET("", read, h.GetAll)
		sessions.GET("/:id", read, h.GetByID)
		sessions.GET("/:id/media", read, h.GetMediaAssets)
		sessions.GET("/:id/transcripts", read, h.GetTranscripts)
		sessions.GET("/:id/summaries", read, h.GetSummaries)
		sessions.GET("/:id/extractions", read, h.GetExtractions)

		sessions.POST("", middleware.RBACAuthorize(rbacService, "interview_session", "create"), h.Create)
		sessions.PUT("/:id", write, h.Update)
		sessions.DELETE("/:id", middleware.RBACAuthorize(rbacService, "interview_session", "delete"), h.Delete)

		sessions.POST("/:id/transitions", write, h.Transition)
		sessions.PUT("/:id/consents", write, h.UpdateConsents)
		sessions.POST("/:id/media", write, h.UploadMedia)
		sessions.POST("/:id/transcripts", write, h.RequestTranscription)
		sessions.POST("/:id/summaries", write, h.CreateSummary)
		sessions.POST("/:id/extractions", write, h.CreateExtraction)
	}
}
