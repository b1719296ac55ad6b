package rbac

import (
	"net/http"
	"strings"

	"go-shien/internal/domain"
	"go-shien/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// Enforce answers a policy question directly. Internal tooling uses it to
// debug grants without replaying a full API request.
func (h *Handler) Enforce(c *gin.Context) {
	var req EnforceRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", err.Error())
		return
	}

	req.ActorID = strings.TrimSpace(req.ActorID)
	req.OrganizationID = strings.TrimSpace(req.OrganizationID)
	req.Resource = strings.TrimSpace(req.Resource)
	req.Action = strings.TrimSpace(req.Action)

	if req.ActorID == "" || req.OrganizationID == "" || req.Resource == "" || req.Action == "" {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "actor_id, organization_id, resource, and action are required", nil)
		return
	}

	allowed, err := h.service.Enforce(domain.EnforceRequest{
		ActorID:        req.ActorID,
		OrganizationID: req.OrganizationID,
		Resource:       req.Resource,
		Action:         req.Action,
	})
	if err != nil {
		zap.L().Named("rbac.handler").Error("enforce failed", zap.Error(err))
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error(), nil)
		return
	}

	response.Success(c, http.StatusOK, EnforceResponse{
		Allowed: allowed,
	}, nil)
}
