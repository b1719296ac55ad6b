package dailyreport

import (
	"net/http"

	"go-shien/internal/shared/apperror"
	"go-shien/internal/shared/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

// Create is the client self-service submission.
func (h *Handler) Create(c *gin.Context) {
	organizationID := c.GetString("organization_id")
	clientID := c.GetString("client_id")

	var req CreateDailyReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", err.Error())
		return
	}

	resp, err := h.service.Create(c.Request.Context(), organizationID, clientID, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) GetMine(c *gin.Context) {
	organizationID := c.GetString("organization_id")
	clientID := c.GetString("client_id")
	month := c.DefaultQuery("month", "")

	resp, err := h.service.GetMyReports(c.Request.Context(), organizationID, clientID, month)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

// GetAll is the staff view: by date, or by client and month.
func (h *Handler) GetAll(c *gin.Context) {
	organizationID := c.GetString("organization_id")

	if clientID := c.Query("client_id"); clientID != "" {
		resp, err := h.service.GetByClient(c.Request.Context(), organizationID, clientID, c.Query("month"))
		if err != nil {
			writeServiceError(c, err)
			return
		}
		response.Success(c, http.StatusOK, resp, nil)
		return
	}

	resp, err := h.service.GetByDate(c.Request.Context(), organizationID, c.Query("date"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Comment(c *gin.Context) {
	organizationID := c.GetString("organization_id")
	staffID := c.GetString("user_id")
	id := c.Param("id")

	var req CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", err.Error())
		return
	}

	resp, err := h.service.Comment(c.Request.Context(), organizationID, staffID, id, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}
