package report

import (
	"net/http"
	"strings"
	"time"

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

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) MonthlyAttendance(c *gin.Context) {
	organizationID := c.GetString("organization_id")
	month := c.Query("month")
	if month == "" {
		month = time.Now().UTC().Format("2006-01")
	}

	data, filename, err := h.service.MonthlyAttendanceCSV(c.Request.Context(), organizationID, month)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "text/csv", data)
}

func (h *Handler) PayrollRun(c *gin.Context) {
	organizationID := c.GetString("organization_id")
	runID := strings.TrimSuffix(c.Param("runId"), ".csv")

	data, filename, err := h.service.PayrollRunCSV(c.Request.Context(), organizationID, runID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "text/csv", data)
}
