package attendance_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-shien/internal/attendance"
	attendanceerrors "go-shien/internal/attendance/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeService struct {
	checkInFn          func(ctx context.Context, organizationID, clientID string, req attendance.CheckInRequest) (attendance.ReportResponse, error)
	checkOutFn         func(ctx context.Context, organizationID, clientID string, req attendance.CheckOutRequest) (attendance.ReportResponse, error)
	getMyReportsFn     func(ctx context.Context, organizationID, clientID, month string) ([]attendance.ReportResponse, error)
	confirmFn          func(ctx context.Context, organizationID, staffID string, req attendance.ConfirmRequest) (attendance.ConfirmationResponse, error)
	getConfirmationsFn func(ctx context.Context, organizationID, clientID, month string) ([]attendance.ConfirmationResponse, error)
}

func (f *fakeService) CheckIn(ctx context.Context, organizationID, clientID string, req attendance.CheckInRequest) (attendance.ReportResponse, error) {
	return f.checkInFn(ctx, organizationID, clientID, req)
}

func (f *fakeService) CheckOut(ctx context.Context, organizationID, clientID string, req attendance.CheckOutRequest) (attendance.ReportResponse, error) {
	return f.checkOutFn(ctx, organizationID, clientID, req)
}

func (f *fakeService) GetMyReports(ctx context.Context, organizationID, clientID, month string) ([]attendance.ReportResponse, error) {
	return f.getMyReportsFn(ctx, organizationID, clientID, month)
}

func (f *fakeService) Confirm(ctx context.Context, organizationID, staffID string, req attendance.ConfirmRequest) (attendance.ConfirmationResponse, error) {
	return f.confirmFn(ctx, organizationID, staffID, req)
}

func (f *fakeService) GetConfirmations(ctx context.Context, organizationID, clientID, month string) ([]attendance.ConfirmationResponse, error) {
	return f.getConfirmationsFn(ctx, organizationID, clientID, month)
}

func TestHandler_CheckIn(t *testing.T) {
	gin.SetMode(gin.TestMode)
	organizationID := uuid.NewString()
	clientID := uuid.NewString()

	svc := &fakeService{
		checkInFn: func(ctx context.Context, orgID, cID string, req attendance.CheckInRequest) (attendance.ReportResponse, error) {
			assert.Equal(t, organizationID, orgID)
			assert.Equal(t, clientID, cID)
			return attendance.ReportResponse{ID: uuid.NewString(), ClientID: cID}, nil
		},
	}
	h := attendance.NewHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("organization_id", organizationID)
	c.Set("client_id", clientID)
	c.Request = httptest.NewRequest(http.MethodPost, "/attendance-reports/check-in", strings.NewReader(`{}`))
	c.Request.Header.Set("Content-Type", "application/json")

	h.CheckIn(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"ok":true`)
}

func TestHandler_CheckInConflict(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := &fakeService{
		checkInFn: func(ctx context.Context, orgID, cID string, req attendance.CheckInRequest) (attendance.ReportResponse, error) {
			return attendance.ReportResponse{}, attendanceerrors.ErrAlreadyCheckedIn
		},
	}
	h := attendance.NewHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("organization_id", uuid.NewString())
	c.Set("client_id", uuid.NewString())
	c.Request = httptest.NewRequest(http.MethodPost, "/attendance-reports/check-in", strings.NewReader(`{}`))
	c.Request.Header.Set("Content-Type", "application/json")

	h.CheckIn(c)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), `"ok":false`)
}

func TestHandler_GetConfirmations(t *testing.T) {
	gin.SetMode(gin.TestMode)
	organizationID := uuid.NewString()

	svc := &fakeService{
		getConfirmationsFn: func(ctx context.Context, orgID, clientID, month string) ([]attendance.ConfirmationResponse, error) {
			assert.Equal(t, organizationID, orgID)
			assert.Equal(t, "2026-08", month)
			return []attendance.ConfirmationResponse{{ID: uuid.NewString()}, {ID: uuid.NewString()}}, nil
		},
	}
	h := attendance.NewHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("organization_id", organizationID)
	c.Request = httptest.NewRequest(http.MethodGet, "/attendance-confirmations?month=2026-08", nil)

	h.GetConfirmations(c)

	assert.Equal(t, http.StatusOK, w.Code)
}
