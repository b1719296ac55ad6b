package attendance

import (
	"context"
	"database/sql"
	"errors"
	"time"

	attendanceerrors "go-shien/internal/attendance/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=attendance_service.go -destination=mock/attendance_service_mock.go -package=mock
type Service interface {
	// client self-service
	CheckIn(ctx context.Context, organizationID, clientID string, req CheckInRequest) (ReportResponse, error)
	CheckOut(ctx context.Context, organizationID, clientID string, req CheckOutRequest) (ReportResponse, error)
	GetMyReports(ctx context.Context, organizationID, clientID, month string) ([]ReportResponse, error)

	// staff
	Confirm(ctx context.Context, organizationID, staffID string, req ConfirmRequest) (ConfirmationResponse, error)
	GetConfirmations(ctx context.Context, organizationID, clientID, month string) ([]ConfirmationResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("attendance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attendance.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

func (s *service) CheckIn(ctx context.Context, organizationID, clientID string, req CheckInRequest) (ReportResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ReportResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	now := time.Now().UTC()
	today := now.Truncate(24 * time.Hour)

	existing, err := qtx.FindReportByClientAndDate(ctx, organizationID, clientID, today)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return ReportResponse{}, err
	}
	if err == nil && existing != nil {
		return ReportResponse{}, attendanceerrors.ErrAlreadyCheckedIn
	}

	row := &AttendanceReport{
		ID:             uuid.New(),
		OrganizationID: uuid.MustParse(organizationID),
		ClientID:       uuid.MustParse(clientID),
		ReportDate:     today,
		CheckInTime:    now,
		Notes:          req.Notes,
	}

	if err := qtx.CreateReport(ctx, row); err != nil {
		return ReportResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return ReportResponse{}, err
	}
	return mapReportToResponse(*row), nil
}

func (s *service) CheckOut(ctx context.Context, organizationID, clientID string, req CheckOutRequest) (ReportResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ReportResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	now := time.Now().UTC()
	today := now.Truncate(24 * time.Hour)

	row, err := qtx.FindReportByClientAndDate(ctx, organizationID, clientID, today)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ReportResponse{}, attendanceerrors.ErrNoCheckIn
		}
		return ReportResponse{}, err
	}
	if row.CheckOutTime != nil {
		return ReportResponse{}, attendanceerrors.ErrAlreadyCheckedOut
	}

	row.CheckOutTime = &now
	if req.Notes != nil {
		row.Notes = req.Notes
	}

	if err := qtx.UpdateReport(ctx, row); err != nil {
		return ReportResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return ReportResponse{}, err
	}
	return mapReportToResponse(*row), nil
}

func (s *service) GetMyReports(ctx context.Context, organizationID, clientID, month string) ([]ReportResponse, error) {
	from, to, err := monthBounds(month)
	if err != nil {
		return nil, err
	}

	rows, err := s.repo.FindReportsByClientAndPeriod(ctx, organizationID, clientID, from, to)
	if err != nil {
		return nil, err
	}

	resp := make([]ReportResponse, len(rows))
	for i, r := range rows {
		resp[i] = mapReportToResponse(r)
	}
	return resp, nil
}

func (s *service) Confirm(ctx context.Context, organizationID, staffID string, req ConfirmRequest) (ConfirmationResponse, error) {
	if !validConfirmationStatus(req.Status) {
		return ConfirmationResponse{}, attendanceerrors.ErrInvalidStatus
	}

	clientUUID, err := uuid.Parse(req.ClientID)
	if err != nil {
		return ConfirmationResponse{}, attendanceerrors.ErrInvalidClientID
	}
	staffUUID, err := uuid.Parse(staffID)
	if err != nil {
		return ConfirmationResponse{}, attendanceerrors.ErrInvalidClientID
	}

	date, err := time.Parse("2006-01-02", req.AttendanceDate)
	if err != nil {
		return ConfirmationResponse{}, attendanceerrors.ErrInvalidDateFormat
	}

	var checkIn, checkOut *time.Time
	if req.CheckInTime != nil && *req.CheckInTime != "" {
		t, err := time.Parse(time.RFC3339, *req.CheckInTime)
		if err != nil {
			return ConfirmationResponse{}, attendanceerrors.ErrInvalidDateFormat
		}
		checkIn = &t
	}
	if req.CheckOutTime != nil && *req.CheckOutTime != "" {
		t, err := time.Parse(time.RFC3339, *req.CheckOutTime)
		if err != nil {
			return ConfirmationResponse{}, attendanceerrors.ErrInvalidDateFormat
		}
		checkOut = &t
	}
	if checkIn != nil && checkOut != nil && !checkOut.After(*checkIn) {
		return ConfirmationResponse{}, attendanceerrors.ErrInvalidTimeRange
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ConfirmationResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	row := &AttendanceConfirmation{
		ID:             uuid.New(),
		OrganizationID: uuid.MustParse(organizationID),
		ClientID:       clientUUID,
		AttendanceDate: date,
		Status:         req.Status,
		CheckInTime:    checkIn,
		CheckOutTime:   checkOut,
		ActualMinutes:  req.ActualMinutes,
		ConfirmedByID:  staffUUID,
		Notes:          req.Notes,
	}

	if err := qtx.UpsertConfirmation(ctx, row); err != nil {
		s.logger.Error("confirm attendance upsert failed", zap.Error(err))
		return ConfirmationResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return ConfirmationResponse{}, err
	}

	s.logger.Info("attendance confirmed",
		zap.String("client_id", req.ClientID),
		zap.String("date", req.AttendanceDate),
		zap.String("status", req.Status),
	)
	return mapConfirmationToResponse(*row), nil
}

func (s *service) GetConfirmations(ctx context.Context, organizationID, clientID, month string) ([]ConfirmationResponse, error) {
	from, to, err := monthBounds(month)
	if err != nil {
		return nil, err
	}

	var (
		rows []AttendanceConfirmation
	)
	if clientID != "" {
		if _, err := uuid.Parse(clientID); err != nil {
			return nil, attendanceerrors.ErrInvalidClientID
		}
		rows, err = s.repo.FindConfirmationsByClientAndPeriod(ctx, organizationID, clientID, from, to)
	} else {
		rows, err = s.repo.FindConfirmationsByPeriod(ctx, organizationID, from, to)
	}
	if err != nil {
		return nil, err
	}

	resp := make([]ConfirmationResponse, len(rows))
	for i, r := range rows {
		resp[i] = mapConfirmationToResponse(r)
	}
	return resp, nil
}

func monthBounds(month string) (time.Time, time.Time, error) {
	start, err := time.Parse("2006-01", month)
	if err != nil {
		return time.Time{}, time.Time{}, attendanceerrors.ErrInvalidMonthFormat
	}
	return start, start.AddDate(0, 1, -1), nil
}

func mapReportToResponse(a AttendanceReport) ReportResponse {
	resp := ReportResponse{
		ID:             a.ID.String(),
		OrganizationID: a.OrganizationID.String(),
		ClientID:       a.ClientID.String(),
		ReportDate:     a.ReportDate.Format("2006-01-02"),
		CheckInTime:    a.CheckInTime.Format(time.RFC3339),
		Notes:          a.Notes,
	}
	if a.CheckOutTime != nil {
		v := a.CheckOutTime.Format(time.RFC3339)
		resp.CheckOutTime = &v
	}
	return resp
}

func mapConfirmationToResponse(c AttendanceConfirmation) ConfirmationResponse {
	resp := ConfirmationResponse{
		ID:             c.ID.String(),
		OrganizationID: c.OrganizationID.String(),
		ClientID:       c.ClientID.String(),
		AttendanceDate: c.AttendanceDate.Format("2006-01-02"),
		Status:         c.Status,
		ActualMinutes:  c.ActualMinutes,
		ConfirmedByID:  c.ConfirmedByID.String(),
		Notes:          c.Notes,
	}
	if c.CheckInTime != nil {
		v := c.CheckInTime.Format(time.RFC3339)
		resp.CheckInTime = &v
	}
	if c.CheckOutTime != nil {
		v := c.CheckOutTime.Format(time.RFC3339)
		resp.CheckOutTime = &v
	}
	return resp
}
