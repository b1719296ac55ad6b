package dailyreport

import (
	"context"
	"database/sql"
	"time"

	reporterrors "go-shien/internal/dailyreport/errors"
	"go-shien/internal/shared/apperror"
	"go-shien/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

//go:generate mockgen -source=dailyreport_service.go -destination=mock/dailyreport_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, organizationID, clientID string, req CreateDailyReportRequest) (DailyReportResponse, error)
	GetMyReports(ctx context.Context, organizationID, clientID, month string) ([]DailyReportResponse, error)
	GetByDate(ctx context.Context, organizationID, date string) ([]DailyReportResponse, error)
	GetByClient(ctx context.Context, organizationID, clientID, month string) ([]DailyReportResponse, error)
	Comment(ctx context.Context, organizationID, staffID, id string, req CommentRequest) (DailyReportResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("dailyreport.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("dailyreport.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

// Create records a client's own report for a day. One report per day: a
// second submission is a conflict, not an overwrite.
func (s *service) Create(
	ctx context.Context,
	organizationID, clientID string,
	req CreateDailyReportRequest,
) (DailyReportResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	if !ValidMood(req.Mood) {
		return DailyReportResponse{}, reporterrors.ErrInvalidMood
	}

	reportDate, err := time.Parse("2006-01-02", req.ReportDate)
	if err != nil {
		return DailyReportResponse{}, apperror.InvalidField("report_date")
	}

	orgUUID, err := uuid.Parse(organizationID)
	if err != nil {
		return DailyReportResponse{}, apperror.InvalidField("organization_id")
	}
	clientUUID, err := uuid.Parse(clientID)
	if err != nil {
		return DailyReportResponse{}, apperror.InvalidField("client_id")
	}

	existing, err := s.repo.FindByClientAndDate(ctx, organizationID, clientID, reportDate)
	if err != nil {
		return DailyReportResponse{}, err
	}
	if existing != nil {
		return DailyReportResponse{}, reporterrors.ErrReportAlreadyExists
	}

	report := &DailyReport{
		ID:             uuid.New(),
		OrganizationID: orgUUID,
		ClientID:       clientUUID,
		ReportDate:     reportDate,
		Mood:           req.Mood,
		Note:           req.Note,
	}
	if err := s.repo.Create(ctx, report); err != nil {
		s.logger.Error("create daily report persist failed", zap.String("request_id", rid), zap.Error(err))
		return DailyReportResponse{}, err
	}

	return mapToResponse(*report), nil
}

func (s *service) GetMyReports(ctx context.Context, organizationID, clientID, month string) ([]DailyReportResponse, error) {
	return s.GetByClient(ctx, organizationID, clientID, month)
}

func (s *service) GetByDate(ctx context.Context, organizationID, date string) ([]DailyReportResponse, error) {
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return nil, apperror.InvalidField("date")
	}
	rows, err := s.repo.FindByOrganizationAndDate(ctx, organizationID, day)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(rows), nil
}

func (s *service) GetByClient(ctx context.Context, organizationID, clientID, month string) ([]DailyReportResponse, error) {
	start, err := time.Parse("2006-01", month)
	if err != nil {
		return nil, apperror.InvalidField("month")
	}
	end := start.AddDate(0, 1, -1)

	rows, err := s.repo.FindByClientAndPeriod(ctx, organizationID, clientID, start, end)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(rows), nil
}

// Comment attaches or replaces the staff comment on a report.
func (s *service) Comment(
	ctx context.Context,
	organizationID, staffID, id string,
	req CommentRequest,
) (DailyReportResponse, error) {
	staffUUID, err := uuid.Parse(staffID)
	if err != nil {
		return DailyReportResponse{}, apperror.InvalidField("staff_id")
	}

	report, err := s.repo.FindByIDAndOrganization(ctx, organizationID, id)
	if err != nil {
		return DailyReportResponse{}, err
	}

	now := time.Now().UTC()
	report.StaffComment = &req.Comment
	report.CommentedByID = &staffUUID
	report.CommentedAt = &now

	if err := s.repo.Update(ctx, report); err != nil {
		return DailyReportResponse{}, err
	}
	return mapToResponse(*report), nil
}

func mapToResponse(r DailyReport) DailyReportResponse {
	resp := DailyReportResponse{
		ID:           r.ID.String(),
		ClientID:     r.ClientID.String(),
		ReportDate:   r.ReportDate.Format("2006-01-02"),
		Mood:         r.Mood,
		Note:         r.Note,
		StaffComment: r.StaffComment,
		CreatedAt:    r.CreatedAt.Format(time.RFC3339),
	}
	if r.CommentedByID != nil {
		v := r.CommentedByID.String()
		resp.CommentedByID = &v
	}
	return resp
}

func mapToListResponse(rows []DailyReport) []DailyReportResponse {
	out := make([]DailyReportResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, mapToResponse(r))
	}
	return out
}
