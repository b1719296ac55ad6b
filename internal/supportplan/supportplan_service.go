package supportplan

import (
	"context"
	"database/sql"
	"time"

	"go-shien/internal/shared/apperror"
	"go-shien/internal/shared/contextutil"
	planerrors "go-shien/internal/supportplan/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

//go:generate mockgen -source=supportplan_service.go -destination=mock/supportplan_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, organizationID, actorID string, req CreateSupportPlanRequest) (SupportPlanResponse, error)
	GetAll(ctx context.Context, organizationID string) ([]SupportPlanResponse, error)
	GetByClient(ctx context.Context, organizationID, clientID string) ([]SupportPlanResponse, error)
	GetByID(ctx context.Context, organizationID, id string) (SupportPlanResponse, error)
	GetMonitoringSessions(ctx context.Context, organizationID, id string) ([]MonitoringSessionResponse, error)
	Update(ctx context.Context, organizationID, id string, req UpdateSupportPlanRequest) (SupportPlanResponse, error)
	Delete(ctx context.Context, organizationID, id string) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("supportplan.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("supportplan.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

func (s *service) Create(
	ctx context.Context,
	organizationID, actorID string,
	req CreateSupportPlanRequest,
) (SupportPlanResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create support plan requested",
		zap.String("request_id", rid),
		zap.String("organization_id", organizationID),
		zap.String("client_id", req.ClientID),
	)

	orgUUID, err := uuid.Parse(organizationID)
	if err != nil {
		return SupportPlanResponse{}, apperror.InvalidField("organization_id")
	}
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return SupportPlanResponse{}, apperror.InvalidField("actor_id")
	}
	clientUUID, err := uuid.Parse(req.ClientID)
	if err != nil {
		return SupportPlanResponse{}, apperror.InvalidField("client_id")
	}

	start, end, err := parsePlanPeriod(req.PeriodStart, req.PeriodEnd)
	if err != nil {
		return SupportPlanResponse{}, err
	}

	plan := &SupportPlan{
		ID:             uuid.New(),
		OrganizationID: orgUUID,
		ClientID:       clientUUID,
		Title:          req.Title,
		LongTermGoal:   req.LongTermGoal,
		ShortTermGoal:  req.ShortTermGoal,
		SupportDetail:  req.SupportDetail,
		Status:         StatusDraft,
		PeriodStart:    start,
		PeriodEnd:      end,
		CreatedByID:    actorUUID,
	}

	if err := s.repo.Create(ctx, plan); err != nil {
		s.logger.Error("create support plan persist failed", zap.String("request_id", rid), zap.Error(err))
		return SupportPlanResponse{}, err
	}

	return mapToResponse(*plan), nil
}

func (s *service) GetAll(ctx context.Context, organizationID string) ([]SupportPlanResponse, error) {
	rows, err := s.repo.FindAllByOrganization(ctx, organizationID)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(rows), nil
}

func (s *service) GetByClient(ctx context.Context, organizationID, clientID string) ([]SupportPlanResponse, error) {
	rows, err := s.repo.FindByClient(ctx, organizationID, clientID)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(rows), nil
}

func (s *service) GetByID(ctx context.Context, organizationID, id string) (SupportPlanResponse, error) {
	plan, err := s.repo.FindByIDAndOrganization(ctx, organizationID, id)
	if err != nil {
		return SupportPlanResponse{}, err
	}
	return mapToResponse(*plan), nil
}

func (s *service) GetMonitoringSessions(ctx context.Context, organizationID, id string) ([]MonitoringSessionResponse, error) {
	if _, err := s.repo.FindByIDAndOrganization(ctx, organizationID, id); err != nil {
		return nil, err
	}
	rows, err := s.repo.FindMonitoringSessions(ctx, organizationID, id)
	if err != nil {
		return nil, err
	}
	out := make([]MonitoringSessionResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, MonitoringSessionResponse{
			ID:          r.ID.String(),
			SessionDate: r.SessionDate.Format("2006-01-02"),
			Title:       r.Title,
			Status:      r.Status,
		})
	}
	return out, nil
}

func (s *service) Update(
	ctx context.Context,
	organizationID, id string,
	req UpdateSupportPlanRequest,
) (SupportPlanResponse, error) {
	plan, err := s.repo.FindByIDAndOrganization(ctx, organizationID, id)
	if err != nil {
		return SupportPlanResponse{}, err
	}

	if !ValidStatus(req.Status) {
		return SupportPlanResponse{}, planerrors.ErrInvalidStatus
	}
	start, end, err := parsePlanPeriod(req.PeriodStart, req.PeriodEnd)
	if err != nil {
		return SupportPlanResponse{}, err
	}

	plan.Title = req.Title
	plan.LongTermGoal = req.LongTermGoal
	plan.ShortTermGoal = req.ShortTermGoal
	plan.SupportDetail = req.SupportDetail
	plan.Status = req.Status
	plan.PeriodStart = start
	plan.PeriodEnd = end

	if err := s.repo.Update(ctx, plan); err != nil {
		return SupportPlanResponse{}, err
	}
	return mapToResponse(*plan), nil
}

func (s *service) Delete(ctx context.Context, organizationID, id string) error {
	if _, err := s.repo.FindByIDAndOrganization(ctx, organizationID, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, organizationID, id)
}

func parsePlanPeriod(startRaw, endRaw string) (time.Time, time.Time, error) {
	start, err := time.Parse("2006-01-02", startRaw)
	if err != nil {
		return time.Time{}, time.Time{}, apperror.InvalidField("period_start")
	}
	end, err := time.Parse("2006-01-02", endRaw)
	if err != nil {
		return time.Time{}, time.Time{}, apperror.InvalidField("period_end")
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, planerrors.ErrInvalidPeriod
	}
	return start, end, nil
}

func mapToResponse(p SupportPlan) SupportPlanResponse {
	return SupportPlanResponse{
		ID:             p.ID.String(),
		OrganizationID: p.OrganizationID.String(),
		ClientID:       p.ClientID.String(),
		Title:          p.Title,
		LongTermGoal:   p.LongTermGoal,
		ShortTermGoal:  p.ShortTermGoal,
		SupportDetail:  p.SupportDetail,
		Status:         p.Status,
		PeriodStart:    p.PeriodStart.Format("2006-01-02"),
		PeriodEnd:      p.PeriodEnd.Format("2006-01-02"),
		CreatedAt:      p.CreatedAt.Format(time.RFC3339),
	}
}

func mapToListResponse(rows []SupportPlan) []SupportPlanResponse {
	out := make([]SupportPlanResponse, 0, len(rows))
	for _, p := range rows {
		out = append(out, mapToResponse(p))
	}
	return out
}
