package worklog

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"time"

	"go-shien/internal/shared/apperror"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	errInvalidDate     = apperror.New(apperror.CodeInvalidInput, "invalid date format, expected YYYY-MM-DD", http.StatusBadRequest)
	errInvalidClientID = apperror.New(apperror.CodeInvalidInput, "invalid client id", http.StatusBadRequest)
	errInvalidQuantity = apperror.New(apperror.CodeInvalidInput, "quantity must be greater than zero", http.StatusBadRequest)
	errNotFound        = apperror.New(apperror.CodeNotFound, "work log not found", http.StatusNotFound)
)

//go:generate mockgen -source=worklog_service.go -destination=mock/worklog_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, organizationID, actorID string, req CreateWorkLogRequest) (WorkLogResponse, error)
	GetByClientAndMonth(ctx context.Context, organizationID, clientID, month string) ([]WorkLogResponse, error)
	Update(ctx context.Context, organizationID, id string, req UpdateWorkLogRequest) (WorkLogResponse, error)
	Delete(ctx context.Context, organizationID, id string) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("worklog.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("worklog.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

func (s *service) Create(ctx context.Context, organizationID, actorID string, req CreateWorkLogRequest) (WorkLogResponse, error) {
	orgUUID, err := uuid.Parse(organizationID)
	if err != nil {
		return WorkLogResponse{}, errInvalidClientID
	}
	clientUUID, err := uuid.Parse(req.ClientID)
	if err != nil {
		return WorkLogResponse{}, errInvalidClientID
	}
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return WorkLogResponse{}, errInvalidClientID
	}
	workDate, err := time.Parse("2006-01-02", req.WorkDate)
	if err != nil {
		return WorkLogResponse{}, errInvalidDate
	}
	if req.Quantity <= 0 {
		return WorkLogResponse{}, errInvalidQuantity
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return WorkLogResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	row := &WorkLog{
		ID:             uuid.New(),
		OrganizationID: orgUUID,
		ClientID:       clientUUID,
		WorkDate:       workDate,
		WorkType:       req.WorkType,
		Quantity:       req.Quantity,
		Unit:           req.Unit,
		Notes:          req.Notes,
		CreatedBy:      actorUUID,
	}

	if err := qtx.Create(ctx, row); err != nil {
		s.logger.Error("create work log persist failed", zap.Error(err))
		return WorkLogResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return WorkLogResponse{}, err
	}
	return mapToResponse(*row), nil
}

func (s *service) GetByClientAndMonth(ctx context.Context, organizationID, clientID, month string) ([]WorkLogResponse, error) {
	if _, err := uuid.Parse(clientID); err != nil {
		return nil, errInvalidClientID
	}

	start, err := time.Parse("2006-01", month)
	if err != nil {
		return nil, apperror.New(apperror.CodeInvalidInput, "invalid month format, expected YYYY-MM", http.StatusBadRequest)
	}
	end := start.AddDate(0, 1, -1)

	rows, err := s.repo.FindByClientAndPeriod(ctx, organizationID, clientID, start, end)
	if err != nil {
		return nil, err
	}

	resp := make([]WorkLogResponse, len(rows))
	for i, w := range rows {
		resp[i] = mapToResponse(w)
	}
	return resp, nil
}

func (s *service) Update(ctx context.Context, organizationID, id string, req UpdateWorkLogRequest) (WorkLogResponse, error) {
	if req.Quantity <= 0 {
		return WorkLogResponse{}, errInvalidQuantity
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return WorkLogResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	row, err := qtx.FindByIDAndOrganization(ctx, organizationID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return WorkLogResponse{}, errNotFound
		}
		return WorkLogResponse{}, err
	}

	row.WorkType = req.WorkType
	row.Quantity = req.Quantity
	row.Unit = req.Unit
	row.Notes = req.Notes

	if err := qtx.Update(ctx, row); err != nil {
		return WorkLogResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return WorkLogResponse{}, err
	}
	return mapToResponse(*row), nil
}

func (s *service) Delete(ctx context.Context, organizationID, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if err := qtx.Delete(ctx, organizationID, id); err != nil {
		return err
	}
	return tx.Commit()
}

func mapToResponse(w WorkLog) WorkLogResponse {
	return WorkLogResponse{
		ID:             w.ID.String(),
		OrganizationID: w.OrganizationID.String(),
		ClientID:       w.ClientID.String(),
		WorkDate:       w.WorkDate.Format("2006-01-02"),
		WorkType:       w.WorkType,
		Quantity:       w.Quantity,
		Unit:           w.Unit,
		Notes:          w.Notes,
	}
}
