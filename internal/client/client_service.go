package client

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	clienterrors "go-shien/internal/client/errors"
	"go-shien/internal/shared/contextutil"
	"go-shien/internal/shared/counter"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const ClientOptionsKeyPrefix = "clients:options:"

func GetClientOptionsKey(organizationID string) string {
	return ClientOptionsKeyPrefix + organizationID
}

//go:generate mockgen -source=client_service.go -destination=mock/client_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, organizationID string, req CreateClientRequest) (ClientResponse, error)
	GetAll(ctx context.Context, organizationID string) ([]ClientResponse, error)
	GetOptions(ctx context.Context, organizationID string) ([]ClientResponse, error)
	GetByID(ctx context.Context, organizationID, id string) (ClientResponse, error)
	Update(ctx context.Context, organizationID, id string, req UpdateClientRequest) (ClientResponse, error)
	ChangeStatus(ctx context.Context, organizationID, id string, req ChangeStatusRequest) (ClientResponse, error)
	Delete(ctx context.Context, organizationID, id string) error
}

type service struct {
	db      *sql.DB
	repo    Repository
	counter counter.Repository
	rdb     *redis.Client
	sf      *singleflight.Group
	logger  *zap.Logger
}

func NewService(db *sql.DB, repo Repository, counterRepo counter.Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("client.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("client.service")
	}
	return &service{
		db:      db,
		repo:    repo,
		counter: counterRepo,
		rdb:     rdb,
		sf:      &singleflight.Group{},
		logger:  l,
	}
}

func (s *service) Create(ctx context.Context, organizationID string, req CreateClientRequest) (ClientResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create client requested",
		zap.String("request_id", rid),
		zap.String("organization_id", organizationID),
	)

	orgUUID, err := uuid.Parse(organizationID)
	if err != nil {
		return ClientResponse{}, clienterrors.ErrInvalidClientID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create client begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return ClientResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	var admittedAt *time.Time
	if req.AdmittedAt != "" {
		t, err := time.Parse("2006-01-02", req.AdmittedAt)
		if err != nil {
			return ClientResponse{}, clienterrors.ErrInvalidDateFormat
		}
		admittedAt = &t
	}

	if req.ClientNumber == "" {
		nextVal, err := s.counter.GetNextValue(ctx, organizationID, "client_number")
		if err != nil {
			s.logger.Error("create client generate number failed", zap.Error(err))
			return ClientResponse{}, err
		}
		req.ClientNumber = fmt.Sprintf("CL-%06d", nextVal)
	}

	row := &Client{
		ID:             uuid.New(),
		OrganizationID: orgUUID,
		ClientNumber:   req.ClientNumber,
		Name:           req.Name,
		NameKana:       req.NameKana,
		Status:         StatusActive,
		DisabilityType: req.DisabilityType,
		GradeLevel:     req.GradeLevel,
		AdmittedAt:     admittedAt,
		Notes:          req.Notes,
	}

	if err := qtx.Create(ctx, row); err != nil {
		s.logger.Error("create client persist failed", zap.Error(err))
		return ClientResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return ClientResponse{}, err
	}

	s.invalidateOptions(ctx, organizationID)
	s.logger.Info("create client success",
		zap.String("client_id", row.ID.String()),
		zap.String("organization_id", organizationID),
	)

	return mapToResponse(*row), nil
}

func (s *service) GetAll(ctx context.Context, organizationID string) ([]ClientResponse, error) {
	rows, err := s.repo.FindAllByOrganization(ctx, organizationID)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(rows), nil
}

// GetOptions returns the slim id/name list the UI uses for pickers, cached in
// redis and deduplicated with singleflight so one organization never fans out
// concurrent identical queries.
func (s *service) GetOptions(ctx context.Context, organizationID string) ([]ClientResponse, error) {
	cacheKey := GetClientOptionsKey(organizationID)

	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var resp []ClientResponse
			if err := json.Unmarshal([]byte(cached), &resp); err == nil {
				return resp, nil
			}
		}
	}

	v, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		rows, err := s.repo.FindActiveByOrganization(ctx, organizationID)
		if err != nil {
			return nil, err
		}
		resp := mapToListResponse(rows)
		if s.rdb != nil {
			if payload, err := json.Marshal(resp); err == nil {
				_ = s.rdb.Set(ctx, cacheKey, string(payload), 10*time.Minute).Err()
			}
		}
		return resp, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]ClientResponse), nil
}

func (s *service) GetByID(ctx context.Context, organizationID, id string) (ClientResponse, error) {
	row, err := s.repo.FindByIDAndOrganization(ctx, organizationID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ClientResponse{}, clienterrors.ErrClientNotFound
		}
		return ClientResponse{}, err
	}
	return mapToResponse(*row), nil
}

func (s *service) Update(ctx context.Context, organizationID, id string, req UpdateClientRequest) (ClientResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ClientResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	row, err := qtx.FindByIDAndOrganization(ctx, organizationID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ClientResponse{}, clienterrors.ErrClientNotFound
		}
		return ClientResponse{}, err
	}

	row.Name = req.Name
	row.NameKana = req.NameKana
	row.DisabilityType = req.DisabilityType
	row.GradeLevel = req.GradeLevel
	row.Notes = req.Notes

	if err := qtx.Update(ctx, row); err != nil {
		return ClientResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return ClientResponse{}, err
	}

	s.invalidateOptions(ctx, organizationID)
	return mapToResponse(*row), nil
}

func (s *service) ChangeStatus(ctx context.Context, organizationID, id string, req ChangeStatusRequest) (ClientResponse, error) {
	if !validStatus(req.Status) {
		return ClientResponse{}, clienterrors.ErrInvalidStatus
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ClientResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	row, err := qtx.FindByIDAndOrganization(ctx, organizationID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ClientResponse{}, clienterrors.ErrClientNotFound
		}
		return ClientResponse{}, err
	}

	row.Status = req.Status
	if req.Status == StatusExited {
		exitedAt := time.Now().UTC()
		if req.ExitedAt != "" {
			t, err := time.Parse("2006-01-02", req.ExitedAt)
			if err != nil {
				return ClientResponse{}, clienterrors.ErrInvalidDateFormat
			}
			exitedAt = t
		}
		row.ExitedAt = &exitedAt
	} else {
		row.ExitedAt = nil
	}

	if err := qtx.Update(ctx, row); err != nil {
		return ClientResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return ClientResponse{}, err
	}

	s.invalidateOptions(ctx, organizationID)
	s.logger.Info("client status changed",
		zap.String("client_id", id),
		zap.String("status", req.Status),
	)
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
	if err := tx.Commit(); err != nil {
		return err
	}

	s.invalidateOptions(ctx, organizationID)
	return nil
}

func (s *service) invalidateOptions(ctx context.Context, organizationID string) {
	if s.rdb == nil {
		return
	}
	_ = s.rdb.Del(ctx, GetClientOptionsKey(organizationID)).Err()
}

func mapToResponse(c Client) ClientResponse {
	resp := ClientResponse{
		ID:             c.ID.String(),
		OrganizationID: c.OrganizationID.String(),
		ClientNumber:   c.ClientNumber,
		Name:           c.Name,
		NameKana:       c.NameKana,
		Status:         c.Status,
		DisabilityType: c.DisabilityType,
		GradeLevel:     c.GradeLevel,
		Notes:          c.Notes,
	}
	if c.AdmittedAt != nil {
		v := c.AdmittedAt.Format("2006-01-02")
		resp.AdmittedAt = &v
	}
	if c.ExitedAt != nil {
		v := c.ExitedAt.Format("2006-01-02")
		resp.ExitedAt = &v
	}
	return resp
}

func mapToListResponse(rows []Client) []ClientResponse {
	resp := make([]ClientResponse, len(rows))
	for i, c := range rows {
		resp[i] = mapToResponse(c)
	}
	return resp
}
