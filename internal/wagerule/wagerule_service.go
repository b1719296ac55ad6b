package wagerule

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"go-shien/internal/shared/contextutil"
	wageruleerrors "go-shien/internal/wagerule/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

//go:generate mockgen -source=wagerule_service.go -destination=mock/wagerule_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, organizationID, actorID string, req CreateWageRuleRequest) (WageRuleResponse, error)
	GetAll(ctx context.Context, organizationID string) ([]WageRuleResponse, error)
	GetByClient(ctx context.Context, organizationID, clientID string) ([]WageRuleResponse, error)
	GetByID(ctx context.Context, organizationID, id string) (WageRuleResponse, error)
	Update(ctx context.Context, organizationID, actorID, id string, req UpdateWageRuleRequest) (WageRuleResponse, error)
	Delete(ctx context.Context, organizationID, id string) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("wagerule.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("wagerule.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

func (s *service) Create(ctx context.Context, organizationID, actorID string, req CreateWageRuleRequest) (WageRuleResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create wage rule requested",
		zap.String("request_id", rid),
		zap.String("organization_id", organizationID),
		zap.String("calculation_type", req.CalculationType),
		zap.Bool("is_default", req.IsDefault),
	)

	orgUUID, err := uuid.Parse(organizationID)
	if err != nil {
		return WageRuleResponse{}, wageruleerrors.ErrInvalidClientID
	}

	rule := &WageRule{
		ID:             uuid.New(),
		OrganizationID: orgUUID,
		Name:           req.Name,
	}

	var clientID *string
	if req.ClientID != nil && *req.ClientID != "" {
		cid, err := uuid.Parse(*req.ClientID)
		if err != nil {
			return WageRuleResponse{}, wageruleerrors.ErrInvalidClientID
		}
		rule.ClientID = &cid
		clientID = req.ClientID
	}

	if err := applyRuleFields(rule, req.CalculationType, req.HourlyRate, req.DailyRate, req.PieceRates, req.Deductions, req.ValidFrom, req.ValidUntil, req.IsDefault); err != nil {
		return WageRuleResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return WageRuleResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	// clear-then-set keeps "at most one default per scope" inside one tx
	if rule.IsDefault {
		if err := qtx.ClearDefault(ctx, organizationID, clientID); err != nil {
			s.logger.Error("clear default failed", zap.Error(err))
			return WageRuleResponse{}, err
		}
	}

	if err := qtx.Create(ctx, rule); err != nil {
		s.logger.Error("create wage rule persist failed", zap.Error(err))
		return WageRuleResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return WageRuleResponse{}, err
	}

	s.logger.Info("create wage rule success",
		zap.String("rule_id", rule.ID.String()),
		zap.String("organization_id", organizationID),
	)
	return mapToResponse(*rule), nil
}

func (s *service) GetAll(ctx context.Context, organizationID string) ([]WageRuleResponse, error) {
	rules, err := s.repo.FindAllByOrganization(ctx, organizationID)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(rules), nil
}

func (s *service) GetByClient(ctx context.Context, organizationID, clientID string) ([]WageRuleResponse, error) {
	if _, err := uuid.Parse(clientID); err != nil {
		return nil, wageruleerrors.ErrInvalidClientID
	}
	rules, err := s.repo.FindByClient(ctx, organizationID, clientID)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(rules), nil
}

func (s *service) GetByID(ctx context.Context, organizationID, id string) (WageRuleResponse, error) {
	rule, err := s.repo.FindByIDAndOrganization(ctx, organizationID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return WageRuleResponse{}, wageruleerrors.ErrRuleNotFound
		}
		return WageRuleResponse{}, err
	}
	return mapToResponse(*rule), nil
}

func (s *service) Update(ctx context.Context, organizationID, actorID, id string, req UpdateWageRuleRequest) (WageRuleResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return WageRuleResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	rule, err := qtx.FindByIDAndOrganization(ctx, organizationID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return WageRuleResponse{}, wageruleerrors.ErrRuleNotFound
		}
		return WageRuleResponse{}, err
	}

	rule.Name = req.Name
	if err := applyRuleFields(rule, req.CalculationType, req.HourlyRate, req.DailyRate, req.PieceRates, req.Deductions, req.ValidFrom, req.ValidUntil, req.IsDefault); err != nil {
		return WageRuleResponse{}, err
	}

	if rule.IsDefault {
		var clientID *string
		if rule.ClientID != nil {
			v := rule.ClientID.String()
			clientID = &v
		}
		if err := qtx.ClearDefault(ctx, organizationID, clientID); err != nil {
			return WageRuleResponse{}, err
		}
	}

	if err := qtx.Update(ctx, rule); err != nil {
		return WageRuleResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return WageRuleResponse{}, err
	}

	return mapToResponse(*rule), nil
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

// applyRuleFields validates and writes every policy field shared by create and
// update.
func applyRuleFields(
	rule *WageRule,
	calcType string,
	hourlyRate, dailyRate *int64,
	pieceRates, deductions []byte,
	validFrom string,
	validUntil *string,
	isDefault bool,
) error {
	if !ValidCalculationType(calcType) {
		return wageruleerrors.ErrInvalidCalculationType
	}

	switch calcType {
	case CalcHourly:
		if hourlyRate == nil {
			return wageruleerrors.ErrMissingRate
		}
	case CalcDaily:
		if dailyRate == nil {
			return wageruleerrors.ErrMissingRate
		}
	case CalcMixed:
		if hourlyRate == nil && dailyRate == nil {
			return wageruleerrors.ErrMissingRate
		}
	}

	if len(pieceRates) > 0 {
		if _, err := ParsePieceRates(pieceRates); err != nil {
			return wageruleerrors.ErrInvalidPieceRates
		}
	}
	if len(deductions) > 0 {
		specs, err := ParseDeductions(deductions)
		if err != nil {
			return wageruleerrors.ErrInvalidDeductions
		}
		for _, spec := range specs {
			if spec.Type != DeductionFixed && spec.Type != DeductionPercentage {
				return wageruleerrors.ErrInvalidDeductions
			}
		}
	}

	from, err := time.Parse("2006-01-02", validFrom)
	if err != nil {
		return wageruleerrors.ErrInvalidDateFormat
	}
	var until *time.Time
	if validUntil != nil && *validUntil != "" {
		t, err := time.Parse("2006-01-02", *validUntil)
		if err != nil {
			return wageruleerrors.ErrInvalidDateFormat
		}
		if from.After(t) {
			return wageruleerrors.ErrInvalidValidityRange
		}
		until = &t
	}

	rule.CalculationType = calcType
	rule.HourlyRate = hourlyRate
	rule.DailyRate = dailyRate
	rule.PieceRates = datatypes.JSON(pieceRates)
	rule.Deductions = datatypes.JSON(deductions)
	rule.ValidFrom = from
	rule.ValidUntil = until
	rule.IsDefault = isDefault
	return nil
}

func mapToResponse(r WageRule) WageRuleResponse {
	resp := WageRuleResponse{
		ID:              r.ID.String(),
		OrganizationID:  r.OrganizationID.String(),
		Name:            r.Name,
		CalculationType: r.CalculationType,
		HourlyRate:      r.HourlyRate,
		DailyRate:       r.DailyRate,
		PieceRates:      []byte(r.PieceRates),
		Deductions:      []byte(r.Deductions),
		ValidFrom:       r.ValidFrom.Format("2006-01-02"),
		IsDefault:       r.IsDefault,
	}
	if r.ClientID != nil {
		v := r.ClientID.String()
		resp.ClientID = &v
	}
	if r.ValidUntil != nil {
		v := r.ValidUntil.Format("2006-01-02")
		resp.ValidUntil = &v
	}
	return resp
}

func mapToListResponse(rules []WageRule) []WageRuleResponse {
	resp := make([]WageRuleResponse, len(rules))
	for i, r := range rules {
		resp[i] = mapToResponse(r)
	}
	return resp
}
