package wagerule

import (
	"context"
	"database/sql"

	"go-shien/internal/shared/connection"
	"go-shien/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=wagerule_repo.go -destination=mock/wagerule_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, r *WageRule) error
	FindAllByOrganization(ctx context.Context, organizationID string) ([]WageRule, error)
	FindByClient(ctx context.Context, organizationID, clientID string) ([]WageRule, error)
	FindResolvable(ctx context.Context, organizationID, clientID string) ([]WageRule, error)
	FindByIDAndOrganization(ctx context.Context, organizationID, id string) (*WageRule, error)
	ClearDefault(ctx context.Context, organizationID string, clientID *string) error
	Update(ctx context.Context, r *WageRule) error
	Delete(ctx context.Context, organizationID, id string) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: connection.GORMTx(tx)}
}

func (r *repository) Create(ctx context.Context, rule *WageRule) error {
	return r.db.WithContext(ctx).Create(rule).Error
}

func (r *repository) FindAllByOrganization(ctx context.Context, organizationID string) ([]WageRule, error) {
	var rows []WageRule
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(organizationID)).
		Order("valid_from DESC, created_at DESC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindByClient(ctx context.Context, organizationID, clientID string) ([]WageRule, error) {
	var rows []WageRule
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(organizationID)).
		Where("client_id = ?", clientID).
		Order("valid_from DESC, created_at DESC").
		Find(&rows).Error
	return rows, err
}

// FindResolvable loads the candidate set for rule resolution: the client's own
// rules plus the organization-wide defaults.
func (r *repository) FindResolvable(ctx context.Context, organizationID, clientID string) ([]WageRule, error) {
	var rows []WageRule
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(organizationID)).
		Where("client_id = ? OR (client_id IS NULL AND is_default = true)", clientID).
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindByIDAndOrganization(ctx context.Context, organizationID, id string) (*WageRule, error) {
	var rule WageRule
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(organizationID)).
		Where("id = ?", id).
		First(&rule).Error
	if err != nil {
		return nil, err
	}
	return &rule, nil
}

// ClearDefault unsets is_default on every rule in the (organization, client)
// scope. Runs inside the same transaction as the subsequent set, which is what
// keeps "at most one default per scope" true.
func (r *repository) ClearDefault(ctx context.Context, organizationID string, clientID *string) error {
	q := r.db.WithContext(ctx).
		Model(&WageRule{}).
		Scopes(tenant.Scope(organizationID)).
		Where("is_default = true")
	if clientID == nil {
		q = q.Where("client_id IS NULL")
	} else {
		q = q.Where("client_id = ?", *clientID)
	}
	return q.Update("is_default", false).Error
}

func (r *repository) Update(ctx context.Context, rule *WageRule) error {
	return r.db.WithContext(ctx).Save(rule).Error
}

func (r *repository) Delete(ctx context.Context, organizationID, id string) error {
	return r.db.WithContext(ctx).
		Scopes(tenant.Scope(organizationID)).
		Where("id = ?", id).
		Delete(&WageRule{}).Error
}
