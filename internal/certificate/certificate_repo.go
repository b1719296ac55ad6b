package certificate

import (
	"context"
	"database/sql"
	"time"

	"go-shien/internal/shared/connection"
	"go-shien/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=certificate_repo.go -destination=mock/certificate_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, c *Certificate) error
	FindAllByOrganization(ctx context.Context, organizationID string) ([]Certificate, error)
	FindByClient(ctx context.Context, organizationID, clientID string) ([]Certificate, error)
	FindByIDAndOrganization(ctx context.Context, organizationID, id string) (*Certificate, error)
	FindExpiringBy(ctx context.Context, organizationID string, cutoff time.Time) ([]Certificate, error)
	Update(ctx context.Context, c *Certificate) error
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

func (r *repository) Create(ctx context.Context, c *Certificate) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *repository) FindAllByOrganization(ctx context.Context, organizationID string) ([]Certificate, error) {
	var rows []Certificate
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(organizationID)).
		Order("valid_until ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindByClient(ctx context.Context, organizationID, clientID string) ([]Certificate, error) {
	var rows []Certificate
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(organizationID)).
		Where("client_id = ?", clientID).
		Order("valid_until ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindByIDAndOrganization(ctx context.Context, organizationID, id string) (*Certificate, error) {
	var c Certificate
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(organizationID)).
		Where("id = ?", id).
		First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// FindExpiringBy returns certificates whose validity ends on or before the
// cutoff, oldest first. The expiry report classifies them in memory.
func (r *repository) FindExpiringBy(ctx context.Context, organizationID string, cutoff time.Time) ([]Certificate, error) {
	var rows []Certificate
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(organizationID)).
		Where("valid_until <= ?", cutoff).
		Order("valid_until ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) Update(ctx context.Context, c *Certificate) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *repository) Delete(ctx context.Context, organizationID, id string) error {
	return r.db.WithContext(ctx).
		Scopes(tenant.Scope(organizationID)).
		Where("id = ?", id).
		Delete(&Certificate{}).Error
}
