package client

import (
	"context"
	"database/sql"

	"go-shien/internal/shared/connection"
	"go-shien/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=client_repo.go -destination=mock/client_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, c *Client) error
	FindAllByOrganization(ctx context.Context, organizationID string) ([]Client, error)
	FindActiveByOrganization(ctx context.Context, organizationID string) ([]Client, error)
	FindByIDAndOrganization(ctx context.Context, organizationID, id string) (*Client, error)
	Update(ctx context.Context, c *Client) error
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

func (r *repository) Create(ctx context.Context, c *Client) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *repository) FindAllByOrganization(ctx context.Context, organizationID string) ([]Client, error) {
	var rows []Client
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(organizationID)).
		Order("client_number ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindActiveByOrganization(ctx context.Context, organizationID string) ([]Client, error) {
	var rows []Client
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(organizationID)).
		Where("status = ?", StatusActive).
		Order("client_number ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindByIDAndOrganization(ctx context.Context, organizationID, id string) (*Client, error) {
	var c Client
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(organizationID)).
		Where("id = ?", id).
		First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *repository) Update(ctx context.Context, c *Client) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *repository) Delete(ctx context.Context, organizationID, id string) error {
	return r.db.WithContext(ctx).
		Scopes(tenant.Scope(organizationID)).
		Where("id = ?", id).
		Delete(&Client{}).Error
}
