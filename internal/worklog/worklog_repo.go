package worklog

import (
	"context"
	"database/sql"
	"time"

	"go-shien/internal/shared/connection"
	"go-shien/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=worklog_repo.go -destination=mock/worklog_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, w *WorkLog) error
	FindByClientAndPeriod(ctx context.Context, organizationID, clientID string, from, to time.Time) ([]WorkLog, error)
	FindAllByOrganizationAndDate(ctx context.Context, organizationID string, date time.Time) ([]WorkLog, error)
	FindByIDAndOrganization(ctx context.Context, organizationID, id string) (*WorkLog, error)
	Update(ctx context.Context, w *WorkLog) error
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

func (r *repository) Create(ctx context.Context, w *WorkLog) error {
	return r.db.WithContext(ctx).Create(w).Error
}

func (r *repository) FindByClientAndPeriod(ctx context.Context, organizationID, clientID string, from, to time.Time) ([]WorkLog, error) {
	var rows []WorkLog
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(organizationID)).
		Where("client_id = ?", clientID).
		Where("work_date BETWEEN ? AND ?", from.Format("2006-01-02"), to.Format("2006-01-02")).
		Order("work_date ASC, work_type ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindAllByOrganizationAndDate(ctx context.Context, organizationID string, date time.Time) ([]WorkLog, error) {
	var rows []WorkLog
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(organizationID)).
		Where("work_date = ?", date.Format("2006-01-02")).
		Order("client_id ASC, work_type ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindByIDAndOrganization(ctx context.Context, organizationID, id string) (*WorkLog, error) {
	var w WorkLog
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(organizationID)).
		Where("id = ?", id).
		First(&w).Error
	if err != nil {
		return nil, err
	}
	return &w, nil
}

func (r *repository) Update(ctx context.Context, w *WorkLog) error {
	return r.db.WithContext(ctx).Save(w).Error
}

func (r *repository) Delete(ctx context.Context, organizationID, id string) error {
	return r.db.WithContext(ctx).
		Scopes(tenant.Scope(organizationID)).
		Where("id = ?", id).
		Delete(&WorkLog{}).Error
}
