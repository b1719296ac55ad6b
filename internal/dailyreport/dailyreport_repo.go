package dailyreport

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"go-shien/internal/shared/connection"
	"go-shien/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=dailyreport_repo.go -destination=mock/dailyreport_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, r *DailyReport) error
	FindByClientAndDate(ctx context.Context, organizationID, clientID string, date time.Time) (*DailyReport, error)
	FindByClientAndPeriod(ctx context.Context, organizationID, clientID string, from, to time.Time) ([]DailyReport, error)
	FindByOrganizationAndDate(ctx context.Context, organizationID string, date time.Time) ([]DailyReport, error)
	FindByIDAndOrganization(ctx context.Context, organizationID, id string) (*DailyReport, error)
	Update(ctx context.Context, r *DailyReport) error
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

func (r *repository) Create(ctx context.Context, report *DailyReport) error {
	return r.db.WithContext(ctx).Create(report).Error
}

func (r *repository) FindByClientAndDate(ctx context.Context, organizationID, clientID string, date time.Time) (*DailyReport, error) {
	var report DailyReport
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(organizationID)).
		Where("client_id = ? AND report_date = ?", clientID, date).
		First(&report).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &report, nil
}

func (r *repository) FindByClientAndPeriod(ctx context.Context, organizationID, clientID string, from, to time.Time) ([]DailyReport, error) {
	var rows []DailyReport
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(organizationID)).
		Where("client_id = ? AND report_date BETWEEN ? AND ?", clientID, from, to).
		Order("report_date ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindByOrganizationAndDate(ctx context.Context, organizationID string, date time.Time) ([]DailyReport, error) {
	var rows []DailyReport
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(organizationID)).
		Where("report_date = ?", date).
		Order("created_at ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindByIDAndOrganization(ctx context.Context, organizationID, id string) (*DailyReport, error) {
	var report DailyReport
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(organizationID)).
		Where("id = ?", id).
		First(&report).Error
	if err != nil {
		return nil, err
	}
	return &report, nil
}

func (r *repository) Update(ctx context.Context, report *DailyReport) error {
	return r.db.WithContext(ctx).Save(report).Error
}
