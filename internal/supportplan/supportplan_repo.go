package supportplan

import (
	"context"
	"database/sql"

	"go-shien/internal/shared/connection"
	"go-shien/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=supportplan_repo.go -destination=mock/supportplan_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, p *SupportPlan) error
	FindAllByOrganization(ctx context.Context, organizationID string) ([]SupportPlan, error)
	FindByClient(ctx context.Context, organizationID, clientID string) ([]SupportPlan, error)
	FindByIDAndOrganization(ctx context.Context, organizationID, id string) (*SupportPlan, error)
	FindMonitoringSessions(ctx context.Context, organizationID, planID string) ([]MonitoringSessionRef, error)
	Update(ctx context.Context, p *SupportPlan) error
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

func (r *repository) Create(ctx context.Context, p *SupportPlan) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *repository) FindAllByOrganization(ctx context.Context, organizationID string) ([]SupportPlan, error) {
	var rows []SupportPlan
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(organizationID)).
		Order("period_start DESC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindByClient(ctx context.Context, organizationID, clientID string) ([]SupportPlan, error) {
	var rows []SupportPlan
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(organizationID)).
		Where("client_id = ?", clientID).
		Order("period_start DESC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindByIDAndOrganization(ctx context.Context, organizationID, id string) (*SupportPlan, error) {
	var p SupportPlan
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(organizationID)).
		Where("id = ?", id).
		First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// FindMonitoringSessions lists the monitoring-type interview sessions linked
// to a plan, newest first.
func (r *repository) FindMonitoringSessions(ctx context.Context, organizationID, planID string) ([]MonitoringSessionRef, error) {
	var rows []MonitoringSessionRef
	err := r.db.WithContext(ctx).
		Table("interview_sessions").
		Where("organization_id = ? AND support_plan_id = ? AND session_type = ? AND deleted_at IS NULL",
			organizationID, planID, "monitoring").
		Order("session_date DESC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) Update(ctx context.Context, p *SupportPlan) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *repository) Delete(ctx context.Context, organizationID, id string) error {
	return r.db.WithContext(ctx).
		Scopes(tenant.Scope(organizationID)).
		Where("id = ?", id).
		Delete(&SupportPlan{}).Error
}
