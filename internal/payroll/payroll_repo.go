package payroll

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"go-shien/internal/attendance"
	"go-shien/internal/shared/connection"
	"go-shien/internal/tenant"
	"go-shien/internal/wagerule"
	"go-shien/internal/worklog"

	"gorm.io/gorm"
)

//go:generate mockgen -source=payroll_repo.go -destination=mock/payroll_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository

	CreateRun(ctx context.Context, run *PayrollRun) error
	CreateLine(ctx context.Context, line *PayrollLine) error
	FindOverlappingRun(ctx context.Context, organizationID string, periodStart, periodEnd time.Time) (*PayrollRun, error)
	FindAllByOrganization(ctx context.Context, organizationID string) ([]PayrollRun, error)
	FindByIDAndOrganization(ctx context.Context, organizationID, id string) (*PayrollRun, error)
	FindLinesByRun(ctx context.Context, organizationID, runID string) ([]PayrollLine, error)
	FindLineByID(ctx context.Context, organizationID, lineID string) (*PayrollLine, error)
	FindClientRef(ctx context.Context, organizationID, clientID string) (*ClientRef, error)
	UpdateRun(ctx context.Context, run *PayrollRun) error
	DeleteRun(ctx context.Context, organizationID, id string) error

	// Inputs to line computation. These read tables owned by other
	// features, so the run is priced from one consistent snapshot.
	ListActiveClients(ctx context.Context, organizationID string) ([]ClientRef, error)
	FindConfirmations(ctx context.Context, organizationID, clientID string, from, to time.Time) ([]attendance.AttendanceConfirmation, error)
	FindWorkLogs(ctx context.Context, organizationID, clientID string, from, to time.Time) ([]worklog.WorkLog, error)
	FindWageRules(ctx context.Context, organizationID, clientID string) ([]wagerule.WageRule, error)
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

func (r *repository) CreateRun(ctx context.Context, run *PayrollRun) error {
	return r.db.WithContext(ctx).Create(run).Error
}

func (r *repository) CreateLine(ctx context.Context, line *PayrollLine) error {
	return r.db.WithContext(ctx).Create(line).Error
}

// FindOverlappingRun returns any non-deleted run whose period intersects
// [periodStart, periodEnd], or nil when the period is free.
func (r *repository) FindOverlappingRun(ctx context.Context, organizationID string, periodStart, periodEnd time.Time) (*PayrollRun, error) {
	var run PayrollRun
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(organizationID)).
		Where("period_start <= ? AND period_end >= ?", periodEnd, periodStart).
		First(&run).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &run, nil
}

func (r *repository) FindAllByOrganization(ctx context.Context, organizationID string) ([]PayrollRun, error) {
	var rows []PayrollRun
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(organizationID)).
		Order("period_start DESC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindByIDAndOrganization(ctx context.Context, organizationID, id string) (*PayrollRun, error) {
	var run PayrollRun
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(organizationID)).
		Where("id = ?", id).
		First(&run).Error
	if err != nil {
		return nil, err
	}
	return &run, nil
}

func (r *repository) FindLinesByRun(ctx context.Context, organizationID, runID string) ([]PayrollLine, error) {
	var rows []PayrollLine
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(organizationID)).
		Where("run_id = ?", runID).
		Order("created_at ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindLineByID(ctx context.Context, organizationID, lineID string) (*PayrollLine, error) {
	var line PayrollLine
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(organizationID)).
		Where("id = ?", lineID).
		First(&line).Error
	if err != nil {
		return nil, err
	}
	return &line, nil
}

func (r *repository) FindClientRef(ctx context.Context, organizationID, clientID string) (*ClientRef, error) {
	var ref ClientRef
	err := r.db.WithContext(ctx).
		Table("clients").
		Where("organization_id = ? AND id = ? AND deleted_at IS NULL", organizationID, clientID).
		First(&ref).Error
	if err != nil {
		return nil, err
	}
	return &ref, nil
}

func (r *repository) UpdateRun(ctx context.Context, run *PayrollRun) error {
	return r.db.WithContext(ctx).Save(run).Error
}

func (r *repository) DeleteRun(ctx context.Context, organizationID, id string) error {
	return r.db.WithContext(ctx).
		Scopes(tenant.Scope(organizationID)).
		Where("id = ?", id).
		Delete(&PayrollRun{}).Error
}

func (r *repository) ListActiveClients(ctx context.Context, organizationID string) ([]ClientRef, error) {
	var rows []ClientRef
	err := r.db.WithContext(ctx).
		Table("clients").
		Where("organization_id = ? AND status = ? AND deleted_at IS NULL", organizationID, "active").
		Order("client_number ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindConfirmations(ctx context.Context, organizationID, clientID string, from, to time.Time) ([]attendance.AttendanceConfirmation, error) {
	var rows []attendance.AttendanceConfirmation
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(organizationID)).
		Where("client_id = ? AND attendance_date BETWEEN ? AND ?", clientID, from, to).
		Order("attendance_date ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindWorkLogs(ctx context.Context, organizationID, clientID string, from, to time.Time) ([]worklog.WorkLog, error) {
	var rows []worklog.WorkLog
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(organizationID)).
		Where("client_id = ? AND work_date BETWEEN ? AND ?", clientID, from, to).
		Order("work_date ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindWageRules(ctx context.Context, organizationID, clientID string) ([]wagerule.WageRule, error) {
	var rows []wagerule.WageRule
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(organizationID)).
		Where("client_id = ? OR (client_id IS NULL AND is_default = true)", clientID).
		Find(&rows).Error
	return rows, err
}
