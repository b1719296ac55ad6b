package attendance

import (
	"context"
	"database/sql"
	"time"

	"go-shien/internal/shared/connection"
	"go-shien/internal/tenant"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=attendance_repo.go -destination=mock/attendance_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository

	CreateReport(ctx context.Context, a *AttendanceReport) error
	FindReportByClientAndDate(ctx context.Context, organizationID, clientID string, date time.Time) (*AttendanceReport, error)
	FindReportsByClientAndPeriod(ctx context.Context, organizationID, clientID string, from, to time.Time) ([]AttendanceReport, error)
	UpdateReport(ctx context.Context, a *AttendanceReport) error

	UpsertConfirmation(ctx context.Context, c *AttendanceConfirmation) error
	FindConfirmationsByPeriod(ctx context.Context, organizationID string, from, to time.Time) ([]AttendanceConfirmation, error)
	FindConfirmationsByClientAndPeriod(ctx context.Context, organizationID, clientID string, from, to time.Time) ([]AttendanceConfirmation, error)
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

func (r *repository) CreateReport(ctx context.Context, a *AttendanceReport) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *repository) FindReportByClientAndDate(ctx context.Context, organizationID, clientID string, date time.Time) (*AttendanceReport, error) {
	var a AttendanceReport
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(organizationID)).
		Where("client_id = ?", clientID).
		Where("report_date = ?", date.Format("2006-01-02")).
		First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *repository) FindReportsByClientAndPeriod(ctx context.Context, organizationID, clientID string, from, to time.Time) ([]AttendanceReport, error) {
	var rows []AttendanceReport
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(organizationID)).
		Where("client_id = ?", clientID).
		Where("report_date BETWEEN ? AND ?", from.Format("2006-01-02"), to.Format("2006-01-02")).
		Order("report_date ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) UpdateReport(ctx context.Context, a *AttendanceReport) error {
	return r.db.WithContext(ctx).Save(a).Error
}

// UpsertConfirmation enforces "at most one confirmation per (client, date)" at
// the storage layer via the unique index.
func (r *repository) UpsertConfirmation(ctx context.Context, c *AttendanceConfirmation) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "client_id"}, {Name: "attendance_date"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"status", "check_in_time", "check_out_time", "actual_minutes",
				"confirmed_by_id", "notes", "updated_at",
			}),
		}).
		Create(c).Error
}

func (r *repository) FindConfirmationsByPeriod(ctx context.Context, organizationID string, from, to time.Time) ([]AttendanceConfirmation, error) {
	var rows []AttendanceConfirmation
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(organizationID)).
		Where("attendance_date BETWEEN ? AND ?", from.Format("2006-01-02"), to.Format("2006-01-02")).
		Order("client_id ASC, attendance_date ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindConfirmationsByClientAndPeriod(ctx context.Context, organizationID, clientID string, from, to time.Time) ([]AttendanceConfirmation, error) {
	var rows []AttendanceConfirmation
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(organizationID)).
		Where("client_id = ?", clientID).
		Where("attendance_date BETWEEN ? AND ?", from.Format("2006-01-02"), to.Format("2006-01-02")).
		Order("attendance_date ASC").
		Find(&rows).Error
	return rows, err
}
