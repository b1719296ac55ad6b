package report

import (
	"context"
	"database/sql"
	"time"

	"go-shien/internal/attendance"
	"go-shien/internal/shared/connection"
	"go-shien/internal/tenant"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ClientRow is the slim projection the attendance report iterates over.
type ClientRow struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	ClientNumber string    `gorm:"column:client_number"`
	Name         string    `gorm:"column:name"`
}

func (ClientRow) TableName() string {
	return "clients"
}

//go:generate mockgen -source=report_repo.go -destination=mock/report_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository

	ListActiveClients(ctx context.Context, organizationID string) ([]ClientRow, error)
	FindConfirmationsByPeriod(ctx context.Context, organizationID string, from, to time.Time) ([]attendance.AttendanceConfirmation, error)
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

func (r *repository) ListActiveClients(ctx context.Context, organizationID string) ([]ClientRow, error) {
	var rows []ClientRow
	err := r.db.WithContext(ctx).
		Table("clients").
		Where("organization_id = ?", organizationID).
		Where("status = ?", "active").
		Where("deleted_at IS NULL").
		Order("client_number ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindConfirmationsByPeriod(ctx context.Context, organizationID string, from, to time.Time) ([]attendance.AttendanceConfirmation, error) {
	var rows []attendance.AttendanceConfirmation
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(organizationID)).
		Where("attendance_date BETWEEN ? AND ?", from.Format("2006-01-02"), to.Format("2006-01-02")).
		Order("attendance_date ASC").
		Find(&rows).Error
	return rows, err
}
