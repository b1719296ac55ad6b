package payroll

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Run statuses. calculating is transient: it only exists between run creation
// and the moment line computation finishes.
const (
	StatusCalculating = "calculating"
	StatusDraft       = "draft"
	StatusConfirmed   = "confirmed"
	StatusPaid        = "paid"
)

// PayrollRun is one computed payroll batch for an organization and a
// month-aligned period. At most one run may exist per organization per
// overlapping period, enforced by a transactional check-and-insert plus the
// unique index on (organization_id, period_start, period_end).
type PayrollRun struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrganizationID uuid.UUID `gorm:"type:uuid;not null;index:idx_org_period,unique"`
	PeriodStart    time.Time `gorm:"type:date;not null;index:idx_org_period,unique"`
	PeriodEnd      time.Time `gorm:"type:date;not null;index:idx_org_period,unique"`
	Status         string    `gorm:"type:varchar(20);not null;default:'calculating';index"`

	CreatedByID   uuid.UUID  `gorm:"type:uuid;not null"`
	ConfirmedByID *uuid.UUID `gorm:"type:uuid"`
	ConfirmedAt   *time.Time `gorm:"type:timestamptz"`
	PaidAt        *time.Time `gorm:"type:timestamptz"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`

	Lines []PayrollLine `gorm:"foreignKey:RunID"`
}

func (PayrollRun) TableName() string {
	return "payroll_runs"
}

// PayrollLine is the per-client result row of a run. Amounts are yen.
// Lines are immutable once created; correcting a period means a new run.
type PayrollLine struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	RunID          uuid.UUID `gorm:"type:uuid;not null;index"`
	OrganizationID uuid.UUID `gorm:"type:uuid;not null;index"`
	ClientID       uuid.UUID `gorm:"type:uuid;not null;index"`

	WorkDays         int   `gorm:"not null;default:0"`
	TotalMinutes     int   `gorm:"not null;default:0"`
	BaseAmount       int64 `gorm:"type:bigint;not null;default:0"`
	PieceAmount      int64 `gorm:"type:bigint;not null;default:0"`
	DeductionsAmount int64 `gorm:"type:bigint;not null;default:0"`
	NetAmount        int64 `gorm:"type:bigint;not null;default:0"`

	// Breakdown is the serialized computation detail, sufficient to
	// reconstruct the calculation for display and audit.
	Breakdown datatypes.JSON `gorm:"type:jsonb"`

	CreatedAt time.Time
}

func (PayrollLine) TableName() string {
	return "payroll_lines"
}

// ClientRef is the slim projection the run computation iterates over.
type ClientRef struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	ClientNumber string    `gorm:"column:client_number"`
	Name         string    `gorm:"column:name"`
}

func (ClientRef) TableName() string {
	return "clients"
}
