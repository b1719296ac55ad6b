package attendance

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Confirmation statuses. Late and leave-early still count as attended days
// for payroll purposes.
const (
	StatusPresent    = "present"
	StatusAbsent     = "absent"
	StatusLate       = "late"
	StatusLeaveEarly = "leave_early"
)

// AttendanceReport is the client's self-declared attendance for a date.
// It is a claim, not the payroll source of truth.
type AttendanceReport struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrganizationID uuid.UUID  `gorm:"type:uuid;not null;index"`
	ClientID       uuid.UUID  `gorm:"type:uuid;not null;index"`
	ReportDate     time.Time  `gorm:"type:date;not null;index"`
	CheckInTime    time.Time  `gorm:"type:timestamptz;not null"`
	CheckOutTime   *time.Time `gorm:"type:timestamptz"`
	Notes          *string    `gorm:"type:text"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
	DeletedAt      gorm.DeletedAt `gorm:"index"`
}

func (AttendanceReport) TableName() string {
	return "attendance_reports"
}

// AttendanceConfirmation is the staff-authoritative record of a client's
// presence on a date. At most one row per (client, date). Payroll and
// utilization metrics read confirmations, never reports.
type AttendanceConfirmation struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrganizationID uuid.UUID  `gorm:"type:uuid;not null;index"`
	ClientID       uuid.UUID  `gorm:"type:uuid;not null;index:idx_client_date,unique"`
	AttendanceDate time.Time  `gorm:"type:date;not null;index:idx_client_date,unique"`
	Status         string     `gorm:"type:varchar(20);not null;default:'present'"`
	CheckInTime    *time.Time `gorm:"type:timestamptz"`
	CheckOutTime   *time.Time `gorm:"type:timestamptz"`
	ActualMinutes  *int       `gorm:"type:int"`
	ConfirmedByID  uuid.UUID  `gorm:"type:uuid;not null"`
	Notes          *string    `gorm:"type:text"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
	DeletedAt      gorm.DeletedAt `gorm:"index"`
}

func (AttendanceConfirmation) TableName() string {
	return "attendance_confirmations"
}

func validConfirmationStatus(s string) bool {
	switch s {
	case StatusPresent, StatusAbsent, StatusLate, StatusLeaveEarly:
		return true
	default:
		return false
	}
}

// CountsAsAttended reports whether a confirmation contributes a work day.
// Late and leave-early days are still worked days for payroll and report
// purposes; absent is the only status that contributes nothing.
func CountsAsAttended(status string) bool {
	switch status {
	case StatusPresent, StatusLate, StatusLeaveEarly:
		return true
	default:
		return false
	}
}
