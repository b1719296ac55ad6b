package dailyreport

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Mood values a client can self-report.
const (
	MoodGood    = "good"
	MoodNormal  = "normal"
	MoodBad     = "bad"
	MoodUnknown = "unknown"
)

// DailyReport is a client's end-of-day self report. One row per
// (client, date); staff may attach one comment.
type DailyReport struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrganizationID uuid.UUID  `gorm:"type:uuid;not null;index"`
	ClientID       uuid.UUID  `gorm:"type:uuid;not null;index:idx_report_client_date,unique"`
	ReportDate     time.Time  `gorm:"type:date;not null;index:idx_report_client_date,unique"`
	Mood           string     `gorm:"type:varchar(20);not null;default:'unknown'"`
	Note           *string    `gorm:"type:text"`
	StaffComment   *string    `gorm:"type:text"`
	CommentedByID  *uuid.UUID `gorm:"type:uuid"`
	CommentedAt    *time.Time `gorm:"type:timestamptz"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
	DeletedAt      gorm.DeletedAt `gorm:"index"`
}

func (DailyReport) TableName() string {
	return "daily_reports"
}

func ValidMood(m string) bool {
	switch m {
	case MoodGood, MoodNormal, MoodBad, MoodUnknown:
		return true
	default:
		return false
	}
}
