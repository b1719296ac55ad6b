package supportplan

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusDraft     = "draft"
	StatusActive    = "active"
	StatusCompleted = "completed"
)

// SupportPlan is a client's individual support plan: goals for a period,
// reviewed through monitoring sessions that link back via SupportPlanID.
type SupportPlan struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrganizationID uuid.UUID `gorm:"type:uuid;not null;index"`
	ClientID       uuid.UUID `gorm:"type:uuid;not null;index"`
	Title          string    `gorm:"type:varchar(255);not null"`
	LongTermGoal   string    `gorm:"type:text;not null"`
	ShortTermGoal  string    `gorm:"type:text"`
	SupportDetail  string    `gorm:"type:text"`
	Status         string    `gorm:"type:varchar(20);not null;default:'draft';index"`
	PeriodStart    time.Time `gorm:"type:date;not null"`
	PeriodEnd      time.Time `gorm:"type:date;not null"`
	CreatedByID    uuid.UUID `gorm:"type:uuid;not null"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
	DeletedAt      gorm.DeletedAt `gorm:"index"`
}

func (SupportPlan) TableName() string {
	return "support_plans"
}

func ValidStatus(s string) bool {
	switch s {
	case StatusDraft, StatusActive, StatusCompleted:
		return true
	default:
		return false
	}
}

// MonitoringSessionRef is the slim projection of an interview session of
// type monitoring linked to a plan.
type MonitoringSessionRef struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	SessionDate time.Time `gorm:"column:session_date"`
	Title       string    `gorm:"column:title"`
	Status      string    `gorm:"column:status"`
}

func (MonitoringSessionRef) TableName() string {
	return "interview_sessions"
}
