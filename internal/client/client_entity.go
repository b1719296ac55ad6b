package client

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Statuses of a client (service user) record.
const (
	StatusActive    = "active"
	StatusSuspended = "suspended"
	StatusExited    = "exited"
)

type Client struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrganizationID uuid.UUID  `gorm:"type:uuid;not null;index"`
	UserID         *uuid.UUID `gorm:"type:uuid;uniqueIndex"`
	ClientNumber   string     `gorm:"type:varchar(20);not null;index"`
	Name           string     `gorm:"type:varchar(255);not null"`
	NameKana       string     `gorm:"type:varchar(255)"`
	Status         string     `gorm:"type:varchar(20);not null;default:'active';index"`
	DisabilityType *string    `gorm:"type:varchar(100)"`
	GradeLevel     *string    `gorm:"type:varchar(50)"`
	AdmittedAt     *time.Time `gorm:"type:date"`
	ExitedAt       *time.Time `gorm:"type:date"`
	Notes          *string    `gorm:"type:text"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
	DeletedAt      gorm.DeletedAt `gorm:"index"`
}

func (Client) TableName() string {
	return "clients"
}

func validStatus(s string) bool {
	switch s {
	case StatusActive, StatusSuspended, StatusExited:
		return true
	default:
		return false
	}
}
