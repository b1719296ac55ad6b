package auth

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is a login account. Staff accounts carry a role; client accounts link
// to the client (service user) record they belong to.
type User struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrganizationID uuid.UUID  `gorm:"type:uuid;not null;index"`
	ClientID       *uuid.UUID `gorm:"type:uuid;uniqueIndex"`
	Name           string     `gorm:"type:varchar(255);not null"`
	Email          string     `gorm:"type:varchar(255);uniqueIndex;not null"`
	Password       string     `gorm:"type:varchar(255);not null"`
	UserType       string     `gorm:"type:varchar(10);not null;default:'staff'"`
	Role           string     `gorm:"type:varchar(50);not null;default:'STAFF'"`
	IsActive       bool       `gorm:"default:true"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
	DeletedAt      gorm.DeletedAt `gorm:"index"`
}
