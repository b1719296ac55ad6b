package certificate

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Expiry bands. valid means more than 90 days out.
const (
	StatusExpired      = "expired"
	StatusExpiringSoon = "expiring_soon"
	StatusWithin90Days = "within_90_days"
	StatusValid        = "valid"
)

// Certificate types issued to clients (disability certificate, service
// eligibility decision, and similar).
const (
	TypeDisability  = "disability_certificate"
	TypeEligibility = "service_eligibility"
	TypeOther       = "other"
)

// Certificate tracks one document's validity window. Status is stamped at
// write time from the same classification used at read time; reads always
// recompute, so the stored value is a cache that may lag by a day.
type Certificate struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrganizationID  uuid.UUID `gorm:"type:uuid;not null;index"`
	ClientID        uuid.UUID `gorm:"type:uuid;not null;index"`
	CertificateType string    `gorm:"type:varchar(50);not null"`
	Number          string    `gorm:"type:varchar(100)"`
	ValidFrom       time.Time `gorm:"type:date;not null"`
	ValidUntil      time.Time `gorm:"type:date;not null;index"`
	Status          string    `gorm:"type:varchar(20);not null"`
	Notes           *string   `gorm:"type:text"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
	DeletedAt       gorm.DeletedAt `gorm:"index"`
}

func (Certificate) TableName() string {
	return "certificates"
}

func ValidCertificateType(t string) bool {
	switch t {
	case TypeDisability, TypeEligibility, TypeOther:
		return true
	default:
		return false
	}
}

// Classify buckets a validity end date against today. A certificate is
// expired strictly before today, expiring_soon inside 30 days, and in the
// 90-day band up to and including today+90d.
func Classify(today, validUntil time.Time) string {
	today = today.Truncate(24 * time.Hour)
	validUntil = validUntil.Truncate(24 * time.Hour)

	switch {
	case validUntil.Before(today):
		return StatusExpired
	case validUntil.Before(today.AddDate(0, 0, 30)):
		return StatusExpiringSoon
	case !validUntil.After(today.AddDate(0, 0, 90)):
		return StatusWithin90Days
	default:
		return StatusValid
	}
}
