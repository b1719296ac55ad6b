package worklog

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// WorkLog is one unit-of-work record: what a client produced of a given work
// type on a date. Many rows may exist per client per day (distinct types).
type WorkLog struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrganizationID uuid.UUID `gorm:"type:uuid;not null;index"`
	ClientID       uuid.UUID `gorm:"type:uuid;not null;index"`
	WorkDate       time.Time `gorm:"type:date;not null;index"`
	WorkType       string    `gorm:"type:varchar(100);not null"`
	Quantity       float64   `gorm:"type:numeric(12,2);not null;default:0"`
	Unit           string    `gorm:"type:varchar(30)"`
	Notes          *string   `gorm:"type:text"`
	CreatedBy      uuid.UUID `gorm:"type:uuid;not null"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
	DeletedAt      gorm.DeletedAt `gorm:"index"`
}

func (WorkLog) TableName() string {
	return "work_logs"
}
