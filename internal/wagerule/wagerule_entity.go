package wagerule

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Calculation types. "none" is never stored; it is the resolution outcome when
// no rule covers a period.
const (
	CalcHourly    = "hourly"
	CalcDaily     = "daily"
	CalcPieceRate = "piece_rate"
	CalcMixed     = "mixed"
	CalcNone      = "none"
)

// Deduction spec types.
const (
	DeductionFixed      = "fixed"
	DeductionPercentage = "percentage"
)

// WageRule is a pricing policy: either an organization-wide default
// (ClientID nil) or bound to one client. Amounts are yen.
type WageRule struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrganizationID  uuid.UUID  `gorm:"type:uuid;not null;index"`
	ClientID        *uuid.UUID `gorm:"type:uuid;index"`
	Name            string     `gorm:"type:varchar(255);not null"`
	CalculationType string     `gorm:"type:varchar(20);not null"`
	HourlyRate      *int64     `gorm:"type:bigint"`
	DailyRate       *int64     `gorm:"type:bigint"`
	// PieceRates is either an array of {work_type, unit_price} objects or an
	// object keyed by work type. Both forms are accepted at parse time.
	PieceRates datatypes.JSON `gorm:"type:jsonb"`
	Deductions datatypes.JSON `gorm:"type:jsonb"`
	ValidFrom  time.Time      `gorm:"type:date;not null"`
	ValidUntil *time.Time     `gorm:"type:date"`
	IsDefault  bool           `gorm:"not null;default:false;index"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
	DeletedAt  gorm.DeletedAt `gorm:"index"`
}

func (WageRule) TableName() string {
	return "wage_rules"
}

// DeductionSpec is one entry of a rule's ordered deduction list.
type DeductionSpec struct {
	Name   string  `json:"name"`
	Type   string  `json:"type"`
	Amount int64   `json:"amount,omitempty"`
	Rate   float64 `json:"rate,omitempty"`
}

func ValidCalculationType(t string) bool {
	switch t {
	case CalcHourly, CalcDaily, CalcPieceRate, CalcMixed:
		return true
	default:
		return false
	}
}

// pieceRateEntry is the array form; unit_price and price are both accepted.
type pieceRateEntry struct {
	WorkType  string   `json:"work_type"`
	UnitPrice *float64 `json:"unit_price"`
	Price     *float64 `json:"price"`
}

// ParsePieceRates normalizes a rule's piece-rate column into a map of
// work type → unit price. A nil/empty column yields an empty map.
func ParsePieceRates(raw []byte) (map[string]float64, error) {
	rates := make(map[string]float64)
	if len(raw) == 0 {
		return rates, nil
	}

	var entries []pieceRateEntry
	if err := json.Unmarshal(raw, &entries); err == nil {
		for _, e := range entries {
			if e.WorkType == "" {
				continue
			}
			switch {
			case e.UnitPrice != nil:
				rates[e.WorkType] = *e.UnitPrice
			case e.Price != nil:
				rates[e.WorkType] = *e.Price
			}
		}
		return rates, nil
	}

	var keyed map[string]float64
	if err := json.Unmarshal(raw, &keyed); err == nil {
		for k, v := range keyed {
			rates[k] = v
		}
		return rates, nil
	}

	return nil, fmt.Errorf("piece_rates is neither an entry array nor a keyed object")
}

// ParseDeductions decodes a rule's deduction list, preserving order.
func ParseDeductions(raw []byte) ([]DeductionSpec, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var specs []DeductionSpec
	if err := json.Unmarshal(raw, &specs); err != nil {
		return nil, fmt.Errorf("invalid deductions payload: %w", err)
	}
	return specs, nil
}
