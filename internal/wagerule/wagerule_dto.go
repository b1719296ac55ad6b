package wagerule

import "encoding/json"

type CreateWageRuleRequest struct {
	ClientID        *string         `json:"client_id"`
	Name            string          `json:"name" binding:"required"`
	CalculationType string          `json:"calculation_type" binding:"required"`
	HourlyRate      *int64          `json:"hourly_rate"`
	DailyRate       *int64          `json:"daily_rate"`
	PieceRates      json.RawMessage `json:"piece_rates"`
	Deductions      json.RawMessage `json:"deductions"`
	ValidFrom       string          `json:"valid_from" binding:"required"`
	ValidUntil      *string         `json:"valid_until"`
	IsDefault       bool            `json:"is_default"`
}

type UpdateWageRuleRequest struct {
	Name            string          `json:"name" binding:"required"`
	CalculationType string          `json:"calculation_type" binding:"required"`
	HourlyRate      *int64          `json:"hourly_rate"`
	DailyRate       *int64          `json:"daily_rate"`
	PieceRates      json.RawMessage `json:"piece_rates"`
	Deductions      json.RawMessage `json:"deductions"`
	ValidFrom       string          `json:"valid_from" binding:"required"`
	ValidUntil      *string         `json:"valid_until"`
	IsDefault       bool            `json:"is_default"`
}

type WageRuleResponse struct {
	ID              string          `json:"id"`
	OrganizationID  string          `json:"organization_id"`
	ClientID        *string         `json:"client_id,omitempty"`
	Name            string          `json:"name"`
	CalculationType string          `json:"calculation_type"`
	HourlyRate      *int64          `json:"hourly_rate,omitempty"`
	DailyRate       *int64          `json:"daily_rate,omitempty"`
	PieceRates      json.RawMessage `json:"piece_rates,omitempty"`
	Deductions      json.RawMessage `json:"deductions,omitempty"`
	ValidFrom       string          `json:"valid_from"`
	ValidUntil      *string         `json:"valid_until,omitempty"`
	IsDefault       bool            `json:"is_default"`
}
