package payroll

import "encoding/json"

type CreateRunRequest struct {
	// Period is the target calendar month, e.g. "2025-09".
	Period string `json:"period" binding:"required"`
}

type PayrollRunResponse struct {
	ID             string  `json:"id"`
	OrganizationID string  `json:"organization_id"`
	PeriodStart    string  `json:"period_start"`
	PeriodEnd      string  `json:"period_end"`
	Status         string  `json:"status"`
	CreatedBy      string  `json:"created_by"`
	ConfirmedBy    *string `json:"confirmed_by,omitempty"`
	ConfirmedAt    *string `json:"confirmed_at,omitempty"`
	PaidAt         *string `json:"paid_at,omitempty"`
	CreatedAt      string  `json:"created_at"`
	LineCount      int     `json:"line_count,omitempty"`
	TotalNet       int64   `json:"total_net,omitempty"`
}

type PayrollLineResponse struct {
	ID               string          `json:"id"`
	RunID            string          `json:"run_id"`
	ClientID         string          `json:"client_id"`
	WorkDays         int             `json:"work_days"`
	TotalMinutes     int             `json:"total_minutes"`
	BaseAmount       int64           `json:"base_amount"`
	PieceAmount      int64           `json:"piece_amount"`
	DeductionsAmount int64           `json:"deductions_amount"`
	NetAmount        int64           `json:"net_amount"`
	Breakdown        json.RawMessage `json:"breakdown,omitempty"`
}

type PayrollRunDetailResponse struct {
	Run   PayrollRunResponse    `json:"run"`
	Lines []PayrollLineResponse `json:"lines"`
}
