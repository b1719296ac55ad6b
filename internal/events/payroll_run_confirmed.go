package events

import "time"

const PayrollRunConfirmedTopic = "facility.payroll.run.confirmed.v1"

// PayrollRunConfirmedEvent is published when a draft run is confirmed. The
// payslip worker consumes it to render per-client payslips.
type PayrollRunConfirmedEvent struct {
	EventType      string    `json:"event_type"`
	RunID          string    `json:"run_id"`
	OrganizationID string    `json:"organization_id"`
	PeriodStart    string    `json:"period_start"`
	PeriodEnd      string    `json:"period_end"`
	ConfirmedBy    string    `json:"confirmed_by"`
	OccurredAt     time.Time `json:"occurred_at"`
}
