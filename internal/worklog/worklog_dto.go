package worklog

type CreateWorkLogRequest struct {
	ClientID string  `json:"client_id" binding:"required"`
	WorkDate string  `json:"work_date" binding:"required"`
	WorkType string  `json:"work_type" binding:"required"`
	Quantity float64 `json:"quantity" binding:"required"`
	Unit     string  `json:"unit"`
	Notes    *string `json:"notes"`
}

type UpdateWorkLogRequest struct {
	WorkType string  `json:"work_type" binding:"required"`
	Quantity float64 `json:"quantity" binding:"required"`
	Unit     string  `json:"unit"`
	Notes    *string `json:"notes"`
}

type WorkLogResponse struct {
	ID             string  `json:"id"`
	OrganizationID string  `json:"organization_id"`
	ClientID       string  `json:"client_id"`
	WorkDate       string  `json:"work_date"`
	WorkType       string  `json:"work_type"`
	Quantity       float64 `json:"quantity"`
	Unit           string  `json:"unit,omitempty"`
	Notes          *string `json:"notes,omitempty"`
}
