package client

type CreateClientRequest struct {
	Name           string  `json:"name" binding:"required"`
	NameKana       string  `json:"name_kana"`
	ClientNumber   string  `json:"client_number"`
	DisabilityType *string `json:"disability_type"`
	GradeLevel     *string `json:"grade_level"`
	AdmittedAt     string  `json:"admitted_at"`
	Notes          *string `json:"notes"`
}

type UpdateClientRequest struct {
	Name           string  `json:"name" binding:"required"`
	NameKana       string  `json:"name_kana"`
	DisabilityType *string `json:"disability_type"`
	GradeLevel     *string `json:"grade_level"`
	Notes          *string `json:"notes"`
}

type ChangeStatusRequest struct {
	Status   string `json:"status" binding:"required"`
	ExitedAt string `json:"exited_at"`
}

type ClientResponse struct {
	ID             string  `json:"id"`
	OrganizationID string  `json:"organization_id"`
	ClientNumber   string  `json:"client_number"`
	Name           string  `json:"name"`
	NameKana       string  `json:"name_kana,omitempty"`
	Status         string  `json:"status"`
	DisabilityType *string `json:"disability_type,omitempty"`
	GradeLevel     *string `json:"grade_level,omitempty"`
	AdmittedAt     *string `json:"admitted_at,omitempty"`
	ExitedAt       *string `json:"exited_at,omitempty"`
	Notes          *string `json:"notes,omitempty"`
}
