package certificate

type CreateCertificateRequest struct {
	ClientID        string  `json:"client_id" binding:"required,uuid"`
	CertificateType string  `json:"certificate_type" binding:"required"`
	Number          string  `json:"number"`
	ValidFrom       string  `json:"valid_from" binding:"required"`
	ValidUntil      string  `json:"valid_until" binding:"required"`
	Notes           *string `json:"notes"`
}

type UpdateCertificateRequest struct {
	CertificateType string  `json:"certificate_type" binding:"required"`
	Number          string  `json:"number"`
	ValidFrom       string  `json:"valid_from" binding:"required"`
	ValidUntil      string  `json:"valid_until" binding:"required"`
	Notes           *string `json:"notes"`
}

type CertificateResponse struct {
	ID              string `json:"id"`
	OrganizationID  string `json:"organization_id"`
	ClientID        string `json:"client_id"`
	CertificateType string `json:"certificate_type"`
	Number          string `json:"number,omitempty"`
	ValidFrom       string `json:"valid_from"`
	ValidUntil      string `json:"valid_until"`
	// Status is recomputed at read time; the stored column is only a cache.
	Status string  `json:"status"`
	Notes  *string `json:"notes,omitempty"`
}

type ExpiryReportResponse struct {
	GeneratedAt  string                `json:"generated_at"`
	Expired      []CertificateResponse `json:"expired"`
	ExpiringSoon []CertificateResponse `json:"expiring_soon"`
	Within90Days []CertificateResponse `json:"within_90_days"`
}
