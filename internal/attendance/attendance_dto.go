package attendance

type CheckInRequest struct {
	Notes *string `json:"notes"`
}

type CheckOutRequest struct {
	Notes *string `json:"notes"`
}

type ConfirmRequest struct {
	ClientID       string  `json:"client_id" binding:"required"`
	AttendanceDate string  `json:"attendance_date" binding:"required"`
	Status         string  `json:"status" binding:"required"`
	CheckInTime    *string `json:"check_in_time"`
	CheckOutTime   *string `json:"check_out_time"`
	ActualMinutes  *int    `json:"actual_minutes"`
	Notes          *string `json:"notes"`
}

type ReportResponse struct {
	ID             string  `json:"id"`
	OrganizationID string  `json:"organization_id"`
	ClientID       string  `json:"client_id"`
	ReportDate     string  `json:"report_date"`
	CheckInTime    string  `json:"check_in_time"`
	CheckOutTime   *string `json:"check_out_time,omitempty"`
	Notes          *string `json:"notes,omitempty"`
}

type ConfirmationResponse struct {
	ID             string  `json:"id"`
	OrganizationID string  `json:"organization_id"`
	ClientID       string  `json:"client_id"`
	AttendanceDate string  `json:"attendance_date"`
	Status         string  `json:"status"`
	CheckInTime    *string `json:"check_in_time,omitempty"`
	CheckOutTime   *string `json:"check_out_time,omitempty"`
	ActualMinutes  *int    `json:"actual_minutes,omitempty"`
	ConfirmedByID  string  `json:"confirmed_by_id"`
	Notes          *string `json:"notes,omitempty"`
}
