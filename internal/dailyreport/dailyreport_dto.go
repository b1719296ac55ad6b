package dailyreport

type CreateDailyReportRequest struct {
	ReportDate string  `json:"report_date" binding:"required"`
	Mood       string  `json:"mood" binding:"required"`
	Note       *string `json:"note"`
}

type CommentRequest struct {
	Comment string `json:"comment" binding:"required"`
}

type DailyReportResponse struct {
	ID            string  `json:"id"`
	ClientID      string  `json:"client_id"`
	ReportDate    string  `json:"report_date"`
	Mood          string  `json:"mood"`
	Note          *string `json:"note,omitempty"`
	StaffComment  *string `json:"staff_comment,omitempty"`
	CommentedByID *string `json:"commented_by_id,omitempty"`
	CreatedAt     string  `json:"created_at"`
}
