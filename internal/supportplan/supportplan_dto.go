package supportplan

type CreateSupportPlanRequest struct {
	ClientID      string `json:"client_id" binding:"required,uuid"`
	Title         string `json:"title" binding:"required"`
	LongTermGoal  string `json:"long_term_goal" binding:"required"`
	ShortTermGoal string `json:"short_term_goal"`
	SupportDetail string `json:"support_detail"`
	PeriodStart   string `json:"period_start" binding:"required"`
	PeriodEnd     string `json:"period_end" binding:"required"`
}

type UpdateSupportPlanRequest struct {
	Title         string `json:"title" binding:"required"`
	LongTermGoal  string `json:"long_term_goal" binding:"required"`
	ShortTermGoal string `json:"short_term_goal"`
	SupportDetail string `json:"support_detail"`
	Status        string `json:"status" binding:"required"`
	PeriodStart   string `json:"period_start" binding:"required"`
	PeriodEnd     string `json:"period_end" binding:"required"`
}

type SupportPlanResponse struct {
	ID             string `json:"id"`
	OrganizationID string `json:"organization_id"`
	ClientID       string `json:"client_id"`
	Title          string `json:"title"`
	LongTermGoal   string `json:"long_term_goal"`
	ShortTermGoal  string `json:"short_term_goal,omitempty"`
	SupportDetail  string `json:"support_detail,omitempty"`
	Status         string `json:"status"`
	PeriodStart    string `json:"period_start"`
	PeriodEnd      string `json:"period_end"`
	CreatedAt      string `json:"created_at"`
}

type MonitoringSessionResponse struct {
	ID          string `json:"id"`
	SessionDate string `json:"session_date"`
	Title       string `json:"title"`
	Status      string `json:"status"`
}
