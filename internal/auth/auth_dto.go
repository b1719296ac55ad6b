package auth

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type AuthResponse struct {
	ID             string  `json:"id"`
	OrganizationID string  `json:"organization_id"`
	ClientID       *string `json:"client_id,omitempty"`
	Email          string  `json:"email"`
	Name           string  `json:"name"`
	UserType       string  `json:"user_type"`
	Role           string  `json:"role,omitempty"`
}
