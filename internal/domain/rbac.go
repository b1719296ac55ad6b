package domain

// User types carried in the JWT. A Client is a service user of the facility,
// not an HTTP client.
const (
	UserTypeStaff  = "staff"
	UserTypeClient = "client"
)

// Staff roles.
const (
	RoleAdmin   = "ADMIN"
	RoleManager = "MANAGER"
	RoleStaff   = "STAFF"
)

type EnforceRequest struct {
	ActorID        string
	OrganizationID string
	Resource       string
	Action         string
}
