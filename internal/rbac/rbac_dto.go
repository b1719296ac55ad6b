package rbac

type EnforceRequest struct {
	ActorID        string `json:"actor_id"`
	OrganizationID string `json:"organization_id"`
	Resource       string `json:"resource"`
	Action         string `json:"action"`
}

type EnforceResponse struct {
	Allowed bool `json:"allowed"`
}
