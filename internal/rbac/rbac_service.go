package rbac

import (
	"sync"

	"go-shien/internal/domain"

	"github.com/casbin/casbin/v2"
	"go.uber.org/zap"
)

//go:generate mockgen -source=rbac_service.go -destination=mock/rbac_service_mock.go -package=mock
type Service interface {
	LoadOrganizationPolicy(organizationID string) error
	Enforce(req domain.EnforceRequest) (bool, error)
}

type service struct {
	repo     Repository
	enforcer *casbin.Enforcer
	mu       sync.Mutex
}

func NewService(repo Repository, enforcer *casbin.Enforcer) Service {
	return &service{
		repo:     repo,
		enforcer: enforcer,
	}
}

func (s *service) LoadOrganizationPolicy(organizationID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.loadOrganizationPolicyUnlocked(organizationID)
}

func (s *service) loadOrganizationPolicyUnlocked(organizationID string) error {
	s.enforcer.ClearPolicy()

	staffRoles, err := s.repo.GetStaffRoles(organizationID)
	if err != nil {
		return err
	}

	for _, sr := range staffRoles {
		if _, err := s.enforcer.AddGroupingPolicy(sr.UserID, sr.Role, organizationID); err != nil {
			return err
		}
	}

	rolePerms, err := s.repo.GetRolePermissions(organizationID)
	if err != nil {
		return err
	}

	for _, rp := range rolePerms {
		if _, err := s.enforcer.AddPolicy(rp.Role, organizationID, rp.Resource, rp.Action); err != nil {
			return err
		}
	}

	return nil
}

func (s *service) Enforce(req domain.EnforceRequest) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.loadOrganizationPolicyUnlocked(req.OrganizationID); err != nil {
		return false, err
	}

	allowed, err := s.enforcer.Enforce(
		req.ActorID,
		req.OrganizationID,
		req.Resource,
		req.Action,
	)
	if err != nil {
		return false, err
	}

	zap.L().Named("rbac").Debug("enforce result",
		zap.String("actor_id", req.ActorID),
		zap.String("organization_id", req.OrganizationID),
		zap.String("resource", req.Resource),
		zap.String("action", req.Action),
		zap.Bool("allowed", allowed),
	)

	return allowed, nil
}
