package rbac

import "gorm.io/gorm"

//go:generate mockgen -source=rbac_repo.go -destination=mock/rbac_repo_mock.go -package=mock
type Repository interface {
	GetStaffRoles(organizationID string) ([]StaffRoleRow, error)
	GetRolePermissions(organizationID string) ([]RolePermissionRow, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// StaffRoleRow assigns a role to one staff user within an organization.
type StaffRoleRow struct {
	UserID string
	Role   string
}

// RolePermissionRow grants a (resource, action) to a role within an organization.
type RolePermissionRow struct {
	Role     string
	Resource string
	Action   string
}

func (r *repository) GetStaffRoles(organizationID string) ([]StaffRoleRow, error) {
	var rows []StaffRoleRow
	err := r.db.
		Table("staff_roles").
		Select("user_id, role").
		Where("organization_id = ?", organizationID).
		Scan(&rows).Error
	return rows, err
}

func (r *repository) GetRolePermissions(organizationID string) ([]RolePermissionRow, error) {
	var rows []RolePermissionRow
	err := r.db.
		Table("role_permissions").
		Select("role, resource, action").
		Where("organization_id = ?", organizationID).
		Scan(&rows).Error
	return rows, err
}
