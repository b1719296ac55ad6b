package tenant

import "gorm.io/gorm"

// Scope restricts a query to one organization. Every repository query over
// tenant-owned tables goes through this.
func Scope(organizationID string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("organization_id = ?", organizationID)
	}
}
