package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	FacilityRoleOwner  = "owner"
	FacilityRoleAdmin  = "admin"
	FacilityRoleMember = "member"
	FacilityRoleViewer = "viewer"
)

// FacilityMembership links a user to a facility with a role. The owner role
// is derived from Facility.OwnerID and is never stored here.
type FacilityMembership struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	FacilityID uint           `gorm:"not null;index:ux_facility_memberships_facility_user,unique,priority:1" json:"facility_id"`
	Facility   Facility       `gorm:"foreignKey:FacilityID" json:"facility,omitempty"`
	UserID     uint           `gorm:"not null;index:ux_facility_memberships_facility_user,unique,priority:2" json:"user_id"`
	User       User           `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Role       string         `gorm:"type:varchar(32);not null;default:'member'" json:"role" validate:"oneof=admin member viewer"`
	CreatedAt  time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

// IsValidMembershipRole reports whether role may be stored on a membership
// row. "owner" is intentionally excluded.
func IsValidMembershipRole(role string) bool {
	switch role {
	case FacilityRoleAdmin, FacilityRoleMember, FacilityRoleViewer:
		return true
	}
	return false
}
