package authz

import (
	"errors"

	"gorm.io/gorm"

	"github.com/ManuelReschke/FacilityFox/app/models"
)

// RoleNone marks a user without any access to a facility.
const RoleNone = ""

// RoleFor derives the effective facility role from the owner reference and
// an optional membership role. The owner is never stored as a membership.
func RoleFor(ownerID, userID uint, membershipRole string) string {
	if ownerID == userID {
		return models.FacilityRoleOwner
	}
	return membershipRole
}

// IsAdminOrOwnerRole reports whether the role may perform administrative
// facility actions.
func IsAdminOrOwnerRole(role string) bool {
	return role == models.FacilityRoleOwner || role == models.FacilityRoleAdmin
}

// ResolveRole returns the effective role of a user on a facility, or
// RoleNone when the user has no access. Role checks for workflow operations
// always go through here so the owner-vs-membership lookup lives in one
// place.
func ResolveRole(db *gorm.DB, facilityID, userID uint) (string, error) {
	var facility models.Facility
	if err := db.Select("id", "owner_id").First(&facility, facilityID).Error; err != nil {
		return RoleNone, err
	}
	if facility.OwnerID == userID {
		return models.FacilityRoleOwner, nil
	}

	var membership models.FacilityMembership
	err := db.Where("facility_id = ? AND user_id = ?", facilityID, userID).First(&membership).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return RoleNone, nil
		}
		return RoleNone, err
	}
	return membership.Role, nil
}

// IsAdminOrOwner reports whether the user administers the facility.
func IsAdminOrOwner(db *gorm.DB, facilityID, userID uint) (bool, error) {
	role, err := ResolveRole(db, facilityID, userID)
	if err != nil {
		return false, err
	}
	return IsAdminOrOwnerRole(role), nil
}

// CanConfirmAppointment decides who may confirm an appointment on an issue:
// the cooperation user when the issue requires cooperation, otherwise a
// facility admin or the owner. Evaluated server-side, never from
// client-supplied role claims.
func CanConfirmAppointment(issue *models.Issue, role string, userID uint) bool {
	if issue.RequiresCooperation {
		return issue.CooperationUserID != nil && *issue.CooperationUserID == userID
	}
	return IsAdminOrOwnerRole(role)
}
