package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ManuelReschke/FacilityFox/app/models"
)

func TestRoleFor(t *testing.T) {
	assert.Equal(t, models.FacilityRoleOwner, RoleFor(5, 5, ""))
	assert.Equal(t, models.FacilityRoleOwner, RoleFor(5, 5, models.FacilityRoleViewer), "ownership beats any membership role")
	assert.Equal(t, models.FacilityRoleMember, RoleFor(5, 7, models.FacilityRoleMember))
	assert.Equal(t, RoleNone, RoleFor(5, 7, ""))
}

func TestIsAdminOrOwnerRole(t *testing.T) {
	assert.True(t, IsAdminOrOwnerRole(models.FacilityRoleOwner))
	assert.True(t, IsAdminOrOwnerRole(models.FacilityRoleAdmin))
	assert.False(t, IsAdminOrOwnerRole(models.FacilityRoleMember))
	assert.False(t, IsAdminOrOwnerRole(models.FacilityRoleViewer))
	assert.False(t, IsAdminOrOwnerRole(RoleNone))
}

func TestCanConfirmAppointment(t *testing.T) {
	coopUser := uint(42)

	plain := &models.Issue{RequiresCooperation: false}
	assert.True(t, CanConfirmAppointment(plain, models.FacilityRoleOwner, 1))
	assert.True(t, CanConfirmAppointment(plain, models.FacilityRoleAdmin, 1))
	assert.False(t, CanConfirmAppointment(plain, models.FacilityRoleMember, 1))

	coop := &models.Issue{RequiresCooperation: true, CooperationUserID: &coopUser}
	assert.True(t, CanConfirmAppointment(coop, models.FacilityRoleViewer, 42), "the cooperation user confirms regardless of role")
	assert.False(t, CanConfirmAppointment(coop, models.FacilityRoleOwner, 1), "even the owner must defer to the cooperation user")

	orphaned := &models.Issue{RequiresCooperation: true}
	assert.False(t, CanConfirmAppointment(orphaned, models.FacilityRoleOwner, 1))
}
