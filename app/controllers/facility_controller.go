package controllers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"gorm.io/gorm"

	"github.com/ManuelReschke/FacilityFox/app/models"
	"github.com/ManuelReschke/FacilityFox/app/repository"
	"github.com/ManuelReschke/FacilityFox/internal/pkg/authz"
	"github.com/ManuelReschke/FacilityFox/internal/pkg/database"
	"github.com/ManuelReschke/FacilityFox/internal/pkg/entitlements"
	"github.com/ManuelReschke/FacilityFox/internal/pkg/invitecode"
	"github.com/ManuelReschke/FacilityFox/internal/pkg/jobqueue"
	"github.com/ManuelReschke/FacilityFox/internal/pkg/usercontext"
)

type facilityRequest struct {
	Name        string `json:"name"`
	Address     string `json:"address"`
	Description string `json:"description"`
	Notes       string `json:"notes"`
}

// HandleListFacilities returns the facilities the current user owns or belongs to.
func HandleListFacilities(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)

	repo := repository.GetGlobalFactory().GetFacilityRepository()
	facilities, err := repo.GetForUser(userCtx.UserID)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load facilities")
	}

	return c.JSON(fiber.Map{"facilities": facilities})
}

// HandleCreateFacility creates a facility owned by the current user.
func HandleCreateFacility(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)

	var req facilityRequest
	if err := c.BodyParser(&req); err != nil {
		return apiError(c, fiber.StatusBadRequest, "bad_request", "Invalid request body")
	}

	facility := models.Facility{
		Name:               req.Name,
		Address:            req.Address,
		Description:        req.Description,
		Notes:              req.Notes,
		OwnerID:            userCtx.UserID,
		SubscriptionStatus: models.SubscriptionStatusPending,
	}
	if err := facility.Validate(); err != nil {
		return apiError(c, fiber.StatusUnprocessableEntity, "validation_failed", err.Error())
	}

	repo := repository.GetGlobalFactory().GetFacilityRepository()
	if err := repo.Create(&facility); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to create facility")
	}

	return c.Status(fiber.StatusCreated).JSON(facility)
}

// HandleGetFacility returns a single facility if the user has access.
func HandleGetFacility(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	facilityID := parseIDParam(c, "id")

	facility, role, errResp := loadFacilityWithRole(c, facilityID, userCtx.UserID)
	if errResp != nil {
		return errResp
	}

	return c.JSON(fiber.Map{
		"facility": facility,
		"role":     role,
	})
}

// HandleUpdateFacility updates facility master data. Owner or admin only.
func HandleUpdateFacility(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	facilityID := parseIDParam(c, "id")

	facility, role, errResp := loadFacilityWithRole(c, facilityID, userCtx.UserID)
	if errResp != nil {
		return errResp
	}
	if !authz.IsAdminOrOwnerRole(role) {
		return apiError(c, fiber.StatusForbidden, "forbidden", "Owner or admin role required")
	}

	var req facilityRequest
	if err := c.BodyParser(&req); err != nil {
		return apiError(c, fiber.StatusBadRequest, "bad_request", "Invalid request body")
	}

	if req.Name != "" {
		facility.Name = req.Name
	}
	if req.Address != "" {
		facility.Address = req.Address
	}
	facility.Description = req.Description
	facility.Notes = req.Notes

	if err := facility.Validate(); err != nil {
		return apiError(c, fiber.StatusUnprocessableEntity, "validation_failed", err.Error())
	}

	repo := repository.GetGlobalFactory().GetFacilityRepository()
	if err := repo.Update(facility); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to update facility")
	}

	return c.JSON(facility)
}

// HandleDeleteFacility soft deletes a facility. Owner only.
func HandleDeleteFacility(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	facilityID := parseIDParam(c, "id")

	facility, _, errResp := loadFacilityWithRole(c, facilityID, userCtx.UserID)
	if errResp != nil {
		return errResp
	}
	if facility.OwnerID != userCtx.UserID {
		return apiError(c, fiber.StatusForbidden, "forbidden", "Only the owner can delete a facility")
	}

	repo := repository.GetGlobalFactory().GetFacilityRepository()
	if err := repo.Delete(facilityID); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to delete facility")
	}

	return c.JSON(fiber.Map{"message": "facility deleted"})
}

// HandleListFacilityMembers returns the member list of a facility.
func HandleListFacilityMembers(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	facilityID := parseIDParam(c, "id")

	_, _, errResp := loadFacilityWithRole(c, facilityID, userCtx.UserID)
	if errResp != nil {
		return errResp
	}

	repo := repository.GetGlobalFactory().GetFacilityRepository()
	members, err := repo.GetMembers(facilityID)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load members")
	}

	return c.JSON(fiber.Map{"members": members})
}

type updateMemberRequest struct {
	Role string `json:"role"`
}

// HandleUpdateFacilityMember changes a member's role. Owner or admin only.
func HandleUpdateFacilityMember(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	facilityID := parseIDParam(c, "id")
	memberUserID := parseIDParam(c, "userId")

	facility, role, errResp := loadFacilityWithRole(c, facilityID, userCtx.UserID)
	if errResp != nil {
		return errResp
	}
	if !authz.IsAdminOrOwnerRole(role) {
		return apiError(c, fiber.StatusForbidden, "forbidden", "Owner or admin role required")
	}
	if memberUserID == facility.OwnerID {
		return apiError(c, fiber.StatusConflict, "owner_immutable", "The owner role cannot be changed")
	}

	var req updateMemberRequest
	if err := c.BodyParser(&req); err != nil {
		return apiError(c, fiber.StatusBadRequest, "bad_request", "Invalid request body")
	}
	if !models.IsValidMembershipRole(req.Role) {
		return apiError(c, fiber.StatusUnprocessableEntity, "invalid_role", "Unknown membership role")
	}

	repo := repository.GetGlobalFactory().GetFacilityRepository()
	membership, err := repo.GetMembership(facilityID, memberUserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apiError(c, fiber.StatusNotFound, "not_found", "Membership not found")
		}
		return apiError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load membership")
	}

	membership.Role = req.Role
	if err := repo.UpdateMember(membership); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to update membership")
	}

	return c.JSON(membership)
}

// HandleRemoveFacilityMember removes a member from a facility. Owner or admin only.
func HandleRemoveFacilityMember(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	facilityID := parseIDParam(c, "id")
	memberUserID := parseIDParam(c, "userId")

	facility, role, errResp := loadFacilityWithRole(c, facilityID, userCtx.UserID)
	if errResp != nil {
		return errResp
	}
	if !authz.IsAdminOrOwnerRole(role) {
		return apiError(c, fiber.StatusForbidden, "forbidden", "Owner or admin role required")
	}
	if memberUserID == facility.OwnerID {
		return apiError(c, fiber.StatusConflict, "owner_immutable", "The owner cannot be removed")
	}

	repo := repository.GetGlobalFactory().GetFacilityRepository()
	if err := repo.RemoveMember(facilityID, memberUserID); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to remove member")
	}

	return c.JSON(fiber.Map{"message": "member removed"})
}

type createInviteRequest struct {
	Email string `json:"email"`
	Role  string `json:"role"`
}

// HandleCreateFacilityInvite creates an invite code and mails it to the invitee.
func HandleCreateFacilityInvite(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	facilityID := parseIDParam(c, "id")

	facility, role, errResp := loadFacilityWithRole(c, facilityID, userCtx.UserID)
	if errResp != nil {
		return errResp
	}
	if !authz.IsAdminOrOwnerRole(role) {
		return apiError(c, fiber.StatusForbidden, "forbidden", "Owner or admin role required")
	}
	if !entitlements.CanInviteMembers(facility) {
		return apiError(c, fiber.StatusPaymentRequired, "subscription_inactive", "Facility subscription does not allow invites")
	}

	var req createInviteRequest
	if err := c.BodyParser(&req); err != nil {
		return apiError(c, fiber.StatusBadRequest, "bad_request", "Invalid request body")
	}
	if req.Role == "" {
		req.Role = models.FacilityRoleMember
	}
	if !models.IsValidMembershipRole(req.Role) {
		return apiError(c, fiber.StatusUnprocessableEntity, "invalid_role", "Unknown membership role")
	}

	code, err := invitecode.Generate(invitecode.DefaultLength)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to generate invite code")
	}

	invite := models.FacilityInvite{
		FacilityID: facilityID,
		Code:       code,
		Role:       req.Role,
		Email:      req.Email,
		CreatedBy:  userCtx.UserID,
		ExpiresAt:  time.Now().Add(models.InviteValidity),
	}

	repo := repository.GetGlobalFactory().GetFacilityRepository()
	if err := repo.CreateInvite(&invite); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to create invite")
	}

	if req.Email != "" {
		if err := jobqueue.GetManager().EnqueueInviteMail(req.Email, facility.Name, code); err != nil {
			log.Errorf("failed to enqueue invite mail for %s: %v", req.Email, err)
		}
	}

	return c.Status(fiber.StatusCreated).JSON(invite)
}

// HandleListFacilityInvites returns the invites of a facility. Owner or admin only.
func HandleListFacilityInvites(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	facilityID := parseIDParam(c, "id")

	_, role, errResp := loadFacilityWithRole(c, facilityID, userCtx.UserID)
	if errResp != nil {
		return errResp
	}
	if !authz.IsAdminOrOwnerRole(role) {
		return apiError(c, fiber.StatusForbidden, "forbidden", "Owner or admin role required")
	}

	repo := repository.GetGlobalFactory().GetFacilityRepository()
	invites, err := repo.GetInvites(facilityID)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load invites")
	}

	return c.JSON(fiber.Map{"invites": invites})
}

// HandleRedeemFacilityInvite joins the current user to a facility via invite code.
func HandleRedeemFacilityInvite(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	code := c.Params("code")

	repo := repository.GetGlobalFactory().GetFacilityRepository()
	invite, err := repo.GetInviteByCode(code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apiError(c, fiber.StatusNotFound, "not_found", "Invite not found")
		}
		return apiError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load invite")
	}

	if !invite.IsRedeemable(time.Now()) {
		return apiError(c, fiber.StatusGone, "invite_expired", "Invite expired or already used")
	}

	role, err := authz.ResolveRole(database.GetDB(), invite.FacilityID, userCtx.UserID)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to check membership")
	}
	if role != authz.RoleNone {
		return apiError(c, fiber.StatusConflict, "already_member", "Already a member of this facility")
	}

	membership := models.FacilityMembership{
		FacilityID: invite.FacilityID,
		UserID:     userCtx.UserID,
		Role:       invite.Role,
	}
	if err := repo.AddMember(&membership); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to join facility")
	}

	now := time.Now()
	invite.UsedAt = &now
	invite.UsedBy = &userCtx.UserID
	if err := repo.UpdateInvite(invite); err != nil {
		log.Errorf("failed to mark invite %d as used: %v", invite.ID, err)
	}

	return c.Status(fiber.StatusCreated).JSON(membership)
}

// loadFacilityWithRole loads a facility and resolves the caller's role.
// Returns a non-nil error response when access is denied or loading fails.
func loadFacilityWithRole(c *fiber.Ctx, facilityID, userID uint) (*models.Facility, string, error) {
	if facilityID == 0 {
		return nil, "", apiError(c, fiber.StatusBadRequest, "bad_request", "Invalid facility id")
	}

	repo := repository.GetGlobalFactory().GetFacilityRepository()
	facility, err := repo.GetByID(facilityID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", apiError(c, fiber.StatusNotFound, "not_found", "Facility not found")
		}
		return nil, "", apiError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load facility")
	}

	role, err := authz.ResolveRole(database.GetDB(), facilityID, userID)
	if err != nil {
		return nil, "", apiError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to resolve role")
	}
	if role == authz.RoleNone {
		return nil, "", apiError(c, fiber.StatusForbidden, "forbidden", "No access to this facility")
	}

	return facility, role, nil
}
