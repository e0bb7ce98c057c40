package controllers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/ManuelReschke/FacilityFox/app/models"
	"github.com/ManuelReschke/FacilityFox/app/repository"
	"github.com/ManuelReschke/FacilityFox/internal/pkg/usercontext"
)

type proposeAppointmentRequest struct {
	Date  string `json:"date"`
	Time  string `json:"time"`
	Notes string `json:"notes"`
}

// HandleProposeAppointment lets the assigned provider propose a date.
func HandleProposeAppointment(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	if !userCtx.IsProvider {
		return apiError(c, fiber.StatusForbidden, "forbidden", "provider profile required")
	}

	issueID := parseIDParam(c, "issueId")

	var req proposeAppointmentRequest
	if err := c.BodyParser(&req); err != nil {
		return apiError(c, fiber.StatusBadRequest, "bad_request", "Invalid request body")
	}

	appointment, err := GetAppointmentService().Propose(issueID, userCtx.ProviderID, req.Date, req.Time, req.Notes, userCtx.UserID)
	if err != nil {
		return mapWorkflowError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(appointment)
}

// HandleListIssueAppointments returns all appointments proposed on an issue.
func HandleListIssueAppointments(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)

	issue, _, errResp := loadIssueWithRole(c, userCtx.UserID)
	if errResp != nil {
		return errResp
	}

	repo := repository.GetGlobalFactory().GetAppointmentRepository()
	appointments, err := repo.GetByIssue(issue.ID)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load appointments")
	}

	return c.JSON(fiber.Map{"appointments": appointments})
}

// HandleConfirmAppointment confirms a proposed appointment. When the issue
// requires cooperation the designated user confirms, otherwise an admin or
// the owner does.
func HandleConfirmAppointment(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	issueID := parseIDParam(c, "issueId")
	appointmentID := parseIDParam(c, "appointmentId")

	appointment, err := GetAppointmentService().Confirm(appointmentID, issueID, userCtx.UserID)
	if err != nil {
		return mapWorkflowError(c, err)
	}

	return c.JSON(appointment)
}

// HandleRejectAppointment rejects a proposed appointment.
func HandleRejectAppointment(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)

	issue, role, errResp := loadIssueWithRole(c, userCtx.UserID)
	if errResp != nil {
		return errResp
	}
	if role != models.FacilityRoleOwner && role != models.FacilityRoleAdmin {
		// The cooperation user may also reject a proposed date.
		if issue.CooperationUserID == nil || *issue.CooperationUserID != userCtx.UserID {
			return apiError(c, fiber.StatusForbidden, "forbidden", "Not allowed to decide on appointments")
		}
	}

	appointmentID := parseIDParam(c, "appointmentId")
	appointment, err := GetAppointmentService().Reject(appointmentID, issue.ID)
	if err != nil {
		return mapWorkflowError(c, err)
	}

	return c.JSON(appointment)
}

// HandleCompleteAppointment marks a confirmed appointment as completed.
func HandleCompleteAppointment(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)

	issue, role, errResp := loadIssueWithRole(c, userCtx.UserID)
	if errResp != nil {
		return errResp
	}
	if role != models.FacilityRoleOwner && role != models.FacilityRoleAdmin {
		return apiError(c, fiber.StatusForbidden, "forbidden", "Owner or admin role required")
	}

	appointmentID := parseIDParam(c, "appointmentId")
	appointment, err := GetAppointmentService().Complete(appointmentID, issue.ID)
	if err != nil {
		return mapWorkflowError(c, err)
	}

	return c.JSON(appointment)
}

// HandleListProviderAppointments returns the current provider's appointments.
func HandleListProviderAppointments(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	if !userCtx.IsProvider {
		return apiError(c, fiber.StatusForbidden, "forbidden", "provider profile required")
	}

	repo := repository.GetGlobalFactory().GetAppointmentRepository()

	if c.QueryBool("upcoming", false) {
		appointments, err := repo.GetUpcomingByProvider(userCtx.ProviderID, time.Now())
		if err != nil {
			return apiError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load appointments")
		}
		return c.JSON(fiber.Map{"appointments": appointments})
	}

	offset, limit := parsePagination(c)
	appointments, err := repo.GetByProvider(userCtx.ProviderID, offset, limit)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load appointments")
	}

	return c.JSON(fiber.Map{"appointments": appointments})
}
