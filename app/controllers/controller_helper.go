package controllers

import (
	"errors"
	"strconv"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/ManuelReschke/FacilityFox/internal/pkg/appointments"
	"github.com/ManuelReschke/FacilityFox/internal/pkg/cache"
	"github.com/ManuelReschke/FacilityFox/internal/pkg/database"
	"github.com/ManuelReschke/FacilityFox/internal/pkg/jobqueue"
	"github.com/ManuelReschke/FacilityFox/internal/pkg/notifier"
	"github.com/ManuelReschke/FacilityFox/internal/pkg/workflow"
)

const (
	AUTH_KEY       string = "authenticated"
	USER_ID        string = "user_id"
	USER_NAME      string = "username"
	USER_IS_ADMIN  string = "isAdmin"
	FROM_PROTECTED string = "from_protected"
)

var (
	serviceOnce        sync.Once
	notifierService    *notifier.Service
	workflowService    *workflow.Service
	appointmentService *appointments.Service
)

func initServices() {
	serviceOnce.Do(func() {
		db := database.GetDB()
		notifierService = notifier.NewService(db, cache.GetClient(), jobqueue.GetManager())
		workflowService = workflow.NewService(db, notifierService)
		appointmentService = appointments.NewService(db, notifierService)
	})
}

// GetNotifierService returns the shared notification service
func GetNotifierService() *notifier.Service {
	initServices()
	return notifierService
}

// GetWorkflowService returns the shared service-request workflow service
func GetWorkflowService() *workflow.Service {
	initServices()
	return workflowService
}

// GetAppointmentService returns the shared appointment service
func GetAppointmentService() *appointments.Service {
	initServices()
	return appointmentService
}

// parseIDParam parses a numeric route parameter, returning 0 on failure
func parseIDParam(c *fiber.Ctx, name string) uint {
	value, err := strconv.ParseUint(c.Params(name), 10, 64)
	if err != nil {
		return 0
	}
	return uint(value)
}

// parsePagination reads offset/limit query parameters with sane bounds
func parsePagination(c *fiber.Ctx) (int, int) {
	offset := c.QueryInt("offset", 0)
	if offset < 0 {
		offset = 0
	}
	limit := c.QueryInt("limit", 25)
	if limit < 1 || limit > 100 {
		limit = 25
	}
	return offset, limit
}

func formatTimePtr(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return t.UTC().Format(time.RFC3339)
}

// apiError writes the standard JSON error envelope
func apiError(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": code, "message": message})
}

// mapWorkflowError translates workflow and appointment sentinel errors into
// their HTTP representations.
func mapWorkflowError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apiError(c, fiber.StatusNotFound, "not_found", "Resource not found")
	case errors.Is(err, workflow.ErrNotAuthorized), errors.Is(err, appointments.ErrNotAuthorized):
		return apiError(c, fiber.StatusForbidden, "forbidden", "Not allowed to perform this action")
	case errors.Is(err, workflow.ErrDuplicateApplication):
		return apiError(c, fiber.StatusConflict, "duplicate_application", "Provider already applied to this request")
	case errors.Is(err, workflow.ErrCapacityExceeded):
		return apiError(c, fiber.StatusConflict, "capacity_exceeded", "Maximum 3 applicants reached")
	case errors.Is(err, workflow.ErrRequestClosed):
		return apiError(c, fiber.StatusConflict, "request_closed", "Service request is closed")
	case errors.Is(err, workflow.ErrSelectionCancelled):
		return apiError(c, fiber.StatusConflict, "selection_cancelled", "Provider selection was cancelled for this issue")
	case errors.Is(err, workflow.ErrNoActiveSelection):
		return apiError(c, fiber.StatusConflict, "no_active_selection", "No active provider selection on this issue")
	case errors.Is(err, workflow.ErrOpenRequestLimit):
		return apiError(c, fiber.StatusConflict, "open_request_limit", "Too many open service requests on this issue")
	case errors.Is(err, workflow.ErrApplicationDecided):
		return apiError(c, fiber.StatusConflict, "application_decided", "Application was already decided")
	case errors.Is(err, workflow.ErrEmptyReason):
		return apiError(c, fiber.StatusUnprocessableEntity, "empty_reason", "A cancellation reason is required")
	case errors.Is(err, workflow.ErrSubscriptionInactive):
		return apiError(c, fiber.StatusPaymentRequired, "subscription_inactive", "Facility subscription is not active")
	case errors.Is(err, appointments.ErrInvalidTransition):
		return apiError(c, fiber.StatusConflict, "invalid_transition", "Appointment state does not allow this change")
	case errors.Is(err, appointments.ErrProviderNotOnIssue):
		return apiError(c, fiber.StatusForbidden, "forbidden", "Provider is not assigned to this issue")
	default:
		return apiError(c, fiber.StatusInternalServerError, "internal_server_error", "Operation failed")
	}
}
