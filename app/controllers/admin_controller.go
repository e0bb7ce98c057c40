package controllers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"gorm.io/gorm"

	"github.com/ManuelReschke/FacilityFox/app/models"
	"github.com/ManuelReschke/FacilityFox/app/repository"
	"github.com/ManuelReschke/FacilityFox/internal/pkg/jobqueue"
	"github.com/ManuelReschke/FacilityFox/internal/pkg/statistics"
)

// HandleAdminListUsers returns a paginated user list with optional search.
func HandleAdminListUsers(c *fiber.Ctx) error {
	repo := repository.GetGlobalFactory().GetUserRepository()

	if query := c.Query("q"); query != "" {
		users, err := repo.Search(query)
		if err != nil {
			return apiError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to search users")
		}
		return c.JSON(fiber.Map{"users": users})
	}

	offset, limit := parsePagination(c)
	users, err := repo.List(offset, limit)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load users")
	}
	total, err := repo.Count()
	if err != nil {
		total = int64(len(users))
	}

	return c.JSON(fiber.Map{"users": users, "total": total})
}

// HandleAdminListPendingRegistrations returns service registrations awaiting approval.
func HandleAdminListPendingRegistrations(c *fiber.Ctx) error {
	repo := repository.GetGlobalFactory().GetProviderRepository()
	registrations, err := repo.GetRegistrationsByStatus(models.RegistrationStatusPending)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load registrations")
	}

	return c.JSON(fiber.Map{"registrations": registrations})
}

type approveRegistrationRequest struct {
	PaidUntil string `json:"paid_until"` // YYYY-MM-DD, empty for open-ended
}

// HandleAdminApproveRegistration activates a pending registration.
func HandleAdminApproveRegistration(c *fiber.Ctx) error {
	registrationID := parseIDParam(c, "id")

	repo := repository.GetGlobalFactory().GetProviderRepository()
	registration, err := repo.GetRegistration(registrationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apiError(c, fiber.StatusNotFound, "not_found", "Registration not found")
		}
		return apiError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load registration")
	}
	if registration.Status != models.RegistrationStatusPending {
		return apiError(c, fiber.StatusConflict, "already_decided", "Registration was already decided")
	}

	var req approveRegistrationRequest
	if err := c.BodyParser(&req); err != nil {
		return apiError(c, fiber.StatusBadRequest, "bad_request", "Invalid request body")
	}

	if req.PaidUntil != "" {
		paidUntil, err := time.Parse("2006-01-02", req.PaidUntil)
		if err != nil {
			return apiError(c, fiber.StatusUnprocessableEntity, "invalid_date", "paid_until must be YYYY-MM-DD")
		}
		registration.PaidUntil = &paidUntil
	} else {
		registration.PaidUntil = nil
	}

	registration.Status = models.RegistrationStatusActive
	if err := repo.UpdateRegistration(registration); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to update registration")
	}

	if err := GetNotifierService().NotifyUser(registration.Provider.UserID,
		models.NotificationTypeRegistrationApproved,
		"Service registration approved",
		"Your registration for "+registration.Service.Name+" was approved",
		map[string]interface{}{"registration_id": registration.ID, "service_id": registration.ServiceID},
	); err != nil {
		log.Errorf("failed to notify provider about approval of registration %d: %v", registration.ID, err)
	}

	return c.JSON(registration)
}

// HandleAdminDeclineRegistration expires a pending registration.
func HandleAdminDeclineRegistration(c *fiber.Ctx) error {
	registrationID := parseIDParam(c, "id")

	repo := repository.GetGlobalFactory().GetProviderRepository()
	registration, err := repo.GetRegistration(registrationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apiError(c, fiber.StatusNotFound, "not_found", "Registration not found")
		}
		return apiError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load registration")
	}
	if registration.Status != models.RegistrationStatusPending {
		return apiError(c, fiber.StatusConflict, "already_decided", "Registration was already decided")
	}

	registration.Status = models.RegistrationStatusExpired
	if err := repo.UpdateRegistration(registration); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to update registration")
	}

	return c.JSON(registration)
}

type serviceRequestBody struct {
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	DefaultPrice float64 `json:"default_price"`
	Active       *bool   `json:"active"`
}

// HandleAdminCreateService adds a service to the catalog.
func HandleAdminCreateService(c *fiber.Ctx) error {
	var req serviceRequestBody
	if err := c.BodyParser(&req); err != nil {
		return apiError(c, fiber.StatusBadRequest, "bad_request", "Invalid request body")
	}

	service := models.Service{
		Name:         req.Name,
		Description:  req.Description,
		DefaultPrice: req.DefaultPrice,
		Active:       true,
	}
	if req.Active != nil {
		service.Active = *req.Active
	}
	if err := service.Validate(); err != nil {
		return apiError(c, fiber.StatusUnprocessableEntity, "validation_failed", err.Error())
	}

	repo := repository.GetGlobalFactory().GetServiceRepository()
	if err := repo.Create(&service); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to create service")
	}

	return c.Status(fiber.StatusCreated).JSON(service)
}

// HandleAdminUpdateService updates catalog data or toggles availability.
func HandleAdminUpdateService(c *fiber.Ctx) error {
	serviceID := parseIDParam(c, "id")

	repo := repository.GetGlobalFactory().GetServiceRepository()
	service, err := repo.GetByID(serviceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apiError(c, fiber.StatusNotFound, "not_found", "Service not found")
		}
		return apiError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load service")
	}

	var req serviceRequestBody
	if err := c.BodyParser(&req); err != nil {
		return apiError(c, fiber.StatusBadRequest, "bad_request", "Invalid request body")
	}

	if req.Name != "" {
		service.Name = req.Name
	}
	service.Description = req.Description
	if req.DefaultPrice > 0 {
		service.DefaultPrice = req.DefaultPrice
	}
	if req.Active != nil {
		service.Active = *req.Active
	}

	if err := repo.Update(service); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to update service")
	}

	return c.JSON(service)
}

type facilitySubscriptionRequest struct {
	Status    string `json:"status"`
	PaidUntil string `json:"paid_until"` // YYYY-MM-DD, empty to clear
}

// HandleAdminUpdateFacilitySubscription sets a facility's subscription state.
func HandleAdminUpdateFacilitySubscription(c *fiber.Ctx) error {
	facilityID := parseIDParam(c, "id")

	repo := repository.GetGlobalFactory().GetFacilityRepository()
	facility, err := repo.GetByID(facilityID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apiError(c, fiber.StatusNotFound, "not_found", "Facility not found")
		}
		return apiError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load facility")
	}

	var req facilitySubscriptionRequest
	if err := c.BodyParser(&req); err != nil {
		return apiError(c, fiber.StatusBadRequest, "bad_request", "Invalid request body")
	}

	switch req.Status {
	case models.SubscriptionStatusPending, models.SubscriptionStatusPaused, models.SubscriptionStatusActive:
		facility.SubscriptionStatus = req.Status
	default:
		return apiError(c, fiber.StatusUnprocessableEntity, "invalid_status", "Unknown subscription status")
	}

	if req.PaidUntil != "" {
		paidUntil, err := time.Parse("2006-01-02", req.PaidUntil)
		if err != nil {
			return apiError(c, fiber.StatusUnprocessableEntity, "invalid_date", "paid_until must be YYYY-MM-DD")
		}
		facility.PaidUntil = &paidUntil
	} else {
		facility.PaidUntil = nil
	}

	if err := repo.Update(facility); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to update facility")
	}

	return c.JSON(facility)
}

// HandleAdminStatistics returns the cached dashboard numbers.
func HandleAdminStatistics(c *fiber.Ctx) error {
	stats := statistics.GetStatistics()

	return c.JSON(fiber.Map{
		"issues_total":     stats.TotalIssues,
		"issues_open":      stats.OpenIssues,
		"issues_today":     stats.TodayIssues,
		"facilities_total": stats.TotalFacilities,
		"users_total":      stats.TotalUsers,
	})
}

// HandleAdminQueueOverview lists the delivery queue keys and their state.
func HandleAdminQueueOverview(c *fiber.Ctx) error {
	repo := repository.GetGlobalFactory().GetQueueRepository()

	pending, err := repo.GetListLength(jobqueue.JobQueueKey)
	if err != nil {
		pending = -1
	}
	processing, err := repo.GetListLength(jobqueue.JobProcessingKey)
	if err != nil {
		processing = -1
	}

	jobKeys, err := repo.FindKeysByPatterns([]string{jobqueue.JobKeyPrefix + "*"})
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to scan queue keys")
	}

	return c.JSON(fiber.Map{
		"pending":    pending,
		"processing": processing,
		"job_count":  len(jobKeys),
	})
}

// HandleAdminQueueCleanup deletes finished job keys from Redis.
func HandleAdminQueueCleanup(c *fiber.Ctx) error {
	repo := repository.GetGlobalFactory().GetQueueRepository()

	keys, err := repo.FindKeysByPatterns([]string{jobqueue.JobKeyPrefix + "*"})
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to scan queue keys")
	}

	deleted, err := repo.DeleteKeys(keys)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to delete queue keys")
	}

	return c.JSON(fiber.Map{"deleted": deleted})
}
