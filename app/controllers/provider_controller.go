package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/ManuelReschke/FacilityFox/app/models"
	"github.com/ManuelReschke/FacilityFox/app/repository"
	"github.com/ManuelReschke/FacilityFox/internal/pkg/session"
	"github.com/ManuelReschke/FacilityFox/internal/pkg/usercontext"
)

type providerProfileRequest struct {
	CompanyName  string `json:"company_name"`
	TaxID        string `json:"tax_id"`
	ContactName  string `json:"contact_name"`
	ContactPhone string `json:"contact_phone"`
	ContactEmail string `json:"contact_email"`
}

// HandleCreateProviderProfile creates a service provider profile for the current user.
func HandleCreateProviderProfile(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)

	repo := repository.GetGlobalFactory().GetProviderRepository()
	if _, err := repo.GetByUserID(userCtx.UserID); err == nil {
		return apiError(c, fiber.StatusConflict, "profile_exists", "A provider profile already exists for this account")
	}

	var req providerProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return apiError(c, fiber.StatusBadRequest, "bad_request", "Invalid request body")
	}

	provider := models.ServiceProvider{
		UserID:       userCtx.UserID,
		CompanyName:  req.CompanyName,
		TaxID:        req.TaxID,
		ContactName:  req.ContactName,
		ContactPhone: req.ContactPhone,
		ContactEmail: req.ContactEmail,
	}
	if err := provider.Validate(); err != nil {
		return apiError(c, fiber.StatusUnprocessableEntity, "validation_failed", err.Error())
	}

	if err := repo.Create(&provider); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to create provider profile")
	}

	// Invalidate the cached provider lookup so the context middleware
	// picks up the new profile on the next request.
	_ = session.SetSessionValue(c, usercontext.KeyProviderID, "")

	return c.Status(fiber.StatusCreated).JSON(provider)
}

// HandleGetProviderProfile returns the current user's provider profile.
func HandleGetProviderProfile(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)

	repo := repository.GetGlobalFactory().GetProviderRepository()
	provider, err := repo.GetByUserID(userCtx.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apiError(c, fiber.StatusNotFound, "not_found", "No provider profile for this account")
		}
		return apiError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load provider profile")
	}

	return c.JSON(provider)
}

// HandleUpdateProviderProfile updates the current user's provider profile.
func HandleUpdateProviderProfile(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)

	repo := repository.GetGlobalFactory().GetProviderRepository()
	provider, err := repo.GetByUserID(userCtx.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apiError(c, fiber.StatusNotFound, "not_found", "No provider profile for this account")
		}
		return apiError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load provider profile")
	}

	var req providerProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return apiError(c, fiber.StatusBadRequest, "bad_request", "Invalid request body")
	}

	if req.CompanyName != "" {
		provider.CompanyName = req.CompanyName
	}
	provider.TaxID = req.TaxID
	provider.ContactName = req.ContactName
	provider.ContactPhone = req.ContactPhone
	provider.ContactEmail = req.ContactEmail

	if err := provider.Validate(); err != nil {
		return apiError(c, fiber.StatusUnprocessableEntity, "validation_failed", err.Error())
	}

	if err := repo.Update(provider); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to update provider profile")
	}

	return c.JSON(provider)
}

// HandleListServices returns the active service catalog.
func HandleListServices(c *fiber.Ctx) error {
	repo := repository.GetGlobalFactory().GetServiceRepository()
	services, err := repo.GetActive()
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load services")
	}

	return c.JSON(fiber.Map{"services": services})
}

type registerServiceRequest struct {
	ServiceID uint `json:"service_id"`
}

// HandleRegisterForService creates a pending service registration. An admin
// approves it before the provider receives any request notifications.
func HandleRegisterForService(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	if !userCtx.IsProvider {
		return apiError(c, fiber.StatusForbidden, "forbidden", "provider profile required")
	}

	var req registerServiceRequest
	if err := c.BodyParser(&req); err != nil {
		return apiError(c, fiber.StatusBadRequest, "bad_request", "Invalid request body")
	}

	serviceRepo := repository.GetGlobalFactory().GetServiceRepository()
	service, err := serviceRepo.GetByID(req.ServiceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apiError(c, fiber.StatusNotFound, "not_found", "Service not found")
		}
		return apiError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load service")
	}
	if !service.Active {
		return apiError(c, fiber.StatusConflict, "service_inactive", "Service is not available for registration")
	}

	repo := repository.GetGlobalFactory().GetProviderRepository()
	existing, err := repo.GetRegistrations(userCtx.ProviderID)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load registrations")
	}
	for i := range existing {
		if existing[i].ServiceID == req.ServiceID && existing[i].Status != models.RegistrationStatusExpired {
			return apiError(c, fiber.StatusConflict, "already_registered", "Already registered for this service")
		}
	}

	registration := models.ServiceRegistration{
		ProviderID: userCtx.ProviderID,
		ServiceID:  req.ServiceID,
		Status:     models.RegistrationStatusPending,
	}
	if err := repo.CreateRegistration(&registration); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to create registration")
	}

	return c.Status(fiber.StatusCreated).JSON(registration)
}

// HandleListProviderRegistrations returns the current provider's registrations.
func HandleListProviderRegistrations(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	if !userCtx.IsProvider {
		return apiError(c, fiber.StatusForbidden, "forbidden", "provider profile required")
	}

	repo := repository.GetGlobalFactory().GetProviderRepository()
	registrations, err := repo.GetRegistrations(userCtx.ProviderID)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load registrations")
	}

	return c.JSON(fiber.Map{"registrations": registrations})
}

// HandleListAssignedIssues returns the issues currently assigned to the provider.
func HandleListAssignedIssues(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	if !userCtx.IsProvider {
		return apiError(c, fiber.StatusForbidden, "forbidden", "provider profile required")
	}

	offset, limit := parsePagination(c)

	repo := repository.GetGlobalFactory().GetIssueRepository()
	issues, err := repo.GetAssignedToProvider(userCtx.ProviderID, offset, limit)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load issues")
	}

	return c.JSON(fiber.Map{"issues": issues})
}
