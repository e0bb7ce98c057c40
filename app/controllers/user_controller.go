package controllers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/ManuelReschke/FacilityFox/app/models"
	"github.com/ManuelReschke/FacilityFox/app/repository"
	"github.com/ManuelReschke/FacilityFox/internal/pkg/database"
	"github.com/ManuelReschke/FacilityFox/internal/pkg/usercontext"
)

// HandleGetUserAccount returns account information for the authenticated user (API key or session).
func HandleGetUserAccount(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	if !userCtx.IsLoggedIn {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized", "Missing or invalid authentication")
	}

	repo := repository.GetGlobalFactory().GetUserRepository()
	account, err := repo.GetByID(userCtx.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apiError(c, fiber.StatusNotFound, "not_found", "User not found")
		}
		return apiError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load user")
	}

	db := database.GetDB()
	if db == nil {
		return apiError(c, fiber.StatusInternalServerError, "internal_server_error", "Database unavailable")
	}
	settings, err := models.GetOrCreateUserSettings(db, userCtx.UserID)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load user settings")
	}

	unread, err := GetNotifierService().UnreadCount(userCtx.UserID)
	if err != nil {
		unread = 0
	}

	response := fiber.Map{
		"id":                   account.ID,
		"username":             account.Name,
		"email":                account.Email,
		"status":               account.Status,
		"is_admin":             account.Role == models.ROLE_ADMIN,
		"is_provider":          userCtx.IsProvider,
		"provider_id":          userCtx.ProviderID,
		"created_at":           account.CreatedAt.UTC().Format(time.RFC3339),
		"last_login_at":        formatTimePtr(account.LastLoginAt),
		"api_key_prefix":       settings.APIKeyPrefix,
		"api_key_last_used_at": formatTimePtr(settings.APIKeyLastUsedAt),
		"unread_notifications": unread,
		"preferences": fiber.Map{
			"notify_push": settings.PrefNotifyPush,
			"notify_mail": settings.PrefNotifyMail,
		},
	}

	return c.JSON(response)
}

type updateSettingsRequest struct {
	NotifyPush *bool   `json:"notify_push"`
	NotifyMail *bool   `json:"notify_mail"`
	PushToken  *string `json:"push_token"`
}

// HandleUpdateUserSettings updates notification preferences and the push token.
func HandleUpdateUserSettings(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	if !userCtx.IsLoggedIn {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized", "Missing or invalid authentication")
	}

	var req updateSettingsRequest
	if err := c.BodyParser(&req); err != nil {
		return apiError(c, fiber.StatusBadRequest, "bad_request", "Invalid request body")
	}

	db := database.GetDB()
	settings, err := models.GetOrCreateUserSettings(db, userCtx.UserID)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load user settings")
	}

	if req.NotifyPush != nil {
		settings.PrefNotifyPush = *req.NotifyPush
	}
	if req.NotifyMail != nil {
		settings.PrefNotifyMail = *req.NotifyMail
	}
	if req.PushToken != nil {
		settings.PushToken = *req.PushToken
	}

	if err := db.Save(settings).Error; err != nil {
		return apiError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to save user settings")
	}

	return c.JSON(fiber.Map{
		"notify_push": settings.PrefNotifyPush,
		"notify_mail": settings.PrefNotifyMail,
	})
}

// HandleCreateAPIKey issues a fresh API key. The raw secret appears only in this response.
func HandleCreateAPIKey(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	if !userCtx.IsLoggedIn {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized", "Missing or invalid authentication")
	}

	db := database.GetDB()
	settings, err := models.GetOrCreateUserSettings(db, userCtx.UserID)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load user settings")
	}

	rawKey, err := settings.IssueAPIKey()
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to generate API key")
	}

	if err := db.Save(settings).Error; err != nil {
		return apiError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to persist API key")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"api_key":        rawKey,
		"api_key_prefix": settings.APIKeyPrefix,
		"created_at":     formatTimePtr(settings.APIKeyCreatedAt),
	})
}

// HandleRevokeAPIKey revokes the current API key without issuing a new one.
func HandleRevokeAPIKey(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	if !userCtx.IsLoggedIn {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized", "Missing or invalid authentication")
	}

	db := database.GetDB()
	settings, err := models.GetOrCreateUserSettings(db, userCtx.UserID)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load user settings")
	}

	if !settings.HasActiveAPIKey() {
		return apiError(c, fiber.StatusNotFound, "not_found", "No active API key")
	}

	settings.RevokeAPIKey()
	if err := db.Save(settings).Error; err != nil {
		return apiError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to revoke API key")
	}

	return c.JSON(fiber.Map{"message": "API key revoked"})
}
