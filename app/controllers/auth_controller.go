package controllers

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"gorm.io/gorm"

	"github.com/ManuelReschke/FacilityFox/app/models"
	"github.com/ManuelReschke/FacilityFox/app/repository"
	"github.com/ManuelReschke/FacilityFox/internal/pkg/database"
	"github.com/ManuelReschke/FacilityFox/internal/pkg/env"
	"github.com/ManuelReschke/FacilityFox/internal/pkg/hcaptcha"
	"github.com/ManuelReschke/FacilityFox/internal/pkg/mail"
	"github.com/ManuelReschke/FacilityFox/internal/pkg/session"
	"github.com/ManuelReschke/FacilityFox/internal/pkg/statistics"
)

type registerRequest struct {
	Username     string `json:"username"`
	Email        string `json:"email"`
	Password     string `json:"password"`
	CaptchaToken string `json:"captcha_token"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// HandleAuthRegister creates a new inactive account and sends the activation mail.
func HandleAuthRegister(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return apiError(c, fiber.StatusBadRequest, "bad_request", "Invalid request body")
	}

	if env.GetEnv("HCAPTCHA_SECRET", "") != "" {
		valid, err := hcaptcha.Verify(req.CaptchaToken)
		if err != nil || !valid {
			if err != nil {
				log.Errorf("hCaptcha validation error: %v", err)
			}
			return apiError(c, fiber.StatusUnprocessableEntity, "captcha_failed", "Captcha validation failed. Please try again.")
		}
	}

	user, err := models.CreateUser(req.Username, req.Email, req.Password)
	if err != nil {
		return apiError(c, fiber.StatusUnprocessableEntity, "validation_failed", err.Error())
	}

	if err := user.GenerateActivationToken(); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to prepare activation")
	}

	repo := repository.GetGlobalFactory().GetUserRepository()
	if _, err := repo.GetByEmail(req.Email); err == nil {
		return apiError(c, fiber.StatusConflict, "email_taken", "An account with this email already exists")
	}

	if err := repo.Create(user); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to create account")
	}

	// Activation mail is best effort; the token can be re-requested.
	go func(email, name, token string) {
		base := env.GetEnv("PUBLIC_DOMAIN", "http://localhost:"+env.GetEnv("APP_PORT", "4000"))
		body := fmt.Sprintf("Hello %s,\n\nplease activate your account:\n%s/activate?token=%s\n", name, base, token)
		if err := mail.SendMail(email, "Activate your account", body); err != nil {
			log.Errorf("failed to send activation mail to %s: %v", email, err)
		}
	}(user.Email, user.Name, user.ActivationToken)

	go statistics.UpdateStatisticsCache()

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id":     user.ID,
		"email":  user.Email,
		"status": user.Status,
	})
}

// HandleAuthActivate activates an account via its activation token.
func HandleAuthActivate(c *fiber.Ctx) error {
	token := c.Query("token")
	if token == "" {
		return apiError(c, fiber.StatusBadRequest, "bad_request", "Missing activation token")
	}

	repo := repository.GetGlobalFactory().GetUserRepository()
	user, err := repo.GetByActivationToken(token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apiError(c, fiber.StatusNotFound, "not_found", "Invalid activation token")
		}
		return apiError(c, fiber.StatusInternalServerError, "internal_server_error", "Activation failed")
	}

	user.Status = models.STATUS_ACTIVE
	user.ActivationToken = ""
	if err := repo.Update(user); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "internal_server_error", "Activation failed")
	}

	return c.JSON(fiber.Map{"status": user.Status})
}

// HandleAuthLogin verifies credentials and establishes the session.
func HandleAuthLogin(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return apiError(c, fiber.StatusBadRequest, "bad_request", "Invalid request body")
	}

	// notice: in production you should not inform the user
	// with detailed messages about login failures
	var user models.User
	result := database.GetDB().Where("email = ?", req.Email).First(&user)
	if result.Error != nil {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized", "There is a problem with the login process")
	}

	if !models.CheckPasswordHash(req.Password, user.Password) {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized", "There is a problem with the login process")
	}

	if !user.IsActive() {
		return apiError(c, fiber.StatusForbidden, "inactive_account", "Account is not activated")
	}

	sess, err := session.GetSessionStore().Get(c)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "internal_server_error", "Session unavailable")
	}

	sess.Set(AUTH_KEY, true)
	sess.Set(USER_ID, user.ID)
	sess.Set(USER_NAME, user.Name)
	sess.Set(USER_IS_ADMIN, user.Role == models.ROLE_ADMIN)

	if err := sess.Save(); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "internal_server_error", "Session unavailable")
	}

	now := time.Now()
	user.LastLoginAt = &now
	if err := database.GetDB().Model(&user).Update("last_login_at", now).Error; err != nil {
		log.Errorf("failed to update last login for user %d: %v", user.ID, err)
	}

	return c.JSON(fiber.Map{
		"id":       user.ID,
		"username": user.Name,
		"is_admin": user.Role == models.ROLE_ADMIN,
	})
}

// HandleAuthLogout destroys the session.
func HandleAuthLogout(c *fiber.Ctx) error {
	if err := session.DestroySession(c); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "internal_server_error", "Logout failed")
	}

	c.Locals(FROM_PROTECTED, false)

	return c.JSON(fiber.Map{"message": "logged out"})
}
