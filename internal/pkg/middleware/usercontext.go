package middleware

import (
	"strconv"
	"strings"

	"github.com/ManuelReschke/FacilityFox/app/controllers"
	"github.com/ManuelReschke/FacilityFox/app/models"
	"github.com/ManuelReschke/FacilityFox/internal/pkg/database"
	"github.com/ManuelReschke/FacilityFox/internal/pkg/session"
	"github.com/ManuelReschke/FacilityFox/internal/pkg/usercontext"
	"github.com/gofiber/fiber/v2"
)

// UserContextMiddleware sets up the complete user context for every request
// This centralizes user session handling and eliminates code duplication
func UserContextMiddleware(c *fiber.Ctx) error {
	// Avoid interfering with Goth/Fiber session handling on OAuth routes.
	// Goth uses its own fiber session store and relies on per-request locals.
	// We skip our app session on /auth/* to prevent cross-store collisions.
	if strings.HasPrefix(c.Path(), "/auth/") {
		return c.Next()
	}
	sess, err := session.GetSessionStore().Get(c)
	if err != nil {
		setAnonymousContext(c)
		return c.Next()
	}

	userID := sess.Get(controllers.USER_ID)
	if userID == nil {
		setAnonymousContext(c)
		return c.Next()
	}

	username := session.GetSessionValue(c, controllers.USER_NAME)
	isAdmin := sess.Get(controllers.USER_IS_ADMIN)

	// Determine provider profile with session-first strategy
	providerID := uint(0)
	if cached := session.GetSessionValue(c, usercontext.KeyProviderID); cached != "" {
		if v, err := strconv.ParseUint(cached, 10, 64); err == nil {
			providerID = uint(v)
		}
	} else {
		if db := database.GetDB(); db != nil {
			var provider models.ServiceProvider
			if err := db.Where("user_id = ?", userID.(uint)).First(&provider).Error; err == nil {
				providerID = provider.ID
			}
		}
		// cache in session for subsequent requests, 0 means "no profile"
		_ = session.SetSessionValue(c, usercontext.KeyProviderID, strconv.FormatUint(uint64(providerID), 10))
	}

	userCtx := usercontext.UserContext{
		UserID:     userID.(uint),
		Username:   username,
		IsLoggedIn: true,
		IsAdmin:    isAdmin != nil && isAdmin.(bool),
		IsProvider: providerID != 0,
		ProviderID: providerID,
	}
	c.Locals("USER_CONTEXT", userCtx)

	// Legacy compatibility - keep existing Locals for backward compatibility
	c.Locals(controllers.FROM_PROTECTED, true)
	c.Locals(controllers.USER_NAME, username)
	c.Locals(controllers.USER_ID, userID.(uint))
	c.Locals(controllers.USER_IS_ADMIN, userCtx.IsAdmin)

	// Store username in user's individual session (multi-user safe)
	session.SetSessionValue(c, controllers.USER_NAME, username)

	return c.Next()
}

func setAnonymousContext(c *fiber.Ctx) {
	c.Locals("USER_CONTEXT", usercontext.UserContext{
		IsLoggedIn: false,
		IsAdmin:    false,
	})
	c.Locals(controllers.FROM_PROTECTED, false)
	c.Locals(controllers.USER_IS_ADMIN, false)
}
