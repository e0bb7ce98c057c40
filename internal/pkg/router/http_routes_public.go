package router

import (
	"github.com/ManuelReschke/FacilityFox/app/controllers"
	"github.com/ManuelReschke/FacilityFox/internal/pkg/constants"
	"github.com/ManuelReschke/FacilityFox/internal/pkg/middleware"
	"github.com/gofiber/fiber/v2"
	gothfiber "github.com/shareed2k/goth_fiber"
)

func (h HttpRouter) registerPublicRoutes(app *fiber.App) {
	app.Get(constants.PublicRoute, func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"name": "FacilityFox", "status": "ok"})
	})

	// Auth
	app.Post("/register", controllers.HandleAuthRegister)
	app.Get("/activate", controllers.HandleAuthActivate)
	app.Post(constants.LoginRoute, controllers.HandleAuthLogin)
	app.Post("/logout", middleware.RequireAPISessionAuth, controllers.HandleAuthLogout)

	// Social OAuth
	app.Get("/auth/:provider", gothfiber.BeginAuthHandler)
	app.Get("/auth/:provider/callback", controllers.HandleOAuthCallback)
}
