package router

import (
	"github.com/ManuelReschke/FacilityFox/app/controllers"
	"github.com/ManuelReschke/FacilityFox/internal/pkg/middleware"
	"github.com/gofiber/fiber/v2"
)

func (h HttpRouter) registerAdminRoutes(app *fiber.App) {
	adminGroup := app.Group("/admin", middleware.RequireAdmin)

	adminGroup.Get("/users", controllers.HandleAdminListUsers)
	adminGroup.Get("/statistics", controllers.HandleAdminStatistics)

	// Provider registration approval
	adminGroup.Get("/registrations/pending", controllers.HandleAdminListPendingRegistrations)
	adminGroup.Post("/registrations/:id/approve", controllers.HandleAdminApproveRegistration)
	adminGroup.Post("/registrations/:id/decline", controllers.HandleAdminDeclineRegistration)

	// Service catalog
	adminGroup.Post("/services", controllers.HandleAdminCreateService)
	adminGroup.Patch("/services/:id", controllers.HandleAdminUpdateService)

	// Facility subscriptions
	adminGroup.Post("/facilities/:id/subscription", controllers.HandleAdminUpdateFacilitySubscription)

	// Delivery queue monitor
	adminGroup.Get("/queues", controllers.HandleAdminQueueOverview)
	adminGroup.Post("/queues/cleanup", controllers.HandleAdminQueueCleanup)
}
