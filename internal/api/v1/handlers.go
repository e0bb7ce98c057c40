package apiv1

import (
	"github.com/gofiber/fiber/v2"

	// Delegate to existing controllers to keep behavior consistent
	"github.com/ManuelReschke/FacilityFox/app/controllers"
	"github.com/ManuelReschke/FacilityFox/internal/pkg/middleware"
)

// APIServer implements the v1 API surface for API key clients.
type APIServer struct{}

// NewAPIServer creates a new API server instance
func NewAPIServer() *APIServer {
	return &APIServer{}
}

// Pong is the ping response payload.
type Pong struct {
	Ping string `json:"ping"`
}

// GetPing handles the ping endpoint
func (s *APIServer) GetPing(c *fiber.Ctx) error {
	response := Pong{
		Ping: "pong",
	}

	return c.Status(fiber.StatusOK).JSON(response)
}

// GetUserProfile returns account information for the authenticated user (API key).
// Security is enforced via API key middleware attached in the router.
func (s *APIServer) GetUserProfile(c *fiber.Ctx) error {
	return controllers.HandleGetUserAccount(c)
}

// GetOpenRequests lists open service requests matching the caller's registrations.
func (s *APIServer) GetOpenRequests(c *fiber.Ctx) error {
	return controllers.HandleListOpenRequests(c)
}

// PostApplication applies to an open service request.
func (s *APIServer) PostApplication(c *fiber.Ctx) error {
	return controllers.HandleApplyToRequest(c)
}

// GetApplications lists the caller's applications.
func (s *APIServer) GetApplications(c *fiber.Ctx) error {
	return controllers.HandleListProviderApplications(c)
}

// GetAppointments lists the caller's appointments.
func (s *APIServer) GetAppointments(c *fiber.Ctx) error {
	return controllers.HandleListProviderAppointments(c)
}

// PostAppointment proposes an appointment on an assigned issue.
func (s *APIServer) PostAppointment(c *fiber.Ctx) error {
	return controllers.HandleProposeAppointment(c)
}

// GetAssignedIssues lists the issues assigned to the caller.
func (s *APIServer) GetAssignedIssues(c *fiber.Ctx) error {
	return controllers.HandleListAssignedIssues(c)
}

// GetNotifications lists the caller's notifications.
func (s *APIServer) GetNotifications(c *fiber.Ctx) error {
	return controllers.HandleListNotifications(c)
}

// PostNotificationRead marks a notification as read.
func (s *APIServer) PostNotificationRead(c *fiber.Ctx) error {
	return controllers.HandleMarkNotificationRead(c)
}

// RegisterHandlers attaches the v1 routes to the given router group.
// Everything except ping requires an API key.
func RegisterHandlers(router fiber.Router, si *APIServer) {
	router.Get("/ping", si.GetPing)

	apiKey := middleware.APIKeyAuthMiddleware()

	router.Get("/user/profile", apiKey, si.GetUserProfile)
	router.Get("/provider/requests", apiKey, si.GetOpenRequests)
	router.Post("/requests/:requestId/applications", apiKey, si.PostApplication)
	router.Get("/provider/applications", apiKey, si.GetApplications)
	router.Get("/provider/appointments", apiKey, si.GetAppointments)
	router.Post("/issues/:issueId/appointments", apiKey, si.PostAppointment)
	router.Get("/provider/issues", apiKey, si.GetAssignedIssues)
	router.Get("/notifications", apiKey, si.GetNotifications)
	router.Post("/notifications/:id/read", apiKey, si.PostNotificationRead)
}
