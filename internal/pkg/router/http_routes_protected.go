package router

import (
	"github.com/ManuelReschke/FacilityFox/app/controllers"
	"github.com/ManuelReschke/FacilityFox/internal/pkg/middleware"
	"github.com/gofiber/fiber/v2"
)

// registerProtectedRoutes wires every session-authenticated JSON route.
func (h HttpRouter) registerProtectedRoutes(app *fiber.App) {
	auth := middleware.RequireAPISessionAuth

	// Account
	app.Get("/user/account", auth, controllers.HandleGetUserAccount)
	app.Patch("/user/settings", auth, controllers.HandleUpdateUserSettings)
	app.Post("/user/api-key", auth, controllers.HandleCreateAPIKey)
	app.Delete("/user/api-key", auth, controllers.HandleRevokeAPIKey)

	// Facilities
	app.Get("/facilities", auth, controllers.HandleListFacilities)
	app.Post("/facilities", auth, controllers.HandleCreateFacility)
	app.Get("/facilities/:id", auth, controllers.HandleGetFacility)
	app.Patch("/facilities/:id", auth, controllers.HandleUpdateFacility)
	app.Delete("/facilities/:id", auth, controllers.HandleDeleteFacility)

	// Members + invites
	app.Get("/facilities/:id/members", auth, controllers.HandleListFacilityMembers)
	app.Patch("/facilities/:id/members/:userId", auth, controllers.HandleUpdateFacilityMember)
	app.Delete("/facilities/:id/members/:userId", auth, controllers.HandleRemoveFacilityMember)
	app.Get("/facilities/:id/invites", auth, controllers.HandleListFacilityInvites)
	app.Post("/facilities/:id/invites", auth, controllers.HandleCreateFacilityInvite)
	app.Post("/invites/:code/redeem", auth, controllers.HandleRedeemFacilityInvite)

	// Issues
	app.Get("/facilities/:id/issues", auth, controllers.HandleListIssues)
	app.Post("/facilities/:id/issues", auth, controllers.HandleCreateIssue)
	app.Get("/issues/:issueId", auth, controllers.HandleGetIssue)
	app.Patch("/issues/:issueId", auth, controllers.HandleUpdateIssue)
	app.Post("/issues/:issueId/status", auth, controllers.HandleUpdateIssueStatus)
	app.Post("/issues/:issueId/messages", auth, controllers.HandleCreateIssueMessage)

	// Attachments
	app.Post("/issues/:issueId/attachments", auth, controllers.HandleUploadIssueAttachment)
	app.Get("/attachments/:uuid", auth, controllers.HandleDownloadIssueAttachment)
	app.Delete("/attachments/:uuid", auth, controllers.HandleDeleteIssueAttachment)

	// Service request workflow
	app.Post("/issues/:issueId/requests", auth, controllers.HandleCreateServiceRequest)
	app.Get("/issues/:issueId/requests", auth, controllers.HandleListIssueRequests)
	app.Post("/issues/:issueId/cancel-selection", auth, controllers.HandleCancelSelection)
	app.Post("/requests/:requestId/applications", auth, controllers.HandleApplyToRequest)
	app.Post("/requests/:requestId/close", auth, controllers.HandleCloseRequest)
	app.Post("/applications/:applicationId/select", auth, controllers.HandleSelectApplication)
	app.Post("/applications/:applicationId/reject", auth, controllers.HandleRejectApplication)

	// Appointments
	app.Get("/issues/:issueId/appointments", auth, controllers.HandleListIssueAppointments)
	app.Post("/issues/:issueId/appointments", auth, controllers.HandleProposeAppointment)
	app.Post("/issues/:issueId/appointments/:appointmentId/confirm", auth, controllers.HandleConfirmAppointment)
	app.Post("/issues/:issueId/appointments/:appointmentId/reject", auth, controllers.HandleRejectAppointment)
	app.Post("/issues/:issueId/appointments/:appointmentId/complete", auth, controllers.HandleCompleteAppointment)

	// Provider side
	provider := middleware.RequireProvider
	app.Get("/services", auth, controllers.HandleListServices)
	app.Post("/provider", auth, controllers.HandleCreateProviderProfile)
	app.Get("/provider", auth, controllers.HandleGetProviderProfile)
	app.Patch("/provider", auth, provider, controllers.HandleUpdateProviderProfile)
	app.Post("/provider/registrations", auth, provider, controllers.HandleRegisterForService)
	app.Get("/provider/registrations", auth, provider, controllers.HandleListProviderRegistrations)
	app.Get("/provider/requests", auth, provider, controllers.HandleListOpenRequests)
	app.Get("/provider/applications", auth, provider, controllers.HandleListProviderApplications)
	app.Get("/provider/appointments", auth, provider, controllers.HandleListProviderAppointments)
	app.Get("/provider/issues", auth, provider, controllers.HandleListAssignedIssues)

	// Notifications
	app.Get("/notifications", auth, controllers.HandleListNotifications)
	app.Get("/notifications/unread", auth, controllers.HandleUnreadCount)
	app.Post("/notifications/:id/read", auth, controllers.HandleMarkNotificationRead)
	app.Post("/notifications/read-all", auth, controllers.HandleMarkAllNotificationsRead)
}
