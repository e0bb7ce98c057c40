package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/ManuelReschke/FacilityFox/app/models"
	"github.com/ManuelReschke/FacilityFox/app/repository"
	"github.com/ManuelReschke/FacilityFox/internal/pkg/usercontext"
)

type createRequestRequest struct {
	ServiceID uint `json:"service_id"`
}

// HandleCreateServiceRequest opens a service request on an issue and fans
// notifications out to eligible providers.
func HandleCreateServiceRequest(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	issueID := parseIDParam(c, "issueId")

	var req createRequestRequest
	if err := c.BodyParser(&req); err != nil {
		return apiError(c, fiber.StatusBadRequest, "bad_request", "Invalid request body")
	}
	if req.ServiceID == 0 {
		return apiError(c, fiber.StatusUnprocessableEntity, "validation_failed", "service_id is required")
	}

	request, err := GetWorkflowService().CreateRequest(issueID, req.ServiceID, userCtx.UserID)
	if err != nil {
		return mapWorkflowError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(request)
}

// HandleListIssueRequests returns the service requests of an issue with their applications.
func HandleListIssueRequests(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)

	issue, _, errResp := loadIssueWithRole(c, userCtx.UserID)
	if errResp != nil {
		return errResp
	}

	repo := repository.GetGlobalFactory().GetRequestRepository()
	requests, err := repo.GetByIssue(issue.ID)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load requests")
	}

	type requestWithApplications struct {
		models.ServiceRequest
		Applications []models.ServiceApplication `json:"applications"`
	}

	result := make([]requestWithApplications, 0, len(requests))
	for i := range requests {
		applications, err := repo.GetApplications(requests[i].ID)
		if err != nil {
			return apiError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load applications")
		}
		result = append(result, requestWithApplications{
			ServiceRequest: requests[i],
			Applications:   applications,
		})
	}

	return c.JSON(fiber.Map{"requests": result})
}

// HandleListOpenRequests returns open requests matching the provider's active registrations.
func HandleListOpenRequests(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	if !userCtx.IsProvider {
		return apiError(c, fiber.StatusForbidden, "forbidden", "provider profile required")
	}

	offset, limit := parsePagination(c)

	repo := repository.GetGlobalFactory().GetRequestRepository()
	requests, err := repo.GetOpenForProvider(userCtx.ProviderID, offset, limit)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load requests")
	}

	return c.JSON(fiber.Map{"requests": requests})
}

type applyRequest struct {
	Message string `json:"message"`
}

// HandleApplyToRequest places a provider application on an open request.
func HandleApplyToRequest(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	if !userCtx.IsProvider {
		return apiError(c, fiber.StatusForbidden, "forbidden", "provider profile required")
	}

	requestID := parseIDParam(c, "requestId")

	var req applyRequest
	if err := c.BodyParser(&req); err != nil {
		return apiError(c, fiber.StatusBadRequest, "bad_request", "Invalid request body")
	}

	application, err := GetWorkflowService().Apply(requestID, userCtx.ProviderID, req.Message)
	if err != nil {
		return mapWorkflowError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(application)
}

// HandleSelectApplication exclusively selects one application: the others
// are rejected, the provider is assigned and the request closes.
func HandleSelectApplication(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	applicationID := parseIDParam(c, "applicationId")

	application, err := GetWorkflowService().Select(applicationID, userCtx.UserID)
	if err != nil {
		return mapWorkflowError(c, err)
	}

	return c.JSON(application)
}

// HandleRejectApplication rejects a single pending application.
func HandleRejectApplication(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	applicationID := parseIDParam(c, "applicationId")

	// Load the application to check facility rights before deciding.
	repo := repository.GetGlobalFactory().GetRequestRepository()
	application, err := repo.GetApplication(applicationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apiError(c, fiber.StatusNotFound, "not_found", "Application not found")
		}
		return apiError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load application")
	}
	if errResp := requireRequestAdmin(c, application.RequestID, userCtx.UserID); errResp != nil {
		return errResp
	}

	updated, err := GetWorkflowService().Reject(applicationID)
	if err != nil {
		return mapWorkflowError(c, err)
	}

	return c.JSON(updated)
}

// HandleCloseRequest closes a request without a selection.
func HandleCloseRequest(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	requestID := parseIDParam(c, "requestId")

	if errResp := requireRequestAdmin(c, requestID, userCtx.UserID); errResp != nil {
		return errResp
	}

	request, err := GetWorkflowService().CloseRequest(requestID)
	if err != nil {
		return mapWorkflowError(c, err)
	}

	return c.JSON(request)
}

type cancelSelectionRequest struct {
	Reason string `json:"reason"`
}

// HandleCancelSelection cancels the provider selection of an issue for good.
func HandleCancelSelection(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	issueID := parseIDParam(c, "issueId")

	var req cancelSelectionRequest
	if err := c.BodyParser(&req); err != nil {
		return apiError(c, fiber.StatusBadRequest, "bad_request", "Invalid request body")
	}

	issue, err := GetWorkflowService().CancelSelection(issueID, req.Reason, userCtx.UserID)
	if err != nil {
		return mapWorkflowError(c, err)
	}

	return c.JSON(issue)
}

// HandleListProviderApplications returns the current provider's applications.
func HandleListProviderApplications(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	if !userCtx.IsProvider {
		return apiError(c, fiber.StatusForbidden, "forbidden", "provider profile required")
	}

	offset, limit := parsePagination(c)

	repo := repository.GetGlobalFactory().GetRequestRepository()
	applications, err := repo.GetApplicationsByProvider(userCtx.ProviderID, offset, limit)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load applications")
	}

	return c.JSON(fiber.Map{"applications": applications})
}

// requireRequestAdmin checks that the user administers the facility behind a request.
func requireRequestAdmin(c *fiber.Ctx, requestID, userID uint) error {
	repo := repository.GetGlobalFactory().GetRequestRepository()
	request, err := repo.GetByID(requestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apiError(c, fiber.StatusNotFound, "not_found", "Request not found")
		}
		return apiError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load request")
	}

	_, role, errResp := loadFacilityWithRole(c, request.Issue.FacilityID, userID)
	if errResp != nil {
		return errResp
	}
	if role != models.FacilityRoleOwner && role != models.FacilityRoleAdmin {
		return apiError(c, fiber.StatusForbidden, "forbidden", "Owner or admin role required")
	}
	return nil
}
