package controllers

import (
	"errors"
	"path/filepath"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ManuelReschke/FacilityFox/app/models"
	"github.com/ManuelReschke/FacilityFox/app/repository"
	"github.com/ManuelReschke/FacilityFox/internal/pkg/attachments"
	"github.com/ManuelReschke/FacilityFox/internal/pkg/authz"
	"github.com/ManuelReschke/FacilityFox/internal/pkg/database"
	"github.com/ManuelReschke/FacilityFox/internal/pkg/statistics"
	"github.com/ManuelReschke/FacilityFox/internal/pkg/usercontext"
)

type issueRequest struct {
	Title               string `json:"title"`
	Description         string `json:"description"`
	Priority            string `json:"priority"`
	RequiresCooperation bool   `json:"requires_cooperation"`
	CooperationUserID   *uint  `json:"cooperation_user_id"`
}

// HandleCreateIssue creates an issue on a facility. Viewers cannot report.
func HandleCreateIssue(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	facilityID := parseIDParam(c, "id")

	_, role, errResp := loadFacilityWithRole(c, facilityID, userCtx.UserID)
	if errResp != nil {
		return errResp
	}
	if role == models.FacilityRoleViewer {
		return apiError(c, fiber.StatusForbidden, "forbidden", "Viewers cannot create issues")
	}

	var req issueRequest
	if err := c.BodyParser(&req); err != nil {
		return apiError(c, fiber.StatusBadRequest, "bad_request", "Invalid request body")
	}

	issue := models.Issue{
		FacilityID:          facilityID,
		Title:               req.Title,
		Description:         req.Description,
		Status:              models.IssueStatusOpen,
		Priority:            models.NormalizePriority(req.Priority),
		CreatedBy:           userCtx.UserID,
		RequiresCooperation: req.RequiresCooperation,
		CooperationUserID:   req.CooperationUserID,
		SelectionState:      models.SelectionStateNone,
	}
	if err := issue.Validate(); err != nil {
		return apiError(c, fiber.StatusUnprocessableEntity, "validation_failed", err.Error())
	}

	repo := repository.GetGlobalFactory().GetIssueRepository()
	if err := repo.Create(&issue); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to create issue")
	}

	go statistics.UpdateStatisticsCache()

	return c.Status(fiber.StatusCreated).JSON(issue)
}

// HandleListIssues returns the issues of a facility, optionally filtered by status.
func HandleListIssues(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	facilityID := parseIDParam(c, "id")

	_, _, errResp := loadFacilityWithRole(c, facilityID, userCtx.UserID)
	if errResp != nil {
		return errResp
	}

	offset, limit := parsePagination(c)
	status := c.Query("status")

	repo := repository.GetGlobalFactory().GetIssueRepository()
	var (
		issues []models.Issue
		err    error
	)
	if status != "" {
		issues, err = repo.GetByFacilityAndStatus(facilityID, status, offset, limit)
	} else {
		issues, err = repo.GetByFacility(facilityID, offset, limit)
	}
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load issues")
	}

	total, err := repo.CountByFacility(facilityID)
	if err != nil {
		total = int64(len(issues))
	}

	return c.JSON(fiber.Map{"issues": issues, "total": total})
}

// HandleGetIssue returns an issue with its conversation and attachments.
func HandleGetIssue(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)

	issue, _, errResp := loadIssueWithRole(c, userCtx.UserID)
	if errResp != nil {
		return errResp
	}

	repo := repository.GetGlobalFactory().GetIssueRepository()
	messages, err := repo.GetMessages(issue.ID)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load messages")
	}
	attachmentList, err := repo.GetAttachments(issue.ID)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load attachments")
	}

	return c.JSON(fiber.Map{
		"issue":       issue,
		"messages":    messages,
		"attachments": attachmentList,
	})
}

// HandleUpdateIssue updates title, description and priority of an issue.
func HandleUpdateIssue(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)

	issue, role, errResp := loadIssueWithRole(c, userCtx.UserID)
	if errResp != nil {
		return errResp
	}
	if role == models.FacilityRoleViewer {
		return apiError(c, fiber.StatusForbidden, "forbidden", "Viewers cannot edit issues")
	}
	if !authz.IsAdminOrOwnerRole(role) && issue.CreatedBy != userCtx.UserID {
		return apiError(c, fiber.StatusForbidden, "forbidden", "Only the reporter or an admin can edit this issue")
	}

	var req issueRequest
	if err := c.BodyParser(&req); err != nil {
		return apiError(c, fiber.StatusBadRequest, "bad_request", "Invalid request body")
	}

	if req.Title != "" {
		issue.Title = req.Title
	}
	issue.Description = req.Description
	if req.Priority != "" {
		issue.Priority = models.NormalizePriority(req.Priority)
	}

	if err := issue.Validate(); err != nil {
		return apiError(c, fiber.StatusUnprocessableEntity, "validation_failed", err.Error())
	}

	repo := repository.GetGlobalFactory().GetIssueRepository()
	if err := repo.Update(issue); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to update issue")
	}

	return c.JSON(issue)
}

type issueStatusRequest struct {
	Status string `json:"status"`
}

// HandleUpdateIssueStatus moves an issue through its status lifecycle.
func HandleUpdateIssueStatus(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)

	issue, role, errResp := loadIssueWithRole(c, userCtx.UserID)
	if errResp != nil {
		return errResp
	}
	if !authz.IsAdminOrOwnerRole(role) {
		return apiError(c, fiber.StatusForbidden, "forbidden", "Owner or admin role required")
	}

	var req issueStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apiError(c, fiber.StatusBadRequest, "bad_request", "Invalid request body")
	}

	if !models.CanTransitionIssueStatus(issue.Status, req.Status) {
		return apiError(c, fiber.StatusConflict, "invalid_transition",
			"Cannot move issue from "+issue.Status+" to "+req.Status)
	}

	issue.Status = req.Status
	repo := repository.GetGlobalFactory().GetIssueRepository()
	if err := repo.Update(issue); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to update issue")
	}

	go statistics.UpdateStatisticsCache()

	return c.JSON(issue)
}

type issueMessageRequest struct {
	Content string `json:"content"`
}

// HandleCreateIssueMessage appends a user message to the issue conversation.
func HandleCreateIssueMessage(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)

	issue, role, errResp := loadIssueWithRole(c, userCtx.UserID)
	if errResp != nil {
		return errResp
	}
	if role == models.FacilityRoleViewer {
		return apiError(c, fiber.StatusForbidden, "forbidden", "Viewers cannot post messages")
	}

	var req issueMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return apiError(c, fiber.StatusBadRequest, "bad_request", "Invalid request body")
	}
	if req.Content == "" {
		return apiError(c, fiber.StatusUnprocessableEntity, "empty_message", "Message content is required")
	}

	message := models.IssueMessage{
		IssueID: issue.ID,
		UserID:  userCtx.UserID,
		Kind:    models.MessageKindUser,
		Content: req.Content,
	}

	repo := repository.GetGlobalFactory().GetIssueRepository()
	if err := repo.AddMessage(&message); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to post message")
	}

	return c.Status(fiber.StatusCreated).JSON(message)
}

// HandleUploadIssueAttachment stores a photo or document on the issue.
func HandleUploadIssueAttachment(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)

	issue, role, errResp := loadIssueWithRole(c, userCtx.UserID)
	if errResp != nil {
		return errResp
	}
	if role == models.FacilityRoleViewer {
		return apiError(c, fiber.StatusForbidden, "forbidden", "Viewers cannot upload attachments")
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "bad_request", "Missing file upload")
	}

	client, err := attachments.GetClient()
	if err != nil {
		log.Errorf("attachment storage unavailable: %v", err)
		return apiError(c, fiber.StatusServiceUnavailable, "storage_unavailable", "Attachment storage is not configured")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to read upload")
	}
	defer file.Close()

	attachmentUUID := uuid.New().String()
	cfg, err := attachments.LoadConfig()
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "internal_server_error", "Attachment storage misconfigured")
	}
	objectKey := cfg.GetObjectKey(issue.ID, attachmentUUID, filepath.Ext(fileHeader.Filename))

	contentType := fileHeader.Header.Get("Content-Type")
	result, err := client.Upload(c.Context(), objectKey, file, fileHeader.Size, contentType)
	if err != nil {
		log.Errorf("attachment upload for issue %d failed: %v", issue.ID, err)
		return apiError(c, fiber.StatusInternalServerError, "internal_server_error", "Upload failed")
	}

	attachment := models.IssueAttachment{
		IssueID:    issue.ID,
		UploadedBy: userCtx.UserID,
		UUID:       attachmentUUID,
		FileName:   fileHeader.Filename,
		FileSize:   result.Size,
		MimeType:   result.ContentType,
		ObjectKey:  result.ObjectKey,
	}

	repo := repository.GetGlobalFactory().GetIssueRepository()
	if err := repo.AddAttachment(&attachment); err != nil {
		// The object is already stored; clean it up so no orphan remains.
		if delErr := client.Delete(c.Context(), objectKey); delErr != nil {
			log.Errorf("failed to clean up orphaned attachment %s: %v", objectKey, delErr)
		}
		return apiError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to save attachment")
	}

	return c.Status(fiber.StatusCreated).JSON(attachment)
}

// HandleDownloadIssueAttachment streams an attachment to the client.
func HandleDownloadIssueAttachment(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)

	repo := repository.GetGlobalFactory().GetIssueRepository()
	attachment, err := repo.GetAttachmentByUUID(c.Params("uuid"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apiError(c, fiber.StatusNotFound, "not_found", "Attachment not found")
		}
		return apiError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load attachment")
	}

	issue, err := repo.GetByID(attachment.IssueID)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load issue")
	}
	if errResp := requireIssueAccess(c, issue, userCtx); errResp != nil {
		return errResp
	}

	client, err := attachments.GetClient()
	if err != nil {
		return apiError(c, fiber.StatusServiceUnavailable, "storage_unavailable", "Attachment storage is not configured")
	}

	c.Set(fiber.HeaderContentType, attachment.MimeType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+attachment.FileName+`"`)
	if err := client.Download(c.Context(), attachment.ObjectKey, c.Response().BodyWriter()); err != nil {
		log.Errorf("attachment download %s failed: %v", attachment.UUID, err)
		return apiError(c, fiber.StatusInternalServerError, "internal_server_error", "Download failed")
	}

	return nil
}

// HandleDeleteIssueAttachment removes an attachment from storage and the database.
func HandleDeleteIssueAttachment(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)

	repo := repository.GetGlobalFactory().GetIssueRepository()
	attachment, err := repo.GetAttachmentByUUID(c.Params("uuid"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apiError(c, fiber.StatusNotFound, "not_found", "Attachment not found")
		}
		return apiError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load attachment")
	}

	issue, err := repo.GetByID(attachment.IssueID)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load issue")
	}

	role, err := authz.ResolveRole(database.GetDB(), issue.FacilityID, userCtx.UserID)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to resolve role")
	}
	if !authz.IsAdminOrOwnerRole(role) && attachment.UploadedBy != userCtx.UserID {
		return apiError(c, fiber.StatusForbidden, "forbidden", "Only the uploader or an admin can delete this attachment")
	}

	if client, err := attachments.GetClient(); err == nil {
		if err := client.Delete(c.Context(), attachment.ObjectKey); err != nil {
			log.Errorf("failed to delete attachment object %s: %v", attachment.ObjectKey, err)
		}
	}

	if err := repo.DeleteAttachment(attachment.ID); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to delete attachment")
	}

	return c.JSON(fiber.Map{"message": "attachment deleted"})
}

// loadIssueWithRole loads the issue from the :issueId route param and
// resolves the caller's facility role. Assigned providers get read access
// through requireIssueAccess instead.
func loadIssueWithRole(c *fiber.Ctx, userID uint) (*models.Issue, string, error) {
	issueID := parseIDParam(c, "issueId")
	if issueID == 0 {
		return nil, "", apiError(c, fiber.StatusBadRequest, "bad_request", "Invalid issue id")
	}

	repo := repository.GetGlobalFactory().GetIssueRepository()
	issue, err := repo.GetByID(issueID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", apiError(c, fiber.StatusNotFound, "not_found", "Issue not found")
		}
		return nil, "", apiError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load issue")
	}

	role, err := authz.ResolveRole(database.GetDB(), issue.FacilityID, userID)
	if err != nil {
		return nil, "", apiError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to resolve role")
	}
	if role == authz.RoleNone {
		return nil, "", apiError(c, fiber.StatusForbidden, "forbidden", "No access to this issue")
	}

	return issue, role, nil
}

// requireIssueAccess grants access to facility members and to the provider
// currently assigned to the issue.
func requireIssueAccess(c *fiber.Ctx, issue *models.Issue, userCtx usercontext.UserContext) error {
	role, err := authz.ResolveRole(database.GetDB(), issue.FacilityID, userCtx.UserID)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to resolve role")
	}
	if role != authz.RoleNone {
		return nil
	}
	if userCtx.IsProvider && issue.AssignedProviderID != nil && *issue.AssignedProviderID == userCtx.ProviderID {
		return nil
	}
	return apiError(c, fiber.StatusForbidden, "forbidden", "No access to this issue")
}
