package repository

import (
	"github.com/ManuelReschke/FacilityFox/app/models"
	"gorm.io/gorm"
)

// issueRepository implements the IssueRepository interface
type issueRepository struct {
	db *gorm.DB
}

// NewIssueRepository creates a new issue repository instance
func NewIssueRepository(db *gorm.DB) IssueRepository {
	return &issueRepository{db: db}
}

// Create creates a new issue in the database
func (r *issueRepository) Create(issue *models.Issue) error {
	return r.db.Create(issue).Error
}

// GetByID retrieves an issue by its ID
func (r *issueRepository) GetByID(id uint) (*models.Issue, error) {
	var issue models.Issue
	err := r.db.Preload("Facility").First(&issue, id).Error
	if err != nil {
		return nil, err
	}
	return &issue, nil
}

// GetByFacility retrieves a paginated list of issues for a facility
func (r *issueRepository) GetByFacility(facilityID uint, offset, limit int) ([]models.Issue, error) {
	var issues []models.Issue
	err := r.db.Where("facility_id = ?", facilityID).
		Order("created_at DESC").Offset(offset).Limit(limit).Find(&issues).Error
	return issues, err
}

// GetByFacilityAndStatus retrieves issues of a facility filtered by status
func (r *issueRepository) GetByFacilityAndStatus(facilityID uint, status string, offset, limit int) ([]models.Issue, error) {
	var issues []models.Issue
	err := r.db.Where("facility_id = ? AND status = ?", facilityID, status).
		Order("created_at DESC").Offset(offset).Limit(limit).Find(&issues).Error
	return issues, err
}

// GetAssignedToProvider retrieves issues currently assigned to a provider
func (r *issueRepository) GetAssignedToProvider(providerID uint, offset, limit int) ([]models.Issue, error) {
	var issues []models.Issue
	err := r.db.Preload("Facility").
		Where("assigned_provider_id = ?", providerID).
		Order("updated_at DESC").Offset(offset).Limit(limit).Find(&issues).Error
	return issues, err
}

// Update updates an existing issue
func (r *issueRepository) Update(issue *models.Issue) error {
	return r.db.Save(issue).Error
}

// Delete soft deletes an issue by its ID
func (r *issueRepository) Delete(id uint) error {
	return r.db.Delete(&models.Issue{}, id).Error
}

// CountByFacility returns the number of issues of a facility
func (r *issueRepository) CountByFacility(facilityID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Issue{}).Where("facility_id = ?", facilityID).Count(&count).Error
	return count, err
}

// AddMessage appends a message to an issue's conversation
func (r *issueRepository) AddMessage(message *models.IssueMessage) error {
	return r.db.Create(message).Error
}

// GetMessages retrieves the conversation of an issue in chronological order
func (r *issueRepository) GetMessages(issueID uint) ([]models.IssueMessage, error) {
	var messages []models.IssueMessage
	err := r.db.Preload("User").Where("issue_id = ?", issueID).Order("created_at ASC").Find(&messages).Error
	return messages, err
}

// AddAttachment stores attachment metadata for an issue
func (r *issueRepository) AddAttachment(attachment *models.IssueAttachment) error {
	return r.db.Create(attachment).Error
}

// GetAttachments retrieves all attachments of an issue
func (r *issueRepository) GetAttachments(issueID uint) ([]models.IssueAttachment, error) {
	var attachments []models.IssueAttachment
	err := r.db.Where("issue_id = ?", issueID).Order("created_at ASC").Find(&attachments).Error
	return attachments, err
}

// GetAttachmentByUUID retrieves a single attachment by its UUID
func (r *issueRepository) GetAttachmentByUUID(uuid string) (*models.IssueAttachment, error) {
	var attachment models.IssueAttachment
	err := r.db.Where("uuid = ?", uuid).First(&attachment).Error
	if err != nil {
		return nil, err
	}
	return &attachment, nil
}

// DeleteAttachment soft deletes an attachment by its ID
func (r *issueRepository) DeleteAttachment(id uint) error {
	return r.db.Delete(&models.IssueAttachment{}, id).Error
}
