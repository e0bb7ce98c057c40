package repository

import (
	"github.com/ManuelReschke/FacilityFox/app/models"
	"gorm.io/gorm"
)

// requestRepository implements the RequestRepository interface
type requestRepository struct {
	db *gorm.DB
}

// NewRequestRepository creates a new service request repository instance
func NewRequestRepository(db *gorm.DB) RequestRepository {
	return &requestRepository{db: db}
}

// Create creates a new service request
func (r *requestRepository) Create(request *models.ServiceRequest) error {
	return r.db.Create(request).Error
}

// GetByID retrieves a service request by its ID
func (r *requestRepository) GetByID(id uint) (*models.ServiceRequest, error) {
	var request models.ServiceRequest
	err := r.db.Preload("Issue").Preload("Service").First(&request, id).Error
	if err != nil {
		return nil, err
	}
	return &request, nil
}

// GetByIssue retrieves all service requests of an issue
func (r *requestRepository) GetByIssue(issueID uint) ([]models.ServiceRequest, error) {
	var requests []models.ServiceRequest
	err := r.db.Preload("Service").Where("issue_id = ?", issueID).Order("created_at DESC").Find(&requests).Error
	return requests, err
}

// GetOpenByIssue retrieves the open service requests of an issue
func (r *requestRepository) GetOpenByIssue(issueID uint) ([]models.ServiceRequest, error) {
	var requests []models.ServiceRequest
	err := r.db.Preload("Service").
		Where("issue_id = ? AND status = ?", issueID, models.RequestStatusOpen).
		Order("created_at DESC").Find(&requests).Error
	return requests, err
}

// GetOpenForProvider retrieves open requests for services the provider is actively registered for
func (r *requestRepository) GetOpenForProvider(providerID uint, offset, limit int) ([]models.ServiceRequest, error) {
	var requests []models.ServiceRequest
	err := r.db.Preload("Issue").Preload("Service").
		Joins("JOIN service_registrations ON service_registrations.service_id = service_requests.service_id AND service_registrations.deleted_at IS NULL").
		Where("service_registrations.provider_id = ? AND service_registrations.status = ? AND service_requests.status = ?",
			providerID, models.RegistrationStatusActive, models.RequestStatusOpen).
		Order("service_requests.created_at DESC").
		Offset(offset).Limit(limit).
		Find(&requests).Error
	return requests, err
}

// Update updates an existing service request
func (r *requestRepository) Update(request *models.ServiceRequest) error {
	return r.db.Save(request).Error
}

// CountOpenByIssue returns the number of open service requests of an issue
func (r *requestRepository) CountOpenByIssue(issueID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.ServiceRequest{}).
		Where("issue_id = ? AND status = ?", issueID, models.RequestStatusOpen).
		Count(&count).Error
	return count, err
}

// GetApplication retrieves an application by its ID
func (r *requestRepository) GetApplication(id uint) (*models.ServiceApplication, error) {
	var application models.ServiceApplication
	err := r.db.Preload("Provider").Preload("Request").First(&application, id).Error
	if err != nil {
		return nil, err
	}
	return &application, nil
}

// GetApplications retrieves all applications of a service request
func (r *requestRepository) GetApplications(requestID uint) ([]models.ServiceApplication, error) {
	var applications []models.ServiceApplication
	err := r.db.Preload("Provider").Where("request_id = ?", requestID).Order("created_at ASC").Find(&applications).Error
	return applications, err
}

// GetApplicationsByProvider retrieves a provider's applications across requests
func (r *requestRepository) GetApplicationsByProvider(providerID uint, offset, limit int) ([]models.ServiceApplication, error) {
	var applications []models.ServiceApplication
	err := r.db.Preload("Request").Preload("Request.Issue").
		Where("provider_id = ?", providerID).
		Order("created_at DESC").Offset(offset).Limit(limit).
		Find(&applications).Error
	return applications, err
}
