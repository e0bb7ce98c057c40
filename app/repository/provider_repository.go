package repository

import (
	"github.com/ManuelReschke/FacilityFox/app/models"
	"gorm.io/gorm"
)

// providerRepository implements the ProviderRepository interface
type providerRepository struct {
	db *gorm.DB
}

// NewProviderRepository creates a new provider repository instance
func NewProviderRepository(db *gorm.DB) ProviderRepository {
	return &providerRepository{db: db}
}

// Create creates a new service provider profile
func (r *providerRepository) Create(provider *models.ServiceProvider) error {
	return r.db.Create(provider).Error
}

// GetByID retrieves a provider by its ID
func (r *providerRepository) GetByID(id uint) (*models.ServiceProvider, error) {
	var provider models.ServiceProvider
	err := r.db.Preload("User").First(&provider, id).Error
	if err != nil {
		return nil, err
	}
	return &provider, nil
}

// GetByUserID retrieves the provider profile of a user
func (r *providerRepository) GetByUserID(userID uint) (*models.ServiceProvider, error) {
	var provider models.ServiceProvider
	err := r.db.Where("user_id = ?", userID).First(&provider).Error
	if err != nil {
		return nil, err
	}
	return &provider, nil
}

// Update updates an existing provider profile
func (r *providerRepository) Update(provider *models.ServiceProvider) error {
	return r.db.Save(provider).Error
}

// Delete soft deletes a provider profile by its ID
func (r *providerRepository) Delete(id uint) error {
	return r.db.Delete(&models.ServiceProvider{}, id).Error
}

// List retrieves a paginated list of providers
func (r *providerRepository) List(offset, limit int) ([]models.ServiceProvider, error) {
	var providers []models.ServiceProvider
	err := r.db.Order("company_name ASC").Offset(offset).Limit(limit).Find(&providers).Error
	return providers, err
}

// Count returns the total number of providers
func (r *providerRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.ServiceProvider{}).Count(&count).Error
	return count, err
}

// CreateRegistration creates a new service registration for a provider
func (r *providerRepository) CreateRegistration(registration *models.ServiceRegistration) error {
	return r.db.Create(registration).Error
}

// GetRegistration retrieves a registration by its ID
func (r *providerRepository) GetRegistration(id uint) (*models.ServiceRegistration, error) {
	var registration models.ServiceRegistration
	err := r.db.Preload("Provider").Preload("Service").First(&registration, id).Error
	if err != nil {
		return nil, err
	}
	return &registration, nil
}

// GetRegistrations retrieves all registrations of a provider
func (r *providerRepository) GetRegistrations(providerID uint) ([]models.ServiceRegistration, error) {
	var registrations []models.ServiceRegistration
	err := r.db.Preload("Service").Where("provider_id = ?", providerID).Order("created_at DESC").Find(&registrations).Error
	return registrations, err
}

// GetRegistrationsByStatus retrieves all registrations with the given status
func (r *providerRepository) GetRegistrationsByStatus(status string) ([]models.ServiceRegistration, error) {
	var registrations []models.ServiceRegistration
	err := r.db.Preload("Provider").Preload("Service").
		Where("status = ?", status).Order("created_at ASC").Find(&registrations).Error
	return registrations, err
}

// GetActiveByService retrieves all active registrations for a service
func (r *providerRepository) GetActiveByService(serviceID uint) ([]models.ServiceRegistration, error) {
	var registrations []models.ServiceRegistration
	err := r.db.Preload("Provider").
		Where("service_id = ? AND status = ?", serviceID, models.RegistrationStatusActive).
		Find(&registrations).Error
	return registrations, err
}

// UpdateRegistration updates an existing registration
func (r *providerRepository) UpdateRegistration(registration *models.ServiceRegistration) error {
	return r.db.Save(registration).Error
}
