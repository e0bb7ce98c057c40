package repository

import (
	"github.com/ManuelReschke/FacilityFox/app/models"
	"gorm.io/gorm"
)

// serviceRepository implements the ServiceRepository interface
type serviceRepository struct {
	db *gorm.DB
}

// NewServiceRepository creates a new service repository instance
func NewServiceRepository(db *gorm.DB) ServiceRepository {
	return &serviceRepository{db: db}
}

// Create creates a new service in the catalog
func (r *serviceRepository) Create(service *models.Service) error {
	return r.db.Create(service).Error
}

// GetByID retrieves a service by its ID
func (r *serviceRepository) GetByID(id uint) (*models.Service, error) {
	var service models.Service
	err := r.db.First(&service, id).Error
	if err != nil {
		return nil, err
	}
	return &service, nil
}

// GetAll retrieves all services in the catalog
func (r *serviceRepository) GetAll() ([]models.Service, error) {
	var services []models.Service
	err := r.db.Order("name ASC").Find(&services).Error
	return services, err
}

// GetActive retrieves all active services
func (r *serviceRepository) GetActive() ([]models.Service, error) {
	var services []models.Service
	err := r.db.Where("active = ?", true).Order("name ASC").Find(&services).Error
	return services, err
}

// Update updates an existing service
func (r *serviceRepository) Update(service *models.Service) error {
	return r.db.Save(service).Error
}

// Delete soft deletes a service by its ID
func (r *serviceRepository) Delete(id uint) error {
	return r.db.Delete(&models.Service{}, id).Error
}
