package repository

import (
	"time"

	"github.com/ManuelReschke/FacilityFox/app/models"
	"gorm.io/gorm"
)

// appointmentRepository implements the AppointmentRepository interface
type appointmentRepository struct {
	db *gorm.DB
}

// NewAppointmentRepository creates a new appointment repository instance
func NewAppointmentRepository(db *gorm.DB) AppointmentRepository {
	return &appointmentRepository{db: db}
}

// GetByID retrieves an appointment by its ID
func (r *appointmentRepository) GetByID(id uint) (*models.ServiceAppointment, error) {
	var appointment models.ServiceAppointment
	err := r.db.Preload("Provider").First(&appointment, id).Error
	if err != nil {
		return nil, err
	}
	return &appointment, nil
}

// GetByIssue retrieves all appointments of an issue
func (r *appointmentRepository) GetByIssue(issueID uint) ([]models.ServiceAppointment, error) {
	var appointments []models.ServiceAppointment
	err := r.db.Preload("Provider").
		Where("issue_id = ?", issueID).
		Order("proposed_date ASC, proposed_time ASC").
		Find(&appointments).Error
	return appointments, err
}

// GetByProvider retrieves a provider's appointments across issues
func (r *appointmentRepository) GetByProvider(providerID uint, offset, limit int) ([]models.ServiceAppointment, error) {
	var appointments []models.ServiceAppointment
	err := r.db.Preload("Issue").
		Where("provider_id = ?", providerID).
		Order("proposed_date DESC, proposed_time DESC").
		Offset(offset).Limit(limit).
		Find(&appointments).Error
	return appointments, err
}

// GetUpcomingByProvider retrieves confirmed appointments of a provider from the given date on
func (r *appointmentRepository) GetUpcomingByProvider(providerID uint, from time.Time) ([]models.ServiceAppointment, error) {
	var appointments []models.ServiceAppointment
	err := r.db.Preload("Issue").
		Where("provider_id = ? AND status = ? AND proposed_date >= ?",
			providerID, models.AppointmentStatusConfirmed, from.Format("2006-01-02")).
		Order("proposed_date ASC, proposed_time ASC").
		Find(&appointments).Error
	return appointments, err
}
