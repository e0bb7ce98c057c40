package repository

import (
	"github.com/ManuelReschke/FacilityFox/app/models"
	"gorm.io/gorm"
)

// facilityRepository implements the FacilityRepository interface
type facilityRepository struct {
	db *gorm.DB
}

// NewFacilityRepository creates a new facility repository instance
func NewFacilityRepository(db *gorm.DB) FacilityRepository {
	return &facilityRepository{db: db}
}

// Create creates a new facility in the database
func (r *facilityRepository) Create(facility *models.Facility) error {
	return r.db.Create(facility).Error
}

// GetByID retrieves a facility by its ID
func (r *facilityRepository) GetByID(id uint) (*models.Facility, error) {
	var facility models.Facility
	err := r.db.First(&facility, id).Error
	if err != nil {
		return nil, err
	}
	return &facility, nil
}

// GetByOwner retrieves all facilities owned by a user
func (r *facilityRepository) GetByOwner(ownerID uint) ([]models.Facility, error) {
	var facilities []models.Facility
	err := r.db.Where("owner_id = ?", ownerID).Order("name ASC").Find(&facilities).Error
	return facilities, err
}

// GetForUser retrieves all facilities a user owns or is a member of
func (r *facilityRepository) GetForUser(userID uint) ([]models.Facility, error) {
	var facilities []models.Facility
	err := r.db.
		Distinct("facilities.*").
		Joins("LEFT JOIN facility_memberships ON facility_memberships.facility_id = facilities.id AND facility_memberships.deleted_at IS NULL").
		Where("facilities.owner_id = ? OR facility_memberships.user_id = ?", userID, userID).
		Order("facilities.name ASC").
		Find(&facilities).Error
	return facilities, err
}

// Update updates an existing facility
func (r *facilityRepository) Update(facility *models.Facility) error {
	return r.db.Save(facility).Error
}

// Delete soft deletes a facility by its ID
func (r *facilityRepository) Delete(id uint) error {
	return r.db.Delete(&models.Facility{}, id).Error
}

// List retrieves a paginated list of facilities
func (r *facilityRepository) List(offset, limit int) ([]models.Facility, error) {
	var facilities []models.Facility
	err := r.db.Order("created_at DESC").Offset(offset).Limit(limit).Find(&facilities).Error
	return facilities, err
}

// Count returns the total number of facilities
func (r *facilityRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Facility{}).Count(&count).Error
	return count, err
}

// GetMembership retrieves the membership of a user in a facility
func (r *facilityRepository) GetMembership(facilityID, userID uint) (*models.FacilityMembership, error) {
	var membership models.FacilityMembership
	err := r.db.Where("facility_id = ? AND user_id = ?", facilityID, userID).First(&membership).Error
	if err != nil {
		return nil, err
	}
	return &membership, nil
}

// GetMembers retrieves all memberships of a facility with their users preloaded
func (r *facilityRepository) GetMembers(facilityID uint) ([]models.FacilityMembership, error) {
	var memberships []models.FacilityMembership
	err := r.db.Preload("User").Where("facility_id = ?", facilityID).Order("created_at ASC").Find(&memberships).Error
	return memberships, err
}

// AddMember creates a new facility membership
func (r *facilityRepository) AddMember(membership *models.FacilityMembership) error {
	return r.db.Create(membership).Error
}

// UpdateMember updates an existing facility membership
func (r *facilityRepository) UpdateMember(membership *models.FacilityMembership) error {
	return r.db.Save(membership).Error
}

// RemoveMember soft deletes the membership of a user in a facility
func (r *facilityRepository) RemoveMember(facilityID, userID uint) error {
	return r.db.Where("facility_id = ? AND user_id = ?", facilityID, userID).Delete(&models.FacilityMembership{}).Error
}

// CreateInvite creates a new facility invite
func (r *facilityRepository) CreateInvite(invite *models.FacilityInvite) error {
	return r.db.Create(invite).Error
}

// GetInviteByCode retrieves an invite by its code
func (r *facilityRepository) GetInviteByCode(code string) (*models.FacilityInvite, error) {
	var invite models.FacilityInvite
	err := r.db.Preload("Facility").Where("code = ?", code).First(&invite).Error
	if err != nil {
		return nil, err
	}
	return &invite, nil
}

// GetInvites retrieves all invites of a facility
func (r *facilityRepository) GetInvites(facilityID uint) ([]models.FacilityInvite, error) {
	var invites []models.FacilityInvite
	err := r.db.Where("facility_id = ?", facilityID).Order("created_at DESC").Find(&invites).Error
	return invites, err
}

// UpdateInvite updates an existing invite
func (r *facilityRepository) UpdateInvite(invite *models.FacilityInvite) error {
	return r.db.Save(invite).Error
}

// DeleteInvite soft deletes an invite by its ID
func (r *facilityRepository) DeleteInvite(id uint) error {
	return r.db.Delete(&models.FacilityInvite{}, id).Error
}
