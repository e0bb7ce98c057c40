package models

import (
	"time"

	"gorm.io/gorm"
)

const InviteValidity = 14 * 24 * time.Hour

// FacilityInvite is a single-use join code for a facility. The code itself
// comes from invitecode.Generate.
type FacilityInvite struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	FacilityID uint           `gorm:"not null;index" json:"facility_id"`
	Facility   Facility       `gorm:"foreignKey:FacilityID" json:"facility,omitempty"`
	Code       string         `gorm:"type:varchar(32);uniqueIndex" json:"code"`
	Role       string         `gorm:"type:varchar(32);not null;default:'member'" json:"role"`
	Email      string         `gorm:"type:varchar(200);default:null" json:"email"`
	CreatedBy  uint           `gorm:"not null" json:"created_by"`
	ExpiresAt  time.Time      `gorm:"not null" json:"expires_at"`
	UsedAt     *time.Time     `gorm:"type:timestamp;default:null" json:"used_at,omitempty"`
	UsedBy     *uint          `json:"used_by,omitempty"`
	CreatedAt  time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

// IsRedeemable reports whether the invite can still be used at the given instant.
func (i *FacilityInvite) IsRedeemable(now time.Time) bool {
	return i.UsedAt == nil && now.Before(i.ExpiresAt)
}
