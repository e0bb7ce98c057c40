package models

import (
	"time"

	"gorm.io/gorm"
)

// ProviderAccount links a user to an external OAuth identity.
type ProviderAccount struct {
	ID             uint           `gorm:"primarykey" json:"id"`
	UserID         uint           `gorm:"not null;index" json:"user_id"`
	User           User           `gorm:"foreignKey:UserID" json:"user,omitempty" validate:"-"`
	Provider       string         `gorm:"type:varchar(50);not null;uniqueIndex:idx_provider_account" json:"provider"`
	ProviderUserID string         `gorm:"type:varchar(191);not null;uniqueIndex:idx_provider_account" json:"provider_user_id"`
	AccessToken    string         `gorm:"type:text" json:"-"`
	RefreshToken   string         `gorm:"type:text" json:"-"`
	ExpiresAt      *time.Time     `gorm:"type:timestamp;default:null" json:"expires_at,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}
