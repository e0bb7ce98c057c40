package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

const (
	SubscriptionStatusPending = "pending"
	SubscriptionStatusPaused  = "paused"
	SubscriptionStatusActive  = "active"
)

// Facility is a managed property/building. The owner is stored on the
// facility itself, never as a membership row.
type Facility struct {
	ID                 uint           `gorm:"primaryKey" json:"id"`
	Name               string         `gorm:"type:varchar(200)" json:"name" validate:"required,min=2,max=200"`
	Address            string         `gorm:"type:varchar(255);default:null" json:"address" validate:"max=255"`
	Description        string         `gorm:"type:text;default:null" json:"description" validate:"max=2000"`
	OwnerID            uint           `gorm:"not null;index" json:"owner_id"`
	Owner              User           `gorm:"foreignKey:OwnerID" json:"owner,omitempty" validate:"-"`
	SubscriptionStatus string         `gorm:"type:varchar(32);not null;default:'pending';index" json:"subscription_status" validate:"oneof=pending paused active"`
	PaidUntil          *time.Time     `gorm:"type:timestamp;default:null" json:"paid_until,omitempty"`
	Notes              string         `gorm:"type:text;default:null" json:"notes"`
	CreatedAt          time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`
}

func (f *Facility) Validate() error {
	v := validator.New()

	return v.Struct(f)
}

// HasActiveSubscription reports whether the facility subscription is active
// and not past its paid-until date at the given instant.
func (f *Facility) HasActiveSubscription(now time.Time) bool {
	if f.SubscriptionStatus != SubscriptionStatusActive {
		return false
	}
	return f.PaidUntil == nil || f.PaidUntil.After(now)
}
