package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	RegistrationStatusPending = "pending"
	RegistrationStatusActive  = "active"
	RegistrationStatusExpired = "expired"
)

// ServiceRegistration records that a provider offers a service. Only
// registrations that are active and not past paid-until take part in the
// request fan-out.
type ServiceRegistration struct {
	ID         uint            `gorm:"primaryKey" json:"id"`
	ProviderID uint            `gorm:"not null;index:ux_service_registrations_provider_service,unique,priority:1" json:"provider_id"`
	Provider   ServiceProvider `gorm:"foreignKey:ProviderID" json:"provider,omitempty"`
	ServiceID  uint            `gorm:"not null;index:ux_service_registrations_provider_service,unique,priority:2;index:idx_service_registrations_service_status,priority:1" json:"service_id"`
	Service    Service         `gorm:"foreignKey:ServiceID" json:"service,omitempty"`
	Status     string          `gorm:"type:varchar(32);not null;default:'pending';index:idx_service_registrations_service_status,priority:2" json:"status" validate:"oneof=pending active expired"`
	PaidUntil  *time.Time      `gorm:"type:timestamp;default:null" json:"paid_until,omitempty"`
	CreatedAt  time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt  gorm.DeletedAt  `gorm:"index" json:"-"`
}

// IsEligibleAt reports whether the registration makes its provider eligible
// for new service requests at the given instant.
func (r *ServiceRegistration) IsEligibleAt(now time.Time) bool {
	if r.Status != RegistrationStatusActive {
		return false
	}
	return r.PaidUntil == nil || r.PaidUntil.After(now)
}
