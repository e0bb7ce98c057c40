package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	ApplicationStatusPending  = "pending"
	ApplicationStatusSelected = "selected"
	ApplicationStatusRejected = "rejected"
)

// MaxActiveApplications caps the number of pending/selected applications a
// single request may hold.
const MaxActiveApplications = 3

// ServiceApplication is a provider's bid on a ServiceRequest.
// pending -> selected | rejected; selected and rejected are terminal.
type ServiceApplication struct {
	ID         uint            `gorm:"primaryKey" json:"id"`
	RequestID  uint            `gorm:"not null;index" json:"request_id"`
	Request    ServiceRequest  `gorm:"foreignKey:RequestID" json:"request,omitempty"`
	ProviderID uint            `gorm:"not null;index" json:"provider_id"`
	Provider   ServiceProvider `gorm:"foreignKey:ProviderID" json:"provider,omitempty"`
	Status     string          `gorm:"type:varchar(32);not null;default:'pending';index" json:"status" validate:"oneof=pending selected rejected"`
	Message    string          `gorm:"type:text;default:null" json:"message"`
	CreatedAt  time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt  gorm.DeletedAt  `gorm:"index" json:"-"`
}

// IsActive reports whether the application counts against the request cap.
func (a *ServiceApplication) IsActive() bool {
	return a.Status == ApplicationStatusPending || a.Status == ApplicationStatusSelected
}

// CountActiveApplications returns how many applications in the slice count
// against the cap.
func CountActiveApplications(apps []ServiceApplication) int {
	n := 0
	for i := range apps {
		if apps[i].IsActive() {
			n++
		}
	}
	return n
}

// HasActiveApplicationFrom reports whether the provider already holds a
// pending or selected application in the slice.
func HasActiveApplicationFrom(apps []ServiceApplication, providerID uint) bool {
	for i := range apps {
		if apps[i].ProviderID == providerID && apps[i].IsActive() {
			return true
		}
	}
	return false
}
