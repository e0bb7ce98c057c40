package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	RequestStatusOpen   = "open"
	RequestStatusClosed = "closed"
)

// ServiceRequest is an open call for a specific service on a specific issue.
// One issue may have several requests open concurrently, one per service.
type ServiceRequest struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	IssueID   uint           `gorm:"not null;index" json:"issue_id"`
	Issue     Issue          `gorm:"foreignKey:IssueID" json:"issue,omitempty"`
	ServiceID uint           `gorm:"not null;index" json:"service_id"`
	Service   Service        `gorm:"foreignKey:ServiceID" json:"service,omitempty"`
	Status    string         `gorm:"type:varchar(32);not null;default:'open';index" json:"status" validate:"oneof=open closed"`
	CreatedBy uint           `gorm:"not null" json:"created_by"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// IsOpen reports whether the request still accepts applications.
func (r *ServiceRequest) IsOpen() bool {
	return r.Status == RequestStatusOpen
}
