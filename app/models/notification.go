package models

import (
	"encoding/json"
	"time"

	"gorm.io/gorm"
)

const (
	NotificationTypeServiceRequestCreated = "service_request_created"
	NotificationTypeApplicationSelected   = "application_selected"
	NotificationTypeApplicationRejected   = "application_rejected"
	NotificationTypeAppointmentProposed   = "appointment_proposed"
	NotificationTypeAppointmentConfirmed  = "appointment_confirmed"
	NotificationTypeSelectionCancelled    = "selection_cancelled"
	NotificationTypeRegistrationApproved  = "registration_approved"
	NotificationTypeSystem                = "system"
)

type Notification struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	UserID    uint           `gorm:"index" json:"user_id"`
	User      User           `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Type      string         `gorm:"type:varchar(50);index" json:"type"`
	Title     string         `gorm:"type:varchar(200)" json:"title"`
	Body      string         `gorm:"type:text" json:"body"`
	Data      string         `gorm:"type:text" json:"-"` // JSON payload, see DataMap
	ReadAt    *time.Time     `gorm:"type:timestamp;default:null;index" json:"read_at,omitempty"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// IsRead reports whether the notification has been read.
func (n *Notification) IsRead() bool {
	return n.ReadAt != nil
}

// SetData marshals the structured payload into the Data column.
func (n *Notification) SetData(data map[string]interface{}) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return err
	}
	n.Data = string(raw)
	return nil
}

// DataMap unmarshals the stored payload. An empty column yields an empty map.
func (n *Notification) DataMap() (map[string]interface{}, error) {
	out := map[string]interface{}{}
	if n.Data == "" {
		return out, nil
	}
	if err := json.Unmarshal([]byte(n.Data), &out); err != nil {
		return nil, err
	}
	return out, nil
}
