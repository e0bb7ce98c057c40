package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

const (
	AppointmentStatusProposed  = "proposed"
	AppointmentStatusConfirmed = "confirmed"
	AppointmentStatusRejected  = "rejected"
	AppointmentStatusCompleted = "completed"
)

// ServiceAppointment is a proposed or agreed date/time slot for performing
// the work on an issue. Several proposals may coexist per issue.
type ServiceAppointment struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	IssueID      uint            `gorm:"not null;index" json:"issue_id"`
	Issue        Issue           `gorm:"foreignKey:IssueID" json:"issue,omitempty" validate:"-"`
	ProviderID   uint            `gorm:"not null;index" json:"provider_id"`
	Provider     ServiceProvider `gorm:"foreignKey:ProviderID" json:"provider,omitempty" validate:"-"`
	ProposedDate string          `gorm:"type:varchar(10)" json:"proposed_date" validate:"required,datetime=2006-01-02"`
	ProposedTime string          `gorm:"type:varchar(5)" json:"proposed_time" validate:"required,datetime=15:04"`
	ProposedBy   uint            `gorm:"not null" json:"proposed_by"`
	Status       string          `gorm:"type:varchar(32);not null;default:'proposed';index" json:"status" validate:"oneof=proposed confirmed rejected completed"`
	ConfirmedBy  *uint           `json:"confirmed_by,omitempty"`
	ConfirmedAt  *time.Time      `gorm:"type:timestamp;default:null" json:"confirmed_at,omitempty"`
	Notes        string          `gorm:"type:text;default:null" json:"notes"`
	CreatedAt    time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt    gorm.DeletedAt  `gorm:"index" json:"-"`
}

func (a *ServiceAppointment) Validate() error {
	v := validator.New()

	return v.Struct(a)
}

// appointmentTransitions holds the allowed status transitions.
// rejected and completed are terminal.
var appointmentTransitions = map[string][]string{
	AppointmentStatusProposed:  {AppointmentStatusConfirmed, AppointmentStatusRejected},
	AppointmentStatusConfirmed: {AppointmentStatusCompleted},
}

// CanTransitionAppointmentStatus reports whether an appointment may move
// from one status to another.
func CanTransitionAppointmentStatus(from, to string) bool {
	for _, next := range appointmentTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
