package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

const (
	IssueStatusOpen       = "open"
	IssueStatusInProgress = "in_progress"
	IssueStatusResolved   = "resolved"
	IssueStatusClosed     = "closed"
)

const (
	IssuePriorityIdea     = "idea"
	IssuePriorityNormal   = "normal"
	IssuePriorityHigh     = "high"
	IssuePriorityCritical = "critical"
	IssuePriorityUrgent   = "urgent"
)

// Provider selection lifecycle per issue. "cancelled" is terminal: once a
// selection was cancelled the issue can never re-enter the selection flow.
const (
	SelectionStateNone      = "none"
	SelectionStateActive    = "active"
	SelectionStateCancelled = "cancelled"
)

type Issue struct {
	ID                    uint           `gorm:"primaryKey" json:"id"`
	FacilityID            uint           `gorm:"not null;index" json:"facility_id"`
	Facility              Facility       `gorm:"foreignKey:FacilityID" json:"facility,omitempty" validate:"-"`
	Title                 string         `gorm:"type:varchar(200)" json:"title" validate:"required,min=3,max=200"`
	Description           string         `gorm:"type:text;default:null" json:"description" validate:"max=5000"`
	Status                string         `gorm:"type:varchar(32);not null;default:'open';index" json:"status" validate:"oneof=open in_progress resolved closed"`
	Priority              string         `gorm:"type:varchar(32);not null;default:'normal'" json:"priority" validate:"oneof=idea normal high critical urgent"`
	CreatedBy             uint           `gorm:"not null;index" json:"created_by"`
	Creator               User           `gorm:"foreignKey:CreatedBy" json:"creator,omitempty" validate:"-"`
	RequiresCooperation   bool           `gorm:"default:false" json:"requires_cooperation"`
	CooperationUserID     *uint          `gorm:"index" json:"cooperation_user_id,omitempty"`
	AssignedProviderID    *uint          `gorm:"index" json:"assigned_provider_id,omitempty"`
	SelectedAppointmentID *uint          `json:"selected_appointment_id,omitempty"`
	SelectionState        string         `gorm:"type:varchar(32);not null;default:'none';index" json:"selection_state" validate:"oneof=none active cancelled"`
	CreatedAt             time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt             time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt             gorm.DeletedAt `gorm:"index" json:"-"`
}

func (i *Issue) Validate() error {
	v := validator.New()

	return v.Struct(i)
}

// issueTransitions holds the allowed status transitions.
var issueTransitions = map[string][]string{
	IssueStatusOpen:       {IssueStatusInProgress, IssueStatusClosed},
	IssueStatusInProgress: {IssueStatusResolved, IssueStatusOpen},
	IssueStatusResolved:   {IssueStatusClosed, IssueStatusOpen},
	IssueStatusClosed:     {IssueStatusOpen},
}

// CanTransitionIssueStatus reports whether an issue may move from one status
// to another. Who may invoke the transition is a separate permission check.
func CanTransitionIssueStatus(from, to string) bool {
	for _, next := range issueTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// NormalizePriority maps legacy priority aliases onto the current set.
// Unknown values fall back to normal.
func NormalizePriority(p string) string {
	switch p {
	case "low":
		return IssuePriorityIdea
	case "medium":
		return IssuePriorityNormal
	case IssuePriorityIdea, IssuePriorityNormal, IssuePriorityHigh, IssuePriorityCritical, IssuePriorityUrgent:
		return p
	}
	return IssuePriorityNormal
}

// SelectionCancelled reports whether the issue is permanently barred from the
// provider selection flow.
func (i *Issue) SelectionCancelled() bool {
	return i.SelectionState == SelectionStateCancelled
}
