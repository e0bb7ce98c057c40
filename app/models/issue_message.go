package models

import (
	"time"

	"gorm.io/gorm"
)

// Message kinds on the issue communication thread. Application and
// cancellation messages carry a structured reference instead of relying on
// text markers.
const (
	MessageKindUser         = "user"
	MessageKindApplication  = "application"
	MessageKindCancellation = "cancellation"
)

type IssueMessage struct {
	ID                   uint           `gorm:"primaryKey" json:"id"`
	IssueID              uint           `gorm:"not null;index" json:"issue_id"`
	Issue                Issue          `gorm:"foreignKey:IssueID" json:"issue,omitempty"`
	UserID               uint           `gorm:"not null;index" json:"user_id"`
	User                 User           `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Kind                 string         `gorm:"type:varchar(32);not null;default:'user';index" json:"kind" validate:"oneof=user application cancellation"`
	Content              string         `gorm:"type:text" json:"content" validate:"required,min=1"`
	RelatedApplicationID *uint          `gorm:"index" json:"related_application_id,omitempty"`
	CreatedAt            time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt            time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt            gorm.DeletedAt `gorm:"index" json:"-"`
}
