package models

import (
	"time"

	"gorm.io/gorm"
)

// IssueAttachment references a photo stored in the S3 attachment bucket.
type IssueAttachment struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	IssueID    uint           `gorm:"not null;index" json:"issue_id"`
	Issue      Issue          `gorm:"foreignKey:IssueID" json:"issue,omitempty"`
	UploadedBy uint           `gorm:"not null" json:"uploaded_by"`
	UUID       string         `gorm:"type:varchar(36);uniqueIndex" json:"uuid"`
	FileName   string         `gorm:"type:varchar(255)" json:"file_name"`
	FileSize   int64          `json:"file_size"`
	MimeType   string         `gorm:"type:varchar(100)" json:"mime_type"`
	ObjectKey  string         `gorm:"type:varchar(512)" json:"object_key"`
	CreatedAt  time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}
