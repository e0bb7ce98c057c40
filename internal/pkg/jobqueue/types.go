package jobqueue

import (
	"encoding/json"
	"time"
)

// JobType defines the type of job
type JobType string

const (
	JobTypeNotificationPush JobType = "notification_push"
	JobTypeNotificationMail JobType = "notification_mail"
	JobTypeInviteMail       JobType = "invite_mail"
)

// JobStatus defines the status of a job
type JobStatus string

const (
	JobStatusPending    JobStatus = "pending"
	JobStatusProcessing JobStatus = "processing"
	JobStatusCompleted  JobStatus = "completed"
	JobStatusFailed     JobStatus = "failed"
	JobStatusRetrying   JobStatus = "retrying"
)

// Job represents a background delivery job
type Job struct {
	ID          string                 `json:"id"`
	Type        JobType                `json:"type"`
	Status      JobStatus              `json:"status"`
	Payload     map[string]interface{} `json:"payload"`
	CreatedAt   time.Time              `json:"created_at"`
	UpdatedAt   time.Time              `json:"updated_at"`
	ProcessedAt *time.Time             `json:"processed_at,omitempty"`
	CompletedAt *time.Time             `json:"completed_at,omitempty"`
	ErrorMsg    string                 `json:"error_msg,omitempty"`
	RetryCount  int                    `json:"retry_count"`
	MaxRetries  int                    `json:"max_retries"`
}

// NotificationDeliveryPayload carries one stored notification to a delivery
// channel (push token or mail).
type NotificationDeliveryPayload struct {
	NotificationID uint   `json:"notification_id"`
	UserID         uint   `json:"user_id"`
	NotifType      string `json:"notif_type"`
	Title          string `json:"title"`
	Body           string `json:"body"`
}

// ToMap converts the payload to a map for storage
func (p NotificationDeliveryPayload) ToMap() map[string]interface{} {
	return map[string]interface{}{
		"notification_id": p.NotificationID,
		"user_id":         p.UserID,
		"notif_type":      p.NotifType,
		"title":           p.Title,
		"body":            p.Body,
	}
}

// NotificationDeliveryPayloadFromMap creates a payload from a map
func NotificationDeliveryPayloadFromMap(data map[string]interface{}) (*NotificationDeliveryPayload, error) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	var p NotificationDeliveryPayload
	if err := json.Unmarshal(jsonData, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// InviteMailPayload carries a facility invite to the mailer.
type InviteMailPayload struct {
	Email        string `json:"email"`
	FacilityName string `json:"facility_name"`
	Code         string `json:"code"`
}

// ToMap converts the payload to a map for storage
func (p InviteMailPayload) ToMap() map[string]interface{} {
	return map[string]interface{}{
		"email":         p.Email,
		"facility_name": p.FacilityName,
		"code":          p.Code,
	}
}

// InviteMailPayloadFromMap creates a payload from a map
func InviteMailPayloadFromMap(data map[string]interface{}) (*InviteMailPayload, error) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	var p InviteMailPayload
	if err := json.Unmarshal(jsonData, &p); err != nil {
		return nil, err
	}
	return &p, nil
}
