package jobqueue

import (
	"fmt"

	"github.com/gofiber/fiber/v2/log"

	"github.com/ManuelReschke/FacilityFox/app/models"
	"github.com/ManuelReschke/FacilityFox/internal/pkg/database"
	"github.com/ManuelReschke/FacilityFox/internal/pkg/mail"
)

// Process dispatches a job to the processor for its type.
func Process(job *Job) error {
	switch job.Type {
	case JobTypeNotificationPush:
		return processNotificationPush(job)
	case JobTypeNotificationMail:
		return processNotificationMail(job)
	case JobTypeInviteMail:
		return processInviteMail(job)
	}
	return fmt.Errorf("unknown job type: %s", job.Type)
}

// processNotificationPush hands a notification to the push gateway. The
// actual transport (Expo/FCM) sits behind the push token; without a token
// the job is a no-op.
func processNotificationPush(job *Job) error {
	payload, err := NotificationDeliveryPayloadFromMap(job.Payload)
	if err != nil {
		return err
	}

	db := database.GetDB()
	if db == nil {
		return fmt.Errorf("database unavailable")
	}

	var settings models.UserSettings
	if err := db.Where("user_id = ?", payload.UserID).First(&settings).Error; err != nil {
		// No settings row means no push channel was ever set up.
		log.Infof("[JobQueue] No settings for user %d, skipping push", payload.UserID)
		return nil
	}
	if !settings.PrefNotifyPush || settings.PushToken == "" {
		return nil
	}

	return mail.SendPush(settings.PushToken, payload.Title, payload.Body)
}

// processNotificationMail mails a notification to users who opted in.
func processNotificationMail(job *Job) error {
	payload, err := NotificationDeliveryPayloadFromMap(job.Payload)
	if err != nil {
		return err
	}

	db := database.GetDB()
	if db == nil {
		return fmt.Errorf("database unavailable")
	}

	var settings models.UserSettings
	if err := db.Where("user_id = ?", payload.UserID).First(&settings).Error; err != nil {
		return nil
	}
	if !settings.PrefNotifyMail {
		return nil
	}

	var user models.User
	if err := db.First(&user, payload.UserID).Error; err != nil {
		return err
	}

	return mail.SendMail(user.Email, payload.Title, payload.Body)
}

func processInviteMail(job *Job) error {
	payload, err := InviteMailPayloadFromMap(job.Payload)
	if err != nil {
		return err
	}

	subject := fmt.Sprintf("Invitation to %s", payload.FacilityName)
	body := fmt.Sprintf("You have been invited to join %s on FacilityFox. Your invite code: <b>%s</b>",
		payload.FacilityName, payload.Code)
	return mail.SendMail(payload.Email, subject, body)
}
