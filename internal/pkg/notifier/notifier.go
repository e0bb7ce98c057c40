package notifier

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/ManuelReschke/FacilityFox/app/models"
	"github.com/ManuelReschke/FacilityFox/internal/pkg/jobqueue"
)

const (
	// UnreadKeyPrefix + userID holds the cached unread count.
	UnreadKeyPrefix = "notifications:unread:"
	// EventChannel carries change events so connected clients can refresh
	// without polling.
	EventChannel = "notifications:events"

	unreadTTL = 24 * time.Hour
)

// Service creates notifications, maintains per-user unread counters in
// Redis, and publishes change events for subscribed clients.
type Service struct {
	db    *gorm.DB
	redis *redis.Client
	queue *jobqueue.Manager
}

// NewService creates a notifier. The queue may be nil; delivery jobs are
// then skipped.
func NewService(db *gorm.DB, redisClient *redis.Client, queue *jobqueue.Manager) *Service {
	return &Service{db: db, redis: redisClient, queue: queue}
}

// FanOutServiceRequest notifies every eligible provider registered for the
// requested service. Eligibility is status=active plus the paid-until check,
// which is applied here rather than in the query because the expiry
// condition is a disjunction (null or future).
func (s *Service) FanOutServiceRequest(request *models.ServiceRequest, issue *models.Issue, facility *models.Facility, service *models.Service) error {
	var registrations []models.ServiceRegistration
	if err := s.db.Preload("Provider").
		Where("service_id = ? AND status = ?", request.ServiceID, models.RegistrationStatusActive).
		Find(&registrations).Error; err != nil {
		return err
	}

	eligible := EligibleRegistrations(registrations, time.Now())
	if len(eligible) == 0 {
		return nil
	}

	title := "New service request"
	body := fmt.Sprintf("%s: %s - %s", facility.Name, issue.Title, service.Name)
	data := map[string]interface{}{
		"issue_id":      issue.ID,
		"request_id":    request.ID,
		"service_id":    service.ID,
		"facility_id":   facility.ID,
		"facility_name": facility.Name,
		"issue_title":   issue.Title,
		"service_name":  service.Name,
	}

	notifications := make([]models.Notification, 0, len(eligible))
	for i := range eligible {
		n := models.Notification{
			UserID: eligible[i].Provider.UserID,
			Type:   models.NotificationTypeServiceRequestCreated,
			Title:  title,
			Body:   body,
		}
		if err := n.SetData(data); err != nil {
			return err
		}
		notifications = append(notifications, n)
	}

	// One batch insert, all or nothing.
	if err := s.db.Create(&notifications).Error; err != nil {
		return err
	}

	for i := range notifications {
		s.bumpUnread(notifications[i].UserID)
		s.enqueueDelivery(&notifications[i])
	}

	return nil
}

// NotifyUser inserts a single notification for a user.
func (s *Service) NotifyUser(userID uint, notifType, title, body string, data map[string]interface{}) error {
	n := models.Notification{
		UserID: userID,
		Type:   notifType,
		Title:  title,
		Body:   body,
	}
	if data != nil {
		if err := n.SetData(data); err != nil {
			return err
		}
	}
	if err := s.db.Create(&n).Error; err != nil {
		return err
	}

	s.bumpUnread(userID)
	s.enqueueDelivery(&n)

	return nil
}

// UnreadCount returns the unread counter for a user, preferring the Redis
// cache and repairing it from the database on a miss.
func (s *Service) UnreadCount(userID uint) (int64, error) {
	ctx := context.Background()
	key := unreadKey(userID)

	if val, err := s.redis.Get(ctx, key).Int64(); err == nil {
		return val, nil
	}

	var count int64
	if err := s.db.Model(&models.Notification{}).
		Where("user_id = ? AND read_at IS NULL", userID).
		Count(&count).Error; err != nil {
		return 0, err
	}

	if err := s.redis.Set(ctx, key, count, unreadTTL).Err(); err != nil {
		log.Warnf("[Notifier] unread cache repair for user %d failed: %v", userID, err)
	}
	return count, nil
}

// MarkAsRead marks one notification as read. The counter and the change
// event update in the same call so clients see the new count immediately.
func (s *Service) MarkAsRead(notificationID, userID uint) error {
	now := time.Now()
	res := s.db.Model(&models.Notification{}).
		Where("id = ? AND user_id = ? AND read_at IS NULL", notificationID, userID).
		Update("read_at", now)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		// Already read or not visible to this user.
		return nil
	}

	ctx := context.Background()
	if err := s.redis.Decr(ctx, unreadKey(userID)).Err(); err != nil {
		log.Warnf("[Notifier] unread decrement for user %d failed: %v", userID, err)
	}
	s.publishEvent(userID)
	return nil
}

// MarkAllRead marks every unread notification of a user as read.
func (s *Service) MarkAllRead(userID uint) error {
	now := time.Now()
	if err := s.db.Model(&models.Notification{}).
		Where("user_id = ? AND read_at IS NULL", userID).
		Update("read_at", now).Error; err != nil {
		return err
	}

	ctx := context.Background()
	if err := s.redis.Set(ctx, unreadKey(userID), 0, unreadTTL).Err(); err != nil {
		log.Warnf("[Notifier] unread reset for user %d failed: %v", userID, err)
	}
	s.publishEvent(userID)
	return nil
}

// List returns a page of notifications for the user, newest first.
func (s *Service) List(userID uint, offset, limit int) ([]models.Notification, error) {
	var notifications []models.Notification
	err := s.db.Where("user_id = ?", userID).
		Order("created_at DESC").Offset(offset).Limit(limit).
		Find(&notifications).Error
	return notifications, err
}

func (s *Service) bumpUnread(userID uint) {
	ctx := context.Background()
	key := unreadKey(userID)
	// Only bump an existing counter; a missing key is repaired from the DB
	// on the next read anyway.
	if err := s.redis.Eval(ctx,
		`if redis.call("EXISTS", KEYS[1]) == 1 then return redis.call("INCR", KEYS[1]) end return 0`,
		[]string{key}).Err(); err != nil && err != redis.Nil {
		log.Warnf("[Notifier] unread increment for user %d failed: %v", userID, err)
	}
	s.publishEvent(userID)
}

func (s *Service) publishEvent(userID uint) {
	ctx := context.Background()
	if err := s.redis.Publish(ctx, EventChannel, strconv.FormatUint(uint64(userID), 10)).Err(); err != nil {
		log.Warnf("[Notifier] event publish for user %d failed: %v", userID, err)
	}
}

func (s *Service) enqueueDelivery(n *models.Notification) {
	if s.queue == nil {
		return
	}
	if err := s.queue.EnqueueNotificationDelivery(n.ID, n.UserID, n.Type, n.Title, n.Body); err != nil {
		log.Warnf("[Notifier] delivery enqueue for notification %d failed: %v", n.ID, err)
	}
}

func unreadKey(userID uint) string {
	return UnreadKeyPrefix + strconv.FormatUint(uint64(userID), 10)
}

// EligibleRegistrations filters active registrations down to those whose
// paid-until has not passed.
func EligibleRegistrations(registrations []models.ServiceRegistration, now time.Time) []models.ServiceRegistration {
	eligible := make([]models.ServiceRegistration, 0, len(registrations))
	for i := range registrations {
		if registrations[i].IsEligibleAt(now) {
			eligible = append(eligible, registrations[i])
		}
	}
	return eligible
}
