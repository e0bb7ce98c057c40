package jobqueue

import (
	"sync"

	"github.com/gofiber/fiber/v2/log"
)

// Manager manages the global delivery queue
type Manager struct {
	queue   *Queue
	mu      sync.Mutex
	running bool
}

var (
	globalManager *Manager
	managerOnce   sync.Once
)

// GetManager returns the global job queue manager (singleton)
func GetManager() *Manager {
	managerOnce.Do(func() {
		globalManager = &Manager{
			queue: NewQueue(3),
		}
	})
	return globalManager
}

// GetQueue returns the managed job queue
func (m *Manager) GetQueue() *Queue {
	return m.queue
}

// Start starts the delivery workers
func (m *Manager) Start() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.running {
		return
	}
	m.running = true

	log.Info("[JobQueue Manager] Starting delivery queue")
	m.queue.Start()
}

// Stop stops the delivery workers
func (m *Manager) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.running {
		return
	}
	m.running = false

	m.queue.Stop()
	log.Info("[JobQueue Manager] Stopped")
}

// EnqueueNotificationDelivery queues push and mail delivery for a stored
// notification. The notification row already exists; delivery is best
// effort.
func (m *Manager) EnqueueNotificationDelivery(notificationID, userID uint, notifType, title, body string) error {
	payload := NotificationDeliveryPayload{
		NotificationID: notificationID,
		UserID:         userID,
		NotifType:      notifType,
		Title:          title,
		Body:           body,
	}

	if _, err := m.queue.EnqueueJob(JobTypeNotificationPush, payload.ToMap()); err != nil {
		return err
	}
	_, err := m.queue.EnqueueJob(JobTypeNotificationMail, payload.ToMap())
	return err
}

// EnqueueInviteMail queues the invite mail for a facility invite.
func (m *Manager) EnqueueInviteMail(email, facilityName, code string) error {
	payload := InviteMailPayload{Email: email, FacilityName: facilityName, Code: code}
	_, err := m.queue.EnqueueJob(JobTypeInviteMail, payload.ToMap())
	return err
}
