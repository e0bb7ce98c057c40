package repository

import (
	"time"

	"github.com/ManuelReschke/FacilityFox/app/models"
	"gorm.io/gorm"
)

// UserRepository defines the interface for user-related database operations
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id uint) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	GetByActivationToken(token string) (*models.User, error)
	GetByAPIKeyHash(hash string) (*models.User, *models.UserSettings, error)
	Update(user *models.User) error
	Delete(id uint) error
	List(offset, limit int) ([]models.User, error)
	Count() (int64, error)
	Search(query string) ([]models.User, error)
}

// FacilityRepository defines the interface for facility-related database operations
type FacilityRepository interface {
	Create(facility *models.Facility) error
	GetByID(id uint) (*models.Facility, error)
	GetByOwner(ownerID uint) ([]models.Facility, error)
	GetForUser(userID uint) ([]models.Facility, error)
	Update(facility *models.Facility) error
	Delete(id uint) error
	List(offset, limit int) ([]models.Facility, error)
	Count() (int64, error)

	GetMembership(facilityID, userID uint) (*models.FacilityMembership, error)
	GetMembers(facilityID uint) ([]models.FacilityMembership, error)
	AddMember(membership *models.FacilityMembership) error
	UpdateMember(membership *models.FacilityMembership) error
	RemoveMember(facilityID, userID uint) error

	CreateInvite(invite *models.FacilityInvite) error
	GetInviteByCode(code string) (*models.FacilityInvite, error)
	GetInvites(facilityID uint) ([]models.FacilityInvite, error)
	UpdateInvite(invite *models.FacilityInvite) error
	DeleteInvite(id uint) error
}

// IssueRepository defines the interface for issue-related database operations
type IssueRepository interface {
	Create(issue *models.Issue) error
	GetByID(id uint) (*models.Issue, error)
	GetByFacility(facilityID uint, offset, limit int) ([]models.Issue, error)
	GetByFacilityAndStatus(facilityID uint, status string, offset, limit int) ([]models.Issue, error)
	GetAssignedToProvider(providerID uint, offset, limit int) ([]models.Issue, error)
	Update(issue *models.Issue) error
	Delete(id uint) error
	CountByFacility(facilityID uint) (int64, error)

	AddMessage(message *models.IssueMessage) error
	GetMessages(issueID uint) ([]models.IssueMessage, error)

	AddAttachment(attachment *models.IssueAttachment) error
	GetAttachments(issueID uint) ([]models.IssueAttachment, error)
	GetAttachmentByUUID(uuid string) (*models.IssueAttachment, error)
	DeleteAttachment(id uint) error
}

// ServiceRepository defines the interface for service catalog operations
type ServiceRepository interface {
	Create(service *models.Service) error
	GetByID(id uint) (*models.Service, error)
	GetAll() ([]models.Service, error)
	GetActive() ([]models.Service, error)
	Update(service *models.Service) error
	Delete(id uint) error
}

// ProviderRepository defines the interface for service provider operations
type ProviderRepository interface {
	Create(provider *models.ServiceProvider) error
	GetByID(id uint) (*models.ServiceProvider, error)
	GetByUserID(userID uint) (*models.ServiceProvider, error)
	Update(provider *models.ServiceProvider) error
	Delete(id uint) error
	List(offset, limit int) ([]models.ServiceProvider, error)
	Count() (int64, error)

	CreateRegistration(registration *models.ServiceRegistration) error
	GetRegistration(id uint) (*models.ServiceRegistration, error)
	GetRegistrations(providerID uint) ([]models.ServiceRegistration, error)
	GetRegistrationsByStatus(status string) ([]models.ServiceRegistration, error)
	GetActiveByService(serviceID uint) ([]models.ServiceRegistration, error)
	UpdateRegistration(registration *models.ServiceRegistration) error
}

// RequestRepository defines the interface for service request and application operations
type RequestRepository interface {
	Create(request *models.ServiceRequest) error
	GetByID(id uint) (*models.ServiceRequest, error)
	GetByIssue(issueID uint) ([]models.ServiceRequest, error)
	GetOpenByIssue(issueID uint) ([]models.ServiceRequest, error)
	GetOpenForProvider(providerID uint, offset, limit int) ([]models.ServiceRequest, error)
	Update(request *models.ServiceRequest) error
	CountOpenByIssue(issueID uint) (int64, error)

	GetApplication(id uint) (*models.ServiceApplication, error)
	GetApplications(requestID uint) ([]models.ServiceApplication, error)
	GetApplicationsByProvider(providerID uint, offset, limit int) ([]models.ServiceApplication, error)
}

// AppointmentRepository defines the interface for appointment operations
type AppointmentRepository interface {
	GetByID(id uint) (*models.ServiceAppointment, error)
	GetByIssue(issueID uint) ([]models.ServiceAppointment, error)
	GetByProvider(providerID uint, offset, limit int) ([]models.ServiceAppointment, error)
	GetUpcomingByProvider(providerID uint, from time.Time) ([]models.ServiceAppointment, error)
}

// NotificationRepository defines the interface for notification persistence
type NotificationRepository interface {
	GetByID(id uint) (*models.Notification, error)
	GetByUser(userID uint, offset, limit int) ([]models.Notification, error)
	CountUnread(userID uint) (int64, error)
	Delete(id uint) error
}

// QueueRepository defines the interface for cache/queue operations
type QueueRepository interface {
	GetAllKeys() ([]string, error)
	GetValue(key string) (string, error)
	GetTTL(key string) (time.Duration, error)
	DeleteKey(key string) (int64, error)
	GetListLength(key string) (int64, error)
	FindKeysByPatterns(patterns []string) ([]string, error)
	DeleteKeys(keys []string) (int64, error)
}

// Repositories struct holds all repository instances
type Repositories struct {
	User         UserRepository
	Facility     FacilityRepository
	Issue        IssueRepository
	Service      ServiceRepository
	Provider     ProviderRepository
	Request      RequestRepository
	Appointment  AppointmentRepository
	Notification NotificationRepository
	Queue        QueueRepository
}

// NewRepositories creates a new instance of all repositories
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		User:         NewUserRepository(db),
		Facility:     NewFacilityRepository(db),
		Issue:        NewIssueRepository(db),
		Service:      NewServiceRepository(db),
		Provider:     NewProviderRepository(db),
		Request:      NewRequestRepository(db),
		Appointment:  NewAppointmentRepository(db),
		Notification: NewNotificationRepository(db),
		Queue:        NewQueueRepository(),
	}
}
