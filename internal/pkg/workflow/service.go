package workflow

import (
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ManuelReschke/FacilityFox/app/models"
	"github.com/ManuelReschke/FacilityFox/internal/pkg/authz"
	"github.com/ManuelReschke/FacilityFox/internal/pkg/entitlements"
)

// Notifier is the fan-out sink consumed on request creation. Failures are
// logged and never fail the triggering operation.
type Notifier interface {
	FanOutServiceRequest(request *models.ServiceRequest, issue *models.Issue, facility *models.Facility, service *models.Service) error
	NotifyUser(userID uint, notifType, title, body string, data map[string]interface{}) error
}

// Service implements the multi-party service-request workflow. Every
// multi-step effect runs inside a single transaction so concurrent clients
// never observe partial state.
type Service struct {
	db       *gorm.DB
	notifier Notifier
}

// NewService creates a workflow service.
func NewService(db *gorm.DB, notifier Notifier) *Service {
	return &Service{db: db, notifier: notifier}
}

// CreateRequest opens a service request on an issue and fans notifications
// out to all eligible providers. Fan-out failures do not fail the creation.
func (s *Service) CreateRequest(issueID, serviceID, actorID uint) (*models.ServiceRequest, error) {
	var issue models.Issue
	if err := s.db.Preload("Facility").First(&issue, issueID).Error; err != nil {
		return nil, err
	}

	ok, err := authz.IsAdminOrOwner(s.db, issue.FacilityID, actorID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotAuthorized
	}

	if issue.SelectionCancelled() {
		return nil, ErrSelectionCancelled
	}
	if !entitlements.CanOpenServiceRequests(&issue.Facility, time.Now()) {
		return nil, ErrSubscriptionInactive
	}

	var openCount int64
	if err := s.db.Model(&models.ServiceRequest{}).
		Where("issue_id = ? AND status = ?", issueID, models.RequestStatusOpen).
		Count(&openCount).Error; err != nil {
		return nil, err
	}
	if int(openCount) >= entitlements.MaxOpenRequestsPerIssue(&issue.Facility) {
		return nil, ErrOpenRequestLimit
	}

	var service models.Service
	if err := s.db.First(&service, serviceID).Error; err != nil {
		return nil, err
	}

	request := models.ServiceRequest{
		IssueID:   issueID,
		ServiceID: serviceID,
		Status:    models.RequestStatusOpen,
		CreatedBy: actorID,
	}
	if err := s.db.Create(&request).Error; err != nil {
		return nil, err
	}

	// Best-effort fan-out; the request already exists.
	if err := s.notifier.FanOutServiceRequest(&request, &issue, &issue.Facility, &service); err != nil {
		log.Errorf("[Workflow] fan-out for request %d failed: %v", request.ID, err)
	}

	return &request, nil
}

// Apply places a provider application on an open request. The duplicate
// check runs before the capacity check; both happen under a row lock on the
// request so two concurrent applications cannot both pass the count.
func (s *Service) Apply(requestID, providerID uint, message string) (*models.ServiceApplication, error) {
	var application models.ServiceApplication

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var request models.ServiceRequest
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&request, requestID).Error; err != nil {
			return err
		}
		if !request.IsOpen() {
			return ErrRequestClosed
		}

		var apps []models.ServiceApplication
		if err := tx.Where("request_id = ?", requestID).Find(&apps).Error; err != nil {
			return err
		}
		if models.HasActiveApplicationFrom(apps, providerID) {
			return ErrDuplicateApplication
		}
		if models.CountActiveApplications(apps) >= models.MaxActiveApplications {
			return ErrCapacityExceeded
		}

		application = models.ServiceApplication{
			RequestID:  requestID,
			ProviderID: providerID,
			Status:     models.ApplicationStatusPending,
			Message:    strings.TrimSpace(message),
		}
		if err := tx.Create(&application).Error; err != nil {
			return err
		}

		// An application message also lands on the issue thread, linked by ID
		// instead of a text marker.
		if application.Message != "" {
			var provider models.ServiceProvider
			if err := tx.First(&provider, providerID).Error; err != nil {
				return err
			}
			msg := models.IssueMessage{
				IssueID:              request.IssueID,
				UserID:               provider.UserID,
				Kind:                 models.MessageKindApplication,
				Content:              fmt.Sprintf("%s: %s", provider.CompanyName, application.Message),
				RelatedApplicationID: &application.ID,
			}
			if err := tx.Create(&msg).Error; err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &application, nil
}

// Select picks one application as the winner: the target becomes selected,
// every other pending application is rejected, the issue is assigned to the
// provider and moves to in_progress, and the request closes. All four steps
// commit or none do.
func (s *Service) Select(applicationID, actorID uint) (*models.ServiceApplication, error) {
	var application models.ServiceApplication
	var rejected []models.ServiceApplication

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&application, applicationID).Error; err != nil {
			return err
		}

		var request models.ServiceRequest
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&request, application.RequestID).Error; err != nil {
			return err
		}
		if !request.IsOpen() {
			return ErrRequestClosed
		}
		if application.Status != models.ApplicationStatusPending {
			return ErrApplicationDecided
		}

		var issue models.Issue
		if err := tx.First(&issue, request.IssueID).Error; err != nil {
			return err
		}

		ok, err := authz.IsAdminOrOwner(tx, issue.FacilityID, actorID)
		if err != nil {
			return err
		}
		if !ok {
			return ErrNotAuthorized
		}
		if issue.SelectionCancelled() {
			return ErrSelectionCancelled
		}

		if err := tx.Model(&application).Updates(map[string]interface{}{
			"status": models.ApplicationStatusSelected,
		}).Error; err != nil {
			return err
		}

		if err := tx.Where("request_id = ? AND id <> ? AND status = ?",
			request.ID, application.ID, models.ApplicationStatusPending).
			Find(&rejected).Error; err != nil {
			return err
		}
		if len(rejected) > 0 {
			if err := tx.Model(&models.ServiceApplication{}).
				Where("request_id = ? AND id <> ? AND status = ?",
					request.ID, application.ID, models.ApplicationStatusPending).
				Update("status", models.ApplicationStatusRejected).Error; err != nil {
				return err
			}
		}

		if err := tx.Model(&issue).Updates(map[string]interface{}{
			"assigned_provider_id": application.ProviderID,
			"status":               models.IssueStatusInProgress,
			"selection_state":      models.SelectionStateActive,
		}).Error; err != nil {
			return err
		}

		return tx.Model(&request).Update("status", models.RequestStatusClosed).Error
	})
	if err != nil {
		return nil, err
	}

	s.notifyApplicationOutcome(&application, rejected)

	return &application, nil
}

// Reject marks a single pending application as rejected. No cascading effects.
func (s *Service) Reject(applicationID uint) (*models.ServiceApplication, error) {
	var application models.ServiceApplication
	if err := s.db.First(&application, applicationID).Error; err != nil {
		return nil, err
	}
	if application.Status != models.ApplicationStatusPending {
		return nil, ErrApplicationDecided
	}
	if err := s.db.Model(&application).Update("status", models.ApplicationStatusRejected).Error; err != nil {
		return nil, err
	}
	return &application, nil
}

// CloseRequest closes a request without a selection, e.g. when abandoned.
func (s *Service) CloseRequest(requestID uint) (*models.ServiceRequest, error) {
	var request models.ServiceRequest
	if err := s.db.First(&request, requestID).Error; err != nil {
		return nil, err
	}
	if !request.IsOpen() {
		return nil, ErrRequestClosed
	}
	if err := s.db.Model(&request).Update("status", models.RequestStatusClosed).Error; err != nil {
		return nil, err
	}
	return &request, nil
}

// CancelSelection cancels the provider selection on an issue: an audit
// message with the reason lands on the thread, every open request closes,
// the assignment and selected appointment clear, and the issue's selection
// state turns cancelled for good.
func (s *Service) CancelSelection(issueID uint, reason string, actorID uint) (*models.Issue, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, ErrEmptyReason
	}

	var issue models.Issue
	var deselectedProviderID *uint

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&issue, issueID).Error; err != nil {
			return err
		}

		ok, err := authz.IsAdminOrOwner(tx, issue.FacilityID, actorID)
		if err != nil {
			return err
		}
		if !ok {
			return ErrNotAuthorized
		}
		if issue.SelectionCancelled() {
			return ErrSelectionCancelled
		}
		if issue.SelectionState != models.SelectionStateActive && issue.AssignedProviderID == nil {
			return ErrNoActiveSelection
		}
		// Updates below write nil back into the struct field; keep the
		// provider for the post-commit notification.
		deselectedProviderID = deselectedProvider(&issue)

		// The message is the durable audit trail for the cancellation.
		msg := models.IssueMessage{
			IssueID: issueID,
			UserID:  actorID,
			Kind:    models.MessageKindCancellation,
			Content: fmt.Sprintf("Provider selection cancelled: %s", reason),
		}
		if err := tx.Create(&msg).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.ServiceRequest{}).
			Where("issue_id = ? AND status = ?", issueID, models.RequestStatusOpen).
			Update("status", models.RequestStatusClosed).Error; err != nil {
			return err
		}

		return tx.Model(&issue).Updates(map[string]interface{}{
			"assigned_provider_id":    nil,
			"selected_appointment_id": nil,
			"status":                  models.IssueStatusOpen,
			"selection_state":         models.SelectionStateCancelled,
		}).Error
	})
	if err != nil {
		return nil, err
	}

	if deselectedProviderID != nil {
		s.notifyProviderUser(*deselectedProviderID, models.NotificationTypeSelectionCancelled,
			"Selection cancelled", fmt.Sprintf("Your assignment for issue %q was cancelled", issue.Title),
			map[string]interface{}{"issue_id": issue.ID})
	}

	// Return the post-cancellation state.
	if err := s.db.First(&issue, issueID).Error; err != nil {
		return nil, err
	}
	return &issue, nil
}

// notifyApplicationOutcome informs the winner and the losers after a
// selection. Best effort only.
func (s *Service) notifyApplicationOutcome(selected *models.ServiceApplication, rejected []models.ServiceApplication) {
	s.notifyProviderUser(selected.ProviderID, models.NotificationTypeApplicationSelected,
		"Application selected", "Your application was selected",
		map[string]interface{}{"request_id": selected.RequestID, "application_id": selected.ID})

	for i := range rejected {
		s.notifyProviderUser(rejected[i].ProviderID, models.NotificationTypeApplicationRejected,
			"Application rejected", "Another provider was selected",
			map[string]interface{}{"request_id": rejected[i].RequestID, "application_id": rejected[i].ID})
	}
}

// deselectedProvider copies the assigned provider off the issue. The copy
// must be taken by value: the cancellation update writes nil back into the
// struct field before the notification runs.
func deselectedProvider(issue *models.Issue) *uint {
	if issue.AssignedProviderID == nil {
		return nil
	}
	id := *issue.AssignedProviderID
	return &id
}

func (s *Service) notifyProviderUser(providerID uint, notifType, title, body string, data map[string]interface{}) {
	var provider models.ServiceProvider
	if err := s.db.First(&provider, providerID).Error; err != nil {
		log.Errorf("[Workflow] provider %d lookup for notification failed: %v", providerID, err)
		return
	}
	if err := s.notifier.NotifyUser(provider.UserID, notifType, title, body, data); err != nil {
		log.Errorf("[Workflow] notification to user %d failed: %v", provider.UserID, err)
	}
}
