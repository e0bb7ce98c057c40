package appointments

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ManuelReschke/FacilityFox/app/models"
	"github.com/ManuelReschke/FacilityFox/internal/pkg/authz"
	"github.com/ManuelReschke/FacilityFox/internal/pkg/workflow"
)

var (
	ErrNotAuthorized      = errors.New("actor is not authorized to confirm this appointment")
	ErrInvalidTransition  = errors.New("appointment status transition not allowed")
	ErrProviderNotOnIssue = errors.New("provider is not assigned to this issue")
)

// Service implements the appointment negotiation between the assigned
// provider and the confirming party. Confirmation runs as a privileged
// routine: the cooperation user may not even have row access to the
// appointment, so eligibility is validated here, inside the operation.
type Service struct {
	db       *gorm.DB
	notifier workflow.Notifier
}

// NewService creates an appointment service.
func NewService(db *gorm.DB, notifier workflow.Notifier) *Service {
	return &Service{db: db, notifier: notifier}
}

// Propose inserts a new candidate slot. Multiple proposals may coexist per
// issue; nothing is rejected implicitly here.
func (s *Service) Propose(issueID, providerID uint, date, timeOfDay, notes string, actorID uint) (*models.ServiceAppointment, error) {
	var issue models.Issue
	if err := s.db.First(&issue, issueID).Error; err != nil {
		return nil, err
	}
	if issue.AssignedProviderID == nil || *issue.AssignedProviderID != providerID {
		return nil, ErrProviderNotOnIssue
	}

	appointment := models.ServiceAppointment{
		IssueID:      issueID,
		ProviderID:   providerID,
		ProposedDate: date,
		ProposedTime: timeOfDay,
		ProposedBy:   actorID,
		Status:       models.AppointmentStatusProposed,
		Notes:        notes,
	}
	if err := appointment.Validate(); err != nil {
		return nil, err
	}
	if err := s.db.Create(&appointment).Error; err != nil {
		return nil, err
	}

	s.notifyConfirmingParty(&issue, &appointment)

	return &appointment, nil
}

// Confirm locks in one appointment. Authorization: the cooperation user when
// the issue requires cooperation, otherwise a facility admin or the owner.
// Confirming auto-rejects every other proposed appointment for the issue and
// records the winner on the issue.
func (s *Service) Confirm(appointmentID, issueID, actorID uint) (*models.ServiceAppointment, error) {
	var appointment models.ServiceAppointment

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&appointment, appointmentID).Error; err != nil {
			return err
		}
		if appointment.IssueID != issueID {
			return gorm.ErrRecordNotFound
		}

		var issue models.Issue
		if err := tx.First(&issue, issueID).Error; err != nil {
			return err
		}

		role, err := authz.ResolveRole(tx, issue.FacilityID, actorID)
		if err != nil {
			return err
		}
		if !authz.CanConfirmAppointment(&issue, role, actorID) {
			return ErrNotAuthorized
		}

		if !models.CanTransitionAppointmentStatus(appointment.Status, models.AppointmentStatusConfirmed) {
			return ErrInvalidTransition
		}

		now := time.Now()
		if err := tx.Model(&appointment).Updates(map[string]interface{}{
			"status":       models.AppointmentStatusConfirmed,
			"confirmed_by": actorID,
			"confirmed_at": now,
		}).Error; err != nil {
			return err
		}

		// Exactly one confirmed appointment per issue: sibling proposals lose.
		if err := tx.Model(&models.ServiceAppointment{}).
			Where("issue_id = ? AND id <> ? AND status = ?",
				issueID, appointment.ID, models.AppointmentStatusProposed).
			Update("status", models.AppointmentStatusRejected).Error; err != nil {
			return err
		}

		return tx.Model(&issue).Update("selected_appointment_id", appointment.ID).Error
	})
	if err != nil {
		return nil, err
	}

	s.notifyProvider(&appointment, models.NotificationTypeAppointmentConfirmed,
		"Appointment confirmed",
		fmt.Sprintf("Appointment on %s %s was confirmed", appointment.ProposedDate, appointment.ProposedTime))

	return &appointment, nil
}

// Reject marks a proposed appointment as rejected. Terminal.
func (s *Service) Reject(appointmentID, issueID uint) (*models.ServiceAppointment, error) {
	return s.transition(appointmentID, issueID, models.AppointmentStatusRejected)
}

// Complete marks a confirmed appointment as completed. The issue status is
// not touched; resolving the issue is a separate decision by the caller.
func (s *Service) Complete(appointmentID, issueID uint) (*models.ServiceAppointment, error) {
	return s.transition(appointmentID, issueID, models.AppointmentStatusCompleted)
}

func (s *Service) transition(appointmentID, issueID uint, to string) (*models.ServiceAppointment, error) {
	var appointment models.ServiceAppointment
	if err := s.db.First(&appointment, appointmentID).Error; err != nil {
		return nil, err
	}
	if err := checkTransition(&appointment, issueID, to); err != nil {
		return nil, err
	}
	if err := s.db.Model(&appointment).Update("status", to).Error; err != nil {
		return nil, err
	}
	return &appointment, nil
}

// checkTransition guards a status change. The caller's authorization was
// resolved against issueID; an appointment from another issue is invisible
// to it and reads as not found.
func checkTransition(appointment *models.ServiceAppointment, issueID uint, to string) error {
	if appointment.IssueID != issueID {
		return gorm.ErrRecordNotFound
	}
	if !models.CanTransitionAppointmentStatus(appointment.Status, to) {
		return ErrInvalidTransition
	}
	return nil
}

// notifyConfirmingParty informs whoever has to act on a new proposal.
func (s *Service) notifyConfirmingParty(issue *models.Issue, appointment *models.ServiceAppointment) {
	data := map[string]interface{}{
		"issue_id":       issue.ID,
		"appointment_id": appointment.ID,
	}
	body := fmt.Sprintf("New appointment proposal for %q: %s %s", issue.Title, appointment.ProposedDate, appointment.ProposedTime)

	if issue.RequiresCooperation && issue.CooperationUserID != nil {
		if err := s.notifier.NotifyUser(*issue.CooperationUserID, models.NotificationTypeAppointmentProposed,
			"Appointment proposed", body, data); err != nil {
			log.Errorf("[Appointments] notification to cooperation user failed: %v", err)
		}
		return
	}

	var facility models.Facility
	if err := s.db.First(&facility, issue.FacilityID).Error; err != nil {
		log.Errorf("[Appointments] facility lookup failed: %v", err)
		return
	}
	if err := s.notifier.NotifyUser(facility.OwnerID, models.NotificationTypeAppointmentProposed,
		"Appointment proposed", body, data); err != nil {
		log.Errorf("[Appointments] notification to facility owner failed: %v", err)
	}
}

func (s *Service) notifyProvider(appointment *models.ServiceAppointment, notifType, title, body string) {
	var provider models.ServiceProvider
	if err := s.db.First(&provider, appointment.ProviderID).Error; err != nil {
		log.Errorf("[Appointments] provider lookup failed: %v", err)
		return
	}
	if err := s.notifier.NotifyUser(provider.UserID, notifType, title, body, map[string]interface{}{
		"issue_id":       appointment.IssueID,
		"appointment_id": appointment.ID,
	}); err != nil {
		log.Errorf("[Appointments] notification to provider failed: %v", err)
	}
}
