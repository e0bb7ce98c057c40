package appointments

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/ManuelReschke/FacilityFox/app/models"
)

func TestCheckTransitionScopesToIssue(t *testing.T) {
	appointment := &models.ServiceAppointment{
		IssueID: 7,
		Status:  models.AppointmentStatusProposed,
	}

	// An appointment belonging to another issue must read as not found,
	// no matter how valid the status change would be on its own.
	err := checkTransition(appointment, 12, models.AppointmentStatusRejected)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	confirmed := &models.ServiceAppointment{
		IssueID: 7,
		Status:  models.AppointmentStatusConfirmed,
	}
	err = checkTransition(confirmed, 12, models.AppointmentStatusCompleted)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	assert.NoError(t, checkTransition(appointment, 7, models.AppointmentStatusRejected))
}

func TestCheckTransitionStatus(t *testing.T) {
	tests := []struct {
		name    string
		from    string
		to      string
		wantErr error
	}{
		{"reject proposed", models.AppointmentStatusProposed, models.AppointmentStatusRejected, nil},
		{"confirm proposed", models.AppointmentStatusProposed, models.AppointmentStatusConfirmed, nil},
		{"complete confirmed", models.AppointmentStatusConfirmed, models.AppointmentStatusCompleted, nil},
		{"complete proposed", models.AppointmentStatusProposed, models.AppointmentStatusCompleted, ErrInvalidTransition},
		{"reject confirmed", models.AppointmentStatusConfirmed, models.AppointmentStatusRejected, ErrInvalidTransition},
		{"revive rejected", models.AppointmentStatusRejected, models.AppointmentStatusConfirmed, ErrInvalidTransition},
		{"reopen completed", models.AppointmentStatusCompleted, models.AppointmentStatusProposed, ErrInvalidTransition},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			appointment := &models.ServiceAppointment{IssueID: 3, Status: tt.from}
			err := checkTransition(appointment, 3, tt.to)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}
