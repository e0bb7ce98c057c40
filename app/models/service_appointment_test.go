package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransitionAppointmentStatus(t *testing.T) {
	tests := []struct {
		from string
		to   string
		want bool
	}{
		{AppointmentStatusProposed, AppointmentStatusConfirmed, true},
		{AppointmentStatusProposed, AppointmentStatusRejected, true},
		{AppointmentStatusProposed, AppointmentStatusCompleted, false},
		{AppointmentStatusConfirmed, AppointmentStatusCompleted, true},
		{AppointmentStatusConfirmed, AppointmentStatusRejected, false},
		{AppointmentStatusRejected, AppointmentStatusConfirmed, false},
		{AppointmentStatusCompleted, AppointmentStatusProposed, false},
	}

	for _, tt := range tests {
		if got := CanTransitionAppointmentStatus(tt.from, tt.to); got != tt.want {
			t.Fatalf("CanTransitionAppointmentStatus(%q, %q) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestServiceAppointmentValidate(t *testing.T) {
	appt := &ServiceAppointment{
		IssueID:      1,
		ProviderID:   1,
		ProposedDate: "2026-09-15",
		ProposedTime: "14:30",
		ProposedBy:   1,
		Status:       AppointmentStatusProposed,
	}
	assert.NoError(t, appt.Validate())

	appt.ProposedDate = "15.09.2026"
	assert.Error(t, appt.Validate())

	appt.ProposedDate = "2026-09-15"
	appt.ProposedTime = "2pm"
	assert.Error(t, appt.Validate())
}
