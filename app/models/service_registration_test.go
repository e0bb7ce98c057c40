package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestServiceRegistrationIsEligibleAt(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	future := now.Add(24 * time.Hour)
	past := now.Add(-24 * time.Hour)

	tests := []struct {
		name      string
		status    string
		paidUntil *time.Time
		want      bool
	}{
		{"active without paid-until", RegistrationStatusActive, nil, true},
		{"active paid into the future", RegistrationStatusActive, &future, true},
		{"active but paid-until passed", RegistrationStatusActive, &past, false},
		{"pending", RegistrationStatusPending, &future, false},
		{"expired", RegistrationStatusExpired, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := &ServiceRegistration{Status: tt.status, PaidUntil: tt.paidUntil}
			assert.Equal(t, tt.want, reg.IsEligibleAt(now))
		})
	}
}
