package notifier

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ManuelReschke/FacilityFox/app/models"
)

func TestEligibleRegistrations(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	future := now.Add(24 * time.Hour)
	past := now.Add(-24 * time.Hour)

	regs := []models.ServiceRegistration{
		{ProviderID: 1, Status: models.RegistrationStatusActive},
		{ProviderID: 2, Status: models.RegistrationStatusActive, PaidUntil: &future},
		{ProviderID: 3, Status: models.RegistrationStatusActive, PaidUntil: &past},
		{ProviderID: 4, Status: models.RegistrationStatusPending},
		{ProviderID: 5, Status: models.RegistrationStatusExpired},
	}

	eligible := EligibleRegistrations(regs, now)

	assert.Len(t, eligible, 2)
	assert.Equal(t, uint(1), eligible[0].ProviderID)
	assert.Equal(t, uint(2), eligible[1].ProviderID)
}

func TestEligibleRegistrationsEmpty(t *testing.T) {
	assert.Empty(t, EligibleRegistrations(nil, time.Now()))
}
