package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFacilityHasActiveSubscription(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	future := now.Add(30 * 24 * time.Hour)
	past := now.Add(-time.Hour)

	f := &Facility{SubscriptionStatus: SubscriptionStatusActive}
	assert.True(t, f.HasActiveSubscription(now))

	f.PaidUntil = &future
	assert.True(t, f.HasActiveSubscription(now))

	f.PaidUntil = &past
	assert.False(t, f.HasActiveSubscription(now))

	f = &Facility{SubscriptionStatus: SubscriptionStatusPending, PaidUntil: &future}
	assert.False(t, f.HasActiveSubscription(now))

	f.SubscriptionStatus = SubscriptionStatusPaused
	assert.False(t, f.HasActiveSubscription(now))
}

func TestFacilityValidate(t *testing.T) {
	f := &Facility{
		Name:               "Hauptstrasse 12",
		OwnerID:            1,
		SubscriptionStatus: SubscriptionStatusPending,
	}
	assert.NoError(t, f.Validate())

	f.Name = "x"
	assert.Error(t, f.Validate())

	f.Name = "Hauptstrasse 12"
	f.SubscriptionStatus = "cancelled"
	assert.Error(t, f.Validate())
}
