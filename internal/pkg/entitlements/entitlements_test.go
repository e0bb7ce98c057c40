package entitlements

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ManuelReschke/FacilityFox/app/models"
)

func TestCanOpenServiceRequests(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)

	active := &models.Facility{SubscriptionStatus: models.SubscriptionStatusActive}
	assert.True(t, CanOpenServiceRequests(active, now))

	lapsed := &models.Facility{SubscriptionStatus: models.SubscriptionStatusActive, PaidUntil: &past}
	assert.False(t, CanOpenServiceRequests(lapsed, now))

	pending := &models.Facility{SubscriptionStatus: models.SubscriptionStatusPending}
	assert.False(t, CanOpenServiceRequests(pending, now))

	paused := &models.Facility{SubscriptionStatus: models.SubscriptionStatusPaused}
	assert.False(t, CanOpenServiceRequests(paused, now))
}

func TestCanInviteMembers(t *testing.T) {
	assert.True(t, CanInviteMembers(&models.Facility{SubscriptionStatus: models.SubscriptionStatusActive}))
	assert.True(t, CanInviteMembers(&models.Facility{SubscriptionStatus: models.SubscriptionStatusPending}))
	assert.False(t, CanInviteMembers(&models.Facility{SubscriptionStatus: models.SubscriptionStatusPaused}))
}

func TestMaxOpenRequestsPerIssue(t *testing.T) {
	assert.Greater(t, MaxOpenRequestsPerIssue(&models.Facility{}), 0)
}
