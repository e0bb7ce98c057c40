package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFacilityInviteIsRedeemable(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	invite := &FacilityInvite{ExpiresAt: now.Add(InviteValidity)}
	assert.True(t, invite.IsRedeemable(now))

	expired := &FacilityInvite{ExpiresAt: now.Add(-time.Minute)}
	assert.False(t, expired.IsRedeemable(now))

	usedAt := now.Add(-time.Hour)
	used := &FacilityInvite{ExpiresAt: now.Add(time.Hour), UsedAt: &usedAt}
	assert.False(t, used.IsRedeemable(now), "a redeemed invite must stay single-use")

	// expiry boundary is exclusive
	boundary := &FacilityInvite{ExpiresAt: now}
	assert.False(t, boundary.IsRedeemable(now))
}
