package entitlements

import (
	"time"

	"github.com/ManuelReschke/FacilityFox/app/models"
)

// Facility capabilities derived from the subscription state. Workflow
// operations consult these instead of checking subscription fields inline.

// CanOpenServiceRequests reports whether the facility may open new service
// requests. Paused and pending subscriptions keep read access but cannot
// start new provider workflows.
func CanOpenServiceRequests(f *models.Facility, now time.Time) bool {
	return f.HasActiveSubscription(now)
}

// CanInviteMembers reports whether new members may join the facility.
// A pending subscription still allows building up the member list.
func CanInviteMembers(f *models.Facility) bool {
	return f.SubscriptionStatus != models.SubscriptionStatusPaused
}

// MaxOpenRequestsPerIssue caps concurrently open service requests on one
// issue. One request per service is the intended shape; the cap is a
// safety net against runaway creation.
func MaxOpenRequestsPerIssue(f *models.Facility) int {
	return 10
}
