package workflow

import "errors"

// Workflow invariant violations. Handlers map these to user-facing messages
// naming the violated rule, never a generic failure.
var (
	ErrNotAuthorized        = errors.New("actor is not authorized for this operation")
	ErrDuplicateApplication = errors.New("provider already applied to this request")
	ErrCapacityExceeded     = errors.New("maximum 3 applicants reached")
	ErrRequestClosed        = errors.New("service request is closed")
	ErrSelectionCancelled   = errors.New("provider selection was cancelled for this issue")
	ErrNoActiveSelection    = errors.New("issue has no active provider selection")
	ErrEmptyReason          = errors.New("cancellation reason must not be empty")
	ErrSubscriptionInactive = errors.New("facility subscription does not allow new service requests")
	ErrApplicationDecided   = errors.New("application is already selected or rejected")
	ErrOpenRequestLimit     = errors.New("too many open service requests on this issue")
)
