package jobqueue

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotificationDeliveryPayloadRoundTrip(t *testing.T) {
	p := NotificationDeliveryPayload{
		NotificationID: 12,
		UserID:         7,
		NotifType:      "service_request_created",
		Title:          "New service request",
		Body:           "Plumbing requested for Hauptstrasse 12",
	}

	got, err := NotificationDeliveryPayloadFromMap(p.ToMap())
	require.NoError(t, err)
	assert.Equal(t, p, *got)
}

func TestInviteMailPayloadRoundTrip(t *testing.T) {
	p := InviteMailPayload{
		Email:        "member@example.com",
		FacilityName: "Hauptstrasse 12",
		Code:         "a1B2c3D4e5",
	}

	got, err := InviteMailPayloadFromMap(p.ToMap())
	require.NoError(t, err)
	assert.Equal(t, p, *got)
}

func TestRedisKeyConstants(t *testing.T) {
	assert.Equal(t, "job:", JobKeyPrefix)
	assert.NotEqual(t, JobQueueKey, JobProcessingKey)
}
