package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestServiceApplicationIsActive(t *testing.T) {
	assert.True(t, (&ServiceApplication{Status: ApplicationStatusPending}).IsActive())
	assert.True(t, (&ServiceApplication{Status: ApplicationStatusSelected}).IsActive())
	assert.False(t, (&ServiceApplication{Status: ApplicationStatusRejected}).IsActive())
}

func TestCountActiveApplications(t *testing.T) {
	apps := []ServiceApplication{
		{ProviderID: 1, Status: ApplicationStatusPending},
		{ProviderID: 2, Status: ApplicationStatusRejected},
		{ProviderID: 3, Status: ApplicationStatusSelected},
	}

	assert.Equal(t, 2, CountActiveApplications(apps))
	assert.Equal(t, 0, CountActiveApplications(nil))
}

func TestCountActiveApplicationsAgainstCap(t *testing.T) {
	apps := []ServiceApplication{
		{ProviderID: 1, Status: ApplicationStatusPending},
		{ProviderID: 2, Status: ApplicationStatusPending},
		{ProviderID: 3, Status: ApplicationStatusPending},
	}

	assert.Equal(t, MaxActiveApplications, CountActiveApplications(apps))

	// a rejected slot frees capacity
	apps[1].Status = ApplicationStatusRejected
	assert.Less(t, CountActiveApplications(apps), MaxActiveApplications)
}

func TestHasActiveApplicationFrom(t *testing.T) {
	apps := []ServiceApplication{
		{ProviderID: 1, Status: ApplicationStatusRejected},
		{ProviderID: 2, Status: ApplicationStatusPending},
	}

	assert.True(t, HasActiveApplicationFrom(apps, 2))
	assert.False(t, HasActiveApplicationFrom(apps, 1), "rejected application must not block a re-apply check")
	assert.False(t, HasActiveApplicationFrom(apps, 99))
}
