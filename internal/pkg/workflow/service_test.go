package workflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ManuelReschke/FacilityFox/app/models"
)

func TestDeselectedProviderSurvivesFieldReset(t *testing.T) {
	providerID := uint(9)
	issue := &models.Issue{
		Status:             models.IssueStatusInProgress,
		SelectionState:     models.SelectionStateActive,
		AssignedProviderID: &providerID,
	}

	captured := deselectedProvider(issue)
	require.NotNil(t, captured)

	// The cancellation update clears the field on the loaded struct; the
	// captured copy is what the notification must be addressed to.
	issue.AssignedProviderID = nil
	assert.Equal(t, uint(9), *captured)
}

func TestDeselectedProviderNilWithoutAssignment(t *testing.T) {
	issue := &models.Issue{
		Status:         models.IssueStatusOpen,
		SelectionState: models.SelectionStateNone,
	}
	assert.Nil(t, deselectedProvider(issue))
}
