package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransitionIssueStatus(t *testing.T) {
	tests := []struct {
		from string
		to   string
		want bool
	}{
		{IssueStatusOpen, IssueStatusInProgress, true},
		{IssueStatusOpen, IssueStatusClosed, true},
		{IssueStatusOpen, IssueStatusResolved, false},
		{IssueStatusInProgress, IssueStatusResolved, true},
		{IssueStatusInProgress, IssueStatusOpen, true},
		{IssueStatusInProgress, IssueStatusClosed, false},
		{IssueStatusResolved, IssueStatusClosed, true},
		{IssueStatusResolved, IssueStatusOpen, true},
		{IssueStatusResolved, IssueStatusInProgress, false},
		{IssueStatusClosed, IssueStatusOpen, true},
		{IssueStatusClosed, IssueStatusInProgress, false},
		{IssueStatusOpen, IssueStatusOpen, false},
		{"bogus", IssueStatusOpen, false},
	}

	for _, tt := range tests {
		if got := CanTransitionIssueStatus(tt.from, tt.to); got != tt.want {
			t.Fatalf("CanTransitionIssueStatus(%q, %q) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestNormalizePriority(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"low", IssuePriorityIdea},
		{"medium", IssuePriorityNormal},
		{"idea", IssuePriorityIdea},
		{"normal", IssuePriorityNormal},
		{"high", IssuePriorityHigh},
		{"critical", IssuePriorityCritical},
		{"urgent", IssuePriorityUrgent},
		{"", IssuePriorityNormal},
		{"whatever", IssuePriorityNormal},
	}

	for _, tt := range tests {
		if got := NormalizePriority(tt.in); got != tt.want {
			t.Fatalf("NormalizePriority(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestIssueSelectionCancelled(t *testing.T) {
	issue := &Issue{SelectionState: SelectionStateNone}
	assert.False(t, issue.SelectionCancelled())

	issue.SelectionState = SelectionStateActive
	assert.False(t, issue.SelectionCancelled())

	issue.SelectionState = SelectionStateCancelled
	assert.True(t, issue.SelectionCancelled())
}

func TestIssueValidate(t *testing.T) {
	issue := &Issue{
		FacilityID: 1,
		Title:      "Leaking pipe in basement",
		Status:     IssueStatusOpen,
		Priority:   IssuePriorityHigh,
		CreatedBy:  1,
	}
	issue.SelectionState = SelectionStateNone
	assert.NoError(t, issue.Validate())

	issue.Title = "ab"
	assert.Error(t, issue.Validate())

	issue.Title = "Leaking pipe in basement"
	issue.Priority = "low"
	assert.Error(t, issue.Validate())
}
