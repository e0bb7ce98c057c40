package controllers

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/ManuelReschke/FacilityFox/internal/pkg/appointments"
	"github.com/ManuelReschke/FacilityFox/internal/pkg/workflow"
)

func TestFormatTimePtr(t *testing.T) {
	assert.Nil(t, formatTimePtr(nil))

	now := time.Date(2026, 5, 1, 12, 34, 56, 0, time.Local)
	formatted := formatTimePtr(&now)
	assert.IsType(t, "", formatted)

	expected := now.UTC().Format(time.RFC3339)
	assert.Equal(t, expected, formatted)
}

func TestMapWorkflowError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"not found", gorm.ErrRecordNotFound, fiber.StatusNotFound},
		{"not authorized", workflow.ErrNotAuthorized, fiber.StatusForbidden},
		{"duplicate application", workflow.ErrDuplicateApplication, fiber.StatusConflict},
		{"capacity exceeded", workflow.ErrCapacityExceeded, fiber.StatusConflict},
		{"request closed", workflow.ErrRequestClosed, fiber.StatusConflict},
		{"open request limit", workflow.ErrOpenRequestLimit, fiber.StatusConflict},
		{"selection cancelled", workflow.ErrSelectionCancelled, fiber.StatusConflict},
		{"empty reason", workflow.ErrEmptyReason, fiber.StatusUnprocessableEntity},
		{"subscription inactive", workflow.ErrSubscriptionInactive, fiber.StatusPaymentRequired},
		{"invalid transition", appointments.ErrInvalidTransition, fiber.StatusConflict},
		{"provider not on issue", appointments.ErrProviderNotOnIssue, fiber.StatusForbidden},
		{"unknown", assert.AnError, fiber.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/", func(c *fiber.Ctx) error {
				return mapWorkflowError(c, tt.err)
			})

			resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
		})
	}
}

func TestMapWorkflowErrorCapacityMessage(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		return mapWorkflowError(c, workflow.ErrCapacityExceeded)
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var payload map[string]string
	require.NoError(t, json.Unmarshal(body, &payload))
	assert.Equal(t, "capacity_exceeded", payload["error"])
	assert.Equal(t, "Maximum 3 applicants reached", payload["message"])
}
