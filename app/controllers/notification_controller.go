package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ManuelReschke/FacilityFox/internal/pkg/usercontext"
)

// HandleListNotifications returns the current user's notifications, newest first.
func HandleListNotifications(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)

	offset, limit := parsePagination(c)
	notifications, err := GetNotifierService().List(userCtx.UserID, offset, limit)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load notifications")
	}

	unread, err := GetNotifierService().UnreadCount(userCtx.UserID)
	if err != nil {
		unread = 0
	}

	return c.JSON(fiber.Map{
		"notifications": notifications,
		"unread":        unread,
	})
}

// HandleUnreadCount returns only the unread counter, cheap enough for polling.
func HandleUnreadCount(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)

	unread, err := GetNotifierService().UnreadCount(userCtx.UserID)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load unread count")
	}

	return c.JSON(fiber.Map{"unread": unread})
}

// HandleMarkNotificationRead marks a single notification as read.
func HandleMarkNotificationRead(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	notificationID := parseIDParam(c, "id")

	if err := GetNotifierService().MarkAsRead(notificationID, userCtx.UserID); err != nil {
		return mapWorkflowError(c, err)
	}

	return c.JSON(fiber.Map{"message": "marked as read"})
}

// HandleMarkAllNotificationsRead marks every notification of the user as read.
func HandleMarkAllNotificationsRead(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)

	if err := GetNotifierService().MarkAllRead(userCtx.UserID); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to mark notifications")
	}

	return c.JSON(fiber.Map{"message": "all marked as read"})
}
