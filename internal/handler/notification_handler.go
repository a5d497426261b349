package handler

import (
	"errors"

	"github.com/asarDigimarketz/3i-smarthome-sub001/internal/middleware"
	"github.com/asarDigimarketz/3i-smarthome-sub001/internal/model"
	"github.com/asarDigimarketz/3i-smarthome-sub001/internal/repository"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NotificationHandler serves the per-recipient notification feed. Every route
// is scoped to the authenticated user; there is no way to address another
// recipient's records.
type NotificationHandler struct {
	notificationRepo repository.NotificationRepository
	tokenRepo        repository.DeviceTokenRepository
}

func NewNotificationHandler(notificationRepo repository.NotificationRepository, tokenRepo repository.DeviceTokenRepository) *NotificationHandler {
	return &NotificationHandler{notificationRepo: notificationRepo, tokenRepo: tokenRepo}
}

// GetNotifications returns a page of the caller's notifications
// GET /api/v1/notifications?type=task_completed&is_read=false&priority=high&page=1&limit=20
func (h *NotificationHandler) GetNotifications(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	filters := repository.NotificationFilters{
		Type:     c.Query("type"),
		Priority: c.Query("priority"),
		Page:     c.QueryInt("page", 1),
		Limit:    c.QueryInt("limit", 20),
	}
	if raw := c.Query("is_read"); raw != "" {
		isRead := raw == "true" || raw == "1"
		filters.IsRead = &isRead
	}

	page, err := h.notificationRepo.List(user.ID, filters)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch notifications"})
	}
	return c.JSON(page)
}

// MarkRead flips one of the caller's notifications to read
// PATCH /api/v1/notifications/:id/read
func (h *NotificationHandler) MarkRead(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid notification ID"})
	}

	if err := h.notificationRepo.MarkRead(id, user.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "Notification not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to mark notification read"})
	}
	return c.JSON(fiber.Map{"message": "Notification marked read"})
}

// MarkAllRead flips every unread notification of the caller
// PATCH /api/v1/notifications/read-all
func (h *NotificationHandler) MarkAllRead(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	updated, err := h.notificationRepo.MarkAllRead(user.ID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to mark notifications read"})
	}
	return c.JSON(fiber.Map{"message": "All notifications marked read", "updated": updated})
}

// DeleteNotification removes one of the caller's notifications
// DELETE /api/v1/notifications/:id
func (h *NotificationHandler) DeleteNotification(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid notification ID"})
	}

	if err := h.notificationRepo.Delete(id, user.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "Notification not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to delete notification"})
	}
	return c.JSON(fiber.Map{"message": "Notification deleted"})
}

// RegisterTokenRequest represents a device token registration body
type RegisterTokenRequest struct {
	Token      string `json:"token"`
	DeviceType string `json:"device_type"`
	Platform   string `json:"platform"`
}

// RegisterToken upserts a push token for the caller. Re-registering an
// existing token string reassigns it to the caller.
// POST /api/v1/notifications/tokens
func (h *NotificationHandler) RegisterToken(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	var req RegisterTokenRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if req.Token == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Token is required"})
	}

	record, err := h.tokenRepo.Register(&model.DeviceToken{
		Token:      req.Token,
		UserID:     &user.ID,
		DeviceType: req.DeviceType,
		Platform:   req.Platform,
	})
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to register device token"})
	}
	return c.Status(201).JSON(record)
}

// UnregisterToken removes a push token, typically on logout
// DELETE /api/v1/notifications/tokens
func (h *NotificationHandler) UnregisterToken(c *fiber.Ctx) error {
	var req RegisterTokenRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if req.Token == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Token is required"})
	}

	if err := h.tokenRepo.DeleteByToken(req.Token); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to remove device token"})
	}
	return c.JSON(fiber.Map{"message": "Device token removed"})
}
