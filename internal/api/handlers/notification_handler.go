package handlers

import (
	"context"

	"taskflow_realtime/internal/notification/domain"
	"taskflow_realtime/pkg/middlewares"

	"github.com/gofiber/fiber/v2"
)

// NotificationService notification gate and settings use cases
type NotificationService interface {
	Create(ctx context.Context, req domain.CreateRequest) (*domain.CreateResult, error)
	Settings(ctx context.Context, userID string) (domain.Settings, error)
	UpdateSettings(ctx context.Context, userID string, patch domain.SettingsPatch) (domain.Settings, error)
	SendEmail(ctx context.Context, req domain.EmailRequest) (*domain.EmailResult, error)
}

// NotificationHandler notification REST endpoints
type NotificationHandler struct {
	notifications NotificationService
}

// NewNotificationHandler create NotificationHandler
func NewNotificationHandler(notifications NotificationService) *NotificationHandler {
	return &NotificationHandler{notifications: notifications}
}

// Create POST /api/notifications/create
func (h *NotificationHandler) Create(c *fiber.Ctx) error {
	var req domain.CreateRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}

	res, err := h.notifications.Create(c.UserContext(), req)
	if err != nil {
		return errorResponse(c, "create notification", err)
	}
	return c.JSON(fiber.Map{
		"success":      true,
		"message":      "Notification created successfully",
		"notification": res.Notification,
		"pushed":       res.Pushed,
		"emailed":      res.Emailed,
	})
}

// SendEmail POST /api/notifications/email
func (h *NotificationHandler) SendEmail(c *fiber.Ctx) error {
	var req domain.EmailRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}

	res, err := h.notifications.SendEmail(c.UserContext(), req)
	if err != nil {
		return errorResponse(c, "send email", err)
	}
	return c.JSON(fiber.Map{"success": true, "message": "Email sent successfully", "data": res})
}

// MySettings GET /api/notifications/settings
func (h *NotificationHandler) MySettings(c *fiber.Ctx) error {
	return h.settingsOf(c, middlewares.MemberID(c))
}

// UserSettings GET /api/notifications/settings/:userId
func (h *NotificationHandler) UserSettings(c *fiber.Ctx) error {
	return h.settingsOf(c, c.Params("userId"))
}

func (h *NotificationHandler) settingsOf(c *fiber.Ctx, userID string) error {
	settings, err := h.notifications.Settings(c.UserContext(), userID)
	if err != nil {
		return errorResponse(c, "fetch notification settings", err)
	}
	return c.JSON(fiber.Map{"settings": settings})
}

// UpdateSettings PUT /api/notifications/settings
func (h *NotificationHandler) UpdateSettings(c *fiber.Ctx) error {
	type request struct {
		Settings domain.SettingsPatch `json:"settings"`
	}
	var req request
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}

	settings, err := h.notifications.UpdateSettings(c.UserContext(), middlewares.MemberID(c), req.Settings)
	if err != nil {
		return errorResponse(c, "update notification settings", err)
	}
	return c.JSON(fiber.Map{
		"success":  true,
		"message":  "Notification settings updated successfully",
		"settings": settings,
	})
}
