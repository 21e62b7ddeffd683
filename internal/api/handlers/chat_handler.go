package handlers

import (
	"context"

	"taskflow_realtime/internal/chat/domain"
	"taskflow_realtime/pkg/middlewares"

	"github.com/gofiber/fiber/v2"
)

// MessageService chat message use cases
type MessageService interface {
	SendMessage(ctx context.Context, groupID, authorID, content string, attachment *domain.Attachment) (*domain.ChatMessage, error)
	EditMessage(ctx context.Context, msgID, actorID, content string) (*domain.ChatMessage, error)
	DeleteMessage(ctx context.Context, msgID, actorID string) error
	ToggleReaction(ctx context.Context, msgID, actorID, emoji string) ([]domain.Reaction, error)
	ListMessages(ctx context.Context, groupID, actorID string) ([]domain.ChatMessage, error)
}

// GroupService group level use cases
type GroupService interface {
	MarkRead(ctx context.Context, groupID, actorID, lastReadMessageID string) ([]domain.ReadReceipt, error)
	PinMessage(ctx context.Context, groupID, actorID, msgID string) error
	UnpinMessage(ctx context.Context, groupID, actorID string) error
}

// ChatHandler chat REST endpoints, every mutation fans out to the group room
type ChatHandler struct {
	messages MessageService
	groups   GroupService
}

// NewChatHandler create ChatHandler
func NewChatHandler(messages MessageService, groups GroupService) *ChatHandler {
	return &ChatHandler{messages: messages, groups: groups}
}

// ListMessages GET /api/chat/groups/:id/messages
func (h *ChatHandler) ListMessages(c *fiber.Ctx) error {
	msgs, err := h.messages.ListMessages(c.UserContext(), c.Params("id"), middlewares.MemberID(c))
	if err != nil {
		return errorResponse(c, "fetch messages", err)
	}
	return c.JSON(fiber.Map{"messages": msgs})
}

// SendMessage POST /api/chat/groups/:id/messages
func (h *ChatHandler) SendMessage(c *fiber.Ctx) error {
	type request struct {
		Content    string             `json:"content"`
		Attachment *domain.Attachment `json:"attachment"`
	}
	var req request
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}

	msg, err := h.messages.SendMessage(c.UserContext(), c.Params("id"), middlewares.MemberID(c), req.Content, req.Attachment)
	if err != nil {
		return errorResponse(c, "send message", err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": msg})
}

// EditMessage PATCH /api/chat/groups/:id/messages/:msgId
func (h *ChatHandler) EditMessage(c *fiber.Ctx) error {
	type request struct {
		Content string `json:"content"`
	}
	var req request
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}

	msg, err := h.messages.EditMessage(c.UserContext(), c.Params("msgId"), middlewares.MemberID(c), req.Content)
	if err != nil {
		return errorResponse(c, "edit message", err)
	}
	return c.JSON(fiber.Map{"message": msg})
}

// DeleteMessage DELETE /api/chat/groups/:id/messages/:msgId
func (h *ChatHandler) DeleteMessage(c *fiber.Ctx) error {
	if err := h.messages.DeleteMessage(c.UserContext(), c.Params("msgId"), middlewares.MemberID(c)); err != nil {
		return errorResponse(c, "delete message", err)
	}
	return c.JSON(fiber.Map{"success": true})
}

// React POST /api/chat/groups/:id/messages/:msgId/reactions
func (h *ChatHandler) React(c *fiber.Ctx) error {
	type request struct {
		Emoji string `json:"emoji"`
	}
	var req request
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}

	reactions, err := h.messages.ToggleReaction(c.UserContext(), c.Params("msgId"), middlewares.MemberID(c), req.Emoji)
	if err != nil {
		return errorResponse(c, "react to message", err)
	}
	return c.JSON(fiber.Map{"reactions": reactions})
}

// MarkRead PATCH /api/chat/groups/:id/read
func (h *ChatHandler) MarkRead(c *fiber.Ctx) error {
	type request struct {
		LastReadMessageID string `json:"lastReadMessageId"`
	}
	var req request
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}

	receipts, err := h.groups.MarkRead(c.UserContext(), c.Params("id"), middlewares.MemberID(c), req.LastReadMessageID)
	if err != nil {
		return errorResponse(c, "update read receipt", err)
	}
	return c.JSON(fiber.Map{"lastReadBy": receipts})
}

// PinMessage POST /api/chat/groups/:id/pin-message
func (h *ChatHandler) PinMessage(c *fiber.Ctx) error {
	type request struct {
		MsgID string `json:"msgId"`
	}
	var req request
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}

	if err := h.groups.PinMessage(c.UserContext(), c.Params("id"), middlewares.MemberID(c), req.MsgID); err != nil {
		return errorResponse(c, "pin message", err)
	}
	return c.JSON(fiber.Map{"success": true, "pinnedMessageId": req.MsgID})
}

// UnpinMessage POST /api/chat/groups/:id/unpin-message
func (h *ChatHandler) UnpinMessage(c *fiber.Ctx) error {
	if err := h.groups.UnpinMessage(c.UserContext(), c.Params("id"), middlewares.MemberID(c)); err != nil {
		return errorResponse(c, "unpin message", err)
	}
	return c.JSON(fiber.Map{"success": true, "pinnedMessageId": nil})
}
