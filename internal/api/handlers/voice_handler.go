package handlers

import (
	rtdomain "taskflow_realtime/internal/realtime/domain"

	"github.com/gofiber/fiber/v2"
)

// VoiceRosterReader read current voice room roster
type VoiceRosterReader interface {
	VoiceRoster(roomID string) []rtdomain.RosterEntry
}

// VoiceHandler voice room REST endpoints
type VoiceHandler struct {
	rosters VoiceRosterReader
}

// NewVoiceHandler create VoiceHandler
func NewVoiceHandler(rosters VoiceRosterReader) *VoiceHandler {
	return &VoiceHandler{rosters: rosters}
}

// Users GET /api/voice/channels/:id/users
func (h *VoiceHandler) Users(c *fiber.Ctx) error {
	roomID := c.Params("id")
	users := h.rosters.VoiceRoster(roomID)
	if users == nil {
		users = []rtdomain.RosterEntry{}
	}
	return c.JSON(rtdomain.VoiceUsersPayload{ChannelID: roomID, Users: users})
}
