package app

import (
	"taskflow_realtime/internal/realtime/domain"
	"taskflow_realtime/pkg/logger"

	"go.uber.org/zap"
)

// JoinVoiceRoom leave the current voice room if any, add the connection to roomID,
// tell the other members, then send the joiner the roster without itself.
func (h *Hub) JoinVoiceRoom(connID, roomID string, p domain.Participant) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	c, ok := h.clients[connID]
	if !ok || roomID == "" {
		return false
	}

	if c.activeVoiceRoom != "" {
		h.leaveVoiceLocked(c)
	}

	others := h.voiceRooms[roomID]
	h.voiceRooms[roomID] = append(append([]domain.RosterEntry(nil), others...), domain.RosterEntry{SocketID: connID, User: p})
	c.activeVoiceRoom = roomID
	h.metrics.VoiceJoined()

	joined := domain.NewResponse(domain.UserJoinedVoice, domain.UserJoinedVoicePayload{
		SocketID:  connID,
		ChannelID: roomID,
		User:      p,
	})
	for _, e := range others {
		if member, ok := h.clients[e.SocketID]; ok {
			h.deliverLocked(member, joined)
		}
	}

	snapshot := make([]domain.RosterEntry, len(others))
	copy(snapshot, others)
	h.deliverLocked(c, domain.NewResponse(domain.VoiceUsers, domain.VoiceUsersPayload{
		ChannelID: roomID,
		Users:     snapshot,
	}))

	logger.Log.Debug("voice joined", zap.String("connID", connID), zap.String("room", roomID), zap.Int("members", len(others)+1))
	return true
}

// LeaveVoiceRoom no-op unless roomID is the connection's active voice room
func (h *Hub) LeaveVoiceRoom(connID, roomID string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	c, ok := h.clients[connID]
	if !ok || c.activeVoiceRoom == "" || c.activeVoiceRoom != roomID {
		return false
	}
	h.leaveVoiceLocked(c)
	return true
}

// VoiceRoster current roster of roomID in join order
func (h *Hub) VoiceRoster(roomID string) []domain.RosterEntry {
	h.mu.Lock()
	defer h.mu.Unlock()

	roster := h.voiceRooms[roomID]
	out := make([]domain.RosterEntry, len(roster))
	copy(out, roster)
	return out
}

func (h *Hub) leaveVoiceLocked(c *client) {
	roomID := c.activeVoiceRoom
	remaining := make([]domain.RosterEntry, 0, len(h.voiceRooms[roomID]))
	for _, e := range h.voiceRooms[roomID] {
		if e.SocketID != c.id {
			remaining = append(remaining, e)
		}
	}
	if len(remaining) == 0 {
		delete(h.voiceRooms, roomID)
	} else {
		h.voiceRooms[roomID] = remaining
	}
	c.activeVoiceRoom = ""
	h.metrics.VoiceLeft()

	left := domain.NewResponse(domain.UserLeftVoice, domain.UserLeftVoicePayload{
		SocketID:  c.id,
		ChannelID: roomID,
	})
	for _, e := range remaining {
		if member, ok := h.clients[e.SocketID]; ok {
			h.deliverLocked(member, left)
		}
	}
	logger.Log.Debug("voice left", zap.String("connID", c.id), zap.String("room", roomID))
}
