package app

import (
	"encoding/json"

	"taskflow_realtime/internal/realtime/domain"
	"taskflow_realtime/pkg/logger"

	"go.uber.org/zap"
)

// Relay hand payload to targetConnID as {from, data}. Returns false when the target is
// gone or its queue is full; the sender is never told.
func (h *Hub) Relay(senderConnID, roomID, targetConnID string, payload json.RawMessage) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	target, ok := h.clients[targetConnID]
	if !ok {
		h.metrics.SignalRelayed(false)
		logger.Log.Debug("signal target gone", zap.String("from", senderConnID), zap.String("to", targetConnID), zap.String("room", roomID))
		return false
	}

	delivered := h.deliverLocked(target, domain.NewResponse(domain.VoiceSignal, domain.VoiceSignalPayload{
		From: senderConnID,
		Data: payload,
	}))
	h.metrics.SignalRelayed(delivered)
	return delivered
}
