package app

import (
	"context"

	"taskflow_realtime/internal/realtime/domain"
	"taskflow_realtime/pkg/logger"

	"go.uber.org/zap"
)

// EventBus cross-process transport for fan-out events
type EventBus interface {
	Publish(ctx context.Context, channel string, resp domain.WSResponse) error
	Subscribe(ctx context.Context, handler func(channel string, env domain.Envelope)) error
}

// LocalDelivery the hub side of fan-out
type LocalDelivery interface {
	BroadcastRoom(roomID, exceptConnID string, resp domain.WSResponse) int
	SendToUser(userID string, resp domain.WSResponse) int
}

// Fanout delivers chat lifecycle and notification events, at most once per subscribed connection
type Fanout struct {
	local LocalDelivery
	bus   EventBus
}

// NewFanout create Fanout, a nil bus delivers in process only
func NewFanout(local LocalDelivery, bus EventBus) *Fanout {
	return &Fanout{local: local, bus: bus}
}

// EmitToRoom deliver event to every connection subscribed to roomID
func (f *Fanout) EmitToRoom(ctx context.Context, roomID string, event domain.Event, data interface{}) {
	resp := domain.NewResponse(event, data)
	if f.publish(ctx, domain.RoomChannel(roomID), resp) {
		return
	}
	n := f.local.BroadcastRoom(roomID, "", resp)
	logger.Log.Debug("fanout room", zap.String("room", roomID), zap.String("event", string(event)), zap.Int("delivered", n))
}

// EmitToUser deliver event to the private channel of userID
func (f *Fanout) EmitToUser(ctx context.Context, userID string, event domain.Event, data interface{}) {
	resp := domain.NewResponse(event, data)
	if f.publish(ctx, domain.UserChannel(userID), resp) {
		return
	}
	n := f.local.SendToUser(userID, resp)
	logger.Log.Debug("fanout user", zap.String("user", userID), zap.String("event", string(event)), zap.Int("delivered", n))
}

// Listen route bus events to local connections until ctx is done
func (f *Fanout) Listen(ctx context.Context) error {
	if f.bus == nil {
		return nil
	}
	return f.bus.Subscribe(ctx, f.deliver)
}

func (f *Fanout) deliver(channel string, env domain.Envelope) {
	resp := domain.WSResponse{Event: env.Event, Data: env.Data}
	switch kind, id := domain.ParseChannel(channel); kind {
	case domain.RoomChannelKind:
		f.local.BroadcastRoom(id, "", resp)
	case domain.UserChannelKind:
		f.local.SendToUser(id, resp)
	default:
		logger.Log.Warn("fanout unknown channel", zap.String("channel", channel))
	}
}

// publish false means the caller must deliver locally
func (f *Fanout) publish(ctx context.Context, channel string, resp domain.WSResponse) bool {
	if f.bus == nil {
		return false
	}
	if err := f.bus.Publish(ctx, channel, resp); err != nil {
		logger.Log.Errorf("fanout publish failed, delivering locally", err, zap.String("channel", channel))
		return false
	}
	return true
}
