package app

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"taskflow_realtime/internal/realtime/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestFanout_LocalRoomAndUser(t *testing.T) {
	h := newTestHub()
	a, b := NewRecordingSender("a", nil), NewRecordingSender("b", nil)
	aID, bID := h.Register(a), h.Register(b)
	h.JoinChatRoom(aID, "g1")
	h.JoinChatRoom(bID, "g1")
	h.Authenticate(bID, domain.Identity{ID: "ub"})

	f := NewFanout(h, nil)
	f.EmitToRoom(context.Background(), "g1", domain.ChatDeleteMessage, map[string]string{"id": "m1", "channelId": "g1"})
	f.EmitToUser(context.Background(), "ub", domain.NotificationNew, map[string]string{"title": "t"})

	assert.Equal(t, []string{"chat:delete_message"}, a.Events())
	assert.Equal(t, []string{"chat:delete_message", "notification:new"}, b.Events())
}

func TestFanout_PublishesWhenBusPresent(t *testing.T) {
	h := newTestHub()
	a := NewRecordingSender("a", nil)
	aID := h.Register(a)
	h.JoinChatRoom(aID, "g1")

	bus := new(MockEventBus)
	bus.On("Publish", mock.Anything, "chat:room:g1", mock.MatchedBy(func(r domain.WSResponse) bool {
		return r.Event == "chat:new_message"
	})).Return(nil)

	f := NewFanout(h, bus)
	f.EmitToRoom(context.Background(), "g1", domain.ChatNewMessage, map[string]string{"id": "m1"})

	assert.Empty(t, a.Frames())
	bus.AssertExpectations(t)
}

func TestFanout_PublishFailureFallsBackToLocal(t *testing.T) {
	h := newTestHub()
	a := NewRecordingSender("a", nil)
	aID := h.Register(a)
	h.Authenticate(aID, domain.Identity{ID: "ua"})

	bus := new(MockEventBus)
	bus.On("Publish", mock.Anything, "chat:user:ua", mock.Anything).Return(errors.New("redis down"))

	f := NewFanout(h, bus)
	f.EmitToUser(context.Background(), "ua", domain.NotificationNew, nil)

	assert.Equal(t, []string{"notification:new"}, a.Events())
	bus.AssertExpectations(t)
}

func TestFanout_ListenRoutesBusEvents(t *testing.T) {
	h := newTestHub()
	a, b := NewRecordingSender("a", nil), NewRecordingSender("b", nil)
	aID, bID := h.Register(a), h.Register(b)
	h.JoinChatRoom(aID, "g1")
	h.Authenticate(bID, domain.Identity{ID: "ub"})

	var handler func(string, domain.Envelope)
	bus := new(MockEventBus)
	bus.On("Subscribe", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		handler = args.Get(1).(func(string, domain.Envelope))
	}).Return(nil)

	f := NewFanout(h, bus)
	require.NoError(t, f.Listen(context.Background()))
	require.NotNil(t, handler)

	handler("chat:room:g1", domain.Envelope{Event: "chat:reaction", Data: json.RawMessage(`{"msgId":"m1"}`)})
	handler("chat:user:ub", domain.Envelope{Event: "notification:new", Data: json.RawMessage(`{}`)})
	handler("chat:other", domain.Envelope{Event: "x"})

	assert.Equal(t, []string{"chat:reaction"}, a.Events())
	assert.Equal(t, []string{"notification:new"}, b.Events())
}

func TestFanout_ListenWithoutBus(t *testing.T) {
	f := NewFanout(newTestHub(), nil)
	assert.NoError(t, f.Listen(context.Background()))
}
