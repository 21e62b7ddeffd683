package app

import (
	"testing"

	"taskflow_realtime/internal/realtime/domain"
	"taskflow_realtime/pkg/logger"
	"taskflow_realtime/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHub() *Hub {
	logger.SetNewNop()
	return NewHub(nil)
}

func TestHub_AuthenticateSubscribesUserChannel(t *testing.T) {
	h := newTestHub()
	s := NewRecordingSender("a", nil)
	connID := h.Register(s)

	require.True(t, h.Authenticate(connID, domain.Identity{ID: "u1", Name: "Ann"}))
	assert.Equal(t, 1, h.SendToUser("u1", domain.NewResponse(domain.NotificationNew, "hi")))
	assert.Equal(t, []string{"notification:new"}, s.Events())
}

func TestHub_ReauthenticateReplacesIdentity(t *testing.T) {
	h := newTestHub()
	s := NewRecordingSender("a", nil)
	connID := h.Register(s)

	h.Authenticate(connID, domain.Identity{ID: "u1", Name: "Ann"})
	h.Authenticate(connID, domain.Identity{ID: "u2", Name: "Bob"})

	assert.Equal(t, 0, h.SendToUser("u1", domain.NewResponse(domain.NotificationNew, nil)))
	assert.Equal(t, 1, h.SendToUser("u2", domain.NewResponse(domain.NotificationNew, nil)))
	assert.Equal(t, "Bob", h.Identity(connID).Name)
}

func TestHub_AuthenticateUnknownConnection(t *testing.T) {
	h := newTestHub()
	assert.False(t, h.Authenticate("missing", domain.Identity{ID: "u1"}))
}

func TestHub_JoinChatRoomKeepsPreviousRoom(t *testing.T) {
	h := newTestHub()
	connID := h.Register(NewRecordingSender("a", nil))

	h.JoinChatRoom(connID, "g1")
	h.JoinChatRoom(connID, "g2")

	view, ok := h.Connection(connID)
	require.True(t, ok)
	assert.Equal(t, "g2", view.ActiveChatRoom)
	assert.Equal(t, []string{"g1", "g2"}, view.ChatRooms)

	require.True(t, h.LeaveChatRoom(connID, "g2"))
	view, _ = h.Connection(connID)
	assert.Empty(t, view.ActiveChatRoom)
	assert.Equal(t, []string{"g1"}, view.ChatRooms)

	assert.False(t, h.LeaveChatRoom(connID, "g2"))
}

func TestHub_BroadcastRoomExcludesSender(t *testing.T) {
	h := newTestHub()
	a, b, c := NewRecordingSender("a", nil), NewRecordingSender("b", nil), NewRecordingSender("c", nil)
	aID, bID, cID := h.Register(a), h.Register(b), h.Register(c)
	h.JoinChatRoom(aID, "g1")
	h.JoinChatRoom(bID, "g1")
	h.JoinChatRoom(cID, "g2")

	n := h.BroadcastRoom("g1", aID, domain.NewResponse(domain.UserTyping, nil))

	assert.Equal(t, 1, n)
	assert.Empty(t, a.Frames())
	assert.Len(t, b.Frames(), 1)
	assert.Empty(t, c.Frames())
}

func TestHub_DisconnectIsIdempotent(t *testing.T) {
	h := newTestHub()
	s := NewRecordingSender("a", nil)
	connID := h.Register(s)
	h.Authenticate(connID, domain.Identity{ID: "u1"})
	h.JoinChatRoom(connID, "g1")

	h.Disconnect(connID)
	h.Disconnect(connID)

	_, ok := h.Connection(connID)
	assert.False(t, ok)
	assert.Equal(t, 0, h.BroadcastRoom("g1", "", domain.NewResponse(domain.ChatNewMessage, nil)))
	assert.Equal(t, 0, h.SendToUser("u1", domain.NewResponse(domain.NotificationNew, nil)))
}

func TestHub_FullQueueDropsAndCounts(t *testing.T) {
	logger.SetNewNop()
	m := metrics.NewMetrics(prometheus.NewRegistry())
	h := NewHub(m)

	s := NewRecordingSender("a", nil)
	connID := h.Register(s)
	s.SetFull(true)

	assert.False(t, h.SendTo(connID, domain.NewResponse(domain.UserTyping, nil)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.EventsDropped.WithLabelValues("user-typing")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Connections))

	h.Disconnect(connID)
	assert.Equal(t, 0.0, testutil.ToFloat64(m.Connections))
}
