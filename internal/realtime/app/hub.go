package app

import (
	"sort"
	"sync"

	"taskflow_realtime/internal/realtime/domain"
	"taskflow_realtime/pkg/logger"
	"taskflow_realtime/pkg/metrics"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Sender non-blocking outbound queue of one connection
type Sender interface {
	// Enqueue returns false when the frame was dropped
	Enqueue(resp domain.WSResponse) bool
}

type client struct {
	id              string
	sender          Sender
	identity        *domain.Identity
	activeChatRoom  string
	activeVoiceRoom string
	chatRooms       map[string]struct{}
}

// Hub owns every connection, chat room subscription and voice roster of the process.
// All mutation and the enqueues it causes happen under mu, so events produced by one
// operation reach every connection in the order the operation issued them.
type Hub struct {
	mu           sync.Mutex
	clients      map[string]*client
	chatRooms    map[string]map[string]struct{}
	userChannels map[string]map[string]struct{}
	voiceRooms   map[string][]domain.RosterEntry

	metrics *metrics.Metrics
}

// NewHub create Hub, m may be nil
func NewHub(m *metrics.Metrics) *Hub {
	return &Hub{
		clients:      make(map[string]*client),
		chatRooms:    make(map[string]map[string]struct{}),
		userChannels: make(map[string]map[string]struct{}),
		voiceRooms:   make(map[string][]domain.RosterEntry),
		metrics:      m,
	}
}

// Register add a connection and return its id
func (h *Hub) Register(s Sender) string {
	id := uuid.NewString()

	h.mu.Lock()
	defer h.mu.Unlock()

	h.clients[id] = &client{id: id, sender: s, chatRooms: make(map[string]struct{})}
	h.metrics.ConnectionOpened()
	logger.Log.Debug("connection registered", zap.String("connID", id))
	return id
}

// Authenticate attach identity and subscribe the private user channel, replaces a previous identity
func (h *Hub) Authenticate(connID string, identity domain.Identity) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	c, ok := h.clients[connID]
	if !ok {
		return false
	}

	if c.identity != nil {
		unsubscribe(h.userChannels, c.identity.ID, connID)
	}
	id := identity
	c.identity = &id
	if id.ID != "" {
		subscribe(h.userChannels, id.ID, connID)
	}
	logger.Log.Debug("connection authenticated", zap.String("connID", connID), zap.String("userID", id.ID))
	return true
}

// JoinChatRoom subscribe the room; a previously joined room stays subscribed
func (h *Hub) JoinChatRoom(connID, roomID string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	c, ok := h.clients[connID]
	if !ok || roomID == "" {
		return false
	}
	subscribe(h.chatRooms, roomID, connID)
	c.chatRooms[roomID] = struct{}{}
	c.activeChatRoom = roomID
	return true
}

// LeaveChatRoom unsubscribe the room, no-op when not joined
func (h *Hub) LeaveChatRoom(connID, roomID string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	c, ok := h.clients[connID]
	if !ok {
		return false
	}
	if _, joined := c.chatRooms[roomID]; !joined {
		return false
	}
	unsubscribe(h.chatRooms, roomID, connID)
	delete(c.chatRooms, roomID)
	if c.activeChatRoom == roomID {
		c.activeChatRoom = ""
	}
	return true
}

// Disconnect voice cleanup then drop every subscription; safe to call repeatedly
func (h *Hub) Disconnect(connID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	c, ok := h.clients[connID]
	if !ok {
		return
	}

	if c.activeVoiceRoom != "" {
		h.leaveVoiceLocked(c)
	}
	for roomID := range c.chatRooms {
		unsubscribe(h.chatRooms, roomID, connID)
	}
	if c.identity != nil {
		unsubscribe(h.userChannels, c.identity.ID, connID)
	}
	delete(h.clients, connID)
	h.metrics.ConnectionClosed()
	logger.Log.Debug("connection removed", zap.String("connID", connID))
}

// BroadcastRoom deliver to every subscriber of roomID except exceptConnID, returns enqueued count
func (h *Hub) BroadcastRoom(roomID, exceptConnID string, resp domain.WSResponse) int {
	h.mu.Lock()
	defer h.mu.Unlock()

	return h.deliverSetLocked(h.chatRooms[roomID], exceptConnID, resp)
}

// SendToUser deliver to every connection authenticated as userID
func (h *Hub) SendToUser(userID string, resp domain.WSResponse) int {
	h.mu.Lock()
	defer h.mu.Unlock()

	return h.deliverSetLocked(h.userChannels[userID], "", resp)
}

// SendTo deliver to one connection
func (h *Hub) SendTo(connID string, resp domain.WSResponse) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	c, ok := h.clients[connID]
	if !ok {
		return false
	}
	return h.deliverLocked(c, resp)
}

// Connection snapshot of one connection
func (h *Hub) Connection(connID string) (domain.Connection, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	c, ok := h.clients[connID]
	if !ok {
		return domain.Connection{}, false
	}
	view := domain.Connection{
		ID:              c.id,
		ActiveChatRoom:  c.activeChatRoom,
		ActiveVoiceRoom: c.activeVoiceRoom,
	}
	if c.identity != nil {
		id := *c.identity
		view.Identity = &id
	}
	for roomID := range c.chatRooms {
		view.ChatRooms = append(view.ChatRooms, roomID)
	}
	sort.Strings(view.ChatRooms)
	return view, true
}

// Identity identity attached to connID, nil before authenticate
func (h *Hub) Identity(connID string) *domain.Identity {
	h.mu.Lock()
	defer h.mu.Unlock()

	c, ok := h.clients[connID]
	if !ok || c.identity == nil {
		return nil
	}
	id := *c.identity
	return &id
}

func (h *Hub) deliverSetLocked(set map[string]struct{}, exceptConnID string, resp domain.WSResponse) int {
	delivered := 0
	for connID := range set {
		if connID == exceptConnID {
			continue
		}
		c, ok := h.clients[connID]
		if !ok {
			continue
		}
		if h.deliverLocked(c, resp) {
			delivered++
		}
	}
	return delivered
}

func (h *Hub) deliverLocked(c *client, resp domain.WSResponse) bool {
	ok := c.sender.Enqueue(resp)
	h.metrics.EventDelivered(resp.Event, ok)
	if !ok {
		logger.Log.Warn("outbound queue full, event dropped", zap.String("connID", c.id), zap.String("event", resp.Event))
	}
	return ok
}

func subscribe(groups map[string]map[string]struct{}, key, connID string) {
	set, ok := groups[key]
	if !ok {
		set = make(map[string]struct{})
		groups[key] = set
	}
	set[connID] = struct{}{}
}

func unsubscribe(groups map[string]map[string]struct{}, key, connID string) {
	set, ok := groups[key]
	if !ok {
		return
	}
	delete(set, connID)
	if len(set) == 0 {
		delete(groups, key)
	}
}
