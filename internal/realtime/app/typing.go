package app

import (
	"context"
	"sort"
	"sync"
	"time"

	"taskflow_realtime/internal/realtime/domain"
	"taskflow_realtime/pkg/logger"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// DefaultTypingStaleAfter indicators older than this are never reported
const DefaultTypingStaleAfter = 3 * time.Second

// RoomBroadcaster delivers a frame to a chat room
type RoomBroadcaster interface {
	BroadcastRoom(roomID, exceptConnID string, resp domain.WSResponse) int
}

type typingEntry struct {
	userName string
	last     time.Time
}

// TypingBroadcaster per-room typing indicators with lazy expiry
type TypingBroadcaster struct {
	mu         sync.Mutex
	rooms      map[string]map[string]typingEntry
	staleAfter time.Duration
	now        func() time.Time

	hub  RoomBroadcaster
	cron *cron.Cron
}

// NewTypingBroadcaster create TypingBroadcaster
func NewTypingBroadcaster(hub RoomBroadcaster, staleAfter time.Duration) *TypingBroadcaster {
	if staleAfter <= 0 {
		staleAfter = DefaultTypingStaleAfter
	}
	return &TypingBroadcaster{
		rooms:      make(map[string]map[string]typingEntry),
		staleAfter: staleAfter,
		now:        time.Now,
		hub:        hub,
	}
}

// Announce upsert (roomID, userID) and tell the other room subscribers
func (t *TypingBroadcaster) Announce(connID, roomID, userID, userName string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	users, ok := t.rooms[roomID]
	if !ok {
		users = make(map[string]typingEntry)
		t.rooms[roomID] = users
	}
	users[userID] = typingEntry{userName: userName, last: t.now()}

	// broadcast under mu keeps announcements for one key in order
	t.hub.BroadcastRoom(roomID, connID, domain.NewResponse(domain.UserTyping, domain.UserTypingPayload{
		UserID:    userID,
		UserName:  userName,
		ChannelID: roomID,
	}))
}

// Typing fresh indicators of roomID ordered by user id
func (t *TypingBroadcaster) Typing(roomID string) []domain.TypingIndicator {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	out := make([]domain.TypingIndicator, 0, len(t.rooms[roomID]))
	for userID, e := range t.rooms[roomID] {
		if now.Sub(e.last) >= t.staleAfter {
			continue
		}
		out = append(out, domain.TypingIndicator{UserID: userID, UserName: e.userName, LastSeen: e.last})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })
	return out
}

// Sweep delete stale indicators, returns removed count
func (t *TypingBroadcaster) Sweep() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	removed := 0
	for roomID, users := range t.rooms {
		for userID, e := range users {
			if now.Sub(e.last) >= t.staleAfter {
				delete(users, userID)
				removed++
			}
		}
		if len(users) == 0 {
			delete(t.rooms, roomID)
		}
	}
	return removed
}

// Start schedule Sweep with a cron spec such as "@every 5s"
func (t *TypingBroadcaster) Start(spec string) error {
	c := cron.New()
	if _, err := c.AddFunc(spec, func() {
		if n := t.Sweep(); n > 0 {
			logger.Log.Debug("typing sweep", zap.Int("removed", n))
		}
	}); err != nil {
		return err
	}
	t.cron = c
	c.Start()
	return nil
}

// Stop stop the sweep schedule and wait for a running sweep
func (t *TypingBroadcaster) Stop(ctx context.Context) error {
	if t.cron == nil {
		return nil
	}
	select {
	case <-t.cron.Stop().Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
