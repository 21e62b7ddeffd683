package app

import (
	"math/rand"
	"testing"

	"taskflow_realtime/internal/realtime/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rosterIDs(entries []domain.RosterEntry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.SocketID)
	}
	return out
}

func TestVoice_SecondJoinerSeesFirst(t *testing.T) {
	h := newTestHub()
	a, b := NewRecordingSender("a", nil), NewRecordingSender("b", nil)
	aID, bID := h.Register(a), h.Register(b)

	require.True(t, h.JoinVoiceRoom(aID, "v1", domain.Participant{ID: "ua", Name: "Ann"}))
	require.True(t, h.JoinVoiceRoom(bID, "v1", domain.Participant{ID: "ub", Name: "Bob"}))

	joined, ok := a.Last(domain.UserJoinedVoice)
	require.True(t, ok)
	var jp domain.UserJoinedVoicePayload
	require.NoError(t, DecodeData(joined, &jp))
	assert.Equal(t, bID, jp.SocketID)
	assert.Equal(t, "v1", jp.ChannelID)
	assert.Equal(t, "Bob", jp.User.Name)

	snap, ok := b.Last(domain.VoiceUsers)
	require.True(t, ok)
	var sp domain.VoiceUsersPayload
	require.NoError(t, DecodeData(snap, &sp))
	assert.Equal(t, []string{aID}, rosterIDs(sp.Users))

	assert.Equal(t, 0, b.Count(domain.UserJoinedVoice))
	assert.Equal(t, []string{aID, bID}, rosterIDs(h.VoiceRoster("v1")))
}

func TestVoice_JoinedBroadcastPrecedesSnapshot(t *testing.T) {
	h := newTestHub()
	log := &FrameLog{}
	aID := h.Register(NewRecordingSender("a", log))
	bID := h.Register(NewRecordingSender("b", log))
	cID := h.Register(NewRecordingSender("c", log))
	h.JoinVoiceRoom(aID, "v1", domain.Participant{ID: "ua"})
	h.JoinVoiceRoom(bID, "v1", domain.Participant{ID: "ub"})

	before := len(log.Entries())
	h.JoinVoiceRoom(cID, "v1", domain.Participant{ID: "uc"})
	entries := log.Entries()[before:]

	require.Len(t, entries, 3)
	assert.Equal(t, string(domain.UserJoinedVoice), entries[0].Frame.Event)
	assert.Equal(t, string(domain.UserJoinedVoice), entries[1].Frame.Event)
	assert.Equal(t, "c", entries[2].Owner)
	assert.Equal(t, string(domain.VoiceUsers), entries[2].Frame.Event)
}

func TestVoice_JoinOtherRoomLeavesPrevious(t *testing.T) {
	h := newTestHub()
	a, c := NewRecordingSender("a", nil), NewRecordingSender("c", nil)
	aID, cID := h.Register(a), h.Register(c)
	h.JoinVoiceRoom(aID, "v1", domain.Participant{ID: "ua"})
	h.JoinVoiceRoom(cID, "v1", domain.Participant{ID: "uc"})

	h.JoinVoiceRoom(aID, "v2", domain.Participant{ID: "ua"})

	left, ok := c.Last(domain.UserLeftVoice)
	require.True(t, ok)
	var lp domain.UserLeftVoicePayload
	require.NoError(t, DecodeData(left, &lp))
	assert.Equal(t, aID, lp.SocketID)
	assert.Equal(t, "v1", lp.ChannelID)

	assert.Equal(t, []string{cID}, rosterIDs(h.VoiceRoster("v1")))
	assert.Equal(t, []string{aID}, rosterIDs(h.VoiceRoster("v2")))
	view, _ := h.Connection(aID)
	assert.Equal(t, "v2", view.ActiveVoiceRoom)
}

func TestVoice_StaleLeaveIsNoop(t *testing.T) {
	h := newTestHub()
	a, b := NewRecordingSender("a", nil), NewRecordingSender("b", nil)
	aID, bID := h.Register(a), h.Register(b)
	h.JoinVoiceRoom(aID, "v1", domain.Participant{ID: "ua"})
	h.JoinVoiceRoom(bID, "v1", domain.Participant{ID: "ub"})

	assert.False(t, h.LeaveVoiceRoom(aID, "v9"))
	assert.Equal(t, 0, b.Count(domain.UserLeftVoice))
	assert.Len(t, h.VoiceRoster("v1"), 2)
}

func TestVoice_DisconnectWithoutLeave(t *testing.T) {
	h := newTestHub()
	a, b := NewRecordingSender("a", nil), NewRecordingSender("b", nil)
	aID, bID := h.Register(a), h.Register(b)
	h.JoinVoiceRoom(aID, "v1", domain.Participant{ID: "ua"})
	h.JoinVoiceRoom(bID, "v1", domain.Participant{ID: "ub"})

	h.Disconnect(aID)

	assert.Equal(t, []string{bID}, rosterIDs(h.VoiceRoster("v1")))
	left, ok := b.Last(domain.UserLeftVoice)
	require.True(t, ok)
	var lp domain.UserLeftVoicePayload
	require.NoError(t, DecodeData(left, &lp))
	assert.Equal(t, aID, lp.SocketID)
}

func TestVoice_LeaveThenDisconnectAnnouncesOnce(t *testing.T) {
	h := newTestHub()
	a, b := NewRecordingSender("a", nil), NewRecordingSender("b", nil)
	aID, bID := h.Register(a), h.Register(b)
	h.JoinVoiceRoom(aID, "v1", domain.Participant{ID: "ua"})
	h.JoinVoiceRoom(bID, "v1", domain.Participant{ID: "ub"})

	require.True(t, h.LeaveVoiceRoom(aID, "v1"))
	h.Disconnect(aID)
	h.Disconnect(aID)

	assert.Equal(t, 1, b.Count(domain.UserLeftVoice))
}

func TestVoice_EmptyRoomIsDropped(t *testing.T) {
	h := newTestHub()
	aID := h.Register(NewRecordingSender("a", nil))
	h.JoinVoiceRoom(aID, "v1", domain.Participant{ID: "ua"})
	h.LeaveVoiceRoom(aID, "v1")

	assert.Empty(t, h.VoiceRoster("v1"))
	h.mu.Lock()
	_, exists := h.voiceRooms["v1"]
	h.mu.Unlock()
	assert.False(t, exists)
}

// random join/leave/disconnect sequences against a model of "last operation per connection"
func TestVoice_RosterMatchesLastOperation(t *testing.T) {
	rooms := []string{"v1", "v2", "v3"}
	rng := rand.New(rand.NewSource(42))

	for round := 0; round < 50; round++ {
		h := newTestHub()
		ids := make([]string, 6)
		for i := range ids {
			ids[i] = h.Register(NewRecordingSender("c", nil))
		}
		model := map[string]string{}
		gone := map[string]bool{}

		for step := 0; step < 40; step++ {
			id := ids[rng.Intn(len(ids))]
			room := rooms[rng.Intn(len(rooms))]
			switch rng.Intn(5) {
			case 0, 1, 2:
				if h.JoinVoiceRoom(id, room, domain.Participant{ID: id}) {
					model[id] = room
				}
			case 3:
				if h.LeaveVoiceRoom(id, room) {
					delete(model, id)
				}
			case 4:
				h.Disconnect(id)
				delete(model, id)
				gone[id] = true
			}
		}

		pointers := map[string]int{}
		for _, id := range ids {
			if view, ok := h.Connection(id); ok && view.ActiveVoiceRoom != "" {
				pointers[view.ActiveVoiceRoom]++
			}
		}

		seen := map[string]bool{}
		for _, room := range rooms {
			roster := h.VoiceRoster(room)
			assert.Equal(t, pointers[room], len(roster), "room %s", room)

			var want []string
			for _, id := range ids {
				if model[id] == room {
					want = append(want, id)
				}
			}
			assert.ElementsMatch(t, want, rosterIDs(roster), "room %s", room)

			for _, e := range roster {
				assert.False(t, seen[e.SocketID], "connection in two rosters")
				assert.False(t, gone[e.SocketID], "disconnected connection in roster")
				seen[e.SocketID] = true
			}
		}
	}
}
