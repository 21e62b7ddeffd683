package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToggleReaction_AddsNewEmoji(t *testing.T) {
	m := &ChatMessage{}
	m.ToggleReaction("👍", "u1")
	assert.Equal(t, []Reaction{{Emoji: "👍", UserIDs: []string{"u1"}}}, m.Reactions)
}

func TestToggleReaction_AddsUserToExistingEmoji(t *testing.T) {
	m := &ChatMessage{Reactions: []Reaction{{Emoji: "👍", UserIDs: []string{"u1"}}}}
	m.ToggleReaction("👍", "u2")
	assert.Equal(t, []string{"u1", "u2"}, m.Reactions[0].UserIDs)
}

func TestToggleReaction_RemovesUser(t *testing.T) {
	m := &ChatMessage{Reactions: []Reaction{{Emoji: "👍", UserIDs: []string{"u1", "u2"}}}}
	m.ToggleReaction("👍", "u1")
	assert.Equal(t, []Reaction{{Emoji: "👍", UserIDs: []string{"u2"}}}, m.Reactions)
}

func TestToggleReaction_DropsEmptyEmoji(t *testing.T) {
	m := &ChatMessage{Reactions: []Reaction{
		{Emoji: "🎉", UserIDs: []string{"u3"}},
		{Emoji: "👍", UserIDs: []string{"u1"}},
	}}
	m.ToggleReaction("👍", "u1")
	assert.Equal(t, []Reaction{{Emoji: "🎉", UserIDs: []string{"u3"}}}, m.Reactions)
}

func TestGroup_CanAccess(t *testing.T) {
	public := &Group{Privacy: PrivacyPublic}
	private := &Group{Privacy: PrivacyPrivate, Members: []string{"u1"}}

	assert.True(t, public.CanAccess("anyone"))
	assert.True(t, private.CanAccess("u1"))
	assert.False(t, private.CanAccess("u2"))
}

func TestGroup_SetReadReceiptReplaces(t *testing.T) {
	g := &Group{LastReadBy: []ReadReceipt{{UserID: "u1", LastReadMessageID: "m1"}, {UserID: "u2", LastReadMessageID: "m1"}}}
	g.SetReadReceipt("u1", "m5")
	assert.ElementsMatch(t, []ReadReceipt{{UserID: "u2", LastReadMessageID: "m1"}, {UserID: "u1", LastReadMessageID: "m5"}}, g.LastReadBy)
}
