package domain

import (
	"time"

	"taskflow_realtime/pkg"
)

// ChatMessage 表示一則聊天訊息
type ChatMessage struct {
	ID         string      `bson:"_id" json:"id"`
	ChannelID  string      `bson:"channel_id" json:"channelId"`
	Content    string      `bson:"content" json:"content"`
	AuthorID   string      `bson:"author_id" json:"authorId"`
	CreatedAt  time.Time   `bson:"created_at" json:"createdAt"`
	Edited     bool        `bson:"edited" json:"edited"`
	Attachment *Attachment `bson:"attachment,omitempty" json:"attachment"`
	Reactions  []Reaction  `bson:"reactions" json:"reactions"`
}

// Attachment uploaded file reference, the upload itself lives elsewhere
type Attachment struct {
	URL  string `bson:"url" json:"url"`
	Name string `bson:"name,omitempty" json:"name,omitempty"`
	Type string `bson:"type,omitempty" json:"type,omitempty"`
	Size int64  `bson:"size,omitempty" json:"size,omitempty"`
}

// Reaction users who reacted with one emoji
type Reaction struct {
	Emoji   string   `bson:"emoji" json:"emoji"`
	UserIDs []string `bson:"user_ids" json:"userIds"`
}

// ToggleReaction add userID to the emoji's reactors, or remove it when already there.
// An emoji left without reactors is dropped.
func (m *ChatMessage) ToggleReaction(emoji, userID string) {
	for i, r := range m.Reactions {
		if r.Emoji != emoji {
			continue
		}
		if !pkg.Contains(r.UserIDs, userID) {
			m.Reactions[i].UserIDs = append(r.UserIDs, userID)
			return
		}
		if r.UserIDs = pkg.Remove(r.UserIDs, userID); len(r.UserIDs) == 0 {
			m.Reactions = append(m.Reactions[:i:i], m.Reactions[i+1:]...)
		} else {
			m.Reactions[i] = r
		}
		return
	}
	m.Reactions = append(m.Reactions, Reaction{Emoji: emoji, UserIDs: []string{userID}})
}
