package domain

import "time"

// TypingIndicator self-expiring "is typing" marker keyed by (room, user)
type TypingIndicator struct {
	UserID   string    `json:"userId"`
	UserName string    `json:"userName"`
	LastSeen time.Time `json:"lastSeen"`
}

// TypingStartPayload typing-start body
type TypingStartPayload struct {
	ChannelID string `json:"channelId"`
	UserID    string `json:"userId"`
	UserName  string `json:"userName"`
}

// UserTypingPayload user-typing body
type UserTypingPayload struct {
	UserID    string `json:"userId"`
	UserName  string `json:"userName"`
	ChannelID string `json:"channelId"`
}
