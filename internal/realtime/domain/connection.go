package domain

import "encoding/json"

// Identity authenticated user attached to a connection
type Identity struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar,omitempty"`
}

// Participant public identity inside a voice roster
type Participant = Identity

// RosterEntry one connection's participation in one voice room
type RosterEntry struct {
	SocketID string      `json:"socketId"`
	User     Participant `json:"user"`
}

// Connection read-only view of a registered connection
type Connection struct {
	ID              string    `json:"id"`
	Identity        *Identity `json:"identity,omitempty"`
	ActiveChatRoom  string    `json:"activeChatRoom,omitempty"`
	ActiveVoiceRoom string    `json:"activeVoiceRoom,omitempty"`
	ChatRooms       []string  `json:"chatRooms,omitempty"`
}

// ConnectedPayload connected event body
type ConnectedPayload struct {
	SocketID string `json:"socketId"`
}

// JoinVoicePayload join-voice-channel body
type JoinVoicePayload struct {
	ChannelID string      `json:"channelId"`
	User      Participant `json:"user"`
}

// UserJoinedVoicePayload user-joined-voice body
type UserJoinedVoicePayload struct {
	SocketID  string      `json:"socketId"`
	ChannelID string      `json:"channelId"`
	User      Participant `json:"user"`
}

// UserLeftVoicePayload user-left-voice body
type UserLeftVoicePayload struct {
	SocketID  string `json:"socketId"`
	ChannelID string `json:"channelId"`
}

// VoiceUsersPayload voice-users body
type VoiceUsersPayload struct {
	ChannelID string        `json:"channelId"`
	Users     []RosterEntry `json:"users"`
}

// VoiceSignalRequest voice-signal body from the sender
type VoiceSignalRequest struct {
	ChannelID      string          `json:"channelId"`
	TargetSocketID string          `json:"targetSocketId"`
	Signal         json.RawMessage `json:"signal"`
}

// VoiceSignalPayload voice-signal body delivered to the target, data is never inspected
type VoiceSignalPayload struct {
	From string          `json:"from"`
	Data json.RawMessage `json:"data"`
}
