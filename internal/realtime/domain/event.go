package domain

import (
	"encoding/json"
	"strings"
)

// Event websocket event name
type Event string

// client -> server
const (
	// Authenticate attach identity and private user channel
	Authenticate Event = "authenticate"
	// JoinChannel subscribe chat room broadcasts
	JoinChannel Event = "join-channel"
	// LeaveChannel unsubscribe chat room broadcasts
	LeaveChannel Event = "leave-channel"
	// TypingStart announce typing in a chat room
	TypingStart Event = "typing-start"
	// JoinVoiceChannel enter a voice room roster
	JoinVoiceChannel Event = "join-voice-channel"
	// LeaveVoiceChannel leave a voice room roster
	LeaveVoiceChannel Event = "leave-voice-channel"
)

// server -> client
const (
	// Connected tells the client its connection id
	Connected Event = "connected"
	// UserTyping someone else is typing in the room
	UserTyping Event = "user-typing"
	// UserJoinedVoice participant added to the roster
	UserJoinedVoice Event = "user-joined-voice"
	// UserLeftVoice participant removed from the roster
	UserLeftVoice Event = "user-left-voice"
	// VoiceUsers roster snapshot sent to a joiner
	VoiceUsers Event = "voice-users"
	// Error request could not be handled
	Error Event = "error"
)

// VoiceSignal both directions: client sends {channelId,targetSocketId,signal}, target receives {from,data}
const VoiceSignal Event = "voice-signal"

// fan-out events produced by REST mutations
const (
	ChatNewMessage    Event = "chat:new_message"
	ChatEditMessage   Event = "chat:edit_message"
	ChatDeleteMessage Event = "chat:delete_message"
	ChatReaction      Event = "chat:reaction"
	ChatRead          Event = "chat:read"
	GroupPin          Event = "group:pin"
	NotificationNew   Event = "notification:new"
)

// WSRequest websocket frame from client
type WSRequest struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// WSResponse websocket frame to client
type WSResponse struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data,omitempty"`
}

// Envelope WSResponse as read back from the event bus
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// NewResponse build a frame
func NewResponse(e Event, data interface{}) WSResponse {
	return WSResponse{Event: string(e), Data: data}
}

// ErrorPayload error event body
type ErrorPayload struct {
	Event string `json:"event,omitempty"`
	Error string `json:"error"`
}

// bus channel prefixes
const (
	roomChannelPrefix = "chat:room:"
	userChannelPrefix = "chat:user:"
)

// ChannelKind what a bus channel addresses
type ChannelKind int

const (
	// UnknownChannel not a fan-out channel
	UnknownChannel ChannelKind = iota
	// RoomChannelKind chat room broadcast group
	RoomChannelKind
	// UserChannelKind private per-user channel
	UserChannelKind
)

// RoomChannel bus channel for a room
func RoomChannel(roomID string) string { return roomChannelPrefix + roomID }

// UserChannel bus channel for a user
func UserChannel(userID string) string { return userChannelPrefix + userID }

// RoomChannelPattern/UserChannelPattern psubscribe patterns
const (
	RoomChannelPattern = roomChannelPrefix + "*"
	UserChannelPattern = userChannelPrefix + "*"
)

// ParseChannel split a bus channel into kind and target id
func ParseChannel(channel string) (ChannelKind, string) {
	switch {
	case strings.HasPrefix(channel, roomChannelPrefix):
		return RoomChannelKind, strings.TrimPrefix(channel, roomChannelPrefix)
	case strings.HasPrefix(channel, userChannelPrefix):
		return UserChannelKind, strings.TrimPrefix(channel, userChannelPrefix)
	default:
		return UnknownChannel, ""
	}
}
