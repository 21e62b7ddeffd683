package domain

import "time"

// Type notification category, decides which settings flag governs it
type Type string

// notification types
const (
	TypeTask     Type = "task"
	TypeMessage  Type = "message"
	TypeMention  Type = "mention"
	TypeMeeting  Type = "meeting"
	TypeReminder Type = "reminder"
)

// Notification 推送給使用者的通知
type Notification struct {
	ID        string                 `json:"id"`
	Type      Type                   `json:"type"`
	Title     string                 `json:"title"`
	Body      string                 `json:"body"`
	Timestamp time.Time              `json:"timestamp"`
	Read      bool                   `json:"read"`
	UserID    string                 `json:"userId"`
	Data      map[string]interface{} `json:"data,omitempty"`
}

// CreateOptions optional delivery hints supplied by the producer
type CreateOptions struct {
	EmailEnabled bool                   `json:"emailEnabled"`
	Data         map[string]interface{} `json:"data"`
	EmailSubject string                 `json:"emailSubject"`
	EmailBody    string                 `json:"emailBody"`
}

// CreateRequest POST /api/notifications/create body
type CreateRequest struct {
	Type         Type          `json:"type"`
	Title        string        `json:"title"`
	Body         string        `json:"body"`
	TargetUserID string        `json:"targetUserId"`
	UserEmail    string        `json:"userEmail"`
	Options      CreateOptions `json:"options"`
}

// CreateResult outcome of one gate decision
type CreateResult struct {
	Notification Notification `json:"notification"`
	Pushed       bool         `json:"pushed"`
	Emailed      bool         `json:"emailed"`
}

// EmailRequest POST /api/notifications/email body
type EmailRequest struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// EmailResult accepted direct email
type EmailResult struct {
	To        string `json:"to"`
	Subject   string `json:"subject"`
	Body      string `json:"body"`
	MessageID string `json:"messageId"`
}
