package handlers

import (
	"context"

	chatdomain "taskflow_realtime/internal/chat/domain"
	ntdomain "taskflow_realtime/internal/notification/domain"
	rtdomain "taskflow_realtime/internal/realtime/domain"

	"github.com/stretchr/testify/mock"
)

// MockMessageService Mock MessageService
type MockMessageService struct {
	mock.Mock
}

// SendMessage mock
func (m *MockMessageService) SendMessage(ctx context.Context, groupID, authorID, content string, attachment *chatdomain.Attachment) (*chatdomain.ChatMessage, error) {
	args := m.Called(ctx, groupID, authorID, content, attachment)
	if args.Get(0) != nil {
		return args.Get(0).(*chatdomain.ChatMessage), args.Error(1)
	}
	return nil, args.Error(1)
}

// EditMessage mock
func (m *MockMessageService) EditMessage(ctx context.Context, msgID, actorID, content string) (*chatdomain.ChatMessage, error) {
	args := m.Called(ctx, msgID, actorID, content)
	if args.Get(0) != nil {
		return args.Get(0).(*chatdomain.ChatMessage), args.Error(1)
	}
	return nil, args.Error(1)
}

// DeleteMessage mock
func (m *MockMessageService) DeleteMessage(ctx context.Context, msgID, actorID string) error {
	args := m.Called(ctx, msgID, actorID)
	return args.Error(0)
}

// ToggleReaction mock
func (m *MockMessageService) ToggleReaction(ctx context.Context, msgID, actorID, emoji string) ([]chatdomain.Reaction, error) {
	args := m.Called(ctx, msgID, actorID, emoji)
	if args.Get(0) != nil {
		return args.Get(0).([]chatdomain.Reaction), args.Error(1)
	}
	return nil, args.Error(1)
}

// ListMessages mock
func (m *MockMessageService) ListMessages(ctx context.Context, groupID, actorID string) ([]chatdomain.ChatMessage, error) {
	args := m.Called(ctx, groupID, actorID)
	if args.Get(0) != nil {
		return args.Get(0).([]chatdomain.ChatMessage), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockGroupService Mock GroupService
type MockGroupService struct {
	mock.Mock
}

// MarkRead mock
func (m *MockGroupService) MarkRead(ctx context.Context, groupID, actorID, lastReadMessageID string) ([]chatdomain.ReadReceipt, error) {
	args := m.Called(ctx, groupID, actorID, lastReadMessageID)
	if args.Get(0) != nil {
		return args.Get(0).([]chatdomain.ReadReceipt), args.Error(1)
	}
	return nil, args.Error(1)
}

// PinMessage mock
func (m *MockGroupService) PinMessage(ctx context.Context, groupID, actorID, msgID string) error {
	args := m.Called(ctx, groupID, actorID, msgID)
	return args.Error(0)
}

// UnpinMessage mock
func (m *MockGroupService) UnpinMessage(ctx context.Context, groupID, actorID string) error {
	args := m.Called(ctx, groupID, actorID)
	return args.Error(0)
}

// MockNotificationService Mock NotificationService
type MockNotificationService struct {
	mock.Mock
}

// Create mock
func (m *MockNotificationService) Create(ctx context.Context, req ntdomain.CreateRequest) (*ntdomain.CreateResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) != nil {
		return args.Get(0).(*ntdomain.CreateResult), args.Error(1)
	}
	return nil, args.Error(1)
}

// Settings mock
func (m *MockNotificationService) Settings(ctx context.Context, userID string) (ntdomain.Settings, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(ntdomain.Settings), args.Error(1)
}

// UpdateSettings mock
func (m *MockNotificationService) UpdateSettings(ctx context.Context, userID string, patch ntdomain.SettingsPatch) (ntdomain.Settings, error) {
	args := m.Called(ctx, userID, patch)
	return args.Get(0).(ntdomain.Settings), args.Error(1)
}

// SendEmail mock
func (m *MockNotificationService) SendEmail(ctx context.Context, req ntdomain.EmailRequest) (*ntdomain.EmailResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) != nil {
		return args.Get(0).(*ntdomain.EmailResult), args.Error(1)
	}
	return nil, args.Error(1)
}

// StubRoster fixed VoiceRosterReader
type StubRoster map[string][]rtdomain.RosterEntry

// VoiceRoster roster of roomID
func (s StubRoster) VoiceRoster(roomID string) []rtdomain.RosterEntry {
	return s[roomID]
}
