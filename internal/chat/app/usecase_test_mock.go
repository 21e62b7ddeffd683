package app

import (
	"context"

	"taskflow_realtime/internal/chat/domain"
	rtdomain "taskflow_realtime/internal/realtime/domain"

	"github.com/stretchr/testify/mock"
)

// MockGroupRepository Mock GroupRepository
type MockGroupRepository struct {
	mock.Mock
}

// Create mock create group
func (m *MockGroupRepository) Create(ctx context.Context, group *domain.Group) error {
	args := m.Called(ctx, group)
	return args.Error(0)
}

// FindByID mock find group by id
func (m *MockGroupRepository) FindByID(ctx context.Context, id string) (*domain.Group, error) {
	args := m.Called(ctx, id)
	if args.Get(0) != nil {
		return args.Get(0).(*domain.Group), args.Error(1)
	}
	return nil, args.Error(1)
}

// UpdatePinned mock update pin
func (m *MockGroupRepository) UpdatePinned(ctx context.Context, id string, msgID *string) error {
	args := m.Called(ctx, id, msgID)
	return args.Error(0)
}

// UpdateReadReceipts mock update receipts
func (m *MockGroupRepository) UpdateReadReceipts(ctx context.Context, id string, receipts []domain.ReadReceipt) error {
	args := m.Called(ctx, id, receipts)
	return args.Error(0)
}

// MockMessageRepository Mock MessageRepository
type MockMessageRepository struct {
	mock.Mock
}

// Insert mock insert msg
func (m *MockMessageRepository) Insert(ctx context.Context, msg *domain.ChatMessage) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

// FindByID mock find msg
func (m *MockMessageRepository) FindByID(ctx context.Context, id string) (*domain.ChatMessage, error) {
	args := m.Called(ctx, id)
	if args.Get(0) != nil {
		return args.Get(0).(*domain.ChatMessage), args.Error(1)
	}
	return nil, args.Error(1)
}

// UpdateContent mock edit
func (m *MockMessageRepository) UpdateContent(ctx context.Context, id, content string) error {
	args := m.Called(ctx, id, content)
	return args.Error(0)
}

// UpdateReactions mock reactions
func (m *MockMessageRepository) UpdateReactions(ctx context.Context, id string, reactions []domain.Reaction) error {
	args := m.Called(ctx, id, reactions)
	return args.Error(0)
}

// Delete mock delete
func (m *MockMessageRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// ListByChannel mock list
func (m *MockMessageRepository) ListByChannel(ctx context.Context, channelID string) ([]domain.ChatMessage, error) {
	args := m.Called(ctx, channelID)
	if args.Get(0) != nil {
		return args.Get(0).([]domain.ChatMessage), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockMemberRepository Mock MemberRepository
type MockMemberRepository struct {
	mock.Mock
}

// FindByID mock find user
func (m *MockMemberRepository) FindByID(ctx context.Context, id string) (*domain.Member, error) {
	args := m.Called(ctx, id)
	if args.Get(0) != nil {
		return args.Get(0).(*domain.Member), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockRoomEmitter Mock RoomEmitter
type MockRoomEmitter struct {
	mock.Mock
}

// EmitToRoom mock emit
func (m *MockRoomEmitter) EmitToRoom(ctx context.Context, roomID string, event rtdomain.Event, data interface{}) {
	m.Called(ctx, roomID, event, data)
}
