package app

import (
	"context"

	"taskflow_realtime/internal/notification/domain"
	rtdomain "taskflow_realtime/internal/realtime/domain"

	"github.com/stretchr/testify/mock"
)

// MockRecipientRepository Mock RecipientRepository
type MockRecipientRepository struct {
	mock.Mock
}

// FindRecipient mock lookup
func (m *MockRecipientRepository) FindRecipient(ctx context.Context, userID string) (*domain.Recipient, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) != nil {
		return args.Get(0).(*domain.Recipient), args.Error(1)
	}
	return nil, args.Error(1)
}

// UpdateSettings mock update
func (m *MockRecipientRepository) UpdateSettings(ctx context.Context, userID string, settings domain.Settings) error {
	args := m.Called(ctx, userID, settings)
	return args.Error(0)
}

// MockUserEmitter Mock UserEmitter
type MockUserEmitter struct {
	mock.Mock
}

// EmitToUser mock push
func (m *MockUserEmitter) EmitToUser(ctx context.Context, userID string, event rtdomain.Event, data interface{}) {
	m.Called(ctx, userID, event, data)
}

// MockMailer Mock mailer.Mailer
type MockMailer struct {
	mock.Mock
}

// Send mock send
func (m *MockMailer) Send(ctx context.Context, to, subject, body string) (string, error) {
	args := m.Called(ctx, to, subject, body)
	return args.String(0), args.Error(1)
}

// Close mock close
func (m *MockMailer) Close() error {
	args := m.Called()
	return args.Error(0)
}
