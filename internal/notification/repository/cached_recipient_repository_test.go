package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"taskflow_realtime/internal/notification/domain"
	"taskflow_realtime/pkg/database"
	errprocess "taskflow_realtime/pkg/err"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockRecipientRepository struct {
	mock.Mock
}

func (m *mockRecipientRepository) FindRecipient(ctx context.Context, userID string) (*domain.Recipient, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) != nil {
		return args.Get(0).(*domain.Recipient), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRecipientRepository) UpdateSettings(ctx context.Context, userID string, settings domain.Settings) error {
	args := m.Called(ctx, userID, settings)
	return args.Error(0)
}

type mockRecipientCache struct {
	mock.Mock
}

func (m *mockRecipientCache) Set(ctx context.Context, key string, value domain.Recipient, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *mockRecipientCache) Get(ctx context.Context, key string) (domain.Recipient, error) {
	args := m.Called(ctx, key)
	return args.Get(0).(domain.Recipient), args.Error(1)
}

func (m *mockRecipientCache) Del(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

var _ database.RedisRepository[domain.Recipient] = (*mockRecipientCache)(nil)

func TestCachedRecipient_Hit(t *testing.T) {
	ctx := context.Background()
	next := new(mockRecipientRepository)
	cache := new(mockRecipientCache)
	cache.On("Get", ctx, "notification:recipient:u1").Return(domain.Recipient{ID: "u1", Email: "a@b.c"}, nil)

	repo := NewCachedRecipientRepository(next, cache, time.Minute)
	rec, err := repo.FindRecipient(ctx, "u1")

	require.NoError(t, err)
	assert.Equal(t, "a@b.c", rec.Email)
	next.AssertNotCalled(t, "FindRecipient", mock.Anything, mock.Anything)
}

func TestCachedRecipient_MissFillsCache(t *testing.T) {
	ctx := context.Background()
	next := new(mockRecipientRepository)
	cache := new(mockRecipientCache)
	stored := &domain.Recipient{ID: "u1", Name: "Ann"}

	cache.On("Get", ctx, "notification:recipient:u1").Return(domain.Recipient{}, database.ErrCacheMiss)
	next.On("FindRecipient", ctx, "u1").Return(stored, nil)
	cache.On("Set", ctx, "notification:recipient:u1", *stored, time.Minute).Return(nil)

	repo := NewCachedRecipientRepository(next, cache, time.Minute)
	rec, err := repo.FindRecipient(ctx, "u1")

	require.NoError(t, err)
	assert.Equal(t, "Ann", rec.Name)
	cache.AssertExpectations(t)
}

func TestCachedRecipient_CacheDownFallsThrough(t *testing.T) {
	ctx := context.Background()
	next := new(mockRecipientRepository)
	cache := new(mockRecipientCache)

	cache.On("Get", ctx, mock.Anything).Return(domain.Recipient{}, errors.New("dial tcp: refused"))
	cache.On("Set", ctx, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("dial tcp: refused"))
	next.On("FindRecipient", ctx, "u1").Return(&domain.Recipient{ID: "u1"}, nil)

	repo := NewCachedRecipientRepository(next, cache, time.Minute)
	rec, err := repo.FindRecipient(ctx, "u1")

	require.NoError(t, err)
	assert.Equal(t, "u1", rec.ID)
}

func TestCachedRecipient_NotFoundNotCached(t *testing.T) {
	ctx := context.Background()
	next := new(mockRecipientRepository)
	cache := new(mockRecipientCache)

	cache.On("Get", ctx, mock.Anything).Return(domain.Recipient{}, database.ErrCacheMiss)
	next.On("FindRecipient", ctx, "ghost").Return(nil, errprocess.NotFound("user"))

	repo := NewCachedRecipientRepository(next, cache, time.Minute)
	_, err := repo.FindRecipient(ctx, "ghost")

	assert.ErrorIs(t, err, errprocess.ErrNotFound)
	cache.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCachedRecipient_UpdateInvalidates(t *testing.T) {
	ctx := context.Background()
	next := new(mockRecipientRepository)
	cache := new(mockRecipientCache)
	s := domain.DefaultSettings()

	next.On("UpdateSettings", ctx, "u1", s).Return(nil)
	cache.On("Del", ctx, "notification:recipient:u1").Return(nil)

	repo := NewCachedRecipientRepository(next, cache, time.Minute)
	require.NoError(t, repo.UpdateSettings(ctx, "u1", s))
	cache.AssertExpectations(t)
}

func TestCachedRecipient_UpdateFailureKeepsCache(t *testing.T) {
	ctx := context.Background()
	next := new(mockRecipientRepository)
	cache := new(mockRecipientCache)
	s := domain.DefaultSettings()

	next.On("UpdateSettings", ctx, "u1", s).Return(errprocess.NotFound("user"))

	repo := NewCachedRecipientRepository(next, cache, time.Minute)
	assert.ErrorIs(t, repo.UpdateSettings(ctx, "u1", s), errprocess.ErrNotFound)
	cache.AssertNotCalled(t, "Del", mock.Anything, mock.Anything)
}
