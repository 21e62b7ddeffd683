package repository

import (
	"context"
	"errors"
	"time"

	"taskflow_realtime/internal/notification/domain"
	"taskflow_realtime/pkg/database"
	"taskflow_realtime/pkg/logger"

	"go.uber.org/zap"
)

const recipientKeyPrefix = "notification:recipient:"

type cachedRecipientRepository struct {
	next  RecipientRepository
	cache database.RedisRepository[domain.Recipient]
	ttl   time.Duration
}

// NewCachedRecipientRepository read-through redis cache in front of next.
// cache errors degrade to a direct read, never fail the call
func NewCachedRecipientRepository(next RecipientRepository, cache database.RedisRepository[domain.Recipient], ttl time.Duration) RecipientRepository {
	return &cachedRecipientRepository{next: next, cache: cache, ttl: ttl}
}

func recipientKey(userID string) string {
	return recipientKeyPrefix + userID
}

func (r *cachedRecipientRepository) FindRecipient(ctx context.Context, userID string) (*domain.Recipient, error) {
	rec, err := r.cache.Get(ctx, recipientKey(userID))
	if err == nil {
		return &rec, nil
	}
	if !errors.Is(err, database.ErrCacheMiss) {
		logger.Log.Warn("recipient cache get", zap.String("user_id", userID), zap.Error(err))
	}

	found, err := r.next.FindRecipient(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := r.cache.Set(ctx, recipientKey(userID), *found, r.ttl); err != nil {
		logger.Log.Warn("recipient cache set", zap.String("user_id", userID), zap.Error(err))
	}
	return found, nil
}

func (r *cachedRecipientRepository) UpdateSettings(ctx context.Context, userID string, settings domain.Settings) error {
	if err := r.next.UpdateSettings(ctx, userID, settings); err != nil {
		return err
	}
	if err := r.cache.Del(ctx, recipientKey(userID)); err != nil {
		logger.Log.Warn("recipient cache del", zap.String("user_id", userID), zap.Error(err))
	}
	return nil
}
