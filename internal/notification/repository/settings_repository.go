package repository

import (
	"context"
	"errors"
	"fmt"

	"taskflow_realtime/internal/notification/domain"
	errprocess "taskflow_realtime/pkg/err"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// RecipientRepository notification view of the users collection
type RecipientRepository interface {
	FindRecipient(ctx context.Context, userID string) (*domain.Recipient, error)
	UpdateSettings(ctx context.Context, userID string, settings domain.Settings) error
}

type recipientRepository struct {
	coll *mongo.Collection
}

// NewMongoRecipientRepository create RecipientRepository
func NewMongoRecipientRepository(db *mongo.Database) RecipientRepository {
	return &recipientRepository{coll: db.Collection("users")}
}

func (r *recipientRepository) FindRecipient(ctx context.Context, userID string) (*domain.Recipient, error) {
	var rec domain.Recipient
	opts := options.FindOne().SetProjection(bson.M{"name": 1, "email": 1, "notification_settings": 1})
	err := r.coll.FindOne(ctx, bson.M{"_id": userID}, opts).Decode(&rec)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, errprocess.NotFound("user")
	}
	if err != nil {
		return nil, fmt.Errorf("find recipient %s: %w", userID, err)
	}
	return &rec, nil
}

func (r *recipientRepository) UpdateSettings(ctx context.Context, userID string, settings domain.Settings) error {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": userID},
		bson.M{"$set": bson.M{"notification_settings": settings}},
	)
	if err != nil {
		return fmt.Errorf("update settings %s: %w", userID, err)
	}
	if res.MatchedCount == 0 {
		return errprocess.NotFound("user")
	}
	return nil
}
