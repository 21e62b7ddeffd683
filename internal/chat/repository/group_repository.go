package repository

import (
	"context"
	"errors"
	"fmt"

	"taskflow_realtime/internal/chat/domain"
	errprocess "taskflow_realtime/pkg/err"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// GroupRepository groups collection
type GroupRepository interface {
	Create(ctx context.Context, group *domain.Group) error
	FindByID(ctx context.Context, id string) (*domain.Group, error)
	UpdatePinned(ctx context.Context, id string, msgID *string) error
	UpdateReadReceipts(ctx context.Context, id string, receipts []domain.ReadReceipt) error
}

type groupRepository struct {
	coll *mongo.Collection
}

// NewMongoGroupRepository create GroupRepository
func NewMongoGroupRepository(db *mongo.Database) GroupRepository {
	return &groupRepository{coll: db.Collection("groups")}
}

func (r *groupRepository) Create(ctx context.Context, group *domain.Group) error {
	_, err := r.coll.InsertOne(ctx, group)
	return err
}

func (r *groupRepository) FindByID(ctx context.Context, id string) (*domain.Group, error) {
	var group domain.Group
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&group)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, errprocess.NotFound("group")
	}
	if err != nil {
		return nil, fmt.Errorf("find group %s: %w", id, err)
	}
	return &group, nil
}

// UpdatePinned nil msgID clears the pin
func (r *groupRepository) UpdatePinned(ctx context.Context, id string, msgID *string) error {
	return r.set(ctx, id, bson.M{"pinned_message_id": msgID})
}

func (r *groupRepository) UpdateReadReceipts(ctx context.Context, id string, receipts []domain.ReadReceipt) error {
	return r.set(ctx, id, bson.M{"last_read_by": receipts})
}

func (r *groupRepository) set(ctx context.Context, id string, fields bson.M) error {
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	if err != nil {
		return fmt.Errorf("update group %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return errprocess.NotFound("group")
	}
	return nil
}
