package repository

import (
	"context"
	"errors"
	"fmt"

	"taskflow_realtime/internal/chat/domain"
	errprocess "taskflow_realtime/pkg/err"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MessageRepository chat_messages collection
type MessageRepository interface {
	Insert(ctx context.Context, msg *domain.ChatMessage) error
	FindByID(ctx context.Context, id string) (*domain.ChatMessage, error)
	UpdateContent(ctx context.Context, id, content string) error
	UpdateReactions(ctx context.Context, id string, reactions []domain.Reaction) error
	Delete(ctx context.Context, id string) error
	ListByChannel(ctx context.Context, channelID string) ([]domain.ChatMessage, error)
}

type chatMessageRepository struct {
	coll *mongo.Collection
}

// NewMongoChatMessageRepository create a MessageRepository
func NewMongoChatMessageRepository(db *mongo.Database) MessageRepository {
	return &chatMessageRepository{
		coll: db.Collection("chat_messages"),
	}
}

// Insert 寫入一筆聊天訊息
func (r *chatMessageRepository) Insert(ctx context.Context, msg *domain.ChatMessage) error {
	_, err := r.coll.InsertOne(ctx, msg)
	return err
}

func (r *chatMessageRepository) FindByID(ctx context.Context, id string) (*domain.ChatMessage, error) {
	var msg domain.ChatMessage
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&msg)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, errprocess.NotFound("message")
	}
	if err != nil {
		return nil, fmt.Errorf("find message %s: %w", id, err)
	}
	return &msg, nil
}

// UpdateContent 修改內容並標記 edited
func (r *chatMessageRepository) UpdateContent(ctx context.Context, id, content string) error {
	update := bson.M{"$set": bson.M{"content": content, "edited": true}}
	return r.updateOne(ctx, id, update)
}

func (r *chatMessageRepository) UpdateReactions(ctx context.Context, id string, reactions []domain.Reaction) error {
	if reactions == nil {
		reactions = []domain.Reaction{}
	}
	return r.updateOne(ctx, id, bson.M{"$set": bson.M{"reactions": reactions}})
}

func (r *chatMessageRepository) Delete(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete message %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return errprocess.NotFound("message")
	}
	return nil
}

// ListByChannel 依 created_at 升序
func (r *chatMessageRepository) ListByChannel(ctx context.Context, channelID string) ([]domain.ChatMessage, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cur, err := r.coll.Find(ctx, bson.M{"channel_id": channelID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list messages %s: %w", channelID, err)
	}
	messages := []domain.ChatMessage{}
	if err := cur.All(ctx, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

func (r *chatMessageRepository) updateOne(ctx context.Context, id string, update bson.M) error {
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return fmt.Errorf("update message %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return errprocess.NotFound("message")
	}
	return nil
}
