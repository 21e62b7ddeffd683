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

// MemberRepository read side of the users collection
type MemberRepository interface {
	FindByID(ctx context.Context, id string) (*domain.Member, error)
}

type memberRepository struct {
	coll *mongo.Collection
}

// NewMongoMemberRepository create MemberRepository
func NewMongoMemberRepository(db *mongo.Database) MemberRepository {
	return &memberRepository{coll: db.Collection("users")}
}

func (r *memberRepository) FindByID(ctx context.Context, id string) (*domain.Member, error) {
	var m domain.Member
	opts := options.FindOne().SetProjection(bson.M{"name": 1, "avatar": 1, "role": 1, "organization_id": 1})
	err := r.coll.FindOne(ctx, bson.M{"_id": id}, opts).Decode(&m)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, errprocess.NotFound("user")
	}
	if err != nil {
		return nil, fmt.Errorf("find user %s: %w", id, err)
	}
	return &m, nil
}
