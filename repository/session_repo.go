package repository

import (
	"context"
	"errors"

	"github.com/geeta-ai/geeta-be/types"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type SessionRepo interface {
	Save(ctx context.Context, state *types.SessionState) error
	Load(ctx context.Context, username string) (*types.SessionState, error)
}

type sessionRepo struct {
	collection *mongo.Collection
}

func NewSessionRepo(collection *mongo.Collection) SessionRepo {
	return &sessionRepo{
		collection: collection,
	}
}

func (r *sessionRepo) Save(ctx context.Context, state *types.SessionState) error {
	_, err := r.collection.ReplaceOne(ctx,
		bson.M{"username": state.Username},
		state,
		options.Replace().SetUpsert(true),
	)
	return err
}

// Load returns nil without error when the user has no saved session.
func (r *sessionRepo) Load(ctx context.Context, username string) (*types.SessionState, error) {
	var state types.SessionState
	err := r.collection.FindOne(ctx, bson.M{"username": username}).Decode(&state)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &state, nil
}
