package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/fadilarbi/todo-offline/internal/core/domain"
)

const (
	sessionCollection = "sessions"
	// One session per store: a fixed document id keeps the collection a
	// single upserted row.
	sessionDocID = "current"
)

type MongoSessionStore struct {
	coll *mongo.Collection
}

func NewSessionStore(db *mongo.Database) *MongoSessionStore {
	return &MongoSessionStore{coll: db.Collection(sessionCollection)}
}

type mongoSession struct {
	ID        string    `bson:"_id"`
	User      mongoUser `bson:"user"`
	StartedAt int64     `bson:"started_at"`
}

func (s *MongoSessionStore) Current(ctx context.Context) (*domain.Session, error) {
	var ms mongoSession
	if err := s.coll.FindOne(ctx, bson.M{"_id": sessionDocID}).Decode(&ms); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrNoSession
		}
		return nil, fmt.Errorf("find session: %w", err)
	}
	return &domain.Session{
		User:      *ms.User.toDomain(),
		StartedAt: unixToTime(ms.StartedAt),
	}, nil
}

func (s *MongoSessionStore) Set(ctx context.Context, sess *domain.Session) error {
	doc := mongoSession{
		ID: sessionDocID,
		User: mongoUser{
			ID:           sess.User.ID,
			Name:         sess.User.Name,
			Email:        sess.User.Email,
			PasswordHash: sess.User.PasswordHash,
			CreatedAt:    sess.User.CreatedAt.Unix(),
		},
		StartedAt: sess.StartedAt.Unix(),
	}

	opts := options.Replace().SetUpsert(true)
	if _, err := s.coll.ReplaceOne(ctx, bson.M{"_id": sessionDocID}, doc, opts); err != nil {
		return fmt.Errorf("set session: %w", err)
	}
	return nil
}

func (s *MongoSessionStore) Clear(ctx context.Context) error {
	if _, err := s.coll.DeleteOne(ctx, bson.M{"_id": sessionDocID}); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
