package model

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoStore implements Store over a shared *mongo.Client. The driver pools
// connections internally, so one client serves concurrent callers; no
// per-thread handles are needed.
type MongoStore struct {
	client *mongo.Client
}

func NewMongoStore(client *mongo.Client) *MongoStore {
	return &MongoStore{client: client}
}

// collection resolves a binding to a collection handle. This is a pure
// mapping on the client; no network round trip happens here.
func (s *MongoStore) collection(b Binding) *mongo.Collection {
	return s.client.Database(b.Database()).Collection(b.Collection())
}

func (s *MongoStore) FindOne(ctx context.Context, b Binding, id primitive.ObjectID) (bson.Raw, error) {
	raw, err := s.collection(b).FindOne(ctx, bson.M{"_id": id}).Raw()
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("model: find %s/%s: %w", b.Key(), id.Hex(), err)
	}
	return raw, nil
}

func (s *MongoStore) InsertOne(ctx context.Context, b Binding, doc any) (primitive.ObjectID, error) {
	res, err := s.collection(b).InsertOne(ctx, doc)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("model: insert into %s: %w", b.Key(), err)
	}
	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, fmt.Errorf("model: insert into %s: unexpected id type %T", b.Key(), res.InsertedID)
	}
	return oid, nil
}

func (s *MongoStore) ReplaceOne(ctx context.Context, b Binding, id primitive.ObjectID, doc any) error {
	opts := options.Replace().SetUpsert(true)
	if _, err := s.collection(b).ReplaceOne(ctx, bson.M{"_id": id}, doc, opts); err != nil {
		return fmt.Errorf("model: replace %s/%s: %w", b.Key(), id.Hex(), err)
	}
	return nil
}

func (s *MongoStore) DeleteOne(ctx context.Context, b Binding, id primitive.ObjectID) error {
	res, err := s.collection(b).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("model: delete %s/%s: %w", b.Key(), id.Hex(), err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
