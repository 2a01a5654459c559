package model

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CachedStore decorates a Store with a Redis read-through cache of raw
// documents. Keys have the form "<prefix><database>.<collection>:<hex id>".
// Reads populate the cache with the configured TTL; writes and deletes
// invalidate. Cache failures degrade to a plain store call, they are never
// surfaced as store errors.
type CachedStore struct {
	next   Store
	client *redis.Client
	prefix string
	ttl    time.Duration
}

func NewCachedStore(next Store, client *redis.Client, prefix string, ttl time.Duration) *CachedStore {
	if prefix == "" {
		prefix = "rec:"
	}
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &CachedStore{next: next, client: client, prefix: prefix, ttl: ttl}
}

func (s *CachedStore) key(b Binding, id primitive.ObjectID) string {
	return s.prefix + b.Key() + ":" + id.Hex()
}

func (s *CachedStore) FindOne(ctx context.Context, b Binding, id primitive.ObjectID) (bson.Raw, error) {
	buf, err := s.client.Get(ctx, s.key(b, id)).Bytes()
	if err == nil {
		return bson.Raw(buf), nil
	}
	// redis.Nil is a plain miss; any other cache failure degrades to a store read
	raw, err := s.next.FindOne(ctx, b, id)
	if err != nil {
		return nil, err
	}
	_ = s.client.Set(ctx, s.key(b, id), []byte(raw), s.ttl).Err()
	return raw, nil
}

func (s *CachedStore) InsertOne(ctx context.Context, b Binding, doc any) (primitive.ObjectID, error) {
	id, err := s.next.InsertOne(ctx, b, doc)
	if err != nil {
		return primitive.NilObjectID, err
	}
	_ = s.client.Del(ctx, s.key(b, id)).Err()
	return id, nil
}

func (s *CachedStore) ReplaceOne(ctx context.Context, b Binding, id primitive.ObjectID, doc any) error {
	if err := s.next.ReplaceOne(ctx, b, id, doc); err != nil {
		return err
	}
	return s.invalidate(ctx, b, id)
}

func (s *CachedStore) DeleteOne(ctx context.Context, b Binding, id primitive.ObjectID) error {
	err := s.next.DeleteOne(ctx, b, id)
	_ = s.invalidate(ctx, b, id)
	return err
}

func (s *CachedStore) invalidate(ctx context.Context, b Binding, id primitive.ObjectID) error {
	return s.client.Del(ctx, s.key(b, id)).Err()
}
