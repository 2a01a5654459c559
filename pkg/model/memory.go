package model

import (
	"context"
	"fmt"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryStore is an in-memory Store used by tests and by services that
// start without a MongoDB connection. Documents round-trip through BSON so
// struct tags behave exactly as they would against the real store.
type MemoryStore struct {
	mu   sync.RWMutex
	docs map[string]map[primitive.ObjectID]bson.Raw
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{docs: make(map[string]map[primitive.ObjectID]bson.Raw)}
}

func (s *MemoryStore) bucket(b Binding) map[primitive.ObjectID]bson.Raw {
	m, ok := s.docs[b.Key()]
	if !ok {
		m = make(map[primitive.ObjectID]bson.Raw)
		s.docs[b.Key()] = m
	}
	return m
}

// marshalWithID encodes doc and forces its _id to id, the way the server
// would store it.
func marshalWithID(doc any, id primitive.ObjectID) (bson.Raw, error) {
	raw, err := bson.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("model: encode document: %w", err)
	}
	var m bson.M
	if err := bson.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("model: re-encode document: %w", err)
	}
	m["_id"] = id
	out, err := bson.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("model: re-encode document: %w", err)
	}
	return bson.Raw(out), nil
}

func (s *MemoryStore) FindOne(ctx context.Context, b Binding, id primitive.ObjectID) (bson.Raw, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	raw, ok := s.docs[b.Key()][id]
	if !ok {
		return nil, ErrNotFound
	}
	return raw, nil
}

func (s *MemoryStore) InsertOne(ctx context.Context, b Binding, doc any) (primitive.ObjectID, error) {
	id := primitive.NewObjectID()
	// honor a caller-supplied _id the way the server does
	if raw, err := bson.Marshal(doc); err == nil {
		if v, lerr := bson.Raw(raw).LookupErr("_id"); lerr == nil {
			if oid, ok := v.ObjectIDOK(); ok && !oid.IsZero() {
				id = oid
			}
		}
	}
	rec, err := marshalWithID(doc, id)
	if err != nil {
		return primitive.NilObjectID, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bucket(b)[id] = rec
	return id, nil
}

func (s *MemoryStore) ReplaceOne(ctx context.Context, b Binding, id primitive.ObjectID, doc any) error {
	rec, err := marshalWithID(doc, id)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bucket(b)[id] = rec
	return nil
}

func (s *MemoryStore) DeleteOne(ctx context.Context, b Binding, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	m := s.docs[b.Key()]
	if _, ok := m[id]; !ok {
		return ErrNotFound
	}
	delete(m, id)
	return nil
}
