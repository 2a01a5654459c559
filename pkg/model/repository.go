package model

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/sagacious/sagacious/pkg/metrics"
)

// Repository provides identifier-keyed persistence for records against a
// Store. The binding captured at construction supplies default database and
// collection names; records override them through CollectionBound.
type Repository struct {
	store   Store
	binding Binding
}

func NewRepository(store Store, binding Binding) *Repository {
	return &Repository{store: store, binding: binding}
}

// Get looks up the record whose identifier equals id and decodes it into
// rec. id must be a hex-encoded 12-byte ObjectID, otherwise ErrInvalidID is
// returned and the store is never called. An absent document is reported as
// ErrNotFound, never as a zero-valued record.
func (r *Repository) Get(ctx context.Context, id string, rec Record) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		metrics.StoreOps.WithLabelValues("get", "invalid_id").Inc()
		return fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	b := r.binding.resolve(rec)
	raw, err := r.store.FindOne(ctx, b, oid)
	if err != nil {
		metrics.StoreOps.WithLabelValues("get", outcome(err)).Inc()
		return err
	}
	if err := bson.Unmarshal(raw, rec); err != nil {
		metrics.StoreOps.WithLabelValues("get", "error").Inc()
		return fmt.Errorf("model: decode %s/%s: %w", b.Key(), oid.Hex(), err)
	}
	rec.SetID(oid)
	metrics.StoreOps.WithLabelValues("get", "ok").Inc()
	return nil
}

// Save persists rec as a single atomic document operation: an insert when
// rec carries no identifier yet (the assigned id is written back to rec), a
// replace-with-upsert keyed by the identifier otherwise.
func (r *Repository) Save(ctx context.Context, rec Record) error {
	b := r.binding.resolve(rec)
	if rec.ID().IsZero() {
		id, err := r.store.InsertOne(ctx, b, rec)
		if err != nil {
			metrics.StoreOps.WithLabelValues("save", "error").Inc()
			return err
		}
		rec.SetID(id)
		metrics.StoreOps.WithLabelValues("save", "ok").Inc()
		return nil
	}
	if err := r.store.ReplaceOne(ctx, b, rec.ID(), rec); err != nil {
		metrics.StoreOps.WithLabelValues("save", "error").Inc()
		return err
	}
	metrics.StoreOps.WithLabelValues("save", "ok").Inc()
	return nil
}

// Remove deletes rec's document by identifier. ErrNotFound is returned when
// rec carries no identifier or the document no longer exists.
func (r *Repository) Remove(ctx context.Context, rec Record) error {
	if rec.ID().IsZero() {
		metrics.StoreOps.WithLabelValues("remove", "not_found").Inc()
		return ErrNotFound
	}
	b := r.binding.resolve(rec)
	err := r.store.DeleteOne(ctx, b, rec.ID())
	metrics.StoreOps.WithLabelValues("remove", outcome(err)).Inc()
	return err
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	default:
		return "error"
	}
}
