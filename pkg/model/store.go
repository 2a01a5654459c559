package model

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Store is the document-store port a repository runs against.
// Implementations must return ErrNotFound for absent documents and wrap
// transport failures; errors are never swallowed into empty results.
type Store interface {
	// FindOne returns the raw document whose _id equals id.
	FindOne(ctx context.Context, b Binding, id primitive.ObjectID) (bson.Raw, error)

	// InsertOne stores doc as a new document and returns the identifier
	// the store assigned.
	InsertOne(ctx context.Context, b Binding, doc any) (primitive.ObjectID, error)

	// ReplaceOne upserts doc under id as a single atomic operation.
	ReplaceOne(ctx context.Context, b Binding, id primitive.ObjectID, doc any) error

	// DeleteOne removes the document under id, ErrNotFound when absent.
	DeleteOne(ctx context.Context, b Binding, id primitive.ObjectID) error
}
