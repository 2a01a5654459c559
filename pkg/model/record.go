package model

import "go.mongodb.org/mongo-driver/bson/primitive"

// Identifiable is satisfied by domain values keyed by a 12-byte ObjectID.
// A zero identifier means the value has not been persisted yet.
type Identifiable interface {
	ID() primitive.ObjectID
	SetID(primitive.ObjectID)
}

// CollectionBound lets a domain value name its own backing collection.
// Empty return values fall back to the binding the repository was
// constructed with. Implementations must not perform I/O.
type CollectionBound interface {
	Database() string
	Collection() string
}

// Record is what a repository persists: an identifiable domain value that
// knows (or inherits) its collection binding.
type Record interface {
	Identifiable
	CollectionBound
}
