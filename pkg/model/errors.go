package model

import "errors"

var (
	// ErrInvalidID reports an identifier string that does not decode to a
	// 12-byte ObjectID. The store is never called in this case.
	ErrInvalidID = errors.New("model: invalid identifier")

	// ErrNotFound reports a lookup or removal targeting a document that
	// does not exist in the bound collection.
	ErrNotFound = errors.New("model: record not found")
)
