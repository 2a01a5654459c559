package note

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Note is the reference record persisted through the model repository.
type Note struct {
	OID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name"`
	Content   string             `bson:"content,omitempty" json:"content,omitempty"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

func (n *Note) ID() primitive.ObjectID      { return n.OID }
func (n *Note) SetID(id primitive.ObjectID) { n.OID = id }

// Database is empty: notes live in whatever database the repository was
// bound to at construction.
func (n *Note) Database() string   { return "" }
func (n *Note) Collection() string { return "notes" }
