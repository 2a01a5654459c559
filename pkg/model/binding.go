package model

// Binding names the backing collection for a repository. The pair is fixed
// at construction and immutable for the binding's lifetime.
type Binding struct {
	database   string
	collection string
}

func NewBinding(database, collection string) Binding {
	return Binding{database: database, collection: collection}
}

func (b Binding) Database() string   { return b.database }
func (b Binding) Collection() string { return b.collection }

// Key is the "<database>.<collection>" form used for cache and bucket keys.
func (b Binding) Key() string { return b.database + "." + b.collection }

// resolve overlays the record's own collection binding over the defaults.
// Pure mapping, no I/O.
func (b Binding) resolve(rec CollectionBound) Binding {
	out := b
	if db := rec.Database(); db != "" {
		out.database = db
	}
	if col := rec.Collection(); col != "" {
		out.collection = col
	}
	return out
}
