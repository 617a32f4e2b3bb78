package domain

import orderedmap "github.com/wk8/go-ordered-map/v2"

// Attributes is the ordered structural view of a Record: field name to field value.
type Attributes = orderedmap.OrderedMap[string, any]

// Mapping is an ordered key/value container. Both keys and values are walked.
type Mapping = orderedmap.OrderedMap[any, any]

// Tuple is a fixed-size sequence. It is walked like a slice and keeps its type when rebuilt.
type Tuple []any

// NewAttributes returns an empty attribute view.
func NewAttributes() *Attributes {
	return orderedmap.New[string, any]()
}

// NewMapping returns an empty ordered mapping.
func NewMapping() *Mapping {
	return orderedmap.New[any, any]()
}

// Record is a value with a structural attribute view.
// Build must return a new value and must not mutate any other record.
type Record interface {
	// Type is the tag of the concrete kind, e.g. "process_run".
	Type() string

	// Attributes returns a fresh ordered view of the record's fields.
	Attributes() *Attributes

	// Build reconstructs an equivalent record of the same kind from attrs.
	Build(attrs *Attributes) (Record, error)
}

// Entity is a Record that takes part in the reachability graph.
type Entity interface {
	Record

	// UIDs returns the live identifier map. Never nil.
	UIDs() *UIDs

	// AddUID sets the identifier for scope.
	AddUID(scope, id string)

	// Skip lists the back-reference fields, by attribute name.
	Skip() []string
}

// Lookup resolves a (lowercased scope, id) pair into a live entity.
type Lookup interface {
	Get(scope, id string) (Entity, bool)
}
