package cascade

import (
	"sync"

	"github.com/jacentio/stockroom/store"
)

// Kind is the declared shape of a field.
type Kind int

const (
	// KindPlain is an inline value stored in the entity's own item.
	KindPlain Kind = iota

	// KindRef holds a single entity.
	KindRef

	// KindRefCollection holds an ordered collection of entities of one type.
	KindRefCollection
)

func (k Kind) String() string {
	switch k {
	case KindPlain:
		return "plain"
	case KindRef:
		return "ref"
	case KindRefCollection:
		return "ref-collection"
	default:
		return "unknown"
	}
}

// Marker is a bitmask of field markers.
type Marker uint8

const (
	// MarkRef declares that the field's value lives in another item and
	// only its key is stored in the parent.
	MarkRef Marker = 1 << iota

	// MarkCascadeSave declares that the field's value is saved before the parent.
	MarkCascadeSave
)

// Has reports whether all bits of m are set.
func (mk Marker) Has(m Marker) bool {
	return mk&m == m
}

// Field describes one field of an entity type.
type Field struct {
	// Name is the field's attribute name (e.g., "articles").
	Name string

	// Kind is the field's declared shape.
	Kind Kind

	// Markers are the field's markers. Only fields carrying both MarkRef
	// and MarkCascadeSave are cascaded.
	Markers Marker

	// Target is the EntityType of the referenced entities.
	Target string

	// One returns the referenced entity of a KindRef field.
	// It must return a nil interface, not a typed nil, when the field is empty.
	One func(store.Entity) store.Entity

	// Many returns the referenced entities of a KindRefCollection field.
	Many func(store.Entity) []store.Entity
}

// Schema is the static field table of one entity type.
type Schema struct {
	// EntityType matches store.Entity.EntityType of the described type.
	EntityType string

	// Fields lists the type's fields in declaration order.
	Fields []Field
}

// Registry holds the schemas of all entity types that may carry references.
type Registry struct {
	mu      sync.RWMutex
	schemas []Schema
	byType  map[string]int
}

// NewRegistry creates a new empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		schemas: []Schema{},
		byType:  make(map[string]int),
	}
}

// Register adds a schema to the registry, replacing any earlier schema
// for the same entity type.
// This should be called during init() for each entity type.
func (r *Registry) Register(s Schema) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if i, ok := r.byType[s.EntityType]; ok {
		r.schemas[i] = s
		return
	}
	r.byType[s.EntityType] = len(r.schemas)
	r.schemas = append(r.schemas, s)
}

// SchemaOf returns the schema registered for an entity type.
func (r *Registry) SchemaOf(entityType string) (Schema, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i, ok := r.byType[entityType]
	if !ok {
		return Schema{}, false
	}
	return r.schemas[i], true
}

// Schemas returns all registered schemas in registration order.
func (r *Registry) Schemas() []Schema {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]Schema(nil), r.schemas...)
}

// HasReferences returns true if the entity type declares any cascaded field.
func (r *Registry) HasReferences(entityType string) bool {
	s, ok := r.SchemaOf(entityType)
	if !ok {
		return false
	}
	for _, f := range s.Fields {
		if classify(f) != ClassPlain {
			return true
		}
	}
	return false
}

// DefaultRegistry is the registry used by package-level Register.
var DefaultRegistry = NewRegistry()

// Register adds a schema to DefaultRegistry.
func Register(s Schema) {
	DefaultRegistry.Register(s)
}
