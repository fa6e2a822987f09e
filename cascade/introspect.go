package cascade

import "github.com/jacentio/stockroom/store"

// Class is how the engine treats a field.
type Class int

const (
	// ClassPlain fields are never touched.
	ClassPlain Class = iota

	// ClassOwnedRef fields hold one entity saved before the parent.
	ClassOwnedRef

	// ClassOwnedRefCollection fields hold entities saved before the parent, one by one.
	ClassOwnedRefCollection
)

func (c Class) String() string {
	switch c {
	case ClassPlain:
		return "plain"
	case ClassOwnedRef:
		return "owned-ref"
	case ClassOwnedRefCollection:
		return "owned-ref-collection"
	default:
		return "unknown"
	}
}

// FieldInfo is a field together with its classification.
type FieldInfo struct {
	Field
	Class Class
}

// Introspect classifies every declared field of the entity's type.
// Types with no registered schema have no fields to report.
func (r *Registry) Introspect(entity store.Entity) ([]FieldInfo, error) {
	entityType := entity.EntityType()
	s, ok := r.SchemaOf(entityType)
	if !ok {
		return nil, nil
	}

	infos := make([]FieldInfo, 0, len(s.Fields))
	for _, f := range s.Fields {
		if f.Name == "" {
			return nil, &IntrospectionError{EntityType: entityType, Reason: "field has no name"}
		}
		class := classify(f)
		if err := validate(entityType, f, class); err != nil {
			return nil, err
		}
		infos = append(infos, FieldInfo{Field: f, Class: class})
	}
	return infos, nil
}

// classify requires both markers; a reference kind with only one is plain.
func classify(f Field) Class {
	if !f.Markers.Has(MarkRef | MarkCascadeSave) {
		return ClassPlain
	}
	switch f.Kind {
	case KindRef:
		return ClassOwnedRef
	case KindRefCollection:
		return ClassOwnedRefCollection
	default:
		return ClassPlain
	}
}

func validate(entityType string, f Field, class Class) error {
	switch class {
	case ClassOwnedRef:
		if f.Target == "" {
			return &IntrospectionError{EntityType: entityType, Field: f.Name, Reason: "referenced type is not declared"}
		}
		if f.One == nil {
			return &IntrospectionError{EntityType: entityType, Field: f.Name, Reason: "no accessor for single reference"}
		}
	case ClassOwnedRefCollection:
		if f.Target == "" {
			return &IntrospectionError{EntityType: entityType, Field: f.Name, Reason: "element type is not declared"}
		}
		if f.Many == nil {
			return &IntrospectionError{EntityType: entityType, Field: f.Name, Reason: "no accessor for reference collection"}
		}
	}
	return nil
}
