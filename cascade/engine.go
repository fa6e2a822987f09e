package cascade

import (
	"context"
	"log/slog"

	"github.com/jacentio/stockroom/store"
)

// Engine saves an entity's owned references before the entity itself.
// It implements store.Hook.
type Engine struct {
	registry *Registry
	logger   *slog.Logger
}

// NewEngine creates an engine over registry. A nil registry means
// DefaultRegistry; a nil logger means slog.Default().
func NewEngine(registry *Registry, logger *slog.Logger) *Engine {
	if registry == nil {
		registry = DefaultRegistry
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		registry: registry,
		logger:   logger,
	}
}

// pending is one referenced entity waiting to be written.
type pending struct {
	field  string
	index  int
	entity store.Entity
}

// BeforeSave implements store.Hook.
func (e *Engine) BeforeSave(ctx context.Context, w store.Writer, entity store.Entity) error {
	return e.Cascade(ctx, w, entity)
}

// Cascade writes every entity referenced by an owned-reference field of
// entity through w, one at a time, in field then element order.
//
// A failed write does not stop the remaining ones; all failures are
// returned together as *Error. Entities already written stay written.
// Referenced entities are written with w.Put, so their own references
// are never followed.
func (e *Engine) Cascade(ctx context.Context, w store.Writer, entity store.Entity) error {
	fields, err := e.registry.Introspect(entity)
	if err != nil {
		return err
	}

	refs, err := plan(entity, fields)
	if err != nil {
		return err
	}
	if len(refs) == 0 {
		return nil
	}

	entityRef := entity.EntityRef()
	e.logger.Info("cascading save",
		"entityRef", entityRef,
		"references", len(refs),
	)

	var failures []*ReferenceSaveError
	for _, ref := range refs {
		if err := w.Put(ctx, ref.entity); err != nil {
			e.logger.Warn("failed to save referenced entity",
				"entityRef", entityRef,
				"field", ref.field,
				"ref", ref.entity.EntityRef(),
				"error", err,
			)
			failures = append(failures, &ReferenceSaveError{
				Field: ref.field,
				Index: ref.index,
				Ref:   ref.entity.EntityRef(),
				Err:   err,
			})
		}
	}

	if len(failures) > 0 {
		return &Error{EntityRef: entityRef, Failures: failures}
	}
	return nil
}

// plan reads the owned-reference fields and checks every referenced
// entity's type before anything is written.
func plan(entity store.Entity, fields []FieldInfo) ([]pending, error) {
	var refs []pending
	for _, f := range fields {
		switch f.Class {
		case ClassOwnedRef:
			ref := f.One(entity)
			if ref == nil {
				continue
			}
			if err := checkTarget(entity, f, ref); err != nil {
				return nil, err
			}
			refs = append(refs, pending{field: f.Name, index: -1, entity: ref})
		case ClassOwnedRefCollection:
			for i, ref := range f.Many(entity) {
				if ref == nil {
					continue
				}
				if err := checkTarget(entity, f, ref); err != nil {
					return nil, err
				}
				refs = append(refs, pending{field: f.Name, index: i, entity: ref})
			}
		}
	}
	return refs, nil
}

func checkTarget(entity store.Entity, f FieldInfo, ref store.Entity) error {
	if got := ref.EntityType(); got != f.Target {
		return &IntrospectionError{
			EntityType: entity.EntityType(),
			Field:      f.Name,
			Reason:     "holds " + got + ", declared " + f.Target,
		}
	}
	return nil
}
