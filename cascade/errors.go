package cascade

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrIntrospection is matched by every IntrospectionError.
	ErrIntrospection = errors.New("stockroom: malformed cascade field")

	// ErrReferenceSave is matched by every ReferenceSaveError.
	ErrReferenceSave = errors.New("stockroom: referenced entity not saved")
)

// IntrospectionError reports a structurally malformed field. It is
// returned before any referenced entity is written.
type IntrospectionError struct {
	EntityType string
	Field      string
	Reason     string
}

func (e *IntrospectionError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: %s: %s", ErrIntrospection, e.EntityType, e.Reason)
	}
	return fmt.Sprintf("%s: %s.%s: %s", ErrIntrospection, e.EntityType, e.Field, e.Reason)
}

func (e *IntrospectionError) Unwrap() error { return ErrIntrospection }

// ReferenceSaveError reports one referenced entity that failed to save.
type ReferenceSaveError struct {
	// Field is the name of the field holding the reference.
	Field string

	// Index is the element's position in a collection field, or -1 for a single reference.
	Index int

	// Ref is the referenced entity's EntityRef.
	Ref string

	// Err is the store error.
	Err error
}

func (e *ReferenceSaveError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("save %s (%s): %v", e.Ref, e.Field, e.Err)
	}
	return fmt.Sprintf("save %s (%s[%d]): %v", e.Ref, e.Field, e.Index, e.Err)
}

func (e *ReferenceSaveError) Unwrap() []error { return []error{ErrReferenceSave, e.Err} }

// Error is the aggregate failure of one cascade. References saved before
// or after the failed ones are not rolled back.
type Error struct {
	// EntityRef is the entity whose references were being saved.
	EntityRef string

	// Failures lists each reference that failed, in attempt order.
	Failures []*ReferenceSaveError
}

func (e *Error) Error() string {
	msgs := make([]string, len(e.Failures))
	for i, f := range e.Failures {
		msgs[i] = f.Error()
	}
	return fmt.Sprintf("cascade %s: %d reference(s) failed: %s",
		e.EntityRef, len(e.Failures), strings.Join(msgs, "; "))
}

func (e *Error) Unwrap() []error {
	errs := make([]error, len(e.Failures))
	for i, f := range e.Failures {
		errs[i] = f
	}
	return errs
}
