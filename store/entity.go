package store

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// PK represents a DynamoDB primary key.
type PK map[string]types.AttributeValue

// Entity is the base interface for all storable types.
type Entity interface {
	// TableName returns the unprefixed DynamoDB table name for this entity type.
	TableName() string

	// GetKey returns the primary key for this entity.
	GetKey() PK

	// EntityRef returns the type-qualified reference (e.g., "product#1").
	EntityRef() string

	// EntityType returns the entity type name (e.g., "product").
	EntityType() string
}

// Writer persists a single entity without running save hooks.
// Hooks receive the store as a Writer so that anything they write is
// not cascaded further.
type Writer interface {
	Put(ctx context.Context, entity Entity) error
}

// Hook is invoked by Save immediately before an entity is marshalled.
// A non-nil error aborts the save; the entity is not written.
type Hook interface {
	BeforeSave(ctx context.Context, w Writer, entity Entity) error
}

// HookFunc adapts an ordinary function to the Hook interface.
type HookFunc func(ctx context.Context, w Writer, entity Entity) error

// BeforeSave calls f(ctx, w, entity).
func (f HookFunc) BeforeSave(ctx context.Context, w Writer, entity Entity) error {
	return f(ctx, w, entity)
}

// Item represents a retrieved DynamoDB item with common fields.
type Item struct {
	// Raw is the raw DynamoDB item.
	Raw map[string]types.AttributeValue

	// UpdatedAt is the ISO 8601 last write timestamp.
	UpdatedAt string

	// EntityRef is the type-qualified entity reference.
	EntityRef string

	// EntityType is the entity type name.
	EntityType string
}

// Filter is an equality condition applied to FindAll results.
type Filter struct {
	// Attr is the attribute name.
	Attr string

	// Value is the value the attribute must equal.
	Value types.AttributeValue
}
