// Package store provides a DynamoDB data access layer with save hooks.
//
// DynamoDB has no foreign keys and no cascade save. Store offers plain
// upsert-by-key semantics and a single extension point, [Hook], that runs
// immediately before an entity is marshalled for writing. Package cascade
// plugs into that point to persist referenced entities before their parent.
//
// # Entity Interface
//
// All entities must implement the [Entity] interface:
//
//	type Entity interface {
//	    TableName() string
//	    GetKey() PK
//	    EntityRef() string
//	    EntityType() string
//	}
//
// # Writes
//
//   - [Store.Save] runs every hook, then writes the entity.
//   - [Store.Put] writes the entity without hooks. Hooks receive the store
//     as a [Writer], so entities written from a hook are never cascaded.
//
// Both are unconditional PutItem calls: the last writer wins and writing a
// soft-deleted key brings it back.
//
// There is no transaction spanning a hook's writes and the entity's own
// write. If a hook writes some items and then fails, those items stay.
//
// # Deletes
//
// [Store.Delete] sets the item's TTL to now. Deleted items are hidden from
// [Store.Get], [Store.Load] and [Store.FindAll] and are eventually removed by
// DynamoDB. Referenced entities are never deleted along with their parent.
//
// # Errors
//
//   - [ErrNotFound] - entity doesn't exist or is deleted
//   - [ErrInvalidKey] - entity key is empty or has an empty attribute
package store
