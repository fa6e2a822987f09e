// Package cascade saves an entity's referenced entities before the entity.
//
// DynamoDB cannot enforce that an item referenced by key exists. Entity
// types that store other entities by key declare so in a static [Schema]
// registered at init time:
//
//	func init() {
//	    cascade.Register(cascade.Schema{
//	        EntityType: "product",
//	        Fields: []cascade.Field{
//	            {Name: "id", Kind: cascade.KindPlain},
//	            {Name: "articles", Kind: cascade.KindRefCollection,
//	                Markers: cascade.MarkRef | cascade.MarkCascadeSave,
//	                Target:  "article",
//	                Many:    productArticles},
//	        },
//	    })
//	}
//
// A field is cascaded only when it carries both [MarkRef] and
// [MarkCascadeSave]. The [Engine] is installed as a store.Hook and runs
// inside store.Store.Save before the entity is marshalled.
//
// # Consistency
//
// Cascading is best effort and one level deep:
//
//   - Referenced entities are written one at a time, in order, before the parent.
//   - A failed write does not stop its siblings. The cascade then fails as a
//     whole with [*Error] and the parent is not written.
//   - Siblings that were written are not rolled back. A failed save can leave
//     referenced entities behind without the parent that referenced them.
//   - References of referenced entities are not followed.
//
// Nothing is retried. Callers that want retries repeat the whole save,
// which is safe because writes are upserts by key.
//
// # Errors
//
//   - [*IntrospectionError] (matches [ErrIntrospection]) - malformed field; nothing was written
//   - [*Error] - aggregate of one or more [*ReferenceSaveError] (matches [ErrReferenceSave])
package cascade
