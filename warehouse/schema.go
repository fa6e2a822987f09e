package warehouse

import (
	"github.com/jacentio/stockroom/cascade"
	"github.com/jacentio/stockroom/store"
)

func init() {
	cascade.Register(ProductSchema)
	cascade.Register(ArticleSchema)
}

// ProductSchema declares Product.Articles as an owned reference collection.
var ProductSchema = cascade.Schema{
	EntityType: TypeProduct,
	Fields: []cascade.Field{
		{Name: "id", Kind: cascade.KindPlain},
		{Name: "name", Kind: cascade.KindPlain},
		{
			Name:    "articles",
			Kind:    cascade.KindRefCollection,
			Markers: cascade.MarkRef | cascade.MarkCascadeSave,
			Target:  TypeArticle,
			Many:    productArticles,
		},
	},
}

// ArticleSchema has no owned references.
var ArticleSchema = cascade.Schema{
	EntityType: TypeArticle,
	Fields: []cascade.Field{
		{Name: "id", Kind: cascade.KindPlain},
		{Name: "name", Kind: cascade.KindPlain},
		{Name: "amount", Kind: cascade.KindPlain},
		{Name: "product_id", Kind: cascade.KindPlain},
	},
}

func productArticles(e store.Entity) []store.Entity {
	p, ok := e.(*Product)
	if !ok || p == nil {
		return nil
	}
	refs := make([]store.Entity, 0, len(p.Articles))
	for _, a := range p.Articles {
		if a != nil {
			refs = append(refs, a)
		}
	}
	return refs
}
