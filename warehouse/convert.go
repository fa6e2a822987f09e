package warehouse

// Converters are pure: no I/O, no logging. A nil input always yields no
// result rather than an error.

// Batch converts every element of in, dropping nil elements and elements
// conv rejects. It never fails and never returns nil.
func Batch[F, T any](in []*F, conv func(*F) (*T, bool)) []*T {
	out := make([]*T, 0, len(in))
	for _, v := range in {
		if v == nil {
			continue
		}
		if t, ok := conv(v); ok {
			out = append(out, t)
		}
	}
	return out
}

// ArticleConverter converts between ArticleView and Article.
type ArticleConverter struct{}

// ToRecord rejects views without an article identifier.
func (ArticleConverter) ToRecord(v *ArticleView) (*Article, bool) {
	if v == nil || v.ArticleID <= 0 {
		return nil, false
	}
	return &Article{
		ID:     v.ArticleID,
		Name:   v.Name,
		Amount: v.Amount,
	}, true
}

// ToRecordFor converts v and points the article back at productID.
func (c ArticleConverter) ToRecordFor(productID int64, v *ArticleView) (*Article, bool) {
	if productID <= 0 {
		return nil, false
	}
	a, ok := c.ToRecord(v)
	if !ok {
		return nil, false
	}
	a.ProductID = &productID
	return a, true
}

func (ArticleConverter) ToExternal(a *Article) (*ArticleView, bool) {
	if a == nil {
		return nil, false
	}
	return &ArticleView{
		ArticleID: a.ID,
		Name:      a.Name,
		Amount:    a.Amount,
	}, true
}

// InventoryConverter converts between InventoryView and Article.
type InventoryConverter struct{}

func (InventoryConverter) ToRecord(v *InventoryView) (*Article, bool) {
	if v == nil || v.ArticleID <= 0 {
		return nil, false
	}
	return &Article{
		ID:     v.ArticleID,
		Name:   v.Name,
		Amount: v.Stock,
	}, true
}

func (InventoryConverter) ToExternal(a *Article) (*InventoryView, bool) {
	if a == nil {
		return nil, false
	}
	return &InventoryView{
		ArticleID: a.ID,
		Name:      a.Name,
		Stock:     a.Amount,
	}, true
}

// ProductConverter converts between ProductView and Product, delegating
// articles to an ArticleConverter.
type ProductConverter struct {
	Articles ArticleConverter
}

// ToRecord returns nil, nil for a nil view. Unlike the batch form, a
// single article that fails to convert fails the whole product with a
// *ConversionError: a product must not silently lose a reference.
func (c ProductConverter) ToRecord(v *ProductView) (*Product, error) {
	if v == nil {
		return nil, nil
	}
	if v.ProductID <= 0 {
		return nil, &ConversionError{ProductID: v.ProductID, Index: -1, Reason: "missing product identifier"}
	}

	p := &Product{
		ID:       v.ProductID,
		Name:     v.Name,
		Articles: make([]*Article, 0, len(v.Articles)),
	}
	for i, av := range v.Articles {
		a, ok := c.Articles.ToRecordFor(v.ProductID, av)
		if !ok {
			return nil, &ConversionError{ProductID: v.ProductID, Index: i, Reason: "article reference did not convert"}
		}
		p.Articles = append(p.Articles, a)
	}
	return p, nil
}

func (c ProductConverter) ToExternal(p *Product) (*ProductView, bool) {
	if p == nil {
		return nil, false
	}
	return &ProductView{
		ProductID: p.ID,
		Name:      p.Name,
		Articles:  Batch(p.Articles, c.Articles.ToExternal),
	}, true
}
