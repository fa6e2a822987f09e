package warehouse

// ArticleView is the external form of an article inside a product.
type ArticleView struct {
	ArticleID int64  `json:"art_id"`
	Name      string `json:"name,omitempty"`
	Amount    int64  `json:"amount_of"`
}

// InventoryView is the external form of an article as a stock line.
type InventoryView struct {
	ArticleID int64  `json:"art_id"`
	Name      string `json:"name"`
	Stock     int64  `json:"stock"`
}

// ProductView is the external form of a product.
type ProductView struct {
	ProductID int64          `json:"productId"`
	Name      string         `json:"name"`
	Articles  []*ArticleView `json:"contain_articles"`
}
