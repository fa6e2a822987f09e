// Package warehouse holds the product/article aggregate: records, their
// cascade schemas, converters to and from external views, and services.
package warehouse

import (
	"strconv"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/jacentio/stockroom/store"
)

// Entity type names.
const (
	TypeProduct = "product"
	TypeArticle = "article"
)

// Article is a stock item. It is saved on its own or as part of a Product.
type Article struct {
	ID     int64  `dynamodbav:"id"`
	Name   string `dynamodbav:"name"`
	Amount int64  `dynamodbav:"amount"`

	// ProductID points back at the product the article was last saved with.
	// It is a denormalized hint; Product.Articles is authoritative.
	ProductID *int64 `dynamodbav:"product_id,omitempty"`
}

func (a *Article) TableName() string  { return "articles" }
func (a *Article) EntityType() string { return TypeArticle }
func (a *Article) EntityRef() string  { return TypeArticle + "#" + strconv.FormatInt(a.ID, 10) }
func (a *Article) GetKey() store.PK {
	return store.PK{"id": &types.AttributeValueMemberN{Value: strconv.FormatInt(a.ID, 10)}}
}

// Product owns an ordered collection of article references.
//
// Only article identifiers are stored with the product. A loaded Product
// holds article stubs carrying just ID until ProductService resolves them.
type Product struct {
	ID       int64
	Name     string
	Articles []*Article
}

func (p *Product) TableName() string  { return "products" }
func (p *Product) EntityType() string { return TypeProduct }
func (p *Product) EntityRef() string  { return TypeProduct + "#" + strconv.FormatInt(p.ID, 10) }
func (p *Product) GetKey() store.PK {
	return store.PK{"id": &types.AttributeValueMemberN{Value: strconv.FormatInt(p.ID, 10)}}
}

// ArticleIDs returns the identifiers of the referenced articles in order.
func (p *Product) ArticleIDs() []int64 {
	ids := make([]int64, 0, len(p.Articles))
	for _, a := range p.Articles {
		if a != nil {
			ids = append(ids, a.ID)
		}
	}
	return ids
}

// productItem is the stored form of a Product.
type productItem struct {
	ID       int64   `dynamodbav:"id"`
	Name     string  `dynamodbav:"name"`
	Articles []int64 `dynamodbav:"articles"`
}

// MarshalDynamoDBAttributeValue stores the articles as a list of identifiers.
func (p *Product) MarshalDynamoDBAttributeValue() (types.AttributeValue, error) {
	return attributevalue.Marshal(productItem{
		ID:       p.ID,
		Name:     p.Name,
		Articles: p.ArticleIDs(),
	})
}

// UnmarshalDynamoDBAttributeValue restores articles as stubs.
func (p *Product) UnmarshalDynamoDBAttributeValue(av types.AttributeValue) error {
	var item productItem
	if err := attributevalue.Unmarshal(av, &item); err != nil {
		return err
	}
	p.ID = item.ID
	p.Name = item.Name
	p.Articles = make([]*Article, 0, len(item.Articles))
	for _, id := range item.Articles {
		p.Articles = append(p.Articles, &Article{ID: id})
	}
	return nil
}
