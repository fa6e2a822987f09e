package warehouse_test

import (
	"testing"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jacentio/stockroom/cascade"
	"github.com/jacentio/stockroom/warehouse"
)

func TestProduct_StoresArticleIDs(t *testing.T) {
	p := &warehouse.Product{
		ID:       1,
		Name:     "Table",
		Articles: []*warehouse.Article{{ID: 10, Name: "Leg", Amount: 4}, {ID: 11}},
	}

	item, err := attributevalue.MarshalMap(p)
	require.NoError(t, err)

	list, ok := item["articles"].(*types.AttributeValueMemberL)
	require.True(t, ok, "articles is a list")
	require.Len(t, list.Value, 2)
	first, ok := list.Value[0].(*types.AttributeValueMemberN)
	require.True(t, ok, "articles holds numbers only")
	assert.Equal(t, "10", first.Value)

	got := &warehouse.Product{}
	require.NoError(t, attributevalue.UnmarshalMap(item, got))
	assert.Equal(t, "Table", got.Name)
	assert.Equal(t, []int64{10, 11}, got.ArticleIDs())
	assert.Empty(t, got.Articles[0].Name, "loaded articles are stubs")
}

func TestArticle_OmitsEmptyBackReference(t *testing.T) {
	item, err := attributevalue.MarshalMap(&warehouse.Article{ID: 10, Amount: 4})
	require.NoError(t, err)

	_, ok := item["product_id"]
	assert.False(t, ok)
}

func TestEntityRefs(t *testing.T) {
	assert.Equal(t, "product#1", (&warehouse.Product{ID: 1}).EntityRef())
	assert.Equal(t, "article#10", (&warehouse.Article{ID: 10}).EntityRef())
	assert.Equal(t, "products", (&warehouse.Product{}).TableName())
	assert.Equal(t, "articles", (&warehouse.Article{}).TableName())
}

func TestSchemasRegistered(t *testing.T) {
	assert.True(t, cascade.DefaultRegistry.HasReferences(warehouse.TypeProduct))
	assert.False(t, cascade.DefaultRegistry.HasReferences(warehouse.TypeArticle))

	infos, err := cascade.DefaultRegistry.Introspect(&warehouse.Product{ID: 1})
	require.NoError(t, err)
	require.Len(t, infos, 3)
	assert.Equal(t, cascade.ClassOwnedRefCollection, infos[2].Class)
	assert.Equal(t, warehouse.TypeArticle, infos[2].Target)
}
