package warehouse

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/jacentio/stockroom/store"
)

// Repository is the storage the services need. *store.Store satisfies it.
type Repository interface {
	Save(ctx context.Context, entity store.Entity) error
	Load(ctx context.Context, entity store.Entity) error
	FindAll(ctx context.Context, proto store.Entity, filters ...store.Filter) ([]*store.Item, error)
	Delete(ctx context.Context, entity store.Entity) error
}

// ProductService saves and reads products.
//
// Saving a product saves its articles first through the repository's
// hooks. A failed save may leave some of those articles written.
type ProductService struct {
	repo   Repository
	conv   ProductConverter
	logger *slog.Logger
}

// NewProductService creates a new ProductService.
func NewProductService(repo Repository, logger *slog.Logger) *ProductService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ProductService{
		repo:   repo,
		logger: logger,
	}
}

// Save stores the product and, before it, every article it references.
func (s *ProductService) Save(ctx context.Context, v *ProductView) (*ProductView, error) {
	if v == nil {
		return nil, ErrInvalidInput
	}
	p, err := s.conv.ToRecord(v)
	if err != nil {
		return nil, err
	}

	s.logger.Info("saving product",
		"productId", p.ID,
		"articles", len(p.Articles),
	)
	if err := s.repo.Save(ctx, p); err != nil {
		return nil, fmt.Errorf("save product %d: %w", p.ID, err)
	}

	out, _ := s.conv.ToExternal(p)
	return out, nil
}

// Get returns the product with its articles resolved.
// It returns store.ErrNotFound if the product doesn't exist.
func (s *ProductService) Get(ctx context.Context, id int64) (*ProductView, error) {
	p := &Product{ID: id}
	if err := s.repo.Load(ctx, p); err != nil {
		return nil, err
	}
	if err := s.resolve(ctx, p); err != nil {
		return nil, err
	}
	out, _ := s.conv.ToExternal(p)
	return out, nil
}

// List returns every product with its articles resolved.
func (s *ProductService) List(ctx context.Context) ([]*ProductView, error) {
	products, err := s.all(ctx)
	if err != nil {
		return nil, err
	}
	for _, p := range products {
		if err := s.resolve(ctx, p); err != nil {
			return nil, err
		}
	}
	return Batch(products, s.conv.ToExternal), nil
}

// DeleteAll deletes every product. Articles are left in place.
// Each product is attempted; failures are returned joined.
func (s *ProductService) DeleteAll(ctx context.Context) error {
	products, err := s.all(ctx)
	if err != nil {
		return err
	}

	s.logger.Info("deleting products", "count", len(products))

	var errs []error
	for _, p := range products {
		if err := s.repo.Delete(ctx, p); err != nil {
			s.logger.Warn("failed to delete product",
				"productId", p.ID,
				"error", err,
			)
			errs = append(errs, fmt.Errorf("delete product %d: %w", p.ID, err))
		}
	}
	return errors.Join(errs...)
}

func (s *ProductService) all(ctx context.Context) ([]*Product, error) {
	items, err := s.repo.FindAll(ctx, &Product{})
	if err != nil {
		return nil, err
	}
	products := make([]*Product, 0, len(items))
	for _, item := range items {
		p := &Product{}
		if err := attributevalue.UnmarshalMap(item.Raw, p); err != nil {
			return nil, fmt.Errorf("unmarshal %s: %w", item.EntityRef, err)
		}
		products = append(products, p)
	}
	return products, nil
}

// resolve replaces article stubs with stored articles. References to
// articles deleted since the product was saved are dropped with a warning.
func (s *ProductService) resolve(ctx context.Context, p *Product) error {
	resolved := make([]*Article, 0, len(p.Articles))
	for _, stub := range p.Articles {
		a := &Article{ID: stub.ID}
		err := s.repo.Load(ctx, a)
		if errors.Is(err, store.ErrNotFound) {
			s.logger.Warn("dangling article reference",
				"productId", p.ID,
				"articleId", stub.ID,
			)
			continue
		}
		if err != nil {
			return fmt.Errorf("resolve %s of product %d: %w", stub.EntityRef(), p.ID, err)
		}
		resolved = append(resolved, a)
	}
	p.Articles = resolved
	return nil
}

// ArticleService saves and reads articles independently of products.
type ArticleService struct {
	repo      Repository
	articles  ArticleConverter
	inventory InventoryConverter
	logger    *slog.Logger
}

// NewArticleService creates a new ArticleService.
func NewArticleService(repo Repository, logger *slog.Logger) *ArticleService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ArticleService{
		repo:   repo,
		logger: logger,
	}
}

// Save stores an article without a product back-reference.
func (s *ArticleService) Save(ctx context.Context, v *ArticleView) (*ArticleView, error) {
	a, ok := s.articles.ToRecord(v)
	if !ok {
		return nil, ErrInvalidInput
	}
	if err := s.save(ctx, a); err != nil {
		return nil, err
	}
	out, _ := s.articles.ToExternal(a)
	return out, nil
}

// SaveForProduct stores an article pointing back at productID.
// The product's own reference list is not changed.
func (s *ArticleService) SaveForProduct(ctx context.Context, productID int64, v *ArticleView) (*ArticleView, error) {
	a, ok := s.articles.ToRecordFor(productID, v)
	if !ok {
		return nil, ErrInvalidInput
	}
	if err := s.save(ctx, a); err != nil {
		return nil, err
	}
	out, _ := s.articles.ToExternal(a)
	return out, nil
}

// SaveInventory stores a stock line as an article.
func (s *ArticleService) SaveInventory(ctx context.Context, v *InventoryView) (*InventoryView, error) {
	a, ok := s.inventory.ToRecord(v)
	if !ok {
		return nil, ErrInvalidInput
	}
	if err := s.save(ctx, a); err != nil {
		return nil, err
	}
	out, _ := s.inventory.ToExternal(a)
	return out, nil
}

// ProductArticle returns an article whose back-reference is productID.
// It returns store.ErrNotFound otherwise.
func (s *ArticleService) ProductArticle(ctx context.Context, productID, articleID int64) (*ArticleView, error) {
	a := &Article{ID: articleID}
	if err := s.repo.Load(ctx, a); err != nil {
		return nil, err
	}
	if a.ProductID == nil || *a.ProductID != productID {
		return nil, store.ErrNotFound
	}
	out, _ := s.articles.ToExternal(a)
	return out, nil
}

// ProductArticles returns the articles whose back-reference is productID.
func (s *ArticleService) ProductArticles(ctx context.Context, productID int64) ([]*ArticleView, error) {
	articles, err := s.find(ctx, store.Filter{
		Attr:  "product_id",
		Value: &types.AttributeValueMemberN{Value: strconv.FormatInt(productID, 10)},
	})
	if err != nil {
		return nil, err
	}
	return Batch(articles, s.articles.ToExternal), nil
}

// Inventory returns every article as a stock line.
func (s *ArticleService) Inventory(ctx context.Context) ([]*InventoryView, error) {
	articles, err := s.find(ctx)
	if err != nil {
		return nil, err
	}
	return Batch(articles, s.inventory.ToExternal), nil
}

func (s *ArticleService) save(ctx context.Context, a *Article) error {
	s.logger.Info("saving article", "articleId", a.ID)
	if err := s.repo.Save(ctx, a); err != nil {
		return fmt.Errorf("save article %d: %w", a.ID, err)
	}
	return nil
}

func (s *ArticleService) find(ctx context.Context, filters ...store.Filter) ([]*Article, error) {
	items, err := s.repo.FindAll(ctx, &Article{}, filters...)
	if err != nil {
		return nil, err
	}
	articles := make([]*Article, 0, len(items))
	for _, item := range items {
		a := &Article{}
		if err := attributevalue.UnmarshalMap(item.Raw, a); err != nil {
			return nil, fmt.Errorf("unmarshal %s: %w", item.EntityRef, err)
		}
		articles = append(articles, a)
	}
	return articles, nil
}
