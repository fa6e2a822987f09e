package store

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// API is the subset of the DynamoDB client used by Store.
// *dynamodb.Client satisfies it.
type API interface {
	dynamodb.ScanAPIClient
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
}

// Store provides DynamoDB operations with before-save hooks.
//
// DynamoDB offers no cross-item cascade, so entities that reference other
// entities rely on a Hook (see package cascade) to write the referenced
// items first. Those writes are not transactional with the parent write.
type Store struct {
	client API
	config Config
	hooks  []Hook
}

// New creates a new Store instance.
func New(client API, config Config, hooks ...Hook) *Store {
	config.validate()
	return &Store{
		client: client,
		config: config,
		hooks:  hooks,
	}
}

// Use appends a hook. Hooks run in the order they were added.
func (s *Store) Use(h Hook) {
	s.hooks = append(s.hooks, h)
}

// Table returns the prefixed DynamoDB table name for an entity.
func (s *Store) Table(entity Entity) string {
	return s.config.TablePrefix + entity.TableName()
}

// Save runs every hook and then writes the entity.
// If a hook fails the entity is not written.
func (s *Store) Save(ctx context.Context, entity Entity) error {
	for _, h := range s.hooks {
		if err := h.BeforeSave(ctx, s, entity); err != nil {
			return fmt.Errorf("before save %s: %w", entity.EntityRef(), err)
		}
	}
	return s.Put(ctx, entity)
}

// Put writes the entity, replacing any existing item with the same key.
// Put never runs hooks.
func (s *Store) Put(ctx context.Context, entity Entity) error {
	key := entity.GetKey()
	if err := validateKey(key); err != nil {
		return fmt.Errorf("%s: %w", entity.EntityRef(), err)
	}

	item, err := attributevalue.MarshalMap(entity)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", entity.EntityRef(), err)
	}
	for k, v := range key {
		item[k] = v
	}

	// Managed fields
	item["entity_ref"] = &types.AttributeValueMemberS{Value: entity.EntityRef()}
	item["entity_type"] = &types.AttributeValueMemberS{Value: entity.EntityType()}
	item["updated_at"] = &types.AttributeValueMemberS{Value: time.Now().UTC().Format(time.RFC3339)}

	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.Table(entity)),
		Item:      item,
	})
	return err
}

// Get retrieves an entity's item by its key, returning ErrNotFound if deleted or missing.
func (s *Store) Get(ctx context.Context, entity Entity) (*Item, error) {
	key := entity.GetKey()
	if err := validateKey(key); err != nil {
		return nil, err
	}

	result, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.Table(entity)),
		Key:       key,
	})
	if err != nil {
		return nil, err
	}
	if result.Item == nil {
		return nil, ErrNotFound
	}

	// Check if entity is deleted (has expired TTL)
	if IsDeleted(result.Item) {
		return nil, ErrNotFound
	}

	return s.unmarshalItem(result.Item), nil
}

// Load retrieves the item for entity's key and unmarshals it into entity,
// which must be a pointer.
func (s *Store) Load(ctx context.Context, entity Entity) error {
	item, err := s.Get(ctx, entity)
	if err != nil {
		return err
	}
	if err := attributevalue.UnmarshalMap(item.Raw, entity); err != nil {
		return fmt.Errorf("unmarshal %s: %w", entity.EntityRef(), err)
	}
	return nil
}

// FindAll scans the table of proto, skipping deleted items.
// Filters are combined with AND.
func (s *Store) FindAll(ctx context.Context, proto Entity, filters ...Filter) ([]*Item, error) {
	exprNames := TTLFilterNames()
	exprValues := TTLFilterValues()
	filterExpr := TTLFilterExpr()

	for i, f := range filters {
		nameKey := fmt.Sprintf("#f%d", i)
		valueKey := fmt.Sprintf(":f%d", i)
		exprNames[nameKey] = f.Attr
		exprValues[valueKey] = f.Value
		filterExpr = fmt.Sprintf("(%s) AND (%s = %s)", filterExpr, nameKey, valueKey)
	}

	var items []*Item
	paginator := dynamodb.NewScanPaginator(s.client, &dynamodb.ScanInput{
		TableName:                 aws.String(s.Table(proto)),
		FilterExpression:          aws.String(filterExpr),
		ExpressionAttributeNames:  exprNames,
		ExpressionAttributeValues: exprValues,
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, raw := range page.Items {
			items = append(items, s.unmarshalItem(raw))
		}
	}

	return items, nil
}

// Delete marks an entity for deletion by setting its TTL to now.
// Referenced entities are never deleted with it.
func (s *Store) Delete(ctx context.Context, entity Entity) error {
	key := entity.GetKey()
	if err := validateKey(key); err != nil {
		return err
	}

	_, err := s.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:           aws.String(s.Table(entity)),
		Key:                 key,
		UpdateExpression:    aws.String("SET #ttl = :now"),
		ConditionExpression: aws.String("attribute_exists(entity_ref) AND attribute_not_exists(#ttl)"),
		ExpressionAttributeNames: map[string]string{
			"#ttl": "ttl",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":now": &types.AttributeValueMemberN{
				Value: strconv.FormatInt(time.Now().Unix(), 10),
			},
		},
	})

	// Ignore condition failure - missing or already deleted
	var condErr *types.ConditionalCheckFailedException
	if errors.As(err, &condErr) {
		return nil
	}
	return err
}

// validateKey rejects keys a DynamoDB write would reject or silently mangle.
func validateKey(key PK) error {
	if len(key) == 0 {
		return ErrInvalidKey
	}
	for _, v := range key {
		switch av := v.(type) {
		case *types.AttributeValueMemberS:
			if av.Value == "" {
				return ErrInvalidKey
			}
		case *types.AttributeValueMemberN:
			if av.Value == "" {
				return ErrInvalidKey
			}
		case *types.AttributeValueMemberB:
			if len(av.Value) == 0 {
				return ErrInvalidKey
			}
		default:
			return ErrInvalidKey
		}
	}
	return nil
}

// unmarshalItem converts a DynamoDB item to an Item struct.
func (s *Store) unmarshalItem(raw map[string]types.AttributeValue) *Item {
	item := &Item{Raw: raw}

	if v, ok := raw["updated_at"].(*types.AttributeValueMemberS); ok {
		item.UpdatedAt = v.Value
	}
	if v, ok := raw["entity_ref"].(*types.AttributeValueMemberS); ok {
		item.EntityRef = v.Value
	}
	if v, ok := raw["entity_type"].(*types.AttributeValueMemberS); ok {
		item.EntityType = v.Value
	}

	return item
}
