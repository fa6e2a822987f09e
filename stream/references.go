// Package stream provides DynamoDB Streams handlers for the products table.
package stream

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/jacentio/stockroom/store"
	"github.com/jacentio/stockroom/warehouse"
)

// Store is the storage the handler needs. *store.Store satisfies it.
type Store interface {
	Load(ctx context.Context, entity store.Entity) error
	Put(ctx context.Context, entity store.Entity) error
}

// Handler processes DynamoDB stream events to keep article back-references
// in line with the products that reference them.
type Handler struct {
	store  Store
	logger *slog.Logger
}

// NewHandler creates a new stream handler.
func NewHandler(s Store, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		store:  s,
		logger: logger,
	}
}

// HandleReferenceChanges clears the product_id of articles a product no
// longer references, either because the product's article list changed or
// because the product was deleted.
// This function is designed to be used as an AWS Lambda handler.
func (h *Handler) HandleReferenceChanges(ctx context.Context, event events.DynamoDBEvent) error {
	for _, record := range event.Records {
		if err := h.processRecord(ctx, record); err != nil {
			h.logger.Error("failed to process record",
				"eventID", record.EventID,
				"error", err,
			)
			return err // Will retry, eventually DLQ
		}
	}
	return nil
}

// processRecord processes a single DynamoDB stream record.
func (h *Handler) processRecord(ctx context.Context, record events.DynamoDBEventRecord) error {
	// Inserts reference nothing that was dropped; removals follow a MODIFY that set the TTL
	if record.EventName != "MODIFY" {
		return nil
	}
	if getStringAttr(record.Change.NewImage, "entity_type") != warehouse.TypeProduct {
		return nil
	}

	var productID int64
	idAttr, ok := ConvertStreamKey(record.Change.Keys)["id"]
	if !ok || attributevalue.Unmarshal(idAttr, &productID) != nil || productID == 0 {
		h.logger.Warn("skipping record without product id", "eventID", record.EventID)
		return nil
	}

	oldIDs := getNumberListAttr(record.Change.OldImage, "articles")
	newIDs := getNumberListAttr(record.Change.NewImage, "articles")

	// A newly set TTL means the product was deleted: every reference is dropped
	oldTTL := getNumberAttr(record.Change.OldImage, "ttl")
	newTTL := getNumberAttr(record.Change.NewImage, "ttl")
	if oldTTL == 0 && newTTL != 0 {
		newIDs = nil
	}

	dropped := difference(oldIDs, newIDs)
	if len(dropped) == 0 {
		return nil
	}

	h.logger.Info("clearing dropped article references",
		"productId", productID,
		"articles", len(dropped),
	)

	cleared := 0
	for _, articleID := range dropped {
		ok, err := h.clearBackReference(ctx, productID, articleID)
		if err != nil {
			return fmt.Errorf("article %d: %w", articleID, err)
		}
		if ok {
			cleared++
		}
	}

	h.logger.Info("article references cleared",
		"productId", productID,
		"dropped", len(dropped),
		"cleared", cleared,
	)

	return nil
}

// clearBackReference removes the article's product_id if it still points
// at productID. Articles re-assigned to another product are left alone.
func (h *Handler) clearBackReference(ctx context.Context, productID, articleID int64) (bool, error) {
	a := &warehouse.Article{ID: articleID}
	if err := h.store.Load(ctx, a); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	if a.ProductID == nil || *a.ProductID != productID {
		return false, nil
	}

	a.ProductID = nil
	if err := h.store.Put(ctx, a); err != nil {
		h.logger.Warn("failed to clear article back-reference",
			"article", a.EntityRef(),
			"productId", productID,
			"error", err,
		)
		// Continue - the back-reference is a hint, not worth a batch retry
		return false, nil
	}
	return true, nil
}

// difference returns the ids in a that are not in b, in a's order.
func difference(a, b []int64) []int64 {
	keep := make(map[int64]bool, len(b))
	for _, id := range b {
		keep[id] = true
	}
	var out []int64
	seen := make(map[int64]bool, len(a))
	for _, id := range a {
		if !keep[id] && !seen[id] {
			out = append(out, id)
			seen[id] = true
		}
	}
	return out
}

// getStringAttr extracts a string attribute from a DynamoDB stream image.
func getStringAttr(image map[string]events.DynamoDBAttributeValue, key string) string {
	if v, ok := image[key]; ok && v.DataType() == events.DataTypeString {
		return v.String()
	}
	return ""
}

// getNumberAttr extracts a number attribute from a DynamoDB stream image.
func getNumberAttr(image map[string]events.DynamoDBAttributeValue, key string) int64 {
	if v, ok := image[key]; ok {
		if v.DataType() == events.DataTypeNumber {
			n, _ := strconv.ParseInt(v.Number(), 10, 64)
			return n
		}
	}
	return 0
}

// getNumberListAttr extracts the integer elements of a list attribute.
func getNumberListAttr(image map[string]events.DynamoDBAttributeValue, key string) []int64 {
	if v, ok := image[key]; ok {
		if v.DataType() == events.DataTypeList {
			var result []int64
			for _, item := range v.List() {
				if item.DataType() != events.DataTypeNumber {
					continue
				}
				if n, err := strconv.ParseInt(item.Number(), 10, 64); err == nil {
					result = append(result, n)
				}
			}
			return result
		}
	}
	return nil
}

// ConvertStreamKey converts a DynamoDB stream key to a store.PK.
func ConvertStreamKey(streamKey map[string]events.DynamoDBAttributeValue) store.PK {
	result := make(store.PK)
	for k, v := range streamKey {
		switch v.DataType() {
		case events.DataTypeString:
			result[k] = &types.AttributeValueMemberS{Value: v.String()}
		case events.DataTypeNumber:
			result[k] = &types.AttributeValueMemberN{Value: v.Number()}
		case events.DataTypeBinary:
			result[k] = &types.AttributeValueMemberB{Value: v.Binary()}
		}
	}
	return result
}
