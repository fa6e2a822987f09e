// Package ddbtest provides an in-memory stand-in for the DynamoDB client.
//
// It understands the small expression dialect the store package emits:
// SET clauses of the form "#name = :value", the TTL filter, and equality
// filters. Items are keyed by their "id" attribute.
package ddbtest

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// Operation names recorded in the call log.
const (
	OpPut    = "PutItem"
	OpGet    = "GetItem"
	OpUpdate = "UpdateItem"
	OpScan   = "Scan"
)

var assignment = regexp.MustCompile(`(#\w+) = (:\w+)`)

// Call is one recorded client call.
type Call struct {
	Op    string
	Table string
	// ID is the "id" attribute of the addressed item; empty for scans.
	ID string
}

// Client is a goroutine-safe in-memory DynamoDB fake.
type Client struct {
	mu       sync.Mutex
	tables   map[string]map[string]map[string]types.AttributeValue
	calls    []Call
	putFails map[string]error
}

// New creates an empty Client.
func New() *Client {
	return &Client{
		tables:   make(map[string]map[string]map[string]types.AttributeValue),
		putFails: make(map[string]error),
	}
}

// FailPut makes every PutItem for table/id return err. A nil err clears it.
func (c *Client) FailPut(table, id string, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err == nil {
		delete(c.putFails, table+"/"+id)
		return
	}
	c.putFails[table+"/"+id] = err
}

// Calls returns a copy of the call log.
func (c *Client) Calls() []Call {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Call(nil), c.calls...)
}

// Puts returns the successful and failed PutItem calls, in order.
func (c *Client) Puts() []Call {
	var puts []Call
	for _, call := range c.Calls() {
		if call.Op == OpPut {
			puts = append(puts, call)
		}
	}
	return puts
}

// Item returns the stored item for table/id, including soft-deleted ones.
func (c *Client) Item(table, id string) (map[string]types.AttributeValue, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	item, ok := c.tables[table][id]
	return item, ok
}

// Len returns the number of stored items in table.
func (c *Client) Len(table string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.tables[table])
}

// PutItem stores a copy of the item, replacing any item with the same id.
func (c *Client) PutItem(_ context.Context, params *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	table := aws.ToString(params.TableName)
	id := idOf(params.Item)
	c.calls = append(c.calls, Call{Op: OpPut, Table: table, ID: id})

	if id == "" {
		return nil, fmt.Errorf("ddbtest: item in %s has no id", table)
	}
	if err, ok := c.putFails[table+"/"+id]; ok {
		return nil, err
	}

	if c.tables[table] == nil {
		c.tables[table] = make(map[string]map[string]types.AttributeValue)
	}
	c.tables[table][id] = copyItem(params.Item)
	return &dynamodb.PutItemOutput{}, nil
}

// GetItem returns the stored item, or an empty output if absent.
func (c *Client) GetItem(_ context.Context, params *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	table := aws.ToString(params.TableName)
	id := idOf(params.Key)
	c.calls = append(c.calls, Call{Op: OpGet, Table: table, ID: id})

	item, ok := c.tables[table][id]
	if !ok {
		return &dynamodb.GetItemOutput{}, nil
	}
	return &dynamodb.GetItemOutput{Item: copyItem(item)}, nil
}

// UpdateItem applies "SET #a = :b, ..." to an existing item. Conditions
// are limited to attribute_exists / attribute_not_exists of the ttl
// attribute and the item's existence.
func (c *Client) UpdateItem(_ context.Context, params *dynamodb.UpdateItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	table := aws.ToString(params.TableName)
	id := idOf(params.Key)
	c.calls = append(c.calls, Call{Op: OpUpdate, Table: table, ID: id})

	item, exists := c.tables[table][id]
	cond := aws.ToString(params.ConditionExpression)
	if strings.Contains(cond, "attribute_exists(") && !exists {
		return nil, conditionFailed()
	}
	if strings.Contains(cond, "attribute_not_exists(#ttl)") && exists {
		if _, ok := item["ttl"]; ok {
			return nil, conditionFailed()
		}
	}

	if !exists {
		item = copyItem(params.Key)
		if c.tables[table] == nil {
			c.tables[table] = make(map[string]map[string]types.AttributeValue)
		}
	} else {
		item = copyItem(item)
	}
	for _, m := range assignment.FindAllStringSubmatch(aws.ToString(params.UpdateExpression), -1) {
		name := params.ExpressionAttributeNames[m[1]]
		item[name] = params.ExpressionAttributeValues[m[2]]
	}
	c.tables[table][id] = item
	return &dynamodb.UpdateItemOutput{}, nil
}

// Scan returns every item matching the filter in a single page, ordered by id.
func (c *Client) Scan(_ context.Context, params *dynamodb.ScanInput, _ ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	table := aws.ToString(params.TableName)
	c.calls = append(c.calls, Call{Op: OpScan, Table: table})

	ids := make([]string, 0, len(c.tables[table]))
	for id := range c.tables[table] {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return lessID(ids[i], ids[j]) })

	var items []map[string]types.AttributeValue
	for _, id := range ids {
		item := c.tables[table][id]
		if matches(item, params) {
			items = append(items, copyItem(item))
		}
	}
	return &dynamodb.ScanOutput{Items: items, Count: int32(len(items))}, nil
}

// matches evaluates the TTL filter and equality filters of a scan.
func matches(item map[string]types.AttributeValue, params *dynamodb.ScanInput) bool {
	expr := aws.ToString(params.FilterExpression)
	if strings.Contains(expr, "#ttl > :now") {
		if ttl, ok := numberAttr(item, "ttl"); ok {
			now, _ := strconv.ParseInt(numberValue(params.ExpressionAttributeValues[":now"]), 10, 64)
			if ttl <= now {
				return false
			}
		}
	}
	for _, m := range assignment.FindAllStringSubmatch(expr, -1) {
		name := params.ExpressionAttributeNames[m[1]]
		if !equal(item[name], params.ExpressionAttributeValues[m[2]]) {
			return false
		}
	}
	return true
}

func equal(a, b types.AttributeValue) bool {
	switch av := a.(type) {
	case *types.AttributeValueMemberS:
		bv, ok := b.(*types.AttributeValueMemberS)
		return ok && av.Value == bv.Value
	case *types.AttributeValueMemberN:
		bv, ok := b.(*types.AttributeValueMemberN)
		return ok && av.Value == bv.Value
	case *types.AttributeValueMemberBOOL:
		bv, ok := b.(*types.AttributeValueMemberBOOL)
		return ok && av.Value == bv.Value
	}
	return false
}

func idOf(item map[string]types.AttributeValue) string {
	switch v := item["id"].(type) {
	case *types.AttributeValueMemberS:
		return v.Value
	case *types.AttributeValueMemberN:
		return v.Value
	}
	return ""
}

func numberAttr(item map[string]types.AttributeValue, name string) (int64, bool) {
	v, ok := item[name].(*types.AttributeValueMemberN)
	if !ok {
		return 0, false
	}
	n, err := strconv.ParseInt(v.Value, 10, 64)
	return n, err == nil
}

func numberValue(av types.AttributeValue) string {
	if v, ok := av.(*types.AttributeValueMemberN); ok {
		return v.Value
	}
	return ""
}

// lessID orders numeric ids numerically and everything else lexically.
func lessID(a, b string) bool {
	x, errA := strconv.ParseInt(a, 10, 64)
	y, errB := strconv.ParseInt(b, 10, 64)
	if errA == nil && errB == nil {
		return x < y
	}
	return a < b
}

func copyItem(item map[string]types.AttributeValue) map[string]types.AttributeValue {
	out := make(map[string]types.AttributeValue, len(item))
	for k, v := range item {
		out[k] = v
	}
	return out
}

func conditionFailed() error {
	return &types.ConditionalCheckFailedException{Message: aws.String("The conditional request failed")}
}
