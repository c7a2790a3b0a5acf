package ports

import (
	"context"
	"errors"
)

// ErrConditionFailed is returned when a conditional write does not hold.
var ErrConditionFailed = errors.New("condition check failed")

// Key identifies a single item by its primary key attributes.
type Key map[string]any

// DocumentStore is the single seam between the application and the
// key-value/document engine. Implementations do not retry; every error is
// returned to the caller.
type DocumentStore interface {
	// Get reads one item into out. found is false when no item has the key.
	Get(ctx context.Context, table string, key Key, out any) (found bool, err error)

	// Query reads the items of one partition (optionally through an index)
	// into out, a pointer to a slice. Only the first page is returned.
	Query(ctx context.Context, q Query, out any) error

	// Scan reads every item of a table into out.
	Scan(ctx context.Context, table string, out any) error

	// Put writes an item, replacing any item with the same key.
	Put(ctx context.Context, table string, item any) error

	// Update sets attributes on an existing item.
	Update(ctx context.Context, u Update) error

	// Delete removes an item. Deleting a missing item is not an error.
	Delete(ctx context.Context, table string, key Key) error

	// BatchPut writes items in chunks of the engine's batch limit.
	BatchPut(ctx context.Context, table string, items []any) error
}

// SortOperator is the comparison applied to a sort key in a key condition.
type SortOperator string

const (
	SortEqual      SortOperator = "="
	SortBeginsWith SortOperator = "begins_with"
)

// KeyCondition selects a partition and optionally narrows its sort key.
type KeyCondition struct {
	PartitionKey   string
	PartitionValue any
	SortKey        string
	SortOp         SortOperator
	SortValue      any
}

// Query describes a partition read.
type Query struct {
	Table        string
	Index        string
	KeyCondition KeyCondition
	Filter       *Condition
}

// Update describes a SET update against a single item.
type Update struct {
	Table     string
	Key       Key
	Set       map[string]any
	Condition *Condition
}

// Tables carries the physical table and index names the application uses.
type Tables struct {
	Movies        string
	Reviews       string
	Cast          string
	ReviewerIndex string
	RoleIndex     string
}
