// Package memory is an in-process ports.DocumentStore used for local runs
// and tests. Items are held in their DynamoDB attribute form so that
// marshalling behaves exactly as it does against the real service.
package memory

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"

	"moviereviews/application/ports"
	"moviereviews/infrastructure/persistence/schema"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/aws/smithy-go"
)

type item = map[string]types.AttributeValue

// Store implements ports.DocumentStore in memory.
type Store struct {
	mu      sync.RWMutex
	catalog schema.Catalog
	tables  map[string]map[string]item
}

// NewStore creates an empty store for the tables of catalog
func NewStore(catalog schema.Catalog) *Store {
	tables := make(map[string]map[string]item)
	for _, t := range catalog.All() {
		tables[t.Name] = make(map[string]item)
	}
	return &Store{catalog: catalog, tables: tables}
}

var _ ports.DocumentStore = (*Store)(nil)

func (s *Store) table(name string) (schema.Table, map[string]item, error) {
	t, ok := s.catalog.Lookup(name)
	if !ok {
		return schema.Table{}, nil, &types.ResourceNotFoundException{Message: aws.String("Requested resource not found: " + name)}
	}
	return t, s.tables[name], nil
}

// Get reads a single item by primary key
func (s *Store) Get(ctx context.Context, table string, key ports.Key, out any) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, rows, err := s.table(table)
	if err != nil {
		return false, err
	}
	av, err := attributevalue.MarshalMap(map[string]any(key))
	if err != nil {
		return false, fmt.Errorf("failed to marshal key: %w", err)
	}
	id, err := primaryKey(t, av)
	if err != nil {
		return false, err
	}

	row, ok := rows[id]
	if !ok {
		return false, nil
	}
	if err := attributevalue.UnmarshalMap(row, out); err != nil {
		return false, fmt.Errorf("failed to unmarshal item from %s: %w", table, err)
	}
	return true, nil
}

// Query reads a partition of a table or index
func (s *Store) Query(ctx context.Context, q ports.Query, out any) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, rows, err := s.table(q.Table)
	if err != nil {
		return err
	}

	partitionKey, sortKey := t.PartitionKey.Name, ""
	if t.SortKey != nil {
		sortKey = t.SortKey.Name
	}
	if q.Index != "" {
		idx, ok := t.Index(q.Index)
		if !ok {
			return &types.ResourceNotFoundException{Message: aws.String("Requested index not found: " + q.Index)}
		}
		partitionKey, sortKey = idx.PartitionKey.Name, ""
		if idx.SortKey != nil {
			sortKey = idx.SortKey.Name
		}
	}

	kc := q.KeyCondition
	if kc.PartitionKey != partitionKey {
		return validationError("Query condition missed key schema element: " + partitionKey)
	}
	if kc.SortKey != "" && kc.SortKey != sortKey {
		return validationError("Query key condition not supported: " + kc.SortKey)
	}

	keyCond := ports.Equal(kc.PartitionKey, kc.PartitionValue)
	if kc.SortKey != "" {
		switch kc.SortOp {
		case ports.SortBeginsWith:
			prefix, ok := kc.SortValue.(string)
			if !ok {
				return fmt.Errorf("begins_with on %s requires a string prefix", kc.SortKey)
			}
			keyCond = ports.And(keyCond, ports.BeginsWith(kc.SortKey, prefix))
		default:
			keyCond = ports.And(keyCond, ports.Equal(kc.SortKey, kc.SortValue))
		}
	}

	var matched []item
	for _, row := range rows {
		// Index queries only see items carrying the index keys.
		if _, ok := row[partitionKey]; !ok {
			continue
		}
		if sortKey != "" {
			if _, ok := row[sortKey]; !ok {
				continue
			}
		}

		ok, err := evaluate(keyCond, row)
		if err != nil {
			return err
		}
		if !ok {
			continue
		}
		if q.Filter != nil {
			ok, err := evaluate(q.Filter, row)
			if err != nil {
				return err
			}
			if !ok {
				continue
			}
		}
		matched = append(matched, row)
	}

	order := t.KeyNames()
	if sortKey != "" {
		order = append([]string{sortKey}, order...)
	}
	sortItems(matched, order)

	return unmarshalList(matched, out)
}

// Scan reads every item of a table in primary key order
func (s *Store) Scan(ctx context.Context, table string, out any) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, rows, err := s.table(table)
	if err != nil {
		return err
	}

	all := make([]item, 0, len(rows))
	for _, row := range rows {
		all = append(all, row)
	}
	sortItems(all, t.KeyNames())

	return unmarshalList(all, out)
}

// Put writes an item
func (s *Store) Put(ctx context.Context, table string, value any) error {
	av, err := attributevalue.MarshalMap(value)
	if err != nil {
		return fmt.Errorf("failed to marshal item: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.put(table, av)
}

func (s *Store) put(table string, av item) error {
	t, rows, err := s.table(table)
	if err != nil {
		return err
	}
	id, err := primaryKey(t, av)
	if err != nil {
		return err
	}
	rows[id] = av
	return nil
}

// Update applies a SET update. As in DynamoDB, updating a missing item
// without a condition creates it.
func (s *Store) Update(ctx context.Context, u ports.Update) error {
	key, err := attributevalue.MarshalMap(map[string]any(u.Key))
	if err != nil {
		return fmt.Errorf("failed to marshal key: %w", err)
	}
	set, err := attributevalue.MarshalMap(u.Set)
	if err != nil {
		return fmt.Errorf("failed to marshal update: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	t, rows, err := s.table(u.Table)
	if err != nil {
		return err
	}
	id, err := primaryKey(t, key)
	if err != nil {
		return err
	}

	existing := rows[id]
	if u.Condition != nil {
		ok, err := evaluate(u.Condition, existing)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("update on %s: %w", u.Table, ports.ErrConditionFailed)
		}
	}

	updated := make(item, len(existing)+len(set))
	for name, v := range existing {
		updated[name] = v
	}
	for name, v := range key {
		updated[name] = v
	}
	for name, v := range set {
		updated[name] = v
	}
	rows[id] = updated
	return nil
}

// Delete removes an item
func (s *Store) Delete(ctx context.Context, table string, key ports.Key) error {
	av, err := attributevalue.MarshalMap(map[string]any(key))
	if err != nil {
		return fmt.Errorf("failed to marshal key: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	t, rows, err := s.table(table)
	if err != nil {
		return err
	}
	id, err := primaryKey(t, av)
	if err != nil {
		return err
	}
	delete(rows, id)
	return nil
}

// BatchPut writes every item
func (s *Store) BatchPut(ctx context.Context, table string, items []any) error {
	marshalled := make([]item, 0, len(items))
	for _, v := range items {
		av, err := attributevalue.MarshalMap(v)
		if err != nil {
			return fmt.Errorf("failed to marshal item: %w", err)
		}
		marshalled = append(marshalled, av)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, av := range marshalled {
		if err := s.put(table, av); err != nil {
			return err
		}
	}
	return nil
}

// Len reports the number of items in a table.
func (s *Store) Len(table string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tables[table])
}

func validationError(message string) error {
	return &smithy.GenericAPIError{Code: "ValidationException", Message: message}
}

func primaryKey(t schema.Table, av item) (string, error) {
	parts := make([]string, 0, 2)
	for _, name := range t.KeyNames() {
		v, ok := av[name]
		if !ok {
			return "", validationError("Missing the key " + name + " in the item")
		}
		switch tv := v.(type) {
		case *types.AttributeValueMemberN:
			f, err := strconv.ParseFloat(tv.Value, 64)
			if err != nil {
				return "", fmt.Errorf("invalid number for key %s: %w", name, err)
			}
			parts = append(parts, "N:"+strconv.FormatFloat(f, 'g', -1, 64))
		case *types.AttributeValueMemberS:
			parts = append(parts, "S:"+tv.Value)
		default:
			return "", validationError("Invalid attribute type for key " + name)
		}
	}
	return strings.Join(parts, "|"), nil
}

func sortItems(items []item, order []string) {
	sort.SliceStable(items, func(i, j int) bool {
		for _, name := range order {
			c, ok := compare(items[i][name], items[j][name])
			if !ok || c == 0 {
				continue
			}
			return c < 0
		}
		return false
	})
}

func unmarshalList(items []item, out any) error {
	if items == nil {
		items = []item{}
	}
	if err := attributevalue.UnmarshalListOfMaps(items, out); err != nil {
		return fmt.Errorf("failed to unmarshal items: %w", err)
	}
	return nil
}
