// Package dynamodb implements ports.DocumentStore on Amazon DynamoDB.
package dynamodb

import (
	"context"
	"errors"
	"fmt"

	"moviereviews/application/ports"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"
)

// maxBatchWrite is the BatchWriteItem request limit.
const maxBatchWrite = 25

// Store implements ports.DocumentStore.
type Store struct {
	client DBClient
	logger *zap.Logger
}

// NewStore creates a new DynamoDB-backed store
func NewStore(client DBClient, logger *zap.Logger) *Store {
	return &Store{client: client, logger: logger}
}

var _ ports.DocumentStore = (*Store)(nil)

func marshalKey(key ports.Key) (map[string]types.AttributeValue, error) {
	av, err := attributevalue.MarshalMap(map[string]any(key))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal key: %w", err)
	}
	return av, nil
}

// Get reads a single item by primary key
func (s *Store) Get(ctx context.Context, table string, key ports.Key, out any) (bool, error) {
	av, err := marshalKey(key)
	if err != nil {
		return false, err
	}

	result, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(table),
		Key:       av,
	})
	if err != nil {
		return false, fmt.Errorf("failed to get item from %s: %w", table, err)
	}
	if len(result.Item) == 0 {
		return false, nil
	}

	if err := attributevalue.UnmarshalMap(result.Item, out); err != nil {
		return false, fmt.Errorf("failed to unmarshal item from %s: %w", table, err)
	}
	return true, nil
}

// Query reads the first page of a partition
func (s *Store) Query(ctx context.Context, q ports.Query, out any) error {
	expr, err := queryExpression(q)
	if err != nil {
		return err
	}

	input := &dynamodb.QueryInput{
		TableName:                 aws.String(q.Table),
		KeyConditionExpression:    expr.KeyCondition(),
		FilterExpression:          expr.Filter(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	}
	if q.Index != "" {
		input.IndexName = aws.String(q.Index)
	}

	result, err := s.client.Query(ctx, input)
	if err != nil {
		return fmt.Errorf("failed to query %s: %w", q.Table, err)
	}

	s.logger.Debug("Query completed",
		zap.String("table", q.Table),
		zap.String("index", q.Index),
		zap.Int32("count", result.Count),
		zap.Int32("scanned", result.ScannedCount),
	)

	if err := attributevalue.UnmarshalListOfMaps(result.Items, out); err != nil {
		return fmt.Errorf("failed to unmarshal query results from %s: %w", q.Table, err)
	}
	return nil
}

// Scan reads the first page of a whole table
func (s *Store) Scan(ctx context.Context, table string, out any) error {
	result, err := s.client.Scan(ctx, &dynamodb.ScanInput{
		TableName: aws.String(table),
	})
	if err != nil {
		return fmt.Errorf("failed to scan %s: %w", table, err)
	}

	if err := attributevalue.UnmarshalListOfMaps(result.Items, out); err != nil {
		return fmt.Errorf("failed to unmarshal scan results from %s: %w", table, err)
	}
	return nil
}

// Put writes an item
func (s *Store) Put(ctx context.Context, table string, item any) error {
	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return fmt.Errorf("failed to marshal item: %w", err)
	}

	if _, err := s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(table),
		Item:      av,
	}); err != nil {
		return fmt.Errorf("failed to put item into %s: %w", table, err)
	}
	return nil
}

// Update applies a SET update, honoring the optional condition
func (s *Store) Update(ctx context.Context, u ports.Update) error {
	key, err := marshalKey(u.Key)
	if err != nil {
		return err
	}

	expr, err := updateExpression(u)
	if err != nil {
		return err
	}

	_, err = s.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(u.Table),
		Key:                       key,
		UpdateExpression:          expr.Update(),
		ConditionExpression:       expr.Condition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return fmt.Errorf("update on %s: %w", u.Table, ports.ErrConditionFailed)
		}
		return fmt.Errorf("failed to update item in %s: %w", u.Table, err)
	}
	return nil
}

// Delete removes an item unconditionally
func (s *Store) Delete(ctx context.Context, table string, key ports.Key) error {
	av, err := marshalKey(key)
	if err != nil {
		return err
	}

	if _, err := s.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(table),
		Key:       av,
	}); err != nil {
		return fmt.Errorf("failed to delete item from %s: %w", table, err)
	}
	return nil
}

// BatchPut writes items in chunks of 25. Items the service reports as
// unprocessed are not retried.
func (s *Store) BatchPut(ctx context.Context, table string, items []any) error {
	for start := 0; start < len(items); start += maxBatchWrite {
		end := start + maxBatchWrite
		if end > len(items) {
			end = len(items)
		}

		requests := make([]types.WriteRequest, 0, end-start)
		for _, item := range items[start:end] {
			av, err := attributevalue.MarshalMap(item)
			if err != nil {
				return fmt.Errorf("failed to marshal item: %w", err)
			}
			requests = append(requests, types.WriteRequest{
				PutRequest: &types.PutRequest{Item: av},
			})
		}

		result, err := s.client.BatchWriteItem(ctx, &dynamodb.BatchWriteItemInput{
			RequestItems: map[string][]types.WriteRequest{table: requests},
		})
		if err != nil {
			return fmt.Errorf("failed to batch write to %s: %w", table, err)
		}
		if unprocessed := len(result.UnprocessedItems[table]); unprocessed > 0 {
			return fmt.Errorf("batch write to %s left %d items unprocessed", table, unprocessed)
		}

		s.logger.Debug("Batch written",
			zap.String("table", table),
			zap.Int("items", len(requests)),
		)
	}
	return nil
}
