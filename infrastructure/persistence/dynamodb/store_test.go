package dynamodb

import (
	"context"
	"errors"
	"testing"

	"moviereviews/application/ports"
	"moviereviews/domain/core/entities"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockDBClient struct {
	mock.Mock
}

func (m *mockDBClient) GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	args := m.Called(ctx, params)
	out, _ := args.Get(0).(*dynamodb.GetItemOutput)
	return out, args.Error(1)
}

func (m *mockDBClient) PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	args := m.Called(ctx, params)
	out, _ := args.Get(0).(*dynamodb.PutItemOutput)
	return out, args.Error(1)
}

func (m *mockDBClient) Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	args := m.Called(ctx, params)
	out, _ := args.Get(0).(*dynamodb.QueryOutput)
	return out, args.Error(1)
}

func (m *mockDBClient) Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error) {
	args := m.Called(ctx, params)
	out, _ := args.Get(0).(*dynamodb.ScanOutput)
	return out, args.Error(1)
}

func (m *mockDBClient) UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error) {
	args := m.Called(ctx, params)
	out, _ := args.Get(0).(*dynamodb.UpdateItemOutput)
	return out, args.Error(1)
}

func (m *mockDBClient) DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error) {
	args := m.Called(ctx, params)
	out, _ := args.Get(0).(*dynamodb.DeleteItemOutput)
	return out, args.Error(1)
}

func (m *mockDBClient) BatchWriteItem(ctx context.Context, params *dynamodb.BatchWriteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.BatchWriteItemOutput, error) {
	args := m.Called(ctx, params)
	out, _ := args.Get(0).(*dynamodb.BatchWriteItemOutput)
	return out, args.Error(1)
}

func newTestStore() (*Store, *mockDBClient) {
	client := new(mockDBClient)
	return NewStore(client, zap.NewNop()), client
}

func valueSet(values map[string]types.AttributeValue) []types.AttributeValue {
	set := make([]types.AttributeValue, 0, len(values))
	for _, v := range values {
		set = append(set, v)
	}
	return set
}

func nameSet(names map[string]string) []string {
	set := make([]string, 0, len(names))
	for _, n := range names {
		set = append(set, n)
	}
	return set
}

func TestStore_Get(t *testing.T) {
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		store, client := newTestStore()
		client.On("GetItem", ctx, mock.MatchedBy(func(in *dynamodb.GetItemInput) bool {
			return aws.ToString(in.TableName) == "Movies" &&
				assert.ObjectsAreEqual(&types.AttributeValueMemberN{Value: "1234"}, in.Key["movieId"])
		})).Return(&dynamodb.GetItemOutput{Item: map[string]types.AttributeValue{
			"movieId": &types.AttributeValueMemberN{Value: "1234"},
			"title":   &types.AttributeValueMemberS{Value: "Inception"},
		}}, nil)

		var movie entities.Movie
		found, err := store.Get(ctx, "Movies", ports.Key{"movieId": 1234}, &movie)

		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, 1234, movie.MovieID)
		assert.Equal(t, "Inception", movie.Title)
		client.AssertExpectations(t)
	})

	t.Run("missing", func(t *testing.T) {
		store, client := newTestStore()
		client.On("GetItem", ctx, mock.Anything).Return(&dynamodb.GetItemOutput{}, nil)

		var movie entities.Movie
		found, err := store.Get(ctx, "Movies", ports.Key{"movieId": 1}, &movie)

		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("error propagates", func(t *testing.T) {
		store, client := newTestStore()
		boom := errors.New("boom")
		client.On("GetItem", ctx, mock.Anything).Return(nil, boom)

		var movie entities.Movie
		_, err := store.Get(ctx, "Movies", ports.Key{"movieId": 1}, &movie)

		assert.ErrorIs(t, err, boom)
		client.AssertNumberOfCalls(t, "GetItem", 1)
	})
}

func TestStore_QueryWithFilter(t *testing.T) {
	ctx := context.Background()
	store, client := newTestStore()

	var captured *dynamodb.QueryInput
	client.On("Query", ctx, mock.Anything).Run(func(args mock.Arguments) {
		captured = args.Get(1).(*dynamodb.QueryInput)
	}).Return(&dynamodb.QueryOutput{Items: []map[string]types.AttributeValue{{
		"movieId":  &types.AttributeValueMemberN{Value: "1234"},
		"reviewId": &types.AttributeValueMemberN{Value: "1"},
		"rating":   &types.AttributeValueMemberN{Value: "4.8"},
	}}}, nil)

	var reviews []entities.MovieReview
	err := store.Query(ctx, ports.Query{
		Table: "MovieReviews",
		KeyCondition: ports.KeyCondition{
			PartitionKey:   "movieId",
			PartitionValue: 1234,
		},
		Filter: ports.GreaterThan("rating", 4.0),
	}, &reviews)

	require.NoError(t, err)
	require.Len(t, reviews, 1)
	assert.Equal(t, 4.8, reviews[0].Rating)

	require.NotNil(t, captured)
	assert.Equal(t, "MovieReviews", aws.ToString(captured.TableName))
	assert.Nil(t, captured.IndexName)
	assert.Contains(t, aws.ToString(captured.FilterExpression), ">")
	assert.ElementsMatch(t, []string{"movieId", "rating"}, nameSet(captured.ExpressionAttributeNames))
	assert.ElementsMatch(t, []types.AttributeValue{
		&types.AttributeValueMemberN{Value: "1234"},
		&types.AttributeValueMemberN{Value: "4"},
	}, valueSet(captured.ExpressionAttributeValues))
}

func TestStore_QueryIndexWithBeginsWith(t *testing.T) {
	ctx := context.Background()
	store, client := newTestStore()

	var captured *dynamodb.QueryInput
	client.On("Query", ctx, mock.Anything).Run(func(args mock.Arguments) {
		captured = args.Get(1).(*dynamodb.QueryInput)
	}).Return(&dynamodb.QueryOutput{}, nil)

	var cast []entities.MovieCast
	err := store.Query(ctx, ports.Query{
		Table: "MovieCast",
		Index: "roleIx",
		KeyCondition: ports.KeyCondition{
			PartitionKey:   "movieId",
			PartitionValue: 1234,
			SortKey:        "roleName",
			SortOp:         ports.SortBeginsWith,
			SortValue:      "Dom",
		},
	}, &cast)

	require.NoError(t, err)
	assert.Empty(t, cast)
	assert.Equal(t, "roleIx", aws.ToString(captured.IndexName))
	assert.Contains(t, aws.ToString(captured.KeyConditionExpression), "begins_with")
	assert.Nil(t, captured.FilterExpression)
	assert.ElementsMatch(t, []types.AttributeValue{
		&types.AttributeValueMemberN{Value: "1234"},
		&types.AttributeValueMemberS{Value: "Dom"},
	}, valueSet(captured.ExpressionAttributeValues))
}

func TestStore_QueryRejectsNonStringPrefix(t *testing.T) {
	store, client := newTestStore()

	err := store.Query(context.Background(), ports.Query{
		Table:  "MovieReviews",
		KeyCondition: ports.KeyCondition{PartitionKey: "movieId", PartitionValue: 1},
		Filter: &ports.Condition{Op: ports.OpBeginsWith, Attribute: "timestamp", Value: 2023},
	}, &[]entities.MovieReview{})

	assert.Error(t, err)
	client.AssertNotCalled(t, "Query", mock.Anything, mock.Anything)
}

func TestStore_UpdateConditionFailed(t *testing.T) {
	ctx := context.Background()
	store, client := newTestStore()

	var captured *dynamodb.UpdateItemInput
	client.On("UpdateItem", ctx, mock.Anything).Run(func(args mock.Arguments) {
		captured = args.Get(1).(*dynamodb.UpdateItemInput)
	}).Return(nil, &types.ConditionalCheckFailedException{Message: aws.String("The conditional request failed")})

	err := store.Update(ctx, ports.Update{
		Table:     "MovieReviews",
		Key:       ports.Key{"movieId": 1234, "reviewId": 1},
		Set:       map[string]any{"comment": "Updated"},
		Condition: ports.AttributeExists("movieId"),
	})

	assert.ErrorIs(t, err, ports.ErrConditionFailed)
	require.NotNil(t, captured)
	assert.Contains(t, aws.ToString(captured.UpdateExpression), "SET")
	assert.Contains(t, aws.ToString(captured.ConditionExpression), "attribute_exists")
	assert.Contains(t, valueSet(captured.ExpressionAttributeValues), types.AttributeValue(&types.AttributeValueMemberS{Value: "Updated"}))
	assert.Equal(t, &types.AttributeValueMemberN{Value: "1"}, captured.Key["reviewId"])
}

func TestStore_Delete(t *testing.T) {
	ctx := context.Background()
	store, client := newTestStore()
	client.On("DeleteItem", ctx, mock.MatchedBy(func(in *dynamodb.DeleteItemInput) bool {
		return aws.ToString(in.TableName) == "Movies" && in.ConditionExpression == nil
	})).Return(&dynamodb.DeleteItemOutput{}, nil)

	require.NoError(t, store.Delete(ctx, "Movies", ports.Key{"movieId": 1234}))
	client.AssertExpectations(t)
}

func TestStore_BatchPutChunks(t *testing.T) {
	ctx := context.Background()
	store, client := newTestStore()

	var sizes []int
	client.On("BatchWriteItem", ctx, mock.Anything).Run(func(args mock.Arguments) {
		in := args.Get(1).(*dynamodb.BatchWriteItemInput)
		sizes = append(sizes, len(in.RequestItems["Movies"]))
	}).Return(&dynamodb.BatchWriteItemOutput{}, nil)

	items := make([]any, 0, 60)
	for i := 0; i < 60; i++ {
		items = append(items, entities.Movie{MovieID: i, Title: "m"})
	}

	require.NoError(t, store.BatchPut(ctx, "Movies", items))
	assert.Equal(t, []int{25, 25, 10}, sizes)
}

func TestStore_BatchPutUnprocessed(t *testing.T) {
	ctx := context.Background()
	store, client := newTestStore()
	client.On("BatchWriteItem", ctx, mock.Anything).Return(&dynamodb.BatchWriteItemOutput{
		UnprocessedItems: map[string][]types.WriteRequest{"Movies": {{}}},
	}, nil)

	err := store.BatchPut(ctx, "Movies", []any{entities.Movie{MovieID: 1, Title: "m"}})

	assert.ErrorContains(t, err, "1 items unprocessed")
}
