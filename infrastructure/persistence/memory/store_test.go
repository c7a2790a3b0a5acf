package memory

import (
	"context"
	"testing"

	"moviereviews/application/ports"
	"moviereviews/domain/core/entities"
	"moviereviews/infrastructure/persistence/schema"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store := NewStore(schema.NewCatalog(schema.Names{
		Movies:        "Movies",
		Reviews:       "MovieReviews",
		Cast:          "MovieCast",
		ReviewerIndex: "ReviewerIndex",
		RoleIndex:     "roleIx",
	}))

	ctx := context.Background()
	reviews := []any{
		entities.MovieReview{MovieID: 1234, ReviewID: 3, UserID: 3, ReviewerName: "Bob", Rating: 4.0, Comment: "ok", Timestamp: "2022-01-10T10:00:00Z"},
		entities.MovieReview{MovieID: 1234, ReviewID: 1, UserID: 1, ReviewerName: "Alice", Rating: 4.8, Comment: "great", Timestamp: "2023-11-23T15:45:00Z"},
		entities.MovieReview{MovieID: 1234, ReviewID: 2, UserID: 2, Rating: 3.5, Comment: "meh", Timestamp: "2023-02-01T08:00:00Z"},
		entities.MovieReview{MovieID: 99, ReviewID: 1, UserID: 1, ReviewerName: "Alice", Rating: 2, Comment: "bad", Timestamp: "2021-05-05T00:00:00Z"},
	}
	require.NoError(t, store.BatchPut(ctx, "MovieReviews", reviews))
	return store
}

func TestStore_PutGetDelete(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	movie := entities.Movie{MovieID: 1234, Title: "Inception", GenreIDs: []int{28, 878}, Popularity: 10.5}
	require.NoError(t, store.Put(ctx, "Movies", movie))

	var got entities.Movie
	found, err := store.Get(ctx, "Movies", ports.Key{"movieId": 1234}, &got)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, movie, got)

	require.NoError(t, store.Delete(ctx, "Movies", ports.Key{"movieId": 1234}))
	require.NoError(t, store.Delete(ctx, "Movies", ports.Key{"movieId": 1234}))

	found, err = store.Get(ctx, "Movies", ports.Key{"movieId": 1234}, &got)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestStore_UnknownTable(t *testing.T) {
	store := newTestStore(t)
	var movies []entities.Movie
	assert.Error(t, store.Scan(context.Background(), "Nope", &movies))
}

func TestStore_QueryOrdersBySortKey(t *testing.T) {
	store := newTestStore(t)

	var reviews []entities.MovieReview
	err := store.Query(context.Background(), ports.Query{
		Table:        "MovieReviews",
		KeyCondition: ports.KeyCondition{PartitionKey: "movieId", PartitionValue: 1234},
	}, &reviews)

	require.NoError(t, err)
	require.Len(t, reviews, 3)
	assert.Equal(t, []int{1, 2, 3}, []int{reviews[0].ReviewID, reviews[1].ReviewID, reviews[2].ReviewID})
}

func TestStore_QueryFilters(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	partition := ports.KeyCondition{PartitionKey: "movieId", PartitionValue: 1234}

	tests := []struct {
		name   string
		filter *ports.Condition
		want   []int
	}{
		{name: "strict greater than", filter: ports.GreaterThan("rating", 4.0), want: []int{1}},
		{name: "greater than below all", filter: ports.GreaterThan("rating", 1), want: []int{1, 2, 3}},
		{name: "year prefix", filter: ports.BeginsWith("timestamp", "2023"), want: []int{1, 2}},
		{name: "reviewer", filter: ports.Equal("reviewerName", "Bob"), want: []int{3}},
		{name: "missing attribute never matches", filter: ports.Equal("reviewerName", ""), want: []int{}},
		{name: "and", filter: ports.And(ports.BeginsWith("timestamp", "2023"), ports.GreaterThan("rating", 4)), want: []int{1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var reviews []entities.MovieReview
			err := store.Query(ctx, ports.Query{Table: "MovieReviews", KeyCondition: partition, Filter: tt.filter}, &reviews)
			require.NoError(t, err)

			ids := []int{}
			for _, r := range reviews {
				ids = append(ids, r.ReviewID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestStore_QueryGlobalIndex(t *testing.T) {
	store := newTestStore(t)

	var reviews []entities.MovieReview
	err := store.Query(context.Background(), ports.Query{
		Table:        "MovieReviews",
		Index:        "ReviewerIndex",
		KeyCondition: ports.KeyCondition{PartitionKey: "reviewerName", PartitionValue: "Alice"},
	}, &reviews)

	require.NoError(t, err)
	require.Len(t, reviews, 2)
	for _, r := range reviews {
		assert.Equal(t, "Alice", r.ReviewerName)
	}
}

func TestStore_QueryWrongKeyRejected(t *testing.T) {
	store := newTestStore(t)

	var reviews []entities.MovieReview
	err := store.Query(context.Background(), ports.Query{
		Table:        "MovieReviews",
		KeyCondition: ports.KeyCondition{PartitionKey: "reviewerName", PartitionValue: "Alice"},
	}, &reviews)

	assert.Error(t, err)
}

func TestStore_QueryLocalIndexBeginsWith(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, store.BatchPut(ctx, "MovieCast", []any{
		entities.MovieCast{MovieID: 1, ActorName: "Leonardo DiCaprio", RoleName: "Cobb"},
		entities.MovieCast{MovieID: 1, ActorName: "Elliot Page", RoleName: "Ariadne"},
		entities.MovieCast{MovieID: 1, ActorName: "Tom Hardy", RoleName: "Eames"},
	}))

	var cast []entities.MovieCast
	err := store.Query(ctx, ports.Query{
		Table: "MovieCast",
		Index: "roleIx",
		KeyCondition: ports.KeyCondition{
			PartitionKey: "movieId", PartitionValue: 1,
			SortKey: "roleName", SortOp: ports.SortBeginsWith, SortValue: "E",
		},
	}, &cast)

	require.NoError(t, err)
	require.Len(t, cast, 1)
	assert.Equal(t, "Tom Hardy", cast[0].ActorName)
}

func TestStore_UpdateConditional(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	err := store.Update(ctx, ports.Update{
		Table:     "MovieReviews",
		Key:       ports.Key{"movieId": 1234, "reviewId": 1},
		Set:       map[string]any{"comment": "changed my mind"},
		Condition: ports.AttributeExists("movieId"),
	})
	require.NoError(t, err)

	var review entities.MovieReview
	found, err := store.Get(ctx, "MovieReviews", ports.Key{"movieId": 1234, "reviewId": 1}, &review)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "changed my mind", review.Comment)
	assert.Equal(t, 4.8, review.Rating)
	assert.Equal(t, "Alice", review.ReviewerName)

	err = store.Update(ctx, ports.Update{
		Table:     "MovieReviews",
		Key:       ports.Key{"movieId": 1234, "reviewId": 42},
		Set:       map[string]any{"comment": "ghost"},
		Condition: ports.AttributeExists("movieId"),
	})
	assert.ErrorIs(t, err, ports.ErrConditionFailed)
	assert.Equal(t, 4, store.Len("MovieReviews"))
}

func TestStore_PutRequiresKey(t *testing.T) {
	store := newTestStore(t)
	err := store.Put(context.Background(), "MovieCast", map[string]any{"movieId": 1})
	assert.Error(t, err)
}
