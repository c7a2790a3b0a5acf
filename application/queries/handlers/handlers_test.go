package handlers

import (
	"context"
	"errors"
	"math"
	"testing"

	"moviereviews/application/ports"
	"moviereviews/application/queries"
	"moviereviews/application/queries/bus"
	"moviereviews/domain/core/entities"
	"moviereviews/infrastructure/persistence/memory"
	"moviereviews/infrastructure/persistence/schema"
	apperrors "moviereviews/pkg/errors"
	"moviereviews/pkg/params"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var tables = ports.Tables{
	Movies:        "Movies",
	Reviews:       "MovieReviews",
	Cast:          "MovieCast",
	ReviewerIndex: "ReviewerIndex",
	RoleIndex:     "roleIx",
}

func newQueryBus(t *testing.T, store ports.DocumentStore) *bus.QueryBus {
	t.Helper()
	b := bus.NewQueryBus()
	require.NoError(t, Register(b, store, tables, zap.NewNop()))
	return b
}

func seededStore(t *testing.T) *memory.Store {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore(schema.NewCatalog(schema.Names{
		Movies:        tables.Movies,
		Reviews:       tables.Reviews,
		Cast:          tables.Cast,
		ReviewerIndex: tables.ReviewerIndex,
		RoleIndex:     tables.RoleIndex,
	}))
	require.NoError(t, store.Put(ctx, tables.Movies, entities.Movie{MovieID: 1234, Title: "Inception"}))
	require.NoError(t, store.BatchPut(ctx, tables.Cast, []any{
		entities.MovieCast{MovieID: 1234, ActorName: "Leonardo DiCaprio", RoleName: "Cobb"},
		entities.MovieCast{MovieID: 1234, ActorName: "Tom Hardy", RoleName: "Eames"},
	}))
	require.NoError(t, store.BatchPut(ctx, tables.Reviews, []any{
		entities.MovieReview{MovieID: 1234, ReviewID: 1, ReviewerName: "Alice", Rating: 4.8, Timestamp: "2023-11-23T15:45:00Z"},
		entities.MovieReview{MovieID: 1234, ReviewID: 2, ReviewerName: "Bob", Rating: 3.5, Timestamp: "2022-02-01T08:00:00Z"},
		entities.MovieReview{MovieID: 1234, ReviewID: 3, Rating: 4.0, Timestamp: "2023-03-01T08:00:00Z"},
		entities.MovieReview{MovieID: 77, ReviewID: 9, ReviewerName: "Alice", Rating: 1, Timestamp: "2020-01-01T00:00:00Z"},
	}))
	return store
}

func reviewIDs(t *testing.T, result interface{}) []int {
	t.Helper()
	reviews, ok := result.([]entities.MovieReview)
	require.True(t, ok, "unexpected result %T", result)
	ids := []int{}
	for _, r := range reviews {
		ids = append(ids, r.ReviewID)
	}
	return ids
}

func TestGetMovie(t *testing.T) {
	b := newQueryBus(t, seededStore(t))
	ctx := context.Background()

	result, err := b.Ask(ctx, &queries.GetMovieQuery{MovieID: params.ParsedInt{Value: 1234}})
	require.NoError(t, err)
	got := result.(*queries.GetMovieResult)
	assert.Equal(t, "Inception", got.Movie.Title)
	assert.Nil(t, got.Cast)

	result, err = b.Ask(ctx, &queries.GetMovieQuery{MovieID: params.ParsedInt{Value: 1234}, IncludeCast: true})
	require.NoError(t, err)
	assert.Len(t, result.(*queries.GetMovieResult).Cast, 2)

	_, err = b.Ask(ctx, &queries.GetMovieQuery{MovieID: params.ParsedInt{Value: 1}})
	assert.True(t, apperrors.IsNotFound(err))
}

func TestListMoviesAndCast(t *testing.T) {
	b := newQueryBus(t, seededStore(t))
	ctx := context.Background()

	result, err := b.Ask(ctx, &queries.ListMoviesQuery{})
	require.NoError(t, err)
	assert.Len(t, result.([]entities.Movie), 1)

	result, err = b.Ask(ctx, &queries.ListCastQuery{MovieID: params.ParsedInt{Value: 1234}, RoleName: &params.RawString{Value: "Ea"}})
	require.NoError(t, err)
	cast := result.([]entities.MovieCast)
	require.Len(t, cast, 1)
	assert.Equal(t, "Tom Hardy", cast[0].ActorName)
}

func TestReviewQueries(t *testing.T) {
	b := newQueryBus(t, seededStore(t))
	ctx := context.Background()
	movie := params.ParsedInt{Value: 1234}

	tests := []struct {
		name  string
		query bus.Query
		want  []int
	}{
		{name: "all for movie", query: &queries.ListMovieReviewsQuery{MovieID: movie}, want: []int{1, 2, 3}},
		{name: "min rating is strict", query: &queries.ListMovieReviewsQuery{MovieID: movie, MinRating: &params.ParsedFloat{Value: 4.0}}, want: []int{1}},
		{name: "min rating above all", query: &queries.ListMovieReviewsQuery{MovieID: movie, MinRating: &params.ParsedFloat{Value: 5}}, want: []int{}},
		{name: "by year", query: &queries.ListReviewsByYearQuery{MovieID: movie, Year: params.RawString{Value: "2023"}}, want: []int{1, 3}},
		{name: "by reviewer for movie", query: &queries.ListMovieReviewsByReviewerQuery{MovieID: movie, ReviewerName: params.RawString{Value: "Bob"}}, want: []int{2}},
		{name: "reviewer across movies", query: &queries.ListReviewerReviewsQuery{ReviewerName: params.RawString{Value: "Alice"}}, want: []int{9, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := b.Ask(ctx, tt.query)
			require.NoError(t, err)
			assert.ElementsMatch(t, tt.want, reviewIDs(t, result))
		})
	}
}

func TestGetReview(t *testing.T) {
	b := newQueryBus(t, seededStore(t))
	ctx := context.Background()

	result, err := b.Ask(ctx, &queries.GetReviewQuery{MovieID: params.ParsedInt{Value: 1234}, ReviewID: params.ParsedInt{Value: 1}})
	require.NoError(t, err)
	assert.Equal(t, 4.8, result.(*entities.MovieReview).Rating)

	_, err = b.Ask(ctx, &queries.GetReviewQuery{MovieID: params.ParsedInt{Value: 1234}, ReviewID: params.ParsedInt{Value: 42}})
	assert.True(t, apperrors.IsNotFound(err))
}

type mockStore struct {
	mock.Mock
	ports.DocumentStore
}

func (m *mockStore) Scan(ctx context.Context, table string, out any) error {
	return m.Called(ctx, table, out).Error(0)
}

func TestListMovies_StoreErrorIsDatabaseError(t *testing.T) {
	store := new(mockStore)
	store.On("Scan", mock.Anything, "Movies", mock.Anything).Return(errors.New("throttled"))

	_, err := newQueryBus(t, store).Ask(context.Background(), &queries.ListMoviesQuery{})

	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeDatabase))
	store.AssertExpectations(t)
}

func TestListMovieReviews_InfiniteMinRatingSkipsStore(t *testing.T) {
	store := new(mockStore)

	result, err := newQueryBus(t, store).Ask(context.Background(), &queries.ListMovieReviewsQuery{
		MovieID:   params.ParsedInt{Value: 1234},
		MinRating: &params.ParsedFloat{Value: math.Inf(1)},
	})

	require.NoError(t, err)
	assert.Equal(t, []entities.MovieReview{}, result)
	store.AssertExpectations(t)
}
