package handlers

import (
	"context"
	"fmt"

	"moviereviews/application/ports"
	"moviereviews/application/queries"
	"moviereviews/application/queries/bus"
	"moviereviews/domain/core/entities"
	apperrors "moviereviews/pkg/errors"

	"go.uber.org/zap"
)

// GetMovieHandler handles GetMovieQuery
type GetMovieHandler struct {
	store  ports.DocumentStore
	tables ports.Tables
	logger *zap.Logger
}

// NewGetMovieHandler creates a new GetMovieHandler
func NewGetMovieHandler(store ports.DocumentStore, tables ports.Tables, logger *zap.Logger) *GetMovieHandler {
	return &GetMovieHandler{store: store, tables: tables, logger: logger}
}

// Handle returns *queries.GetMovieResult
func (h *GetMovieHandler) Handle(ctx context.Context, query bus.Query) (interface{}, error) {
	q, ok := query.(*queries.GetMovieQuery)
	if !ok {
		return nil, fmt.Errorf("unexpected query type %T", query)
	}

	var movie entities.Movie
	found, err := h.store.Get(ctx, h.tables.Movies, q.Key(), &movie)
	if err != nil {
		return nil, apperrors.NewDatabaseError("GetItem", err)
	}
	if !found {
		return nil, apperrors.NewNotFoundError("movie")
	}

	result := &queries.GetMovieResult{Movie: movie}
	if q.IncludeCast {
		cast := []entities.MovieCast{}
		if err := h.store.Query(ctx, q.CastQuery(h.tables), &cast); err != nil {
			return nil, apperrors.NewDatabaseError("Query", err)
		}
		result.Cast = cast
		h.logger.Debug("Loaded movie cast",
			zap.Int("movieId", movie.MovieID),
			zap.Int("castCount", len(cast)),
		)
	}

	return result, nil
}

// ListMoviesHandler handles ListMoviesQuery
type ListMoviesHandler struct {
	store  ports.DocumentStore
	tables ports.Tables
}

// NewListMoviesHandler creates a new ListMoviesHandler
func NewListMoviesHandler(store ports.DocumentStore, tables ports.Tables) *ListMoviesHandler {
	return &ListMoviesHandler{store: store, tables: tables}
}

// Handle returns []entities.Movie
func (h *ListMoviesHandler) Handle(ctx context.Context, query bus.Query) (interface{}, error) {
	if _, ok := query.(*queries.ListMoviesQuery); !ok {
		return nil, fmt.Errorf("unexpected query type %T", query)
	}

	movies := []entities.Movie{}
	if err := h.store.Scan(ctx, h.tables.Movies, &movies); err != nil {
		return nil, apperrors.NewDatabaseError("Scan", err)
	}
	return movies, nil
}

// ListCastHandler handles ListCastQuery
type ListCastHandler struct {
	store  ports.DocumentStore
	tables ports.Tables
}

// NewListCastHandler creates a new ListCastHandler
func NewListCastHandler(store ports.DocumentStore, tables ports.Tables) *ListCastHandler {
	return &ListCastHandler{store: store, tables: tables}
}

// Handle returns []entities.MovieCast
func (h *ListCastHandler) Handle(ctx context.Context, query bus.Query) (interface{}, error) {
	q, ok := query.(*queries.ListCastQuery)
	if !ok {
		return nil, fmt.Errorf("unexpected query type %T", query)
	}

	cast := []entities.MovieCast{}
	if err := h.store.Query(ctx, q.Build(h.tables), &cast); err != nil {
		return nil, apperrors.NewDatabaseError("Query", err)
	}
	return cast, nil
}
