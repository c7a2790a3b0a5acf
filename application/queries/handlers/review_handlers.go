package handlers

import (
	"context"
	"fmt"

	"moviereviews/application/ports"
	"moviereviews/application/queries"
	"moviereviews/application/queries/bus"
	"moviereviews/domain/core/entities"
	apperrors "moviereviews/pkg/errors"
)

// GetReviewHandler handles GetReviewQuery
type GetReviewHandler struct {
	store  ports.DocumentStore
	tables ports.Tables
}

// NewGetReviewHandler creates a new GetReviewHandler
func NewGetReviewHandler(store ports.DocumentStore, tables ports.Tables) *GetReviewHandler {
	return &GetReviewHandler{store: store, tables: tables}
}

// Handle returns *entities.MovieReview
func (h *GetReviewHandler) Handle(ctx context.Context, query bus.Query) (interface{}, error) {
	q, ok := query.(*queries.GetReviewQuery)
	if !ok {
		return nil, fmt.Errorf("unexpected query type %T", query)
	}

	var review entities.MovieReview
	found, err := h.store.Get(ctx, h.tables.Reviews, q.Key(), &review)
	if err != nil {
		return nil, apperrors.NewDatabaseError("GetItem", err)
	}
	if !found {
		return nil, apperrors.NewNotFoundError("review")
	}
	return &review, nil
}

// reviewQuery is implemented by every query that reads a list of reviews
// through a single store query.
type reviewQuery interface {
	bus.Query
	Build(t ports.Tables) ports.Query
}

// emptyQuery is implemented by queries that can tell up front that nothing
// will match.
type emptyQuery interface {
	MatchesNothing() bool
}

// ListReviewsHandler serves all review list queries.
type ListReviewsHandler struct {
	store  ports.DocumentStore
	tables ports.Tables
}

// NewListReviewsHandler creates a new ListReviewsHandler
func NewListReviewsHandler(store ports.DocumentStore, tables ports.Tables) *ListReviewsHandler {
	return &ListReviewsHandler{store: store, tables: tables}
}

// Handle returns []entities.MovieReview
func (h *ListReviewsHandler) Handle(ctx context.Context, query bus.Query) (interface{}, error) {
	q, ok := query.(reviewQuery)
	if !ok {
		return nil, fmt.Errorf("unexpected query type %T", query)
	}

	reviews := []entities.MovieReview{}
	if eq, ok := q.(emptyQuery); ok && eq.MatchesNothing() {
		return reviews, nil
	}
	if err := h.store.Query(ctx, q.Build(h.tables), &reviews); err != nil {
		return nil, apperrors.NewDatabaseError("Query", err)
	}
	return reviews, nil
}
