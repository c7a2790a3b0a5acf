package handlers

import (
	"moviereviews/application/ports"
	"moviereviews/application/queries"
	"moviereviews/application/queries/bus"

	"go.uber.org/zap"
)

// Register wires every query handler into b.
func Register(b *bus.QueryBus, store ports.DocumentStore, tables ports.Tables, logger *zap.Logger) error {
	reviews := NewListReviewsHandler(store, tables)

	registrations := []struct {
		query   bus.Query
		handler bus.QueryHandler
	}{
		{&queries.GetMovieQuery{}, NewGetMovieHandler(store, tables, logger)},
		{&queries.ListMoviesQuery{}, NewListMoviesHandler(store, tables)},
		{&queries.ListCastQuery{}, NewListCastHandler(store, tables)},
		{&queries.GetReviewQuery{}, NewGetReviewHandler(store, tables)},
		{&queries.ListMovieReviewsQuery{}, reviews},
		{&queries.ListReviewsByYearQuery{}, reviews},
		{&queries.ListMovieReviewsByReviewerQuery{}, reviews},
		{&queries.ListReviewerReviewsQuery{}, reviews},
	}

	for _, r := range registrations {
		if err := b.Register(r.query, r.handler); err != nil {
			return err
		}
	}
	return nil
}
