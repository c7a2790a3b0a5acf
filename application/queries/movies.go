package queries

import (
	"moviereviews/application/ports"
	"moviereviews/domain/core/entities"
	"moviereviews/pkg/params"
)

// GetMovieQuery fetches one movie, optionally with its cast.
type GetMovieQuery struct {
	MovieID     params.ParsedInt
	IncludeCast bool
}

// Validate validates the GetMovieQuery
func (q *GetMovieQuery) Validate() error {
	return nil
}

// Key is the Movies primary key of the requested movie.
func (q *GetMovieQuery) Key() ports.Key {
	return ports.Key{"movieId": q.MovieID.Value}
}

// CastQuery reads the whole cast partition of the movie.
func (q *GetMovieQuery) CastQuery(t ports.Tables) ports.Query {
	return ports.Query{
		Table: t.Cast,
		KeyCondition: ports.KeyCondition{
			PartitionKey:   "movieId",
			PartitionValue: q.MovieID.Value,
		},
	}
}

// GetMovieResult is a movie and, when requested, its cast.
type GetMovieResult struct {
	Movie entities.Movie
	Cast  []entities.MovieCast
}

// ListMoviesQuery reads every movie.
type ListMoviesQuery struct{}

// Validate validates the ListMoviesQuery
func (q *ListMoviesQuery) Validate() error {
	return nil
}

// ListCastQuery reads the cast of a movie. A role name prefix goes through
// the role index; otherwise an actor name prefix narrows the sort key.
type ListCastQuery struct {
	MovieID   params.ParsedInt
	RoleName  *params.RawString
	ActorName *params.RawString
}

// Validate validates the ListCastQuery
func (q *ListCastQuery) Validate() error {
	return nil
}

// Build produces the single store query for the request
func (q *ListCastQuery) Build(t ports.Tables) ports.Query {
	query := ports.Query{
		Table: t.Cast,
		KeyCondition: ports.KeyCondition{
			PartitionKey:   "movieId",
			PartitionValue: q.MovieID.Value,
		},
	}

	switch {
	case q.RoleName != nil:
		query.Index = t.RoleIndex
		query.KeyCondition.SortKey = "roleName"
		query.KeyCondition.SortOp = ports.SortBeginsWith
		query.KeyCondition.SortValue = q.RoleName.Value
		if q.ActorName != nil {
			query.Filter = ports.BeginsWith("actorName", q.ActorName.Value)
		}
	case q.ActorName != nil:
		query.KeyCondition.SortKey = "actorName"
		query.KeyCondition.SortOp = ports.SortBeginsWith
		query.KeyCondition.SortValue = q.ActorName.Value
	}

	return query
}
