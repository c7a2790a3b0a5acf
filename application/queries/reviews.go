package queries

import (
	"math"

	"moviereviews/application/ports"
	apperrors "moviereviews/pkg/errors"
	"moviereviews/pkg/params"
)

// GetReviewQuery fetches one review by its composite key.
type GetReviewQuery struct {
	MovieID  params.ParsedInt
	ReviewID params.ParsedInt
}

// Validate validates the GetReviewQuery
func (q *GetReviewQuery) Validate() error {
	return nil
}

// Key is the MovieReviews primary key of the requested review.
func (q *GetReviewQuery) Key() ports.Key {
	return ports.Key{"movieId": q.MovieID.Value, "reviewId": q.ReviewID.Value}
}

// ListMovieReviewsQuery lists a movie's reviews, keeping only ratings
// strictly above MinRating when it is set.
type ListMovieReviewsQuery struct {
	MovieID   params.ParsedInt
	MinRating *params.ParsedFloat
}

// Validate validates the ListMovieReviewsQuery
func (q *ListMovieReviewsQuery) Validate() error {
	return nil
}

// MatchesNothing reports whether no rating can exceed MinRating.
func (q *ListMovieReviewsQuery) MatchesNothing() bool {
	return q.MinRating != nil && math.IsInf(q.MinRating.Value, 1)
}

// Build produces the single store query for the request. A MinRating of
// negative infinity admits every rating and adds no filter.
func (q *ListMovieReviewsQuery) Build(t ports.Tables) ports.Query {
	query := moviePartition(t, q.MovieID)
	if q.MinRating != nil && !math.IsInf(q.MinRating.Value, -1) {
		query.Filter = ports.GreaterThan("rating", q.MinRating.Value)
	}
	return query
}

// ListReviewsByYearQuery lists a movie's reviews written in one year.
type ListReviewsByYearQuery struct {
	MovieID params.ParsedInt
	Year    params.RawString
}

// Validate validates the ListReviewsByYearQuery
func (q *ListReviewsByYearQuery) Validate() error {
	if len(q.Year.Value) != 4 {
		return apperrors.NewValidationError("year must have four digits")
	}
	return nil
}

// Build produces the single store query for the request
func (q *ListReviewsByYearQuery) Build(t ports.Tables) ports.Query {
	query := moviePartition(t, q.MovieID)
	query.Filter = ports.BeginsWith("timestamp", q.Year.Value)
	return query
}

// ListMovieReviewsByReviewerQuery lists one reviewer's reviews of a movie.
type ListMovieReviewsByReviewerQuery struct {
	MovieID      params.ParsedInt
	ReviewerName params.RawString
}

// Validate validates the ListMovieReviewsByReviewerQuery
func (q *ListMovieReviewsByReviewerQuery) Validate() error {
	if q.ReviewerName.Value == "" {
		return apperrors.NewValidationError("reviewerName is required")
	}
	return nil
}

// Build produces the single store query for the request
func (q *ListMovieReviewsByReviewerQuery) Build(t ports.Tables) ports.Query {
	query := moviePartition(t, q.MovieID)
	query.Filter = ports.Equal("reviewerName", q.ReviewerName.Value)
	return query
}

// ListReviewerReviewsQuery lists a reviewer's reviews across all movies.
type ListReviewerReviewsQuery struct {
	ReviewerName params.RawString
}

// Validate validates the ListReviewerReviewsQuery
func (q *ListReviewerReviewsQuery) Validate() error {
	if q.ReviewerName.Value == "" {
		return apperrors.NewValidationError("reviewer name is required")
	}
	return nil
}

// Build produces the single store query for the request
func (q *ListReviewerReviewsQuery) Build(t ports.Tables) ports.Query {
	return ports.Query{
		Table: t.Reviews,
		Index: t.ReviewerIndex,
		KeyCondition: ports.KeyCondition{
			PartitionKey:   "reviewerName",
			PartitionValue: q.ReviewerName.Value,
		},
	}
}

func moviePartition(t ports.Tables, movieID params.ParsedInt) ports.Query {
	return ports.Query{
		Table: t.Reviews,
		KeyCondition: ports.KeyCondition{
			PartitionKey:   "movieId",
			PartitionValue: movieID.Value,
		},
	}
}
