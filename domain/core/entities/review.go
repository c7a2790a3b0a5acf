package entities

// MovieReview is a single user's review of a movie.
//
// Reviews live in the partition of their movie and are ordered by ReviewID.
// ReviewerName is optional; when present the review is reachable through the
// reviewer index.
type MovieReview struct {
	ReviewID     int     `json:"reviewId" dynamodbav:"reviewId" validate:"gte=0"`
	MovieID      int     `json:"movieId" dynamodbav:"movieId" validate:"gte=0"`
	UserID       int     `json:"userId" dynamodbav:"userId"`
	ReviewerName string  `json:"reviewerName,omitempty" dynamodbav:"reviewerName,omitempty"`
	Rating       float64 `json:"rating" dynamodbav:"rating" validate:"gte=0"`
	Comment      string  `json:"comment" dynamodbav:"comment"`
	Timestamp    string  `json:"timestamp" dynamodbav:"timestamp"`
}

