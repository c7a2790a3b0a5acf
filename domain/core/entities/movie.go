package entities

// Movie is a catalog entry. Movies are immutable once stored; the only
// mutation the API offers is deletion.
type Movie struct {
	MovieID          int     `json:"movieId" dynamodbav:"movieId" validate:"gte=0"`
	GenreIDs         []int   `json:"genreIds" dynamodbav:"genreIds"`
	OriginalLanguage string  `json:"originalLanguage" dynamodbav:"originalLanguage"`
	Overview         string  `json:"overview" dynamodbav:"overview"`
	Popularity       float64 `json:"popularity" dynamodbav:"popularity"`
	ReleaseDate      string  `json:"releaseDate" dynamodbav:"releaseDate"`
	Title            string  `json:"title" dynamodbav:"title" validate:"required"`
	Video            bool    `json:"video" dynamodbav:"video"`
	VoteAverage      float64 `json:"voteAverage" dynamodbav:"voteAverage" validate:"gte=0"`
	VoteCount        int     `json:"voteCount" dynamodbav:"voteCount" validate:"gte=0"`
}

