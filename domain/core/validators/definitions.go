package validators

// MovieSchema describes the body accepted by POST /movies.
var MovieSchema = &Schema{
	Title: "Movie",
	Type:  "object",
	Properties: map[string]Property{
		"movieId":          {Type: TypeInteger},
		"genreIds":         {Type: TypeArray, Items: &Property{Type: TypeInteger}},
		"originalLanguage": {Type: TypeString},
		"overview":         {Type: TypeString},
		"popularity":       {Type: TypeNumber},
		"releaseDate":      {Type: TypeString},
		"title":            {Type: TypeString},
		"video":            {Type: TypeBoolean},
		"voteAverage":      {Type: TypeNumber},
		"voteCount":        {Type: TypeInteger},
	},
	Required: []string{
		"movieId", "genreIds", "originalLanguage", "overview", "popularity",
		"releaseDate", "title", "video", "voteAverage", "voteCount",
	},
}

// MovieCastSchema describes the body accepted by POST /movies/cast.
var MovieCastSchema = &Schema{
	Title: "MovieCast",
	Type:  "object",
	Properties: map[string]Property{
		"movieId":         {Type: TypeInteger},
		"actorName":       {Type: TypeString},
		"roleName":        {Type: TypeString},
		"roleDescription": {Type: TypeString},
	},
	Required: []string{"movieId", "actorName", "roleName"},
}

// MovieReviewSchema describes the body accepted by POST /movies/reviews and,
// partially, by the review update route.
var MovieReviewSchema = &Schema{
	Title: "MovieReview",
	Type:  "object",
	Properties: map[string]Property{
		"reviewId":     {Type: TypeInteger},
		"movieId":      {Type: TypeNumber},
		"userId":       {Type: TypeInteger},
		"reviewerName": {Type: TypeString},
		"rating":       {Type: TypeNumber},
		"comment":      {Type: TypeString},
		"timestamp":    {Type: TypeString},
	},
	Required: []string{"reviewId", "movieId", "userId", "rating", "comment", "timestamp"},
}
