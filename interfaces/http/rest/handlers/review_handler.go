package handlers

import (
	"net/http"

	"moviereviews/application/commands"
	"moviereviews/application/commands/bus"
	"moviereviews/application/queries"
	querybus "moviereviews/application/queries/bus"
	"moviereviews/domain/core/entities"
	"moviereviews/domain/core/validators"
	"moviereviews/pkg/common"
	apperrors "moviereviews/pkg/errors"
	"moviereviews/pkg/params"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ReviewHandler handles review HTTP requests
type ReviewHandler struct {
	commandBus *bus.CommandBus
	queryBus   *querybus.QueryBus
	errors     *apperrors.ErrorHandler
	logger     *zap.Logger
}

// NewReviewHandler creates a new review handler
func NewReviewHandler(
	commandBus *bus.CommandBus,
	queryBus *querybus.QueryBus,
	errorHandler *apperrors.ErrorHandler,
	logger *zap.Logger,
) *ReviewHandler {
	return &ReviewHandler{
		commandBus: commandBus,
		queryBus:   queryBus,
		errors:     errorHandler,
		logger:     logger,
	}
}

// CreateReview handles POST /movies/reviews
func (h *ReviewHandler) CreateReview(w http.ResponseWriter, r *http.Request) {
	payload, err := decodeBody(r, validators.MovieReviewSchema, nil)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	validators.CoerceInteger(payload, "movieId")

	var review entities.MovieReview
	if err := validators.MovieReviewSchema.Decode(payload, &review); err != nil {
		h.errors.Handle(w, r, apperrors.NewValidationError(err.Error()).WithSchema(validators.MovieReviewSchema))
		return
	}

	if err := h.commandBus.Send(r.Context(), &commands.AddReviewCommand{Review: review}); err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	common.RespondMessage(w, http.StatusCreated, "Movie review added")
}

// GetReview handles GET /movies/{movieId}/reviews/id/{reviewId}
func (h *ReviewHandler) GetReview(w http.ResponseWriter, r *http.Request) {
	movieID, err := params.Int("movieId", chi.URLParam(r, "movieId"))
	if err != nil {
		h.errors.Handle(w, r, paramError(err))
		return
	}
	reviewID, err := params.Int("reviewId", chi.URLParam(r, "reviewId"))
	if err != nil {
		h.errors.Handle(w, r, paramError(err))
		return
	}

	result, err := h.queryBus.Ask(r.Context(), &queries.GetReviewQuery{MovieID: movieID, ReviewID: reviewID})
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	common.RespondData(w, http.StatusOK, result)
}

// ListMovieReviews handles GET /movies/{movieId}/reviews
func (h *ReviewHandler) ListMovieReviews(w http.ResponseWriter, r *http.Request) {
	movieID, err := params.Int("movieId", chi.URLParam(r, "movieId"))
	if err != nil {
		h.errors.Handle(w, r, paramError(err))
		return
	}
	minRating, err := params.OptionalFloat("minRating", r.URL.Query().Get("minRating"))
	if err != nil {
		h.errors.Handle(w, r, paramError(err))
		return
	}

	h.respondList(w, r, &queries.ListMovieReviewsQuery{MovieID: movieID, MinRating: minRating})
}

// ListReviewsByYear handles GET /movies/{movieId}/reviews/{year}
func (h *ReviewHandler) ListReviewsByYear(w http.ResponseWriter, r *http.Request) {
	movieID, err := params.Int("movieId", chi.URLParam(r, "movieId"))
	if err != nil {
		h.errors.Handle(w, r, paramError(err))
		return
	}
	year, err := params.Year("year", chi.URLParam(r, "year"))
	if err != nil {
		h.errors.Handle(w, r, paramError(err))
		return
	}

	h.respondList(w, r, &queries.ListReviewsByYearQuery{MovieID: movieID, Year: year})
}

// ListMovieReviewsByReviewer handles GET /movies/{movieId}/reviews/reviewer
func (h *ReviewHandler) ListMovieReviewsByReviewer(w http.ResponseWriter, r *http.Request) {
	movieID, err := params.Int("movieId", chi.URLParam(r, "movieId"))
	if err != nil {
		h.errors.Handle(w, r, paramError(err))
		return
	}
	reviewer, err := params.String("reviewerName", r.URL.Query().Get("reviewerName"))
	if err != nil {
		h.errors.Handle(w, r, paramError(err))
		return
	}

	h.respondList(w, r, &queries.ListMovieReviewsByReviewerQuery{MovieID: movieID, ReviewerName: reviewer})
}

// ListReviewerReviews handles GET /movies/reviews/{reviewerName}
func (h *ReviewHandler) ListReviewerReviews(w http.ResponseWriter, r *http.Request) {
	reviewer, err := params.String("reviewerName", chi.URLParam(r, "reviewerName"))
	if err != nil {
		h.errors.Handle(w, r, paramError(err))
		return
	}

	h.respondList(w, r, &queries.ListReviewerReviewsQuery{ReviewerName: reviewer})
}

// UpdateReview handles PUT /movies/{movieId}/reviews/reviewer
func (h *ReviewHandler) UpdateReview(w http.ResponseWriter, r *http.Request) {
	movieID, err := params.Int("movieId", chi.URLParam(r, "movieId"))
	if err != nil {
		h.errors.Handle(w, r, paramError(err))
		return
	}
	reviewer, err := params.String("reviewerName", r.URL.Query().Get("reviewerName"))
	if err != nil {
		h.errors.Handle(w, r, paramError(err))
		return
	}

	payload, err := decodeBody(r, validators.MovieReviewSchema, []string{"comment"})
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	cmd := &commands.UpdateReviewCommand{
		MovieID:      movieID,
		ReviewerName: reviewer,
		Comment:      payload["comment"].(string),
	}
	if err := h.commandBus.Send(r.Context(), cmd); err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	common.RespondMessage(w, http.StatusOK, "Review text updated successfully")
}

// respondList answers review list queries. Store failures degrade to an
// empty list; rejected input is still a 400.
func (h *ReviewHandler) respondList(w http.ResponseWriter, r *http.Request, query querybus.Query) {
	result, err := h.queryBus.Ask(r.Context(), query)
	if err != nil {
		if apperrors.IsValidation(err) {
			h.errors.Handle(w, r, err)
			return
		}
		h.logger.Warn("Review query failed, returning empty list",
			zap.Error(err),
			zap.String("path", r.URL.Path),
		)
		result = []entities.MovieReview{}
	}
	common.RespondJSON(w, http.StatusOK, result)
}
