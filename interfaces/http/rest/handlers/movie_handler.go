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

// MovieHandler handles movie and cast HTTP requests
type MovieHandler struct {
	commandBus *bus.CommandBus
	queryBus   *querybus.QueryBus
	errors     *apperrors.ErrorHandler
	logger     *zap.Logger
}

// NewMovieHandler creates a new movie handler
func NewMovieHandler(
	commandBus *bus.CommandBus,
	queryBus *querybus.QueryBus,
	errorHandler *apperrors.ErrorHandler,
	logger *zap.Logger,
) *MovieHandler {
	return &MovieHandler{
		commandBus: commandBus,
		queryBus:   queryBus,
		errors:     errorHandler,
		logger:     logger,
	}
}

// movieWithCast is the GET /movies/{movieId}?cast=true body
type movieWithCast struct {
	Data entities.Movie       `json:"data"`
	Cast []entities.MovieCast `json:"cast"`
}

// ListMovies handles GET /movies
func (h *MovieHandler) ListMovies(w http.ResponseWriter, r *http.Request) {
	result, err := h.queryBus.Ask(r.Context(), &queries.ListMoviesQuery{})
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, result)
}

// CreateMovie handles POST /movies
func (h *MovieHandler) CreateMovie(w http.ResponseWriter, r *http.Request) {
	payload, err := decodeBody(r, validators.MovieSchema, nil)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	var movie entities.Movie
	if err := validators.MovieSchema.Decode(payload, &movie); err != nil {
		h.errors.Handle(w, r, apperrors.NewValidationError(err.Error()).WithSchema(validators.MovieSchema))
		return
	}

	if err := h.commandBus.Send(r.Context(), &commands.AddMovieCommand{Movie: movie}); err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	h.logger.Info("Movie added", zap.Int("movieId", movie.MovieID))
	common.RespondMessage(w, http.StatusCreated, "Movie added")
}

// GetMovie handles GET /movies/{movieId}
func (h *MovieHandler) GetMovie(w http.ResponseWriter, r *http.Request) {
	movieID, err := params.Int("movieId", chi.URLParam(r, "movieId"))
	if err != nil {
		h.errors.Handle(w, r, paramError(err))
		return
	}

	query := &queries.GetMovieQuery{
		MovieID:     movieID,
		IncludeCast: r.URL.Query().Get("cast") == "true",
	}
	result, err := h.queryBus.Ask(r.Context(), query)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	movie := result.(*queries.GetMovieResult)
	if query.IncludeCast {
		common.RespondJSON(w, http.StatusOK, movieWithCast{Data: movie.Movie, Cast: movie.Cast})
		return
	}
	common.RespondData(w, http.StatusOK, movie.Movie)
}

// DeleteMovie handles DELETE /movies/{movieId}
func (h *MovieHandler) DeleteMovie(w http.ResponseWriter, r *http.Request) {
	movieID, err := params.Int("movieId", chi.URLParam(r, "movieId"))
	if err != nil {
		h.errors.Handle(w, r, paramError(err))
		return
	}

	if err := h.commandBus.Send(r.Context(), &commands.DeleteMovieCommand{MovieID: movieID}); err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	common.RespondMessage(w, http.StatusOK, "Movie deleted successfully")
}

// ListCast handles GET /movies/cast
func (h *MovieHandler) ListCast(w http.ResponseWriter, r *http.Request) {
	values := r.URL.Query()
	movieID, err := params.Int("movieId", values.Get("movieId"))
	if err != nil {
		h.errors.Handle(w, r, paramError(err))
		return
	}

	result, err := h.queryBus.Ask(r.Context(), &queries.ListCastQuery{
		MovieID:   movieID,
		RoleName:  params.OptionalString(values.Get("roleName")),
		ActorName: params.OptionalString(values.Get("actorName")),
	})
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, result)
}

// CreateCast handles POST /movies/cast
func (h *MovieHandler) CreateCast(w http.ResponseWriter, r *http.Request) {
	payload, err := decodeBody(r, validators.MovieCastSchema, nil)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	var cast entities.MovieCast
	if err := validators.MovieCastSchema.Decode(payload, &cast); err != nil {
		h.errors.Handle(w, r, apperrors.NewValidationError(err.Error()).WithSchema(validators.MovieCastSchema))
		return
	}

	if err := h.commandBus.Send(r.Context(), &commands.AddCastCommand{Cast: cast}); err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	common.RespondMessage(w, http.StatusCreated, "Cast member added")
}
