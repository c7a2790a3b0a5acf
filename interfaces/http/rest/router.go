package rest

import (
	"net/http"

	"moviereviews/application/commands/bus"
	querybus "moviereviews/application/queries/bus"
	"moviereviews/interfaces/http/rest/handlers"
	"moviereviews/interfaces/http/rest/middleware"
	apperrors "moviereviews/pkg/errors"
	"moviereviews/pkg/observability"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// Router creates and configures the HTTP router
type Router struct {
	commandBus *bus.CommandBus
	queryBus   *querybus.QueryBus
	collector  *observability.Collector
	errors     *apperrors.ErrorHandler
	logger     *zap.Logger
}

// NewRouter creates a new router instance. collector may be nil, in which
// case no /metrics endpoint is mounted.
func NewRouter(
	commandBus *bus.CommandBus,
	queryBus *querybus.QueryBus,
	collector *observability.Collector,
	errorHandler *apperrors.ErrorHandler,
	logger *zap.Logger,
) *Router {
	return &Router{
		commandBus: commandBus,
		queryBus:   queryBus,
		collector:  collector,
		errors:     errorHandler,
		logger:     logger,
	}
}

// Setup configures all routes and middleware
func (rt *Router) Setup() *chi.Mux {
	router := chi.NewRouter()

	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.Logger(rt.logger))
	if rt.collector != nil {
		router.Use(middleware.Metrics(rt.collector))
	}
	router.Use(rt.errors.Middleware)

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		rt.errors.HandleStatus(w, r, http.StatusNotFound, "route not found")
	})
	router.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		rt.errors.HandleStatus(w, r, http.StatusMethodNotAllowed, "method not allowed")
	})

	router.Get("/health", rt.healthCheck)
	if rt.collector != nil {
		router.Method(http.MethodGet, "/metrics", rt.collector.Handler())
	}

	movies := handlers.NewMovieHandler(rt.commandBus, rt.queryBus, rt.errors, rt.logger)
	reviews := handlers.NewReviewHandler(rt.commandBus, rt.queryBus, rt.errors, rt.logger)

	router.Route("/movies", func(r chi.Router) {
		r.Get("/", movies.ListMovies)
		r.Post("/", movies.CreateMovie)

		r.Get("/cast", movies.ListCast)
		r.Post("/cast", movies.CreateCast)

		r.Post("/reviews", reviews.CreateReview)
		r.Get("/reviews/{reviewerName}", reviews.ListReviewerReviews)

		r.Route("/{movieId}", func(r chi.Router) {
			r.Get("/", movies.GetMovie)
			r.Delete("/", movies.DeleteMovie)

			r.Get("/reviews", reviews.ListMovieReviews)
			r.Get("/reviews/id/{reviewId}", reviews.GetReview)
			r.Get("/reviews/reviewer", reviews.ListMovieReviewsByReviewer)
			r.Put("/reviews/reviewer", reviews.UpdateReview)
			r.Get("/reviews/{year}", reviews.ListReviewsByYear)
		})
	})

	return router
}

func (rt *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"healthy"}`))
}
