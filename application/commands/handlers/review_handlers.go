package handlers

import (
	"context"
	"errors"
	"fmt"
	"time"

	"moviereviews/application/commands"
	"moviereviews/application/commands/bus"
	"moviereviews/application/ports"
	"moviereviews/domain/core/entities"
	"moviereviews/domain/events"
	apperrors "moviereviews/pkg/errors"

	"go.uber.org/zap"
)

// AddReviewHandler handles AddReviewCommand
type AddReviewHandler struct {
	store     ports.DocumentStore
	tables    ports.Tables
	publisher ports.EventPublisher
	logger    *zap.Logger
}

// NewAddReviewHandler creates a new AddReviewHandler
func NewAddReviewHandler(store ports.DocumentStore, tables ports.Tables, publisher ports.EventPublisher, logger *zap.Logger) *AddReviewHandler {
	return &AddReviewHandler{store: store, tables: tables, publisher: publisher, logger: logger}
}

// Handle stores the review once the movie is known to exist
func (h *AddReviewHandler) Handle(ctx context.Context, cmd bus.Command) error {
	c, ok := cmd.(*commands.AddReviewCommand)
	if !ok {
		return fmt.Errorf("unexpected command type %T", cmd)
	}

	var movie entities.Movie
	found, err := h.store.Get(ctx, h.tables.Movies, ports.Key{"movieId": c.Review.MovieID}, &movie)
	if err != nil {
		return apperrors.NewDatabaseError("GetItem", err)
	}
	if !found {
		return apperrors.NewNotFoundError("movie")
	}

	if err := h.store.Put(ctx, h.tables.Reviews, c.Review); err != nil {
		return apperrors.NewDatabaseError("PutItem", err)
	}

	h.logger.Info("Review added",
		zap.Int("movieId", c.Review.MovieID),
		zap.Int("reviewId", c.Review.ReviewID),
	)
	publish(ctx, h.publisher, h.logger, events.NewReviewAdded(c.Review.MovieID, c.Review.ReviewID, c.Review.Rating, time.Now().UTC()))
	return nil
}

// UpdateReviewHandler handles UpdateReviewCommand
type UpdateReviewHandler struct {
	store     ports.DocumentStore
	tables    ports.Tables
	publisher ports.EventPublisher
	logger    *zap.Logger
}

// NewUpdateReviewHandler creates a new UpdateReviewHandler
func NewUpdateReviewHandler(store ports.DocumentStore, tables ports.Tables, publisher ports.EventPublisher, logger *zap.Logger) *UpdateReviewHandler {
	return &UpdateReviewHandler{store: store, tables: tables, publisher: publisher, logger: logger}
}

// Handle locates the reviewer's review of the movie and replaces its
// comment. The write is conditional so a review deleted in between is
// reported as missing rather than recreated.
func (h *UpdateReviewHandler) Handle(ctx context.Context, cmd bus.Command) error {
	c, ok := cmd.(*commands.UpdateReviewCommand)
	if !ok {
		return fmt.Errorf("unexpected command type %T", cmd)
	}

	var matches []entities.MovieReview
	if err := h.store.Query(ctx, ports.Query{
		Table: h.tables.Reviews,
		KeyCondition: ports.KeyCondition{
			PartitionKey:   "movieId",
			PartitionValue: c.MovieID.Value,
		},
		Filter: ports.Equal("reviewerName", c.ReviewerName.Value),
	}, &matches); err != nil {
		return apperrors.NewDatabaseError("Query", err)
	}
	if len(matches) == 0 {
		return apperrors.NewNotFoundError("review")
	}
	if len(matches) > 1 {
		h.logger.Warn("Reviewer has several reviews of the movie, updating the first",
			zap.Int("movieId", c.MovieID.Value),
			zap.String("reviewerName", c.ReviewerName.Value),
			zap.Int("matches", len(matches)),
		)
	}
	target := matches[0]

	err := h.store.Update(ctx, ports.Update{
		Table:     h.tables.Reviews,
		Key:       ports.Key{"movieId": target.MovieID, "reviewId": target.ReviewID},
		Set:       map[string]any{"comment": c.Comment},
		Condition: ports.AttributeExists("movieId"),
	})
	if errors.Is(err, ports.ErrConditionFailed) {
		return apperrors.NewNotFoundError("review")
	}
	if err != nil {
		return apperrors.NewDatabaseError("UpdateItem", err)
	}

	publish(ctx, h.publisher, h.logger, events.NewReviewUpdated(target.MovieID, target.ReviewID, c.ReviewerName.Value, time.Now().UTC()))
	return nil
}
