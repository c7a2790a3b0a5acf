package handlers

import (
	"context"
	"fmt"
	"time"

	"moviereviews/application/commands"
	"moviereviews/application/commands/bus"
	"moviereviews/application/ports"
	"moviereviews/domain/events"
	apperrors "moviereviews/pkg/errors"

	"go.uber.org/zap"
)

// AddMovieHandler handles AddMovieCommand
type AddMovieHandler struct {
	store     ports.DocumentStore
	tables    ports.Tables
	publisher ports.EventPublisher
	logger    *zap.Logger
}

// NewAddMovieHandler creates a new AddMovieHandler
func NewAddMovieHandler(store ports.DocumentStore, tables ports.Tables, publisher ports.EventPublisher, logger *zap.Logger) *AddMovieHandler {
	return &AddMovieHandler{store: store, tables: tables, publisher: publisher, logger: logger}
}

// Handle executes the add movie command
func (h *AddMovieHandler) Handle(ctx context.Context, cmd bus.Command) error {
	c, ok := cmd.(*commands.AddMovieCommand)
	if !ok {
		return fmt.Errorf("unexpected command type %T", cmd)
	}

	if err := h.store.Put(ctx, h.tables.Movies, c.Movie); err != nil {
		return apperrors.NewDatabaseError("PutItem", err)
	}

	h.logger.Info("Movie added", zap.Int("movieId", c.Movie.MovieID))
	publish(ctx, h.publisher, h.logger, events.NewMovieAdded(c.Movie.MovieID, c.Movie.Title, time.Now().UTC()))
	return nil
}

// DeleteMovieHandler handles DeleteMovieCommand
type DeleteMovieHandler struct {
	store     ports.DocumentStore
	tables    ports.Tables
	publisher ports.EventPublisher
	logger    *zap.Logger
}

// NewDeleteMovieHandler creates a new DeleteMovieHandler
func NewDeleteMovieHandler(store ports.DocumentStore, tables ports.Tables, publisher ports.EventPublisher, logger *zap.Logger) *DeleteMovieHandler {
	return &DeleteMovieHandler{store: store, tables: tables, publisher: publisher, logger: logger}
}

// Handle executes the delete movie command
func (h *DeleteMovieHandler) Handle(ctx context.Context, cmd bus.Command) error {
	c, ok := cmd.(*commands.DeleteMovieCommand)
	if !ok {
		return fmt.Errorf("unexpected command type %T", cmd)
	}

	if err := h.store.Delete(ctx, h.tables.Movies, ports.Key{"movieId": c.MovieID.Value}); err != nil {
		return apperrors.NewDatabaseError("DeleteItem", err)
	}

	h.logger.Info("Movie deleted", zap.Int("movieId", c.MovieID.Value))
	publish(ctx, h.publisher, h.logger, events.NewMovieDeleted(c.MovieID.Value, time.Now().UTC()))
	return nil
}

// AddCastHandler handles AddCastCommand
type AddCastHandler struct {
	store     ports.DocumentStore
	tables    ports.Tables
	publisher ports.EventPublisher
	logger    *zap.Logger
}

// NewAddCastHandler creates a new AddCastHandler
func NewAddCastHandler(store ports.DocumentStore, tables ports.Tables, publisher ports.EventPublisher, logger *zap.Logger) *AddCastHandler {
	return &AddCastHandler{store: store, tables: tables, publisher: publisher, logger: logger}
}

// Handle executes the add cast command
func (h *AddCastHandler) Handle(ctx context.Context, cmd bus.Command) error {
	c, ok := cmd.(*commands.AddCastCommand)
	if !ok {
		return fmt.Errorf("unexpected command type %T", cmd)
	}

	if err := h.store.Put(ctx, h.tables.Cast, c.Cast); err != nil {
		return apperrors.NewDatabaseError("PutItem", err)
	}

	publish(ctx, h.publisher, h.logger, events.NewCastAdded(c.Cast.MovieID, c.Cast.ActorName, c.Cast.RoleName, time.Now().UTC()))
	return nil
}
