package handlers

import (
	"moviereviews/application/commands"
	"moviereviews/application/commands/bus"
	"moviereviews/application/ports"

	"go.uber.org/zap"
)

// Register wires every command handler into b.
func Register(b *bus.CommandBus, store ports.DocumentStore, tables ports.Tables, publisher ports.EventPublisher, logger *zap.Logger) error {
	registrations := []struct {
		command bus.Command
		handler bus.CommandHandler
	}{
		{&commands.AddMovieCommand{}, NewAddMovieHandler(store, tables, publisher, logger)},
		{&commands.DeleteMovieCommand{}, NewDeleteMovieHandler(store, tables, publisher, logger)},
		{&commands.AddCastCommand{}, NewAddCastHandler(store, tables, publisher, logger)},
		{&commands.AddReviewCommand{}, NewAddReviewHandler(store, tables, publisher, logger)},
		{&commands.UpdateReviewCommand{}, NewUpdateReviewHandler(store, tables, publisher, logger)},
	}

	for _, r := range registrations {
		if err := b.Register(r.command, r.handler); err != nil {
			return err
		}
	}
	return nil
}
