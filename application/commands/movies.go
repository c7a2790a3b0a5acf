package commands

import (
	"moviereviews/domain/core/entities"
	apperrors "moviereviews/pkg/errors"
	"moviereviews/pkg/params"
	"moviereviews/pkg/utils"
)

// AddMovieCommand stores a movie, replacing any movie with the same id.
type AddMovieCommand struct {
	Movie entities.Movie
}

// Validate checks the movie's key attributes
func (c *AddMovieCommand) Validate() error {
	if err := utils.ValidateStruct(c.Movie); err != nil {
		return apperrors.NewValidationError(err.Error())
	}
	return nil
}

// DeleteMovieCommand removes a movie. Deleting a missing movie succeeds.
type DeleteMovieCommand struct {
	MovieID params.ParsedInt
}

// Validate validates the DeleteMovieCommand
func (c *DeleteMovieCommand) Validate() error {
	return nil
}

// AddCastCommand attaches a cast member to a movie.
type AddCastCommand struct {
	Cast entities.MovieCast
}

// Validate checks the cast member's key attributes
func (c *AddCastCommand) Validate() error {
	if err := utils.ValidateStruct(c.Cast); err != nil {
		return apperrors.NewValidationError(err.Error())
	}
	return nil
}
