package commands

import (
	"moviereviews/domain/core/entities"
	apperrors "moviereviews/pkg/errors"
	"moviereviews/pkg/params"
	"moviereviews/pkg/utils"
)

// AddReviewCommand stores a review for an existing movie.
type AddReviewCommand struct {
	Review entities.MovieReview
}

// Validate checks the review's key attributes
func (c *AddReviewCommand) Validate() error {
	if err := utils.ValidateStruct(c.Review); err != nil {
		return apperrors.NewValidationError(err.Error())
	}
	return nil
}

// UpdateReviewCommand replaces the comment of a reviewer's review of a movie.
type UpdateReviewCommand struct {
	MovieID      params.ParsedInt
	ReviewerName params.RawString
	Comment      string
}

// Validate validates the UpdateReviewCommand
func (c *UpdateReviewCommand) Validate() error {
	if c.ReviewerName.Value == "" {
		return apperrors.NewValidationError("reviewerName is required")
	}
	return nil
}
