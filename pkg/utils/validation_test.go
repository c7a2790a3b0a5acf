package utils

import (
	"testing"

	"moviereviews/domain/core/entities"

	"github.com/stretchr/testify/assert"
)

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name    string
		value   interface{}
		wantErr string
	}{
		{
			name:  "valid movie",
			value: entities.Movie{MovieID: 1, Title: "Inception"},
		},
		{
			name:    "missing title",
			value:   entities.Movie{MovieID: 1},
			wantErr: "title is required",
		},
		{
			name:    "negative rating",
			value:   entities.MovieReview{MovieID: 1, ReviewID: 1, Rating: -1},
			wantErr: "rating must be greater than or equal to 0",
		},
		{
			name:    "cast without actor",
			value:   entities.MovieCast{MovieID: 1, RoleName: "Cobb"},
			wantErr: "actorName is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStruct(tt.value)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.EqualError(t, err, tt.wantErr)
		})
	}
}
