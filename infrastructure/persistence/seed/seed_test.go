package seed

import (
	"context"
	"testing"

	"moviereviews/application/ports"
	"moviereviews/infrastructure/persistence/memory"
	"moviereviews/infrastructure/persistence/schema"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLoad(t *testing.T) {
	data, err := Load()
	require.NoError(t, err)

	assert.Len(t, data.Movies, 3)
	assert.Equal(t, "Inception", data.Movies[0].Title)
	assert.Equal(t, 4.8, data.Reviews[0].Rating)
	assert.Equal(t, "2023-11-23T15:45:00Z", data.Reviews[0].Timestamp)
}

func TestSeed(t *testing.T) {
	tables := ports.Tables{
		Movies: "Movies", Reviews: "MovieReviews", Cast: "MovieCast",
		ReviewerIndex: "ReviewerIndex", RoleIndex: "roleIx",
	}
	store := memory.NewStore(schema.NewCatalog(schema.Names(tables)))

	require.NoError(t, Seed(context.Background(), store, tables, zap.NewNop()))

	assert.Equal(t, 3, store.Len("Movies"))
	assert.Equal(t, 6, store.Len("MovieCast"))
	assert.Equal(t, 5, store.Len("MovieReviews"))
}
