// Package seed loads the bundled sample catalog into a document store.
package seed

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"

	"moviereviews/application/ports"
	"moviereviews/domain/core/entities"

	"go.uber.org/zap"
)

//go:embed data/*.json
var files embed.FS

// Data is the sample catalog
type Data struct {
	Movies  []entities.Movie
	Cast    []entities.MovieCast
	Reviews []entities.MovieReview
}

// Load decodes the bundled sample catalog
func Load() (*Data, error) {
	var data Data
	if err := decode("data/movies.json", &data.Movies); err != nil {
		return nil, err
	}
	if err := decode("data/cast.json", &data.Cast); err != nil {
		return nil, err
	}
	if err := decode("data/reviews.json", &data.Reviews); err != nil {
		return nil, err
	}
	return &data, nil
}

func decode(name string, out any) error {
	raw, err := files.ReadFile(name)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", name, err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to decode %s: %w", name, err)
	}
	return nil
}

// Seed batch-writes the sample catalog into store
func Seed(ctx context.Context, store ports.DocumentStore, tables ports.Tables, logger *zap.Logger) error {
	data, err := Load()
	if err != nil {
		return err
	}

	batches := []struct {
		table string
		items []any
	}{
		{tables.Movies, toItems(data.Movies)},
		{tables.Cast, toItems(data.Cast)},
		{tables.Reviews, toItems(data.Reviews)},
	}

	for _, b := range batches {
		if err := store.BatchPut(ctx, b.table, b.items); err != nil {
			return fmt.Errorf("failed to seed %s: %w", b.table, err)
		}
		logger.Info("Seeded table", zap.String("table", b.table), zap.Int("items", len(b.items)))
	}
	return nil
}

func toItems[T any](values []T) []any {
	items := make([]any, len(values))
	for i, v := range values {
		items[i] = v
	}
	return items
}
