//go:build wireinject
// +build wireinject

package di

import (
	"context"

	"moviereviews/infrastructure/config"

	"github.com/google/wire"
)

// SuperSet is the main provider set containing all providers
var SuperSet = wire.NewSet(
	ProvideLogLevel,
	ProvideLogger,
	ProvideAWSConfig,
	ProvideDynamoDBClient,
	ProvideEventBridgeClient,
	ProvideCloudWatchClient,
	ProvideTables,
	ProvideCatalog,
	ProvideCollector,
	ProvideTracer,
	ProvideMetrics,
	ProvideDocumentStore,
	ProvideEventPublisher,
	ProvideErrorHandler,
	ProvideCommandBus,
	ProvideQueryBus,
	ProvideHandler,
	wire.Struct(new(Container), "*"),
)

// InitializeContainer creates a fully wired container
func InitializeContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	wire.Build(SuperSet)
	return nil, nil
}
