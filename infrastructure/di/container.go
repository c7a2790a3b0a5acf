package di

import (
	"moviereviews/application/commands/bus"
	"moviereviews/application/ports"
	querybus "moviereviews/application/queries/bus"
	"moviereviews/infrastructure/config"
	"moviereviews/infrastructure/persistence/schema"
	"moviereviews/pkg/observability"

	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Container holds all application dependencies
type Container struct {
	Config     *config.Config
	Logger     *zap.Logger
	LogLevel   zap.AtomicLevel
	Tables     ports.Tables
	Catalog    schema.Catalog
	DynamoDB   *awsdynamodb.Client
	Store      ports.DocumentStore
	Publisher  ports.EventPublisher
	Collector  *observability.Collector
	Tracer     *observability.Tracer
	Metrics    *observability.Metrics
	CommandBus *bus.CommandBus
	QueryBus   *querybus.QueryBus
	Handler    *chi.Mux
}
