package di

import (
	"context"
	"fmt"
	"os"

	"moviereviews/application/commands/bus"
	commandhandlers "moviereviews/application/commands/handlers"
	"moviereviews/application/ports"
	querybus "moviereviews/application/queries/bus"
	queryhandlers "moviereviews/application/queries/handlers"
	"moviereviews/infrastructure/config"
	"moviereviews/infrastructure/messaging/eventbridge"
	"moviereviews/infrastructure/persistence/dynamodb"
	"moviereviews/infrastructure/persistence/memory"
	"moviereviews/infrastructure/persistence/resilience"
	"moviereviews/infrastructure/persistence/schema"
	"moviereviews/interfaces/http/rest"
	apperrors "moviereviews/pkg/errors"
	"moviereviews/pkg/observability"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awscloudwatch "github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	awseventbridge "github.com/aws/aws-sdk-go-v2/service/eventbridge"
	"github.com/aws/aws-xray-sdk-go/instrumentation/awsv2"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

const serviceName = "moviereviews"

// ProvideLogLevel creates the shared, runtime-adjustable log level
func ProvideLogLevel(cfg *config.Config) (zap.AtomicLevel, error) {
	level, err := zap.ParseAtomicLevel(cfg.LogLevel)
	if err != nil {
		return zap.AtomicLevel{}, fmt.Errorf("invalid log level: %w", err)
	}
	return level, nil
}

// ProvideLogger creates a new logger instance. JSON in production, console
// otherwise; LOG_FILE adds a rotating file sink.
func ProvideLogger(cfg *config.Config, level zap.AtomicLevel) (*zap.Logger, error) {
	encoderConfig := zap.NewDevelopmentEncoderConfig()
	encoder := zapcore.NewConsoleEncoder(encoderConfig)
	if cfg.IsProduction() || cfg.IsLambda {
		encoderConfig = zap.NewProductionEncoderConfig()
		encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		encoder = zapcore.NewJSONEncoder(encoderConfig)
	}

	cores := []zapcore.Core{
		zapcore.NewCore(encoder, zapcore.Lock(os.Stdout), level),
	}
	if cfg.LogFile != "" {
		fileWriter := zapcore.AddSync(&lumberjack.Logger{
			Filename:   cfg.LogFile,
			MaxSize:    10, // MB
			MaxBackups: 5,
			MaxAge:     14, // days
			Compress:   true,
		})
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()), fileWriter, level))
	}

	logger := zap.New(zapcore.NewTee(cores...), zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))
	return logger.With(zap.String("service", serviceName), zap.String("environment", cfg.Environment)), nil
}

// ProvideAWSConfig creates AWS configuration. SDK calls are traced when
// tracing is enabled.
func ProvideAWSConfig(ctx context.Context, cfg *config.Config) (aws.Config, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.AWSRegion),
	)
	if err != nil {
		return aws.Config{}, fmt.Errorf("failed to load AWS config: %w", err)
	}
	if cfg.EnableTracing {
		awsv2.AWSV2Instrumentor(&awsCfg.APIOptions)
	}
	return awsCfg, nil
}

// ProvideDynamoDBClient creates a DynamoDB client, pointed at
// DYNAMODB_ENDPOINT when set
func ProvideDynamoDBClient(awsCfg aws.Config, cfg *config.Config) *awsdynamodb.Client {
	return awsdynamodb.NewFromConfig(awsCfg, func(o *awsdynamodb.Options) {
		if cfg.DynamoDBEndpoint != "" {
			o.BaseEndpoint = aws.String(cfg.DynamoDBEndpoint)
		}
	})
}

// ProvideEventBridgeClient creates an EventBridge client
func ProvideEventBridgeClient(awsCfg aws.Config) *awseventbridge.Client {
	return awseventbridge.NewFromConfig(awsCfg)
}

// ProvideCloudWatchClient creates a CloudWatch client
func ProvideCloudWatchClient(awsCfg aws.Config) *awscloudwatch.Client {
	return awscloudwatch.NewFromConfig(awsCfg)
}

// ProvideTables returns the configured table names
func ProvideTables(cfg *config.Config) ports.Tables {
	return cfg.TableNames()
}

// ProvideCatalog describes the key schema of every table
func ProvideCatalog(tables ports.Tables) schema.Catalog {
	return schema.NewCatalog(schema.Names(tables))
}

// ProvideCollector creates the process-wide Prometheus collector
func ProvideCollector() *observability.Collector {
	return observability.NewCollector(serviceName)
}

// ProvideTracer creates the X-Ray tracer
func ProvideTracer(cfg *config.Config) *observability.Tracer {
	return observability.NewTracer(serviceName, cfg.EnableTracing)
}

// ProvideMetrics creates the CloudWatch metrics emitter. It is nil when
// metrics are disabled; a nil emitter records nothing.
func ProvideMetrics(client *awscloudwatch.Client, cfg *config.Config, logger *zap.Logger) *observability.Metrics {
	if !cfg.EnableMetrics {
		return nil
	}
	namespace := fmt.Sprintf("%s/%s", cfg.MetricsNamespace, cfg.Environment)
	return observability.NewMetrics(namespace, client, logger)
}

// ProvideDocumentStore selects the store backend and layers metrics and,
// when enabled, the circuit breaker on top of it
func ProvideDocumentStore(
	cfg *config.Config,
	client *awsdynamodb.Client,
	catalog schema.Catalog,
	collector *observability.Collector,
	logger *zap.Logger,
) ports.DocumentStore {
	var store ports.DocumentStore
	switch cfg.StoreBackend {
	case config.StoreMemory:
		logger.Info("Using in-memory document store")
		store = memory.NewStore(catalog)
	default:
		store = dynamodb.NewStore(client, logger)
	}

	store = resilience.NewInstrumentedStore(store, collector, logger)
	if cfg.EnableCircuitBreaker {
		store = resilience.NewBreakerStore(store, resilience.DefaultBreakerConfig("document-store"), logger, collector)
	}
	return store
}

// ProvideEventPublisher publishes to EventBridge when a bus is configured
func ProvideEventPublisher(
	client *awseventbridge.Client,
	cfg *config.Config,
	collector *observability.Collector,
	logger *zap.Logger,
) ports.EventPublisher {
	var publisher ports.EventPublisher = eventbridge.NewNoopPublisher(logger)
	if cfg.EventBusName != "" {
		publisher = eventbridge.NewPublisher(client, cfg.EventBusName, logger)
	}
	return eventbridge.NewInstrumentedPublisher(publisher, collector)
}

// ProvideErrorHandler creates the HTTP error renderer
func ProvideErrorHandler(cfg *config.Config, logger *zap.Logger) *apperrors.ErrorHandler {
	return apperrors.NewErrorHandler(logger, cfg.IsDevelopment())
}

// ProvideCommandBus creates the command bus with all handlers registered
func ProvideCommandBus(
	store ports.DocumentStore,
	tables ports.Tables,
	publisher ports.EventPublisher,
	collector *observability.Collector,
	tracer *observability.Tracer,
	logger *zap.Logger,
) (*bus.CommandBus, error) {
	commandBus := bus.NewCommandBus(
		bus.TracingMiddleware(tracer),
		bus.MetricsMiddleware(collector),
		bus.LoggingMiddleware(logger),
	)
	if err := commandhandlers.Register(commandBus, store, tables, publisher, logger); err != nil {
		return nil, fmt.Errorf("failed to register command handlers: %w", err)
	}
	return commandBus, nil
}

// ProvideQueryBus creates the query bus with all handlers registered
func ProvideQueryBus(
	store ports.DocumentStore,
	tables ports.Tables,
	collector *observability.Collector,
	tracer *observability.Tracer,
	logger *zap.Logger,
) (*querybus.QueryBus, error) {
	queryBus := querybus.NewQueryBus(
		querybus.TracingMiddleware(tracer),
		querybus.MetricsMiddleware(collector),
		querybus.LoggingMiddleware(logger),
	)
	if err := queryhandlers.Register(queryBus, store, tables, logger); err != nil {
		return nil, fmt.Errorf("failed to register query handlers: %w", err)
	}
	return queryBus, nil
}

// ProvideHandler builds the HTTP router. /metrics is only mounted when
// metrics are enabled.
func ProvideHandler(
	commandBus *bus.CommandBus,
	queryBus *querybus.QueryBus,
	collector *observability.Collector,
	errorHandler *apperrors.ErrorHandler,
	cfg *config.Config,
	logger *zap.Logger,
) *chi.Mux {
	if !cfg.EnableMetrics {
		collector = nil
	}
	return rest.NewRouter(commandBus, queryBus, collector, errorHandler, logger).Setup()
}
