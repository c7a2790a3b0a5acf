package config

import (
	"fmt"
	"os"
	"strconv"

	"moviereviews/application/ports"

	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// Store backends
const (
	StoreDynamoDB = "dynamodb"
	StoreMemory   = "memory"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	ServerAddress string `yaml:"server_address"`
	Environment   string `yaml:"environment"`

	// AWS configuration
	AWSRegion        string      `yaml:"aws_region"`
	Tables           TableConfig `yaml:"tables"`
	StoreBackend     string      `yaml:"store_backend"`
	DynamoDBEndpoint string      `yaml:"dynamodb_endpoint"`
	EventBusName     string      `yaml:"event_bus_name"`

	// Lambda configuration
	IsLambda           bool   `yaml:"-"`
	LambdaFunctionName string `yaml:"-"`

	// Logging
	LogLevel string `yaml:"log_level"`
	LogFile  string `yaml:"log_file"`

	// Feature flags
	EnableMetrics        bool   `yaml:"enable_metrics"`
	EnableTracing        bool   `yaml:"enable_tracing"`
	EnableCircuitBreaker bool   `yaml:"enable_circuit_breaker"`
	MetricsNamespace     string `yaml:"metrics_namespace"`
	SeedOnStart          bool   `yaml:"seed_on_start"`

	// ConfigFile is the YAML overlay the configuration was read from, if any
	ConfigFile string `yaml:"-"`
}

// TableConfig names the physical tables and indexes
type TableConfig struct {
	Movies        string `yaml:"movies"`
	Reviews       string `yaml:"reviews"`
	Cast          string `yaml:"cast"`
	ReviewerIndex string `yaml:"reviewer_index"`
	RoleIndex     string `yaml:"role_index"`
}

// Default returns the configuration used when nothing is set
func Default() *Config {
	return &Config{
		ServerAddress: ":8080",
		Environment:   "development",
		AWSRegion:     "eu-west-1",
		Tables: TableConfig{
			Movies:        "Movies",
			Reviews:       "MovieReviews",
			Cast:          "MovieCast",
			ReviewerIndex: "ReviewerIndex",
			RoleIndex:     "roleIx",
		},
		StoreBackend:         StoreDynamoDB,
		LogLevel:             "info",
		EnableCircuitBreaker: true,
		MetricsNamespace:     "MovieReviews",
	}
}

// LoadConfig builds the configuration from defaults, the optional YAML file
// named by CONFIG_FILE, and environment variables, in that order.
func LoadConfig() (*Config, error) {
	cfg := Default()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := LoadFile(path, cfg); err != nil {
			return nil, err
		}
		cfg.ConfigFile = path
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Load is an alias for LoadConfig
func Load() (*Config, error) {
	return LoadConfig()
}

// LoadFile overlays the YAML file at path onto cfg. Keys absent from the
// file keep their current values.
func LoadFile(path string, cfg *Config) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	c.ServerAddress = getEnv("SERVER_ADDRESS", c.ServerAddress)
	c.Environment = getEnv("ENVIRONMENT", c.Environment)
	c.AWSRegion = getEnv("AWS_REGION", c.AWSRegion)

	c.Tables.Movies = getEnv("MOVIES_TABLE", c.Tables.Movies)
	c.Tables.Reviews = getEnv("REVIEWS_TABLE", c.Tables.Reviews)
	c.Tables.Cast = getEnv("CAST_TABLE", c.Tables.Cast)
	c.Tables.ReviewerIndex = getEnv("REVIEWER_INDEX", c.Tables.ReviewerIndex)
	c.Tables.RoleIndex = getEnv("ROLE_INDEX", c.Tables.RoleIndex)

	c.StoreBackend = getEnv("STORE_BACKEND", c.StoreBackend)
	c.DynamoDBEndpoint = getEnv("DYNAMODB_ENDPOINT", c.DynamoDBEndpoint)
	c.EventBusName = getEnv("EVENT_BUS_NAME", c.EventBusName)

	c.LambdaFunctionName = getEnv("AWS_LAMBDA_FUNCTION_NAME", c.LambdaFunctionName)
	c.IsLambda = c.LambdaFunctionName != ""

	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)
	c.LogFile = getEnv("LOG_FILE", c.LogFile)

	c.EnableMetrics = getEnvBool("ENABLE_METRICS", c.EnableMetrics)
	c.EnableTracing = getEnvBool("ENABLE_TRACING", c.EnableTracing)
	c.EnableCircuitBreaker = getEnvBool("ENABLE_CIRCUIT_BREAKER", c.EnableCircuitBreaker)
	c.MetricsNamespace = getEnv("METRICS_NAMESPACE", c.MetricsNamespace)
	c.SeedOnStart = getEnvBool("SEED_ON_START", c.SeedOnStart)
}

// Validate checks if all required configuration is present
func (c *Config) Validate() error {
	switch c.StoreBackend {
	case StoreDynamoDB, StoreMemory:
	default:
		return fmt.Errorf("STORE_BACKEND must be %q or %q, got %q", StoreDynamoDB, StoreMemory, c.StoreBackend)
	}

	tables := map[string]string{
		"MOVIES_TABLE":   c.Tables.Movies,
		"REVIEWS_TABLE":  c.Tables.Reviews,
		"CAST_TABLE":     c.Tables.Cast,
		"REVIEWER_INDEX": c.Tables.ReviewerIndex,
		"ROLE_INDEX":     c.Tables.RoleIndex,
	}
	for key, value := range tables {
		if value == "" {
			return fmt.Errorf("%s is required", key)
		}
	}

	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("LOG_LEVEL: %w", err)
	}

	if c.StoreBackend == StoreDynamoDB && c.AWSRegion == "" {
		return fmt.Errorf("AWS_REGION is required")
	}
	return nil
}

// TableNames returns the table layout the application layer addresses
func (c *Config) TableNames() ports.Tables {
	return ports.Tables{
		Movies:        c.Tables.Movies,
		Reviews:       c.Tables.Reviews,
		Cast:          c.Tables.Cast,
		ReviewerIndex: c.Tables.ReviewerIndex,
		RoleIndex:     c.Tables.RoleIndex,
	}
}

// IsDevelopment checks if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction checks if running in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return value == "yes"
	}
	return b
}
