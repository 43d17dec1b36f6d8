package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Store backend selectors
const (
	BackendDynamoDB = "dynamodb"
	BackendMemory   = "memory"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	ServerAddress string
	Environment   string

	// Store configuration
	StoreBackend string

	// AWS configuration
	AWSRegion     string
	DynamoDBTable string
	TypeIndexName string

	// Logging and features
	LogLevel   string
	EnableCORS bool
}

// LoadConfig loads configuration from the environment, reading a .env file
// first when one is present
func LoadConfig() (*Config, error) {
	// Missing .env is fine; real environment always wins
	_ = godotenv.Load()

	cfg := &Config{
		ServerAddress: getEnv("SERVER_ADDRESS", ":8000"),
		Environment:   getEnv("ENVIRONMENT", "development"),

		StoreBackend: getEnv("STORE_BACKEND", BackendDynamoDB),

		AWSRegion:     getEnv("AWS_REGION", "us-west-2"),
		DynamoDBTable: getEnv("TABLE_NAME", "webgraphy"),
		TypeIndexName: getEnv("TYPE_INDEX_NAME", "TypeIndex"),

		LogLevel:   getEnv("LOG_LEVEL", "info"),
		EnableCORS: getEnvBool("ENABLE_CORS", true),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if all required configuration is present
func (c *Config) Validate() error {
	switch c.StoreBackend {
	case BackendDynamoDB, BackendMemory:
	default:
		return fmt.Errorf("STORE_BACKEND must be %q or %q", BackendDynamoDB, BackendMemory)
	}

	if c.StoreBackend == BackendDynamoDB && c.DynamoDBTable == "" {
		return fmt.Errorf("TABLE_NAME is required for the dynamodb backend")
	}

	return nil
}

// IsDevelopment checks if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction checks if running in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool gets a boolean environment variable with a default value
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value == "true" || value == "1" || value == "yes"
}
