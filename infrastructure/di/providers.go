package di

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"go.uber.org/zap"

	"webgraphy-backend/application/commands"
	"webgraphy-backend/application/ports"
	"webgraphy-backend/application/queries"
	"webgraphy-backend/infrastructure/config"
	dynamostore "webgraphy-backend/infrastructure/persistence/dynamodb"
	memorystore "webgraphy-backend/infrastructure/persistence/memory"
	"webgraphy-backend/pkg/observability"
)

// Container holds all application dependencies
type Container struct {
	Config         *config.Config
	Logger         *zap.Logger
	Store          ports.Store
	CommandService *commands.GraphCommandService
	QueryService   *queries.GraphQueryService
	Collector      *observability.Collector
}

// ProvideLogger creates a new logger instance
func ProvideLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsProduction() {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

// ProvideAWSConfig creates AWS configuration
func ProvideAWSConfig(ctx context.Context, cfg *config.Config) (aws.Config, error) {
	return awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.AWSRegion),
	)
}

// ProvideDynamoDBClient creates a DynamoDB client
func ProvideDynamoDBClient(awsCfg aws.Config) *awsdynamodb.Client {
	return awsdynamodb.NewFromConfig(awsCfg)
}

// ProvideCollector creates the metrics collector
func ProvideCollector(cfg *config.Config) *observability.Collector {
	return observability.NewCollector("webgraphy")
}

// ProvideStore creates the graph store selected by configuration
func ProvideStore(client *awsdynamodb.Client, cfg *config.Config, logger *zap.Logger) ports.Store {
	if cfg.StoreBackend == config.BackendMemory {
		return memorystore.NewStore()
	}
	return dynamostore.NewStore(client, cfg.DynamoDBTable, cfg.TypeIndexName, logger)
}

// ProvideCommandService creates the graph command service
func ProvideCommandService(store ports.Store, logger *zap.Logger, collector *observability.Collector) *commands.GraphCommandService {
	return commands.NewGraphCommandService(store, logger, collector)
}

// ProvideQueryService creates the graph query service
func ProvideQueryService(store ports.Store, logger *zap.Logger, collector *observability.Collector) *queries.GraphQueryService {
	return queries.NewGraphQueryService(store, logger, collector)
}
