package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, ":8000", cfg.ServerAddress)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, BackendDynamoDB, cfg.StoreBackend)
	assert.Equal(t, "webgraphy", cfg.DynamoDBTable)
	assert.Equal(t, "TypeIndex", cfg.TypeIndexName)
	assert.True(t, cfg.EnableCORS)
	assert.True(t, cfg.IsDevelopment())
	assert.False(t, cfg.IsProduction())
}

func TestLoadConfigFromEnvironment(t *testing.T) {
	t.Setenv("SERVER_ADDRESS", ":9090")
	t.Setenv("STORE_BACKEND", BackendMemory)
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("ENABLE_CORS", "false")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.ServerAddress)
	assert.Equal(t, BackendMemory, cfg.StoreBackend)
	assert.False(t, cfg.EnableCORS)
	assert.True(t, cfg.IsProduction())
}

func TestLoadConfigRejectsUnknownBackend(t *testing.T) {
	t.Setenv("STORE_BACKEND", "postgres")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "STORE_BACKEND")
}

func TestValidateRequiresTableForDynamoDB(t *testing.T) {
	cfg := &Config{StoreBackend: BackendDynamoDB}
	assert.Error(t, cfg.Validate())

	cfg.DynamoDBTable = "webgraphy"
	assert.NoError(t, cfg.Validate())

	cfg = &Config{StoreBackend: BackendMemory}
	assert.NoError(t, cfg.Validate())
}

func TestGetEnvBool(t *testing.T) {
	t.Setenv("FLAG", "")
	assert.True(t, getEnvBool("FLAG", true))
	assert.False(t, getEnvBool("FLAG", false))

	for _, truthy := range []string{"true", "1", "yes"} {
		t.Setenv("FLAG", truthy)
		assert.True(t, getEnvBool("FLAG", false), truthy)
	}

	t.Setenv("FLAG", "false")
	assert.False(t, getEnvBool("FLAG", true))
}
