package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nitk/memory-vault/internal/domain"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	configFile := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(configFile, []byte(content), 0600))
	return configFile
}

func TestLoadVaultConfig(t *testing.T) {
	tests := []struct {
		name        string
		configFile  string
		expectError bool
		validate    func(*testing.T, *VaultConfig)
	}{
		{
			name: "valid config file",
			configFile: `
debug: true
theme: dark
storage:
  service_url: "http://localhost:9000"
  email: "someone@nitk.edu.in"
  space_name: "test-space"
  timeout: "30s"
ethereum:
  rpc_url: "http://localhost:8545"
  chain_id: "eip155:80002"
  contract_address: "0x00000000000000000000000000000000000000aa"
wallet:
  private_key: "deadbeef"
index:
  url: "http://localhost:8000/subgraphs/name/memory"
gateway:
  ipfs_gateway: "https://gateway.example.com"
  concurrency: 4
`,
			validate: func(t *testing.T, cfg *VaultConfig) {
				assert.True(t, cfg.Debug)
				assert.Equal(t, "dark", cfg.Theme)
				assert.Equal(t, "http://localhost:9000", cfg.Storage.ServiceURL)
				assert.Equal(t, "someone@nitk.edu.in", cfg.Storage.Email)
				assert.Equal(t, "test-space", cfg.Storage.SpaceName)
				assert.Equal(t, 30*time.Second, cfg.Storage.Timeout)
				assert.Equal(t, domain.ChainPolygonAmoy, cfg.Ethereum.ChainID)
				assert.Equal(t, "0x00000000000000000000000000000000000000aa", cfg.Ethereum.ContractAddress)
				assert.Equal(t, "deadbeef", cfg.Wallet.PrivateKey)
				assert.Equal(t, "http://localhost:8000/subgraphs/name/memory", cfg.Index.URL)
				assert.Equal(t, "https://gateway.example.com", cfg.Gateway.IPFSGateway)
				assert.Equal(t, 4, cfg.Gateway.Concurrency)
			},
		},
		{
			name: "config with defaults",
			configFile: `
ethereum:
  contract_address: "0x00000000000000000000000000000000000000aa"
`,
			validate: func(t *testing.T, cfg *VaultConfig) {
				assert.Equal(t, "light", cfg.Theme)
				assert.Equal(t, domain.DEFAULT_SPACE_NAME, cfg.Storage.SpaceName)
				assert.Equal(t, 2*time.Minute, cfg.Storage.Timeout)
				assert.Equal(t, domain.ChainEthereumSepolia, cfg.Ethereum.ChainID)
				assert.Equal(t, 2*time.Second, cfg.Ethereum.ReceiptPollInterval)
				assert.Equal(t, domain.DEFAULT_IPFS_GATEWAY, cfg.Gateway.IPFSGateway)
				assert.Equal(t, domain.PLACEHOLDER_IMAGE_PATH, cfg.Gateway.PlaceholderPath)
				assert.Equal(t, 8, cfg.Gateway.Concurrency)
			},
		},
		{
			name: "unknown theme",
			configFile: `
theme: sepia
`,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := LoadVaultConfig(writeConfig(t, tt.configFile), t.TempDir())

			if tt.expectError {
				assert.Error(t, err)
				assert.Nil(t, cfg)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, cfg)
			tt.validate(t, cfg)
		})
	}
}

func TestLoadIndexerConfig(t *testing.T) {
	tests := []struct {
		name        string
		configFile  string
		expectError bool
		validate    func(*testing.T, *IndexerConfig)
	}{
		{
			name: "valid config file",
			configFile: `
debug: true
sentry_dsn: "https://sentry.example.com"
database:
  host: localhost
  port: 5432
  user: testuser
  password: testpass
  dbname: testdb
  sslmode: require
nats:
  url: "nats://localhost:4222"
  stream_name: "TEST_STREAM"
  max_reconnects: 5
  reconnect_wait: "5s"
ethereum:
  websocket_url: "ws://localhost:8545"
  chain_id: "eip155:1"
  contract_address: "0x00000000000000000000000000000000000000aa"
  start_block: 1000
worker:
  cursor_save_freq: 10
  cursor_save_delay: "1m"
`,
			validate: func(t *testing.T, cfg *IndexerConfig) {
				assert.True(t, cfg.Debug)
				assert.Equal(t, "https://sentry.example.com", cfg.SentryDSN)
				assert.Equal(t, "localhost", cfg.Database.Host)
				assert.Equal(t, "require", cfg.Database.SSLMode)
				assert.Equal(t, "nats://localhost:4222", cfg.NATS.URL)
				assert.Equal(t, "TEST_STREAM", cfg.NATS.StreamName)
				assert.Equal(t, 5, cfg.NATS.MaxReconnects)
				assert.Equal(t, 5*time.Second, cfg.NATS.ReconnectWait)
				assert.Equal(t, "ws://localhost:8545", cfg.Ethereum.WebSocketURL)
				assert.Equal(t, domain.ChainEthereumMainnet, cfg.Ethereum.ChainID)
				assert.Equal(t, uint64(1000), cfg.Ethereum.StartBlock)
				assert.Equal(t, uint64(10), cfg.Worker.CursorSaveFreq)
				assert.Equal(t, time.Minute, cfg.Worker.CursorSaveDelay)
			},
		},
		{
			name: "config with defaults",
			configFile: `
database:
  host: localhost
  dbname: testdb
ethereum:
  websocket_url: "ws://localhost:8545"
  contract_address: "0x00000000000000000000000000000000000000aa"
`,
			validate: func(t *testing.T, cfg *IndexerConfig) {
				assert.Equal(t, 5432, cfg.Database.Port)
				assert.Equal(t, "disable", cfg.Database.SSLMode)
				assert.Equal(t, 10, cfg.NATS.MaxReconnects)
				assert.Equal(t, "2s", cfg.NATS.ReconnectWait.String())
				assert.Equal(t, "VAULT_EVENTS", cfg.NATS.StreamName)
				assert.Equal(t, domain.ChainEthereumSepolia, cfg.Ethereum.ChainID)
				assert.Equal(t, uint64(2), cfg.Worker.CursorSaveFreq)
				assert.Equal(t, 30*time.Second, cfg.Worker.CursorSaveDelay)
				assert.Equal(t, 10*time.Minute, cfg.Worker.MaxRetryElapsed)
				assert.Equal(t, time.Second, cfg.Worker.RetryInitialInterval)
				assert.Equal(t, 4096, cfg.Worker.TimestampCacheSize)
				assert.Equal(t, uint64(2000), cfg.Worker.BackfillBatchSize)
			},
		},
		{
			name: "missing contract address",
			configFile: `
ethereum:
  websocket_url: "ws://localhost:8545"
`,
			expectError: true,
		},
		{
			name: "unsupported chain",
			configFile: `
ethereum:
  chain_id: "tezos:mainnet"
  contract_address: "0x00000000000000000000000000000000000000aa"
`,
			expectError: true,
		},
		{
			name: "invalid yaml",
			configFile: `
				database:
				  host: localhost
				  port: invalid
			`,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := LoadIndexerConfig(writeConfig(t, tt.configFile), t.TempDir())

			if tt.expectError {
				assert.Error(t, err)
				assert.Nil(t, cfg)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, cfg)
			tt.validate(t, cfg)
		})
	}
}

func TestLoadAPIConfig(t *testing.T) {
	tests := []struct {
		name        string
		configFile  string
		expectError bool
		validate    func(*testing.T, *APIConfig)
	}{
		{
			name: "valid config file",
			configFile: `
server:
  host: 127.0.0.1
  port: 9090
  read_timeout: 5
  cors_origins:
    - https://vault.nitk.edu.in
database:
  host: localhost
  user: testuser
  dbname: testdb
auth:
  api_keys:
    - key-one
    - key-two
storage:
  email: "relay@nitk.edu.in"
rate_limit:
  redis_addr: "localhost:6379"
  burst: 3
`,
			validate: func(t *testing.T, cfg *APIConfig) {
				assert.Equal(t, "127.0.0.1", cfg.Server.Host)
				assert.Equal(t, 9090, cfg.Server.Port)
				assert.Equal(t, 5, cfg.Server.ReadTimeout)
				assert.Equal(t, 60, cfg.Server.WriteTimeout)
				assert.Equal(t, int64(50*1024*1024), cfg.Server.MaxUploadSize)
				assert.Equal(t, []string{"key-one", "key-two"}, cfg.Auth.APIKeys)
				assert.Equal(t, "relay@nitk.edu.in", cfg.Storage.Email)
				assert.Equal(t, domain.DEFAULT_SPACE_NAME, cfg.Storage.SpaceName)
				assert.Equal(t, []string{"https://vault.nitk.edu.in"}, cfg.Server.CORSOrigins)
				assert.Equal(t, domain.DEFAULT_IPFS_GATEWAY, cfg.Gateway.IPFSGateway)
				assert.True(t, cfg.RateLimit.Enabled)
				assert.Equal(t, 10, cfg.RateLimit.UploadsPerMinute)
				assert.Equal(t, 3, cfg.RateLimit.Burst)
				assert.Equal(t, "localhost:6379", cfg.RateLimit.RedisAddr)
				assert.Equal(t, 30*time.Second, cfg.RateLimit.RedisRetryAfter)
			},
		},
		{
			name: "missing database host",
			configFile: `
database:
  dbname: testdb
`,
			expectError: true,
		},
		{
			name: "missing database name",
			configFile: `
database:
  host: localhost
`,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := LoadAPIConfig(writeConfig(t, tt.configFile), t.TempDir())

			if tt.expectError {
				assert.Error(t, err)
				assert.Nil(t, cfg)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, cfg)
			tt.validate(t, cfg)
		})
	}
}

func TestDatabaseConfig_DSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "vault",
		Password: "secret",
		DBName:   "memory_vault",
		SSLMode:  "disable",
	}

	assert.Equal(t,
		"host=localhost port=5432 user=vault password=secret dbname=memory_vault sslmode=disable",
		cfg.DSN())
}

func TestConfigWithEnvironmentVariables(t *testing.T) {
	envDir := t.TempDir()
	envContent := `MEMORY_VAULT_DEBUG=true
MEMORY_VAULT_DATABASE_HOST=env-host
MEMORY_VAULT_DATABASE_PORT=3306
MEMORY_VAULT_DATABASE_DBNAME=env-db
MEMORY_VAULT_STORAGE_EMAIL=env@nitk.edu.in
`
	require.NoError(t, os.WriteFile(filepath.Join(envDir, ".env"), []byte(envContent), 0600))

	// godotenv sets real process variables
	t.Cleanup(func() {
		for _, key := range []string{
			"MEMORY_VAULT_DEBUG",
			"MEMORY_VAULT_DATABASE_HOST",
			"MEMORY_VAULT_DATABASE_PORT",
			"MEMORY_VAULT_DATABASE_DBNAME",
			"MEMORY_VAULT_STORAGE_EMAIL",
		} {
			_ = os.Unsetenv(key)
		}
	})

	configPath := writeConfig(t, `
debug: false
database:
  host: file-host
  port: 5432
  dbname: file-db
`)

	cfg, err := LoadAPIConfig(configPath, envDir)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.True(t, cfg.Debug)
	assert.Equal(t, "env-host", cfg.Database.Host)
	assert.Equal(t, 3306, cfg.Database.Port)
	assert.Equal(t, "env-db", cfg.Database.DBName)
	assert.Equal(t, "env@nitk.edu.in", cfg.Storage.Email)
}
