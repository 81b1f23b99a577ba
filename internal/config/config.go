package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/nitk/memory-vault/internal/domain"
)

// BaseConfig holds base configuration
type BaseConfig struct {
	Debug     bool   `mapstructure:"debug"`
	SentryDSN string `mapstructure:"sentry_dsn"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"`
}

// NATSConfig holds NATS JetStream configuration
type NATSConfig struct {
	URL            string        `mapstructure:"url"`
	StreamName     string        `mapstructure:"stream_name"`
	MaxReconnects  int           `mapstructure:"max_reconnects"`
	ReconnectWait  time.Duration `mapstructure:"reconnect_wait"`
	ConnectionName string        `mapstructure:"connection_name"`
}

// EthereumConfig holds chain access and vault contract configuration
type EthereumConfig struct {
	WebSocketURL    string       `mapstructure:"websocket_url"`
	RPCURL          string       `mapstructure:"rpc_url"`
	ChainID         domain.Chain `mapstructure:"chain_id"`
	ContractAddress string       `mapstructure:"contract_address"`
	StartBlock      uint64       `mapstructure:"start_block"`
	// ReceiptPollInterval is how often a pending mint transaction is polled for its receipt
	ReceiptPollInterval time.Duration `mapstructure:"receipt_poll_interval"`
}

// StorageConfig holds the content-addressed storage service configuration
type StorageConfig struct {
	ServiceURL string        `mapstructure:"service_url"`
	Email      string        `mapstructure:"email"`
	SpaceName  string        `mapstructure:"space_name"`
	Timeout    time.Duration `mapstructure:"timeout"`
}

// WalletConfig holds the signing key used to mint memories.
// Either PrivateKey or KeystorePath must be set.
type WalletConfig struct {
	PrivateKey   string `mapstructure:"private_key"`
	KeystorePath string `mapstructure:"keystore_path"`
	Passphrase   string `mapstructure:"passphrase"`
}

// IndexConfig holds the hosted index query configuration
type IndexConfig struct {
	URL     string        `mapstructure:"url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// GatewayConfig holds the display surface configuration
type GatewayConfig struct {
	IPFSGateway     string        `mapstructure:"ipfs_gateway"`
	PlaceholderPath string        `mapstructure:"placeholder_path"`
	CheckTimeout    time.Duration `mapstructure:"check_timeout"`
	Concurrency     int           `mapstructure:"concurrency"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	ReadTimeout  int    `mapstructure:"read_timeout"`  // in seconds
	WriteTimeout int    `mapstructure:"write_timeout"` // in seconds
	IdleTimeout  int    `mapstructure:"idle_timeout"`  // in seconds
	// MaxUploadSize caps the multipart upload relay body, in bytes
	MaxUploadSize int64 `mapstructure:"max_upload_size"`
	// CORSOrigins lists the browser origins allowed to call the API; empty allows all
	CORSOrigins []string `mapstructure:"cors_origins"`
}

// RateLimitConfig holds the per-client budget of the upload relay.
// An empty RedisAddr keeps the budgets in process.
type RateLimitConfig struct {
	Enabled          bool          `mapstructure:"enabled"`
	UploadsPerMinute int           `mapstructure:"uploads_per_minute"`
	Burst            int           `mapstructure:"burst"`
	RedisAddr        string        `mapstructure:"redis_addr"`
	RedisPassword    string        `mapstructure:"redis_password"`
	RedisDB          int           `mapstructure:"redis_db"`
	RedisKeyPrefix   string        `mapstructure:"redis_key_prefix"`
	RedisRetryAfter  time.Duration `mapstructure:"redis_retry_after"`
}

// AuthConfig holds authentication configuration
type AuthConfig struct {
	JWTPublicKey string   `mapstructure:"jwt_public_key"`
	APIKeys      []string `mapstructure:"api_keys"`
}

// IndexerWorkerConfig holds cursor persistence settings for the event indexer
type IndexerWorkerConfig struct {
	CursorSaveFreq  uint64        `mapstructure:"cursor_save_freq"`
	CursorSaveDelay time.Duration `mapstructure:"cursor_save_delay"`
	// RetryInitialInterval is the first delay before re-subscribing after a dropped subscription
	RetryInitialInterval time.Duration `mapstructure:"retry_initial_interval"`
	// MaxRetryElapsed bounds how long the indexer keeps re-subscribing after a dropped subscription
	MaxRetryElapsed time.Duration `mapstructure:"max_retry_elapsed"`
	// TimestampCacheSize is the number of block timestamps kept in memory
	TimestampCacheSize int `mapstructure:"timestamp_cache_size"`
	// BackfillBatchSize bounds the block range of each historical log query
	BackfillBatchSize uint64 `mapstructure:"backfill_batch_size"`
}

// VaultConfig holds configuration for the vault CLI
type VaultConfig struct {
	BaseConfig `mapstructure:",squash"`
	Storage    StorageConfig  `mapstructure:"storage"`
	Ethereum   EthereumConfig `mapstructure:"ethereum"`
	Wallet     WalletConfig   `mapstructure:"wallet"`
	Index      IndexConfig    `mapstructure:"index"`
	Gateway    GatewayConfig  `mapstructure:"gateway"`
	Theme      string         `mapstructure:"theme"`
}

// IndexerConfig holds configuration for event-indexer
type IndexerConfig struct {
	BaseConfig `mapstructure:",squash"`
	Database   DatabaseConfig      `mapstructure:"database"`
	NATS       NATSConfig          `mapstructure:"nats"`
	Ethereum   EthereumConfig      `mapstructure:"ethereum"`
	Worker     IndexerWorkerConfig `mapstructure:"worker"`
}

// APIConfig holds configuration for API server
type APIConfig struct {
	BaseConfig `mapstructure:",squash"`
	Server     ServerConfig   `mapstructure:"server"`
	Database   DatabaseConfig `mapstructure:"database"`
	Auth       AuthConfig      `mapstructure:"auth"`
	Storage    StorageConfig   `mapstructure:"storage"`
	Gateway    GatewayConfig   `mapstructure:"gateway"`
	RateLimit  RateLimitConfig `mapstructure:"rate_limit"`
}

// LoadVaultConfig loads configuration for the vault CLI
func LoadVaultConfig(configFile string, envPath string) (*VaultConfig, error) {
	v := configureViper("vault", configFile, envPath)

	setStorageDefaults(v)
	v.SetDefault("ethereum.chain_id", string(domain.ChainEthereumSepolia))
	v.SetDefault("ethereum.receipt_poll_interval", "2s")
	v.SetDefault("index.url", "https://api.studio.thegraph.com/query/92923/memory/version/latest")
	v.SetDefault("index.timeout", "30s")
	v.SetDefault("gateway.ipfs_gateway", domain.DEFAULT_IPFS_GATEWAY)
	v.SetDefault("gateway.placeholder_path", domain.PLACEHOLDER_IMAGE_PATH)
	v.SetDefault("gateway.check_timeout", "10s")
	v.SetDefault("gateway.concurrency", 8)
	v.SetDefault("theme", "light")

	if err := readConfig(v); err != nil {
		return nil, err
	}

	var cfg VaultConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.Theme != "light" && cfg.Theme != "dark" {
		return nil, fmt.Errorf("theme must be light or dark, got %q", cfg.Theme)
	}

	return &cfg, nil
}

// LoadIndexerConfig loads configuration for event-indexer
func LoadIndexerConfig(configFile string, envPath string) (*IndexerConfig, error) {
	v := configureViper("event-indexer", configFile, envPath)

	setDatabaseDefaults(v)
	v.SetDefault("nats.max_reconnects", 10)
	v.SetDefault("nats.reconnect_wait", "2s")
	v.SetDefault("nats.stream_name", "VAULT_EVENTS")
	v.SetDefault("nats.connection_name", "event-indexer")
	v.SetDefault("ethereum.chain_id", string(domain.ChainEthereumSepolia))
	v.SetDefault("worker.cursor_save_freq", 2)
	v.SetDefault("worker.cursor_save_delay", "30s")
	v.SetDefault("worker.retry_initial_interval", "1s")
	v.SetDefault("worker.max_retry_elapsed", "10m")
	v.SetDefault("worker.timestamp_cache_size", 4096)
	v.SetDefault("worker.backfill_batch_size", 2000)

	if err := readConfig(v); err != nil {
		return nil, err
	}

	var cfg IndexerConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.Ethereum.ContractAddress == "" {
		return nil, errors.New("ethereum.contract_address is required")
	}
	if !domain.IsValidChain(cfg.Ethereum.ChainID) {
		return nil, fmt.Errorf("unsupported ethereum.chain_id %q", cfg.Ethereum.ChainID)
	}

	return &cfg, nil
}

// LoadAPIConfig loads configuration for the API server
func LoadAPIConfig(configFile string, envPath string) (*APIConfig, error) {
	v := configureViper("api", configFile, envPath)

	setDatabaseDefaults(v)
	setStorageDefaults(v)
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 15)
	v.SetDefault("server.write_timeout", 60)
	v.SetDefault("server.idle_timeout", 60)
	v.SetDefault("server.max_upload_size", 50*1024*1024) // 50MB
	v.SetDefault("gateway.ipfs_gateway", domain.DEFAULT_IPFS_GATEWAY)
	v.SetDefault("rate_limit.enabled", true)
	v.SetDefault("rate_limit.uploads_per_minute", 10)
	v.SetDefault("rate_limit.redis_retry_after", "30s")

	if err := readConfig(v); err != nil {
		return nil, err
	}

	var cfg APIConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.Database.Host == "" {
		return nil, errors.New("database.host is required")
	}
	if cfg.Database.DBName == "" {
		return nil, errors.New("database.dbname is required")
	}

	return &cfg, nil
}

func setDatabaseDefaults(v *viper.Viper) {
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.sslmode", "disable")
}

func setStorageDefaults(v *viper.Viper) {
	v.SetDefault("storage.service_url", "https://up.storacha.network")
	v.SetDefault("storage.space_name", domain.DEFAULT_SPACE_NAME)
	v.SetDefault("storage.timeout", "2m")
}

// readConfig reads the config file, falling back to environment variables when it does not exist
func readConfig(v *viper.Viper) error {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to read config: %w", err)
	}
	return nil
}

// configureViper returns a viper instance with the config file and environment variables set
func configureViper(service string, configFile string, envPath string) *viper.Viper {
	v := viper.New()

	loadEnv(envPath, service)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		// Search for config.yaml in the current directory, the service directory and config/
		v.AddConfigPath(".")
		v.AddConfigPath(fmt.Sprintf("cmd/%s/", service))
		v.AddConfigPath("config/")
	}

	v.SetEnvPrefix("MEMORY_VAULT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	bindAllEnvVars(v)
	return v
}

// bindAllEnvVars explicitly binds all possible environment variables
// This is required for viper to map env vars to config struct fields when no config file exists
func bindAllEnvVars(v *viper.Viper) {
	keys := []string{
		"debug",
		"sentry_dsn",
		"theme",
		// Database
		"database.host",
		"database.port",
		"database.user",
		"database.password",
		"database.dbname",
		"database.sslmode",
		"database.max_open_conns",
		"database.max_idle_conns",
		"database.conn_max_lifetime",
		"database.conn_max_idle_time",
		// NATS
		"nats.url",
		"nats.stream_name",
		"nats.max_reconnects",
		"nats.reconnect_wait",
		"nats.connection_name",
		// Ethereum
		"ethereum.websocket_url",
		"ethereum.rpc_url",
		"ethereum.chain_id",
		"ethereum.contract_address",
		"ethereum.start_block",
		"ethereum.receipt_poll_interval",
		// Storage
		"storage.service_url",
		"storage.email",
		"storage.space_name",
		"storage.timeout",
		// Wallet
		"wallet.private_key",
		"wallet.keystore_path",
		"wallet.passphrase",
		// Index
		"index.url",
		"index.timeout",
		// Gateway
		"gateway.ipfs_gateway",
		"gateway.placeholder_path",
		"gateway.check_timeout",
		"gateway.concurrency",
		// Server
		"server.host",
		"server.port",
		"server.read_timeout",
		"server.write_timeout",
		"server.idle_timeout",
		"server.max_upload_size",
		"server.cors_origins",
		// Auth
		"auth.jwt_public_key",
		"auth.api_keys",
		// Upload rate limit
		"rate_limit.enabled",
		"rate_limit.uploads_per_minute",
		"rate_limit.burst",
		"rate_limit.redis_addr",
		"rate_limit.redis_password",
		"rate_limit.redis_db",
		"rate_limit.redis_key_prefix",
		"rate_limit.redis_retry_after",
		// Indexer worker
		"worker.cursor_save_freq",
		"worker.cursor_save_delay",
		"worker.retry_initial_interval",
		"worker.max_retry_elapsed",
		"worker.timestamp_cache_size",
		"worker.backfill_batch_size",
	}

	for _, key := range keys {
		_ = v.BindEnv(key)
	}
}

// loadEnv loads environment variables from the config directory
func loadEnv(envPath string, service string) {
	// Always try shared base first, then local, then optional per-service local.
	envFiles := []string{".env", ".env.local"}
	if service != "" {
		envFiles = append(envFiles, ".env."+service+".local")
	}

	if envPath == "" {
		envPath = "config/"
	}

	for _, envFile := range envFiles {
		_ = godotenv.Overload(filepath.Join(envPath, envFile)) // later files override earlier ones
	}
}

// ChdirRepoRoot changes the current working directory to the repository root
func ChdirRepoRoot() {
	cwd, _ := os.Getwd()
	for range 5 {
		if _, err := os.Stat(filepath.Join(cwd, "config")); err == nil {
			_ = os.Chdir(cwd)
			return
		}
		cwd = filepath.Dir(cwd)
	}
}

// DSN returns the database connection string
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}
