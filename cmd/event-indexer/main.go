package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/nitk/memory-vault/internal/adapter"
	"github.com/nitk/memory-vault/internal/block"
	"github.com/nitk/memory-vault/internal/config"
	"github.com/nitk/memory-vault/internal/indexer"
	"github.com/nitk/memory-vault/internal/logger"
	"github.com/nitk/memory-vault/internal/normalizer"
	"github.com/nitk/memory-vault/internal/providers/ethereum"
	"github.com/nitk/memory-vault/internal/providers/jetstream"
	"github.com/nitk/memory-vault/internal/store"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
)

func main() {
	flag.Parse()

	config.ChdirRepoRoot()
	cfg, err := config.LoadIndexerConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	err = logger.Initialize(logger.Config{
		Debug:           cfg.Debug,
		SentryDSN:       cfg.SentryDSN,
		BreadcrumbLevel: zapcore.InfoLevel,
		Service:         "event-indexer",
		Tags: map[string]string{
			"chain": string(cfg.Ethereum.ChainID),
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting Memory Vault event indexer")

	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{})
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to database", zap.Error(err), zap.String("host", cfg.Database.Host))
	}
	if err := store.ConfigureConnectionPool(db, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns, cfg.Database.ConnMaxLifetime, cfg.Database.ConnMaxIdleTime); err != nil {
		logger.FatalCtx(ctx, "Failed to configure connection pool", zap.Error(err))
	}
	dataStore := store.NewPGStore(db)
	logger.InfoCtx(ctx, "Connected to database")

	clockAdapter := adapter.NewClock()
	jsonAdapter := adapter.NewJSON()

	ethClient, err := adapter.NewEthClientDialer().Dial(ctx, cfg.Ethereum.WebSocketURL)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to dial Ethereum node", zap.Error(err), zap.String("websocket_url", cfg.Ethereum.WebSocketURL))
	}
	defer ethClient.Close()

	blocks, err := block.NewBlockProvider(ethereum.NewEthereumBlockFetcher(ethClient), block.Config{
		TimestampCacheSize: cfg.Worker.TimestampCacheSize,
	})
	if err != nil {
		logger.FatalCtx(ctx, "Failed to create block provider", zap.Error(err))
	}

	subscriber := ethereum.NewSubscriber(ethereum.Config{
		ChainID:           cfg.Ethereum.ChainID,
		ContractAddress:   common.HexToAddress(cfg.Ethereum.ContractAddress),
		BackfillBatchSize: cfg.Worker.BackfillBatchSize,
	}, ethClient, blocks)

	publisher, err := jetstream.NewPublisher(ctx, jetstream.Config{
		URL:            cfg.NATS.URL,
		StreamName:     cfg.NATS.StreamName,
		MaxReconnects:  cfg.NATS.MaxReconnects,
		ReconnectWait:  cfg.NATS.ReconnectWait,
		ConnectionName: cfg.NATS.ConnectionName,
	}, adapter.NewNatsJetStream(), jsonAdapter)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to create NATS publisher", zap.Error(err), zap.String("url", cfg.NATS.URL))
	}
	logger.InfoCtx(ctx, "Connected to NATS JetStream")

	eventIndexer := indexer.NewIndexer(
		subscriber,
		normalizer.NewNormalizer(cfg.Ethereum.ChainID, dataStore),
		publisher,
		dataStore,
		indexer.Config{
			ChainID:              cfg.Ethereum.ChainID,
			StartBlock:           cfg.Ethereum.StartBlock,
			CursorSaveFreq:       cfg.Worker.CursorSaveFreq,
			CursorSaveDelay:      cfg.Worker.CursorSaveDelay,
			RetryInitialInterval: cfg.Worker.RetryInitialInterval,
			MaxRetryElapsed:      cfg.Worker.MaxRetryElapsed,
		},
		clockAdapter,
	)
	defer eventIndexer.Close()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		if err := eventIndexer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			errCh <- err
		}
	}()

	select {
	case sig := <-sigCh:
		logger.InfoCtx(ctx, "Received shutdown signal", zap.String("signal", sig.String()))
		cancel()
	case err := <-errCh:
		logger.ErrorCtx(ctx, err, zap.String("component", "indexer"))
		cancel()
	}

	// Let Run flush the cursor before the deferred closes
	time.Sleep(time.Second)

	logger.Info("Memory Vault event indexer stopped")
}
