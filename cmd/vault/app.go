package main

import (
	"github.com/nitk/memory-vault/internal/adapter"
	"github.com/nitk/memory-vault/internal/config"
	"github.com/nitk/memory-vault/internal/providers/subgraph"
	"github.com/nitk/memory-vault/internal/providers/w3up"
	"github.com/nitk/memory-vault/internal/storage"
	"github.com/nitk/memory-vault/internal/uri"
	"github.com/nitk/memory-vault/internal/vault"
	"github.com/nitk/memory-vault/internal/wallet"
)

// deps are the collaborators of a single command run
type deps struct {
	session  *storage.Session
	uploader storage.Uploader
	resolver uri.Resolver
	app      *vault.App
}

func newDeps(cfg *config.VaultConfig) *deps {
	clock := adapter.NewClock()
	jsonAdapter := adapter.NewJSON()
	storageHTTP := adapter.NewHTTPClient(cfg.Storage.Timeout)
	indexHTTP := adapter.NewHTTPClient(cfg.Index.Timeout)
	gatewayHTTP := adapter.NewHTTPClient(cfg.Gateway.CheckTimeout)

	factory := w3up.NewFactory(w3up.Config{ServiceURL: cfg.Storage.ServiceURL}, storageHTTP, jsonAdapter)
	session := storage.NewSession(storage.SessionConfig{
		Email:     cfg.Storage.Email,
		SpaceName: cfg.Storage.SpaceName,
	}, factory)
	uploader := storage.NewUploader(session, clock)

	connector := wallet.NewConnector(wallet.Config{
		RPCURL:              cfg.Ethereum.RPCURL,
		Chain:               cfg.Ethereum.ChainID,
		ContractAddress:     cfg.Ethereum.ContractAddress,
		PrivateKey:          cfg.Wallet.PrivateKey,
		KeystorePath:        cfg.Wallet.KeystorePath,
		Passphrase:          cfg.Wallet.Passphrase,
		ReceiptPollInterval: cfg.Ethereum.ReceiptPollInterval,
	}, adapter.NewEthClientDialer(), adapter.NewFileSystem(), clock)

	index := subgraph.NewClient(subgraph.Config{URL: cfg.Index.URL}, indexHTTP, jsonAdapter)
	resolver := uri.NewResolver(uri.Config{IPFSGateway: cfg.Gateway.IPFSGateway})
	checker := uri.NewURLChecker(gatewayHTTP, adapter.NewIO())

	app := vault.NewApp(vault.Config{
		PlaceholderPath: cfg.Gateway.PlaceholderPath,
		Concurrency:     cfg.Gateway.Concurrency,
		CheckTimeout:    cfg.Gateway.CheckTimeout,
	}, connector, uploader, index, checker, resolver)

	return &deps{
		session:  session,
		uploader: uploader,
		resolver: resolver,
		app:      app,
	}
}
