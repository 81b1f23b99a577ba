package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap/zapcore"

	"github.com/nitk/memory-vault/internal/config"
	"github.com/nitk/memory-vault/internal/logger"
)

const vaultLongDesc string = `Memory Vault keeps campus memories on a content-addressed storage network
and mints a token for each of them on the vault contract.

  vault status                          Show the storage and wallet state
  vault upload photo.jpg                Store a file and print its CID
  vault mint photo.jpg --event-type Convocation --date 2024-06-01 --tags grad,2024
  vault list                            List minted memories
  vault search --event-type fest        Filter minted memories
  vault gallery                         Show gateway links for minted memories`

const vaultShortDesc string = "Memory Vault - campus memories on chain"

type rootOptions struct {
	configFile string
	envPath    string
	theme      string
	debug      bool
}

func newVaultCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "vault",
		Short:         vaultShortDesc,
		Long:          vaultLongDesc,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.configFile, "config", "", "Path to configuration file")
	cmd.PersistentFlags().StringVar(&opts.envPath, "env", "config/", "Path to environment files")
	cmd.PersistentFlags().StringVar(&opts.theme, "theme", "", "Color theme: light or dark (overrides config)")
	cmd.PersistentFlags().BoolVarP(&opts.debug, "debug", "d", false, "Enable debug logging")

	cmd.AddCommand(
		newStatusCmd(opts),
		newUploadCmd(opts),
		newMintCmd(opts),
		newListCmd(opts),
		newSearchCmd(opts),
		newGalleryCmd(opts),
	)

	return cmd
}

// load reads the configuration and initializes the logger for a command run
func (o *rootOptions) load() (*config.VaultConfig, error) {
	config.ChdirRepoRoot()
	cfg, err := config.LoadVaultConfig(o.configFile, o.envPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if o.theme != "" {
		cfg.Theme = o.theme
	}

	err = logger.Initialize(logger.Config{
		Debug:           cfg.Debug || o.debug,
		SentryDSN:       cfg.SentryDSN,
		BreadcrumbLevel: zapcore.InfoLevel,
		Service:         "vault",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	return cfg, nil
}

func main() {
	err := newVaultCmd().Execute()
	logger.Flush(2 * time.Second)
	if err != nil {
		fmt.Fprintln(os.Stderr, newTheme("").error.Render(err.Error()))
		os.Exit(1)
	}
}
