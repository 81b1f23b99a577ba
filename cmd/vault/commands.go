package main

import (
	"context"
	"fmt"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nitk/memory-vault/internal/adapter"
	"github.com/nitk/memory-vault/internal/domain"
	"github.com/nitk/memory-vault/internal/storage"
	"github.com/nitk/memory-vault/internal/vault"
)

// commandContext is canceled on SIGINT or SIGTERM
func commandContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
}

func readFile(path string) (*storage.File, error) {
	content, err := adapter.NewFileSystem().ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return &storage.File{
		Name:    filepath.Base(path),
		Content: content,
	}, nil
}

func newStatusCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the storage and wallet state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			ctx, cancel := commandContext(cmd)
			defer cancel()

			t := newTheme(cfg.Theme)
			d := newDeps(cfg)
			w := cmd.OutOrStdout()

			fmt.Fprintf(w, "\n%s\n", t.header.Render("Storage"))
			if _, err := d.session.EnsureReady(ctx); err != nil {
				fmt.Fprintln(w, t.error.Render("  "+err.Error()))
			}
			status := d.session.CheckStatus(ctx)
			fmt.Fprintln(w, "  "+t.field("Status", string(status.Kind)))
			if status.Reason != "" {
				fmt.Fprintln(w, "  "+t.field("Reason", status.Reason))
			}
			if status.Kind == storage.StatusReady {
				fmt.Fprintln(w, "  "+t.field("Spaces", fmt.Sprintf("%d", status.SpaceCount)))
				fmt.Fprintln(w, "  "+t.field("Current space", status.CurrentSpace.String()))
			}

			fmt.Fprintf(w, "\n%s\n", t.header.Render("Wallet"))
			if err := d.app.Connect(ctx); err != nil {
				fmt.Fprintln(w, "  "+t.field("State", string(vault.WalletDisconnected)))
				fmt.Fprintln(w, t.error.Render("  "+err.Error()))
				return nil
			}
			view := d.app.View()
			fmt.Fprintln(w, "  "+t.field("State", string(view.Wallet)))
			fmt.Fprintln(w, "  "+t.field("Account", view.Account))
			fmt.Fprintln(w, "  "+t.field("Chain", string(cfg.Ethereum.ChainID)))

			return d.app.Disconnect(ctx)
		},
	}
}

func newUploadCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "upload <file>",
		Short: "Store a file on the storage network and print its CID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			ctx, cancel := commandContext(cmd)
			defer cancel()

			file, err := readFile(args[0])
			if err != nil {
				return err
			}

			t := newTheme(cfg.Theme)
			d := newDeps(cfg)

			cid, err := d.uploader.Store(ctx, *file)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "%s %s\n", t.ok.Render("✓"), t.field("CID", cid))
			if url, err := d.resolver.Resolve(cid); err == nil {
				fmt.Fprintln(w, "  "+t.field("Gateway", url))
			}
			return nil
		},
	}
}

type mintOptions struct {
	eventType string
	date      string
	tags      string
}

func newMintCmd(opts *rootOptions) *cobra.Command {
	mintOpts := &mintOptions{}

	cmd := &cobra.Command{
		Use:   "mint <file>",
		Short: "Store a file and mint a memory that references it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			ctx, cancel := commandContext(cmd)
			defer cancel()

			file, err := readFile(args[0])
			if err != nil {
				return err
			}

			t := newTheme(cfg.Theme)
			d := newDeps(cfg)

			if err := d.app.Connect(ctx); err != nil {
				return fmt.Errorf("failed to connect wallet: %w", err)
			}
			defer func() { _ = d.app.Disconnect(context.WithoutCancel(ctx)) }()

			result, err := d.app.Mint(ctx, vault.MintRequest{
				File:      file,
				EventType: mintOpts.eventType,
				Date:      mintOpts.date,
				Tags:      domain.ParseTags(mintOpts.tags),
			})
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "%s %s\n", t.ok.Render("✓"), t.header.Render("Memory minted successfully!"))
			fmt.Fprintln(w, "  "+t.field("CID", result.CID))
			fmt.Fprintln(w, "  "+t.field("Transaction", result.TxHash))
			fmt.Fprintln(w, "  "+t.field("Block", fmt.Sprintf("%d", result.BlockNumber)))
			if result.TokenID != "" {
				fmt.Fprintln(w, "  "+t.field("Token", result.TokenID))
			}

			t.renderView(w, d.app.View())
			return nil
		},
	}

	cmd.Flags().StringVar(&mintOpts.eventType, "event-type", "", "Event the memory belongs to")
	cmd.Flags().StringVar(&mintOpts.date, "date", "", "Date of the memory (YYYY-MM-DD)")
	cmd.Flags().StringVar(&mintOpts.tags, "tags", "", "Comma-separated tags")

	return cmd
}

func newListCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List minted memories, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			ctx, cancel := commandContext(cmd)
			defer cancel()

			d := newDeps(cfg)
			// A failed query is shown by the view
			_ = d.app.Refresh(ctx)

			newTheme(cfg.Theme).renderView(cmd.OutOrStdout(), d.app.View())
			return nil
		},
	}
}

func newSearchCmd(opts *rootOptions) *cobra.Command {
	params := &vault.SearchParams{}

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Filter minted memories by event type and date",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			ctx, cancel := commandContext(cmd)
			defer cancel()

			d := newDeps(cfg)
			if err := d.app.Refresh(ctx); err == nil {
				d.app.Search(*params)
			}

			newTheme(cfg.Theme).renderView(cmd.OutOrStdout(), d.app.View())
			return nil
		},
	}

	cmd.Flags().StringVar(&params.EventType, "event-type", "", "Case-insensitive part of the event type")
	cmd.Flags().StringVar(&params.Date, "date", "", "Exact date of the memory (YYYY-MM-DD)")

	return cmd
}

func newGalleryCmd(opts *rootOptions) *cobra.Command {
	params := &vault.SearchParams{}

	cmd := &cobra.Command{
		Use:   "gallery",
		Short: "Show minted memories with their gateway images",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			ctx, cancel := commandContext(cmd)
			defer cancel()

			t := newTheme(cfg.Theme)
			d := newDeps(cfg)
			w := cmd.OutOrStdout()

			if err := d.app.Refresh(ctx); err != nil {
				t.renderView(w, d.app.View())
				return nil
			}
			d.app.Search(*params)

			t.renderGallery(w, d.app.Gallery(ctx))
			return nil
		},
	}

	cmd.Flags().StringVar(&params.EventType, "event-type", "", "Case-insensitive part of the event type")
	cmd.Flags().StringVar(&params.Date, "date", "", "Exact date of the memory (YYYY-MM-DD)")

	return cmd
}
