// Package cli implements the splitctl command tree. Every command opens the
// configured store, runs one book operation and closes the store again.
package cli

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/mmynk/splitledger/internal/book"
	"github.com/mmynk/splitledger/internal/config"
	"github.com/mmynk/splitledger/internal/storage"
	"github.com/mmynk/splitledger/internal/storage/backend"
	"github.com/mmynk/splitledger/pkg/logging"
)

// Opener opens the store described by cfg.
type Opener func(ctx context.Context, cfg config.Config) (storage.Store, error)

// OpenConfigured opens the backend named in the configuration.
func OpenConfigured(ctx context.Context, cfg config.Config) (storage.Store, error) {
	return backend.Open(ctx, cfg.Database)
}

type app struct {
	open       Opener
	configPath string
	verbose    bool
}

// NewRootCommand builds the splitctl command tree around open.
func NewRootCommand(open Opener) *cobra.Command {
	a := &app{open: open}

	root := &cobra.Command{
		Use:           "splitctl",
		Short:         "Track shared expenses and settle who owes whom",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", os.Getenv(config.EnvConfigPath), "Path to a TOML config file.")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Log at the configured level instead of warnings only.")

	root.AddCommand(
		newPersonCommand(a),
		newExpenseCommand(a),
		newBalancesCommand(a),
	)
	return root
}

// withBook loads configuration, opens the store and hands a Book to fn.
func (a *app) withBook(cmd *cobra.Command, fn func(ctx context.Context, b *book.Book) error) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}

	level := slog.LevelWarn
	if a.verbose {
		if level, err = logging.ParseLevel(cfg.LogLevel); err != nil {
			return err
		}
	}
	slog.SetDefault(logging.New(cmd.ErrOrStderr(), level))

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	store, err := a.open(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	return fn(ctx, book.New(store))
}
