// Package backend opens the storage.Store selected by configuration.
package backend

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mmynk/splitledger/internal/config"
	"github.com/mmynk/splitledger/internal/storage"
	"github.com/mmynk/splitledger/internal/storage/memory"
	"github.com/mmynk/splitledger/internal/storage/postgres"
	"github.com/mmynk/splitledger/internal/storage/sqlite"
)

// Open returns the store for db. The caller closes it.
func Open(ctx context.Context, db config.Database) (storage.Store, error) {
	switch db.Driver {
	case config.DriverSQLite:
		store, err := sqlite.New(db.Path)
		if err != nil {
			return nil, err
		}
		slog.Info("Storage initialized", "driver", db.Driver, "database", db.Path)
		return store, nil
	case config.DriverPostgres:
		store, err := postgres.New(ctx, db.URL)
		if err != nil {
			return nil, err
		}
		slog.Info("Storage initialized", "driver", db.Driver)
		return store, nil
	case config.DriverMemory:
		slog.Info("Storage initialized", "driver", db.Driver)
		return memory.New(), nil
	default:
		return nil, fmt.Errorf("unknown database driver %q", db.Driver)
	}
}
