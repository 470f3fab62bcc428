package server

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/preston-bernstein/activities-service/internal/app/enrollment"
	"github.com/preston-bernstein/activities-service/internal/catalog"
	"github.com/preston-bernstein/activities-service/internal/config"
	"github.com/preston-bernstein/activities-service/internal/logging"
	"github.com/preston-bernstein/activities-service/internal/store"
)

// buildStore loads the seed catalog and opens the configured roster store.
// The returned close func is never nil.
func buildStore(ctx context.Context, cfg config.Config, logger *slog.Logger) (enrollment.Store, func() error, error) {
	items, err := catalog.Load(cfg.CatalogFile)
	if err != nil {
		return nil, nil, fmt.Errorf("load catalog: %w", err)
	}

	switch cfg.Store.Driver {
	case config.StoreSQLite:
		s, err := store.NewSQLiteStore(ctx, cfg.Store.SQLiteDSN, items)
		if err != nil {
			return nil, nil, err
		}
		logging.Info(logger, "roster store ready",
			slog.String(logging.FieldStore, config.StoreSQLite),
			slog.Int(logging.FieldCount, len(items)),
		)
		return s, s.Close, nil
	default:
		logging.Info(logger, "roster store ready",
			slog.String(logging.FieldStore, config.StoreMemory),
			slog.Int(logging.FieldCount, len(items)),
		)
		return store.NewMemoryStore(items), func() error { return nil }, nil
	}
}
