package factory

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/topio-market/topio-registry/internal/config"
	"github.com/topio-market/topio-registry/internal/localstate"
	storepkg "github.com/topio-market/topio-registry/internal/store"
	storepg "github.com/topio-market/topio-registry/internal/store/postgres"
	storelite "github.com/topio-market/topio-registry/internal/store/sqlite"
)

// schemaTimeout bounds the DDL pass at startup.
const schemaTimeout = 30 * time.Second

// NewStore opens the backend selected by cfg.DBDriver and applies the
// registry schema before returning. Schema application is idempotent,
// so restarting against an existing database is safe.
func NewStore(ctx context.Context, cfg *config.Config, log zerolog.Logger) (storepkg.Store, error) {
	switch cfg.DBDriver {
	case "postgres":
		db, err := storepg.Open(cfg.PostgresURL())
		if err != nil {
			return nil, err
		}
		schemaCtx, cancel := context.WithTimeout(ctx, schemaTimeout)
		defer cancel()
		if err := storepg.EnsureSchema(schemaCtx, db); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply postgres schema: %w", err)
		}
		log.Info().Str("driver", cfg.DBDriver).Msg("store ready")
		return storepg.NewWithDB(db), nil

	case "sqlite":
		path := cfg.SQLitePath
		if path == "" {
			var err error
			path, err = localstate.DBPath()
			if err != nil {
				return nil, fmt.Errorf("resolve default sqlite path: %w", err)
			}
		}
		db, err := storelite.Open(path)
		if err != nil {
			return nil, err
		}
		schemaCtx, cancel := context.WithTimeout(ctx, schemaTimeout)
		defer cancel()
		if err := storelite.EnsureSchema(schemaCtx, db); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply sqlite schema: %w", err)
		}
		log.Info().Str("driver", cfg.DBDriver).Str("path", path).Msg("store ready")
		return storelite.NewWithDB(db), nil

	default:
		return nil, fmt.Errorf("unknown DB_DRIVER: %s", cfg.DBDriver)
	}
}
