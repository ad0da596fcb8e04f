package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/sakif/ideaforge/internal/config"
	"github.com/sakif/ideaforge/internal/logging"
	"github.com/sakif/ideaforge/internal/metrics"
	"github.com/sakif/ideaforge/internal/repository/sqldb"
	"github.com/sakif/ideaforge/internal/service"
	"github.com/sakif/ideaforge/internal/validate"
)

// app holds the dependencies every command shares.
type app struct {
	cfg     *config.Config
	logger  *slog.Logger
	db      *sqldb.DB
	metrics *metrics.Collector
}

// newApp loads configuration, sets up logging and opens (and migrates) the
// database. Logs go to logOut so the mcp command can keep stdout clean.
func newApp(ctx context.Context, logOut io.Writer) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	logger := logging.New(cfg.Log, logOut)

	if err := ensureDataDir(cfg.Database); err != nil {
		return nil, err
	}

	db, err := sqldb.Open(ctx, cfg.Database.Driver, cfg.Database.DSN)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	logger.Info("database ready", slog.String("driver", db.Driver()))

	a := &app{cfg: cfg, logger: logger, db: db}
	if cfg.Metrics.Enabled {
		a.metrics = metrics.New(cfg.Metrics.Namespace)
	}
	return a, nil
}

func (a *app) service() *service.IdeaService {
	return service.NewIdeaService(a.db, validate.New(), a.metrics, a.logger)
}

func (a *app) close() {
	if err := a.db.Close(); err != nil {
		a.logger.Error("closing database", slog.String("error", err.Error()))
	}
}

// ensureDataDir creates the parent directory of a sqlite file DSN.
func ensureDataDir(cfg config.DatabaseConfig) error {
	if cfg.Driver != sqldb.DriverSQLite || cfg.DSN == ":memory:" || strings.HasPrefix(cfg.DSN, "file:") {
		return nil
	}
	dir := filepath.Dir(cfg.DSN)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating database directory %s: %w", dir, err)
	}
	return nil
}
