package cmd

import (
	"context"
	"fmt"
	"time"

	"meet-importer/core/config"
	"meet-importer/core/database"
	"meet-importer/core/logger"
	"meet-importer/core/meetservice"
	"meet-importer/core/storage"
	"meet-importer/feature/importer"
	"meet-importer/feature/ledger"
	"meet-importer/feature/snapshot"

	"go.uber.org/zap"
)

// app bundles the collaborators shared by the commands.
type app struct {
	cfg     *config.Config
	logger  *zap.Logger
	ledger  ledger.Ledger
	archive *snapshot.Archive
	service *importer.Service
}

// newApp loads the configuration, applies command line overrides and wires
// the import service. The ledger and the snapshot archive are optional and
// degrade to disabled on failure.
func newApp(ctx context.Context, overrides ...func(*config.Config)) (*app, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	for _, override := range overrides {
		override(cfg)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	a := &app{cfg: cfg, logger: l, ledger: ledger.Nop{}}

	if cfg.Database.Enabled {
		if db, err := database.Connect(cfg.Database); err != nil {
			l.Warn("Optional database connection failed, runs will not be recorded", zap.Error(err))
		} else if gl, err := ledger.New(db); err != nil {
			l.Warn("Failed to prepare import ledger", zap.Error(err))
		} else {
			a.ledger = gl
			l.Info("Connected to ledger database", zap.String("driver", cfg.Database.Driver))
		}
	}

	if cfg.Storage.Enabled {
		client, err := storage.NewClient(cfg.Storage)
		if err != nil {
			return nil, fmt.Errorf("failed to create storage client: %w", err)
		}
		if err := storage.EnsureBucket(ctx, client, cfg.Storage.Bucket, cfg.Storage.Region); err != nil {
			l.Warn("Snapshot archive unavailable", zap.Error(err))
		} else {
			a.archive = snapshot.New(client, cfg.Storage.Bucket, l)
		}
	}

	sources := importer.Sources{
		Binary:  cfg.Legacy.ExportBinary,
		WorkDir: cfg.Legacy.WorkDir,
		Archive: a.archive,
	}
	a.service = importer.NewService(meetservice.NewHTTPClient(cfg.Remote, l), sources, importer.Options{
		Policy: importer.Policy{
			ContinueOnBatchFailure: cfg.Import.ContinueOnBatchFailure,
			BlockOnConflict:        cfg.Import.BlockOnConflict,
		},
		Ledger:   a.ledger,
		Archive:  a.archive,
		CacheTTL: time.Duration(cfg.Import.CacheTTLSeconds) * time.Second,
	}, l)

	return a, nil
}
