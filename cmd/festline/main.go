package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pgulley/festline/internal/api"
	"github.com/pgulley/festline/internal/catalog"
	"github.com/pgulley/festline/internal/catalog/deezer"
	"github.com/pgulley/festline/internal/catalog/itunes"
	"github.com/pgulley/festline/internal/config"
	"github.com/pgulley/festline/internal/database"
	"github.com/pgulley/festline/internal/extract"
	"github.com/pgulley/festline/internal/logging"
	"github.com/pgulley/festline/internal/pipeline"
	"github.com/pgulley/festline/internal/playlist"
	"github.com/pgulley/festline/internal/resolve"
	"github.com/pgulley/festline/internal/scan"
	"github.com/pgulley/festline/internal/version"
	"github.com/pgulley/festline/internal/watcher"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := os.Getenv("FL_CONFIG_PATH")
	if configPath == "" {
		configPath = "/data/config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger, logCloser := logging.New(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		File:   cfg.Logging.File,
	})
	defer logCloser.Close() //nolint:errcheck
	slog.SetDefault(logger)

	logger.Info("festline starting",
		slog.String("version", version.Version),
		slog.String("commit", version.Commit))

	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("closing database", "error", err)
		}
	}()

	if err := database.Migrate(db); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}

	limiter := catalog.NewRateLimiterMap()
	var cat catalog.Catalog
	switch catalog.Name(cfg.Catalog.Backend) {
	case catalog.NameDeezer:
		cat = deezer.New(limiter, logger)
	case catalog.NameITunes:
		cat = itunes.New(limiter, logger)
	default:
		return fmt.Errorf("unknown catalog backend: %q", cfg.Catalog.Backend)
	}
	logger.Info("catalog backend selected", slog.String("backend", string(cat.Name())))

	scans := scan.NewService(db)
	playlists := playlist.NewService(db)

	p := pipeline.New(
		extract.New(logger),
		resolve.NewResolver(cat, logger, resolve.ResolverOptions{
			AcceptThreshold: cfg.Match.AcceptThreshold,
			DistanceCutoff:  cfg.Match.DistanceCutoff,
			SearchLimit:     cfg.Catalog.SearchLimit,
			Workers:         cfg.Match.Workers,
		}),
		resolve.NewTopTrackResolver(cat, logger, resolve.TopTrackOptions{
			TrackCap:    cfg.Match.TrackCap,
			SearchLimit: cfg.Catalog.SearchLimit,
		}),
		scans,
		playlists,
		logger,
	)

	// Graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	router := api.NewRouter(api.RouterDeps{
		Pipeline:        p,
		ScanService:     scans,
		PlaylistService: playlists,
		Exporter:        playlist.NewM3UExporter(cfg.Export.Dir),
		DB:              db,
		Logger:          logger,
	})

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Inbox watcher: dropped OCR text files become playlists named after
	// the file.
	if cfg.Inbox.Path != "" {
		handle := func(ctx context.Context, name, text string) error {
			result, err := p.Run(ctx, text)
			if err != nil {
				return err
			}
			if result.Empty() {
				return fmt.Errorf("no festival lineup recognized in %s", name)
			}
			_, err = p.SavePlaylist(ctx, name, playlist.Metadata{}, result)
			return err
		}
		watcherService := watcher.NewService(cfg.Inbox.Path, handle, logger)
		go watcherService.Start(ctx)
	}

	go func() {
		logger.Info("server starting", slog.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}
