package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/notseanray/seanifyv2-backend/cache"
	"github.com/notseanray/seanifyv2-backend/config"
	"github.com/notseanray/seanifyv2-backend/core/catalog"
	"github.com/notseanray/seanifyv2-backend/core/ingest"
	"github.com/notseanray/seanifyv2-backend/core/search"
	"github.com/notseanray/seanifyv2-backend/db"
	"github.com/notseanray/seanifyv2-backend/logger"
	"github.com/notseanray/seanifyv2-backend/repository"
	"github.com/notseanray/seanifyv2-backend/storage"
)

var rootCmd = &cobra.Command{
	Use:   "seanify_server",
	Short: "Seanify catalogs audio tracks and serves fuzzy search over them.",
	Run: func(cmd *cobra.Command, args []string) {
		runDaemon()
	},
}

// Execute executes the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runDaemon() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, "invalid configuration:", err)
		os.Exit(1)
	}

	logger.InitLogger(logger.Config{
		Level:      logger.InfoLevel,
		OutputPath: cfg.LogPath,
		MaxSize:    50,
		MaxBackups: 5,
		MaxAge:     14,
		Compress:   true,
	})

	if err := db.ConnectDB(cfg); err != nil {
		logger.Fatal("Failed to connect to the database.", logger.ErrorField(err))
	}
	defer db.CloseDB()

	if err := db.InitDB(); err != nil {
		logger.Fatal("Failed to initialize the database schema.", logger.ErrorField(err))
	}

	// Play history degrades to a no-op when Redis is unreachable; the
	// catalog itself does not depend on it.
	var history *cache.History
	if err := db.ConnectRedis(cfg); err != nil {
		logger.Warn("Redis unavailable, play history disabled.", logger.ErrorField(err))
	} else {
		history = cache.NewHistory(db.RedisClient, cfg.MaxLastPlayed)
		defer db.CloseRedis()
	}

	archive, err := storage.NewArchive(cfg)
	if err != nil {
		logger.Fatal("Failed to initialize the MinIO archive.", logger.ErrorField(err))
	}

	repo := repository.NewMySQLSongRepository(db.DB)

	// No index, no service: a failed initial load is fatal.
	index, err := search.Load(context.Background(), repo)
	if err != nil {
		logger.Fatal("Failed to load the song index at startup.", logger.ErrorField(err))
	}

	queue := ingest.NewQueue()
	extractor := ingest.NewExtractor(cfg, repo, index, archive)
	worker := ingest.NewWorker(queue, extractor, cfg.CycleInterval)

	// The service is what the API layer calls into; the daemon itself
	// only drives the worker.
	service := catalog.NewService(cfg, queue, index, history)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	worker.Start(ctx)
	logger.Info("Seanify daemon started.",
		logger.Int("songs", index.Len()),
		logger.Duration("cycle_interval", cfg.CycleInterval))

	<-ctx.Done()
	pending := len(service.QueueSnapshot())
	if pending > 0 {
		logger.Warn("Shutting down with pending queue entries.", logger.Int("pending", pending))
	}
	logger.Info("Shutting down, waiting for the ingestion worker.")
	<-worker.Done()
}
