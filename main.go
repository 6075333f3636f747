package main

import (
	"context"
	"errors"
	"image"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/danielhkuo/polycanvas/cliparse"
	"github.com/danielhkuo/polycanvas/db"
	"github.com/danielhkuo/polycanvas/editor"
	"github.com/danielhkuo/polycanvas/middleware"
	"github.com/danielhkuo/polycanvas/router"
	"github.com/danielhkuo/polycanvas/service"
	"github.com/danielhkuo/polycanvas/store"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}
	cliparse.SetupLogging(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Prefer the database, keep the JSON file as a fallback
	var primary store.Repository
	dbConn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)
	if err != nil {
		slog.Warn("database unavailable, using file store only", "error", err, "data_file", cfg.DataFile)
	} else {
		defer dbConn.Close()
		if err := db.CreateSchema(dbConn); err != nil {
			slog.Error("schema creation failed", "error", err)
			os.Exit(1)
		}
		slog.Info("Database schema ready", "type", cfg.DatabaseType)
		primary = store.NewSQLStore(dbConn)
	}
	repo := store.NewFallbackStore(primary, store.NewFileStore(cfg.DataFile))

	svc := service.NewPolygonService(repo, cfg.Latency)
	if cfg.Latency > 0 {
		slog.Info("Simulating backend latency", "latency", cfg.Latency)
	}

	var background image.Image
	if cfg.BackgroundImage != "" {
		background, err = editor.LoadBackground(ctx, cfg.BackgroundImage)
		if err != nil {
			slog.Warn("preview background unavailable, using solid fill", "error", err)
		}
	}

	mux := router.NewRouter(svc, cfg, background)

	server := &http.Server{
		Handler:           middleware.CORS(mux),
		Addr:              ":" + strconv.Itoa(cfg.Port),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("Listening", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		slog.Error("Server closed", "error", err)
		os.Exit(1)
	}
	slog.Info("Server closed")
}
