package main

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/danielhkuo/ballot-kiosk/cliparse"
	"github.com/danielhkuo/ballot-kiosk/db"
	"github.com/danielhkuo/ballot-kiosk/event"
	"github.com/danielhkuo/ballot-kiosk/handlers"
	"github.com/danielhkuo/ballot-kiosk/kiosk"
	"github.com/danielhkuo/ballot-kiosk/logging"
	"github.com/danielhkuo/ballot-kiosk/metrics"
	"github.com/danielhkuo/ballot-kiosk/middleware"
	"github.com/danielhkuo/ballot-kiosk/router"
	"github.com/danielhkuo/ballot-kiosk/scan"
	"github.com/danielhkuo/ballot-kiosk/store"
)

const shutdownTimeout = 10 * time.Second

func main() {
	var err error

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	// Logging
	logs, logger := logging.NewManager(cfg.Log)
	defer logs.Close()
	slog.SetDefault(logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Follow log level changes in the config file
	if cfg.ConfigPath != "" {
		go func() {
			load := func(string) (logging.Config, error) {
				next, err := cfg.Reload()
				return next.Log, err
			}
			if err := logs.Watch(ctx, cfg.ConfigPath, load, logger); err != nil {
				slog.Error("config watcher stopped", "error", err)
			}
		}()
	}

	// One clock for the store, the controller and the handlers
	clk := clock.New()

	// Storage
	st, closeStore, err := openStore(ctx, cfg, clk)
	if err != nil {
		slog.Error("store setup failed", "error", err)
		os.Exit(1)
	}
	defer closeStore()
	slog.Info("Store ready", "type", cfg.DatabaseType)

	// Events and metrics
	bus := event.NewBus(logger, 0)
	m := metrics.New()
	m.Subscribe(bus)
	for _, t := range event.All {
		bus.Subscribe(t, logEvent)
	}
	go bus.Start()
	defer bus.Stop()

	// Kiosk controller
	src := scan.Locked(scan.NewSource(rand.Uint64()))
	ctrl := kiosk.New(kiosk.Config{
		Store:    st,
		Source:   src,
		Clock:    clk,
		Events:   bus,
		Logger:   logger,
		AdminPIN: cfg.AdminPIN,
		Timings:  cfg.Kiosk,
	})
	defer ctrl.Close()

	// Create router
	limiter := middleware.NewRateLimiter(ctx, cfg.PINRate, cfg.PINBurst)
	handler := router.NewRouter(handlers.Deps{
		Store:  st,
		Kiosk:  ctrl,
		Events: bus,
		Clock:  clk,
		Source: src,
	}, cfg, m, limiter)

	// Create server
	server := http.Server{
		Handler:           handler,
		Addr:              ":" + strconv.Itoa(cfg.Port),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal
		<-ctrlc
		cancel()

		shutdownCtx, done := context.WithTimeout(context.Background(), shutdownTimeout)
		defer done()
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("graceful shutdown failed", "error", err)
			server.Close()
		}
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port, "scan_delay", cfg.ScanDelay.String())
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}
}

// openStore returns the configured store and a function releasing it
func openStore(ctx context.Context, cfg cliparse.Config, clk clock.Clock) (store.Store, func(), error) {
	defaults := store.Defaults{
		Municipality:   cfg.Municipality,
		LocationNumber: cfg.LocationNumber,
		Clock:          clk,
	}

	if cfg.DatabaseType == db.TypeMemory {
		return store.NewMemory(defaults), func() {}, nil
	}

	conn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}

	if err := db.Migrate(conn, cfg.DatabaseType); err != nil {
		conn.Close()
		return nil, nil, err
	}

	st, err := store.NewSQL(ctx, conn, cfg.DatabaseType, defaults)
	if err != nil {
		conn.Close()
		return nil, nil, err
	}

	return st, func() { conn.Close() }, nil
}

func logEvent(e event.Event) {
	slog.Debug("kiosk event", "type", string(e.Type), "data", e.Data)
}
