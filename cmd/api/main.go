package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/catatusaha/internal/auth"
	"github.com/MrJamesThe3rd/catatusaha/internal/config"
	"github.com/MrJamesThe3rd/catatusaha/internal/database"
	"github.com/MrJamesThe3rd/catatusaha/internal/export"
	catatHttp "github.com/MrJamesThe3rd/catatusaha/internal/http"
	"github.com/MrJamesThe3rd/catatusaha/internal/http/api"
	dashboardHandler "github.com/MrJamesThe3rd/catatusaha/internal/http/dashboard"
	productionHandler "github.com/MrJamesThe3rd/catatusaha/internal/http/production"
	reportHandler "github.com/MrJamesThe3rd/catatusaha/internal/http/report"
	stockHandler "github.com/MrJamesThe3rd/catatusaha/internal/http/stock"
	txHandler "github.com/MrJamesThe3rd/catatusaha/internal/http/transaction"
	"github.com/MrJamesThe3rd/catatusaha/internal/production"
	"github.com/MrJamesThe3rd/catatusaha/internal/report"
	"github.com/MrJamesThe3rd/catatusaha/internal/stock"
	"github.com/MrJamesThe3rd/catatusaha/internal/storage"
	"github.com/MrJamesThe3rd/catatusaha/internal/storage/memory"
	"github.com/MrJamesThe3rd/catatusaha/internal/storage/postgres"
	"github.com/MrJamesThe3rd/catatusaha/internal/transaction"
	"github.com/MrJamesThe3rd/catatusaha/internal/transaction/csvimport"
)

const shutdownTimeout = 15 * time.Second

func main() {
	// A missing .env is fine; the environment may already be set.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	slog.SetDefault(newLogger(cfg))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	store, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	resolver, err := newResolver(cfg)
	if err != nil {
		return err
	}

	var (
		transactionService = transaction.NewService(store)
		productionService  = production.NewService(store)
		stockService       = stock.NewService(store)
		reportService      = report.NewService(transactionService, productionService, loc)
		exportService      = export.NewService(transactionService, loc)
		csvParser          = csvimport.NewParser(loc)
		gate               = api.NewGate(resolver)
	)

	router := catatHttp.New(
		cfg.Server.AllowedOrigins,
		dashboardHandler.NewHandler(reportService, gate),
		txHandler.NewHandler(transactionService, csvParser, exportService, gate, loc),
		productionHandler.NewHandler(productionService, gate, loc),
		stockHandler.NewHandler(stockService, gate, loc),
		reportHandler.NewHandler(reportService, gate),
	)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       2 * cfg.Server.Timeout,
	}

	errCh := make(chan error, 1)

	go func() {
		slog.Info("starting server",
			"app", cfg.App.Name,
			"addr", srv.Addr,
			"storage", cfg.Storage.Driver,
			"auth", cfg.Auth.Mode,
			"timezone", loc.String(),
		)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}

		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}

	return nil
}

func openStore(ctx context.Context, cfg *config.Config) (storage.RecordStore, error) {
	switch cfg.Storage.Driver {
	case config.StoragePostgres:
		db, err := database.New(cfg.ConnectionString())
		if err != nil {
			return nil, fmt.Errorf("connecting to database: %w", err)
		}

		if cfg.DB.ApplySchema {
			if err := database.ApplySchema(ctx, db); err != nil {
				db.Close()
				return nil, err
			}

			slog.Info("database schema applied")
		}

		return postgres.New(db), nil
	default:
		slog.Warn("using in-memory storage; records are lost on restart")

		return memory.New(), nil
	}
}

func newResolver(cfg *config.Config) (auth.Resolver, error) {
	switch cfg.Auth.Mode {
	case config.AuthHMAC:
		return auth.NewHMACResolver(cfg.Auth.HMACSecret, cfg.Auth.HMACIssuer), nil
	case config.AuthFirebase:
		return auth.NewFirebaseResolver(cfg.Firebase.ProjectID, cfg.Firebase.CertsURL), nil
	case config.AuthHeader:
		slog.Warn("AUTH_MODE=header trusts the bearer value as the user key; use only for development")

		return auth.HeaderResolver{}, nil
	default:
		return nil, fmt.Errorf("unknown auth mode %q", cfg.Auth.Mode)
	}
}

func newLogger(cfg *config.Config) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.Log.Level)); err != nil {
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}

	if strings.EqualFold(cfg.Log.Format, "json") {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}

	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}
