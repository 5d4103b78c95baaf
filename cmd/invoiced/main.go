package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joseph-ayodele/invoice-tracker/internal/common"
	"github.com/joseph-ayodele/invoice-tracker/internal/export"
	"github.com/joseph-ayodele/invoice-tracker/internal/llm/gemini"
	repo "github.com/joseph-ayodele/invoice-tracker/internal/repository"
	"github.com/joseph-ayodele/invoice-tracker/internal/server"
	"github.com/joseph-ayodele/invoice-tracker/internal/services/hscode"
	"github.com/joseph-ayodele/invoice-tracker/internal/services/ingest"
	"github.com/joseph-ayodele/invoice-tracker/internal/services/invoice"
)

func main() {
	if err := common.LoadDotEnv(); err != nil {
		slog.Error("failed to load .env", "error", err)
		os.Exit(1)
	}
	cfg := common.LoadConfig()

	logger, flush := common.NewLogger(cfg.Log, os.Stdout)
	defer flush()
	slog.SetDefault(logger)

	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		flush()
		os.Exit(2)
	}

	if err := run(cfg, logger); err != nil {
		logger.Error("invoiced exited", "error", err)
		flush()
		os.Exit(1)
	}
}

func run(cfg *common.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := repo.Open(ctx, repo.Config{
		Driver:           cfg.Database.Driver,
		DSN:              cfg.Database.DSN,
		User:             cfg.Database.User,
		Password:         cfg.Database.Password,
		MaxConns:         cfg.Database.MaxConns,
		MinConns:         cfg.Database.MinConns,
		MaxConnLifetime:  cfg.Database.MaxConnLifetime,
		MaxConnIdleTime:  cfg.Database.MaxConnIdleTime,
		DialTimeout:      cfg.Database.DialTimeout,
		StatementTimeout: cfg.Database.StatementTimeout,
	}, logger)
	if err != nil {
		return err
	}
	defer repo.Close(db, logger)

	if err := repo.HealthCheck(ctx, db, 5*time.Second, logger); err != nil {
		return err
	}
	if cfg.Database.AutoMigrate {
		if err := repo.EnsureSchema(ctx, db, cfg.Database.Table, logger); err != nil {
			return err
		}
	}

	invoiceRepo := repo.NewInvoiceRepository(db, cfg.Database.Table, logger)
	geminiClient := gemini.NewClient(gemini.Config{
		APIKey:      cfg.LLM.APIKey,
		BaseURL:     cfg.LLM.BaseURL,
		Model:       cfg.LLM.Model,
		Temperature: cfg.LLM.Temperature,
		Timeout:     cfg.LLM.Timeout,
	}, logger)

	router := server.NewRouter(server.Deps{
		Invoices:    invoice.NewService(invoiceRepo, export.NewWriter(logger), logger),
		Ingest:      ingest.NewService(invoiceRepo, geminiClient, logger),
		HSCode:      hscode.NewService(geminiClient, logger),
		PagesDir:    cfg.Server.PagesDir,
		MaxUploadMB: cfg.Server.MaxUploadMB,
		Health: func(ctx context.Context) error {
			return repo.HealthCheck(ctx, db, 2*time.Second, logger)
		},
		Logger: logger,
	})

	httpServer := &http.Server{
		Addr:              cfg.Server.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 2)

	var healthServer *server.HealthServer
	if cfg.Server.GRPCAddr != "" {
		lis, err := net.Listen("tcp", cfg.Server.GRPCAddr)
		if err != nil {
			return err
		}
		healthServer = server.NewHealthServer(logger)
		healthServer.SetServing(true)
		go func() {
			if err := healthServer.Serve(lis); err != nil {
				errCh <- err
			}
		}()
	}

	go func() {
		logger.Info("invoiced listening", "addr", cfg.Server.HTTPAddr, "model", geminiClient.Model())
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err = <-errCh:
		logger.Error("server error", "error", err)
	}

	if healthServer != nil {
		healthServer.SetServing(false)
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if serr := httpServer.Shutdown(shutdownCtx); serr != nil {
		logger.Error("http shutdown error", "error", serr)
	}
	if healthServer != nil {
		healthServer.Stop()
	}
	logger.Info("invoiced stopped")
	return err
}
