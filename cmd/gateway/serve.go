package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/DanielPopoola/bitnob-payments-gateway/internal/api"
	"github.com/DanielPopoola/bitnob-payments-gateway/internal/application"
	"github.com/DanielPopoola/bitnob-payments-gateway/internal/application/services"
	"github.com/DanielPopoola/bitnob-payments-gateway/internal/config"
	"github.com/DanielPopoola/bitnob-payments-gateway/internal/infrastructure/persistence/postgres"
	"github.com/DanielPopoola/bitnob-payments-gateway/internal/infrastructure/upstream"
	"github.com/DanielPopoola/bitnob-payments-gateway/internal/interfaces/rest/handlers"
	"github.com/DanielPopoola/bitnob-payments-gateway/internal/interfaces/rest/router"
	"github.com/DanielPopoola/bitnob-payments-gateway/internal/notify"
	"github.com/DanielPopoola/bitnob-payments-gateway/internal/worker"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 30 * time.Second

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP gateway",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
}

func runServe(parent context.Context) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		return err
	}

	logger := cfg.Logger.NewLogger()
	slog.SetDefault(logger)

	logger.Info("starting gateway service",
		"env", cfg.Primary.Env,
		"port", cfg.Server.Port,
		"log_level", cfg.Logger.Level,
		"notifier", cfg.Notifier.Driver,
		"inbox_enabled", cfg.Database.Enabled,
	)

	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client := upstream.NewClient(cfg.Upstream, logger)

	sink, closeSink, err := notify.NewSink(cfg.Notifier, logger)
	if err != nil {
		logger.Error("failed to create notification sink", "error", err)
		return err
	}
	defer closeSink()
	dispatcher := notify.NewDispatcher(sink, cfg.Notifier, logger)

	var (
		inbox    application.InboxRepository
		database handlers.Pinger
		pruner   *worker.InboxPruner
	)
	if cfg.Database.Enabled {
		db, err := postgres.Connect(ctx, &cfg.Database, logger)
		if err != nil {
			logger.Error("failed to connect to database", "error", err)
			return err
		}
		defer db.Close()

		repo := postgres.NewWebhookInboxRepository(db.Pool)
		inbox = repo
		database = db
		pruner = worker.NewInboxPruner(repo, cfg.Inbox.Retention, cfg.Inbox.PruneInterval, logger)
	}

	doc, err := api.Load(ctx)
	if err != nil {
		logger.Error("failed to load API description", "error", err)
		return err
	}

	h := handlers.NewHandlers(handlers.Dependencies{
		Orchestrator: services.NewOrchestrator(client, dispatcher, cfg.Upstream.CustomerID, logger),
		Transactions: services.NewTransactionService(client, logger),
		Cards:        services.NewCardService(client, logger),
		Tester:       dispatcher,
		Inbox:        inbox,
		Database:     database,
		Logger:       logger,
	})

	handler, err := router.New(h, router.Options{
		RequestTimeout: cfg.Server.RequestTimeout,
		Doc:            doc,
		Logger:         logger,
	})
	if err != nil {
		logger.Error("failed to build router", "error", err)
		return err
	}

	server := &http.Server{
		Addr:         "0.0.0.0:" + cfg.Server.Port,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// The dispatcher outlives the server so events from in-flight requests
	// are still delivered during shutdown.
	dispatchCtx, stopDispatch := context.WithCancel(context.Background())
	defer stopDispatch()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return dispatcher.Start(dispatchCtx)
	})

	if pruner != nil {
		g.Go(func() error {
			pruner.Start(gctx)
			return nil
		})
	}

	g.Go(func() error {
		logger.Info("server starting", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		err := server.Shutdown(shutdownCtx)
		if err != nil {
			logger.Error("server forced to shutdown", "error", err)
		}
		stopDispatch()
		return err
	})

	if err := g.Wait(); err != nil {
		return err
	}

	logger.Info("server exited")
	return nil
}
