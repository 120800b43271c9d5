// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/danielhkuo/easel/auth"
	"github.com/danielhkuo/easel/cliparse"
	"github.com/danielhkuo/easel/competition"
	"github.com/danielhkuo/easel/db"
	"github.com/danielhkuo/easel/realtime"
	"github.com/danielhkuo/easel/router"
	"github.com/danielhkuo/easel/token"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Server stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Connect to the database
	dbConn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer dbConn.Close()

	// Create schema (tables)
	if err := db.CreateSchema(ctx, dbConn); err != nil {
		return err
	}
	slog.Info("Database schema ready", "type", cfg.DatabaseType)

	var tokens competition.TokenService
	if !cfg.DevLedger {
		tokens = token.NewClient(cfg.TokenServiceURL, 10*time.Second)
		slog.Info("Using token service", "url", cfg.TokenServiceURL)
	} else {
		tokens = token.NewLedger()
		slog.Warn("Using in-memory development ledger, escrow balances are lost on restart")
	}

	hub := realtime.NewHub()
	svc := competition.NewService(competition.Dependencies{
		Store:         db.NewStore(dbConn, cfg.DatabaseType),
		Tokens:        tokens,
		Auth:          auth.Authorizer{},
		Notifier:      hub,
		Logger:        logger,
		EscrowAddress: cfg.EscrowAddress,
	})

	admins, err := svc.InitAdmins(ctx, cfg.Admin1, cfg.Admin2)
	if err != nil {
		return err
	}
	slog.Info("Admins ready", "admin1", admins.Admin1, "admin2", admins.Admin2)

	server := &http.Server{
		Handler:           router.NewRouter(svc, hub, cfg),
		Addr:              ":" + strconv.Itoa(cfg.Port),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("Listening", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		return competition.Finalizer{
			Service:  svc,
			Interval: cfg.FinalizeInterval,
			Logger:   logger,
		}.Run(ctx)
	})

	g.Go(func() error {
		// Wait for Ctrl-C or a failed sibling
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	err = g.Wait()
	slog.Info("Server closed", "error", err)
	return err
}
