// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/danielhkuo/ballotbox/cliparse"
	"github.com/danielhkuo/ballotbox/router"
	"github.com/danielhkuo/ballotbox/session"
)

const sessionSweepInterval = time.Hour

func init() {
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:                "serve [flags]",
	Short:              "Serve the voting web application",
	DisableFlagParsing: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := cliparse.ParseFlags(args)
		if err != nil {
			return err
		}
		return serve(cfg)
	},
}

func serve(cfg cliparse.Config) error {
	dbConn, err := openDatabase(cfg)
	if err != nil {
		return err
	}
	defer dbConn.Close()

	// Create router
	mux, err := router.NewRouter(dbConn, cfg)
	if err != nil {
		return err
	}

	// Create server
	server := http.Server{
		Handler: mux,
		Addr:    ":" + strconv.Itoa(cfg.Port),
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go sweepSessions(ctx, session.NewSQLStore(dbConn))

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal
		<-ctrlc
		cancel()
		server.Close()
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
		return err
	}
	slog.Info("Server closed", "error", err)
	return nil
}

// sweepSessions deletes expired sessions until ctx is done.
func sweepSessions(ctx context.Context, store *session.SQLStore) {
	ticker := time.NewTicker(sessionSweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			n, err := store.DeleteExpired(ctx, now)
			if err != nil {
				slog.Warn("failed to sweep sessions", "error", err)
				continue
			}
			if n > 0 {
				slog.Info("expired sessions removed", "count", n)
			}
		}
	}
}
