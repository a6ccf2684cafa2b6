// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"database/sql"
	"errors"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/danielhkuo/ballotbox/cliparse"
	"github.com/danielhkuo/ballotbox/db"
)

var rootCmd = &cobra.Command{
	Use:           "ballotbox",
	Short:         "Encrypted preference voting server",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	// .env is optional; real environment variables win
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("failed to load .env", "error", err)
	}

	if err := rootCmd.Execute(); err != nil {
		slog.Error("command failed", "error", err)
		os.Exit(1)
	}
}

// openDatabase connects and makes sure the schema exists.
func openDatabase(cfg cliparse.Config) (*sql.DB, error) {
	dbConn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}

	if err := db.CreateSchema(dbConn); err != nil {
		dbConn.Close()
		return nil, err
	}
	slog.Info("Database schema ready", "type", cfg.DatabaseType)

	return dbConn, nil
}
