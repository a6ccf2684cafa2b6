// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cliparse

import (
	"errors"
	"flag"
	"os"
	"strconv"
	"time"
)

const (
	DefaultPort          = 3318
	DefaultMediaURL      = "/media/"
	DefaultSessionMaxAge = 14 * 24 * time.Hour
)

type Config struct {
	Port          int
	DatabaseURL   string
	DatabaseType  string
	EncryptionKey string
	SecretKey     string
	MediaURL      string
	MediaRoot     string
	SessionMaxAge time.Duration
}

// ParseFlags validates flags and sets port number
func ParseFlags(args []string) (Config, error) {
	cfg, _, err := ParseCommand("ballotbox", args, true)
	return cfg, err
}

// ParseCommand parses flags for a subcommand and returns the remaining
// positional arguments. Secrets are still read when requireSecrets is false,
// they are just allowed to be empty.
func ParseCommand(name string, args []string, requireSecrets bool) (Config, []string, error) {
	var cfg Config

	fs := flag.NewFlagSet(name, flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")
	fs.StringVar(&cfg.MediaURL, "media-url", "", "Public URL prefix for party symbols")
	fs.StringVar(&cfg.MediaRoot, "media-root", "", "Directory served under the media URL")
	fs.DurationVar(&cfg.SessionMaxAge, "session-max-age", 0, "Session lifetime")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.EncryptionKey, "encryption-key", "", "Ballot encryption key, base64 (prefer env)")
	fs.StringVar(&cfg.SecretKey, "secret-key", "", "Session signing secret (prefer env)")

	if err := fs.Parse(args); err != nil {
		return Config{}, nil, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, nil, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = DefaultPort
		}
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		return Config{}, nil, errors.New("database URL required (use -d or DATABASE_URL env)")
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = "sqlite"
		}
	}
	if cfg.DatabaseType != "sqlite" && cfg.DatabaseType != "postgres" {
		return Config{}, nil, errors.New("database type must be sqlite or postgres")
	}

	if cfg.MediaURL == "" {
		cfg.MediaURL = os.Getenv("MEDIA_URL")
		if cfg.MediaURL == "" {
			cfg.MediaURL = DefaultMediaURL
		}
	}
	if cfg.MediaRoot == "" {
		cfg.MediaRoot = os.Getenv("MEDIA_ROOT")
	}

	if cfg.SessionMaxAge == 0 {
		if v := os.Getenv("SESSION_MAX_AGE"); v != "" {
			d, err := time.ParseDuration(v)
			if err != nil || d <= 0 {
				return Config{}, nil, errors.New("invalid SESSION_MAX_AGE env variable")
			}
			cfg.SessionMaxAge = d
		} else {
			cfg.SessionMaxAge = DefaultSessionMaxAge
		}
	}

	if cfg.EncryptionKey == "" {
		cfg.EncryptionKey = os.Getenv("ENCRYPTION_KEY")
	}
	if cfg.SecretKey == "" {
		cfg.SecretKey = os.Getenv("SECRET_KEY")
	}

	// Secrets - MUST be provided for commands that seal, open or sign
	if requireSecrets {
		if cfg.EncryptionKey == "" {
			return Config{}, nil, errors.New("ENCRYPTION_KEY required")
		}
		if cfg.SecretKey == "" {
			return Config{}, nil, errors.New("SECRET_KEY required")
		}
	}

	return cfg, fs.Args(), nil
}
