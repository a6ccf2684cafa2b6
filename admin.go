// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/danielhkuo/ballotbox/auth"
	"github.com/danielhkuo/ballotbox/cliparse"
	"github.com/danielhkuo/ballotbox/seal"
	"github.com/danielhkuo/ballotbox/session"
	"github.com/danielhkuo/ballotbox/store"
	"github.com/danielhkuo/ballotbox/users"
)

func init() {
	rootCmd.AddCommand(createUserCmd, addCandidateCmd, clearSessionsCmd, keygenCmd)
}

var createUserCmd = &cobra.Command{
	Use:                "createuser [flags] <username>",
	Short:              "Create a user who may vote and view results",
	Long:               "Create a user. The password is read from BALLOTBOX_PASSWORD or the first line of stdin.",
	DisableFlagParsing: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, rest, err := cliparse.ParseCommand("createuser", args, false)
		if err != nil {
			return err
		}
		if len(rest) != 1 {
			return errors.New("usage: createuser [flags] <username>")
		}

		password := os.Getenv("BALLOTBOX_PASSWORD")
		if password == "" {
			fmt.Fprint(cmd.ErrOrStderr(), "Password: ")
			password, err = readLine(cmd.InOrStdin())
			if err != nil {
				return err
			}
		}

		dbConn, err := openDatabase(cfg)
		if err != nil {
			return err
		}
		defer dbConn.Close()

		user, err := users.NewSQLStore(dbConn).Create(cmd.Context(), rest[0], password)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Created user %s (%s)\n", user.Username, user.ID)
		return nil
	},
}

var addCandidateCmd = &cobra.Command{
	Use:                "addcandidate [flags] <full name> [ballot name] [party]",
	Short:              "Register a candidate",
	DisableFlagParsing: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, rest, err := cliparse.ParseCommand("addcandidate", args, false)
		if err != nil {
			return err
		}
		if len(rest) < 1 || len(rest) > 3 {
			return errors.New("usage: addcandidate [flags] <full name> [ballot name] [party]")
		}
		rest = append(rest, "", "")

		dbConn, err := openDatabase(cfg)
		if err != nil {
			return err
		}
		defer dbConn.Close()

		c, err := store.NewCandidateStore(dbConn).Create(cmd.Context(), rest[0], rest[1], rest[2])
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Registered %s (%s)\n", c.FullName, c.ID)
		return nil
	},
}

var clearSessionsCmd = &cobra.Command{
	Use:                "clearsessions [flags]",
	Short:              "Delete expired sessions",
	DisableFlagParsing: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := cliparse.ParseCommand("clearsessions", args, false)
		if err != nil {
			return err
		}

		dbConn, err := openDatabase(cfg)
		if err != nil {
			return err
		}
		defer dbConn.Close()

		n, err := session.NewSQLStore(dbConn).DeleteExpired(cmd.Context(), time.Now())
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Removed %d expired sessions\n", n)
		return nil
	},
}

var keygenCmd = &cobra.Command{
	Use:   "keygen",
	Short: "Print a fresh ENCRYPTION_KEY and SECRET_KEY",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		key, err := seal.GenerateKey()
		if err != nil {
			return err
		}
		secret, err := auth.GenerateID(32)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "ENCRYPTION_KEY=%s\nSECRET_KEY=%s\n", key, secret)
		return nil
	},
}

func readLine(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
