// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/danielhkuo/ballotbox/cliparse"
	"github.com/danielhkuo/ballotbox/models"
	"github.com/danielhkuo/ballotbox/seal"
	"github.com/danielhkuo/ballotbox/store"
	"github.com/danielhkuo/ballotbox/voting"
)

func init() {
	rootCmd.AddCommand(tallyCmd)
}

var tallyCmd = &cobra.Command{
	Use:                "tally [flags]",
	Short:              "Decrypt stored ballots and print the results table",
	DisableFlagParsing: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := cliparse.ParseCommand("tally", args, true)
		if err != nil {
			return err
		}

		key, err := seal.ParseKey(cfg.EncryptionKey)
		if err != nil {
			return err
		}
		sealer, err := seal.NewSealer(key)
		if err != nil {
			return err
		}

		dbConn, err := openDatabase(cfg)
		if err != nil {
			return err
		}
		defer dbConn.Close()

		candidates, err := store.NewCandidateStore(dbConn).List(cmd.Context())
		if err != nil {
			return err
		}

		engine := voting.NewEngine(sealer, store.NewSQLBallotStore(dbConn), cfg.MediaURL)
		result, err := engine.Tally(cmd.Context(), candidates)
		if err != nil {
			return err
		}

		return printTally(cmd.OutOrStdout(), result)
	},
}

func printTally(out io.Writer, result voting.Result) error {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)

	fmt.Fprint(tw, "\tCandidate\tParty\t")
	for rank := models.FirstRank; rank <= models.LastRank; rank++ {
		fmt.Fprintf(tw, "%s\t", humanize.Ordinal(rank))
	}
	fmt.Fprintln(tw)

	for i, row := range result.Rows {
		fmt.Fprintf(tw, "%d\t%s\t%s\t", i+1, row.Name, row.Party)
		for rank := models.FirstRank; rank <= models.LastRank; rank++ {
			fmt.Fprintf(tw, "%s\t", humanize.Comma(int64(row.Counts[rank])))
		}
		fmt.Fprintln(tw)
	}

	if err := tw.Flush(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(out, "\n%s ballots counted, %s skipped\n",
		humanize.Comma(int64(result.Counted)), humanize.Comma(int64(result.Skipped)))
	return err
}
