// ABOUTME: Cache commands inspect, clear and warm the configured cache backend

package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"rssgen-api/core/workers"

	"github.com/spf13/cobra"
)

// cacheCmd groups the cache subcommands
var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect or clear the cache",
}

var cacheStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show total, valid and expired entries",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(appOptions{})
		if err != nil {
			return err
		}
		defer a.Close()

		stats, err := a.cache.Stats(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "total:   %d\nvalid:   %d\nexpired: %d\n", stats.Total, stats.Valid, stats.Expired)
		return nil
	},
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every cached entry",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(appOptions{})
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.cache.Clear(cmd.Context()); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "cache cleared")
		return nil
	},
}

var warmWorkers int

var cacheWarmCmd = &cobra.Command{
	Use:   "warm [feed...]",
	Short: "Fetch sources once so later requests hit the cache",
	Long:  "Fetch the given sources, or every registered source when none are given, and store the upstream documents in the cache.",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(appOptions{})
		if err != nil {
			return err
		}
		defer a.Close()

		ids := args
		if len(ids) == 0 {
			ids = a.registry.IDs()
		}

		warmer := workers.NewWarmer(a.feeds, a.logger, workers.WarmerConfig{MaxWorkers: warmWorkers})
		results := warmer.Warm(cmd.Context(), ids)

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tITEMS\tDURATION\tERROR")
		failed := 0
		for _, r := range results {
			errText := "-"
			if r.Err != nil {
				errText = r.Err.Error()
				failed++
			}
			fmt.Fprintf(w, "%s\t%d\t%s\t%s\n", r.ID, r.Items, r.Duration.Round(time.Millisecond), errText)
		}
		if err := w.Flush(); err != nil {
			return err
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d sources failed to warm", failed, len(results))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(cacheCmd)
	cacheCmd.AddCommand(cacheStatsCmd, cacheClearCmd, cacheWarmCmd)
	cacheWarmCmd.Flags().IntVar(&warmWorkers, "workers", workers.DefaultWarmerConfig().MaxWorkers, "Number of sources fetched concurrently")
}
