// ABOUTME: Root cobra command and global flags
// ABOUTME: Serving is the default action when no subcommand is given

package main

import (
	"github.com/spf13/cobra"
)

const version = "1.0.0"

// globalFlags override the matching environment variables when set
type globalFlags struct {
	logLevel  string
	cacheType string
	sources   string
}

var globalOpts globalFlags

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "rssgen",
	Short: "Republish OPDS catalogs as RSS feeds",
	Long: `RSSGen fetches OPDS/Atom catalogs (and optionally plain feeds),
caches the upstream documents and serves them as RSS 2.0.

Configuration comes from environment variables (PORT, CACHE_TYPE,
RSS_FEED_LINK, ...); the flags below override them.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: false,
	RunE:          runServe,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&globalOpts.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&globalOpts.cacheType, "cache-type", "", "Cache backend (file, memory, redis, sqlite)")
	rootCmd.PersistentFlags().StringVar(&globalOpts.sources, "sources", "", "YAML file with additional sources")
}
