// ABOUTME: Fetch command renders one feed to stdout
// ABOUTME: Useful for checking a source without starting the server

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var fetchNoCache bool

// fetchCmd represents the fetch command
var fetchCmd = &cobra.Command{
	Use:   "fetch <feed>",
	Short: "Render a feed as RSS on stdout",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(appOptions{noCache: fetchNoCache})
		if err != nil {
			return err
		}
		defer a.Close()

		rendered, err := a.feeds.GetFeed(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		if _, err := cmd.OutOrStdout().Write(rendered.Body); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout())

		if rendered.Err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s served an empty feed: %v\n", args[0], rendered.Err)
		} else {
			fmt.Fprintf(cmd.ErrOrStderr(), "%d items\n", rendered.ItemCount)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(fetchCmd)
	fetchCmd.Flags().BoolVar(&fetchNoCache, "no-cache", false, "Bypass the cache and always go to the network")
}
