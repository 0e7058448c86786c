// ABOUTME: Sources command lists the registered feeds

package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// sourcesCmd represents the sources command
var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "List registered sources",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(appOptions{})
		if err != nil {
			return err
		}
		defer a.Close()

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tKIND\tURL\tFEED")
		for _, cfg := range a.sources {
			if _, ok := a.registry.Get(cfg.ID); !ok {
				continue
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s/%s\n", cfg.ID, cfg.Kind, cfg.URL, a.cfg.Server.FeedLink, cfg.ID)
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(sourcesCmd)
}
