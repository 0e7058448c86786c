// ABOUTME: Main entry point for the RSSGen API
// ABOUTME: Runs the cobra command tree; the server starts when no subcommand is given

package main

import "os"

func main() {
	if err := Execute(); err != nil {
		os.Exit(1)
	}
}
