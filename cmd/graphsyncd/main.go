package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/teranos/graphsync/cmd/graphsyncd/commands"
	"github.com/teranos/graphsync/logger"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "graphsyncd",
	Short: "graphsyncd - collaborative graph-editing session server",
	Long: `graphsyncd serves the collaborative graph-editing protocol: an
authoritative in-memory graph, optimistic client replication, and
origin-echo reconciliation over WebSocket.

Examples:
  graphsyncd serve              # start the session server
  graphsyncd serve --dev        # start under the autoreload supervisor`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := logger.Initialize(false); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().CountP("verbose", "v", "Verbosity count (-v, -vv, -vvv); parsed, but console logging always runs at Info level")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to graphsync.toml (default: searched upward from the working directory)")

	rootCmd.AddCommand(commands.ServeCmd)
	rootCmd.AddCommand(commands.VersionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
