package cli

import (
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "connectfour",
		Short: "Connect Four match server",
		Long: `connectfour pairs WebSocket clients two at a time and referees
a Connect Four match between them.

Use "serve" to run the server and "play" to join a match from a terminal.`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newPlayCmd())

	return rootCmd
}
