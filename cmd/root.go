package cmd

import (
	"fmt"
	"os"

	"cancionero/server"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "cancionero",
	Short: "Cancionero is a song record service.",
	Run: func(cmd *cobra.Command, args []string) {
		server.Start()
	},
}

// Execute executes the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
