package cmd

import (
	"cancionero/server"

	"github.com/spf13/cobra"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Arranca el servidor HTTP",
	Long:  `Arranca el servidor HTTP del cancionero y expone los endpoints /canciones.`,
	Run: func(cmd *cobra.Command, args []string) {
		server.Start()
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)
}
