package cmd

import (
	"fmt"
	"os"

	"github.com/vinhngba2704/Tunify-SongPlayerWebApp/server"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "tunify_server",
	Short: "Tunify is a music library API with signed-URL asset delivery.",
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
