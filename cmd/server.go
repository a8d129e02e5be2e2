package cmd

import (
	"github.com/vinhngba2704/Tunify-SongPlayerWebApp/server"

	"github.com/spf13/cobra"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the Tunify HTTP server",
	Long:  `Start the Tunify HTTP server serving song metadata, audio redirects, lyrics and robot comments.`,
	Run: func(cmd *cobra.Command, args []string) {
		server.Start()
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)
}
