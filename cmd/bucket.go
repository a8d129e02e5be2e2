package cmd

import (
	"context"
	"fmt"
	"log"

	"github.com/vinhngba2704/Tunify-SongPlayerWebApp/config"
	"github.com/vinhngba2704/Tunify-SongPlayerWebApp/storage"

	"github.com/spf13/cobra"
)

var bucketPrefix string

var bucketCmd = &cobra.Command{
	Use:   "bucket",
	Short: "Inspect the object-store bucket",
	Long:  `List the bucket's objects and aggregate statistics, optionally filtered by prefix.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := config.Load()
		fmt.Printf("Connecting to MinIO at %s (bucket %s)...\n", cfg.MinioEndpoint, cfg.MinioBucket)

		client, err := storage.NewClient(context.Background(), cfg)
		if err != nil {
			log.Fatalf("Failed to connect to MinIO: %v", err)
		}

		if err := client.PrintBucketStatus(context.Background(), bucketPrefix); err != nil {
			log.Fatalf("Failed to list bucket: %v", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(bucketCmd)

	bucketCmd.Flags().StringVarP(&bucketPrefix, "prefix", "p", "", "filter objects by prefix")

	bucketCmd.Example = `  # List all objects
  tunify_server bucket

  # List only audio blobs
  tunify_server bucket -p "sounds/"`
}
