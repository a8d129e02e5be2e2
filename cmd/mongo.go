package cmd

import (
	"context"
	"fmt"
	"log"

	"github.com/vinhngba2704/Tunify-SongPlayerWebApp/config"
	"github.com/vinhngba2704/Tunify-SongPlayerWebApp/db"
	"github.com/vinhngba2704/Tunify-SongPlayerWebApp/repository"

	"github.com/spf13/cobra"
)

var mongoCmd = &cobra.Command{
	Use:   "mongo",
	Short: "Check the MongoDB connection",
	Long:  `Connect to MongoDB, ping it, and report how many song documents the collection holds.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := config.Load()
		fmt.Printf("Connecting to MongoDB (database %s)...\n", cfg.MongoDBName)

		if err := db.ConnectMongo(cfg); err != nil {
			log.Fatalf("Failed to connect to MongoDB: %v", err)
		}
		defer db.CloseMongo()
		fmt.Println("MongoDB connection successful.")

		songRepo := repository.NewMongoSongRepository(db.Collection(cfg.MongoCollection))
		songs, err := songRepo.GetAllSongs(context.Background())
		if err != nil {
			log.Fatalf("Failed to list songs: %v", err)
		}
		fmt.Printf("Collection %s holds %d song document(s).\n", cfg.MongoCollection, len(songs))
	},
}

func init() {
	rootCmd.AddCommand(mongoCmd)
}
