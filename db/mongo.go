package db

import (
	"context"
	"fmt"
	"time"

	"github.com/vinhngba2704/Tunify-SongPlayerWebApp/config"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	client   *mongo.Client
	database *mongo.Database
)

// ConnectMongo opens the MongoDB connection and verifies it with a ping.
// The handle is process-scoped: opened once at startup, closed at shutdown,
// and shared safely across concurrent requests by the driver.
func ConnectMongo(cfg *config.Config) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	c, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := c.Ping(ctx, nil); err != nil {
		return fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	client = c
	database = c.Database(cfg.MongoDBName)
	return nil
}

// Collection returns a collection handle from the connected database.
func Collection(name string) *mongo.Collection {
	return database.Collection(name)
}

// CloseMongo disconnects the MongoDB client.
func CloseMongo() error {
	if client == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return client.Disconnect(ctx)
}
