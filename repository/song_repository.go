package repository

import (
	"context"
	"fmt"

	"github.com/vinhngba2704/Tunify-SongPlayerWebApp/logger"
	"github.com/vinhngba2704/Tunify-SongPlayerWebApp/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// SongRepository defines the interface for song metadata operations.
type SongRepository interface {
	CreateSong(ctx context.Context, song *model.Song) (string, error)
	GetSongByID(ctx context.Context, id string) (*model.Song, error)
	GetAllSongs(ctx context.Context) ([]*model.Song, error)
	UpdateSongFields(ctx context.Context, id string, fields map[string]interface{}) error
	DeleteSong(ctx context.Context, id string) (int64, error)
}

// mongoSongRepository implements SongRepository against a MongoDB collection.
type mongoSongRepository struct {
	coll *mongo.Collection
}

// NewMongoSongRepository creates a new instance of mongoSongRepository.
func NewMongoSongRepository(coll *mongo.Collection) SongRepository {
	return &mongoSongRepository{coll: coll}
}

// CreateSong inserts a new song document and returns its hex id.
func (r *mongoSongRepository) CreateSong(ctx context.Context, song *model.Song) (string, error) {
	res, err := r.coll.InsertOne(ctx, song)
	if err != nil {
		return "", fmt.Errorf("failed to insert song %q: %w", song.Title, err)
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("unexpected inserted id type %T for song %q", res.InsertedID, song.Title)
	}
	logger.Info("Song document created",
		logger.String("songId", oid.Hex()),
		logger.String("title", song.Title))
	return oid.Hex(), nil
}

// GetSongByID retrieves a song by its hex id. Returns (nil, nil) when the
// document does not exist or the id is not a valid ObjectID.
func (r *mongoSongRepository) GetSongByID(ctx context.Context, id string) (*model.Song, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}

	song := &model.Song{}
	err = r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(song)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil // Song not found
		}
		return nil, fmt.Errorf("failed to load song %s: %w", id, err)
	}
	return song, nil
}

// GetAllSongs retrieves all song documents.
func (r *mongoSongRepository) GetAllSongs(ctx context.Context) ([]*model.Song, error) {
	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to query songs: %w", err)
	}
	defer cursor.Close(ctx)

	songs := make([]*model.Song, 0)
	for cursor.Next(ctx) {
		song := &model.Song{}
		if err := cursor.Decode(song); err != nil {
			return nil, fmt.Errorf("failed to decode song document: %w", err)
		}
		songs = append(songs, song)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("error during songs cursor iteration: %w", err)
	}
	return songs, nil
}

// UpdateSongFields applies a partial $set update to a song document.
func (r *mongoSongRepository) UpdateSongFields(ctx context.Context, id string, fields map[string]interface{}) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid song id %q: %w", id, err)
	}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M(fields)})
	if err != nil {
		return fmt.Errorf("failed to update song %s: %w", id, err)
	}
	logger.Debug("Song document updated",
		logger.String("songId", id),
		logger.Int64("modified", res.ModifiedCount))
	return nil
}

// DeleteSong removes a song document and returns the deleted count.
func (r *mongoSongRepository) DeleteSong(ctx context.Context, id string) (int64, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return 0, nil // nothing to delete under an invalid id
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return 0, fmt.Errorf("failed to delete song %s: %w", id, err)
	}
	return res.DeletedCount, nil
}
