package database

import (
	"context"
	"errors"
	"fmt"
	"time"
	"vxvideo-bot/internal/database/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	statsCollectionName = "bot_stats"
	statsDocumentID     = "global"
)

// MongoStatsRepository implements StatsRepository for MongoDB.
// All counters live in a single document.
type MongoStatsRepository struct {
	client     *mongo.Client
	collection *mongo.Collection
}

// NewMongoStatsRepository creates a new MongoDB stats repository.
func NewMongoStatsRepository(client *mongo.Client, db *mongo.Database) *MongoStatsRepository {
	return &MongoStatsRepository{
		client:     client,
		collection: db.Collection(statsCollectionName),
	}
}

// LoadStats reads the stats document. A missing document yields zero counters.
func (r *MongoStatsRepository) LoadStats(ctx context.Context) (models.BotStats, error) {
	var stats models.BotStats
	err := r.collection.FindOne(ctx, bson.M{"_id": statsDocumentID}).Decode(&stats)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.BotStats{}, nil
		}
		return models.BotStats{}, fmt.Errorf("failed to load stats: %w", err)
	}
	return stats, nil
}

// SaveStats upserts the stats document.
func (r *MongoStatsRepository) SaveStats(ctx context.Context, stats models.BotStats) error {
	if stats.UpdatedAt.IsZero() {
		stats.UpdatedAt = time.Now()
	}
	update := bson.M{
		"$set": bson.M{
			"messages_handled": stats.MessagesHandled,
			"media_downloaded": stats.MediaDownloaded,
			"updated_at":       stats.UpdatedAt,
		},
	}

	_, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": statsDocumentID},
		update,
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("failed to save stats: %w", err)
	}
	return nil
}

// Close disconnects the MongoDB client.
func (r *MongoStatsRepository) Close(ctx context.Context) error {
	if err := r.client.Disconnect(ctx); err != nil {
		return fmt.Errorf("error disconnecting from MongoDB: %w", err)
	}
	return nil
}
