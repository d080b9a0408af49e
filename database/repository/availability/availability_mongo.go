package availabilityRepo

import (
	"context"
	"fmt"
	"time"

	"timebridge/config"
	"timebridge/database"
	"timebridge/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const queryTimeout = 5 * time.Second

// MongoAvailabilityRepo implements AvailabilityRepository using MongoDB.
type MongoAvailabilityRepo struct {
	coll *mongo.Collection
}

// NewMongoAvailabilityRepo constructs a new instance of MongoAvailabilityRepo.
func NewMongoAvailabilityRepo() AvailabilityRepository {
	db := database.MongoClient.Database(config.AppConfig.DatabaseName)
	repo := &MongoAvailabilityRepo{coll: db.Collection("availability_windows")}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("warning: availability index creation failed: %v\n", err)
	}
	return repo
}

func (r *MongoAvailabilityRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "provider_id", Value: 1}, {Key: "day_of_week", Value: 1}}},
		{Keys: bson.D{{Key: "provider_id", Value: 1}, {Key: "specific_date", Value: 1}}},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// GetByID retrieves a window document by ID.
func (r *MongoAvailabilityRepo) GetByID(ctx context.Context, id string) (*models.AvailabilityWindow, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var window models.AvailabilityWindow
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&window); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("error fetching availability window %s: %w", id, err)
	}
	return &window, nil
}

// ListByProvider returns every window declared by the provider.
func (r *MongoAvailabilityRepo) ListByProvider(ctx context.Context, providerID string) ([]models.AvailabilityWindow, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "day_of_week", Value: 1}, {Key: "start_minute", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{"provider_id": providerID}, opts)
	if err != nil {
		return nil, fmt.Errorf("error fetching availability windows: %w", err)
	}
	defer cursor.Close(ctx)

	var windows []models.AvailabilityWindow
	if err := cursor.All(ctx, &windows); err != nil {
		return nil, fmt.Errorf("error decoding availability windows: %w", err)
	}
	return windows, nil
}

// ListForDay returns the enabled windows covering a weekday/date pair.
func (r *MongoAvailabilityRepo) ListForDay(ctx context.Context, providerID string, weekday int, date string) ([]models.AvailabilityWindow, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	filter := bson.M{
		"provider_id": providerID,
		"enabled":     true,
		"$or": bson.A{
			bson.M{"recurring": true, "day_of_week": weekday},
			bson.M{"recurring": false, "specific_date": date},
		},
	}
	opts := options.Find().SetSort(bson.D{{Key: "start_minute", Value: 1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error fetching windows for day: %w", err)
	}
	defer cursor.Close(ctx)

	var windows []models.AvailabilityWindow
	if err := cursor.All(ctx, &windows); err != nil {
		return nil, fmt.Errorf("error decoding windows for day: %w", err)
	}
	return windows, nil
}

// Create inserts a new window document.
func (r *MongoAvailabilityRepo) Create(ctx context.Context, window *models.AvailabilityWindow) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	window.CreatedAt = time.Now()
	window.UpdatedAt = window.CreatedAt
	if _, err := r.coll.InsertOne(ctx, window); err != nil {
		return fmt.Errorf("error creating availability window: %w", err)
	}
	return nil
}

// Update replaces an existing window document.
func (r *MongoAvailabilityRepo) Update(ctx context.Context, window *models.AvailabilityWindow) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	window.UpdatedAt = time.Now()
	res, err := r.coll.ReplaceOne(ctx, bson.M{"id": window.ID, "provider_id": window.ProviderID}, window)
	if err != nil {
		return fmt.Errorf("error updating availability window %s: %w", window.ID, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("availability window %s not found", window.ID)
	}
	return nil
}

// Delete removes a window document scoped to its owning provider.
func (r *MongoAvailabilityRepo) Delete(ctx context.Context, providerID, id string) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"id": id, "provider_id": providerID})
	if err != nil {
		return fmt.Errorf("error deleting availability window %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("availability window %s not found", id)
	}
	return nil
}
