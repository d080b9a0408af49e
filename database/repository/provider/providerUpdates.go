package providerRepo

import (
	"context"
	"fmt"
	"time"

	"timebridge/models"

	"go.mongodb.org/mongo-driver/bson"
)

// Create inserts a new provider record.
func (r *MongoProviderRepo) Create(ctx context.Context, provider *models.Provider) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	provider.CreatedAt = time.Now()
	provider.UpdatedAt = provider.CreatedAt
	if _, err := r.coll.InsertOne(ctx, provider); err != nil {
		return fmt.Errorf("error creating provider: %w", err)
	}
	return nil
}

// Update replaces an existing provider record.
func (r *MongoProviderRepo) Update(ctx context.Context, provider *models.Provider) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	provider.UpdatedAt = time.Now()
	res, err := r.coll.ReplaceOne(ctx, bson.M{"id": provider.ID}, provider)
	if err != nil {
		return fmt.Errorf("error updating provider %s: %w", provider.ID, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("provider %s not found", provider.ID)
	}
	return nil
}

// IncrementSessionCounters bumps the denormalized booked/completed counters.
func (r *MongoProviderRepo) IncrementSessionCounters(ctx context.Context, id string, booked, completed int) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	update := bson.M{
		"$inc": bson.M{
			"bookedSessions":    booked,
			"completedSessions": completed,
		},
		"$set": bson.M{"updatedAt": time.Now()},
	}
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("error incrementing counters for provider %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("provider %s not found", id)
	}
	return nil
}
