package providerRepo

import (
	"context"
	"fmt"
	"time"

	"timebridge/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const queryTimeout = 5 * time.Second

// GetByID retrieves a provider document by ID.
func (r *MongoProviderRepo) GetByID(ctx context.Context, id string) (*models.Provider, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var provider models.Provider
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&provider); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("error fetching provider with id %s: %w", id, err)
	}
	return &provider, nil
}

// GetByIDs retrieves providers matching the given IDs.
func (r *MongoProviderRepo) GetByIDs(ctx context.Context, ids []string) ([]models.Provider, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{"id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("error fetching providers by ids: %w", err)
	}
	defer cursor.Close(ctx)

	var providers []models.Provider
	if err := cursor.All(ctx, &providers); err != nil {
		return nil, fmt.Errorf("error decoding providers: %w", err)
	}
	return providers, nil
}

// FindEligible returns the bookable pool filtered by the closed criteria set.
func (r *MongoProviderRepo) FindEligible(ctx context.Context, criteria ProviderSearchCriteria) ([]models.Provider, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	filter := bson.M{
		"status":            models.ProviderStatusApproved,
		"active":            true,
		"acceptingBookings": true,
	}
	if criteria.Category != "" {
		filter["categories"] = criteria.Category
	}
	if criteria.FreeOnly {
		filter["freeOfCharge"] = true
	}
	if criteria.MinRating > 0 {
		filter["profile.rating"] = bson.M{"$gte": criteria.MinRating}
	}
	if criteria.MaxRate != nil {
		filter["$or"] = bson.A{
			bson.M{"freeOfCharge": true},
			bson.M{"hourlyRate": bson.M{"$lte": *criteria.MaxRate}},
		}
	}

	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("eligible provider search failed: %w", err)
	}
	defer cursor.Close(ctx)

	var providers []models.Provider
	if err := cursor.All(ctx, &providers); err != nil {
		return nil, fmt.Errorf("error decoding eligible providers: %w", err)
	}
	return providers, nil
}
