package providerRepo

import (
	"context"
	"fmt"
	"time"

	"timebridge/config"
	"timebridge/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoProviderRepo implements ProviderRepository using MongoDB.
type MongoProviderRepo struct {
	coll *mongo.Collection
}

// NewMongoProviderRepo constructs a new instance of MongoProviderRepo.
func NewMongoProviderRepo() ProviderRepository {
	db := database.MongoClient.Database(config.AppConfig.DatabaseName)
	repo := &MongoProviderRepo{coll: db.Collection("providers")}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("warning: provider index creation failed: %v\n", err)
	}
	return repo
}

// ensureIndexes creates indexes for frequently used fields in queries.
func (r *MongoProviderRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "profile.email", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "active", Value: 1}, {Key: "acceptingBookings", Value: 1}}},
		{Keys: bson.D{{Key: "categories", Value: 1}}},
		{Keys: bson.D{{Key: "profile.rating", Value: -1}}},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}
