package requesterRepo

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

// MongoRequesterRepo implements RequesterRepository using MongoDB.
type MongoRequesterRepo struct {
	coll *mongo.Collection
}

// NewMongoRequesterRepo constructs a new instance of MongoRequesterRepo.
func NewMongoRequesterRepo() RequesterRepository {
	db := database.MongoClient.Database(config.AppConfig.DatabaseName)
	repo := &MongoRequesterRepo{coll: db.Collection("requesters")}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("warning: requester index creation failed: %v\n", err)
	}
	return repo
}

func (r *MongoRequesterRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "profile.email", Value: 1}}, Options: options.Index().SetUnique(true)},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// GetByID retrieves a requester document by ID.
func (r *MongoRequesterRepo) GetByID(ctx context.Context, id string) (*models.Requester, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var requester models.Requester
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&requester); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("error fetching requester with id %s: %w", id, err)
	}
	return &requester, nil
}

// Create inserts a new requester record.
func (r *MongoRequesterRepo) Create(ctx context.Context, requester *models.Requester) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	requester.CreatedAt = time.Now()
	requester.UpdatedAt = requester.CreatedAt
	if _, err := r.coll.InsertOne(ctx, requester); err != nil {
		return fmt.Errorf("error creating requester: %w", err)
	}
	return nil
}

// Update replaces an existing requester record.
func (r *MongoRequesterRepo) Update(ctx context.Context, requester *models.Requester) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	requester.UpdatedAt = time.Now()
	res, err := r.coll.ReplaceOne(ctx, bson.M{"id": requester.ID}, requester)
	if err != nil {
		return fmt.Errorf("error updating requester %s: %w", requester.ID, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("requester %s not found", requester.ID)
	}
	return nil
}

// IncrementSessionCounters bumps the denormalized booked/completed counters.
func (r *MongoRequesterRepo) IncrementSessionCounters(ctx context.Context, id string, booked, completed int) error {
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
		return fmt.Errorf("error incrementing counters for requester %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("requester %s not found", id)
	}
	return nil
}
