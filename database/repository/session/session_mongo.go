package sessionRepo

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

// activeStatuses are the states that occupy a provider's calendar.
var activeStatuses = bson.A{models.SessionScheduled, models.SessionInProgress}

// MongoSessionRepo implements SessionRepository using MongoDB.
type MongoSessionRepo struct {
	coll *mongo.Collection
}

// NewMongoSessionRepo constructs a new instance of MongoSessionRepo.
func NewMongoSessionRepo() SessionRepository {
	db := database.MongoClient.Database(config.AppConfig.DatabaseName)
	repo := &MongoSessionRepo{coll: db.Collection("sessions")}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("warning: session index creation failed: %v\n", err)
	}
	return repo
}

func (r *MongoSessionRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "provider_id", Value: 1}, {Key: "status", Value: 1}, {Key: "scheduled_start", Value: 1}}},
		{Keys: bson.D{{Key: "requester_id", Value: 1}, {Key: "scheduled_start", Value: -1}}},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// GetByID retrieves a session document by ID.
func (r *MongoSessionRepo) GetByID(ctx context.Context, id string) (*models.Session, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var session models.Session
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&session); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("error fetching session with id %s: %w", id, err)
	}
	return &session, nil
}

// ListActiveByProvider returns SCHEDULED and IN_PROGRESS sessions ordered by
// scheduled start.
func (r *MongoSessionRepo) ListActiveByProvider(ctx context.Context, providerID, excludeID string) ([]models.Session, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	filter := bson.M{
		"provider_id": providerID,
		"status":      bson.M{"$in": activeStatuses},
	}
	if excludeID != "" {
		filter["id"] = bson.M{"$ne": excludeID}
	}
	opts := options.Find().SetSort(bson.D{{Key: "scheduled_start", Value: 1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error fetching active sessions: %w", err)
	}
	defer cursor.Close(ctx)

	var sessions []models.Session
	if err := cursor.All(ctx, &sessions); err != nil {
		return nil, fmt.Errorf("error decoding active sessions: %w", err)
	}
	return sessions, nil
}

// ListActiveInRange returns active sessions intersecting [from, to).
func (r *MongoSessionRepo) ListActiveInRange(ctx context.Context, providerID string, from, to time.Time) ([]models.Session, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	filter := bson.M{
		"provider_id":     providerID,
		"status":          bson.M{"$in": activeStatuses},
		"scheduled_start": bson.M{"$lt": to},
		"scheduled_end":   bson.M{"$gt": from},
	}
	opts := options.Find().SetSort(bson.D{{Key: "scheduled_start", Value: 1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error fetching sessions in range: %w", err)
	}
	defer cursor.Close(ctx)

	var sessions []models.Session
	if err := cursor.All(ctx, &sessions); err != nil {
		return nil, fmt.Errorf("error decoding sessions in range: %w", err)
	}
	return sessions, nil
}

// ListByParticipant returns sessions where the ID is provider or requester.
func (r *MongoSessionRepo) ListByParticipant(ctx context.Context, participantID string) ([]models.Session, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	filter := bson.M{
		"$or": bson.A{
			bson.M{"provider_id": participantID},
			bson.M{"requester_id": participantID},
		},
	}
	opts := options.Find().SetSort(bson.D{{Key: "scheduled_start", Value: -1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error fetching participant sessions: %w", err)
	}
	defer cursor.Close(ctx)

	var sessions []models.Session
	if err := cursor.All(ctx, &sessions); err != nil {
		return nil, fmt.Errorf("error decoding participant sessions: %w", err)
	}
	return sessions, nil
}

// Update replaces an existing session document.
func (r *MongoSessionRepo) Update(ctx context.Context, session *models.Session) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	session.UpdatedAt = time.Now()
	res, err := r.coll.ReplaceOne(ctx, bson.M{"id": session.ID}, session)
	if err != nil {
		return fmt.Errorf("error updating session %s: %w", session.ID, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("session %s not found", session.ID)
	}
	return nil
}
