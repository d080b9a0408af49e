package sessionRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"timebridge/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CreateIfFree inserts the session and rechecks for overlapping active
// sessions inside one transaction. Two racing writers for the same interval
// serialize here: the loser observes the winner's document during the
// recheck and aborts with *OverlapError.
func (r *MongoSessionRepo) CreateIfFree(ctx context.Context, session *models.Session) error {
	client := r.coll.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	session.CreatedAt = time.Now()
	session.UpdatedAt = session.CreatedAt

	txnFn := func(sc mongo.SessionContext) error {
		if _, err := r.coll.InsertOne(sc, session); err != nil {
			return fmt.Errorf("insert session failed: %w", err)
		}

		// Recheck overlap against every other active session for the provider.
		filter := bson.M{
			"id":              bson.M{"$ne": session.ID},
			"provider_id":     session.ProviderID,
			"status":          bson.M{"$in": activeStatuses},
			"scheduled_start": bson.M{"$lt": session.ScheduledEnd},
			"scheduled_end":   bson.M{"$gt": session.ScheduledStart},
		}
		opts := options.FindOne().SetSort(bson.D{{Key: "scheduled_start", Value: 1}})
		var conflicting models.Session
		err := r.coll.FindOne(sc, filter, opts).Decode(&conflicting)
		if err == nil {
			return &OverlapError{ConflictingSessionID: conflicting.ID}
		}
		if err != mongo.ErrNoDocuments {
			return fmt.Errorf("overlap recheck failed: %w", err)
		}
		return nil
	}

	if err := mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := txnFn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	}); err != nil {
		var overlap *OverlapError
		if errors.As(err, &overlap) {
			return overlap
		}
		return fmt.Errorf("session create transaction failed: %w", err)
	}

	return nil
}
