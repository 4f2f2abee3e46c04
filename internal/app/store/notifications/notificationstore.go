package notificationstore

import (
	"context"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/dalemusser/rosterhub/internal/domain/models"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("notifications")}
}

// Insert persists a notification. A duplicate dedupe_key means this event
// was already delivered (retried dispatch, restarted worker); it reports
// inserted=false rather than an error so callers skip the email.
func (s *Store) Insert(ctx context.Context, n models.Notification) (inserted bool, err error) {
	if n.ID.IsZero() {
		n.ID = primitive.NewObjectID()
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now()
	}

	if _, err := s.c.InsertOne(ctx, n); err != nil {
		if wafflemongo.IsDup(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// FindByUser returns a user's notifications, newest first.
func (s *Store) FindByUser(ctx context.Context, userID primitive.ObjectID, limit int64) ([]models.Notification, error) {
	fo := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if limit > 0 {
		fo.SetLimit(limit)
	}
	cur, err := s.c.Find(ctx, bson.M{"user": userID}, fo)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Notification
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// MarkRead flags a notification as read for its owner.
func (s *Store) MarkRead(ctx context.Context, id, userID primitive.ObjectID) error {
	_, err := s.c.UpdateOne(ctx,
		bson.M{"_id": id, "user": userID},
		bson.M{"$set": bson.M{"read": true}})
	return err
}
