package listuserstore

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/dalemusser/rosterhub/internal/domain/models"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("list_users")}
}

// FindByList returns every join row for a list, deleted rows included.
// Cascade cleanup re-walks already-deleted rows so interrupted runs converge.
func (s *Store) FindByList(ctx context.Context, listID primitive.ObjectID) ([]models.ListUser, error) {
	cur, err := s.c.Find(ctx, bson.M{"list": listID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var rows []models.ListUser
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// FindLiveByList returns the non-deleted join rows for a list. The
// reconciliation sweep uses this to spot rows a cascade missed.
func (s *Store) FindLiveByList(ctx context.Context, listID primitive.ObjectID) ([]models.ListUser, error) {
	cur, err := s.c.Find(ctx, bson.M{"list": listID, "deleted": false})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var rows []models.ListUser
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// MarkDeleted soft-deletes a join row. Idempotent.
func (s *Store) MarkDeleted(ctx context.Context, rowID primitive.ObjectID) error {
	_, err := s.c.UpdateOne(ctx,
		bson.M{"_id": rowID},
		bson.M{"$set": bson.M{"deleted": true, "updated_at": time.Now()}})
	return err
}
