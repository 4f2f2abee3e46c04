package userstore

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/dalemusser/rosterhub/internal/app/system/normalize"
	"github.com/dalemusser/rosterhub/internal/domain/models"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("users")}
}

// GetByID loads a user by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByEmail looks up a user by case-insensitive email. Returns
// mongo.ErrNoDocuments if not found.
func (s *Store) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"email": normalize.Email(email)}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// FindByIDs loads the users for a set of ObjectIDs. Missing ids are simply
// absent from the result; callers populating owner/manager references treat
// a dangling id as an empty slot rather than an error.
func (s *Store) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	cur, err := s.c.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var users []models.User
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// FetchUser implements auth.UserFetcher.
func (s *Store) FetchUser(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	return s.GetByID(ctx, id)
}

// FetchUserByEmail implements auth.CredentialChecker.
func (s *Store) FetchUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.GetByEmail(ctx, email)
}

// PullMembershipRef removes the denormalized reference with the given
// list_users row id from a plural membership field on the user document.
// Returns the number of documents modified (0 when the ref was already gone,
// which keeps the caller idempotent).
func (s *Store) PullMembershipRef(ctx context.Context, userID primitive.ObjectID, field string, rowID primitive.ObjectID) (int64, error) {
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": userID},
		bson.M{
			"$pull": bson.M{field: bson.M{"_id": rowID}},
			"$set":  bson.M{"updated_at": time.Now()},
		})
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}

// ClearOrganizationRef unsets the scalar organization reference, but only
// when it still points at the given list_users row. The conditional filter
// means a newer organization assignment is never clobbered.
func (s *Store) ClearOrganizationRef(ctx context.Context, userID, rowID primitive.ObjectID) (int64, error) {
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": userID, "organization._id": rowID},
		bson.M{
			"$unset": bson.M{"organization": ""},
			"$set":   bson.M{"updated_at": time.Now()},
		})
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}
