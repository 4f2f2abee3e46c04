package testutil

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/dalemusser/waffle/pantry/text"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/dalemusser/rosterhub/internal/domain/models"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateUser creates an unverified, non-admin test user.
func (f *Fixtures) CreateUser(ctx context.Context, fullName, email string) models.User {
	f.t.Helper()
	return f.insertUser(ctx, fullName, email, false, false)
}

// CreateVerifiedUser creates a verified, non-admin test user.
func (f *Fixtures) CreateVerifiedUser(ctx context.Context, fullName, email string) models.User {
	f.t.Helper()
	return f.insertUser(ctx, fullName, email, true, false)
}

// CreateAdmin creates a verified admin test user.
func (f *Fixtures) CreateAdmin(ctx context.Context, fullName, email string) models.User {
	f.t.Helper()
	return f.insertUser(ctx, fullName, email, true, true)
}

func (f *Fixtures) insertUser(ctx context.Context, fullName, email string, verified, admin bool) models.User {
	f.t.Helper()

	now := time.Now().UTC()
	user := models.User{
		ID:        primitive.NewObjectID(),
		FullName:  fullName,
		Email:     email,
		Verified:  verified,
		IsAdmin:   admin,
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err := f.db.Collection("users").InsertOne(ctx, user)
	if err != nil {
		f.t.Fatalf("failed to create test user: %v", err)
	}

	return user
}

// CreateList creates a test list with the given label, type, visibility, and
// owner. Joinability defaults to public; name is derived the same way the
// store derives it.
func (f *Fixtures) CreateList(ctx context.Context, label string, typ models.ListType, vis models.Visibility, owner primitive.ObjectID) models.List {
	f.t.Helper()

	now := time.Now().UTC()
	name := models.DeriveName(label, "")
	list := models.List{
		ID:          primitive.NewObjectID(),
		Label:       label,
		Name:        name,
		NameCI:      text.Fold(name),
		Type:        typ,
		Visibility:  vis,
		Joinability: models.JoinabilityPublic,
		Owner:       owner,
		Managers:    []primitive.ObjectID{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	_, err := f.db.Collection("lists").InsertOne(ctx, list)
	if err != nil {
		f.t.Fatalf("failed to create test list: %v", err)
	}

	return list
}

// AddManagers appends manager ids to a list document directly.
func (f *Fixtures) AddManagers(ctx context.Context, listID primitive.ObjectID, managers ...primitive.ObjectID) {
	f.t.Helper()

	_, err := f.db.Collection("lists").UpdateOne(ctx,
		bson.M{"_id": listID},
		bson.M{"$push": bson.M{"managers": bson.M{"$each": managers}}})
	if err != nil {
		f.t.Fatalf("failed to add test managers: %v", err)
	}
}

// CreateListUser creates a join row linking user to list and writes the
// matching denormalized reference onto the user document, the same dual
// write the join flow performs in production.
func (f *Fixtures) CreateListUser(ctx context.Context, user models.User, list models.List) models.ListUser {
	f.t.Helper()

	now := time.Now().UTC()
	row := models.ListUser{
		ID:        primitive.NewObjectID(),
		User:      user.ID,
		List:      list.ID,
		Type:      list.Type,
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err := f.db.Collection("list_users").InsertOne(ctx, row)
	if err != nil {
		f.t.Fatalf("failed to create test list_user: %v", err)
	}

	field, ok := list.Type.UserField()
	if !ok {
		f.t.Fatalf("unknown list type %q", list.Type)
	}

	ref := models.RefFor(row, list)
	var update bson.M
	if field.Scalar {
		update = bson.M{"$set": bson.M{field.Name: ref}}
	} else {
		update = bson.M{"$push": bson.M{field.Name: ref}}
	}
	_, err = f.db.Collection("users").UpdateOne(ctx, bson.M{"_id": user.ID}, update)
	if err != nil {
		f.t.Fatalf("failed to write test membership ref: %v", err)
	}

	return row
}
