// internal/app/system/indexes/indexes.go
package indexes

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// EnsureAll is called at startup. Each ensure* function is idempotent.
// Errors are aggregated so every problem is visible and startup can fail fast.
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	if err := ensureLists(ctx, db); err != nil {
		problems = append(problems, "lists: "+err.Error())
	}
	if err := ensureListUsers(ctx, db); err != nil {
		problems = append(problems, "list_users: "+err.Error())
	}
	if err := ensureUsers(ctx, db); err != nil {
		problems = append(problems, "users: "+err.Error())
	}
	if err := ensureNotifications(ctx, db); err != nil {
		problems = append(problems, "notifications: "+err.Error())
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

func ensureIndexSet(ctx context.Context, coll *mongo.Collection, models []mongo.IndexModel) error {
	var errs []string
	for _, m := range models {
		name := ""
		if m.Options != nil && m.Options.Name != nil {
			name = *m.Options.Name
		}
		if _, err := coll.Indexes().CreateOne(ctx, m); err != nil {
			// CreateOne is a no-op for an identical existing index; anything
			// else (options conflict, duplicate data under a unique key) is
			// a real problem worth failing startup over.
			zap.L().Warn("index ensure failed",
				zap.String("collection", coll.Name()),
				zap.String("name", name),
				zap.Error(err))
			errs = append(errs, fmt.Sprintf("%s(%s): %v", coll.Name(), name, err))
			continue
		}
		zap.L().Info("index ensured",
			zap.String("collection", coll.Name()),
			zap.String("name", name))
	}
	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

func ensureLists(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("lists")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		// Default listing: deleted filter + name sort + stable tiebreak.
		{
			Keys: bson.D{
				{Key: "deleted", Value: 1},
				{Key: "name_ci", Value: 1},
				{Key: "_id", Value: 1},
			},
			Options: options.Index().SetName("idx_lists_deleted_nameci__id"),
		},
		// Visibility injection paths for non-admin collection queries.
		{
			Keys:    bson.D{{Key: "owner", Value: 1}, {Key: "deleted", Value: 1}},
			Options: options.Index().SetName("idx_lists_owner_deleted"),
		},
		{
			Keys:    bson.D{{Key: "managers", Value: 1}, {Key: "deleted", Value: 1}},
			Options: options.Index().SetName("idx_lists_managers_deleted"),
		},
		{
			Keys:    bson.D{{Key: "visibility", Value: 1}, {Key: "deleted", Value: 1}},
			Options: options.Index().SetName("idx_lists_visibility_deleted"),
		},
		// Type-filtered listings (operations pane, org pickers).
		{
			Keys:    bson.D{{Key: "type", Value: 1}, {Key: "name_ci", Value: 1}},
			Options: options.Index().SetName("idx_lists_type_nameci"),
		},
	})
}

func ensureListUsers(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("list_users")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		// Cascade cleanup loads every row for a list regardless of deleted.
		{
			Keys:    bson.D{{Key: "list", Value: 1}},
			Options: options.Index().SetName("idx_listusers_list"),
		},
		// Reconciliation sweep: live rows per list.
		{
			Keys:    bson.D{{Key: "list", Value: 1}, {Key: "deleted", Value: 1}},
			Options: options.Index().SetName("idx_listusers_list_deleted"),
		},
		{
			Keys:    bson.D{{Key: "user", Value: 1}, {Key: "deleted", Value: 1}},
			Options: options.Index().SetName("idx_listusers_user_deleted"),
		},
	})
}

func ensureUsers(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("users")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_users_email"),
		},
		// Scalar organization cleanup matches on the embedded row id.
		{
			Keys:    bson.D{{Key: "organization._id", Value: 1}},
			Options: options.Index().SetName("idx_users_org_rowid"),
		},
	})
}

func ensureNotifications(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("notifications")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "user", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_notifications_user_created"),
		},
		// Redelivery after a worker restart must not duplicate.
		{
			Keys:    bson.D{{Key: "dedupe_key", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_notifications_dedupe"),
		},
	})
}
