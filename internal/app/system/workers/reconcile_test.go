package workers_test

import (
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	"github.com/dalemusser/rosterhub/internal/app/cascade"
	liststore "github.com/dalemusser/rosterhub/internal/app/store/lists"
	listuserstore "github.com/dalemusser/rosterhub/internal/app/store/listusers"
	userstore "github.com/dalemusser/rosterhub/internal/app/store/users"
	"github.com/dalemusser/rosterhub/internal/app/system/workers"
	"github.com/dalemusser/rosterhub/internal/domain/models"
	"github.com/dalemusser/rosterhub/internal/testutil"
)

func TestReconcile_Sweep(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	d := cascade.New(liststore.New(db), listuserstore.New(db), userstore.New(db), zap.NewNop())
	w := workers.NewReconcile(db, listuserstore.New(db), d, zap.NewNop(), time.Hour)

	owner := fixtures.CreateUser(ctx, "Owner", "owner@example.com")
	member := fixtures.CreateUser(ctx, "Member", "member@example.com")
	list := fixtures.CreateList(ctx, "Orphaned", models.TypeList, models.VisibilityAll, owner.ID)
	row := fixtures.CreateListUser(ctx, member, list)

	// Simulate an interrupted cascade: list deleted, row left live.
	if _, err := db.Collection("lists").UpdateOne(ctx,
		bson.M{"_id": list.ID},
		bson.M{"$set": bson.M{"deleted": true}}); err != nil {
		t.Fatalf("marking list deleted failed: %v", err)
	}

	w.Sweep()

	var gotRow models.ListUser
	if err := db.Collection("list_users").FindOne(ctx, bson.M{"_id": row.ID}).Decode(&gotRow); err != nil {
		t.Fatalf("row lookup failed: %v", err)
	}
	if !gotRow.Deleted {
		t.Error("stray row should be soft-deleted by the sweep")
	}

	var gotUser models.User
	if err := db.Collection("users").FindOne(ctx, bson.M{"_id": member.ID}).Decode(&gotUser); err != nil {
		t.Fatalf("user lookup failed: %v", err)
	}
	if len(gotUser.Lists) != 0 {
		t.Errorf("lists refs after sweep: got %d, want 0", len(gotUser.Lists))
	}
}

func TestReconcile_SweepLeavesLiveListsAlone(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	d := cascade.New(liststore.New(db), listuserstore.New(db), userstore.New(db), zap.NewNop())
	w := workers.NewReconcile(db, listuserstore.New(db), d, zap.NewNop(), time.Hour)

	owner := fixtures.CreateUser(ctx, "Owner", "owner@example.com")
	member := fixtures.CreateUser(ctx, "Member", "member@example.com")
	list := fixtures.CreateList(ctx, "Healthy", models.TypeList, models.VisibilityAll, owner.ID)
	row := fixtures.CreateListUser(ctx, member, list)

	w.Sweep()

	var gotRow models.ListUser
	if err := db.Collection("list_users").FindOne(ctx, bson.M{"_id": row.ID}).Decode(&gotRow); err != nil {
		t.Fatalf("row lookup failed: %v", err)
	}
	if gotRow.Deleted {
		t.Error("rows of live lists must not be touched")
	}
}
