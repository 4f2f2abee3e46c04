package liststore_test

import (
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	liststore "github.com/dalemusser/rosterhub/internal/app/store/lists"
	"github.com/dalemusser/rosterhub/internal/domain/models"
	"github.com/dalemusser/rosterhub/internal/testutil"
)

func TestStore_Create(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := liststore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := primitive.NewObjectID()
	list, err := store.Create(ctx, liststore.CreateParams{
		Label:       "  Region IV Response  ",
		Acronym:     "R4R",
		Type:        models.TypeOperation,
		Visibility:  models.VisibilityAll,
		Joinability: models.JoinabilityPublic,
		Owner:       owner,
		Managers:    []primitive.ObjectID{owner, owner},
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if list.Label != "Region IV Response" {
		t.Errorf("Label: got %q, want trimmed label", list.Label)
	}
	if list.Name != "Region IV Response (R4R)" {
		t.Errorf("Name: got %q, want %q", list.Name, "Region IV Response (R4R)")
	}
	if list.NameCI != "region iv response (r4r)" {
		t.Errorf("NameCI: got %q", list.NameCI)
	}
	if len(list.Managers) != 1 {
		t.Errorf("Managers: got %d entries, want duplicates collapsed to 1", len(list.Managers))
	}

	// Verify the document round-trips.
	got, err := store.FindByID(ctx, list.ID, false)
	if err != nil {
		t.Fatalf("FindByID failed: %v", err)
	}
	if got.Name != list.Name || got.Deleted {
		t.Errorf("stored list mismatch: %+v", got)
	}
}

func TestStore_Create_Validation(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := liststore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	cases := []struct {
		name string
		p    liststore.CreateParams
	}{
		{"missing label", liststore.CreateParams{
			Type: models.TypeList, Visibility: models.VisibilityAll, Joinability: models.JoinabilityPublic,
		}},
		{"bad type", liststore.CreateParams{
			Label: "X", Type: "squad", Visibility: models.VisibilityAll, Joinability: models.JoinabilityPublic,
		}},
		{"bad visibility", liststore.CreateParams{
			Label: "X", Type: models.TypeList, Visibility: "everyone", Joinability: models.JoinabilityPublic,
		}},
		{"bad joinability", liststore.CreateParams{
			Label: "X", Type: models.TypeList, Visibility: models.VisibilityAll, Joinability: "open",
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := store.Create(ctx, tc.p); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestStore_Create_StripsMarkup(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := liststore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	list, err := store.Create(ctx, liststore.CreateParams{
		Label:       "<script>alert(1)</script>Logistics",
		Type:        models.TypeList,
		Visibility:  models.VisibilityAll,
		Joinability: models.JoinabilityPublic,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if list.Label != "Logistics" {
		t.Errorf("Label: got %q, want markup stripped", list.Label)
	}
}

func TestStore_Update_RederivesName(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := liststore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := fixtures.CreateUser(ctx, "Owner", "owner@example.com")
	list := fixtures.CreateList(ctx, "Old Label", models.TypeList, models.VisibilityAll, owner.ID)

	prev, updated, err := store.Update(ctx, list.ID, bson.M{
		"label":   "New Label",
		"acronym": "NL",
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	if prev.Name != "Old Label" {
		t.Errorf("prev.Name: got %q, want %q", prev.Name, "Old Label")
	}
	if updated.Name != "New Label (NL)" {
		t.Errorf("updated.Name: got %q, want %q", updated.Name, "New Label (NL)")
	}
	if updated.NameCI != "new label (nl)" {
		t.Errorf("updated.NameCI: got %q", updated.NameCI)
	}
}

func TestStore_Update_DeletedListNotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := liststore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := fixtures.CreateUser(ctx, "Owner", "owner@example.com")
	list := fixtures.CreateList(ctx, "Doomed", models.TypeList, models.VisibilityAll, owner.ID)
	if _, err := store.MarkDeleted(ctx, list.ID); err != nil {
		t.Fatalf("MarkDeleted failed: %v", err)
	}

	_, _, err := store.Update(ctx, list.ID, bson.M{"label": "Revived"})
	if !errors.Is(err, mongo.ErrNoDocuments) {
		t.Errorf("Update on deleted list: got %v, want ErrNoDocuments", err)
	}
}

func TestStore_MarkDeleted_Idempotent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := liststore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := fixtures.CreateUser(ctx, "Owner", "owner@example.com")
	list := fixtures.CreateList(ctx, "Doomed", models.TypeList, models.VisibilityAll, owner.ID)

	first, err := store.MarkDeleted(ctx, list.ID)
	if err != nil {
		t.Fatalf("MarkDeleted failed: %v", err)
	}
	if !first.Deleted {
		t.Error("expected Deleted=true after first call")
	}

	second, err := store.MarkDeleted(ctx, list.ID)
	if err != nil {
		t.Fatalf("second MarkDeleted failed: %v", err)
	}
	if !second.Deleted {
		t.Error("expected Deleted=true after second call")
	}
}

func TestStore_Find_ExcludesDeletedAndFilters(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := liststore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := fixtures.CreateUser(ctx, "Owner", "owner@example.com")
	fixtures.CreateList(ctx, "Alpha Response", models.TypeOperation, models.VisibilityAll, owner.ID)
	fixtures.CreateList(ctx, "Beta Response", models.TypeBundle, models.VisibilityAll, owner.ID)
	doomed := fixtures.CreateList(ctx, "Gamma Response", models.TypeOperation, models.VisibilityAll, owner.ID)
	if _, err := store.MarkDeleted(ctx, doomed.ID); err != nil {
		t.Fatalf("MarkDeleted failed: %v", err)
	}

	lists, err := store.Find(ctx, liststore.Criteria{}, liststore.FindOptions{})
	if err != nil {
		t.Fatalf("Find failed: %v", err)
	}
	if len(lists) != 2 {
		t.Fatalf("Find: got %d lists, want 2 (deleted excluded)", len(lists))
	}
	if lists[0].Name != "Alpha Response" || lists[1].Name != "Beta Response" {
		t.Errorf("default sort order wrong: %q, %q", lists[0].Name, lists[1].Name)
	}

	ops, err := store.Find(ctx, liststore.Criteria{Type: models.TypeOperation}, liststore.FindOptions{})
	if err != nil {
		t.Fatalf("Find by type failed: %v", err)
	}
	if len(ops) != 1 || ops[0].Name != "Alpha Response" {
		t.Errorf("type filter: got %d lists", len(ops))
	}
}

func TestStore_Find_SubstringSearch(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := liststore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := fixtures.CreateUser(ctx, "Owner", "owner@example.com")
	fixtures.CreateList(ctx, "Kebab Drive", models.TypeList, models.VisibilityAll, owner.ID)
	fixtures.CreateList(ctx, "Soup Kitchen", models.TypeList, models.VisibilityAll, owner.ID)

	// Regex metacharacters in the term must not be interpreted.
	lists, err := store.Find(ctx, liststore.Criteria{Name: "a.b("}, liststore.FindOptions{})
	if err != nil {
		t.Fatalf("Find with hostile term failed: %v", err)
	}
	if len(lists) != 1 || lists[0].Name != "Kebab Drive" {
		t.Errorf("hostile term: got %d lists, want only the neutralized substring match", len(lists))
	}

	lists, err = store.Find(ctx, liststore.Criteria{Name: "kitchen"}, liststore.FindOptions{})
	if err != nil {
		t.Fatalf("Find failed: %v", err)
	}
	if len(lists) != 1 || lists[0].Name != "Soup Kitchen" {
		t.Errorf("case-insensitive search: got %d lists", len(lists))
	}
}

func TestStore_Find_Paging(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := liststore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := fixtures.CreateUser(ctx, "Owner", "owner@example.com")
	for _, label := range []string{"Alpha", "Beta", "Gamma", "Delta"} {
		fixtures.CreateList(ctx, label, models.TypeList, models.VisibilityAll, owner.ID)
	}

	page, err := store.Find(ctx, liststore.Criteria{}, liststore.FindOptions{Skip: 1, Limit: 2})
	if err != nil {
		t.Fatalf("Find failed: %v", err)
	}
	if len(page) != 2 {
		t.Fatalf("page size: got %d, want 2", len(page))
	}
	if page[0].Name != "Beta" || page[1].Name != "Delta" {
		t.Errorf("page contents: got %q, %q", page[0].Name, page[1].Name)
	}

	total, err := store.Count(ctx, liststore.Criteria{})
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if total != 4 {
		t.Errorf("Count: got %d, want 4 (ignores paging)", total)
	}
}

func TestStore_Find_ScopeClause(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := liststore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := fixtures.CreateUser(ctx, "Owner", "owner@example.com")
	other := fixtures.CreateUser(ctx, "Other", "other@example.com")
	mine := fixtures.CreateList(ctx, "Mine", models.TypeList, models.VisibilityMe, owner.ID)
	fixtures.CreateList(ctx, "Theirs", models.TypeList, models.VisibilityMe, other.ID)

	lists, err := store.Find(ctx, liststore.Criteria{
		Scope: bson.M{"owner": owner.ID},
	}, liststore.FindOptions{})
	if err != nil {
		t.Fatalf("Find failed: %v", err)
	}
	if len(lists) != 1 || lists[0].ID != mine.ID {
		t.Errorf("scope clause: got %d lists", len(lists))
	}
}
