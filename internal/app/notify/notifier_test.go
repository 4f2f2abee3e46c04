package notify_test

import (
	"sync"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/dalemusser/rosterhub/internal/app/notify"
	notificationstore "github.com/dalemusser/rosterhub/internal/app/store/notifications"
	userstore "github.com/dalemusser/rosterhub/internal/app/store/users"
	"github.com/dalemusser/rosterhub/internal/app/system/mailer"
	"github.com/dalemusser/rosterhub/internal/domain/models"
	"github.com/dalemusser/rosterhub/internal/testutil"
)

type captureSender struct {
	mu   sync.Mutex
	sent []mailer.Email
}

func (c *captureSender) Send(e mailer.Email) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sent = append(c.sent, e)
	return nil
}

func (c *captureSender) all() []mailer.Email {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]mailer.Email(nil), c.sent...)
}

func TestNotifier_DeliversAddAndRemove(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	actor := fixtures.CreateAdmin(ctx, "Admin", "admin@example.com")
	newMgr := fixtures.CreateUser(ctx, "New Manager", "new@example.com")
	oldMgr := fixtures.CreateUser(ctx, "Old Manager", "old@example.com")
	list := fixtures.CreateList(ctx, "Logistics", models.TypeList, models.VisibilityAll, actor.ID)

	sender := &captureSender{}
	n := notify.New(
		notificationstore.New(db),
		userstore.New(db),
		sender,
		zap.NewNop(),
		notify.Options{SiteName: "RosterHub", BaseURL: "https://hub.example.com"},
	)
	n.Start()

	n.Enqueue(notify.Event{
		List:      list.Snapshot(),
		Added:     []primitive.ObjectID{newMgr.ID},
		Removed:   []primitive.ObjectID{oldMgr.ID},
		ChangedBy: actor.ID,
		ByName:    actor.FullName,
	})
	n.Stop() // drains the queue

	count, err := db.Collection("notifications").CountDocuments(ctx, bson.M{})
	if err != nil {
		t.Fatalf("CountDocuments failed: %v", err)
	}
	if count != 2 {
		t.Fatalf("notifications persisted: got %d, want 2", count)
	}

	var added models.Notification
	err = db.Collection("notifications").FindOne(ctx, bson.M{"user": newMgr.ID}).Decode(&added)
	if err != nil {
		t.Fatalf("FindOne failed: %v", err)
	}
	if added.Type != models.NotifyAddedListManager {
		t.Errorf("Type: got %q, want %q", added.Type, models.NotifyAddedListManager)
	}
	if added.List.Name != "Logistics" {
		t.Errorf("List snapshot name: got %q", added.List.Name)
	}
	if added.CreatedBy != actor.ID {
		t.Errorf("CreatedBy: got %v, want %v", added.CreatedBy, actor.ID)
	}

	sent := sender.all()
	if len(sent) != 2 {
		t.Fatalf("emails sent: got %d, want 2", len(sent))
	}
	recipients := map[string]bool{}
	for _, e := range sent {
		recipients[e.To] = true
	}
	if !recipients["new@example.com"] || !recipients["old@example.com"] {
		t.Errorf("recipients: got %v", recipients)
	}
}

func TestNotifier_EmptyEventIgnored(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	sender := &captureSender{}
	n := notify.New(notificationstore.New(db), userstore.New(db), sender, zap.NewNop(), notify.Options{})
	n.Start()
	n.Enqueue(notify.Event{}) // nothing added or removed
	n.Stop()

	count, err := db.Collection("notifications").CountDocuments(ctx, bson.M{})
	if err != nil {
		t.Fatalf("CountDocuments failed: %v", err)
	}
	if count != 0 {
		t.Errorf("expected no notifications, got %d", count)
	}
}
