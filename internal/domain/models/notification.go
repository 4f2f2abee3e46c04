// internal/domain/models/notification.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Notification types emitted by the manager-diff engine.
const (
	NotifyAddedListManager   = "added_list_manager"
	NotifyRemovedListManager = "removed_list_manager"
)

// Notification is a persisted user notification. Creation and email delivery
// happen off the request path; failures are logged and never surfaced to the
// request that triggered them.
type Notification struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Type      string             `bson:"type" json:"type"`
	User      primitive.ObjectID `bson:"user" json:"user"`
	CreatedBy primitive.ObjectID `bson:"created_by" json:"created_by"`
	List      Snapshot           `bson:"list" json:"list"`
	Read      bool               `bson:"read" json:"read"`

	// DedupeKey makes redelivery after a worker restart idempotent.
	DedupeKey string `bson:"dedupe_key" json:"-"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
