// internal/domain/models/listuser.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ListUser is the authoritative join record between a User and a List.
//
// Type mirrors the referenced list's type at creation time so cascade cleanup
// can resolve the denormalized User field without re-reading the list.
// Rows are created by the join/subscription flow and are only mutated here
// during cascade cleanup (soft-deleted, never removed).
type ListUser struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	User    primitive.ObjectID `bson:"user" json:"user"`
	List    primitive.ObjectID `bson:"list" json:"list"`
	Type    ListType           `bson:"type" json:"type"`
	Pending bool               `bson:"pending" json:"pending"`
	Deleted bool               `bson:"deleted" json:"deleted"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// Ref is the denormalized membership reference embedded on User documents.
// Its ID is the list_users row id, which is what cascade cleanup matches on.
type Ref struct {
	ID      primitive.ObjectID `bson:"_id" json:"id"`
	List    primitive.ObjectID `bson:"list" json:"list"`
	Name    string             `bson:"name" json:"name"`
	Type    ListType           `bson:"type" json:"type"`
	Pending bool               `bson:"pending" json:"pending"`
	Deleted bool               `bson:"deleted" json:"deleted"`
}

// RefFor builds the embedded reference for a join row against its list.
func RefFor(row ListUser, list List) Ref {
	return Ref{
		ID:      row.ID,
		List:    list.ID,
		Name:    list.Name,
		Type:    row.Type,
		Pending: row.Pending,
		Deleted: row.Deleted,
	}
}
