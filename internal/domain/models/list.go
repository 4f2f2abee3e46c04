// internal/domain/models/list.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ListType classifies a List. Organization is special: a user belongs to at
// most one organization, so its denormalized reference on User is a scalar
// rather than a collection.
type ListType string

const (
	TypeOperation      ListType = "operation"
	TypeBundle         ListType = "bundle"
	TypeDisaster       ListType = "disaster"
	TypeList           ListType = "list"
	TypeOrganization   ListType = "organization"
	TypeFunctionalRole ListType = "functional_role"
	TypeOffice         ListType = "office"
)

// userFieldByType maps each list type to the User document field that holds
// the denormalized membership references. An explicit table (rather than
// deriving the field name from the type string) so an unknown type fails
// loudly instead of silently targeting a nonexistent field.
var userFieldByType = map[ListType]UserField{
	TypeOperation:      {Name: "operations"},
	TypeBundle:         {Name: "bundles"},
	TypeDisaster:       {Name: "disasters"},
	TypeList:           {Name: "lists"},
	TypeOrganization:   {Name: "organization", Scalar: true},
	TypeFunctionalRole: {Name: "functional_roles"},
	TypeOffice:         {Name: "offices"},
}

// UserField describes where a membership reference lives on the User document.
type UserField struct {
	Name   string
	Scalar bool
}

// UserField returns the User document field for this list type and whether
// the type is known at all.
func (t ListType) UserField() (UserField, bool) {
	f, ok := userFieldByType[t]
	return f, ok
}

// Valid reports whether t is one of the known list types.
func (t ListType) Valid() bool {
	_, ok := userFieldByType[t]
	return ok
}

// Visibility controls who may view a list.
type Visibility string

const (
	VisibilityMe       Visibility = "me"
	VisibilityInList   Visibility = "inlist"
	VisibilityAll      Visibility = "all"
	VisibilityVerified Visibility = "verified"
)

// Valid reports whether v is one of the known visibility values.
func (v Visibility) Valid() bool {
	switch v {
	case VisibilityMe, VisibilityInList, VisibilityAll, VisibilityVerified:
		return true
	}
	return false
}

// Joinability controls how users may join a list. Join flows live outside
// this service; the value is stored and served as-is.
type Joinability string

const (
	JoinabilityPublic    Joinability = "public"
	JoinabilityModerated Joinability = "moderated"
	JoinabilityPrivate   Joinability = "private"
)

// Valid reports whether j is one of the known joinability values.
func (j Joinability) Valid() bool {
	switch j {
	case JoinabilityPublic, JoinabilityModerated, JoinabilityPrivate:
		return true
	}
	return false
}

// List is a named grouping entity (operation, bundle, disaster, generic list,
// organization, functional role, or office) with owner/manager access control.
//
// Name is always derived from Label and Acronym; it is never accepted from
// clients. Deleted lists stay in the collection for audit and cascade cleanup
// and are excluded from default queries.
type List struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Label       string               `bson:"label" json:"label"`
	Acronym     string               `bson:"acronym,omitempty" json:"acronym,omitempty"`
	Name        string               `bson:"name" json:"name"`
	NameCI      string               `bson:"name_ci" json:"-"` // lowercase, diacritics-stripped
	Type        ListType             `bson:"type" json:"type"`
	Visibility  Visibility           `bson:"visibility" json:"visibility"`
	Joinability Joinability          `bson:"joinability" json:"joinability"`
	Owner       primitive.ObjectID   `bson:"owner" json:"owner"`
	Managers    []primitive.ObjectID `bson:"managers" json:"managers"`
	Metadata    bson.M               `bson:"metadata,omitempty" json:"metadata,omitempty"`
	Deleted     bool                 `bson:"deleted" json:"deleted"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// DeriveName computes the display name from label and acronym:
// "label" when the acronym is empty, "label (acronym)" otherwise.
func DeriveName(label, acronym string) string {
	if acronym == "" {
		return label
	}
	return label + " (" + acronym + ")"
}

// IsManager reports whether uid appears in the managers set.
func (l *List) IsManager(uid primitive.ObjectID) bool {
	for _, m := range l.Managers {
		if m == uid {
			return true
		}
	}
	return false
}

// Snapshot captures the identifying fields of a list at a point in time,
// embedded into notifications so they stay meaningful after later edits.
type Snapshot struct {
	ID   primitive.ObjectID `bson:"id" json:"id"`
	Name string             `bson:"name" json:"name"`
	Type ListType           `bson:"type" json:"type"`
}

// Snapshot returns the notification-embeddable snapshot of l.
func (l *List) Snapshot() Snapshot {
	return Snapshot{ID: l.ID, Name: l.Name, Type: l.Type}
}
