// internal/domain/models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is the relevant surface of the user document for this service.
//
// Membership is stored twice: authoritatively in the list_users collection,
// and denormalized here for fast lookup: one plural collection per list type,
// except Organization, which is a single scalar reference because a user
// belongs to at most one organization at a time. Keeping these fields in step
// with list_users is the cascade engine's consistency target.
type User struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FullName string             `bson:"full_name" json:"full_name"`
	Email    string             `bson:"email" json:"email"`
	Verified bool               `bson:"verified" json:"verified"`
	IsAdmin  bool               `bson:"is_admin" json:"is_admin"`

	Operations      []Ref `bson:"operations,omitempty" json:"operations,omitempty"`
	Bundles         []Ref `bson:"bundles,omitempty" json:"bundles,omitempty"`
	Disasters       []Ref `bson:"disasters,omitempty" json:"disasters,omitempty"`
	Lists           []Ref `bson:"lists,omitempty" json:"lists,omitempty"`
	FunctionalRoles []Ref `bson:"functional_roles,omitempty" json:"functional_roles,omitempty"`
	Offices         []Ref `bson:"offices,omitempty" json:"offices,omitempty"`
	Organization    *Ref  `bson:"organization,omitempty" json:"organization,omitempty"`

	// APISecretHash is the bcrypt hash of a service credential secret, set
	// out-of-band for trusted service callers. Empty for regular users.
	APISecretHash string `bson:"api_secret_hash,omitempty" json:"-"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// MembershipRefs returns the denormalized references for the given list type.
// For the scalar organization field the result has zero or one entry.
func (u *User) MembershipRefs(t ListType) []Ref {
	switch t {
	case TypeOperation:
		return u.Operations
	case TypeBundle:
		return u.Bundles
	case TypeDisaster:
		return u.Disasters
	case TypeList:
		return u.Lists
	case TypeFunctionalRole:
		return u.FunctionalRoles
	case TypeOffice:
		return u.Offices
	case TypeOrganization:
		if u.Organization == nil {
			return nil
		}
		return []Ref{*u.Organization}
	}
	return nil
}

// InList reports whether the user has a live (non-deleted) membership
// reference to the given list.
func (u *User) InList(l *List) bool {
	for _, ref := range u.MembershipRefs(l.Type) {
		if ref.List == l.ID && !ref.Deleted {
			return true
		}
	}
	return false
}

// UserSummary is the populated shape served for owner/manager references.
type UserSummary struct {
	ID       primitive.ObjectID `bson:"_id" json:"id"`
	FullName string             `bson:"full_name" json:"full_name"`
	Email    string             `bson:"email" json:"email"`
	Verified bool               `bson:"verified" json:"verified"`
}

// Summary returns the populated reference shape for u.
func (u *User) Summary() UserSummary {
	return UserSummary{ID: u.ID, FullName: u.FullName, Email: u.Email, Verified: u.Verified}
}
