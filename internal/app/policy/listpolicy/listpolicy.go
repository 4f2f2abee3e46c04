// internal/app/policy/listpolicy.go
package listpolicy

import (
	"go.mongodb.org/mongo-driver/bson"

	"github.com/dalemusser/rosterhub/internal/domain/models"
)

// CanView reports whether viewer may see the list, checked in order:
// - Admins always can
// - The owner and managers always see their own list
// - "all" lists are visible to everyone signed in
// - "verified" lists require a verified viewer
// - "inlist" lists require a live membership reference on the viewer
// Any unknown visibility value denies.
func CanView(viewer *models.User, l *models.List) bool {
	if viewer == nil {
		return false
	}
	if viewer.IsAdmin {
		return true
	}

	switch l.Visibility {
	case models.VisibilityAll:
		return true
	case models.VisibilityVerified:
		return viewer.Verified || l.Owner == viewer.ID || l.IsManager(viewer.ID)
	case models.VisibilityMe:
		return l.Owner == viewer.ID || l.IsManager(viewer.ID)
	case models.VisibilityInList:
		return l.Owner == viewer.ID || l.IsManager(viewer.ID) || viewer.InList(l)
	}
	return false
}

// CanManage reports whether viewer may edit or delete the list: admins,
// the owner, and managers.
func CanManage(viewer *models.User, l *models.List) bool {
	if viewer == nil {
		return false
	}
	return viewer.IsAdmin || l.Owner == viewer.ID || l.IsManager(viewer.ID)
}

// ViewCriteria builds the collection-query clause matching every list the
// viewer could pass CanView for. Admins get nil (no restriction). The
// "inlist" arm matches on the viewer's live membership list ids so the
// clause stays a single indexed query.
func ViewCriteria(viewer *models.User) bson.M {
	if viewer == nil {
		return bson.M{"_id": nil} // matches nothing
	}
	if viewer.IsAdmin {
		return nil
	}

	visible := []string{string(models.VisibilityAll)}
	if viewer.Verified {
		visible = append(visible, string(models.VisibilityVerified))
	}

	or := []bson.M{
		{"visibility": bson.M{"$in": visible}},
		{"owner": viewer.ID},
		{"managers": viewer.ID},
		{"visibility": models.VisibilityInList, "_id": bson.M{"$in": memberListIDs(viewer)}},
	}
	return bson.M{"$or": or}
}

func memberListIDs(u *models.User) []interface{} {
	ids := []interface{}{}
	for _, t := range []models.ListType{
		models.TypeOperation, models.TypeBundle, models.TypeDisaster,
		models.TypeList, models.TypeOrganization, models.TypeFunctionalRole,
		models.TypeOffice,
	} {
		for _, ref := range u.MembershipRefs(t) {
			if !ref.Deleted {
				ids = append(ids, ref.List)
			}
		}
	}
	return ids
}
