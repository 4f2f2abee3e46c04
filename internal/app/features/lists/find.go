// internal/app/features/lists/find.go
package lists

import (
	"context"
	"net/http"
	"strconv"

	"github.com/dalemusser/rosterhub/internal/app/policy/listpolicy"
	liststore "github.com/dalemusser/rosterhub/internal/app/store/lists"
	"github.com/dalemusser/rosterhub/internal/app/system/apierr"
	"github.com/dalemusser/rosterhub/internal/app/system/authz"
	"github.com/dalemusser/rosterhub/internal/app/system/paging"
	"github.com/dalemusser/rosterhub/internal/domain/models"
)

// HandleFind serves GET /lists: the lists visible to the caller, filtered,
// sorted, and paged, with the total filtered count in X-Total-Count.
func (h *Handler) HandleFind(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), listMedTimeout)
	defer cancel()

	viewer, _ := authz.CurrentUser(r)
	q := r.URL.Query()

	crit := liststore.Criteria{
		Name:  q.Get("name"),
		Label: q.Get("label"),
		Scope: listpolicy.ViewCriteria(viewer),
	}
	if t := q.Get("type"); t != "" {
		typ := models.ListType(t)
		if !typ.Valid() {
			apierr.Write(w, r, h.Log, apierr.Validation("unknown list type"))
			return
		}
		crit.Type = typ
	}
	// Only admins may pull deleted lists into results.
	if q.Get("deleted") == "true" && viewer != nil && viewer.IsAdmin {
		crit.IncludeDeleted = true
	}

	opt := liststore.FindOptions{
		Sort:  q.Get("sort"),
		Skip:  paging.ParseSkip(r),
		Limit: paging.ParseLimit(r),
	}

	total, err := h.Lists.Count(ctx, crit)
	if err != nil {
		apierr.Write(w, r, h.Log, err)
		return
	}

	found, err := h.Lists.Find(ctx, crit, opt)
	if err != nil {
		apierr.Write(w, r, h.Log, err)
		return
	}

	resp, err := h.populate(ctx, found)
	if err != nil {
		apierr.Write(w, r, h.Log, err)
		return
	}

	w.Header().Set("X-Total-Count", strconv.FormatInt(total, 10))
	apierr.JSON(w, http.StatusOK, resp)
}
