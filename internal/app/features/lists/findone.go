// internal/app/features/lists/findone.go
package lists

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/dalemusser/rosterhub/internal/app/policy/listpolicy"
	"github.com/dalemusser/rosterhub/internal/app/system/apierr"
	"github.com/dalemusser/rosterhub/internal/app/system/authz"
)

// HandleFindOne serves GET /lists/{id}. Absent and deleted lists are a 404;
// a live list the caller may not see is a 403, so existence is not hidden
// from blocked viewers.
func (h *Handler) HandleFindOne(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), listShortTimeout)
	defer cancel()

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		apierr.Write(w, r, h.Log, apierr.ErrNotFound)
		return
	}

	l, err := h.Lists.FindByID(ctx, id, false)
	if err != nil {
		apierr.Write(w, r, h.Log, err)
		return
	}

	viewer, _ := authz.CurrentUser(r)
	if !listpolicy.CanView(viewer, l) {
		apierr.Write(w, r, h.Log, apierr.ErrForbidden)
		return
	}

	resp, err := h.populateOne(ctx, l)
	if err != nil {
		apierr.Write(w, r, h.Log, err)
		return
	}
	apierr.JSON(w, http.StatusOK, resp)
}
