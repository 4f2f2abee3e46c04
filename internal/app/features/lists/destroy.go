// internal/app/features/lists/destroy.go
package lists

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/dalemusser/rosterhub/internal/app/system/apierr"
	"github.com/dalemusser/rosterhub/internal/app/system/authz"
)

// HandleDestroy serves DELETE /lists/{id}: soft-delete plus cascading
// cleanup of membership rows and user references, responding with the
// deleted record.
func (h *Handler) HandleDestroy(w http.ResponseWriter, r *http.Request) {
	// Cascade cleanup walks every membership row, so this one gets the
	// longer budget.
	ctx, cancel := context.WithTimeout(r.Context(), listLongTimeout)
	defer cancel()

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		apierr.Write(w, r, h.Log, apierr.ErrNotFound)
		return
	}

	viewer, _ := authz.CurrentUser(r)

	deleted, err := h.Deactivator.SoftDelete(ctx, id, viewer)
	if err != nil {
		apierr.Write(w, r, h.Log, err)
		return
	}

	resp, err := h.populateOne(ctx, deleted)
	if err != nil {
		apierr.Write(w, r, h.Log, err)
		return
	}
	apierr.JSON(w, http.StatusOK, resp)
}
