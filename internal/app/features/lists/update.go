// internal/app/features/lists/update.go
package lists

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/dalemusser/rosterhub/internal/app/notify"
	"github.com/dalemusser/rosterhub/internal/app/policy/listpolicy"
	"github.com/dalemusser/rosterhub/internal/app/system/apierr"
	"github.com/dalemusser/rosterhub/internal/app/system/authz"
	"github.com/dalemusser/rosterhub/internal/domain/models"
	"github.com/dalemusser/rosterhub/internal/domain/models/fieldmeta"
)

// HandleUpdate serves PUT /lists/{id}. The response echoes the sanitized
// submitted payload, so the caller sees exactly which fields were accepted.
// Manager-set changes are diffed against the pre-update document and handed
// to the notification dispatcher.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), listMedTimeout)
	defer cancel()

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		apierr.Write(w, r, h.Log, apierr.ErrNotFound)
		return
	}

	viewer, _ := authz.CurrentUser(r)

	var payload map[string]any
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		apierr.Write(w, r, h.Log, apierr.Validation("request body must be a JSON object"))
		return
	}

	l, err := h.Lists.FindByID(ctx, id, false)
	if err != nil {
		apierr.Write(w, r, h.Log, err)
		return
	}
	if !listpolicy.CanManage(viewer, l) {
		apierr.Write(w, r, h.Log, apierr.ErrForbidden)
		return
	}

	sanitized := fieldmeta.Sanitize("list", payload, viewer.IsAdmin)
	set, err := h.buildSet(sanitized)
	if err != nil {
		apierr.Write(w, r, h.Log, err)
		return
	}

	prev, updated, err := h.Lists.Update(ctx, id, set)
	if err != nil {
		apierr.Write(w, r, h.Log, err)
		return
	}

	added, removed := notify.Diff(prev.Managers, updated.Managers)
	if len(added) > 0 || len(removed) > 0 {
		h.Notifier.Enqueue(notify.Event{
			List:      updated.Snapshot(),
			Added:     added,
			Removed:   removed,
			ChangedBy: viewer.ID,
			ByName:    viewer.FullName,
		})
	}

	apierr.JSON(w, http.StatusOK, sanitized)
}

// buildSet converts the sanitized payload into a typed $set document. Only
// known fields are persisted; enum values are rejected up front rather than
// stored and served back broken.
func (h *Handler) buildSet(payload map[string]any) (bson.M, error) {
	set := bson.M{}

	if v, ok := payloadString(payload, "label"); ok {
		set["label"] = v
	}
	if v, ok := payloadString(payload, "acronym"); ok {
		set["acronym"] = v
	}
	if v, ok := payloadString(payload, "type"); ok {
		typ := models.ListType(v)
		if !typ.Valid() {
			return nil, apierr.Validation("unknown list type")
		}
		set["type"] = typ
	}
	if v, ok := payloadString(payload, "visibility"); ok {
		vis := models.Visibility(v)
		if !vis.Valid() {
			return nil, apierr.Validation("unknown visibility")
		}
		set["visibility"] = vis
	}
	if v, ok := payloadString(payload, "joinability"); ok {
		j := models.Joinability(v)
		if !j.Valid() {
			return nil, apierr.Validation("unknown joinability")
		}
		set["joinability"] = j
	}
	if owner, ok, err := payloadObjectID(payload, "owner"); err != nil {
		return nil, err
	} else if ok {
		set["owner"] = owner
	}
	if managers, ok, err := payloadObjectIDs(payload, "managers"); err != nil {
		return nil, err
	} else if ok {
		set["managers"] = managers
	}
	if md, ok := payloadMetadata(payload); ok {
		set["metadata"] = md
	}

	if len(set) == 0 {
		return nil, apierr.Validation("no updatable fields in payload")
	}

	return set, nil
}
