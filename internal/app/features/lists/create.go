// internal/app/features/lists/create.go
package lists

import (
	"context"
	"encoding/json"
	"net/http"

	liststore "github.com/dalemusser/rosterhub/internal/app/store/lists"
	"github.com/dalemusser/rosterhub/internal/app/system/apierr"
	"github.com/dalemusser/rosterhub/internal/app/system/authz"
	"github.com/dalemusser/rosterhub/internal/domain/models"
	"github.com/dalemusser/rosterhub/internal/domain/models/fieldmeta"
)

// HandleCreate serves POST /lists. Forbidden payload fields are stripped
// silently; the owner defaults to the caller and only admins may assign a
// different one.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), listMedTimeout)
	defer cancel()

	viewer, _ := authz.CurrentUser(r)

	var payload map[string]any
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		apierr.Write(w, r, h.Log, apierr.Validation("request body must be a JSON object"))
		return
	}
	payload = fieldmeta.Sanitize("list", payload, viewer.IsAdmin)

	label, _ := payloadString(payload, "label")
	acronym, _ := payloadString(payload, "acronym")
	typ, _ := payloadString(payload, "type")
	vis, _ := payloadString(payload, "visibility")
	join, _ := payloadString(payload, "joinability")

	p := liststore.CreateParams{
		Label:       label,
		Acronym:     acronym,
		Type:        models.ListType(typ),
		Visibility:  models.Visibility(vis),
		Joinability: models.Joinability(join),
		Owner:       viewer.ID,
	}

	if owner, ok, err := payloadObjectID(payload, "owner"); err != nil {
		apierr.Write(w, r, h.Log, err)
		return
	} else if ok {
		// Sanitize already dropped owner for non-admins.
		p.Owner = owner
	}

	if managers, ok, err := payloadObjectIDs(payload, "managers"); err != nil {
		apierr.Write(w, r, h.Log, err)
		return
	} else if ok {
		p.Managers = managers
	}

	if md, ok := payloadMetadata(payload); ok {
		p.Metadata = md
	}

	created, err := h.Lists.Create(ctx, p)
	if err != nil {
		apierr.Write(w, r, h.Log, err)
		return
	}

	resp, err := h.populateOne(ctx, &created)
	if err != nil {
		apierr.Write(w, r, h.Log, err)
		return
	}
	apierr.JSON(w, http.StatusCreated, resp)
}
