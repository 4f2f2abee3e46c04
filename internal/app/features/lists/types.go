// internal/app/features/lists/types.go
package lists

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/dalemusser/rosterhub/internal/app/system/apierr"
	"github.com/dalemusser/rosterhub/internal/domain/models"
)

// listResponse is the served shape of a list: owner and managers populated
// to user summaries instead of raw ids.
type listResponse struct {
	ID          primitive.ObjectID   `json:"id"`
	Label       string               `json:"label"`
	Acronym     string               `json:"acronym,omitempty"`
	Name        string               `json:"name"`
	Type        models.ListType      `json:"type"`
	Visibility  models.Visibility    `json:"visibility"`
	Joinability models.Joinability   `json:"joinability"`
	Owner       *models.UserSummary  `json:"owner"`
	Managers    []models.UserSummary `json:"managers"`
	Metadata    bson.M               `json:"metadata,omitempty"`
	Deleted     bool                 `json:"deleted"`
	CreatedAt   time.Time            `json:"created_at"`
	UpdatedAt   time.Time            `json:"updated_at"`
}

// populate resolves owner and manager ids across a page of lists in one
// users query. A dangling id (user since removed) renders as an empty slot
// rather than failing the page.
func (h *Handler) populate(ctx context.Context, in []models.List) ([]listResponse, error) {
	idSet := make(map[primitive.ObjectID]struct{})
	for _, l := range in {
		if !l.Owner.IsZero() {
			idSet[l.Owner] = struct{}{}
		}
		for _, m := range l.Managers {
			idSet[m] = struct{}{}
		}
	}
	ids := make([]primitive.ObjectID, 0, len(idSet))
	for id := range idSet {
		ids = append(ids, id)
	}

	users, err := h.Users.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[primitive.ObjectID]models.UserSummary, len(users))
	for i := range users {
		byID[users[i].ID] = users[i].Summary()
	}

	out := make([]listResponse, 0, len(in))
	for _, l := range in {
		resp := listResponse{
			ID:          l.ID,
			Label:       l.Label,
			Acronym:     l.Acronym,
			Name:        l.Name,
			Type:        l.Type,
			Visibility:  l.Visibility,
			Joinability: l.Joinability,
			Managers:    []models.UserSummary{},
			Metadata:    l.Metadata,
			Deleted:     l.Deleted,
			CreatedAt:   l.CreatedAt,
			UpdatedAt:   l.UpdatedAt,
		}
		if s, ok := byID[l.Owner]; ok {
			resp.Owner = &s
		}
		for _, m := range l.Managers {
			if s, ok := byID[m]; ok {
				resp.Managers = append(resp.Managers, s)
			}
		}
		out = append(out, resp)
	}
	return out, nil
}

func (h *Handler) populateOne(ctx context.Context, l *models.List) (listResponse, error) {
	out, err := h.populate(ctx, []models.List{*l})
	if err != nil {
		return listResponse{}, err
	}
	return out[0], nil
}

// Payload coercion helpers. Client JSON arrives as map[string]any; these
// convert the loosely typed values and reject malformed ids with a 400-class
// validation error.

func payloadString(p map[string]any, key string) (string, bool) {
	v, ok := p[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

func payloadObjectID(p map[string]any, key string) (primitive.ObjectID, bool, error) {
	s, ok := payloadString(p, key)
	if !ok {
		return primitive.NilObjectID, false, nil
	}
	id, err := primitive.ObjectIDFromHex(s)
	if err != nil {
		return primitive.NilObjectID, false, apierr.Validation(fmt.Sprintf("%s is not a valid id", key))
	}
	return id, true, nil
}

func payloadObjectIDs(p map[string]any, key string) ([]primitive.ObjectID, bool, error) {
	v, ok := p[key]
	if !ok {
		return nil, false, nil
	}
	raw, ok := v.([]any)
	if !ok {
		return nil, false, apierr.Validation(fmt.Sprintf("%s must be an array of ids", key))
	}
	ids := make([]primitive.ObjectID, 0, len(raw))
	for _, e := range raw {
		s, ok := e.(string)
		if !ok {
			return nil, false, apierr.Validation(fmt.Sprintf("%s must be an array of ids", key))
		}
		id, err := primitive.ObjectIDFromHex(s)
		if err != nil {
			return nil, false, apierr.Validation(fmt.Sprintf("%s contains an invalid id", key))
		}
		ids = append(ids, id)
	}
	return ids, true, nil
}

func payloadMetadata(p map[string]any) (bson.M, bool) {
	v, ok := p["metadata"]
	if !ok {
		return nil, false
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, false
	}
	return bson.M(m), true
}
