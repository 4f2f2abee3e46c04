// internal/app/features/notifications/handler.go
package notifications

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	notificationstore "github.com/dalemusser/rosterhub/internal/app/store/notifications"
	"github.com/dalemusser/rosterhub/internal/app/system/apierr"
	"github.com/dalemusser/rosterhub/internal/app/system/authz"
	"github.com/dalemusser/rosterhub/internal/app/system/paging"
)

const notifyTimeout = 5 * time.Second

// Handler serves a user's own notification feed.
type Handler struct {
	Notifications *notificationstore.Store
	Log           *zap.Logger
}

// NewHandler constructs a notifications handler.
func NewHandler(notifications *notificationstore.Store, logger *zap.Logger) *Handler {
	return &Handler{Notifications: notifications, Log: logger}
}

// HandleFind serves GET /notifications: the caller's notifications, newest
// first, limited by the standard limit parameter.
func (h *Handler) HandleFind(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), notifyTimeout)
	defer cancel()

	viewer, _ := authz.CurrentUser(r)

	out, err := h.Notifications.FindByUser(ctx, viewer.ID, paging.ParseLimit(r))
	if err != nil {
		apierr.Write(w, r, h.Log, err)
		return
	}
	apierr.JSON(w, http.StatusOK, out)
}

// HandleMarkRead serves PUT /notifications/{id}/read. The owner filter is
// part of the update, so marking someone else's notification is a no-op.
func (h *Handler) HandleMarkRead(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), notifyTimeout)
	defer cancel()

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		apierr.Write(w, r, h.Log, apierr.ErrNotFound)
		return
	}

	viewer, _ := authz.CurrentUser(r)

	if err := h.Notifications.MarkRead(ctx, id, viewer.ID); err != nil {
		apierr.Write(w, r, h.Log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
