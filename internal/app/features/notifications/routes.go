// internal/app/features/notifications/routes.go
package notifications

import (
	"github.com/go-chi/chi/v5"

	"github.com/dalemusser/rosterhub/internal/app/system/auth"
)

// Routes mounts the notification routes under the base path (typically
// "/notifications" from bootstrap). The feed is always scoped to the caller.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireSignedIn)

		pr.Get("/", h.HandleFind)
		pr.Put("/{id}/read", h.HandleMarkRead)
	})

	return r
}
