// internal/app/features/lists/routes.go
package lists

import (
	"github.com/go-chi/chi/v5"

	"github.com/dalemusser/rosterhub/internal/app/system/auth"
)

// Routes mounts all List routes under the base path (typically "/lists"
// from bootstrap). Every route requires a signed-in user; finer-grained
// visibility and management checks happen per handler.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireSignedIn)

		pr.Get("/", h.HandleFind)
		pr.Post("/", h.HandleCreate)
		pr.Get("/{id}", h.HandleFindOne)
		pr.Put("/{id}", h.HandleUpdate)
		pr.Delete("/{id}", h.HandleDestroy)
	})

	return r
}
