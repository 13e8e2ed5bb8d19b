// internal/app/features/groups/routes.go
package groups

import "github.com/go-chi/chi/v5"

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.HandleCreate)
	r.Get("/{email}", h.ServeGroup)
	r.Patch("/{email}", h.HandleUpdate)
	return r
}
