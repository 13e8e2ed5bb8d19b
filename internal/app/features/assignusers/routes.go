// internal/app/features/assignusers/routes.go
package assignusers

import "github.com/go-chi/chi/v5"

// Routes returns the router mounted at /assignUsers.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServeList)
	r.Post("/", h.HandleCreate)
	return r
}
