// internal/app/features/users/routes.go
package users

import "github.com/go-chi/chi/v5"

// Routes returns the router mounted at /users.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServeLookup)
	r.Post("/", h.HandleCreate)
	r.Get("/{email}", h.ServeUser)
	r.Patch("/{email}", h.HandleUpdate)
	return r
}
