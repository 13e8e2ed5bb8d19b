// internal/app/features/preferences/routes.go
package preferences

import "github.com/go-chi/chi/v5"

// Routes returns the router mounted at /api/preferences.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/{email}", h.ServeGet)
	r.Patch("/{email}", h.HandleUpdate)
	return r
}
