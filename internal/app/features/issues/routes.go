// internal/app/features/issues/routes.go
package issues

import "github.com/go-chi/chi/v5"

// Routes returns the router mounted at /api/issues.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/{email}", h.HandleSubmit)
	return r
}
