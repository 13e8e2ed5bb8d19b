// internal/app/features/feedback/routes.go
package feedback

import "github.com/go-chi/chi/v5"

// Routes returns the router mounted at /api/feedback.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.HandleSubmit)
	return r
}
