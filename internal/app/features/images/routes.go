// internal/app/features/images/routes.go
package images

import "github.com/go-chi/chi/v5"

// Routes returns the router mounted at /upload.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.HandleUpload)
	r.Get("/{email}", h.ServeImage)
	return r
}
