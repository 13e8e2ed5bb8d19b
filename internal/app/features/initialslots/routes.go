// internal/app/features/initialslots/routes.go
package initialslots

import "github.com/go-chi/chi/v5"

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServeList)
	r.Post("/", h.HandleCreate)
	r.Get("/{email}", h.ServeSlot)
	r.Patch("/{email}", h.HandleUpdate)
	return r
}
