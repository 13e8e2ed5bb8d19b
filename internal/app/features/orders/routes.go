// internal/app/features/orders/routes.go
package orders

import "github.com/go-chi/chi/v5"

// Routes returns the order router. It is mounted at both /order and
// /razorpay.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.HandleCreate)
	r.Get("/{orderId}", h.ServeOrder)
	r.Patch("/{orderId}", h.HandleStatus)
	return r
}
