// internal/app/features/users/handler.go
package users

import (
	"context"
	"errors"
	"net/http"

	userstore "github.com/dalemusser/pooldash/internal/app/store/users"
	"github.com/dalemusser/pooldash/internal/app/system/apierr"
	"github.com/dalemusser/pooldash/internal/app/system/normalize"
	"github.com/dalemusser/pooldash/internal/app/system/respond"
	"github.com/dalemusser/pooldash/internal/app/system/timeouts"
	"github.com/dalemusser/pooldash/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves the dashboard account endpoints.
type Handler struct {
	DB  *mongo.Database
	Log *zap.Logger
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{DB: db, Log: logger}
}

// ServeLookup handles GET /users?email=.
func (h *Handler) ServeLookup(w http.ResponseWriter, r *http.Request) {
	h.serveUser(w, r, normalize.Email(r.URL.Query().Get("email")))
}

// ServeUser handles GET /users/{email}.
func (h *Handler) ServeUser(w http.ResponseWriter, r *http.Request) {
	h.serveUser(w, r, normalize.PathEmail(chi.URLParam(r, "email")))
}

func (h *Handler) serveUser(w http.ResponseWriter, r *http.Request, email models.Email) {
	if email.IsZero() {
		apierr.Write(w, r, h.Log, apierr.Validation("Email is required"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	u, err := userstore.New(h.DB).GetByEmail(ctx, email)
	if errors.Is(err, userstore.ErrNotFound) {
		apierr.Write(w, r, h.Log, apierr.NotFound("User not found"))
		return
	}
	if err != nil {
		apierr.Write(w, r, h.Log, apierr.Internal("Internal server error", err))
		return
	}
	respond.JSON(w, http.StatusOK, u)
}
