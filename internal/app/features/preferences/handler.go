// internal/app/features/preferences/handler.go
package preferences

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	preferencestore "github.com/dalemusser/pooldash/internal/app/store/preferences"
	"github.com/dalemusser/pooldash/internal/app/system/apierr"
	"github.com/dalemusser/pooldash/internal/app/system/normalize"
	"github.com/dalemusser/pooldash/internal/app/system/respond"
	"github.com/dalemusser/pooldash/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type Handler struct {
	DB  *mongo.Database
	Log *zap.Logger
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{DB: db, Log: logger}
}

// ServeGet handles GET /api/preferences/{email}. Flags the document does not
// store are reported with their defaults.
func (h *Handler) ServeGet(w http.ResponseWriter, r *http.Request) {
	email := normalize.PathEmail(chi.URLParam(r, "email"))
	if email.IsZero() {
		apierr.Write(w, r, h.Log, apierr.Validation("Email is required"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	p, err := preferencestore.New(h.DB).GetByEmail(ctx, email)
	if errors.Is(err, preferencestore.ErrNotFound) {
		apierr.Write(w, r, h.Log, apierr.NotFound("Preferences not found"))
		return
	}
	if err != nil {
		apierr.Write(w, r, h.Log, apierr.Internal("Server error", err))
		return
	}
	respond.JSON(w, http.StatusOK, p.WithDefaults())
}

// parseFlags keeps the known boolean flags from body. "email" and "_id" are
// accepted and ignored; anything else is rejected.
func parseFlags(body map[string]json.RawMessage) (map[string]bool, error) {
	known := make(map[string]bool, len(preferencestore.Flags))
	for _, f := range preferencestore.Flags {
		known[f] = true
	}

	flags := map[string]bool{}
	for key, raw := range body {
		switch {
		case key == "email" || key == "_id":
			continue
		case !known[key]:
			return nil, apierr.Validation("Unknown preference: " + key)
		case string(raw) == "null":
			continue
		}
		var v bool
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, apierr.Validation(key + " must be a boolean")
		}
		flags[key] = v
	}
	return flags, nil
}

// HandleUpdate handles PATCH /api/preferences/{email}, creating the document
// on first write.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	email := normalize.PathEmail(chi.URLParam(r, "email"))
	if email.IsZero() {
		apierr.Write(w, r, h.Log, apierr.Validation("Email is required"))
		return
	}

	var body map[string]json.RawMessage
	if err := respond.DecodeJSON(r, &body); err != nil {
		apierr.Write(w, r, h.Log, apierr.Validation("Invalid JSON body"))
		return
	}
	flags, err := parseFlags(body)
	if err != nil {
		apierr.Write(w, r, h.Log, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	p, err := preferencestore.New(h.DB).Upsert(ctx, email, flags)
	if err != nil {
		apierr.Write(w, r, h.Log, apierr.Internal("Server error", err))
		return
	}
	respond.JSON(w, http.StatusOK, map[string]any{
		"message":     "Preferences updated successfully",
		"preferences": p.WithDefaults(),
	})
}
