// internal/app/features/initialslots/handler.go
package initialslots

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	initialslotstore "github.com/dalemusser/pooldash/internal/app/store/initialslots"
	"github.com/dalemusser/pooldash/internal/app/system/apierr"
	"github.com/dalemusser/pooldash/internal/app/system/normalize"
	"github.com/dalemusser/pooldash/internal/app/system/respond"
	"github.com/dalemusser/pooldash/internal/app/system/timeouts"
	"github.com/dalemusser/pooldash/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves the remaining assignable inventory. The assign workflow
// reaches these routes over HTTP through slotclient.
type Handler struct {
	DB  *mongo.Database
	Log *zap.Logger
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{DB: db, Log: logger}
}

type slotRequest struct {
	Email       string                     `json:"email"`
	AllProducts map[string]json.RawMessage `json:"AllProducts"`
}

func (req slotRequest) counters() (models.CountersPatch, *apierr.Error) {
	p, err := models.ParseCountersPatch(req.AllProducts)
	if err == nil {
		return p, nil
	}
	var uk *models.UnknownKeyError
	if errors.As(err, &uk) {
		return p, apierr.Validation(uk.Error()).With("key", uk.Key)
	}
	return p, apierr.Validation(err.Error())
}

// ServeList handles GET /initialslot.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	list, err := initialslotstore.New(h.DB).List(ctx)
	if err != nil {
		apierr.Write(w, r, h.Log, apierr.Internal("Internal server error", err))
		return
	}
	respond.JSON(w, http.StatusOK, list)
}

// ServeSlot handles GET /initialslot/{email}.
func (h *Handler) ServeSlot(w http.ResponseWriter, r *http.Request) {
	email := normalize.PathEmail(chi.URLParam(r, "email"))

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	sl, err := initialslotstore.New(h.DB).GetByEmail(ctx, email)
	if errors.Is(err, initialslotstore.ErrNotFound) {
		apierr.Write(w, r, h.Log, apierr.NotFound("Slot not found for the specified user"))
		return
	}
	if err != nil {
		apierr.Write(w, r, h.Log, apierr.Internal("Internal server error", err))
		return
	}
	respond.JSON(w, http.StatusOK, sl)
}

// HandleCreate handles POST /initialslot.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req slotRequest
	if err := respond.DecodeJSON(r, &req); err != nil {
		apierr.Write(w, r, h.Log, apierr.Validation("Invalid JSON body"))
		return
	}
	sl := models.InitialSlot{Email: normalize.Email(req.Email)}
	if sl.Email.IsZero() {
		apierr.Write(w, r, h.Log, apierr.Validation("email is required"))
		return
	}
	patch, perr := req.counters()
	if perr != nil {
		apierr.Write(w, r, h.Log, perr)
		return
	}
	patch.Apply(&sl.AllProducts)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if _, err := initialslotstore.New(h.DB).Create(ctx, sl); err != nil {
		apierr.Write(w, r, h.Log, apierr.Internal("Internal server error", err))
		return
	}
	respond.Message(w, http.StatusOK, "Slot created successfully")
}

// HandleUpdate handles PATCH /initialslot/{email}. Callers treat anything
// but 200 as a failed update.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	email := normalize.PathEmail(chi.URLParam(r, "email"))

	var req slotRequest
	if err := respond.DecodeJSON(r, &req); err != nil {
		apierr.Write(w, r, h.Log, apierr.Validation("Invalid JSON body"))
		return
	}
	patch, perr := req.counters()
	if perr != nil {
		apierr.Write(w, r, h.Log, perr)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if _, err := initialslotstore.New(h.DB).UpdateCounters(ctx, email, patch); err != nil {
		if errors.Is(err, initialslotstore.ErrNotFound) {
			apierr.Write(w, r, h.Log, apierr.NotFound("Slot not found"))
			return
		}
		apierr.Write(w, r, h.Log, apierr.Internal("Internal server error", err))
		return
	}
	respond.Message(w, http.StatusOK, "slot updated successfully")
}
