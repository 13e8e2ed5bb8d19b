// internal/app/features/slots/handler.go
package slots

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	slotstore "github.com/dalemusser/pooldash/internal/app/store/slots"
	"github.com/dalemusser/pooldash/internal/app/system/apierr"
	"github.com/dalemusser/pooldash/internal/app/system/normalize"
	"github.com/dalemusser/pooldash/internal/app/system/respond"
	"github.com/dalemusser/pooldash/internal/app/system/timeouts"
	"github.com/dalemusser/pooldash/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves purchased-slot documents.
type Handler struct {
	DB  *mongo.Database
	Log *zap.Logger
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{DB: db, Log: logger}
}

const paymentStatusKey = "paymentStatus"

type slotRequest struct {
	Email         string                     `json:"email"`
	AllProducts   map[string]json.RawMessage `json:"AllProducts"`
	PaymentStatus *string                    `json:"paymentStatus"`
	TotalAmount   *float64                   `json:"TotalAmount"`
}

// embeddedStatus returns AllProducts.paymentStatus when it was sent as a
// string.
func (req slotRequest) embeddedStatus() (string, bool) {
	raw, ok := req.AllProducts[paymentStatusKey]
	if !ok || string(raw) == "null" {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}

func counterError(err error) *apierr.Error {
	var uk *models.UnknownKeyError
	if errors.As(err, &uk) {
		return apierr.Validation(uk.Error()).With("key", uk.Key)
	}
	return apierr.Validation(err.Error())
}

// ServeList handles GET /slots.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	list, err := slotstore.New(h.DB).List(ctx)
	if err != nil {
		apierr.Write(w, r, h.Log, apierr.Internal("Internal server error", err))
		return
	}
	respond.JSON(w, http.StatusOK, list)
}

// ServeSlot handles GET /slots/{email}.
func (h *Handler) ServeSlot(w http.ResponseWriter, r *http.Request) {
	email := normalize.PathEmail(chi.URLParam(r, "email"))

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	sl, err := slotstore.New(h.DB).GetByEmail(ctx, email)
	if errors.Is(err, slotstore.ErrNotFound) {
		apierr.Write(w, r, h.Log, apierr.NotFound("Slot not found for the specified user"))
		return
	}
	if err != nil {
		apierr.Write(w, r, h.Log, apierr.Internal("Internal server error", err))
		return
	}
	respond.JSON(w, http.StatusOK, sl)
}

// HandleCreate handles POST /slots. Counters that are not sent start at
// zero and the payment status starts as Pending.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req slotRequest
	if err := respond.DecodeJSON(r, &req); err != nil {
		apierr.Write(w, r, h.Log, apierr.Validation("Invalid JSON body"))
		return
	}
	sl := models.Slot{Email: normalize.Email(req.Email)}
	if sl.Email.IsZero() {
		apierr.Write(w, r, h.Log, apierr.Validation("email is required"))
		return
	}

	patch, err := models.ParseCountersPatch(req.AllProducts, paymentStatusKey)
	if err != nil {
		apierr.Write(w, r, h.Log, counterError(err))
		return
	}
	patch.Apply(&sl.AllProducts.Counters)

	if raw, ok := req.embeddedStatus(); ok {
		st, valid := models.ParsePaymentStatus(raw)
		if !valid {
			apierr.Write(w, r, h.Log, apierr.Validation("paymentStatus must be Success, Failed, Pending or Reset"))
			return
		}
		sl.AllProducts.PaymentStatus = st
	}
	if req.TotalAmount != nil {
		sl.TotalAmount = *req.TotalAmount
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if _, err := slotstore.New(h.DB).Create(ctx, sl); err != nil {
		apierr.Write(w, r, h.Log, apierr.Internal("Internal server error", err))
		return
	}
	respond.Message(w, http.StatusOK, "Slot created successfully")
}

// HandleUpdate handles PATCH /slots/{email}. Only counters present in
// AllProducts are written. A payment status outside the four known values is
// ignored rather than rejected.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	email := normalize.PathEmail(chi.URLParam(r, "email"))

	var req slotRequest
	if err := respond.DecodeJSON(r, &req); err != nil {
		apierr.Write(w, r, h.Log, apierr.Validation("Invalid JSON body"))
		return
	}

	var p slotstore.Patch
	counters, err := models.ParseCountersPatch(req.AllProducts, paymentStatusKey)
	if err != nil {
		apierr.Write(w, r, h.Log, counterError(err))
		return
	}
	p.Counters = counters

	rawStatus, sent := "", false
	if req.PaymentStatus != nil {
		rawStatus, sent = *req.PaymentStatus, true
	} else {
		rawStatus, sent = req.embeddedStatus()
	}
	if sent {
		if st, ok := models.ParsePaymentStatus(rawStatus); ok {
			p.PaymentStatus = &st
		} else {
			h.Log.Debug("ignoring unknown payment status",
				zap.String("email", email.String()), zap.String("paymentStatus", rawStatus))
		}
	}
	p.TotalAmount = req.TotalAmount

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if _, err := slotstore.New(h.DB).Update(ctx, email, p); err != nil {
		if errors.Is(err, slotstore.ErrNotFound) {
			apierr.Write(w, r, h.Log, apierr.NotFound("Slot not found"))
			return
		}
		apierr.Write(w, r, h.Log, apierr.Internal("Internal server error", err))
		return
	}
	respond.Message(w, http.StatusOK, "slot updated successfully")
}
