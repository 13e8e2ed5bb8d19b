// internal/app/features/orders/handler.go
package orders

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	orderstore "github.com/dalemusser/pooldash/internal/app/store/orders"
	"github.com/dalemusser/pooldash/internal/app/system/apierr"
	"github.com/dalemusser/pooldash/internal/app/system/payment"
	"github.com/dalemusser/pooldash/internal/app/system/respond"
	"github.com/dalemusser/pooldash/internal/app/system/timeouts"
	"github.com/dalemusser/pooldash/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler opens payment orders and records their outcome.
type Handler struct {
	DB      *mongo.Database
	Gateway payment.Gateway
	Log     *zap.Logger
}

func NewHandler(db *mongo.Database, gw payment.Gateway, logger *zap.Logger) *Handler {
	return &Handler{DB: db, Gateway: gw, Log: logger}
}

type createRequest struct {
	Amount   json.Number `json:"amount"`
	Currency string      `json:"currency"`
}

type createResponse struct {
	OrderID  string  `json:"order_id"`
	Currency string  `json:"currency"`
	Amount   float64 `json:"amount"`
}

// HandleCreate handles POST /order. The request amount is in minor units;
// the stored and returned amount is in major units.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := respond.DecodeJSON(r, &req); err != nil {
		apierr.Write(w, r, h.Log, apierr.Validation("Invalid JSON body"))
		return
	}
	amount, err := req.Amount.Int64()
	if err != nil || amount <= 0 {
		apierr.Write(w, r, h.Log, apierr.Validation("amount must be a positive integer in minor units"))
		return
	}
	currency := strings.ToUpper(strings.TrimSpace(req.Currency))
	if currency == "" {
		apierr.Write(w, r, h.Log, apierr.Validation("currency is required"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	res, err := h.Gateway.CreateOrder(ctx, payment.OrderRequest{Amount: amount, Currency: currency})
	if err != nil {
		apierr.Write(w, r, h.Log, apierr.Upstream("Not able to create order. Please try again!", err))
		return
	}

	o, err := orderstore.New(h.DB).Create(ctx, models.Order{
		OrderID:  res.ID,
		Currency: res.Currency,
		Amount:   float64(amount) / 100,
	})
	if err != nil {
		apierr.Write(w, r, h.Log, apierr.Internal("Not able to create order. Please try again!", err))
		return
	}

	respond.JSON(w, http.StatusOK, createResponse{OrderID: o.OrderID, Currency: o.Currency, Amount: o.Amount})
}

// ServeOrder handles GET /order/{orderId}.
func (h *Handler) ServeOrder(w http.ResponseWriter, r *http.Request) {
	orderID := strings.TrimSpace(chi.URLParam(r, "orderId"))

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	o, err := orderstore.New(h.DB).GetByOrderID(ctx, orderID)
	if errors.Is(err, orderstore.ErrNotFound) {
		apierr.Write(w, r, h.Log, apierr.NotFound("Order not found"))
		return
	}
	if err != nil {
		apierr.Write(w, r, h.Log, apierr.Internal("Internal Server Error", err))
		return
	}
	respond.JSON(w, http.StatusOK, o)
}

type statusRequest struct {
	PaymentStatus string `json:"paymentStatus"`
}

// HandleStatus handles PATCH /order/{orderId}, recording the payment outcome
// reported by the client after checkout.
func (h *Handler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	orderID := strings.TrimSpace(chi.URLParam(r, "orderId"))

	var req statusRequest
	if err := respond.DecodeJSON(r, &req); err != nil {
		apierr.Write(w, r, h.Log, apierr.Validation("Invalid JSON body"))
		return
	}
	status := strings.TrimSpace(req.PaymentStatus)
	if status == "" {
		apierr.Write(w, r, h.Log, apierr.Validation("paymentStatus is required"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	o, err := orderstore.New(h.DB).SetPaymentStatus(ctx, orderID, status)
	if errors.Is(err, orderstore.ErrNotFound) {
		apierr.Write(w, r, h.Log, apierr.NotFound("Order not found"))
		return
	}
	if err != nil {
		apierr.Write(w, r, h.Log, apierr.Internal("Internal Server Error", err))
		return
	}

	h.Log.Info("order payment status updated", zap.String("order_id", orderID), zap.String("status", status))
	respond.JSON(w, http.StatusOK, o)
}
