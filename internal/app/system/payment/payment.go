// internal/app/system/payment/payment.go

// Package payment creates orders with the payment processor.
package payment

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	razorpay "github.com/razorpay/razorpay-go"
	"go.uber.org/zap"
)

// OrderRequest asks the processor to open an order. Amount is in the
// currency's minor unit (paise for INR).
type OrderRequest struct {
	Amount   int64
	Currency string
}

// OrderResult is what the processor returned for a created order.
type OrderResult struct {
	ID       string
	Currency string
	Receipt  string
}

// Gateway abstracts the payment processor so handlers can be tested without
// network access.
type Gateway interface {
	CreateOrder(ctx context.Context, req OrderRequest) (*OrderResult, error)
}

// ErrMalformedResponse is returned when the processor reply lacks an order id.
var ErrMalformedResponse = errors.New("payment gateway returned no order id")

// orderCreator is the slice of the razorpay SDK this package uses.
type orderCreator interface {
	Create(data map[string]interface{}, extraHeaders map[string]string) (map[string]interface{}, error)
}

// RazorpayGateway creates orders through the Razorpay Orders API.
type RazorpayGateway struct {
	orders orderCreator
	log    *zap.Logger
}

// NewRazorpay builds a gateway from API credentials.
func NewRazorpay(keyID, keySecret string, logger *zap.Logger) *RazorpayGateway {
	client := razorpay.NewClient(keyID, keySecret)
	return &RazorpayGateway{orders: client.Order, log: logger}
}

// NewReceipt returns a unique receipt reference of the form order_<uuid>.
func NewReceipt() string {
	return "order_" + uuid.NewString()
}

// CreateOrder opens an auto-captured order. The SDK call is not
// context-aware, so it runs in a goroutine and ctx only bounds how long the
// caller waits for it.
func (g *RazorpayGateway) CreateOrder(ctx context.Context, req OrderRequest) (*OrderResult, error) {
	receipt := NewReceipt()
	data := map[string]interface{}{
		"amount":          req.Amount,
		"currency":        req.Currency,
		"receipt":         receipt,
		"payment_capture": 1,
	}

	type reply struct {
		body map[string]interface{}
		err  error
	}
	done := make(chan reply, 1)
	go func() {
		body, err := g.orders.Create(data, nil)
		done <- reply{body, err}
	}()

	var r reply
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case r = <-done:
	}
	if r.err != nil {
		return nil, fmt.Errorf("razorpay create order: %w", r.err)
	}

	id, _ := r.body["id"].(string)
	if id == "" {
		return nil, ErrMalformedResponse
	}
	currency, _ := r.body["currency"].(string)
	if currency == "" {
		currency = req.Currency
	}

	g.log.Info("payment order created",
		zap.String("order_id", id),
		zap.String("receipt", receipt),
		zap.Int64("amount", req.Amount),
		zap.String("currency", currency))

	return &OrderResult{ID: id, Currency: currency, Receipt: receipt}, nil
}
