package payment

import (
	"context"
	"fmt"
	"sync"
)

// FakeGateway is an in-memory Gateway for tests and local runs without
// processor credentials.
type FakeGateway struct {
	mu       sync.Mutex
	Err      error
	Requests []OrderRequest
}

// CreateOrder records req and returns a sequential order id, or Err if set.
func (f *FakeGateway) CreateOrder(_ context.Context, req OrderRequest) (*OrderResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return nil, f.Err
	}
	f.Requests = append(f.Requests, req)
	return &OrderResult{
		ID:       fmt.Sprintf("order_fake_%d", len(f.Requests)),
		Currency: req.Currency,
		Receipt:  NewReceipt(),
	}, nil
}
