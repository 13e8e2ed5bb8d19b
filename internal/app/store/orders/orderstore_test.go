package orderstore_test

import (
	"errors"
	"testing"

	orderstore "github.com/dalemusser/pooldash/internal/app/store/orders"
	"github.com/dalemusser/pooldash/internal/domain/models"
	"github.com/dalemusser/pooldash/internal/testutil"
)

func TestStore_CreateAndGet(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := orderstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.Order{OrderID: "order_1", Currency: "INR", Amount: 499})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.CreatedAt.IsZero() {
		t.Error("expected created_at to be set")
	}

	got, err := store.GetByOrderID(ctx, "order_1")
	if err != nil {
		t.Fatalf("GetByOrderID failed: %v", err)
	}
	if got.Amount != 499 || got.Currency != "INR" {
		t.Errorf("unexpected order: %+v", got)
	}
}

func TestStore_SetPaymentStatus(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := orderstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures.CreateOrder(ctx, "order_2", 10)

	got, err := store.SetPaymentStatus(ctx, "order_2", "Success")
	if err != nil {
		t.Fatalf("SetPaymentStatus failed: %v", err)
	}
	if got.PaymentStatus != "Success" || got.Amount != 10 {
		t.Errorf("unexpected order: %+v", got)
	}

	if _, err := store.SetPaymentStatus(ctx, "missing", "Success"); !errors.Is(err, orderstore.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
