package initialslotstore_test

import (
	"errors"
	"testing"

	initialslotstore "github.com/dalemusser/pooldash/internal/app/store/initialslots"
	"github.com/dalemusser/pooldash/internal/domain/models"
	"github.com/dalemusser/pooldash/internal/testutil"
)

func TestStore_CreateGetUpdate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := initialslotstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	_, err := store.Create(ctx, models.InitialSlot{
		Email:       "owner@example.com",
		AllProducts: models.Counters{Level1: 3, Level5: 2, AllLevels: 1},
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	got, err := store.UpdateCounters(ctx, "owner@example.com",
		models.CountersPatch{Values: map[models.CounterKey]int{models.Level5: 0}})
	if err != nil {
		t.Fatalf("UpdateCounters failed: %v", err)
	}
	want := models.Counters{Level1: 3, Level5: 0, AllLevels: 1}
	if got.AllProducts != want {
		t.Errorf("AllProducts = %+v, want %+v", got.AllProducts, want)
	}

	read, err := store.GetByEmail(ctx, "owner@example.com")
	if err != nil {
		t.Fatalf("GetByEmail failed: %v", err)
	}
	if read.AllProducts != want {
		t.Errorf("read AllProducts = %+v", read.AllProducts)
	}
}

func TestStore_UpdateCounters_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := initialslotstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	_, err := store.UpdateCounters(ctx, "none@example.com",
		models.CountersPatch{Values: map[models.CounterKey]int{models.Level1: 1}})
	if !errors.Is(err, initialslotstore.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
