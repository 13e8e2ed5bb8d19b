package imagestore_test

import (
	"errors"
	"testing"

	imagestore "github.com/dalemusser/pooldash/internal/app/store/images"
	"github.com/dalemusser/pooldash/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
)

func TestStore_PutReplaces(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := imagestore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	first, err := store.Put(ctx, "u@example.com", "AAAA", "image/png")
	if err != nil {
		t.Fatalf("first Put failed: %v", err)
	}
	second, err := store.Put(ctx, "u@example.com", "BBBB", "image/jpeg")
	if err != nil {
		t.Fatalf("second Put failed: %v", err)
	}
	if first.ID != second.ID {
		t.Error("expected the same document to be updated")
	}

	n, err := db.Collection("profileimages").CountDocuments(ctx, bson.M{"email": "u@example.com"})
	if err != nil || n != 1 {
		t.Errorf("expected 1 document, got %d (%v)", n, err)
	}

	got, err := store.GetByEmail(ctx, "u@example.com")
	if err != nil {
		t.Fatalf("GetByEmail failed: %v", err)
	}
	if got.ImageData != "BBBB" || got.ContentType != "image/jpeg" {
		t.Errorf("unexpected image: %+v", got)
	}
}

func TestStore_GetByEmail_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := imagestore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.GetByEmail(ctx, "none@example.com"); !errors.Is(err, imagestore.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
