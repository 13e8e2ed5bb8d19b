package issues_test

import (
	"net/http"
	"testing"

	"github.com/dalemusser/pooldash/internal/app/features/issues"
	"github.com/dalemusser/pooldash/internal/app/system/indexes"
	"github.com/dalemusser/pooldash/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

func TestSubmit_TwiceForSameEmail(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll: %v", err)
	}
	router := issues.Routes(issues.NewHandler(db, zap.NewNop()))

	for i := 0; i < 2; i++ {
		rec := testutil.NewRecorder()
		router.ServeHTTP(rec, testutil.NewJSONRequest(t, http.MethodPost, "/U@Example.com", map[string]any{
			"issue": "<b>Slots</b> missing",
			"doubt": "Bought 5, see 3<script>x()</script>",
		}))
		rec.AssertStatus(t, http.StatusOK)
	}

	n, err := db.Collection("issues").CountDocuments(ctx, bson.M{"email": "u@example.com"})
	if err != nil || n != 2 {
		t.Fatalf("expected 2 issues, got %d (%v)", n, err)
	}

	var stored bson.M
	if err := db.Collection("issues").FindOne(ctx, bson.M{"email": "u@example.com"}).Decode(&stored); err != nil {
		t.Fatalf("read back: %v", err)
	}
	if stored["issue"] != "Slots missing" || stored["doubt"] != "Bought 5, see 3" {
		t.Errorf("markup not stripped: %v", stored)
	}
}

func TestSubmit_RequiresFields(t *testing.T) {
	db := testutil.SetupTestDB(t)
	router := issues.Routes(issues.NewHandler(db, zap.NewNop()))

	for _, body := range []map[string]any{
		{"issue": "only issue"},
		{"doubt": "only doubt"},
		{"issue": "<p></p>", "doubt": "markup only issue"},
	} {
		rec := testutil.NewRecorder()
		router.ServeHTTP(rec, testutil.NewJSONRequest(t, http.MethodPost, "/u@example.com", body))
		rec.AssertStatus(t, http.StatusBadRequest)
	}
}
