package slots_test

import (
	"net/http"
	"testing"

	"github.com/dalemusser/pooldash/internal/app/features/slots"
	slotstore "github.com/dalemusser/pooldash/internal/app/store/slots"
	"github.com/dalemusser/pooldash/internal/domain/models"
	"github.com/dalemusser/pooldash/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setup(t *testing.T) (http.Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	return slots.Routes(slots.NewHandler(db, zap.NewNop())), testutil.NewFixtures(t, db)
}

func stored(t *testing.T, fx *testutil.Fixtures, email string) models.Slot {
	t.Helper()
	ctx, cancel := testutil.TestContext()
	defer cancel()
	sl, err := slotstore.New(fx.DB()).GetByEmail(ctx, models.Email(email))
	require.NoError(t, err)
	return sl
}

func TestCreate_Defaults(t *testing.T) {
	router, fx := setup(t)

	rec := testutil.NewRecorder()
	router.ServeHTTP(rec, testutil.NewJSONRequest(t, http.MethodPost, "/", map[string]any{
		"email":       "Buyer@X.com",
		"AllProducts": map[string]any{"level2": 4},
		"TotalAmount": 1200,
	}))
	rec.AssertStatus(t, http.StatusOK)

	sl := stored(t, fx, "buyer@x.com")
	assert.Equal(t, 4, sl.AllProducts.Level2)
	assert.Equal(t, 0, sl.AllProducts.Level1)
	assert.Equal(t, models.PaymentPending, sl.AllProducts.PaymentStatus)
	assert.Equal(t, 1200.0, sl.TotalAmount)
}

func TestCreate_RejectsBadInput(t *testing.T) {
	router, _ := setup(t)

	for name, body := range map[string]map[string]any{
		"no email":        {"AllProducts": map[string]any{"level1": 1}},
		"unknown key":     {"email": "a@x.com", "AllProducts": map[string]any{"level10": 1}},
		"bad status":      {"email": "a@x.com", "AllProducts": map[string]any{"paymentStatus": "Done"}},
		"non-int counter": {"email": "a@x.com", "AllProducts": map[string]any{"level1": "two"}},
	} {
		t.Run(name, func(t *testing.T) {
			rec := testutil.NewRecorder()
			router.ServeHTTP(rec, testutil.NewJSONRequest(t, http.MethodPost, "/", body))
			rec.AssertStatus(t, http.StatusBadRequest)
		})
	}
}

func TestUpdate_PartialMerge(t *testing.T) {
	router, fx := setup(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	fx.CreateSlot(ctx, "buyer@x.com", models.Counters{Level1: 3, Level2: 5}, models.PaymentPending, 500)

	rec := testutil.NewRecorder()
	router.ServeHTTP(rec, testutil.NewJSONRequest(t, http.MethodPatch, "/buyer@x.com", map[string]any{
		"AllProducts":   map[string]any{"level1": 7},
		"paymentStatus": "Success",
	}))
	rec.AssertStatus(t, http.StatusOK)

	sl := stored(t, fx, "buyer@x.com")
	assert.Equal(t, 7, sl.AllProducts.Level1)
	assert.Equal(t, 5, sl.AllProducts.Level2)
	assert.Equal(t, models.PaymentSuccess, sl.AllProducts.PaymentStatus)
	assert.Equal(t, 500.0, sl.TotalAmount)
}

func TestUpdate_UnknownStatusIgnored(t *testing.T) {
	router, fx := setup(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	fx.CreateSlot(ctx, "buyer@x.com", models.Counters{}, models.PaymentFailed, 0)

	rec := testutil.NewRecorder()
	router.ServeHTTP(rec, testutil.NewJSONRequest(t, http.MethodPatch, "/buyer@x.com", map[string]any{
		"AllProducts":   map[string]any{},
		"paymentStatus": "Refunded",
		"TotalAmount":   99.5,
	}))
	rec.AssertStatus(t, http.StatusOK)

	sl := stored(t, fx, "buyer@x.com")
	assert.Equal(t, models.PaymentFailed, sl.AllProducts.PaymentStatus)
	assert.Equal(t, 99.5, sl.TotalAmount)
}

func TestUpdate_EmbeddedStatusAndUnknownKey(t *testing.T) {
	router, fx := setup(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	fx.CreateSlot(ctx, "buyer@x.com", models.Counters{}, models.PaymentPending, 0)

	rec := testutil.NewRecorder()
	router.ServeHTTP(rec, testutil.NewJSONRequest(t, http.MethodPatch, "/buyer@x.com", map[string]any{
		"AllProducts": map[string]any{"paymentStatus": "Reset"},
	}))
	rec.AssertStatus(t, http.StatusOK)
	assert.Equal(t, models.PaymentReset, stored(t, fx, "buyer@x.com").AllProducts.PaymentStatus)

	bad := testutil.NewRecorder()
	router.ServeHTTP(bad, testutil.NewJSONRequest(t, http.MethodPatch, "/buyer@x.com", map[string]any{
		"AllProducts": map[string]any{"bonus": 1},
	}))
	bad.AssertStatus(t, http.StatusBadRequest)
	assert.Equal(t, "bonus", bad.DecodeJSON(t)["key"])
}

func TestGetAndList(t *testing.T) {
	router, fx := setup(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	fx.CreateSlot(ctx, "a@x.com", models.Counters{Level9: 1}, models.PaymentSuccess, 10)
	fx.CreateSlot(ctx, "b@x.com", models.Counters{}, models.PaymentPending, 0)

	list := testutil.NewRecorder()
	router.ServeHTTP(list, testutil.NewRequest(http.MethodGet, "/"))
	list.AssertStatus(t, http.StatusOK)
	list.AssertContains(t, `"email":"a@x.com"`)
	list.AssertContains(t, `"email":"b@x.com"`)

	one := testutil.NewRecorder()
	router.ServeHTTP(one, testutil.NewRequest(http.MethodGet, "/a@x.com"))
	one.AssertStatus(t, http.StatusOK)
	one.AssertContains(t, `"level9":1`)

	missing := testutil.NewRecorder()
	router.ServeHTTP(missing, testutil.NewRequest(http.MethodGet, "/c@x.com"))
	missing.AssertStatus(t, http.StatusNotFound)

	patchMissing := testutil.NewRecorder()
	router.ServeHTTP(patchMissing, testutil.NewJSONRequest(t, http.MethodPatch, "/c@x.com", map[string]any{"TotalAmount": 1}))
	patchMissing.AssertStatus(t, http.StatusNotFound)
}
