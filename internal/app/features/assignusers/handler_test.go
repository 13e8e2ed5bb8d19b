package assignusers_test

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/dalemusser/pooldash/internal/app/features/assignusers"
	assignuserstore "github.com/dalemusser/pooldash/internal/app/store/assignusers"
	"github.com/dalemusser/pooldash/internal/app/system/indexes"
	"github.com/dalemusser/pooldash/internal/domain/models"
	"github.com/dalemusser/pooldash/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type recordingSlots struct {
	mu     sync.Mutex
	skills []string
	err    error
}

func (s *recordingSlots) Decrement(_ context.Context, _ models.Email, skill string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.skills = append(s.skills, skill)
	return s.err
}

func setup(t *testing.T) (*mongo.Database, *recordingSlots, http.Handler) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	require.NoError(t, indexes.EnsureAll(ctx, db))

	slots := &recordingSlots{}
	h := assignusers.NewHandler(db, slots, 0, 0, zap.NewNop())
	return db, slots, assignusers.Routes(h)
}

func multipartRequest(t *testing.T, fields map[string]string, fileName string, file []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if file != nil {
		fw, err := mw.CreateFormFile("file", fileName)
		require.NoError(t, err)
		_, err = fw.Write(file)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func xlsxFile(t *testing.T, rows [][]any) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func count(t *testing.T, db *mongo.Database, filter bson.M) int64 {
	t.Helper()
	ctx, cancel := testutil.TestContext()
	defer cancel()
	n, err := db.Collection("assignusers").CountDocuments(ctx, filter)
	require.NoError(t, err)
	return n
}

func TestPost_SingleRecordEndToEnd(t *testing.T) {
	db, slots, router := setup(t)

	rec := testutil.NewRecorder()
	router.ServeHTTP(rec, testutil.NewJSONRequest(t, http.MethodPost, "/", map[string]any{
		"auName":                 "A",
		"auEmail":                "a@x.com",
		"auSkills":               "s1,s2",
		"auGroup":                "g1",
		"authenticatedUserEmail": "owner@x.com",
		"isClicked":              "{}",
	}))
	rec.AssertStatus(t, http.StatusCreated)
	assert.Empty(t, slots.skills)

	ctx, cancel := testutil.TestContext()
	defer cancel()
	var stored models.AssignUser
	require.NoError(t, db.Collection("assignusers").FindOne(ctx, bson.M{"auEmail": "a@x.com"}).Decode(&stored))
	assert.Equal(t, []string{"s1", "s2"}, stored.Skills)
	assert.Equal(t, []string{"in-progress"}, stored.WIP)
	assert.Equal(t, models.Email("owner@x.com"), stored.AddedBy)
	assert.True(t, stored.ActiveUser)
	assert.False(t, stored.Playing)
}

func TestPost_SingleRecordDuplicateIsConflict(t *testing.T) {
	db, slots, router := setup(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	testutil.NewFixtures(t, db).CreateAssignUser(ctx, "A", "a@x.com", "other@x.com")

	rec := testutil.NewRecorder()
	router.ServeHTTP(rec, multipartRequest(t, map[string]string{
		"auName": "A", "auEmail": "A@X.com", "auSkills": "Negotiation", "auGroup": "g1",
		"authenticatedUserEmail": "owner@x.com", "isClicked": `{"Negotiation":true}`,
	}, "", nil))
	rec.AssertStatus(t, http.StatusConflict)

	assert.Equal(t, int64(1), count(t, db, bson.M{"auEmail": "a@x.com"}))
	assert.Empty(t, slots.skills)
}

func TestPost_SingleRecordDecrementsClickedInOrder(t *testing.T) {
	_, slots, router := setup(t)

	rec := testutil.NewRecorder()
	router.ServeHTTP(rec, testutil.NewJSONRequest(t, http.MethodPost, "/", map[string]any{
		"auName": "B", "auEmail": "b@x.com", "auSkills": "x", "auGroup": "g",
		"authenticatedUserEmail": "OWNER@x.com",
		"isClicked":              `{"Story-telling":true,"Negotiation":false,"Entire Game":true}`,
	}))
	rec.AssertStatus(t, http.StatusCreated)
	assert.Equal(t, []string{"Story-telling", "Entire Game"}, slots.skills)
}

func TestPost_SlotFailureReportsSteps(t *testing.T) {
	db, slots, router := setup(t)
	slots.err = assignusers.ErrSlotUpdate

	rec := testutil.NewRecorder()
	router.ServeHTTP(rec, testutil.NewJSONRequest(t, http.MethodPost, "/", map[string]any{
		"auName": "C", "auEmail": "c@x.com", "auSkills": "x", "auGroup": "g",
		"authenticatedUserEmail": "owner@x.com",
		"isClicked":              map[string]any{"Negotiation": true},
	}))
	rec.AssertStatus(t, http.StatusInternalServerError)

	body := rec.DecodeJSON(t)
	assert.Equal(t, "Failed to update slot quantities.", body["error"])
	steps, ok := body["steps"].([]any)
	require.True(t, ok, "steps missing from %v", body)
	assert.Len(t, steps, 2)

	// no rollback
	assert.Equal(t, int64(1), count(t, db, bson.M{"auEmail": "c@x.com"}))
}

func TestPost_BulkXLSX(t *testing.T) {
	db, slots, router := setup(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	testutil.NewFixtures(t, db).CreateAssignUser(ctx, "Old", "old@x.com", "other@x.com")

	file := xlsxFile(t, [][]any{
		{"Name", "Email", "Group", "City"},
		{"Ann", "ANN@x.com", "g1", "Pune"},
		{"Old", "old@x.com", "g2", "Goa"},
		{"Bob", "bob@x.com", "g1"},
	})

	rec := testutil.NewRecorder()
	router.ServeHTTP(rec, multipartRequest(t, map[string]string{
		"authenticatedUserEmail": "Owner@x.com",
		"isClicked":              `{"Negotiation":true,"Collaboration":false,"Entire Game":true}`,
	}, "roster.xlsx", file))
	rec.AssertStatus(t, http.StatusCreated)
	assert.Equal(t, "Users uploaded successfully.", rec.DecodeJSON(t)["message"])

	var ann bson.M
	require.NoError(t, db.Collection("assignusers").FindOne(ctx, bson.M{"auEmail": "ann@x.com"}).Decode(&ann))
	assert.Equal(t, "Ann", ann["auName"])
	assert.Equal(t, "Pune", ann["city"])
	assert.Equal(t, "owner@x.com", ann["addedBy"])
	assert.Equal(t, bson.A{"Negotiation", "Entire Game"}, ann["auSkills"])

	var old models.AssignUser
	require.NoError(t, db.Collection("assignusers").FindOne(ctx, bson.M{"auEmail": "old@x.com"}).Decode(&old))
	assert.Equal(t, models.Email("other@x.com"), old.AddedBy)

	assert.Equal(t, int64(2), count(t, db, bson.M{"addedBy": "owner@x.com"}))
	assert.Equal(t, []string{"Negotiation", "Entire Game"}, slots.skills)
}

func TestPost_BulkDuplicatesCreateNothing(t *testing.T) {
	db, slots, router := setup(t)

	csv := []byte("name,email,group\nA,a@x.com,g\nB,b@x.com,g\nA2,A@X.COM,g\n")
	rec := testutil.NewRecorder()
	router.ServeHTTP(rec, multipartRequest(t, map[string]string{
		"authenticatedUserEmail": "owner@x.com",
		"isClicked":              `{"Negotiation":true}`,
	}, "roster.csv", csv))
	rec.AssertStatus(t, http.StatusConflict)

	body := rec.DecodeJSON(t)
	assert.Equal(t, []any{"a@x.com"}, body["duplicates"])
	assert.Equal(t, false, body["success"])
	assert.Zero(t, count(t, db, bson.M{}))
	assert.Empty(t, slots.skills)
}

func TestPost_BulkRowWithoutEmail(t *testing.T) {
	db, _, router := setup(t)

	csv := []byte("name,email,group\nA,a@x.com,g\nB,,g\n")
	rec := testutil.NewRecorder()
	router.ServeHTTP(rec, multipartRequest(t, map[string]string{
		"authenticatedUserEmail": "owner@x.com",
		"isClicked":              `{}`,
	}, "roster.csv", csv))
	rec.AssertStatus(t, http.StatusBadRequest)
	assert.Zero(t, count(t, db, bson.M{}))
}

func TestPost_BulkCollidingHeadersRejected(t *testing.T) {
	db, slots, router := setup(t)

	csv := []byte("Name,Email,Group,email \nA,a@x.com,g,b@x.com\n")
	rec := testutil.NewRecorder()
	router.ServeHTTP(rec, multipartRequest(t, map[string]string{
		"authenticatedUserEmail": "owner@x.com",
		"isClicked":              `{"Negotiation":true}`,
	}, "roster.csv", csv))
	rec.AssertStatus(t, http.StatusBadRequest)
	rec.AssertContains(t, "Could not read spreadsheet")
	assert.Zero(t, count(t, db, bson.M{}))
	assert.Empty(t, slots.skills)
}

func TestPost_SingleRecordKeepsExtraFields(t *testing.T) {
	db, _, router := setup(t)

	rec := testutil.NewRecorder()
	router.ServeHTTP(rec, testutil.NewJSONRequest(t, http.MethodPost, "/", map[string]any{
		"auName":                 "A",
		"auEmail":                "a@x.com",
		"auSkills":               []string{"s1"},
		"auGroup":                "g1",
		"authenticatedUserEmail": "owner@x.com",
		"isClicked":              "{}",
		"city":                   "Pune",
		"age":                    30,
		"addedBy":                "intruder@x.com",
	}))
	rec.AssertStatus(t, http.StatusCreated)

	form := testutil.NewRecorder()
	router.ServeHTTP(form, multipartRequest(t, map[string]string{
		"auName": "B", "auEmail": "b@x.com", "auSkills": "s1", "auGroup": "g1",
		"authenticatedUserEmail": "owner@x.com", "isClicked": "{}", "city": "Delhi",
	}, "", nil))
	form.AssertStatus(t, http.StatusCreated)

	ctx, cancel := testutil.TestContext()
	defer cancel()
	var a, b models.AssignUser
	require.NoError(t, db.Collection("assignusers").FindOne(ctx, bson.M{"auEmail": "a@x.com"}).Decode(&a))
	require.NoError(t, db.Collection("assignusers").FindOne(ctx, bson.M{"auEmail": "b@x.com"}).Decode(&b))

	assert.Equal(t, "Pune", a.Extra["city"])
	assert.Equal(t, float64(30), a.Extra["age"])
	assert.Equal(t, models.Email("owner@x.com"), a.AddedBy)
	assert.NotContains(t, a.Extra, "authenticatedUserEmail")
	assert.NotContains(t, a.Extra, "isClicked")
	assert.Equal(t, "Delhi", b.Extra["city"])
	assert.NotContains(t, b.Extra, "authenticatedUserEmail")
}

func TestPost_RequestFormatErrors(t *testing.T) {
	_, _, router := setup(t)

	tests := []struct {
		name string
		req  func() *http.Request
		want string
	}{
		{
			name: "no owner",
			req: func() *http.Request {
				return testutil.NewJSONRequest(t, http.MethodPost, "/", map[string]any{
					"auName": "A", "auEmail": "a@x.com", "auSkills": "s", "auGroup": "g",
				})
			},
			want: "Authenticated user email is required",
		},
		{
			name: "partial single record",
			req: func() *http.Request {
				return testutil.NewJSONRequest(t, http.MethodPost, "/", map[string]any{
					"auName": "A", "auEmail": "a@x.com", "authenticatedUserEmail": "owner@x.com",
				})
			},
			want: "Invalid request format",
		},
		{
			name: "file without isClicked",
			req: func() *http.Request {
				return multipartRequest(t, map[string]string{"authenticatedUserEmail": "owner@x.com"},
					"roster.csv", []byte("name,email,group\nA,a@x.com,g\n"))
			},
			want: "Invalid request format",
		},
		{
			name: "bad isClicked",
			req: func() *http.Request {
				return testutil.NewJSONRequest(t, http.MethodPost, "/", map[string]any{
					"auName": "A", "auEmail": "a@x.com", "auSkills": "s", "auGroup": "g",
					"authenticatedUserEmail": "owner@x.com", "isClicked": "[1,2]",
				})
			},
			want: "isClicked must be a JSON object",
		},
		{
			name: "malformed body",
			req:  func() *http.Request { return testutil.NewJSONRequest(t, http.MethodPost, "/", "{not json") },
			want: "Invalid JSON body",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := testutil.NewRecorder()
			router.ServeHTTP(rec, tt.req())
			rec.AssertStatus(t, http.StatusBadRequest)
			assert.Equal(t, tt.want, rec.ErrorMessage(t))
		})
	}
}

func TestGet_ListsOwnersRoster(t *testing.T) {
	db, _, router := setup(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	fx := testutil.NewFixtures(t, db)
	fx.CreateAssignUser(ctx, "A", "a@x.com", "owner@x.com")
	fx.CreateAssignUser(ctx, "B", "b@x.com", "owner@x.com")
	fx.CreateAssignUser(ctx, "C", "c@x.com", "someone@x.com")

	rec := testutil.NewRecorder()
	router.ServeHTTP(rec, testutil.NewRequest(http.MethodGet, "/?authenticatedUserEmail=OWNER@x.com"))
	rec.AssertStatus(t, http.StatusOK)
	body := rec.DecodeJSON(t)
	assert.Equal(t, true, body["success"])
	assert.Len(t, body["users"], 2)

	none := testutil.NewRecorder()
	router.ServeHTTP(none, testutil.NewRequest(http.MethodGet, "/?authenticatedUserEmail=nobody@x.com"))
	none.AssertStatus(t, http.StatusNotFound)

	missing := testutil.NewRecorder()
	router.ServeHTTP(missing, testutil.NewRequest(http.MethodGet, "/"))
	missing.AssertStatus(t, http.StatusBadRequest)
}

func TestStoreRejectsRacingDuplicate(t *testing.T) {
	db, _, _ := setup(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	store := assignuserstore.New(db)

	_, err := store.Create(ctx, models.NewAssignUser("A", "a@x.com", "g", nil, "owner@x.com"))
	require.NoError(t, err)
	_, err = store.Create(ctx, models.NewAssignUser("A", "a@x.com", "g", nil, "owner@x.com"))
	assert.ErrorIs(t, err, assignuserstore.ErrDuplicateEmail)
}
