package feedback

import (
	"net/http"
	"testing"

	"github.com/dalemusser/pooldash/internal/app/system/apierr"
	"github.com/dalemusser/pooldash/internal/domain/models"
	"github.com/dalemusser/pooldash/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

func intp(v int) *int       { return &v }
func strp(v string) *string { return &v }

func TestToFeedback(t *testing.T) {
	tests := []struct {
		name    string
		req     submitRequest
		want    models.Feedback
		wantErr string
	}{
		{
			name: "form1 implicit",
			req:  submitRequest{UserEmail: "U@x.com", SelectedEmoji: intp(3)},
			want: models.Feedback{UserEmail: "u@x.com", SelectedEmoji: 3},
		},
		{
			name: "form2",
			req:  submitRequest{UserEmail: "u@x.com", FormType: strp("form2"), SelectedEmojiFeedback2: intp(5)},
			want: models.Feedback{UserEmail: "u@x.com", SelectedEmoji: 5, FormType: "form2"},
		},
		{
			name: "form3 zero rating is present",
			req:  submitRequest{UserEmail: "u@x.com", FormType: strp("form3"), SelectedEmojiFeedback3: intp(0)},
			want: models.Feedback{UserEmail: "u@x.com", SelectedEmoji: 0, FormType: "form3"},
		},
		{name: "no email", req: submitRequest{SelectedEmoji: intp(1)}, wantErr: "userEmail is required"},
		{name: "form1 missing", req: submitRequest{UserEmail: "u@x.com"}, wantErr: "selectedEmoji is required for form1"},
		{
			name:    "form2 wrong field",
			req:     submitRequest{UserEmail: "u@x.com", FormType: strp("form2"), SelectedEmoji: intp(2)},
			wantErr: "selectedEmojiFeedback2 is required for form2",
		},
		{name: "unknown form", req: submitRequest{UserEmail: "u@x.com", FormType: strp("form9")}, wantErr: "formType must be form1, form2 or form3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.req.toFeedback()
			if tt.wantErr != "" {
				if err == nil || err.Error() != tt.wantErr {
					t.Fatalf("err = %v, want %q", err, tt.wantErr)
				}
				if apierr.KindOf(err) != apierr.KindValidation {
					t.Errorf("kind = %v, want validation", apierr.KindOf(err))
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestHandleSubmit_Stores(t *testing.T) {
	db := testutil.SetupTestDB(t)
	router := Routes(NewHandler(db, zap.NewNop()))
	ctx, cancel := testutil.TestContext()
	defer cancel()

	rec := testutil.NewRecorder()
	router.ServeHTTP(rec, testutil.NewJSONRequest(t, http.MethodPost, "/", map[string]any{
		"userEmail": "u@example.com", "formType": "form2", "selectedEmojiFeedback2": 4,
	}))
	rec.AssertStatus(t, http.StatusOK)

	var stored models.Feedback
	if err := db.Collection("feedbacks").FindOne(ctx, bson.M{"userEmail": "u@example.com"}).Decode(&stored); err != nil {
		t.Fatalf("read back: %v", err)
	}
	if stored.SelectedEmoji != 4 || stored.FormType != "form2" {
		t.Errorf("stored = %+v", stored)
	}
}

func TestHandleSubmit_Invalid(t *testing.T) {
	db := testutil.SetupTestDB(t)
	router := Routes(NewHandler(db, zap.NewNop()))

	rec := testutil.NewRecorder()
	router.ServeHTTP(rec, testutil.NewJSONRequest(t, http.MethodPost, "/", map[string]any{"userEmail": "u@example.com"}))

	rec.AssertStatus(t, http.StatusBadRequest)
}
