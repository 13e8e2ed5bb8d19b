package images_test

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/dalemusser/pooldash/internal/app/features/images"
	"github.com/dalemusser/pooldash/internal/testutil"
	"go.uber.org/zap"
)

var pngBytes = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func uploadRequest(t *testing.T, email string, data []byte, contentType string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if email != "" {
		_ = mw.WriteField("email", email)
	}
	if data != nil {
		hdr := textproto.MIMEHeader{}
		hdr.Set("Content-Disposition", `form-data; name="image"; filename="avatar.png"`)
		hdr.Set("Content-Type", contentType)
		part, err := mw.CreatePart(hdr)
		if err != nil {
			t.Fatalf("create part: %v", err)
		}
		_, _ = part.Write(data)
	}
	_ = mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func newTestRouter(t *testing.T, maxUpload int64) http.Handler {
	t.Helper()
	db := testutil.SetupTestDB(t)
	return images.Routes(images.NewHandler(db, maxUpload, zap.NewNop()))
}

func TestUploadThenServe(t *testing.T) {
	router := newTestRouter(t, 0)

	rec := testutil.NewRecorder()
	router.ServeHTTP(rec, uploadRequest(t, "Me@Example.com", pngBytes, "image/png"))
	rec.AssertStatus(t, http.StatusOK)

	rec = testutil.NewRecorder()
	router.ServeHTTP(rec, testutil.NewRequest(http.MethodGet, "/me@example.com"))
	rec.AssertStatus(t, http.StatusOK)
	if ct := rec.Header().Get("Content-Type"); ct != "image/png" {
		t.Errorf("Content-Type = %q", ct)
	}
	if !bytes.Equal(rec.Body.Bytes(), pngBytes) {
		t.Errorf("body = %x, want %x", rec.Body.Bytes(), pngBytes)
	}
}

func TestUpload_ReplacesPrevious(t *testing.T) {
	router := newTestRouter(t, 0)

	router.ServeHTTP(testutil.NewRecorder(), uploadRequest(t, "me@example.com", pngBytes, "image/png"))
	rec := testutil.NewRecorder()
	router.ServeHTTP(rec, uploadRequest(t, "me@example.com", []byte("GIF89a...."), "image/gif"))
	rec.AssertStatus(t, http.StatusOK)

	rec = testutil.NewRecorder()
	router.ServeHTTP(rec, testutil.NewRequest(http.MethodGet, "/me@example.com"))
	if ct := rec.Header().Get("Content-Type"); ct != "image/gif" {
		t.Errorf("Content-Type = %q, want image/gif", ct)
	}
}

func TestUpload_MissingParts(t *testing.T) {
	router := newTestRouter(t, 0)

	for name, req := range map[string]*http.Request{
		"no email": uploadRequest(t, "", pngBytes, "image/png"),
		"no file":  uploadRequest(t, "me@example.com", nil, ""),
	} {
		rec := testutil.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", name, rec.Code)
		}
	}
}

func TestUpload_TooLarge(t *testing.T) {
	router := newTestRouter(t, 64)

	rec := testutil.NewRecorder()
	router.ServeHTTP(rec, uploadRequest(t, "me@example.com", bytes.Repeat([]byte("x"), 1024), "image/png"))

	rec.AssertStatus(t, http.StatusBadRequest)
}

func TestServe_NotFound(t *testing.T) {
	router := newTestRouter(t, 0)

	rec := testutil.NewRecorder()
	router.ServeHTTP(rec, testutil.NewRequest(http.MethodGet, "/nobody@example.com"))

	rec.AssertStatus(t, http.StatusNotFound)
}
