// internal/app/features/images/handler.go
package images

import (
	"context"
	"encoding/base64"
	"errors"
	"io"
	"net/http"
	"strconv"

	imagestore "github.com/dalemusser/pooldash/internal/app/store/images"
	"github.com/dalemusser/pooldash/internal/app/system/apierr"
	"github.com/dalemusser/pooldash/internal/app/system/normalize"
	"github.com/dalemusser/pooldash/internal/app/system/respond"
	"github.com/dalemusser/pooldash/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// DefaultMaxUpload caps an avatar upload when no limit is configured.
const DefaultMaxUpload = 5 << 20

// Handler serves profile image upload and download.
type Handler struct {
	DB        *mongo.Database
	Log       *zap.Logger
	MaxUpload int64
}

func NewHandler(db *mongo.Database, maxUpload int64, logger *zap.Logger) *Handler {
	if maxUpload <= 0 {
		maxUpload = DefaultMaxUpload
	}
	return &Handler{DB: db, Log: logger, MaxUpload: maxUpload}
}

// HandleUpload handles POST /upload (multipart: image, email).
func (h *Handler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.MaxUpload)
	if err := r.ParseMultipartForm(h.MaxUpload); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			apierr.Write(w, r, h.Log, apierr.Validation("Image exceeds the upload size limit"))
			return
		}
		apierr.Write(w, r, h.Log, apierr.Validation("Missing email or file"))
		return
	}

	email := normalize.Email(r.FormValue("email"))
	file, header, err := r.FormFile("image")
	if err != nil || email.IsZero() {
		apierr.Write(w, r, h.Log, apierr.Validation("Missing email or file"))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		apierr.Write(w, r, h.Log, apierr.Internal("Error uploading file", err))
		return
	}
	contentType := header.Header.Get("Content-Type")
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = http.DetectContentType(data)
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if _, err := imagestore.New(h.DB).Put(ctx, email, base64.StdEncoding.EncodeToString(data), contentType); err != nil {
		apierr.Write(w, r, h.Log, apierr.Internal("Error uploading file", err))
		return
	}

	h.Log.Info("profile image stored",
		zap.String("email", email.String()),
		zap.String("content_type", contentType),
		zap.Int("bytes", len(data)))
	respond.Message(w, http.StatusOK, "File uploaded and stored in database")
}

// ServeImage handles GET /upload/{email} and writes the raw image bytes.
func (h *Handler) ServeImage(w http.ResponseWriter, r *http.Request) {
	email := normalize.PathEmail(chi.URLParam(r, "email"))
	if email.IsZero() {
		apierr.Write(w, r, h.Log, apierr.Validation("Email is required"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	img, err := imagestore.New(h.DB).GetByEmail(ctx, email)
	if errors.Is(err, imagestore.ErrNotFound) {
		apierr.Write(w, r, h.Log, apierr.NotFound("Image not found"))
		return
	}
	if err != nil {
		apierr.Write(w, r, h.Log, apierr.Internal("Error fetching image", err))
		return
	}

	data, err := base64.StdEncoding.DecodeString(img.ImageData)
	if err != nil {
		apierr.Write(w, r, h.Log, apierr.Internal("Error fetching image", err))
		return
	}

	w.Header().Set("Content-Type", img.ContentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
