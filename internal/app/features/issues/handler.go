// internal/app/features/issues/handler.go
package issues

import (
	"context"
	"net/http"

	issuestore "github.com/dalemusser/pooldash/internal/app/store/issues"
	"github.com/dalemusser/pooldash/internal/app/system/apierr"
	"github.com/dalemusser/pooldash/internal/app/system/htmlsanitize"
	"github.com/dalemusser/pooldash/internal/app/system/normalize"
	"github.com/dalemusser/pooldash/internal/app/system/respond"
	"github.com/dalemusser/pooldash/internal/app/system/timeouts"
	"github.com/dalemusser/pooldash/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type Handler struct {
	DB  *mongo.Database
	Log *zap.Logger
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{DB: db, Log: logger}
}

type submitRequest struct {
	Issue string `json:"issue"`
	Doubt string `json:"doubt"`
}

// HandleSubmit handles POST /api/issues/{email}. Markup is stripped from
// both text fields before they are checked and stored.
func (h *Handler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	email := normalize.PathEmail(chi.URLParam(r, "email"))

	var req submitRequest
	if err := respond.DecodeJSON(r, &req); err != nil {
		apierr.Write(w, r, h.Log, apierr.Validation("Invalid JSON body"))
		return
	}
	is := models.Issue{
		Email: email,
		Issue: htmlsanitize.StripTags(req.Issue),
		Doubt: htmlsanitize.StripTags(req.Doubt),
	}
	if is.Email.IsZero() || is.Issue == "" || is.Doubt == "" {
		apierr.Write(w, r, h.Log, apierr.Validation("Please provide all required fields"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	saved, err := issuestore.New(h.DB).Create(ctx, is)
	if err != nil {
		apierr.Write(w, r, h.Log, apierr.Internal("Error submitting the issue", err))
		return
	}

	h.Log.Info("issue submitted", zap.String("email", saved.Email.String()), zap.String("id", saved.ID.Hex()))
	respond.JSON(w, http.StatusOK, map[string]any{
		"message": "Issue submitted successfully",
		"data":    saved,
	})
}
