// internal/app/features/groups/handler.go
package groups

import (
	"context"
	"errors"
	"net/http"

	groupstore "github.com/dalemusser/pooldash/internal/app/store/groups"
	"github.com/dalemusser/pooldash/internal/app/system/apierr"
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

type groupRequest struct {
	Email     string    `json:"email"`
	GroupName *[]string `json:"groupname"`
}

func (req groupRequest) names() []string {
	if req.GroupName == nil {
		return nil
	}
	return *req.GroupName
}

// ServeGroup handles GET /group/{email}.
func (h *Handler) ServeGroup(w http.ResponseWriter, r *http.Request) {
	email := normalize.PathEmail(chi.URLParam(r, "email"))

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	g, err := groupstore.New(h.DB).GetByEmail(ctx, email)
	if errors.Is(err, groupstore.ErrNotFound) {
		apierr.Write(w, r, h.Log, apierr.NotFound("Group not found"))
		return
	}
	if err != nil {
		apierr.Write(w, r, h.Log, apierr.Internal("Internal server error", err))
		return
	}
	respond.JSON(w, http.StatusOK, g)
}

// HandleCreate handles POST /group. Posting the list an owner already has
// is not an error.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req groupRequest
	if err := respond.DecodeJSON(r, &req); err != nil {
		apierr.Write(w, r, h.Log, apierr.Validation("Invalid JSON body"))
		return
	}
	email := normalize.Email(req.Email)
	if email.IsZero() {
		apierr.Write(w, r, h.Log, apierr.Validation("email is required"))
		return
	}
	names := req.names()

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	store := groupstore.New(h.DB)
	exists, err := store.Exists(ctx, email, names)
	if err != nil {
		apierr.Write(w, r, h.Log, apierr.Internal("Internal server error", err))
		return
	}
	if exists {
		respond.Message(w, http.StatusOK, "Group already exists.")
		return
	}

	g, err := store.Create(ctx, models.Group{Email: email, GroupNames: names})
	if errors.Is(err, groupstore.ErrDuplicateEmail) {
		apierr.Write(w, r, h.Log, apierr.Validation("A group already exists for this email; use PATCH to change it"))
		return
	}
	if err != nil {
		apierr.Write(w, r, h.Log, apierr.Internal("Internal server error", err))
		return
	}
	respond.JSON(w, http.StatusCreated, g)
}

// HandleUpdate handles PATCH /group/{email}. An empty list clears the tags.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	email := normalize.PathEmail(chi.URLParam(r, "email"))

	var req groupRequest
	if err := respond.DecodeJSON(r, &req); err != nil {
		apierr.Write(w, r, h.Log, apierr.Validation("Invalid JSON body"))
		return
	}
	if req.GroupName == nil {
		apierr.Write(w, r, h.Log, apierr.Validation("groupname is required"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	g, err := groupstore.New(h.DB).SetNames(ctx, email, req.names())
	if errors.Is(err, groupstore.ErrNotFound) {
		apierr.Write(w, r, h.Log, apierr.NotFound("Group not found"))
		return
	}
	if err != nil {
		apierr.Write(w, r, h.Log, apierr.Internal("Internal server error", err))
		return
	}
	respond.JSON(w, http.StatusOK, g)
}
