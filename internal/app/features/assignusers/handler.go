// internal/app/features/assignusers/handler.go
package assignusers

import (
	"context"
	"errors"
	"net/http"

	assignuserstore "github.com/dalemusser/pooldash/internal/app/store/assignusers"
	"github.com/dalemusser/pooldash/internal/app/system/apierr"
	"github.com/dalemusser/pooldash/internal/app/system/normalize"
	"github.com/dalemusser/pooldash/internal/app/system/respond"
	"github.com/dalemusser/pooldash/internal/app/system/spreadsheet"
	"github.com/dalemusser/pooldash/internal/app/system/timeouts"
	"github.com/dalemusser/pooldash/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves the roster endpoints. Slots is reached over HTTP in
// production and faked in tests.
type Handler struct {
	DB        *mongo.Database
	Slots     Decrementer
	MaxUpload int64
	MaxRows   int
	Log       *zap.Logger
}

func NewHandler(db *mongo.Database, slots Decrementer, maxUpload int64, maxRows int, logger *zap.Logger) *Handler {
	if maxUpload <= 0 {
		maxUpload = spreadsheet.DefaultMaxUploadSize
	}
	if maxRows <= 0 {
		maxRows = spreadsheet.DefaultMaxRows
	}
	return &Handler{DB: db, Slots: slots, MaxUpload: maxUpload, MaxRows: maxRows, Log: logger}
}

func (h *Handler) workflow() *Workflow {
	return &Workflow{Roster: assignuserstore.New(h.DB), Slots: h.Slots, Log: h.Log}
}

// ServeList handles GET /assignUsers?authenticatedUserEmail=.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	owner := normalize.Email(r.URL.Query().Get("authenticatedUserEmail"))
	if owner.IsZero() {
		apierr.Write(w, r, h.Log, apierr.Validation("Authenticated user email is required"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	users, err := assignuserstore.New(h.DB).ListByOwner(ctx, owner)
	if err != nil {
		apierr.Write(w, r, h.Log, apierr.Internal("Internal server error", err))
		return
	}
	if len(users) == 0 {
		apierr.Write(w, r, h.Log, apierr.NotFound("No users found assigned by this user"))
		return
	}
	respond.JSON(w, http.StatusOK, map[string]any{"success": true, "users": users})
}

// HandleCreate handles POST /assignUsers in single-record or bulk-file mode.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	req, derr := decodePost(w, r, h.MaxUpload)
	if derr != nil {
		apierr.Write(w, r, h.Log, derr)
		return
	}

	owner := normalize.Email(req.Owner)
	if owner.IsZero() {
		apierr.Write(w, r, h.Log, apierr.Validation("Authenticated user email is required"))
		return
	}

	switch {
	case req.singleMode():
		h.assignOne(w, r, owner, req)
	case req.bulkMode():
		h.importSheet(w, r, owner, req)
	default:
		apierr.Write(w, r, h.Log, apierr.Validation("Invalid request format"))
	}
}

func (h *Handler) assignOne(w http.ResponseWriter, r *http.Request, owner models.Email, req postRequest) {
	clicked, err := parseClicked(req.Clicked)
	if err != nil {
		apierr.Write(w, r, h.Log, apierr.Validation(err.Error()))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	created, steps, err := h.workflow().AssignOne(ctx, owner, req.Single, clicked)
	if err != nil {
		h.writeWorkflowError(w, r, err, steps)
		return
	}

	h.Log.Info("user assigned",
		zap.String("owner", owner.String()),
		zap.String("email", created.Email.String()),
		zap.Strings("decremented", clicked))
	respond.JSON(w, http.StatusCreated, map[string]any{"success": true, "newAssignUser": created})
}

func (h *Handler) importSheet(w http.ResponseWriter, r *http.Request, owner models.Email, req postRequest) {
	clicked, err := parseClicked(req.Clicked)
	if err != nil {
		apierr.Write(w, r, h.Log, apierr.Validation(err.Error()))
		return
	}

	rows, err := spreadsheet.ReadFirstSheet(req.File, spreadsheet.Options{
		MaxRows:   h.MaxRows,
		HeaderKey: normalize.HeaderKey,
	})
	if err != nil {
		apierr.Write(w, r, h.Log, apierr.Validation("Could not read spreadsheet: "+err.Error()))
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Batch(), h.Log, "roster import")
	defer cancel()

	res, steps, err := h.workflow().Import(ctx, owner, rows, clicked)
	if err != nil {
		h.writeWorkflowError(w, r, err, steps)
		return
	}

	respond.JSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"message": "Users uploaded successfully.",
		"created": res.Created,
		"skipped": res.Skipped,
		"failed":  res.Failed,
	})
}

func (h *Handler) writeWorkflowError(w http.ResponseWriter, r *http.Request, err error, steps StepLog) {
	var (
		dups    *DuplicateRowsError
		noEmail *MissingEmailError
	)
	switch {
	case errors.Is(err, ErrAlreadyAssigned), errors.Is(err, assignuserstore.ErrDuplicateEmail):
		apierr.Write(w, r, h.Log, apierr.Conflict("User already exists with this email."))
	case errors.As(err, &dups):
		apierr.Write(w, r, h.Log, apierr.Conflict("Duplicate emails in upload").
			With("success", false).
			With("duplicates", dups.Emails))
	case errors.As(err, &noEmail):
		apierr.Write(w, r, h.Log, apierr.Validation(noEmail.Error()).With("row", noEmail.Row))
	case errors.Is(err, ErrSlotUpdate):
		apierr.Write(w, r, h.Log, apierr.Upstream("Failed to update slot quantities.", err).With("steps", steps))
	default:
		e := apierr.Internal("Internal server error", err)
		if len(steps) > 0 {
			e = e.With("steps", steps)
		}
		apierr.Write(w, r, h.Log, e)
	}
}
