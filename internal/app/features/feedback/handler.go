// internal/app/features/feedback/handler.go
package feedback

import (
	"context"
	"net/http"

	feedbackstore "github.com/dalemusser/pooldash/internal/app/store/feedback"
	"github.com/dalemusser/pooldash/internal/app/system/apierr"
	"github.com/dalemusser/pooldash/internal/app/system/normalize"
	"github.com/dalemusser/pooldash/internal/app/system/respond"
	"github.com/dalemusser/pooldash/internal/app/system/timeouts"
	"github.com/dalemusser/pooldash/internal/domain/models"
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
	UserEmail              string  `json:"userEmail"`
	SelectedEmoji          *int    `json:"selectedEmoji"`
	FormType               *string `json:"formType"`
	SelectedEmojiFeedback2 *int    `json:"selectedEmojiFeedback2"`
	SelectedEmojiFeedback3 *int    `json:"selectedEmojiFeedback3"`
}

// toFeedback picks the rating field that belongs to the form type. form1
// (or no form type) stores no formType on the document.
func (req submitRequest) toFeedback() (models.Feedback, error) {
	f := models.Feedback{UserEmail: normalize.Email(req.UserEmail)}
	if f.UserEmail.IsZero() {
		return f, apierr.Validation("userEmail is required")
	}

	form := models.FormType1
	if req.FormType != nil {
		form = *req.FormType
	}

	var rating *int
	switch form {
	case models.FormType1:
		rating = req.SelectedEmoji
	case models.FormType2:
		rating = req.SelectedEmojiFeedback2
		f.FormType = form
	case models.FormType3:
		rating = req.SelectedEmojiFeedback3
		f.FormType = form
	default:
		return f, apierr.Validation("formType must be form1, form2 or form3")
	}

	if rating == nil {
		field := map[string]string{
			models.FormType1: "selectedEmoji",
			models.FormType2: "selectedEmojiFeedback2",
			models.FormType3: "selectedEmojiFeedback3",
		}[form]
		return f, apierr.Validation(field + " is required for " + form)
	}
	f.SelectedEmoji = *rating
	return f, nil
}

// HandleSubmit handles POST /api/feedback.
func (h *Handler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	var req submitRequest
	if err := respond.DecodeJSON(r, &req); err != nil {
		apierr.Write(w, r, h.Log, apierr.Validation("Invalid JSON body"))
		return
	}
	f, err := req.toFeedback()
	if err != nil {
		apierr.Write(w, r, h.Log, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if _, err := feedbackstore.New(h.DB).Create(ctx, f); err != nil {
		apierr.Write(w, r, h.Log, apierr.Internal("Internal server error", err))
		return
	}
	respond.Message(w, http.StatusOK, "Feedback submitted successfully")
}
