// internal/app/features/users/update.go
package users

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	userstore "github.com/dalemusser/pooldash/internal/app/store/users"
	"github.com/dalemusser/pooldash/internal/app/system/apierr"
	"github.com/dalemusser/pooldash/internal/app/system/normalize"
	"github.com/dalemusser/pooldash/internal/app/system/respond"
	"github.com/dalemusser/pooldash/internal/app/system/timeouts"
	"github.com/dalemusser/pooldash/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

type decodeFunc func(json.RawMessage) (any, error)

func decodeAs[T any](raw json.RawMessage) (any, error) {
	var v T
	err := json.Unmarshal(raw, &v)
	return v, err
}

// updatable maps each flat field a PATCH may write to its decoder.
var updatable = map[string]decodeFunc{
	"fullName":       decodeAs[string],
	"number":         decodeAs[int64],
	"poolForCreator": decodeAs[string],
	"organization":   decodeAs[string],
	"designation":    decodeAs[string],
	"state":          decodeAs[string],
	"city":           decodeAs[string],
	"linkdeInURL":    decodeAs[string],
	"status":         decodeAs[[]string],
	"group":          decodeAs[[]string],
	"invoices":       decodeAs[[]string],

	"totalPurchasedUsers":  decodeAs[int],
	"slotsAvailable":       decodeAs[int],
	"totalAssignedPlayers": decodeAs[int],
	"totalWIP":             decodeAs[int],
	"totalAmountPaid":      decodeAs[float64],
	"cartTotalAmount":      decodeAs[float64],

	"totalInactive":            decodeAs[bool],
	"totalChatting":            decodeAs[bool],
	"totalFinishedGame":        decodeAs[bool],
	"yesToLevelNotification":   decodeAs[bool],
	"yesToProductUpdate":       decodeAs[bool],
	"yesToSubscribeNewsletter": decodeAs[bool],
}

// buildUserSet turns a PATCH body into $set paths. Keys that are absent or
// null are left alone; the cart is merged per counter.
func buildUserSet(body map[string]json.RawMessage) (bson.M, []string, error) {
	set := bson.M{}
	var ignored []string

	for key, raw := range body {
		if string(raw) == "null" {
			continue
		}
		switch key {
		case "email":
			var s string
			if err := json.Unmarshal(raw, &s); err != nil {
				return nil, nil, fmt.Errorf("email must be a string")
			}
			email := normalize.Email(s)
			if email.IsZero() {
				return nil, nil, fmt.Errorf("email must not be empty")
			}
			set["email"] = email
		case "cartAddedProducts":
			if err := addCartFields(set, raw); err != nil {
				return nil, nil, err
			}
		default:
			dec, ok := updatable[key]
			if !ok {
				ignored = append(ignored, key)
				continue
			}
			v, err := dec(raw)
			if err != nil {
				return nil, nil, fmt.Errorf("%s has the wrong type", key)
			}
			set[key] = v
		}
	}
	return set, ignored, nil
}

func addCartFields(set bson.M, raw json.RawMessage) error {
	var cart map[string]json.RawMessage
	if err := json.Unmarshal(raw, &cart); err != nil {
		return fmt.Errorf("cartAddedProducts must be an object")
	}
	patch, err := models.ParseCountersPatch(cart, "paymentStatus")
	if err != nil {
		return err
	}
	for k, v := range patch.SetFields("cartAddedProducts") {
		set[k] = v
	}
	if ps, ok := cart["paymentStatus"]; ok && string(ps) != "null" {
		var list []string
		if err := json.Unmarshal(ps, &list); err != nil {
			return fmt.Errorf("cartAddedProducts.paymentStatus must be a list of strings")
		}
		set["cartAddedProducts.paymentStatus"] = list
	}
	return nil
}

// HandleUpdate handles PATCH /users/{email}.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	email := normalize.PathEmail(chi.URLParam(r, "email"))
	if email.IsZero() {
		apierr.Write(w, r, h.Log, apierr.Validation("Email is required"))
		return
	}

	var body map[string]json.RawMessage
	if err := respond.DecodeJSON(r, &body); err != nil {
		apierr.Write(w, r, h.Log, apierr.Validation("Invalid JSON body"))
		return
	}
	set, ignored, err := buildUserSet(body)
	if err != nil {
		apierr.Write(w, r, h.Log, apierr.Validation(err.Error()))
		return
	}
	if len(ignored) > 0 {
		h.Log.Debug("user update: ignoring unknown fields", zap.Strings("fields", ignored))
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	u, err := userstore.New(h.DB).Update(ctx, email, set)
	switch {
	case errors.Is(err, userstore.ErrNotFound):
		apierr.Write(w, r, h.Log, apierr.NotFound("User not found"))
		return
	case errors.Is(err, userstore.ErrDuplicateEmail):
		apierr.Write(w, r, h.Log, apierr.Validation("A user with this email already exists"))
		return
	case err != nil:
		apierr.Write(w, r, h.Log, apierr.Internal("Internal server error", err))
		return
	}

	respond.JSON(w, http.StatusOK, map[string]any{
		"message": "User updated successfully",
		"user":    u,
	})
}
