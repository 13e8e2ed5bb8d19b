// internal/app/features/users/create.go
package users

import (
	"context"
	"errors"
	"net/http"
	"strings"

	userstore "github.com/dalemusser/pooldash/internal/app/store/users"
	"github.com/dalemusser/pooldash/internal/app/system/apierr"
	"github.com/dalemusser/pooldash/internal/app/system/normalize"
	"github.com/dalemusser/pooldash/internal/app/system/respond"
	"github.com/dalemusser/pooldash/internal/app/system/timeouts"
	"github.com/dalemusser/pooldash/internal/domain/models"
	"go.uber.org/zap"
)

// missingFields lists the required account fields that are empty.
func missingFields(u models.User) []string {
	var missing []string
	check := func(name string, empty bool) {
		if empty {
			missing = append(missing, name)
		}
	}
	check("fullName", u.FullName == "")
	check("email", u.Email.IsZero())
	check("number", u.Number == 0)
	check("poolForCreator", u.PoolForCreator == "")
	check("organization", u.Organization == "")
	check("designation", u.Designation == "")
	check("state", u.State == "")
	check("city", u.City == "")
	return missing
}

// HandleCreate handles POST /users.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var u models.User
	if err := respond.DecodeJSON(r, &u); err != nil {
		apierr.Write(w, r, h.Log, apierr.Validation("Invalid JSON body"))
		return
	}
	u.Email = normalize.Email(u.Email.String())
	u.FullName = normalize.Name(u.FullName)

	if missing := missingFields(u); len(missing) > 0 {
		apierr.Write(w, r, h.Log,
			apierr.Validation("Missing required fields: "+strings.Join(missing, ", ")).With("fields", missing))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	created, err := userstore.New(h.DB).Create(ctx, u)
	if errors.Is(err, userstore.ErrDuplicateEmail) {
		apierr.Write(w, r, h.Log, apierr.Validation("A user with this email already exists"))
		return
	}
	if err != nil {
		apierr.Write(w, r, h.Log, apierr.Internal("Internal server error", err))
		return
	}

	h.Log.Info("user created", zap.String("email", created.Email.String()))
	respond.JSON(w, http.StatusOK, map[string]any{
		"message": "User created successfully",
		"user":    created,
	})
}
