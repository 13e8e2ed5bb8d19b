// internal/app/features/assignusers/workflow.go
package assignusers

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/dalemusser/pooldash/internal/app/system/normalize"
	"github.com/dalemusser/pooldash/internal/app/system/spreadsheet"
	"github.com/dalemusser/pooldash/internal/domain/models"
	"go.uber.org/zap"
)

// Roster is the roster storage the workflow needs.
type Roster interface {
	ExistsByEmail(ctx context.Context, email models.Email) (bool, error)
	Create(ctx context.Context, au models.AssignUser) (models.AssignUser, error)
}

// Decrementer consumes one unit of an owner's remaining inventory for a
// skill. *slotclient.Client implements it.
type Decrementer interface {
	Decrement(ctx context.Context, owner models.Email, skill string) error
}

// Errors the handler maps to responses.
var (
	ErrAlreadyAssigned = errors.New("user already exists with this email")
	ErrSlotUpdate      = errors.New("failed to update slot quantities")
)

// DuplicateRowsError lists emails that appear more than once in an upload.
type DuplicateRowsError struct {
	Emails []string
}

func (e *DuplicateRowsError) Error() string {
	return "duplicate emails in upload: " + strings.Join(e.Emails, ", ")
}

// MissingEmailError reports a data row without an email cell. Row is
// 1-based and counts data rows only.
type MissingEmailError struct {
	Row int
}

func (e *MissingEmailError) Error() string {
	return fmt.Sprintf("row %d has no email", e.Row)
}

// Step actions and outcomes recorded in a StepLog.
const (
	ActionCreate    = "create"
	ActionDecrement = "decrement"

	StatusDone    = "done"
	StatusSkipped = "skipped"
	StatusFailed  = "failed"
)

// Step is one side effect the workflow attempted.
type Step struct {
	Action string `json:"action"`
	Target string `json:"target"`
	Status string `json:"status"`
	Detail string `json:"detail,omitempty"`
}

// StepLog records every side effect in order. Nothing is rolled back on
// failure; the log is how callers learn what was already applied.
type StepLog []Step

func (l *StepLog) add(action, target, status, detail string) {
	*l = append(*l, Step{Action: action, Target: target, Status: status, Detail: detail})
}

// Count returns how many steps have the given action and status.
func (l StepLog) Count(action, status string) int {
	n := 0
	for _, s := range l {
		if s.Action == action && s.Status == status {
			n++
		}
	}
	return n
}

// Workflow assigns people to an owner's roster and decrements the owner's
// inventory for the chosen skills.
type Workflow struct {
	Roster Roster
	Slots  Decrementer
	Log    *zap.Logger
}

// SingleInput is a one-person assignment. Skills is the raw comma-separated
// auSkills value. Extra holds the other request fields; names rejected by
// models.IsExtraField are dropped.
type SingleInput struct {
	Name   string
	Email  string
	Group  string
	Skills string
	Extra  map[string]any
}

// AssignOne creates a single roster entry and then decrements one unit per
// clicked skill, in order. The first failed decrement stops the workflow.
func (w *Workflow) AssignOne(ctx context.Context, owner models.Email, in SingleInput, clicked []string) (models.AssignUser, StepLog, error) {
	var steps StepLog
	email := normalize.Email(in.Email)

	exists, err := w.Roster.ExistsByEmail(ctx, email)
	if err != nil {
		return models.AssignUser{}, steps, fmt.Errorf("lookup %s: %w", email, err)
	}
	if exists {
		return models.AssignUser{}, steps, ErrAlreadyAssigned
	}

	au := models.NewAssignUser(normalize.Name(in.Name), email, normalize.Name(in.Group), normalize.SplitList(in.Skills), owner)
	for k, v := range in.Extra {
		if !models.IsExtraField(k) {
			continue
		}
		if au.Extra == nil {
			au.Extra = map[string]any{}
		}
		au.Extra[k] = v
	}
	created, err := w.Roster.Create(ctx, au)
	if err != nil {
		steps.add(ActionCreate, email.String(), StatusFailed, err.Error())
		return models.AssignUser{}, steps, fmt.Errorf("create %s: %w", email, err)
	}
	steps.add(ActionCreate, email.String(), StatusDone, "")

	if err := w.decrementAll(ctx, owner, clicked, &steps); err != nil {
		return created, steps, err
	}
	return created, steps, nil
}

// ImportResult summarizes a bulk upload.
type ImportResult struct {
	Created int
	Skipped int
	Failed  int
}

// Import creates a roster entry for every row of an uploaded sheet.
//
// Emails repeated within the sheet abort the whole import before anything is
// written. Emails already on any roster are skipped. A row that cannot be
// stored is logged and skipped. Every new entry gets the clicked skills, and
// each clicked skill is decremented once for the owner after all rows are
// processed.
func (w *Workflow) Import(ctx context.Context, owner models.Email, rows []spreadsheet.Row, clicked []string) (ImportResult, StepLog, error) {
	var (
		res   ImportResult
		steps StepLog
	)

	if err := checkRows(rows); err != nil {
		return res, steps, err
	}

	for i, row := range rows {
		au := rosterEntry(row, clicked, owner)
		target := au.Email.String()

		exists, err := w.Roster.ExistsByEmail(ctx, au.Email)
		if err != nil {
			w.rowFailed(i, au.Email, err)
			steps.add(ActionCreate, target, StatusFailed, err.Error())
			res.Failed++
			continue
		}
		if exists {
			steps.add(ActionCreate, target, StatusSkipped, "already assigned")
			res.Skipped++
			continue
		}
		if au.Name == "" || au.Group == "" {
			err := errors.New("name and group are required")
			w.rowFailed(i, au.Email, err)
			steps.add(ActionCreate, target, StatusFailed, err.Error())
			res.Failed++
			continue
		}
		if _, err := w.Roster.Create(ctx, au); err != nil {
			w.rowFailed(i, au.Email, err)
			steps.add(ActionCreate, target, StatusFailed, err.Error())
			res.Failed++
			continue
		}
		steps.add(ActionCreate, target, StatusDone, "")
		res.Created++
	}

	w.Log.Info("roster import processed",
		zap.String("owner", owner.String()),
		zap.Int("rows", len(rows)),
		zap.Int("created", res.Created),
		zap.Int("skipped", res.Skipped),
		zap.Int("failed", res.Failed))

	if err := w.decrementAll(ctx, owner, clicked, &steps); err != nil {
		return res, steps, err
	}
	return res, steps, nil
}

func (w *Workflow) rowFailed(i int, email models.Email, err error) {
	w.Log.Warn("roster import: row not saved",
		zap.Int("row", i+1),
		zap.String("email", email.String()),
		zap.Error(err))
}

func (w *Workflow) decrementAll(ctx context.Context, owner models.Email, clicked []string, steps *StepLog) error {
	for _, skill := range clicked {
		if err := w.Slots.Decrement(ctx, owner, skill); err != nil {
			steps.add(ActionDecrement, skill, StatusFailed, ErrSlotUpdate.Error())
			return fmt.Errorf("%w: %s: %w", ErrSlotUpdate, skill, err)
		}
		steps.add(ActionDecrement, skill, StatusDone, "")
	}
	return nil
}

// checkRows validates the sheet as a whole: every row needs an email and no
// email may appear twice. Each duplicate is reported once, in the order its
// first repeat was found.
func checkRows(rows []spreadsheet.Row) error {
	seen := make(map[models.Email]bool, len(rows))
	reported := map[models.Email]bool{}
	var dups []string

	for i, row := range rows {
		email := rowEmail(row)
		if email.IsZero() {
			return &MissingEmailError{Row: i + 1}
		}
		if !seen[email] {
			seen[email] = true
			continue
		}
		if !reported[email] {
			reported[email] = true
			dups = append(dups, email.String())
		}
	}
	if len(dups) > 0 {
		return &DuplicateRowsError{Emails: dups}
	}
	return nil
}

// normalizedRow renames the sheet headers to roster field names. When two
// headers map to the same name the one that sorts first wins.
func normalizedRow(row spreadsheet.Row) map[string]string {
	headers := make([]string, 0, len(row))
	for k := range row {
		headers = append(headers, k)
	}
	sort.Strings(headers)

	out := make(map[string]string, len(row))
	for _, h := range headers {
		k := normalize.HeaderKey(h)
		if _, ok := out[k]; !ok {
			out[k] = row[h]
		}
	}
	return out
}

func rowEmail(row spreadsheet.Row) models.Email {
	return normalize.Email(normalizedRow(row)["auEmail"])
}

// rosterEntry builds the document for one sheet row. Columns that are not
// roster fields are carried along in Extra.
func rosterEntry(row spreadsheet.Row, clicked []string, owner models.Email) models.AssignUser {
	cols := normalizedRow(row)
	skills := append([]string{}, clicked...)
	au := models.NewAssignUser(
		normalize.Name(cols["auName"]),
		normalize.Email(cols["auEmail"]),
		normalize.Name(cols["auGroup"]),
		skills,
		owner,
	)
	for k, v := range cols {
		if !models.IsExtraField(k) {
			continue
		}
		if au.Extra == nil {
			au.Extra = map[string]any{}
		}
		au.Extra[k] = v
	}
	return au
}
