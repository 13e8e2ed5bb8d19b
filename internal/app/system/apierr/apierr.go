// Package apierr is the error taxonomy shared by every JSON endpoint.
//
// Handlers build an *Error with one of the constructors and hand it to Write,
// which maps the Kind to an HTTP status and renders a uniform body:
//
//	{"error": "<message>", ...extra fields}
//
// Anything that is not an *Error is treated as an internal failure: the cause
// is logged and the client only sees a generic message.
package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"
)

// Kind classifies an API error.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindConflict
	KindNotFound
	KindUpstream
)

// Status returns the HTTP status code for k.
func (k Kind) Status() int {
	switch k {
	case KindValidation:
		return http.StatusBadRequest
	case KindConflict:
		return http.StatusConflict
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindConflict:
		return "conflict"
	case KindNotFound:
		return "not_found"
	case KindUpstream:
		return "upstream"
	default:
		return "internal"
	}
}

// Error is an error with a client-facing message.
type Error struct {
	Kind    Kind
	Message string
	Err     error          // cause, logged but never sent
	Fields  map[string]any // extra JSON fields for the response body
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// With attaches an extra response field and returns e.
func (e *Error) With(key string, value any) *Error {
	if e.Fields == nil {
		e.Fields = map[string]any{}
	}
	e.Fields[key] = value
	return e
}

func Validation(msg string) *Error { return &Error{Kind: KindValidation, Message: msg} }
func Conflict(msg string) *Error   { return &Error{Kind: KindConflict, Message: msg} }
func NotFound(msg string) *Error   { return &Error{Kind: KindNotFound, Message: msg} }

// Internal wraps a storage or programming failure.
func Internal(msg string, err error) *Error {
	return &Error{Kind: KindInternal, Message: msg, Err: err}
}

// Upstream wraps a failure of an outbound dependency (payment gateway,
// slot inventory).
func Upstream(msg string, err error) *Error {
	return &Error{Kind: KindUpstream, Message: msg, Err: err}
}

// KindOf reports the Kind of err, KindInternal for foreign errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// Write renders err as a JSON error response.
func Write(w http.ResponseWriter, r *http.Request, log *zap.Logger, err error) {
	var e *Error
	if !errors.As(err, &e) {
		e = Internal("Internal server error", err)
	}

	status := e.Kind.Status()
	if status >= http.StatusInternalServerError && log != nil {
		log.Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("kind", e.Kind.String()),
			zap.Error(err))
	}

	body := make(map[string]any, len(e.Fields)+1)
	for k, v := range e.Fields {
		body[k] = v
	}
	body["error"] = e.Message

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
