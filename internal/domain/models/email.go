// internal/domain/models/email.go
package models

import "strings"

// Email is the normalized (trimmed, lowercase) address every collection is
// keyed by. There is no referential integrity between collections; documents
// that share an Email belong to the same person by convention.
type Email string

// NewEmail normalizes raw into an Email. It does not validate the address.
func NewEmail(raw string) Email {
	return Email(strings.ToLower(strings.TrimSpace(raw)))
}

// String returns the address as a plain string.
func (e Email) String() string { return string(e) }

// IsZero reports whether the address is empty after normalization.
func (e Email) IsZero() bool { return e == "" }
