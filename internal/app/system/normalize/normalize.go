// Package normalize cleans request input at the HTTP boundary.
package normalize

import (
	"net/url"
	"strings"

	"github.com/dalemusser/pooldash/internal/domain/models"
)

// Email trims and lowercases an address.
func Email(s string) models.Email {
	return models.NewEmail(s)
}

// Name trims surrounding whitespace and keeps case.
func Name(s string) string {
	return strings.TrimSpace(s)
}

// QueryParam trims a query-string value.
func QueryParam(s string) string {
	return strings.TrimSpace(s)
}

// SplitList splits a comma-separated value, trimming each part. Empty parts
// are kept so "a,,b" yields three entries, matching what the dashboard sends.
func SplitList(s string) []string {
	parts := strings.Split(s, ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}

// HeaderKey lowercases a spreadsheet column header and maps the three roster
// columns to their document field names. Other headers pass through
// lowercased.
func HeaderKey(h string) string {
	k := strings.ToLower(strings.TrimSpace(h))
	switch k {
	case "name":
		return "auName"
	case "email":
		return "auEmail"
	case "group":
		return "auGroup"
	}
	return k
}

// PathEmail normalizes an email taken from a URL path segment, undoing any
// percent-encoding the client applied.
func PathEmail(raw string) models.Email {
	if s, err := url.PathUnescape(raw); err == nil {
		raw = s
	}
	return models.NewEmail(raw)
}
