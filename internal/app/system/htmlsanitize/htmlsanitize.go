// Package htmlsanitize cleans user-submitted text before it is stored.
package htmlsanitize

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var (
	ugc    = bluemonday.UGCPolicy()
	strict = bluemonday.StrictPolicy()
)

// Sanitize keeps safe formatting markup (paragraphs, emphasis, lists, links)
// and removes scripts, event handlers and javascript: URLs.
func Sanitize(s string) string {
	if s == "" {
		return ""
	}
	return ugc.Sanitize(s)
}

// StripTags removes all markup and returns trimmed plain text. Entities that
// bluemonday escapes are decoded again so "Tom & Jerry" round-trips.
func StripTags(s string) string {
	if s == "" {
		return ""
	}
	return strings.TrimSpace(html.UnescapeString(strict.Sanitize(s)))
}
