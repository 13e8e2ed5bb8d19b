package htmlsanitize_test

import (
	"strings"
	"testing"

	"github.com/dalemusser/pooldash/internal/app/system/htmlsanitize"
)

func TestSanitize_Empty(t *testing.T) {
	if got := htmlsanitize.Sanitize(""); got != "" {
		t.Errorf("expected empty string, got %q", got)
	}
}

func TestSanitize_SafeHTML(t *testing.T) {
	input := "<p><strong>Bold</strong> and <em>italic</em></p>"
	if got := htmlsanitize.Sanitize(input); got != input {
		t.Errorf("expected safe HTML preserved, got %q", got)
	}
}

func TestSanitize_RemovesScript(t *testing.T) {
	got := htmlsanitize.Sanitize("<p>Hello</p><script>alert('xss')</script>")
	if got != "<p>Hello</p>" {
		t.Errorf("expected script removed, got %q", got)
	}
}

func TestSanitize_RemovesJavascriptHref(t *testing.T) {
	got := htmlsanitize.Sanitize(`<a href="javascript:alert('xss')">Click</a>`)
	if strings.Contains(got, "javascript:") {
		t.Errorf("expected javascript: href removed, got %q", got)
	}
}

func TestStripTags(t *testing.T) {
	tests := []struct {
		name, in, want string
	}{
		{"plain", "app crashes on login", "app crashes on login"},
		{"markup", "<b>slot</b> count <i>wrong</i>", "slot count wrong"},
		{"script", "hi<script>alert(1)</script>", "hi"},
		{"entities", "Tom & Jerry", "Tom & Jerry"},
		{"whitespace", "  <p>padded</p>  ", "padded"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := htmlsanitize.StripTags(tt.in); got != tt.want {
				t.Errorf("StripTags(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
