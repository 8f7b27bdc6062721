// Package validation provides input validation utilities
package validation

import (
	"fmt"
	"html"
	"strings"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"
)

const (
	// MinCommentLen and MaxCommentLen bound the comment text in runes,
	// measured after sanitization.
	MinCommentLen = 1
	MaxCommentLen = 500
)

// commentPolicy is a strict allow-list: no tags survive, and the contents of
// script and style elements are removed entirely rather than unwrapped.
var commentPolicy = bluemonday.StrictPolicy()

// SanitizeComment reduces raw comment input to plain text. Entities are
// decoded before sanitizing so encoded markup cannot ride through the
// sanitizer as inert text and reappear as live markup after decoding; then
// tags are stripped and the sanitizer's own re-escaping is undone. Rendering
// back to HTML is the client's concern.
func SanitizeComment(raw string) string {
	// Decode until stable: &amp;lt; takes two passes to become <. Every
	// entity decodes to something shorter, so this terminates.
	decoded := raw
	for {
		next := html.UnescapeString(decoded)
		if next == decoded {
			break
		}
		decoded = next
	}

	clean := commentPolicy.Sanitize(decoded)
	clean = html.UnescapeString(clean)
	return strings.TrimSpace(clean)
}

// ValidateComment sanitizes raw comment input and enforces the length bounds
// on the sanitized result. It returns the text to persist.
func ValidateComment(raw string) (string, error) {
	clean := SanitizeComment(raw)

	length := utf8.RuneCountInString(clean)
	if length < MinCommentLen {
		return "", fmt.Errorf("comment must not be empty")
	}
	if length > MaxCommentLen {
		return "", fmt.Errorf("comment must not exceed %d characters", MaxCommentLen)
	}

	return clean, nil
}
