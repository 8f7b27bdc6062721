package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeComment(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"Plain Text", "great trip!", "great trip!"},
		{"Trims Whitespace", "  hello  ", "hello"},
		{"Strips Tags Keeps Text", "<b>bold</b> and <i>italic</i>", "bold and italic"},
		{"Removes Script Content", `before<script>alert("x")</script>after`, "beforeafter"},
		{"Removes Style Content", "<style>body{display:none}</style>visible", "visible"},
		{"Strips Anchor Keeps Label", `<a href="https://evil.example">click</a>`, "click"},
		{"Decodes Entities", "fish &amp; chips", "fish & chips"},
		{"Removes Entity Encoded Script", "&lt;script&gt;alert(1)&lt;/script&gt;", ""},
		{"Removes Double Encoded Script", "&amp;lt;script&amp;gt;alert(1)&amp;lt;/script&amp;gt;", ""},
		{"Literal Angle Brackets", "1 < 2 && 3 > 2", "1 < 2 && 3 > 2"},
		{"Unicode Preserved", "café ⛰️", "café ⛰️"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeComment(tt.input))
		})
	}
}

func TestValidateComment(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"Valid", "nice one", false},
		{"Exactly Max Length", strings.Repeat("a", 500), false},
		{"Over Max Length", strings.Repeat("a", 501), true},
		{"Max Length In Runes Not Bytes", strings.Repeat("é", 500), false},
		{"Empty", "", true},
		{"Whitespace Only", "   \n\t ", true},
		{"Markup Only", "<b></b><script>alert(1)</script>", true},
		{"Entity Encoded Markup Only", "&lt;script&gt;alert(1)&lt;/script&gt;", true},
		{"Long Input Short After Sanitize", "<p>" + strings.Repeat("x", 500) + "</p>", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clean, err := ValidateComment(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.NotEmpty(t, clean)
			}
		})
	}
}

func TestValidateComment_ReturnsSanitizedText(t *testing.T) {
	t.Parallel()
	clean, err := ValidateComment("  <b>hello</b> world  ")
	require.NoError(t, err)
	assert.Equal(t, "hello world", clean)
}
