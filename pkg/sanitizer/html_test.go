package sanitizer_test

import (
	"testing"

	"github.com/microcosm-cc/bluemonday"
	"github.com/stretchr/testify/assert"

	"github.com/anvilweb/anvil/pkg/sanitizer"
)

func TestStripHTML(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "strips script injection",
			input:    `<p>Hello</p><script>alert('xss')</script>`,
			expected: "Hello",
		},
		{
			name:     "strips all HTML tags",
			input:    `<p>Hello <strong>world</strong></p>`,
			expected: "Hello world",
		},
		{
			name:     "strips event handlers",
			input:    `<img src="x" onerror="alert('xss')">`,
			expected: "",
		},
		{
			name:     "strips javascript URLs",
			input:    `<a href="javascript:alert('xss')">click</a>`,
			expected: "click",
		},
		{
			name:     "handles plain text",
			input:    "normal text without HTML",
			expected: "normal text without HTML",
		},
		{
			name:     "handles empty string",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, sanitizer.StripHTML(tt.input))
		})
	}
}

func TestSanitizeHTML(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "keeps basic formatting",
			input:    `<p>Hello <strong>world</strong></p>`,
			expected: `<p>Hello <strong>world</strong></p>`,
		},
		{
			name:     "strips scripts",
			input:    `<p>ok</p><script>alert(1)</script>`,
			expected: `<p>ok</p>`,
		},
		{
			name:     "strips event handlers",
			input:    `<p onclick="alert(1)">click</p>`,
			expected: `<p>click</p>`,
		},
		{
			name:     "keeps lists",
			input:    `<ul><li>a</li><li>b</li></ul>`,
			expected: `<ul><li>a</li><li>b</li></ul>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, sanitizer.SanitizeHTML(tt.input))
		})
	}
}

func TestSanitizeHTMLCustom(t *testing.T) {
	t.Parallel()

	t.Run("nil policy returns input unchanged", func(t *testing.T) {
		t.Parallel()
		input := `<script>alert(1)</script>`
		assert.Equal(t, input, sanitizer.SanitizeHTMLCustom(input, nil))
	})

	t.Run("custom policy applies", func(t *testing.T) {
		t.Parallel()
		policy := bluemonday.StrictPolicy()
		assert.Equal(t, "text", sanitizer.SanitizeHTMLCustom("<b>text</b>", policy))
	})
}
