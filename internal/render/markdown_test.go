package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMarkdown(t *testing.T) {
	tests := []struct {
		name        string
		in          string
		contains    []string
		notContains []string
	}{
		{
			name:     "emphasis and code",
			in:       "**bold** and *it* with `x := 1`",
			contains: []string{"<strong>bold</strong>", "<em>it</em>", "<code>x := 1</code>"},
		},
		{
			name:     "lists and headings",
			in:       "# Title\n\n- a\n- b\n\n1. one",
			contains: []string{"<h1>Title</h1>", "<ul>", "<li>a</li>", "<ol>"},
		},
		{
			name:        "raw html dropped",
			in:          "hi <script>alert(1)</script> <img src=x onerror=y>",
			notContains: []string{"<script", "<img", "onerror"},
		},
		{
			name:     "external link",
			in:       "[site](https://example.com)",
			contains: []string{`href="https://example.com"`, `target="_blank"`, "noopener", "noreferrer", "nofollow"},
		},
		{
			name:     "mailto kept",
			in:       "[mail](mailto:a@example.com)",
			contains: []string{`href="mailto:a@example.com"`},
		},
		{
			name:     "anchor kept",
			in:       "[top](#top)",
			contains: []string{`href="#top"`},
		},
		{
			name:        "javascript link removed",
			in:          "[x](javascript:alert(1))",
			notContains: []string{"javascript:"},
		},
		{
			name:        "table elements stripped",
			in:          "| a | b |\n|---|---|\n| 1 | 2 |",
			notContains: []string{"<table", "<td"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Markdown(tt.in)
			for _, want := range tt.contains {
				assert.Contains(t, got, want)
			}
			for _, bad := range tt.notContains {
				assert.NotContains(t, got, bad)
			}
		})
	}
}

func TestMarkdown_Empty(t *testing.T) {
	assert.Equal(t, "", Markdown("   \n"))
}

func TestSanitize(t *testing.T) {
	got := Sanitize(`<p onclick="x">ok</p><iframe src="https://x"></iframe>`)
	assert.Equal(t, "<p>ok</p>", strings.TrimSpace(got))
}

func TestTerminal(t *testing.T) {
	out, err := Terminal("# Heading\n\nsome **bold** text", 40, "notty")
	assert.NoError(t, err)
	assert.Contains(t, out, "Heading")
	assert.Contains(t, out, "bold")
	assert.True(t, strings.HasSuffix(out, "\n"))
}
