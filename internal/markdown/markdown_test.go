package markdown

import (
	"strings"
	"testing"
)

func TestToHTML(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		contains []string
	}{
		{
			name:     "heading gets an anchor id",
			input:    "## Enable GitHub Pages",
			contains: []string{`<h2 id="enable-github-pages">Enable GitHub Pages</h2>`},
		},
		{
			name:     "task list",
			input:    "- [ ] Push your changes",
			contains: []string{`type="checkbox"`, "Push your changes"},
		},
		{
			name:     "inline code",
			input:    "Name it `username.github.io`",
			contains: []string{"<code>username.github.io</code>"},
		},
		{
			name:     "fenced code is highlighted",
			input:    "```bash\ngit push origin main\n```",
			contains: []string{"<pre", "style=", "git"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToHTML(tt.input)
			if err != nil {
				t.Fatalf("ToHTML: %v", err)
			}
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("output missing %q:\n%s", want, got)
				}
			}
		})
	}
}

func TestToHTMLDropsRawHTML(t *testing.T) {
	got, err := ToHTML("<script>alert(1)</script>\n\nText")
	if err != nil {
		t.Fatalf("ToHTML: %v", err)
	}
	if strings.Contains(got, "<script>") {
		t.Errorf("raw HTML should be omitted, got:\n%s", got)
	}
	if !strings.Contains(got, "Text") {
		t.Errorf("surrounding text lost:\n%s", got)
	}
}

func TestToTemplateHTML(t *testing.T) {
	got, err := ToTemplateHTML("**bold**")
	if err != nil {
		t.Fatalf("ToTemplateHTML: %v", err)
	}
	if !strings.Contains(string(got), "<strong>bold</strong>") {
		t.Errorf("got %q", got)
	}
}
