package render

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// landingData returns the minimum data the landing template expects.
func landingData() *PageData {
	return &PageData{
		Title:   "Home",
		Section: "generator",
		Partial: "gallery",
		Data: map[string]any{
			"Themes":     []struct{ Value, Label string }{{"light", "Light"}, {"dark", "Dark"}},
			"Category":   "blog",
			"Categories": []struct{ ID, Label string }{{"portfolio", "Portfolio"}, {"blog", "Blog"}},
			"Demos": []struct {
				ID, Title, Description, LiveURL, RepoURL string
				Tags                                     []string
			}{
				{ID: "blog", Title: "Tech Blog", Description: "d", LiveURL: "https://a", RepoURL: "https://b", Tags: []string{"Jekyll", "SEO"}},
			},
			"Stats":     []struct{ Value, Label, Detail string }{{"$0", "Hosting Cost", "free"}},
			"SiteTypes": []struct{ Value, Label, Description string }{{"blog", "Blog Site", "x"}},
			"Stylings":  []struct{ Value, Label, Description string }{{"minimal", "Minimal", "x"}},
			"Features":  []struct{ Value, Label, Description string }{{"seo", "SEO Optimized", "x"}},
			"Steps":     nil,
		},
	}
}

// --------------------------------------------------------------------------
// TestNew: verify every template parses
// --------------------------------------------------------------------------

func TestNew(t *testing.T) {
	rn, err := New()
	if err != nil {
		t.Fatalf("New() returned error: %v", err)
	}

	for _, name := range []string{"landing", "error"} {
		if !rn.Has(name) {
			t.Errorf("expected template %q to be parsed", name)
		}
	}
	if rn.Has("base") {
		t.Error("base.html should not be registered as a separate template")
	}
}

// --------------------------------------------------------------------------
// TestPageRendering: full page render of the landing page
// --------------------------------------------------------------------------

func TestPageRendering(t *testing.T) {
	rn, err := New()
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rn.Page(w, req, "landing", landingData())

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	body := w.Body.String()

	for _, want := range []string{
		"<!DOCTYPE html>",
		`id="generator-form"`,
		`<iframe id="preview" title="Preview" sandbox>`,
		"Jekyll · SEO",
		`value="dark"`,
		`value="seo"`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("full page render should contain %q", want)
		}
	}

	if ct := w.Header().Get("Content-Type"); ct != "text/html; charset=utf-8" {
		t.Errorf("Content-Type: got %q, want %q", ct, "text/html; charset=utf-8")
	}
}

// --------------------------------------------------------------------------
// TestPartialRendering: partial requests only render the named block
// --------------------------------------------------------------------------

func TestPartialRendering(t *testing.T) {
	rn, err := New()
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/?category=blog", nil)
	req.Header.Set("HX-Request", "true")
	w := httptest.NewRecorder()
	rn.Page(w, req, "landing", landingData())

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	body := w.Body.String()

	if strings.Contains(body, "<!DOCTYPE html>") || strings.Contains(body, "generator-form") {
		t.Error("partial should contain only the gallery block")
	}
	if !strings.Contains(body, `id="demo-gallery"`) {
		t.Error("partial should contain the gallery")
	}
	if !strings.Contains(body, `class="tab is-active" href="/?category=blog#demos"`) {
		t.Errorf("active tab not marked:\n%s", body)
	}
}

func TestBytesMatchesPage(t *testing.T) {
	rn, err := New()
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	b, err := rn.Bytes("landing", landingData())
	if err != nil {
		t.Fatalf("Bytes: %v", err)
	}
	w := httptest.NewRecorder()
	rn.Page(w, httptest.NewRequest(http.MethodGet, "/", nil), "landing", landingData())

	if string(b) != w.Body.String() {
		t.Error("Bytes and Page should produce identical full pages")
	}
}

// --------------------------------------------------------------------------
// TestMissingTemplate: Page() with nonexistent template returns 500
// --------------------------------------------------------------------------

func TestMissingTemplate(t *testing.T) {
	rn, err := New()
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	w := httptest.NewRecorder()
	rn.Page(w, httptest.NewRequest(http.MethodGet, "/", nil), "nonexistent_template", &PageData{})

	if w.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "not found") {
		t.Error("error response should mention template not found")
	}

	if _, err := rn.Bytes("nonexistent_template", &PageData{}); err == nil {
		t.Error("Bytes should fail for a missing template")
	}
}

func TestErrorPage(t *testing.T) {
	rn, err := New()
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	w := httptest.NewRecorder()
	rn.Error(w, http.StatusNotFound, "Nothing <here>")

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, "Nothing &lt;here&gt;") {
		t.Error("message should be escaped")
	}
	if strings.Contains(body, "site-nav") {
		t.Error("error page should not use the base layout")
	}
}

// --------------------------------------------------------------------------
// TestIsPartialHelper: internal helper detects HX-Request header
// --------------------------------------------------------------------------

func TestIsPartialHelper(t *testing.T) {
	tests := []struct {
		name     string
		header   string
		expected bool
	}{
		{"no header", "", false},
		{"header true", "true", true},
		{"header false", "false", false},
		{"header random", "yes", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("HX-Request", tt.header)
			}
			if got := isPartial(req); got != tt.expected {
				t.Errorf("isPartial() = %v, want %v", got, tt.expected)
			}
		})
	}
}
