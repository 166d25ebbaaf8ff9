// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package synth builds a complete static site entry page from a template
// configuration without any remote calls. It is the last generation tier
// and therefore must never fail: every configuration, including the empty
// one, maps to a well-formed, self-contained HTML document.
//
// The document is assembled from fixed fragments keyed by site type and
// feature id. A fragment is emitted only when its type or feature is
// selected, so the output never carries markup for unselected options.
package synth

import (
	"encoding/json"
	"fmt"
	"html"
	"strings"

	"pagecraft/internal/models"
)

// DefaultName is used for the title and header when the site name is blank.
const DefaultName = "My GitHub Pages Site"

// page carries the already-escaped values fragments interpolate.
type page struct {
	Name    string // HTML-escaped site name
	RawName string // unescaped, for JSON contexts
	Type    models.SiteType
	Styling string // styling label, "default" when unselected
}

// Synthesize renders cfg into a full HTML document. It is pure and total.
func Synthesize(cfg models.TemplateConfig) string {
	name := strings.TrimSpace(cfg.Name)
	if name == "" {
		name = DefaultName
	}
	styling := string(cfg.Styling)
	if !models.ValidStyling(cfg.Styling) {
		styling = "default"
	}
	p := page{
		Name:    html.EscapeString(name),
		RawName: name,
		Type:    cfg.Type,
		Styling: styling,
	}

	var b strings.Builder
	b.Grow(8 * 1024)

	b.WriteString("<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n")
	b.WriteString("    <meta charset=\"UTF-8\">\n")
	b.WriteString("    <meta name=\"viewport\" content=\"width=device-width, initial-scale=1.0\">\n")
	b.WriteString("    <title>" + p.Name + "</title>\n")
	if cfg.Has(models.FeatureSEO) {
		b.WriteString(seoMeta(p))
	}
	b.WriteString("    <style>\n")
	b.WriteString(baseStyle(p))
	if cfg.Has(models.FeatureDarkMode) {
		b.WriteString(darkModeStyle)
	}
	if cfg.Has(models.FeatureResponsive) {
		b.WriteString(responsiveStyle)
	}
	if cfg.Has(models.FeatureDarkMode) {
		b.WriteString(themeToggleStyle)
	}
	for _, f := range featureSections {
		if cfg.Has(f.feature) && f.style != "" {
			b.WriteString(f.style)
		}
	}
	b.WriteString("    </style>\n</head>\n")

	if cfg.Styling != "" && models.ValidStyling(cfg.Styling) {
		b.WriteString("<body class=\"style-" + string(cfg.Styling) + "\">\n")
	} else {
		b.WriteString("<body>\n")
	}
	if cfg.Has(models.FeatureDarkMode) {
		b.WriteString(themeToggleButton)
	}
	if cfg.Has(models.FeatureCMS) {
		b.WriteString(cmsBar(p))
	}

	b.WriteString("    <div class=\"container\">\n")
	b.WriteString("        <header>\n")
	b.WriteString("            <h1>" + p.Name + "</h1>\n")
	if tagline := taglines[cfg.Type]; tagline != "" {
		b.WriteString("            <p class=\"tagline\">" + tagline + "</p>\n")
	}
	b.WriteString("        </header>\n")

	b.WriteString("        <main>\n")
	if section, ok := typeSections[cfg.Type]; ok {
		b.WriteString(section(p))
	}
	for _, f := range featureSections {
		if cfg.Has(f.feature) && f.body != nil {
			b.WriteString(f.body(p))
		}
	}
	b.WriteString("        </main>\n")

	b.WriteString("        <footer>\n")
	b.WriteString("            <p>&copy; " + p.Name + ". Published with GitHub Pages.</p>\n")
	b.WriteString("        </footer>\n")
	b.WriteString("    </div>\n")

	if cfg.Has(models.FeatureAnalytics) {
		b.WriteString(analyticsScript)
	}
	b.WriteString("</body>\n</html>\n")

	return b.String()
}

// Tagline returns the one-line header tagline for a site type, or "" when
// the type is unset or unknown.
func Tagline(t models.SiteType) string {
	return taglines[t]
}

var taglines = map[models.SiteType]string{
	models.SiteTypePortfolio: "Designer, developer and maker of things.",
	models.SiteTypeBlog:      "Thoughts, notes and stories worth sharing.",
	models.SiteTypeDocs:      "Everything you need to get up and running.",
	models.SiteTypeLanding:   "The simplest way to launch your next idea.",
	models.SiteTypeEcommerce: "Handpicked products, shipped with care.",
	models.SiteTypeResume:    "Experience, skills and selected work.",
	models.SiteTypeWiki:      "A growing, linked knowledge base.",
}

// palette holds the per-styling font stack and accent colour.
type palette struct {
	font   string
	accent string
	radius string
}

var palettes = map[string]palette{
	"default":                      {font: "-apple-system, BlinkMacSystemFont, 'Segoe UI', sans-serif", accent: "#2563eb", radius: "8px"},
	string(models.StylingMinimal):  {font: "-apple-system, BlinkMacSystemFont, 'Helvetica Neue', sans-serif", accent: "#111827", radius: "2px"},
	string(models.StylingModern):   {font: "'Inter', system-ui, sans-serif", accent: "#6366f1", radius: "12px"},
	string(models.StylingClassic):  {font: "Georgia, 'Times New Roman', serif", accent: "#1e3a5f", radius: "4px"},
	string(models.StylingCreative): {font: "'Trebuchet MS', 'Avenir Next', sans-serif", accent: "#db2777", radius: "20px"},
}

func baseStyle(p page) string {
	pal := palettes[p.Styling]
	return "        /* " + p.Styling + " styling */\n" +
		"        body {\n" +
		"            font-family: " + pal.font + ";\n" +
		"            margin: 0;\n" +
		"            padding: 20px;\n" +
		"            line-height: 1.6;\n" +
		"            background: #fff;\n" +
		"            color: #1a1a1a;\n" +
		"        }\n" +
		"        .container { max-width: 1200px; margin: 0 auto; }\n" +
		"        header { padding: 2rem 0; border-bottom: 2px solid " + pal.accent + "; margin-bottom: 2rem; }\n" +
		"        .tagline { color: #6b7280; margin: 0; }\n" +
		"        a { color: " + pal.accent + "; }\n" +
		"        section { margin-bottom: 2.5rem; }\n" +
		"        .grid { display: grid; grid-template-columns: repeat(auto-fit, minmax(240px, 1fr)); gap: 1rem; }\n" +
		"        .card { border: 1px solid #e5e7eb; border-radius: " + pal.radius + "; padding: 1rem; }\n" +
		"        button, .button { background: " + pal.accent + "; color: #fff; border: 0; border-radius: " + pal.radius + "; padding: 0.6rem 1.2rem; cursor: pointer; text-decoration: none; display: inline-block; }\n" +
		"        footer { border-top: 1px solid #e5e7eb; margin-top: 3rem; padding-top: 1rem; color: #6b7280; font-size: 0.9rem; }\n"
}

const darkModeStyle = `        :root {
            --bg-color: #ffffff;
            --text-color: #1a1a1a;
            --card-bg: #f9fafb;
            --border-color: #e5e7eb;
        }
        :root.dark {
            --bg-color: #0f172a;
            --text-color: #e2e8f0;
            --card-bg: #1e293b;
            --border-color: #334155;
        }
        body { background: var(--bg-color); color: var(--text-color); transition: background 0.2s, color 0.2s; }
        .card { background: var(--card-bg); border-color: var(--border-color); }
`

const responsiveStyle = `        @media (max-width: 768px) {
            body { padding: 10px; }
            .container { padding: 10px; }
            .grid { grid-template-columns: 1fr; }
            header { padding: 1rem 0; }
            nav ul { flex-direction: column; }
        }
`

const themeToggleStyle = `        .theme-toggle {
            position: fixed;
            top: 1rem;
            right: 1rem;
            z-index: 100;
        }
`

const themeToggleButton = `    <button class="theme-toggle" type="button" aria-label="Toggle dark mode" onclick="document.documentElement.classList.toggle('dark')">Toggle theme</button>
`

const analyticsScript = `    <script data-feature="analytics">
        /* Google Analytics placeholder: replace G-XXXXXXXXXX with your measurement ID. */
        window.dataLayer = window.dataLayer || [];
        function gtag(){ dataLayer.push(arguments); }
        gtag('js', new Date());
        gtag('config', 'G-XXXXXXXXXX');
    </script>
`

func seoMeta(p page) string {
	kind := string(p.Type)
	if !models.ValidSiteType(p.Type) {
		kind = "personal"
	}
	desc := p.Name + " - a " + kind + " site published with GitHub Pages."

	meta := "    <meta name=\"description\" content=\"" + desc + "\">\n" +
		"    <meta name=\"keywords\" content=\"" + kind + ", github pages, static site\">\n" +
		"    <meta property=\"og:title\" content=\"" + p.Name + "\">\n" +
		"    <meta property=\"og:description\" content=\"" + desc + "\">\n" +
		"    <meta property=\"og:type\" content=\"website\">\n" +
		"    <meta name=\"twitter:card\" content=\"summary\">\n"

	ld, err := jsonLD(p.RawName)
	if err != nil {
		// Synthesize is total: the page ships without structured data.
		return meta
	}
	return meta + "    <script type=\"application/ld+json\">" + ld + "</script>\n"
}

// jsonLD returns the schema.org WebSite record for name. json.Marshal
// escapes <, > and &, so the result is safe inside a script element.
func jsonLD(name string) (string, error) {
	ld, err := json.Marshal(map[string]string{
		"@context": "https://schema.org",
		"@type":    "WebSite",
		"name":     name,
	})
	if err != nil {
		return "", fmt.Errorf("marshal json-ld: %w", err)
	}
	return string(ld), nil
}
