// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package generator

import (
	"fmt"
	"strings"
	"text/template"

	"pagecraft/internal/models"
	"pagecraft/internal/synth"
)

// SystemPrompt is sent with every remote attempt.
const SystemPrompt = `You are a senior front-end developer who writes static sites for GitHub Pages.
You always answer with one complete, self-contained HTML5 document: inline CSS, no external
stylesheets, fonts, images or scripts, and no explanations or markdown fences around the code.`

// featureClauses are the extra requirement lines added for each selected
// feature. They mirror what the local synthesizer emits.
var featureClauses = map[models.Feature]string{
	models.FeatureResponsive:   "Mobile-responsive design with a max-width: 768px media query",
	models.FeatureDarkMode:     "CSS variables for light and dark themes plus a fixed theme-toggle button that toggles a dark class on the root element",
	models.FeatureContactForm:  "Working contact form with name, email and message fields and HTML5 validation",
	models.FeatureAnalytics:    "Google Analytics integration placeholder script at the end of the body",
	models.FeatureSEO:          "SEO meta tags (description, keywords, Open Graph, Twitter card) and JSON-LD structured data",
	models.FeatureBlogSupport:  "A blog feed section listing recent posts written in Markdown",
	models.FeatureShoppingCart: "A shopping cart summary with item count and checkout link",
	models.FeatureSearch:       "A client-side site search box",
	models.FeatureUserAuth:     "A sign-in form placeholder with email and password fields",
	models.FeatureCMS:          "An edit-this-page bar for a headless CMS",
}

type promptData struct {
	Type     string
	Name     string
	Styling  string
	Features string
	Clauses  []string
}

var fullPrompt = template.Must(template.New("full").Parse(
	`Generate a complete, production-ready HTML template for a {{.Type}} website with the following specifications:

Site Name: {{.Name}}
Type: {{.Type}}
Styling Theme: {{.Styling}}
Features: {{.Features}}

Requirements:
- Complete HTML5 structure with proper semantic elements
- Inline CSS with modern styling (flexbox/grid, clean typography)
- Include placeholder content appropriate for a {{.Type}}
{{- range .Clauses}}
- {{.}}
{{- end}}
- Clean, {{.Styling}} design aesthetic
- Production-ready code that can be deployed immediately to GitHub Pages

Return only the complete HTML code without any explanations or markdown formatting.
`))

var simplePrompt = template.Must(template.New("simple").Parse(
	`Create a simple single-file HTML page for a {{.Type}} website named "{{.Name}}" with a {{.Styling}} look.
Include: {{.Features}}.
Use inline CSS only. Return only the HTML.
`))

// BuildPrompt renders the full generation prompt for cfg.
func BuildPrompt(cfg models.TemplateConfig) (string, error) {
	return render(fullPrompt, newPromptData(cfg))
}

// BuildSimplePrompt renders the shorter prompt used by the retry tier.
func BuildSimplePrompt(cfg models.TemplateConfig) (string, error) {
	return render(simplePrompt, newPromptData(cfg))
}

func newPromptData(cfg models.TemplateConfig) promptData {
	name := strings.TrimSpace(cfg.Name)
	if name == "" {
		name = synth.DefaultName
	}
	styling := string(cfg.Styling)
	if styling == "" {
		styling = "clean"
	}

	names := cfg.FeatureNames()
	features := strings.Join(names, ", ")
	if features == "" {
		features = "none"
	}

	var clauses []string
	for _, n := range names {
		clauses = append(clauses, featureClauses[models.Feature(n)])
	}

	return promptData{
		Type:     string(cfg.Type),
		Name:     name,
		Styling:  styling,
		Features: features,
		Clauses:  clauses,
	}
}

func render(t *template.Template, data promptData) (string, error) {
	var sb strings.Builder
	if err := t.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("render %s prompt: %w", t.Name(), err)
	}
	return sb.String(), nil
}
