// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package content holds the static landing page material: hero stats, the
// demo gallery, the setup guide and the theme options.
package content

import (
	"embed"
	"fmt"
	"html/template"
	"sync"

	"pagecraft/internal/markdown"
)

//go:embed guide/*.md
var guideFS embed.FS

// Stat is one hero highlight.
type Stat struct {
	Value  string
	Label  string
	Detail string
}

// Stats are shown under the hero headline.
var Stats = []Stat{
	{Value: "50+", Label: "Ready Templates", Detail: "Portfolio, blog, docs & more"},
	{Value: "$0", Label: "Hosting Cost", Detail: "Completely free with GitHub"},
	{Value: "5min", Label: "Setup Time", Detail: "From code to live website"},
}

// Category groups demos in the gallery filter.
type Category struct {
	ID    string
	Label string
}

// Categories lists the gallery filters in display order.
var Categories = []Category{
	{ID: "portfolio", Label: "Portfolio"},
	{ID: "blog", Label: "Blog"},
	{ID: "docs", Label: "Docs"},
	{ID: "landing", Label: "Landing"},
}

// Demo is a live example site.
type Demo struct {
	ID          string
	Title       string
	Description string
	Category    string // Category.ID
	Tags        []string
	LiveURL     string
	RepoURL     string
}

// demos is the full gallery in display order.
var demos = []Demo{
	{
		ID:          "portfolio",
		Title:       "Personal Portfolio",
		Description: "Showcase your work and skills with a professional portfolio site",
		Category:    "portfolio",
		Tags:        []string{"React", "Responsive", "Modern"},
		LiveURL:     "https://tailwindcss.com/",
		RepoURL:     "https://github.com/tailwindlabs/tailwindcss",
	},
	{
		ID:          "blog",
		Title:       "Tech Blog",
		Description: "Share your thoughts and expertise with a clean, readable blog",
		Category:    "blog",
		Tags:        []string{"Jekyll", "SEO", "Fast"},
		LiveURL:     "https://jekyllrb.com/",
		RepoURL:     "https://github.com/jekyll/jekyll",
	},
	{
		ID:          "docs",
		Title:       "Project Documentation",
		Description: "Create comprehensive documentation for your open source project",
		Category:    "docs",
		Tags:        []string{"VitePress", "Search", "Mobile"},
		LiveURL:     "https://vitepress.dev/",
		RepoURL:     "https://github.com/vuejs/vitepress",
	},
	{
		ID:          "landing",
		Title:       "Product Landing",
		Description: "Launch your product with a compelling landing page",
		Category:    "landing",
		Tags:        []string{"HTML", "CSS", "Optimized"},
		LiveURL:     "https://vercel.com/",
		RepoURL:     "https://github.com/vercel/vercel",
	},
}

// ValidCategory reports whether id names a gallery category.
func ValidCategory(id string) bool {
	for _, c := range Categories {
		if c.ID == id {
			return true
		}
	}
	return false
}

// Demos returns the demos in category, or all of them when category is
// empty or unknown.
func Demos(category string) []Demo {
	if !ValidCategory(category) {
		return append([]Demo(nil), demos...)
	}
	var out []Demo
	for _, d := range demos {
		if d.Category == category {
			out = append(out, d)
		}
	}
	return out
}

// Theme is a colour scheme the visitor can pick for the landing page.
type Theme struct {
	Value string
	Label string
}

// Themes lists the landing page colour schemes; the first is the default.
var Themes = []Theme{
	{Value: "light", Label: "Light"},
	{Value: "dark", Label: "Dark"},
	{Value: "blue", Label: "Blue"},
	{Value: "green", Label: "Green"},
	{Value: "purple", Label: "Purple"},
}

// Step is one stage of the setup guide.
type Step struct {
	Number      int
	Title       string
	Description string
	Body        template.HTML // rendered task list and commands
}

var stepMeta = []struct {
	title, description, file string
}{
	{"Create Repository", "Set up a new GitHub repository for your website", "guide/01-create-repository.md"},
	{"Enable GitHub Pages", "Configure your repository to use GitHub Pages", "guide/02-enable-pages.md"},
	{"Add Your Content", "Upload your website files to the repository", "guide/03-add-content.md"},
}

var (
	stepsOnce sync.Once
	steps     []Step
	stepsErr  error
)

// Steps returns the setup guide. The Markdown is rendered once and cached.
func Steps() ([]Step, error) {
	stepsOnce.Do(func() {
		steps, stepsErr = renderSteps()
	})
	return steps, stepsErr
}

func renderSteps() ([]Step, error) {
	out := make([]Step, 0, len(stepMeta))
	for i, m := range stepMeta {
		src, err := guideFS.ReadFile(m.file)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", m.file, err)
		}
		body, err := markdown.ToTemplateHTML(string(src))
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", m.file, err)
		}
		out = append(out, Step{
			Number:      i + 1,
			Title:       m.title,
			Description: m.description,
			Body:        body,
		})
	}
	return out, nil
}
