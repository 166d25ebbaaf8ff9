// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package models defines the generator's domain types: the template
// configuration a visitor builds up in the generator panel, and the fixed
// catalogs of site types, styling presets and features it draws from.
package models

import (
	"errors"
	"slices"
)

// ErrUnknownFeature is returned when a feature id is not in the catalog.
var ErrUnknownFeature = errors.New("models: unknown feature")

// SiteType selects the type-specific main content of a generated site.
type SiteType string

const (
	SiteTypePortfolio SiteType = "portfolio"
	SiteTypeBlog      SiteType = "blog"
	SiteTypeDocs      SiteType = "docs"
	SiteTypeLanding   SiteType = "landing"
	SiteTypeEcommerce SiteType = "ecommerce"
	SiteTypeResume    SiteType = "resume"
	SiteTypeWiki      SiteType = "wiki"
)

// Styling is the visual preset applied to a generated site.
type Styling string

const (
	StylingMinimal  Styling = "minimal"
	StylingModern   Styling = "modern"
	StylingClassic  Styling = "classic"
	StylingCreative Styling = "creative"
)

// Feature identifies an optional capability of a generated site.
type Feature string

const (
	FeatureResponsive  Feature = "responsive"
	FeatureDarkMode    Feature = "dark-mode"
	FeatureContactForm Feature = "contact-form"
	FeatureAnalytics   Feature = "analytics"
	FeatureSEO         Feature = "seo"
	FeatureBlogSupport Feature = "blog-support"

	// Extended catalog.
	FeatureShoppingCart Feature = "shopping-cart"
	FeatureSearch       Feature = "search"
	FeatureUserAuth     Feature = "user-auth"
	FeatureCMS          Feature = "cms"
)

// Option describes a selectable catalog entry for display in the panel.
type Option struct {
	Value       string `json:"value"`
	Label       string `json:"label"`
	Description string `json:"description"`
}

// SiteTypes lists the site types in display order.
var SiteTypes = []Option{
	{Value: string(SiteTypePortfolio), Label: "Personal Portfolio", Description: "Showcase your work and skills"},
	{Value: string(SiteTypeBlog), Label: "Blog Site", Description: "Share articles and thoughts"},
	{Value: string(SiteTypeDocs), Label: "Documentation", Description: "Project or API documentation"},
	{Value: string(SiteTypeLanding), Label: "Landing Page", Description: "Product or service landing page"},
	{Value: string(SiteTypeEcommerce), Label: "Online Store", Description: "Sell a handful of products"},
	{Value: string(SiteTypeResume), Label: "Resume / CV", Description: "A one-page professional profile"},
	{Value: string(SiteTypeWiki), Label: "Wiki", Description: "Linked knowledge-base articles"},
}

// Stylings lists the styling presets in display order.
var Stylings = []Option{
	{Value: string(StylingMinimal), Label: "Minimal", Description: "Clean and simple design"},
	{Value: string(StylingModern), Label: "Modern", Description: "Contemporary with animations"},
	{Value: string(StylingClassic), Label: "Classic", Description: "Traditional and professional"},
	{Value: string(StylingCreative), Label: "Creative", Description: "Bold and artistic"},
}

// Features is the feature catalog in display order. Only ids listed here
// may appear in a TemplateConfig.
var Features = []Option{
	{Value: string(FeatureResponsive), Label: "Responsive Design", Description: "Mobile-friendly layout"},
	{Value: string(FeatureDarkMode), Label: "Dark Mode Toggle", Description: "Theme switching capability"},
	{Value: string(FeatureContactForm), Label: "Contact Form", Description: "Contact form with validation"},
	{Value: string(FeatureAnalytics), Label: "Google Analytics", Description: "Built-in analytics tracking"},
	{Value: string(FeatureSEO), Label: "SEO Optimized", Description: "Meta tags and structured data"},
	{Value: string(FeatureBlogSupport), Label: "Blog Support", Description: "Markdown blog posts"},
	{Value: string(FeatureShoppingCart), Label: "Shopping Cart", Description: "Cart summary for store pages"},
	{Value: string(FeatureSearch), Label: "Site Search", Description: "Client-side search box"},
	{Value: string(FeatureUserAuth), Label: "User Accounts", Description: "Sign-in form placeholder"},
	{Value: string(FeatureCMS), Label: "CMS Integration", Description: "Edit-this-page bar for a headless CMS"},
}

// ValidSiteType reports whether t is one of the seven site types.
func ValidSiteType(t SiteType) bool {
	for _, o := range SiteTypes {
		if o.Value == string(t) {
			return true
		}
	}
	return false
}

// ValidStyling reports whether s is a known styling preset.
func ValidStyling(s Styling) bool {
	for _, o := range Stylings {
		if o.Value == string(s) {
			return true
		}
	}
	return false
}

// ValidFeature reports whether f is in the feature catalog.
func ValidFeature(f Feature) bool {
	for _, o := range Features {
		if o.Value == string(f) {
			return true
		}
	}
	return false
}

// TemplateConfig is the unit of user intent: everything the generator needs
// to produce a document. Features is a set; order carries no meaning.
type TemplateConfig struct {
	Type     SiteType  `json:"type"`
	Name     string    `json:"name"`
	Features []Feature `json:"features"`
	Styling  Styling   `json:"styling"`
}

// EmptyConfig returns the canonical all-empty configuration.
func EmptyConfig() TemplateConfig {
	return TemplateConfig{Features: []Feature{}}
}

// Has reports whether f is selected.
func (c TemplateConfig) Has(f Feature) bool {
	return slices.Contains(c.Features, f)
}

// CanGenerate reports whether the config selects a known site type.
func (c TemplateConfig) CanGenerate() bool {
	return ValidSiteType(c.Type)
}

// WithFeature returns a copy of c with f selected. Unknown ids are rejected
// and the config is returned unchanged.
func (c TemplateConfig) WithFeature(f Feature) (TemplateConfig, error) {
	if !ValidFeature(f) {
		return c, ErrUnknownFeature
	}
	out := c.clone()
	if !out.Has(f) {
		out.Features = append(out.Features, f)
	}
	return out, nil
}

// WithoutFeature returns a copy of c with f deselected.
func (c TemplateConfig) WithoutFeature(f Feature) TemplateConfig {
	out := c.clone()
	out.Features = slices.DeleteFunc(out.Features, func(x Feature) bool { return x == f })
	return out
}

// Normalize drops unknown and duplicate feature ids and guarantees a
// non-nil feature slice. Type and styling are kept as given; an unknown
// type simply disables generation.
func (c TemplateConfig) Normalize() TemplateConfig {
	out := TemplateConfig{
		Type:     c.Type,
		Name:     c.Name,
		Styling:  c.Styling,
		Features: make([]Feature, 0, len(c.Features)),
	}
	for _, f := range c.Features {
		if ValidFeature(f) && !slices.Contains(out.Features, f) {
			out.Features = append(out.Features, f)
		}
	}
	return out
}

// FeatureNames returns the selected feature ids as strings in catalog order.
func (c TemplateConfig) FeatureNames() []string {
	var names []string
	for _, o := range Features {
		if c.Has(Feature(o.Value)) {
			names = append(names, o.Value)
		}
	}
	return names
}

func (c TemplateConfig) clone() TemplateConfig {
	out := c
	out.Features = append([]Feature{}, c.Features...)
	return out
}
