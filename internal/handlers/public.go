// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"fmt"
	"log/slog"
	"net/http"

	"pagecraft/internal/cache"
	"pagecraft/internal/content"
	"pagecraft/internal/editor"
	"pagecraft/internal/middleware"
	"pagecraft/internal/models"
	"pagecraft/internal/render"
	"pagecraft/internal/slug"
	"pagecraft/internal/workspace"
)

// Public groups the HTML handlers: the landing page, the preview frame and
// the download. The landing page carries no per-session data, so it is
// served from the Valkey page cache when one is configured.
type Public struct {
	renderer   *render.Renderer
	pageCache  *cache.PageCache
	workspaces *workspace.Manager
}

// NewPublic creates the Public handler group. pageCache may be nil.
func NewPublic(renderer *render.Renderer, pageCache *cache.PageCache, workspaces *workspace.Manager) *Public {
	return &Public{
		renderer:   renderer,
		pageCache:  pageCache,
		workspaces: workspaces,
	}
}

// Landing renders the landing page. ?category= filters the demo gallery;
// partial requests receive only the gallery.
func (p *Public) Landing(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	category := r.URL.Query().Get("category")
	if !content.ValidCategory(category) {
		category = ""
	}
	data := landingData(category)

	if r.Header.Get("HX-Request") == "true" {
		p.renderer.Page(w, r, "landing", data)
		return
	}

	key := cache.LandingKey(category)
	if p.pageCache != nil {
		if cached, ok := p.pageCache.Get(ctx, key); ok {
			writeHTML(w, cached)
			return
		}
	}

	body, err := p.renderer.Bytes("landing", data)
	if err != nil {
		slog.Error("render landing failed", "category", category, "error", err)
		p.renderer.Error(w, http.StatusInternalServerError, "Something went wrong.")
		return
	}

	if p.pageCache != nil {
		p.pageCache.Set(ctx, key, body)
	}
	writeHTML(w, body)
}

// landingData assembles the static page material.
func landingData(category string) *render.PageData {
	steps, err := content.Steps()
	if err != nil {
		slog.Error("render setup guide failed", "error", err)
	}

	return &render.PageData{
		Title:   "Free websites on GitHub Pages",
		Section: "generator",
		Partial: "gallery",
		Data: map[string]any{
			"Stats":      content.Stats,
			"Category":   category,
			"Categories": content.Categories,
			"Demos":      content.Demos(category),
			"Themes":     content.Themes,
			"Steps":      steps,
			"SiteTypes":  models.SiteTypes,
			"Stylings":   models.Stylings,
			"Features":   models.Features,
		},
	}
}

// Preview serves the current text as a sandboxed page for the preview
// frame. The generated markup never runs under the host policy.
func (p *Public) Preview(w http.ResponseWriter, r *http.Request) {
	ws, ok := p.lookup(r)
	if !ok || !ws.Editor.HasDocument() {
		p.renderer.Error(w, http.StatusNotFound, "Nothing has been generated yet.")
		return
	}

	preview := editor.RenderPreview(ws.Editor.CurrentText())

	h := w.Header()
	h.Set("Content-Security-Policy", editor.PreviewCSP)
	h.Set("Cache-Control", "no-store")
	writeHTML(w, []byte(preview.HTML()))
}

// Download sends the current text as an HTML attachment named after the
// site.
func (p *Public) Download(w http.ResponseWriter, r *http.Request) {
	ws, ok := p.lookup(r)
	if !ok || !ws.Editor.HasDocument() {
		p.renderer.Error(w, http.StatusNotFound, "Nothing has been generated yet.")
		return
	}

	filename := slug.Filename(ws.Config.Get(r.Context()).Name)

	h := w.Header()
	h.Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	h.Set("Cache-Control", "no-store")
	writeHTML(w, []byte(ws.Editor.CurrentText()))
}

// NotFound renders the error page for unknown routes.
func (p *Public) NotFound(w http.ResponseWriter, r *http.Request) {
	p.renderer.Error(w, http.StatusNotFound, "This page does not exist.")
}

// Health returns a simple JSON health check response.
func Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// lookup returns the caller's workspace without creating one.
func (p *Public) lookup(r *http.Request) (*workspace.Workspace, bool) {
	id := middleware.SessionIDFromCtx(r.Context())
	if id == "" {
		return nil, false
	}
	return p.workspaces.Lookup(id)
}

func writeHTML(w http.ResponseWriter, body []byte) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(body)
}
