// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"pagecraft/internal/editor"
	"pagecraft/internal/generator"
	"pagecraft/internal/middleware"
	"pagecraft/internal/models"
	"pagecraft/internal/workspace"
)

// API groups the JSON endpoints behind the generator panel. Every handler
// works on the workspace of the caller's session.
type API struct {
	workspaces *workspace.Manager
}

// NewAPI creates the API handler group.
func NewAPI(workspaces *workspace.Manager) *API {
	return &API{workspaces: workspaces}
}

// workspace resolves the caller's workspace, writing a 400 when the
// request carries no session.
func (a *API) workspace(w http.ResponseWriter, r *http.Request) (*workspace.Workspace, bool) {
	id := middleware.SessionIDFromCtx(r.Context())
	if id == "" {
		writeError(w, http.StatusBadRequest, "no session")
		return nil, false
	}
	return a.workspaces.Get(id), true
}

// catalogResponse lists every selectable option.
type catalogResponse struct {
	Types    []models.Option `json:"types"`
	Stylings []models.Option `json:"stylings"`
	Features []models.Option `json:"features"`
}

// Catalog returns the site types, styling presets and feature catalog.
func (a *API) Catalog(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, catalogResponse{
		Types:    models.SiteTypes,
		Stylings: models.Stylings,
		Features: models.Features,
	})
}

// GetConfig returns the session's configuration.
func (a *API) GetConfig(w http.ResponseWriter, r *http.Request) {
	ws, ok := a.workspace(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, ws.Config.Get(r.Context()))
}

// configFields is the body of PUT /api/config. Features are changed one at
// a time through ToggleFeature.
type configFields struct {
	Name    string `json:"name"`
	Type    string `json:"type"`
	Styling string `json:"styling"`
}

// PutConfig replaces the name, type and styling, keeping the feature set.
func (a *API) PutConfig(w http.ResponseWriter, r *http.Request) {
	ws, ok := a.workspace(w, r)
	if !ok {
		return
	}

	var in configFields
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if msg := validateConfigFields(in.Name, in.Type, in.Styling); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	cfg := ws.Config.Update(r.Context(), func(c models.TemplateConfig) models.TemplateConfig {
		c.Name = in.Name
		c.Type = models.SiteType(in.Type)
		c.Styling = models.Styling(in.Styling)
		return c
	})
	writeJSON(w, http.StatusOK, cfg)
}

// featureToggle is the body of POST /api/config/features/{id}.
type featureToggle struct {
	Enabled *bool `json:"enabled"`
}

// ToggleFeature adds or removes one catalog feature.
func (a *API) ToggleFeature(w http.ResponseWriter, r *http.Request) {
	ws, ok := a.workspace(w, r)
	if !ok {
		return
	}

	feature := models.Feature(chi.URLParam(r, "id"))
	if !models.ValidFeature(feature) {
		writeError(w, http.StatusBadRequest, models.ErrUnknownFeature.Error())
		return
	}

	var in featureToggle
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if in.Enabled == nil {
		writeError(w, http.StatusBadRequest, `"enabled" is required`)
		return
	}

	cfg := ws.Config.Update(r.Context(), func(c models.TemplateConfig) models.TemplateConfig {
		if !*in.Enabled {
			return c.WithoutFeature(feature)
		}
		next, err := c.WithFeature(feature)
		if err != nil {
			return c
		}
		return next
	})
	writeJSON(w, http.StatusOK, cfg)
}

// generationStatus reports the orchestrator state.
type generationStatus struct {
	State    string            `json:"state"`
	InFlight bool              `json:"in_flight"`
	Last     *generator.Result `json:"last,omitempty"`
}

// GenerateStatus returns the current generation state and the last result.
func (a *API) GenerateStatus(w http.ResponseWriter, r *http.Request) {
	ws, ok := a.workspace(w, r)
	if !ok {
		return
	}

	status := generationStatus{
		State:    ws.Orchestrator.State().String(),
		InFlight: ws.Orchestrator.InFlight(),
	}
	if last, ok := ws.Orchestrator.Last(); ok {
		status.Last = &last
	}
	writeJSON(w, http.StatusOK, status)
}

// Generate runs the generation chain for the session's configuration.
func (a *API) Generate(w http.ResponseWriter, r *http.Request) {
	ws, ok := a.workspace(w, r)
	if !ok {
		return
	}

	res, err := ws.Generate(r.Context())
	switch {
	case errors.Is(err, generator.ErrTypeRequired):
		writeError(w, http.StatusUnprocessableEntity, "Select a site type first.")
	case errors.Is(err, generator.ErrInFlight):
		writeError(w, http.StatusConflict, "A generation is already running.")
	case err != nil:
		slog.Error("generation failed", "session", ws.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "Generation failed.")
	default:
		writeJSON(w, http.StatusOK, res)
	}
}

// Document returns the current text: the edit buffer while editing,
// otherwise the committed document.
func (a *API) Document(w http.ResponseWriter, r *http.Request) {
	ws, ok := a.workspace(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, ws.Editor.Snapshot())
}

// EditBegin starts an edit over the committed document.
func (a *API) EditBegin(w http.ResponseWriter, r *http.Request) {
	a.editTransition(w, r, (*editor.Session).BeginEdit)
}

// buffer is the body of PUT /api/edit/buffer.
type buffer struct {
	Text string `json:"text"`
}

// EditBuffer replaces the edit buffer.
func (a *API) EditBuffer(w http.ResponseWriter, r *http.Request) {
	ws, ok := a.workspace(w, r)
	if !ok {
		return
	}

	if editLocked(w, ws) {
		return
	}

	var in buffer
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if msg := validateDocument(in.Text); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	if err := ws.Editor.UpdateBuffer(in.Text); err != nil {
		writeEditError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ws.Editor.Snapshot())
}

// EditSave commits the buffer.
func (a *API) EditSave(w http.ResponseWriter, r *http.Request) {
	a.editTransition(w, r, (*editor.Session).Save)
}

// EditCancel discards the buffer.
func (a *API) EditCancel(w http.ResponseWriter, r *http.Request) {
	a.editTransition(w, r, (*editor.Session).Cancel)
}

func (a *API) editTransition(w http.ResponseWriter, r *http.Request, op func(*editor.Session) error) {
	ws, ok := a.workspace(w, r)
	if !ok {
		return
	}
	if editLocked(w, ws) {
		return
	}
	if err := op(ws.Editor); err != nil {
		writeEditError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ws.Editor.Snapshot())
}

// editLocked rejects edit transitions while a generation is running: the
// new document would discard the edit when it lands.
func editLocked(w http.ResponseWriter, ws *workspace.Workspace) bool {
	if !ws.Orchestrator.InFlight() {
		return false
	}
	writeError(w, http.StatusConflict, "A generation is running; edits resume when it finishes.")
	return true
}

// writeEditError maps editor sentinels to 409 Conflict.
func writeEditError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, editor.ErrNoDocument):
		writeError(w, http.StatusConflict, "Generate a document before editing.")
	case errors.Is(err, editor.ErrNotEditing):
		writeError(w, http.StatusConflict, "No edit in progress.")
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}
