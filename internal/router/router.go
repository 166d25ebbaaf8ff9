// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package router sets up all HTTP routes and middleware chains. Routes are
// organized into a stateless group (health, static assets) and a session
// group that carries the visitor cookie and CSRF protection.
package router

import (
	"io/fs"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"pagecraft/internal/handlers"
	"pagecraft/internal/middleware"
	"pagecraft/internal/session"
	"pagecraft/web"
)

// Options holds the settings that shape the middleware stack.
type Options struct {
	SecureCookies bool     // set Secure on session and CSRF cookies
	CORSOrigins   []string // origins allowed to call /api; none disables CORS
}

// New creates and returns the configured Chi router with all middleware
// and route groups wired up. limiter throttles POST /api/generate.
func New(sessions *session.Manager, limiter *middleware.RateLimiter, api *handlers.API, public *handlers.Public, opts Options) chi.Router {
	r := chi.NewRouter()

	// Global middleware: applied to every request.
	r.Use(chimw.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)

	// Health check and assets: no session, no CSRF.
	r.Get("/health", handlers.Health)
	r.Handle("/static/*", staticHandler())

	r.Group(func(r chi.Router) {
		r.Use(middleware.LoadSession(sessions))
		r.Use(middleware.NewCSRF(opts.SecureCookies))

		r.Get("/", public.Landing)
		r.Get("/preview", public.Preview)
		r.Get("/download", public.Download)

		r.Route("/api", func(r chi.Router) {
			r.Use(middleware.CORS(opts.CORSOrigins))

			r.Get("/catalog", api.Catalog)

			r.Get("/config", api.GetConfig)
			r.Put("/config", api.PutConfig)
			r.Post("/config/features/{id}", api.ToggleFeature)

			r.Get("/generate", api.GenerateStatus)
			r.With(limiter.Middleware).Post("/generate", api.Generate)

			r.Get("/document", api.Document)

			r.Route("/edit", func(r chi.Router) {
				r.Post("/begin", api.EditBegin)
				r.Put("/buffer", api.EditBuffer)
				r.Post("/save", api.EditSave)
				r.Post("/cancel", api.EditCancel)
			})
		})
	})

	r.NotFound(public.NotFound)

	return r
}

// staticHandler serves the embedded web/static tree under /static/.
func staticHandler() http.Handler {
	sub, err := fs.Sub(web.StaticFS, "static")
	if err != nil {
		// The embed pattern guarantees the directory exists.
		panic(err)
	}
	return http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
}
