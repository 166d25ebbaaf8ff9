// handler_test.go provides shared test infrastructure for handler tests.
// Workspaces use the in-memory store and a local-only generation chain, so
// no external service is needed.
package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"pagecraft/internal/generator"
	"pagecraft/internal/middleware"
	"pagecraft/internal/render"
	"pagecraft/internal/store"
	"pagecraft/internal/workspace"
)

// testEnv holds all dependencies for handler tests.
type testEnv struct {
	Store      *store.MemoryStore
	Workspaces *workspace.Manager
	API        *API
	Public     *Public
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	return newTestEnvWithTiers(t, generator.DefaultChain(nil, generator.ChainConfig{}))
}

func newTestEnvWithTiers(t *testing.T, tiers []generator.Tier) *testEnv {
	t.Helper()

	rn, err := render.New()
	if err != nil {
		t.Fatalf("render.New: %v", err)
	}

	s := store.NewMemoryStore()
	ws := workspace.NewManager(s, tiers, time.Hour)
	t.Cleanup(ws.Stop)

	return &testEnv{
		Store:      s,
		Workspaces: ws,
		API:        NewAPI(ws),
		Public:     NewPublic(rn, nil, ws),
	}
}

// newRequest builds a request for session sid with an optional JSON body.
func newRequest(method, target, sid, body string) *http.Request {
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if sid != "" {
		req = req.WithContext(middleware.WithSessionID(req.Context(), sid))
	}
	return req
}

// withURLParam attaches a chi URL parameter to req.
func withURLParam(req *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

// decode unmarshals a JSON response body into v.
func decode(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
}

// errorMessage returns the "error" field of a JSON error response.
func errorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	decode(t, rec, &body)
	return body["error"]
}
