package middleware

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// captureLog routes the default logger into a buffer for the test and
// returns a function that decodes the logged records.
func captureLog(t *testing.T) func() []map[string]any {
	t.Helper()
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { slog.SetDefault(prev) })

	return func() []map[string]any {
		var records []map[string]any
		for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
			if line == "" {
				continue
			}
			var rec map[string]any
			if err := json.Unmarshal([]byte(line), &rec); err != nil {
				t.Fatalf("decode log line %q: %v", line, err)
			}
			records = append(records, rec)
		}
		return records
	}
}

func serve(h http.Handler, method, target string) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(method, target, nil))
	return rr
}

func onlyRecord(t *testing.T, records []map[string]any) map[string]any {
	t.Helper()
	if len(records) != 1 {
		t.Fatalf("expected 1 log record, got %d: %v", len(records), records)
	}
	return records[0]
}

func TestLoggerRecordsRequest(t *testing.T) {
	logs := captureLog(t)

	called := false
	h := Logger(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusCreated)
	}))
	rr := serve(h, http.MethodPost, "/api/generate")

	if !called {
		t.Error("next handler should have been called")
	}
	if rr.Code != http.StatusCreated {
		t.Errorf("status: got %d, want 201", rr.Code)
	}

	rec := onlyRecord(t, logs())
	if rec["msg"] != "http request" || rec["level"] != "INFO" {
		t.Errorf("record: %v", rec)
	}
	if rec["method"] != "POST" || rec["path"] != "/api/generate" {
		t.Errorf("method/path: %v", rec)
	}
	if rec["status"] != float64(http.StatusCreated) {
		t.Errorf("status attr: got %v, want 201", rec["status"])
	}
	if _, ok := rec["request_id"]; ok {
		t.Error("request_id should be absent without the RequestID middleware")
	}
}

func TestLoggerServerErrorsAtErrorLevel(t *testing.T) {
	tests := []struct {
		status int
		level  string
	}{
		{http.StatusOK, "INFO"},
		{http.StatusNotFound, "INFO"},
		{http.StatusConflict, "INFO"},
		{http.StatusInternalServerError, "ERROR"},
		{http.StatusBadGateway, "ERROR"},
	}
	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			logs := captureLog(t)
			h := Logger(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			serve(h, http.MethodGet, "/preview")

			rec := onlyRecord(t, logs())
			if rec["level"] != tt.level {
				t.Errorf("level: got %v, want %s", rec["level"], tt.level)
			}
		})
	}
}

func TestLoggerIncludesRequestID(t *testing.T) {
	logs := captureLog(t)

	var seen string
	h := chimw.RequestID(Logger(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = chimw.GetReqID(r.Context())
	})))
	serve(h, http.MethodGet, "/")

	if seen == "" {
		t.Fatal("RequestID middleware should set an id")
	}
	rec := onlyRecord(t, logs())
	if rec["request_id"] != seen {
		t.Errorf("request_id: got %v, want %q", rec["request_id"], seen)
	}
}

func TestLoggerStatusCapture(t *testing.T) {
	t.Run("write without WriteHeader logs 200", func(t *testing.T) {
		logs := captureLog(t)
		h := Logger(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("hello"))
		}))
		rr := serve(h, http.MethodGet, "/")

		if rr.Body.String() != "hello" {
			t.Errorf("body: got %q", rr.Body.String())
		}
		if rec := onlyRecord(t, logs()); rec["status"] != float64(http.StatusOK) {
			t.Errorf("status attr: got %v, want 200", rec["status"])
		}
	})

	t.Run("first WriteHeader wins", func(t *testing.T) {
		logs := captureLog(t)
		h := Logger(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
			w.WriteHeader(http.StatusOK)
		}))
		serve(h, http.MethodGet, "/")

		rec := onlyRecord(t, logs())
		if rec["status"] != float64(http.StatusServiceUnavailable) || rec["level"] != "ERROR" {
			t.Errorf("record: %v", rec)
		}
	})
}
