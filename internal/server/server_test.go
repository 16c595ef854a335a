package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"

	"github.com/ziadkadry99/mockweb/internal/db"
	"github.com/ziadkadry99/mockweb/internal/generator"
	"github.com/ziadkadry99/mockweb/internal/session"
	"github.com/ziadkadry99/mockweb/internal/synth"
	"github.com/ziadkadry99/mockweb/internal/templates"
)

type firstRand struct{}

func (firstRand) IntN(int) int { return 0 }

func setupServer(t *testing.T, cfg Config) *Server {
	t.Helper()
	return setupServerWithClock(t, cfg, generator.NopClock{}, 0)
}

func setupServerWithClock(t *testing.T, cfg Config, clock generator.Clock, stepDelay time.Duration) *Server {
	t.Helper()

	database, err := db.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	log := zaptest.NewLogger(t)
	tmpl := templates.MustNewStore()
	newGen := func() *generator.Generator {
		return generator.New(generator.Options{
			Store:     tmpl,
			Synth:     synth.New(firstRand{}),
			Clock:     clock,
			StepDelay: stepDelay,
			Logger:    log,
		})
	}
	mgr := session.NewManager(session.NewStore(database), newGen, log)
	return New(cfg, mgr, log)
}

// gateClock blocks the first Sleep until release is closed.
type gateClock struct {
	once    sync.Once
	entered chan struct{}
	release chan struct{}
}

func newGateClock() *gateClock {
	return &gateClock{entered: make(chan struct{}), release: make(chan struct{})}
}

func (c *gateClock) Sleep(ctx context.Context, _ time.Duration) error {
	first := false
	c.once.Do(func() { first = true })
	if first {
		close(c.entered)
		<-c.release
	}
	return ctx.Err()
}

type panicClock struct{}

func (panicClock) Sleep(context.Context, time.Duration) error { panic("boom") }

func do(t *testing.T, srv *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encoding body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)
	return w
}

func createSession(t *testing.T, srv *Server) string {
	t.Helper()
	w := do(t, srv, http.MethodPost, "/api/sessions", nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("create session: expected 201, got %d: %s", w.Code, w.Body.String())
	}
	var st session.State
	if err := json.NewDecoder(w.Body).Decode(&st); err != nil {
		t.Fatalf("decoding session: %v", err)
	}
	return st.ID
}

func TestHealthCheck(t *testing.T) {
	srv := setupServer(t, Config{Port: 0})

	w := do(t, srv, http.MethodGet, "/healthz", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("expected status 'ok', got %q", body["status"])
	}
}

func TestCORSHeaders(t *testing.T) {
	srv := setupServer(t, Config{Port: 0, AllowAll: true})

	req := httptest.NewRequest("OPTIONS", "/healthz", nil)
	req.Header.Set("Origin", "http://example.com")
	req.Header.Set("Access-Control-Request-Method", "GET")
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)

	if w.Header().Get("Access-Control-Allow-Origin") == "" {
		t.Error("expected CORS Allow-Origin header")
	}
}

func TestServeIndex(t *testing.T) {
	srv := setupServer(t, Config{})

	w := do(t, srv, http.MethodGet, "/", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("expected text/html, got %q", ct)
	}
	if !strings.Contains(w.Body.String(), "generateBtn") {
		t.Error("index should contain the generate button")
	}
}

func TestGenerateFlow(t *testing.T) {
	srv := setupServer(t, Config{})
	id := createSession(t, srv)

	w := do(t, srv, http.MethodPost, "/api/sessions/"+id+"/generate",
		generateRequest{Description: "Portfolio para mi estudio de diseño"})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var resp generateResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding: %v", err)
	}
	if resp.Bundle == nil || resp.Bundle.Template != templates.Creative {
		t.Fatalf("expected creative bundle, got %+v", resp.Bundle)
	}
	if resp.Notification == nil || resp.Notification.Level != "success" {
		t.Errorf("expected success notification, got %+v", resp.Notification)
	}

	// Session state reflects the bundle.
	w = do(t, srv, http.MethodGet, "/api/sessions/"+id, nil)
	var st session.State
	if err := json.NewDecoder(w.Body).Decode(&st); err != nil {
		t.Fatalf("decoding state: %v", err)
	}
	if st.Bundle == nil || st.Description != "Portfolio para mi estudio de diseño" {
		t.Errorf("unexpected state: %+v", st)
	}

	// Regenerate reuses the stored description.
	w = do(t, srv, http.MethodPost, "/api/sessions/"+id+"/regenerate", nil)
	if w.Code != http.StatusOK {
		t.Errorf("regenerate: expected 200, got %d: %s", w.Code, w.Body.String())
	}
}

func TestGenerateEmptyDescription(t *testing.T) {
	srv := setupServer(t, Config{})
	id := createSession(t, srv)

	w := do(t, srv, http.MethodPost, "/api/sessions/"+id+"/generate", generateRequest{Description: "   "})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	var resp generateResponse
	json.NewDecoder(w.Body).Decode(&resp)
	if resp.Notification == nil || resp.Notification.Level != "warning" {
		t.Errorf("expected warning notification, got %+v", resp.Notification)
	}
	if resp.Bundle != nil {
		t.Error("expected no bundle")
	}
}

func TestRegenerateWithoutDescription(t *testing.T) {
	srv := setupServer(t, Config{})
	id := createSession(t, srv)

	w := do(t, srv, http.MethodPost, "/api/sessions/"+id+"/regenerate", nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestUnknownSession(t *testing.T) {
	srv := setupServer(t, Config{})

	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/api/sessions/missing"},
		{http.MethodDelete, "/api/sessions/missing"},
		{http.MethodPost, "/api/sessions/missing/regenerate"},
		{http.MethodGet, "/api/sessions/missing/code/html"},
		{http.MethodGet, "/preview/missing"},
		{http.MethodGet, "/ws/sessions/missing"},
	} {
		w := do(t, srv, tc.method, tc.path, nil)
		if w.Code != http.StatusNotFound {
			t.Errorf("%s %s: expected 404, got %d", tc.method, tc.path, w.Code)
		}
	}
}

func TestCodeAndDownload(t *testing.T) {
	srv := setupServer(t, Config{})
	id := createSession(t, srv)

	// Before generating there is no code.
	w := do(t, srv, http.MethodGet, "/api/sessions/"+id+"/code/css", nil)
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409 before generation, got %d", w.Code)
	}

	do(t, srv, http.MethodPost, "/api/sessions/"+id+"/generate", generateRequest{Description: "Tienda online"})

	w = do(t, srv, http.MethodGet, "/api/sessions/"+id+"/code/css", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var code codeResponse
	if err := json.NewDecoder(w.Body).Decode(&code); err != nil {
		t.Fatalf("decoding: %v", err)
	}
	if code.Language != templates.LanguageCSS || code.Code == "" {
		t.Errorf("unexpected code response: %+v", code)
	}
	if !strings.Contains(code.Highlighted, "<pre") {
		t.Errorf("expected highlighted markup, got %q", code.Highlighted)
	}

	w = do(t, srv, http.MethodGet, "/api/sessions/"+id+"/download/js", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("download: expected 200, got %d", w.Code)
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, `filename="website.js"`) {
		t.Errorf("unexpected Content-Disposition %q", cd)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/plain") {
		t.Errorf("unexpected Content-Type %q", ct)
	}

	w = do(t, srv, http.MethodGet, "/api/sessions/"+id+"/code/python", nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("unknown language: expected 400, got %d", w.Code)
	}
}

func TestPreview(t *testing.T) {
	srv := setupServer(t, Config{})
	id := createSession(t, srv)

	w := do(t, srv, http.MethodGet, "/preview/"+id, nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 before generation, got %d", w.Code)
	}

	do(t, srv, http.MethodPost, "/api/sessions/"+id+"/generate", generateRequest{Description: "Blog de viajes"})

	w = do(t, srv, http.MethodGet, "/preview/"+id, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if csp := w.Header().Get("Content-Security-Policy"); csp != "sandbox allow-scripts" {
		t.Errorf("unexpected CSP %q", csp)
	}
	if !strings.HasPrefix(w.Body.String(), "<!DOCTYPE html>") {
		t.Errorf("expected a full document, got %q", w.Body.String()[:40])
	}
}

func TestSetLanguageAndMode(t *testing.T) {
	srv := setupServer(t, Config{})
	id := createSession(t, srv)

	w := do(t, srv, http.MethodPut, "/api/sessions/"+id+"/language", map[string]string{"language": "js"})
	if w.Code != http.StatusOK {
		t.Fatalf("language: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	w = do(t, srv, http.MethodPut, "/api/sessions/"+id+"/mode", map[string]string{"mode": "mobile"})
	if w.Code != http.StatusOK {
		t.Fatalf("mode: expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var st session.State
	json.NewDecoder(w.Body).Decode(&st)
	if st.Language != templates.LanguageJS || st.Mode != "mobile" {
		t.Errorf("unexpected state: %+v", st)
	}

	w = do(t, srv, http.MethodPut, "/api/sessions/"+id+"/mode", map[string]string{"mode": "watch"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("invalid mode: expected 400, got %d", w.Code)
	}
}

func TestDeleteSession(t *testing.T) {
	srv := setupServer(t, Config{})
	id := createSession(t, srv)

	w := do(t, srv, http.MethodDelete, "/api/sessions/"+id, nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", w.Code)
	}
	w = do(t, srv, http.MethodGet, "/api/sessions/"+id, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 after delete, got %d", w.Code)
	}
}

func TestStaticEndpoints(t *testing.T) {
	srv := setupServer(t, Config{})
	id := createSession(t, srv)

	w := do(t, srv, http.MethodGet, "/api/viewports", nil)
	var viewports []map[string]string
	json.NewDecoder(w.Body).Decode(&viewports)
	if len(viewports) != 3 || viewports[2]["width"] != "375px" {
		t.Errorf("unexpected viewports: %v", viewports)
	}

	w = do(t, srv, http.MethodGet, "/api/examples", nil)
	var examples []string
	json.NewDecoder(w.Body).Decode(&examples)
	if len(examples) == 0 {
		t.Error("expected example descriptions")
	}

	w = do(t, srv, http.MethodGet, "/api/messages", nil)
	var messages map[string]map[string]string
	json.NewDecoder(w.Body).Decode(&messages)
	if messages["share_fallback"]["message"] != "Enlace copiado al portapapeles" {
		t.Errorf("unexpected messages: %v", messages)
	}

	w = do(t, srv, http.MethodPost, "/api/sessions/"+id+"/customize", nil)
	var custom map[string]map[string]string
	json.NewDecoder(w.Body).Decode(&custom)
	if custom["notification"]["title"] != "Próximamente" {
		t.Errorf("unexpected customize response: %v", custom)
	}
}

func TestGenerateIgnoredWhileInFlight(t *testing.T) {
	clock := newGateClock()
	srv := setupServerWithClock(t, Config{}, clock, 0)
	id := createSession(t, srv)

	done := make(chan *httptest.ResponseRecorder, 1)
	go func() {
		done <- do(t, srv, http.MethodPost, "/api/sessions/"+id+"/generate", generateRequest{Description: "un restaurante"})
	}()
	<-clock.entered

	w := do(t, srv, http.MethodPost, "/api/sessions/"+id+"/generate", generateRequest{Description: "un blog minimalista"})
	if w.Code != http.StatusAccepted {
		t.Fatalf("expected 202 while in flight, got %d: %s", w.Code, w.Body.String())
	}
	if got := strings.TrimSpace(w.Body.String()); got != `{"ignored":true}` {
		t.Errorf("expected silent ignore, got %s", got)
	}

	close(clock.release)
	first := <-done
	if first.Code != http.StatusOK {
		t.Fatalf("first call: expected 200, got %d", first.Code)
	}
	var resp generateResponse
	json.NewDecoder(first.Body).Decode(&resp)
	if resp.Bundle == nil || resp.Bundle.Template != templates.Modern {
		t.Errorf("expected the first description to win, got %+v", resp.Bundle)
	}
}

func TestGenerateFailure(t *testing.T) {
	srv := setupServerWithClock(t, Config{}, panicClock{}, 0)
	id := createSession(t, srv)

	w := do(t, srv, http.MethodPost, "/api/sessions/"+id+"/generate", generateRequest{Description: "un restaurante"})
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d: %s", w.Code, w.Body.String())
	}
	var resp generateResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding: %v", err)
	}
	if resp.Notification == nil || resp.Notification.Level != "danger" {
		t.Errorf("expected danger notification, got %+v", resp.Notification)
	}
	if resp.Bundle != nil {
		t.Error("expected no bundle on failure")
	}

	w = do(t, srv, http.MethodGet, "/preview/"+id, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("failed generation must not render a preview, got %d", w.Code)
	}
}

func TestGenerateFailureKeepsPreviousBundle(t *testing.T) {
	srv := setupServer(t, Config{})
	id := createSession(t, srv)

	do(t, srv, http.MethodPost, "/api/sessions/"+id+"/generate", generateRequest{Description: "Blog de viajes"})
	before := do(t, srv, http.MethodGet, "/preview/"+id, nil).Body.String()

	// The no-op clock fails as soon as the request context is done.
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	body, _ := json.Marshal(generateRequest{Description: "Mi portfolio"})
	req := httptest.NewRequest(http.MethodPost, "/api/sessions/"+id+"/generate", bytes.NewReader(body)).WithContext(ctx)
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d: %s", w.Code, w.Body.String())
	}

	after := do(t, srv, http.MethodGet, "/preview/"+id, nil).Body.String()
	if before != after {
		t.Error("preview changed after a failed generation")
	}
	var st session.State
	json.NewDecoder(do(t, srv, http.MethodGet, "/api/sessions/"+id, nil).Body).Decode(&st)
	if st.Description != "Blog de viajes" || st.Bundle == nil || st.Bundle.Template != templates.Modern {
		t.Errorf("unexpected state after failure: %+v", st)
	}
}
