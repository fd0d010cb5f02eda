package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/koljapluemer/canvasgrid/pkg/cache"
	errs "github.com/koljapluemer/canvasgrid/pkg/errors"
	pkgio "github.com/koljapluemer/canvasgrid/pkg/io"
	"github.com/koljapluemer/canvasgrid/pkg/observability"
	"github.com/koljapluemer/canvasgrid/pkg/pipeline"
)

const testCanvas = `{
  "nodes": [
    {"id": "n1", "type": "text", "x": 0, "y": 0, "width": 250, "height": 60, "text": "Start"},
    {"id": "n2", "type": "text", "x": 400, "y": 0, "width": 250, "height": 60, "text": "Finish"}
  ],
  "edges": [
    {"id": "e1", "fromNode": "n1", "toNode": "n2"}
  ]
}`

func newTestServer(t *testing.T) *Server {
	t.Helper()
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error: %v", err)
	}
	logger := log.New(io.Discard)
	runner := pipeline.NewRunner(c, nil, logger)
	t.Cleanup(func() { runner.Close() })
	return New(runner, Config{Addr: ":0", Logger: logger})
}

func do(t *testing.T, s *Server, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	w := httptest.NewRecorder()
	s.ServeHTTP(w, req)
	return w
}

func createLayout(t *testing.T, s *Server) layoutResponse {
	t.Helper()
	w := do(t, s, http.MethodPost, "/api/layouts?seed=7", testCanvas)
	if w.Code != http.StatusCreated {
		t.Fatalf("POST /api/layouts status = %d, body %s", w.Code, w.Body.String())
	}
	var resp layoutResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	w := do(t, s, http.MethodGet, "/health", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"ok"`) {
		t.Errorf("body = %s, want status ok", w.Body.String())
	}
}

func TestCreateLayout(t *testing.T) {
	s := newTestServer(t)
	resp := createLayout(t, s)

	if resp.ID == "" {
		t.Fatal("response has no id")
	}
	if resp.Nodes != 2 || resp.Edges != 1 {
		t.Errorf("nodes/edges = %d/%d, want 2/1", resp.Nodes, resp.Edges)
	}
	if resp.Height < 1 || resp.Width < 3 {
		t.Errorf("size = %dx%d, want room for two nodes and an edge", resp.Height, resp.Width)
	}
	if !strings.Contains(resp.Flow, "a") || !strings.Contains(resp.Flow, "b") {
		t.Errorf("flow = %q, want both node ids", resp.Flow)
	}
}

func TestGetLayout(t *testing.T) {
	s := newTestServer(t)
	created := createLayout(t, s)

	w := do(t, s, http.MethodGet, "/api/layouts/"+created.ID, "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	m, err := pkgio.UnmarshalJSON(w.Body.Bytes())
	if err != nil {
		t.Fatalf("UnmarshalJSON() error: %v", err)
	}
	if h, wd := m.Size(); h != created.Height || wd != created.Width {
		t.Errorf("stored size = %dx%d, want %dx%d", h, wd, created.Height, created.Width)
	}
	if len(m.Edges()) != 1 {
		t.Errorf("stored edges = %d, want 1", len(m.Edges()))
	}
}

func TestRenderLayout(t *testing.T) {
	s := newTestServer(t)
	created := createLayout(t, s)

	tests := []struct {
		format      string
		contentType string
		contains    string
	}{
		{"txt", "text/plain", "a"},
		{"flow", "text/plain", "b"},
		{"html", "text/html", "grid-template-areas"},
		{"canvas", "application/json", `"fromNode"`},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			w := do(t, s, http.MethodGet, "/api/layouts/"+created.ID+"/render/"+tt.format, "")
			if w.Code != http.StatusOK {
				t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
			}
			if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, tt.contentType) {
				t.Errorf("Content-Type = %q, want %q", ct, tt.contentType)
			}
			if !strings.Contains(w.Body.String(), tt.contains) {
				t.Errorf("body does not contain %q", tt.contains)
			}
		})
	}
}

func TestErrorStatus(t *testing.T) {
	s := newTestServer(t)
	created := createLayout(t, s)

	tests := []struct {
		name   string
		method string
		target string
		body   string
		status int
		code   string
	}{
		{"malformed canvas", http.MethodPost, "/api/layouts", "{", http.StatusBadRequest, "INVALID_FORMAT"},
		{"empty body", http.MethodPost, "/api/layouts", "", http.StatusBadRequest, "INVALID_INPUT"},
		{"bad seed", http.MethodPost, "/api/layouts?seed=x", testCanvas, http.StatusBadRequest, "INVALID_INPUT"},
		{"bad purge", http.MethodPost, "/api/layouts?purge=maybe", testCanvas, http.StatusBadRequest, "INVALID_INPUT"},
		{"exhausted", http.MethodPost, "/api/layouts?max_attempts=1", testCanvas, http.StatusUnprocessableEntity, "ATTEMPTS_EXHAUSTED"},
		{"bad id", http.MethodGet, "/api/layouts/not-a-uuid", "", http.StatusBadRequest, "INVALID_ID"},
		{"unknown id", http.MethodGet, "/api/layouts/00000000-0000-0000-0000-000000000000", "", http.StatusNotFound, "NOT_FOUND"},
		{"bad format", http.MethodGet, "/api/layouts/" + created.ID + "/render/pdf", "", http.StatusBadRequest, "INVALID_FORMAT"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, s, tt.method, tt.target, tt.body)
			if w.Code != tt.status {
				t.Fatalf("status = %d, want %d (body %s)", w.Code, tt.status, w.Body.String())
			}
			var resp errorResponse
			if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
				t.Fatalf("decode error body: %v", err)
			}
			if resp.Code != tt.code {
				t.Errorf("code = %q, want %q", resp.Code, tt.code)
			}
		})
	}
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{errs.New(errs.ErrCodeInvalidID, "x"), http.StatusBadRequest},
		{errs.New(errs.ErrCodeNotFound, "x"), http.StatusNotFound},
		{errs.New(errs.ErrCodeNoRoute, "x"), http.StatusUnprocessableEntity},
		{errs.New(errs.ErrCodeNoPlacement, "x"), http.StatusUnprocessableEntity},
		{errs.New(errs.ErrCodeGridIntegrity, "x"), http.StatusInternalServerError},
		{errors.New("plain"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := statusFor(tt.err); got != tt.want {
			t.Errorf("statusFor(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}

type recordingHooks struct {
	observability.NoopHTTPHooks
	mu     sync.Mutex
	routes []string
	errors int
}

func (h *recordingHooks) OnResponse(_ context.Context, method, route string, status int, _ time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.routes = append(h.routes, method+" "+route)
}

func (h *recordingHooks) OnError(context.Context, string, string, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.errors++
}

func TestObserveMiddleware(t *testing.T) {
	hooks := &recordingHooks{}
	observability.SetHTTPHooks(hooks)
	t.Cleanup(observability.Reset)

	s := newTestServer(t)
	do(t, s, http.MethodGet, "/health", "")
	do(t, s, http.MethodGet, "/api/layouts/00000000-0000-0000-0000-000000000000", "")

	hooks.mu.Lock()
	defer hooks.mu.Unlock()
	want := []string{"GET /health", "GET /api/layouts/{id}/"}
	if len(hooks.routes) != len(want) {
		t.Fatalf("routes = %v, want %v", hooks.routes, want)
	}
	if hooks.routes[0] != want[0] {
		t.Errorf("routes[0] = %q, want %q", hooks.routes[0], want[0])
	}
	if !strings.HasPrefix(hooks.routes[1], "GET /api/layouts/{id}") {
		t.Errorf("routes[1] = %q, want the id pattern", hooks.routes[1])
	}
	if hooks.errors != 1 {
		t.Errorf("errors = %d, want 1", hooks.errors)
	}
}

func TestListenAndServeShutdown(t *testing.T) {
	s := newTestServer(t)
	s.addr = "127.0.0.1:0"
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- s.ListenAndServe(ctx) }()
	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("ListenAndServe() = %v, want nil after cancel", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("ListenAndServe did not return after cancel")
	}
}
