package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/koljapluemer/canvasgrid/pkg/diagram"
	errs "github.com/koljapluemer/canvasgrid/pkg/errors"
	pkgio "github.com/koljapluemer/canvasgrid/pkg/io"
	"github.com/koljapluemer/canvasgrid/pkg/observability"
	"github.com/koljapluemer/canvasgrid/pkg/pipeline"
	"github.com/koljapluemer/canvasgrid/pkg/render"
)

// layoutResponse is returned by POST /api/layouts.
type layoutResponse struct {
	ID      string `json:"id"`
	Height  int    `json:"height"`
	Width   int    `json:"width"`
	Nodes   int    `json:"nodes"`
	Edges   int    `json:"edges"`
	Growths int    `json:"growths"`
	Cached  bool   `json:"cached"`
	Flow    string `json:"flow"`
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleCreateLayout lays out the canvas in the request body and stores the
// result under a new id.
func (s *Server) handleCreateLayout(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
	body, err := io.ReadAll(r.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse{Error: "request body too large (max 10MB)"})
			return
		}
		s.writeError(w, r, errs.Wrap(errs.ErrCodeInvalidInput, err, "read body"))
		return
	}

	opts, err := s.requestOptions(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	opts.Canvas = body
	opts.Formats = []string{render.FormatFlow}

	res, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	id := uuid.New().String()
	if err := s.runner.StoreResult(r.Context(), id, res.Manager, res.Labels); err != nil {
		s.writeError(w, r, fmt.Errorf("store layout: %w", err))
		return
	}

	w.Header().Set("Location", "/api/layouts/"+id)
	writeJSON(w, http.StatusCreated, layoutResponse{
		ID:      id,
		Height:  res.Stats.Height,
		Width:   res.Stats.Width,
		Nodes:   res.Stats.NodeCount,
		Edges:   res.Stats.EdgeCount,
		Growths: res.Stats.Growths,
		Cached:  res.CacheInfo.LayoutHit,
		Flow:    string(res.Artifacts[render.FormatFlow]),
	})
}

func (s *Server) handleGetLayout(w http.ResponseWriter, r *http.Request) {
	m, _, ok := s.loadLayout(w, r)
	if !ok {
		return
	}
	data, err := pkgio.MarshalJSON(m)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", render.ContentType(render.FormatJSON))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

func (s *Server) handleRenderLayout(w http.ResponseWriter, r *http.Request) {
	format := chi.URLParam(r, "format")
	if err := errs.ValidateFormat(format, render.Formats); err != nil {
		s.writeError(w, r, err)
		return
	}
	m, labels, ok := s.loadLayout(w, r)
	if !ok {
		return
	}

	opts := []render.Option{render.WithLabels(labels)}
	if s.defaults.CellSize > 0 {
		opts = append(opts, render.WithCellSize(s.defaults.CellSize))
	}
	if s.defaults.Title != "" {
		opts = append(opts, render.WithTitle(s.defaults.Title))
	}
	data, err := render.Render(r.Context(), m, format, opts...)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", render.ContentType(format))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// loadLayout resolves the {id} parameter. It writes the error response and
// returns false when the layout is unavailable.
func (s *Server) loadLayout(w http.ResponseWriter, r *http.Request) (m *diagram.Manager, labels map[string]string, ok bool) {
	id := chi.URLParam(r, "id")
	if _, err := uuid.Parse(id); err != nil {
		s.writeError(w, r, errs.New(errs.ErrCodeInvalidID, "invalid layout id %q", id))
		return nil, nil, false
	}
	m, labels, found, err := s.runner.LoadResult(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return nil, nil, false
	}
	if !found {
		s.writeError(w, r, errs.New(errs.ErrCodeNotFound, "layout %s not found", id))
		return nil, nil, false
	}
	return m, labels, true
}

// requestOptions copies the server defaults and applies query overrides.
func (s *Server) requestOptions(r *http.Request) (pipeline.Options, error) {
	opts := s.defaults
	opts.Formats = nil
	q := r.URL.Query()

	if v := q.Get("seed"); v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return opts, errs.New(errs.ErrCodeInvalidInput, "seed must be an unsigned integer: %q", v)
		}
		opts.Seed = seed
	}
	if v := q.Get("max_attempts"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return opts, errs.New(errs.ErrCodeInvalidInput, "max_attempts must be a positive integer: %q", v)
		}
		opts.MaxAttempts = n
	}
	if v := q.Get("purge"); v != "" {
		purge, err := strconv.ParseBool(v)
		if err != nil {
			return opts, errs.New(errs.ErrCodeInvalidInput, "purge must be a boolean: %q", v)
		}
		opts.SkipPurge = !purge
	}
	return opts, nil
}

// statusFor maps an error code to an HTTP status.
func statusFor(err error) int {
	switch errs.GetCode(err) {
	case errs.ErrCodeInvalidInput, errs.ErrCodeInvalidID, errs.ErrCodeInvalidFormat, errs.ErrCodeInvalidPath:
		return http.StatusBadRequest
	case errs.ErrCodeNotFound, errs.ErrCodeFileNotFound:
		return http.StatusNotFound
	case errs.ErrCodeNoPlacement, errs.ErrCodeNoRoute, errs.ErrCodeExhausted:
		return http.StatusUnprocessableEntity
	case errs.ErrCodeUnsupported:
		return http.StatusNotImplemented
	}
	return http.StatusInternalServerError
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	route := r.URL.Path
	if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
		route = rc.RoutePattern()
	}
	observability.HTTP().OnError(r.Context(), r.Method, route, err)

	resp := errorResponse{Error: errs.UserMessage(err), Code: string(errs.GetCode(err))}
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "method", r.Method, "route", route, "err", err)
		resp.Error = "internal server error"
	}
	writeJSON(w, status, resp)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
