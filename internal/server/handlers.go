package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	apperrors "github.com/yzhernand/treedraw/pkg/errors"
	"github.com/yzhernand/treedraw/pkg/pipeline"
	"github.com/yzhernand/treedraw/pkg/render"
	"github.com/yzhernand/treedraw/pkg/store"
)

// =============================================================================
// Pipeline Endpoints
// =============================================================================

// handleRender runs the full pipeline and responds with the rendered
// artifact in its native content type.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	opts, ok := s.decodeOptions(w, r)
	if !ok {
		return
	}
	s.execute(w, r, opts)
}

// handleLayout runs the pipeline with the JSON backend regardless of the
// requested one, returning geometry instead of a picture.
func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	opts, ok := s.decodeOptions(w, r)
	if !ok {
		return
	}
	opts.Backend = string(render.BackendJSON)
	s.execute(w, r, opts)
}

// handleBackends lists the supported output formats.
func (s *Server) handleBackends(w http.ResponseWriter, r *http.Request) {
	backends := render.Backends()
	names := make([]string, len(backends))
	for i, b := range backends {
		names[i] = string(b)
	}
	writeJSON(w, http.StatusOK, map[string][]string{"backends": names})
}

// execute runs the pipeline and writes the artifact response.
func (s *Server) execute(w http.ResponseWriter, r *http.Request, opts pipeline.Options) {
	// Server requests carry trees inline; paths would read the server's
	// own filesystem.
	if opts.TreePath != "" || opts.Tree2Path != "" {
		s.writeError(w, apperrors.New(apperrors.ErrCodeInvalidInput,
			"tree_path is not accepted over HTTP, send tree_data"))
		return
	}
	opts.Logger = s.logger
	if err := opts.ValidateAndSetDefaults(); err != nil {
		if apperrors.GetCode(err) == "" {
			err = apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "invalid options")
		}
		s.writeError(w, err)
		return
	}

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, err)
		return
	}

	contentType := result.Backend.ContentType()
	body := result.Artifact
	// A DOT export can be previewed as SVG without a local Graphviz
	// install: ?preview=svg runs the artifact through the embedded engine.
	if result.Backend == render.BackendDOT && r.URL.Query().Get("preview") == "svg" {
		svg, err := render.DOTToSVG(r.Context(), string(result.Artifact))
		if err != nil {
			s.writeError(w, err)
			return
		}
		contentType = render.BackendSVG.ContentType()
		body = svg
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("X-Tree-Hash", result.TreeHash)
	if result.CacheInfo.ArtifactHit {
		w.Header().Set("X-Cache", "hit")
	} else {
		w.Header().Set("X-Cache", "miss")
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

// =============================================================================
// Drawing Endpoints
// =============================================================================

// saveDrawingRequest is the body of POST /drawings.
type saveDrawingRequest struct {
	Name    string           `json:"name"`
	Options pipeline.Options `json:"options"`
}

func (s *Server) handleSaveDrawing(w http.ResponseWriter, r *http.Request) {
	var req saveDrawingRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	if req.Options.TreePath != "" || req.Options.Tree2Path != "" {
		s.writeError(w, apperrors.New(apperrors.ErrCodeInvalidInput,
			"tree_path is not accepted over HTTP, send tree_data"))
		return
	}

	d := &store.Drawing{Name: req.Name, Options: req.Options}
	if err := s.store.Save(r.Context(), d); err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, d)
}

func (s *Server) handleListDrawings(w http.ResponseWriter, r *http.Request) {
	drawings, err := s.store.List(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	if drawings == nil {
		drawings = []*store.Drawing{}
	}
	writeJSON(w, http.StatusOK, drawings)
}

func (s *Server) handleGetDrawing(w http.ResponseWriter, r *http.Request) {
	d, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (s *Server) handleDeleteDrawing(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleRenderDrawing renders a saved drawing. Query parameters override
// the stored render settings: format, scale, refresh.
func (s *Server) handleRenderDrawing(w http.ResponseWriter, r *http.Request) {
	d, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}

	opts := d.Options
	q := r.URL.Query()
	if format := q.Get("format"); format != "" {
		opts.Backend = format
	}
	if raw := q.Get("scale"); raw != "" {
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil || f <= 0 {
			s.writeError(w, apperrors.New(apperrors.ErrCodeInvalidInput,
				"scale must be a positive number, got %q", raw))
			return
		}
		opts.Scale = f
	}
	if q.Get("refresh") == "true" {
		opts.Refresh = true
	}

	s.execute(w, r, opts)
}

// =============================================================================
// Helpers
// =============================================================================

// decodeOptions reads pipeline options from the request body.
func (s *Server) decodeOptions(w http.ResponseWriter, r *http.Request) (pipeline.Options, bool) {
	var opts pipeline.Options
	if err := decodeJSON(r, &opts); err != nil {
		s.writeError(w, err)
		return opts, false
	}
	return opts, true
}

func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "invalid request body")
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// errorResponse is the JSON error envelope.
type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// writeError maps application errors to HTTP responses.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "error", err)
	}
	writeJSON(w, status, errorResponse{
		Error: apperrors.UserMessage(err),
		Code:  string(apperrors.GetCode(err)),
	})
}

// statusFor maps error codes to HTTP status codes.
func statusFor(err error) int {
	if errors.Is(err, store.ErrNotFound) {
		return http.StatusNotFound
	}
	switch apperrors.GetCode(err) {
	case apperrors.ErrCodeInvalidInput,
		apperrors.ErrCodeInvalidTree,
		apperrors.ErrCodeInvalidFormat,
		apperrors.ErrCodeInvalidConfig,
		apperrors.ErrCodeInvalidBackend:
		return http.StatusBadRequest
	case apperrors.ErrCodeNotFound,
		apperrors.ErrCodeFileNotFound,
		apperrors.ErrCodeFontNotFound,
		apperrors.ErrCodeDrawingNotFound:
		return http.StatusNotFound
	case apperrors.ErrCodeUnsupported:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
