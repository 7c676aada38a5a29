package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/matzehuels/genogram/pkg/buildinfo"
	"github.com/matzehuels/genogram/pkg/diagram"
	"github.com/matzehuels/genogram/pkg/errors"
	"github.com/matzehuels/genogram/pkg/person"
	"github.com/matzehuels/genogram/pkg/pipeline"
)

// maxRequestBytes limits request body size to guard against oversized person sets.
const maxRequestBytes = 4 << 20

// contentTypes maps output formats to MIME types.
var contentTypes = map[string]string{
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatPNG:  "image/png",
	pipeline.FormatPDF:  "application/pdf",
	pipeline.FormatJSON: "application/json",
	pipeline.FormatDOT:  "text/vnd.graphviz",
}

// layoutRequest is the body of POST /v1/layout and /v1/render.
type layoutRequest struct {
	Persons     []person.Record `json:"persons"`
	BoxWidth    float64         `json:"box_width,omitempty"`
	BoxHeight   float64         `json:"box_height,omitempty"`
	Spacing     float64         `json:"spacing,omitempty"`
	RunSpacing  float64         `json:"run_spacing,omitempty"`
	Orientation string          `json:"orientation,omitempty"`

	// Render-only fields, ignored by /v1/layout.
	Format     string  `json:"format,omitempty"`
	Background string  `json:"background,omitempty"`
	HideLabels bool    `json:"hide_labels,omitempty"`
	Scale      float64 `json:"scale,omitempty"`
}

// layoutResponse is the body of a successful POST /v1/layout.
type layoutResponse struct {
	PersonsHash string         `json:"persons_hash"`
	Layout      diagram.Layout `json:"layout"`
	Stats       statsResponse  `json:"stats"`
}

type statsResponse struct {
	PersonCount    int    `json:"person_count"`
	ConnectorCount int    `json:"connector_count"`
	LayoutTime     string `json:"layout_time"`
}

// errorResponse is the body of any failed request.
type errorResponse struct {
	Error errorBody `json:"error"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// handleHealth reports liveness and build information.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

// handleLayout computes a layout from an inline person set.
func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	req, err := decodeRequest(r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	start := time.Now()
	result, err := s.runner.Execute(r.Context(), pipeline.Options{
		Persons:     req.Persons,
		BoxWidth:    req.BoxWidth,
		BoxHeight:   req.BoxHeight,
		Spacing:     req.Spacing,
		RunSpacing:  req.RunSpacing,
		Orientation: req.Orientation,
		Formats:     []string{pipeline.FormatJSON},
		Logger:      s.logger,
	})
	if err != nil {
		s.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, layoutResponse{
		PersonsHash: result.PersonsHash,
		Layout:      result.Layout,
		Stats: statsResponse{
			PersonCount:    result.Stats.PersonCount,
			ConnectorCount: result.Stats.ConnectorCount,
			LayoutTime:     time.Since(start).Round(time.Millisecond).String(),
		},
	})
}

// handleRender renders a single format from an inline person set and
// returns the raw artifact bytes.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	req, err := decodeRequest(r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	format := req.Format
	if format == "" {
		format = pipeline.FormatSVG
	}
	if err := pipeline.ValidateFormat(format); err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInvalidFormat, err, "invalid format"))
		return
	}

	result, err := s.runner.Execute(r.Context(), pipeline.Options{
		Persons:     req.Persons,
		BoxWidth:    req.BoxWidth,
		BoxHeight:   req.BoxHeight,
		Spacing:     req.Spacing,
		RunSpacing:  req.RunSpacing,
		Orientation: req.Orientation,
		Formats:     []string{format},
		Background:  req.Background,
		HideLabels:  req.HideLabels,
		Scale:       req.Scale,
		Logger:      s.logger,
	})
	if err != nil {
		s.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", contentTypes[format])
	w.WriteHeader(http.StatusOK)
	w.Write(result.Artifacts[format])
}

// decodeRequest parses and validates the shared request body.
func decodeRequest(r *http.Request) (*layoutRequest, error) {
	var req layoutRequest
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxRequestBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode request body")
	}
	if len(req.Persons) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "persons must not be empty")
	}
	if req.Orientation != "" {
		if err := pipeline.ValidateOrientation(req.Orientation); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidOrientation, err, "invalid orientation")
		}
	}
	return &req, nil
}

// statusForCode maps structured error codes to HTTP status codes.
func statusForCode(code errors.Code) int {
	switch code {
	case errors.ErrCodeInvalidInput,
		errors.ErrCodeInvalidFormat,
		errors.ErrCodeInvalidGender,
		errors.ErrCodeInvalidOrientation,
		errors.ErrCodeDuplicateID:
		return http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case errors.ErrCodeUnsupported:
		return http.StatusUnsupportedMediaType
	default:
		return http.StatusInternalServerError
	}
}

// writeError writes a structured error response.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	status := statusForCode(code)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "error", err)
	}
	writeJSON(w, status, errorResponse{Error: errorBody{
		Code:    string(code),
		Message: errors.UserMessage(err),
	}})
}

// writeJSON writes v as a JSON response with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
