// Package web serves the snippet compiler over HTTP for playgrounds and
// documentation sites.
package web

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/panyam/snippet/compiler"
	"github.com/panyam/snippet/decl"
	"github.com/panyam/snippet/parser"
	"github.com/panyam/snippet/probe"
	"github.com/panyam/snippet/transpile"
)

// Max accepted request body
const DefaultMaxBodyBytes = 1 << 20

// API exposes compile and classify endpoints.
type API struct {
	compiler     *compiler.Compiler
	MaxBodyBytes int64
	Version      string
}

func NewAPI(c *compiler.Compiler) *API {
	return &API{compiler: c, MaxBodyBytes: DefaultMaxBodyBytes}
}

// RegisterRoutes registers the API routes on router.
func (a *API) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/compile", a.Compile).Methods("POST")
	router.HandleFunc("/api/classify", a.Classify).Methods("POST")
	router.HandleFunc("/api/health", a.Health).Methods("GET")
}

// CompileRequest is the body of both compile and classify.
type CompileRequest struct {
	Code    string       `json:"code"`
	Options decl.Options `json:"options"`
}

// CompileResponse is returned by /api/compile.
type CompileResponse struct {
	Script   string       `json:"script"`
	Style    string       `json:"style,omitempty"`
	Form     string       `json:"form"`
	Captured []string     `json:"captured,omitempty"`
	Options  decl.Options `json:"options"`
}

// ClassifyResponse is returned by /api/classify.
type ClassifyResponse struct {
	Form        string `json:"form"`
	HasTemplate bool   `json:"hasTemplate"`
	HasStyle    bool   `json:"hasStyle"`
	Script      string `json:"script"`
	Template    string `json:"template,omitempty"`
	Style       string `json:"style,omitempty"`
}

// ErrorResponse carries the position of syntax errors when known.
type ErrorResponse struct {
	Error  string `json:"error"`
	Line   int    `json:"line,omitempty"`
	Column int    `json:"column,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

// writeError maps snippet errors to 422 with a position, others to 500.
func writeError(w http.ResponseWriter, err error) {
	resp := ErrorResponse{Error: err.Error()}
	var perr *parser.ParseError
	var terr *transpile.Error
	switch {
	case errors.As(err, &perr):
		resp.Line, resp.Column = perr.Line, perr.Column
	case errors.As(err, &terr):
		resp.Line, resp.Column = terr.Line, terr.Column
	}
	writeJSON(w, http.StatusUnprocessableEntity, resp)
}

func (a *API) decode(w http.ResponseWriter, r *http.Request) (*CompileRequest, bool) {
	var req CompileRequest
	body := http.MaxBytesReader(w, r.Body, a.MaxBodyBytes)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid request: " + err.Error()})
		return nil, false
	}
	return &req, true
}

// forRequest probes the caller's browser so output runs natively there.
func (a *API) forRequest(r *http.Request) *compiler.Compiler {
	return a.compiler.WithProbe(probe.Browser{UserAgent: r.UserAgent()})
}

func (a *API) Compile(w http.ResponseWriter, r *http.Request) {
	req, ok := a.decode(w, r)
	if !ok {
		return
	}
	res, err := a.forRequest(r).CompileDetailed(req.Code, req.Options)
	if err != nil {
		slog.Debug("Compile failed", "error", err)
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, CompileResponse{
		Script:   res.Script,
		Style:    res.Style,
		Form:     string(res.Form),
		Captured: res.Captured,
		Options:  res.Options,
	})
}

func (a *API) Classify(w http.ResponseWriter, r *http.Request) {
	req, ok := a.decode(w, r)
	if !ok {
		return
	}
	form, err := a.forRequest(r).Classify(req.Code, req.Options)
	if err != nil {
		writeError(w, err)
		return
	}
	parts := form.Parts()
	writeJSON(w, http.StatusOK, ClassifyResponse{
		Form:        string(form.Kind()),
		HasTemplate: parts.HasTemplate(),
		HasStyle:    parts.HasStyle(),
		Script:      parts.Script,
		Template:    parts.TemplateText(),
		Style:       parts.StyleText(),
	})
}

func (a *API) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "version": a.Version})
}
