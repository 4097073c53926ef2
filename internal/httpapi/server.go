// Package httpapi exposes the conversion pipeline over HTTP. A single POST
// endpoint accepts raw configuration text plus caller options and returns the
// XML rendering alongside the extracted tables.
package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	confmig "github.com/goliatone/go-confmig"
	"github.com/goliatone/go-confmig/internal/logging"
	"github.com/goliatone/go-confmig/pkg/document"
)

// ConvertRequest is the POST /convert payload.
type ConvertRequest struct {
	Config  string         `json:"config"`
	Options map[string]any `json:"options"`
}

// ConvertResponse is the successful POST /convert reply.
type ConvertResponse struct {
	Message string         `json:"message"`
	XML     string         `json:"xml"`
	Tables  document.Value `json:"tables"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Server routes HTTP requests into a Pipeline with a fixed conversion
// profile.
type Server struct {
	pipeline *confmig.Pipeline
	profile  string
}

// NewServer builds a Server converting with the given profile.
func NewServer(pipeline *confmig.Pipeline, profile string) *Server {
	return &Server{pipeline: pipeline, profile: profile}
}

// Routes assembles the router: request IDs, logging, permissive CORS, the
// convert endpoint, and a health probe.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(corsHeaders)

	r.Post("/convert", s.handleConvert)
	r.Get("/healthz", handleHealth)
	return r
}

// corsHeaders allows browser frontends on any origin to call the API and
// answers preflight requests directly.
func corsHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "*")
		w.Header().Set("Access-Control-Allow-Methods", "OPTIONS,POST,GET")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	logger := logging.FromContext(r.Context())

	var req ConvertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("convert request rejected", "error", err)
		respondError(w, http.StatusBadRequest, "request body must be a JSON object")
		return
	}
	if req.Config == "" {
		respondError(w, http.StatusBadRequest, "config field is required")
		return
	}

	opts := document.FromAny(req.Options)
	result, err := s.pipeline.Convert(r.Context(), req.Config, s.profile, opts)
	if err != nil {
		var templateErr *confmig.TemplateError
		if errors.As(err, &templateErr) {
			logger.Error("conversion template failed",
				"template", templateErr.Template, "error", templateErr.Err)
		} else {
			logger.Error("conversion failed", "error", err)
		}
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	xml, err := s.pipeline.Serialize(result.Document, confmig.SerializerXML)
	if err != nil {
		logger.Error("xml serialization failed", "error", err)
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	logger.Info("conversion complete",
		"profile", s.profile, "tables", result.Tables.Len())
	respondJSON(w, http.StatusOK, ConvertResponse{
		Message: "success",
		XML:     string(xml),
		Tables:  result.Tables.Value(),
	})
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, errorResponse{Error: message})
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
