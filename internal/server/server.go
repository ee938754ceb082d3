// Package server exposes package statistics as a small JSON API.
//
// The server shares the pipeline Runner (and therefore the counts cache)
// with the CLI, so the serve mode is a thin HTTP skin over the same
// fetch → tally → select sequence.
package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/mlindner/pkgstats/pkg/config"
	"github.com/mlindner/pkgstats/pkg/contents"
	apperrors "github.com/mlindner/pkgstats/pkg/errors"
	"github.com/mlindner/pkgstats/pkg/pipeline"
)

// maxK bounds the k query parameter; anything larger than the distinct
// package count returns everything anyway.
const maxK = 10000

// Server handles the HTTP API.
type Server struct {
	runner *pipeline.Runner
	cfg    config.Config
	logger *log.Logger
}

// New creates the HTTP handler with all routes and middleware.
func New(runner *pipeline.Runner, cfg config.Config, logger *log.Logger) http.Handler {
	s := &Server{runner: runner, cfg: cfg, logger: logger}

	r := chi.NewRouter()
	r.Use(s.requestID)
	r.Use(s.logRequests)

	r.Get("/healthz", s.handleHealth)
	r.Get("/v1/stats/{arch}", s.handleStats)

	return r
}

// statsResponse is the JSON body for a stats request.
type statsResponse struct {
	Arch     string           `json:"arch"`
	K        int              `json:"k"`
	CacheHit bool             `json:"cache_hit"`
	Entries  []contents.Entry `json:"entries"`
}

// errorResponse is the JSON body for a failed request.
type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	arch := chi.URLParam(r, "arch")

	k := s.cfg.Top
	if raw := r.URL.Query().Get("k"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > maxK {
			writeJSON(w, http.StatusBadRequest, errorResponse{
				Error: "k must be an integer between 1 and 10000",
			})
			return
		}
		k = parsed
	}

	opts := pipeline.Options{
		Arch:           arch,
		K:              k,
		MirrorTemplate: s.cfg.MirrorTemplate,
		CacheTTL:       s.cfg.Cache.TTL.Duration,
	}

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, err)
		return
	}

	entries := result.Entries
	if entries == nil {
		entries = []contents.Entry{}
	}
	writeJSON(w, http.StatusOK, statsResponse{
		Arch:     arch,
		K:        k,
		CacheHit: result.CacheHit,
		Entries:  entries,
	})
}

// writeError maps pipeline error codes onto HTTP statuses: usage errors
// are the client's fault, retrieval problems are upstream, everything
// else is internal.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch apperrors.GetCode(err) {
	case apperrors.ErrCodeUsage:
		status = http.StatusBadRequest
	case apperrors.ErrCodeRetrieval:
		status = http.StatusBadGateway
	case apperrors.ErrCodeDecompress:
		status = http.StatusUnprocessableEntity
	}

	writeJSON(w, status, errorResponse{
		Error: apperrors.UserMessage(err),
		Code:  string(apperrors.GetCode(err)),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// requestID tags each request with a UUID for log correlation.
func (s *Server) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Request-Id", uuid.NewString())
		next.ServeHTTP(w, r)
	})
}

// logRequests logs method, path, and duration for every request.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"id", w.Header().Get("X-Request-Id"),
			"duration", time.Since(start).Round(time.Millisecond))
	})
}
