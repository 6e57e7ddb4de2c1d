// Package http exposes the framework over a stateless JSON API.
package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	orchestron "github.com/orchestron-dev/orchestron"
	"github.com/orchestron-dev/orchestron/pkg/domain"
)

// Server routes API requests to a Framework.
type Server struct {
	fw *orchestron.Framework
}

// ServerOption configures the handler.
type ServerOption func(*handlerConfig)

type handlerConfig struct {
	gatherer prometheus.Gatherer
}

// WithGatherer mounts /metrics backed by the given Prometheus registry.
func WithGatherer(g prometheus.Gatherer) ServerOption {
	return func(c *handlerConfig) {
		if g != nil {
			c.gatherer = g
		}
	}
}

// NewHandler creates the HTTP handler for the framework API.
func NewHandler(fw *orchestron.Framework, opts ...ServerOption) http.Handler {
	cfg := &handlerConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	s := &Server{fw: fw}
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.Health)
	if cfg.gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(cfg.gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api", func(r chi.Router) {
		r.Get("/nodes", s.ListNodes)
		r.Get("/nodes/{name}", s.GetNode)
		r.Post("/nodes/{name}/run", s.RunNode)
		r.Get("/chains", s.ListChains)
		r.Post("/chains/{name}/run", s.RunChain)
	})

	return r
}

// Health handles GET /healthz.
func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "version": orchestron.Version})
}

// ListNodes handles GET /api/nodes.
func (s *Server) ListNodes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"nodes": s.fw.Descriptors()})
}

// GetNode handles GET /api/nodes/{name}.
func (s *Server) GetNode(w http.ResponseWriter, r *http.Request) {
	desc, err := s.fw.Describe(chi.URLParam(r, "name"))
	if err != nil {
		if errors.Is(err, domain.ErrNodeNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, fmt.Sprintf("Describe error: %v", err), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, desc)
}

// RunNode handles POST /api/nodes/{name}/run. The body is the raw parameter
// map; an empty body runs the node with no parameters. The response is always
// a structured result, with the HTTP status mirroring the outcome.
func (s *Server) RunNode(w http.ResponseWriter, r *http.Request) {
	raw := map[string]any{}
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
	}

	res := s.fw.Run(r.Context(), chi.URLParam(r, "name"), raw)
	if res.OK {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true, "payload": res.Payload})
		return
	}
	writeJSON(w, statusForFailure(res.Failure.Kind), map[string]any{
		"ok":    false,
		"kind":  res.Failure.Kind,
		"node":  res.Failure.Node,
		"error": res.Failure.Message,
	})
}

// ListChains handles GET /api/chains.
func (s *Server) ListChains(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"chains": s.fw.Chains()})
}

// RunChain handles POST /api/chains/{name}/run.
func (s *Server) RunChain(w http.ResponseWriter, r *http.Request) {
	res, err := s.fw.RunChain(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		if errors.Is(err, domain.ErrChainNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, fmt.Sprintf("Chain error: %v", err), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// statusForFailure maps failure kinds to HTTP statuses. Runs always answer
// with a body; only the status line varies.
func statusForFailure(kind domain.FailureKind) int {
	switch kind {
	case domain.KindValidation:
		return http.StatusUnprocessableEntity
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindAuth:
		return http.StatusBadGateway
	case domain.KindConnection, domain.KindWrite:
		return http.StatusBadGateway
	case domain.KindConfig:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		fmt.Printf("encode error: %v\n", err)
	}
}
