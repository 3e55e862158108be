// Package http exposes the compiler as a JSON API: stateless transform
// endpoints plus flow-record CRUD backed by a FlowStore.
package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/autograph-dev/autograph/pkg/domain"
	"github.com/autograph-dev/autograph/pkg/ports"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Service is the slice of the autograph facade the HTTP layer needs.
type Service interface {
	Compile(flow domain.Flow) *domain.CompilationResult
	Decompile(rule domain.Automation) domain.GraphDescription
	Validate(flow domain.Flow) []domain.Diagnostic
}

// Server wires the service and optional store into handlers.
type Server struct {
	service  Service
	store    ports.FlowStore
	registry *prometheus.Registry
}

// Option configures the handler.
type Option func(*Server)

// WithRegistry serves /metrics from the given registry instead of the
// process-global one.
func WithRegistry(registry *prometheus.Registry) Option {
	return func(s *Server) {
		s.registry = registry
	}
}

// NewHandler creates the HTTP handler. The store may be nil, in which
// case the /api/flows endpoints respond 501.
func NewHandler(service Service, store ports.FlowStore, opts ...Option) http.Handler {
	s := &Server{service: service, store: store}
	for _, opt := range opts {
		opt(s)
	}

	metricsHandler := promhttp.Handler()
	if s.registry != nil {
		metricsHandler = promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{})
	}

	r := chi.NewRouter()
	r.Get("/healthz", s.handleHealth)
	r.Handle("/metrics", metricsHandler)

	r.Route("/api", func(r chi.Router) {
		r.Post("/compile", s.handleCompile)
		r.Post("/decompile", s.handleDecompile)
		r.Post("/validate", s.handleValidate)
		r.Get("/catalog", s.handleCatalog)

		r.Get("/flows", s.handleListFlows)
		r.Route("/flows/{flowID}", func(r chi.Router) {
			r.Put("/", s.handlePutFlow)
			r.Get("/", s.handleGetFlow)
			r.Delete("/", s.handleDeleteFlow)
		})
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleCompile(w http.ResponseWriter, r *http.Request) {
	var flow domain.Flow
	if err := json.NewDecoder(r.Body).Decode(&flow); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, s.service.Compile(flow))
}

func (s *Server) handleDecompile(w http.ResponseWriter, r *http.Request) {
	var rule domain.Automation
	if err := json.NewDecoder(r.Body).Decode(&rule); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, s.service.Decompile(rule))
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	var flow domain.Flow
	if err := json.NewDecoder(r.Body).Decode(&flow); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	diags := s.service.Validate(flow)
	writeJSON(w, http.StatusOK, map[string]any{
		"valid":       len(diags) == 0,
		"diagnostics": diags,
	})
}

func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, domain.Catalog())
}

// handlePutFlow compiles the submitted flow and persists the record, so
// editors save and compile in one round trip.
func (s *Server) handlePutFlow(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		http.Error(w, "No flow store configured", http.StatusNotImplemented)
		return
	}
	flowID := chi.URLParam(r, "flowID")

	var flow domain.Flow
	if err := json.NewDecoder(r.Body).Decode(&flow); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	result := s.service.Compile(flow)
	rec := &ports.FlowRecord{
		ID:              flowID,
		Name:            flow.Name,
		SerializedGraph: flow.Serialized,
		Result:          result,
		UpdatedAt:       time.Now().UTC(),
	}
	if err := s.store.Save(r.Context(), flowID, rec); err != nil {
		http.Error(w, "Failed to save flow: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleGetFlow(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		http.Error(w, "No flow store configured", http.StatusNotImplemented)
		return
	}
	flowID := chi.URLParam(r, "flowID")

	rec, err := s.store.Load(r.Context(), flowID)
	if err != nil {
		if errors.Is(err, domain.ErrFlowNotFound) {
			http.Error(w, "Flow not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to load flow: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleDeleteFlow(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		http.Error(w, "No flow store configured", http.StatusNotImplemented)
		return
	}
	flowID := chi.URLParam(r, "flowID")

	if err := s.store.Delete(r.Context(), flowID); err != nil {
		http.Error(w, "Failed to delete flow: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListFlows(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		http.Error(w, "No flow store configured", http.StatusNotImplemented)
		return
	}
	ids, err := s.store.List(r.Context())
	if err != nil {
		http.Error(w, "Failed to list flows: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if ids == nil {
		ids = []string{}
	}
	writeJSON(w, http.StatusOK, map[string][]string{"flows": ids})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
