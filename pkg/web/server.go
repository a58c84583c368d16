package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/ritzau/electre-kernel/pkg/kernel"
	"github.com/ritzau/electre-kernel/pkg/logging"
	"github.com/ritzau/electre-kernel/pkg/model"
	"github.com/ritzau/electre-kernel/pkg/outranking"
)

// maxBodyBytes bounds request bodies; a 1000 x 1000 matrix fits comfortably
const maxBodyBytes = 32 << 20

// KernelRequest asks for the kernel of an outranking relation
type KernelRequest struct {
	Alternatives []string          `json:"alternatives"`
	Outranking   model.Comparisons `json:"outranking"`
	Crisp        bool              `json:"crisp"`
	CutThreshold *float64          `json:"cut_threshold,omitempty"` // Server default when omitted
	Credibility  model.Comparisons `json:"credibility,omitempty"`   // Edge weights, outranking values when omitted
	Method       string            `json:"method,omitempty"`        // Server default when empty
}

// KernelResponse holds the kernel and the reduced graph it was extracted from
type KernelResponse struct {
	Kernel     []string             `json:"kernel"`
	Nodes      []int64              `json:"nodes"`
	Iterations int                  `json:"iterations"`
	Method     string               `json:"method"`
	Graph      *model.GraphSnapshot `json:"graph"`
}

// CutRequest asks for the crisp relations of a credibility matrix
type CutRequest struct {
	Alternatives []string          `json:"alternatives"`
	Profiles     []string          `json:"profiles,omitempty"` // Compare with profiles instead of alternatives
	Credibility  model.Comparisons `json:"credibility"`
	CutThreshold *float64          `json:"cut_threshold,omitempty"`
}

// CutResponse lists the relation of every compared pair
type CutResponse struct {
	Relations []outranking.Pair `json:"relations"`
}

// Defaults fill in request fields left empty
type Defaults struct {
	Method       model.EliminationMethod
	CutThreshold float64
}

// Server represents the web server
type Server struct {
	router   *mux.Router
	defaults Defaults
}

// NewServer creates a new web server
func NewServer(defaults Defaults) *Server {
	s := &Server{
		router:   mux.NewRouter(),
		defaults: defaults,
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.Use(logging.RequestIDMiddleware)

	s.router.HandleFunc("/api/health", s.handleHealth).Methods("GET")
	s.router.HandleFunc("/api/kernel", s.handleKernel).Methods("POST")
	s.router.HandleFunc("/api/cut", s.handleCut).Methods("POST")
}

// Handler returns the HTTP handler serving all routes
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleKernel(w http.ResponseWriter, r *http.Request) {
	var req KernelRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	method := s.defaults.Method
	if req.Method != "" {
		m, err := model.ParseEliminationMethod(req.Method)
		if err != nil {
			writeError(w, r, err)
			return
		}
		method = m
	}

	rel := model.NewCrispRelation(req.Outranking)
	if !req.Crisp {
		threshold := s.defaults.CutThreshold
		if req.CutThreshold != nil {
			threshold = *req.CutThreshold
		}
		if err := outranking.ValidateCutThreshold(threshold); err != nil {
			writeError(w, r, err)
			return
		}
		rel = model.NewValuedRelation(req.Outranking, threshold)
	}

	// Without a credibility matrix the outranking values weigh the edges
	weights := req.Credibility
	if weights == nil {
		weights = req.Outranking
	}

	result, err := kernel.Find(req.Alternatives, rel, weights, method)
	if err != nil {
		writeError(w, r, err)
		return
	}

	logging.InfoContext(r.Context(), "kernel computed", "method", method, "kernel", result.Labels)
	writeJSON(w, http.StatusOK, KernelResponse{
		Kernel:     result.Labels,
		Nodes:      result.Kernel,
		Iterations: result.Iterations,
		Method:     string(result.Method),
		Graph:      result.Reduced.Snapshot(),
	})
}

func (s *Server) handleCut(w http.ResponseWriter, r *http.Request) {
	var req CutRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	threshold := s.defaults.CutThreshold
	if req.CutThreshold != nil {
		threshold = *req.CutThreshold
	}

	bs := req.Alternatives
	if len(req.Profiles) > 0 {
		bs = req.Profiles
	}

	relations, err := outranking.Cut(req.Alternatives, bs, req.Credibility, threshold)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, CutResponse{Relations: relations.Pairs(req.Alternatives, bs)})
}

// decode reads a JSON request body. Malformed bodies are configuration errors.
func decode(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: invalid request body: %v", model.ErrConfiguration, err)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Error("failed to encode response", "error", err)
	}
}

// writeError maps configuration errors to 400 and everything else to 500
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	if errors.Is(err, model.ErrConfiguration) {
		status = http.StatusBadRequest
	}
	logging.DebugContext(r.Context(), "request error", "status", status, "error", err)
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

// Start serves on addr until ctx is cancelled, then shuts down gracefully
func (s *Server) Start(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		logging.Info("starting web server", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("web server failed: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	logging.Info("shutting down web server")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("web server shutdown failed: %w", err)
	}
	return nil
}
