// Package server exposes the calculator over a small JSON HTTP API.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/eqcalc/eqcalc/pkg/calc"
)

// maxRequestBytes bounds the accepted request body size.
const maxRequestBytes = 64 * 1024

// Server serves evaluation requests over HTTP.
type Server struct {
	port      int
	variables map[string]float64
	logger    *slog.Logger
}

// Config holds configuration for the HTTP server.
type Config struct {
	Port int
	// Variables are ambient bindings merged under request-supplied
	// bindings for every evaluation.
	Variables map[string]float64
	Logger    *slog.Logger
}

// New creates a new Server instance.
func New(cfg Config) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Server{
		port:      cfg.Port,
		variables: cfg.Variables,
		logger:    logger,
	}
}

// Handler returns the HTTP handler tree.
func (s *Server) Handler() http.Handler {
	r := chi.NewMux()
	r.Use(
		middleware.RequestID,
		middleware.Recoverer,
	)

	r.Get("/healthz", s.handleHealth)
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/eval", s.handleEval)
	})

	return r
}

// Serve starts the server and blocks until the context is cancelled.
func (s *Server) Serve(ctx context.Context) error {
	addr := fmt.Sprintf(":%d", s.port)
	s.logger.Info("starting eval server", "addr", fmt.Sprintf("http://localhost:%d", s.port))

	eg, egctx := errgroup.WithContext(ctx)

	srv := &http.Server{
		Addr:    addr,
		Handler: s.Handler(),
		BaseContext: func(_ net.Listener) context.Context {
			return egctx
		},
		ReadHeaderTimeout: 10 * time.Second,
	}

	eg.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})

	eg.Go(func() error {
		<-egctx.Done()
		s.logger.Info("shutting down eval server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return eg.Wait()
}

// evalRequest is the body of POST /api/v1/eval.
type evalRequest struct {
	Expression string             `json:"expression"`
	Variables  map[string]float64 `json:"variables,omitempty"`
}

// evalResponse is the wire form of a calc.Result. Value is omitted for
// non-finite results, which JSON cannot represent; Display always
// carries the formatted value on success.
type evalResponse struct {
	OK      bool     `json:"ok"`
	Value   *float64 `json:"value,omitempty"`
	Display string   `json:"display,omitempty"`
	Message string   `json:"message,omitempty"`
}

func toEvalResponse(res calc.Result) evalResponse {
	out := evalResponse{OK: res.OK, Message: res.Message}
	if res.OK {
		out.Display = strconv.FormatFloat(res.Value, 'g', -1, 64)
		if !math.IsNaN(res.Value) && !math.IsInf(res.Value, 0) {
			v := res.Value
			out.Value = &v
		}
	}
	return out
}

func (s *Server) handleEval(w http.ResponseWriter, r *http.Request) {
	var req evalRequest

	body := http.MaxBytesReader(w, r.Body, maxRequestBytes)
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}

	vars := s.mergeVariables(req.Variables)
	res := calc.CalculateWith(req.Expression, vars)
	s.logger.Debug("evaluated expression",
		"expression", req.Expression, "ok", res.OK, "message", res.Message)

	s.writeJSON(w, http.StatusOK, toEvalResponse(res))
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// mergeVariables layers request bindings over the server's ambient
// bindings without mutating either map.
func (s *Server) mergeVariables(reqVars map[string]float64) map[string]float64 {
	if len(s.variables) == 0 {
		return reqVars
	}
	merged := make(map[string]float64, len(s.variables)+len(reqVars))
	for k, v := range s.variables {
		merged[k] = v
	}
	for k, v := range reqVars {
		merged[k] = v
	}
	return merged
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("failed to encode response", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]string{"error": msg})
}
