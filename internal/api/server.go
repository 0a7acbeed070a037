// Package api provides the HTTP formatting service.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sparkfmt/sparkfmt/pkg/format"
	"golang.org/x/sync/errgroup"
)

// Server is the formatting API server.
type Server struct {
	port     int
	defaults format.Options
	logger   *slog.Logger
}

// Config holds configuration for the API server.
type Config struct {
	Port           int
	DefaultOptions format.Options
	Logger         *slog.Logger
}

// NewServer creates a new API server instance.
func NewServer(cfg Config) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Server{
		port:     cfg.Port,
		defaults: cfg.DefaultOptions,
		logger:   logger,
	}
}

// Handler returns the HTTP handler. Exposed for tests.
func (s *Server) Handler() http.Handler {
	r := chi.NewMux()
	r.Use(
		middleware.Logger,
		middleware.Recoverer,
		middleware.Compress(5),
	)

	r.Get("/healthz", s.handleHealth)
	r.Post("/api/v1/format", s.handleFormat)

	return r
}

// Serve starts the server and blocks until the context is cancelled.
func (s *Server) Serve(ctx context.Context) error {
	addr := fmt.Sprintf(":%d", s.port)
	s.logger.Info("starting API server", "addr", fmt.Sprintf("http://localhost:%d", s.port))

	eg, egctx := errgroup.WithContext(ctx)

	srv := &http.Server{
		Addr:    addr,
		Handler: s.Handler(),
		BaseContext: func(_ net.Listener) context.Context {
			return egctx
		},
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start HTTP server
	eg.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	// Graceful shutdown
	eg.Go(func() error {
		<-egctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Debug("shutting down API server...")
		return srv.Shutdown(shutdownCtx)
	})

	return eg.Wait()
}

// formatRequest is the payload of POST /api/v1/format.
type formatRequest struct {
	SQL     string         `json:"sql"`
	Options *formatOptions `json:"options,omitempty"`
}

// formatOptions mirrors format.Options with JSON field names. Omitted
// fields keep the server's defaults.
type formatOptions struct {
	IndentSize    int    `json:"indent_size,omitempty"`
	KeywordCase   string `json:"keyword_case,omitempty"`
	CommaPosition string `json:"comma_position,omitempty"`
}

type formatResponse struct {
	Formatted string `json:"formatted"`
	Changed   bool   `json:"changed"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleFormat(w http.ResponseWriter, r *http.Request) {
	defer func() { _ = r.Body.Close() }()

	var req formatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.logger.Error("failed to decode request", "error", err)
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request payload"})
		return
	}

	if req.SQL == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "sql is required"})
		return
	}

	opts, err := s.resolveOptions(req.Options)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	formatted := format.Format(req.SQL, opts)
	writeJSON(w, http.StatusOK, formatResponse{
		Formatted: formatted,
		Changed:   formatted != req.SQL,
	})
}

// resolveOptions overlays request options onto the server defaults,
// rejecting unknown style names.
func (s *Server) resolveOptions(o *formatOptions) (format.Options, error) {
	opts := s.defaults
	if o == nil {
		return opts, nil
	}
	if o.IndentSize != 0 {
		if o.IndentSize < 0 {
			return opts, fmt.Errorf("invalid indent_size: %d, must be positive", o.IndentSize)
		}
		opts.IndentSize = o.IndentSize
	}
	if o.KeywordCase != "" {
		kc, err := format.ParseKeywordCase(o.KeywordCase)
		if err != nil {
			return opts, err
		}
		opts.KeywordCase = kc
	}
	if o.CommaPosition != "" {
		cp, err := format.ParseCommaPosition(o.CommaPosition)
		if err != nil {
			return opts, err
		}
		opts.CommaPosition = cp
	}
	return opts, nil
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
