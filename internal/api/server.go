// Package api exposes the HTTP control plane: health, dataset listing
// and download, and triggering generation runs. Runs are serialized
// per process with a weight-1 semaphore so concurrent requests never
// interleave writes into the output tree.
package api

import (
	"context"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"

	"github.com/Vasishta03/DataForge/internal/generator"
	"github.com/Vasishta03/DataForge/internal/store"
)

// Runner executes one generation run. Satisfied by
// *generator.Orchestrator.
type Runner interface {
	Run(ctx context.Context, req generator.Request, stop *generator.StopToken) *generator.Result
}

// Server is the control-plane HTTP server.
type Server struct {
	datasetsDir string
	apiKey      string
	runner      Runner
	runs        *store.RunStore
	runSem      *semaphore.Weighted
	logger      *zap.Logger
}

// Config configures the Server.
type Config struct {
	DatasetsDir string
	APIKey      string
}

// NewServer creates a Server. runner and runs may be nil, which
// disables POST /api/generate.
func NewServer(cfg Config, runner Runner, runs *store.RunStore, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		datasetsDir: cfg.DatasetsDir,
		apiKey:      cfg.APIKey,
		runner:      runner,
		runs:        runs,
		runSem:      semaphore.NewWeighted(1),
		logger:      logger,
	}
}

// Handler builds the route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/health", s.handleHealth)
	mux.HandleFunc("GET /api/datasets", s.auth(s.handleListDatasets))
	mux.HandleFunc("GET /api/download/{keyword}/{file}", s.auth(s.handleDownload))
	mux.HandleFunc("GET /api/download-zip/{keyword}", s.auth(s.handleDownloadZip))
	mux.HandleFunc("GET /api/runs", s.auth(s.handleListRuns))
	mux.HandleFunc("POST /api/generate", s.auth(s.handleGenerate))
	return mux
}

// ListenAndServe runs the server until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	s.logger.Info("control-plane listening", zap.String("addr", addr))
	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

// auth enforces the bearer token when one is configured.
func (s *Server) auth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.apiKey == "" {
			next(w, r)
			return
		}
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token != s.apiKey {
			writeError(w, http.StatusUnauthorized, "invalid API key")
			return
		}
		next(w, r)
	}
}
