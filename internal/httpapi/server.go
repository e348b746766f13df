package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/manualmind/mcp-bridge/internal/manualmind"
	"github.com/manualmind/mcp-bridge/internal/tools"
	"github.com/manualmind/mcp-bridge/pkg/types"
)

// shutdownGrace bounds how long in-flight requests may finish after the
// serve context is cancelled.
const shutdownGrace = 5 * time.Second

// Server is the REST surface over the same tool invoker the stdio loop
// uses. Tool-level failures are HTTP 200 with success false; HTTP status
// codes are reserved for the transport itself.
type Server struct {
	invoker *tools.Invoker
	addr    string
	apiKey  string
	log     *slog.Logger
}

// NewServer creates the REST surface. An empty apiKey leaves the surface
// unauthenticated.
func NewServer(invoker *tools.Invoker, port int, apiKey string, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{
		invoker: invoker,
		addr:    fmt.Sprintf(":%d", port),
		apiKey:  apiKey,
		log:     log,
	}
}

// Handler assembles the route table inside the middleware chain.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleRoot)
	mux.HandleFunc("/tools", s.handleTools)
	mux.HandleFunc("/call", s.handleCall)
	mux.HandleFunc("/query", s.handleQuery)
	mux.HandleFunc("/status", s.handleStatus)
	mux.HandleFunc("/process", s.handleProcess)
	return s.withRequestID(s.withLogging(s.withAuth(mux)))
}

// Run serves until ctx is cancelled, then drains in-flight requests.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
		// No WriteTimeout: one query may legitimately hold the connection
		// for the backend timeout times the retry budget.
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("http api listening", "addr", s.addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("serve http api: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http api: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serve http api: %w", err)
	}
	s.log.Info("http api stopped")
	return nil
}

// writeOutcome renders one invocation result. Raw-shape backend payloads
// get the full report layout; everything else uses the normalized text.
func (s *Server) writeOutcome(w http.ResponseWriter, outcome *tools.Outcome) {
	text := outcome.Text
	if rich, ok := manualmind.RenderRich(outcome.Reply, outcome.Tool); ok {
		text = rich
	}
	jsonResponse(w, http.StatusOK, types.NewToolResponse(text, outcome.IsError))
}

func jsonResponse(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
