// Package server hosts the HTTP surface: the agent endpoint plus the seed
// and health helpers.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"meridian/pkg/handler"
)

// Server wraps the http.Server lifecycle around the agent handler.
type Server struct {
	port   int
	server *http.Server
}

func New(port int, h *handler.AgentHandler) *Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/agent", withCORS(h.HandleAgent))
	mux.HandleFunc("/agent/seed", withCORS(h.HandleSeed))
	mux.HandleFunc("/healthz", h.HandleHealth)

	return &Server{
		port: port,
		server: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           mux,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

// Start begins serving in the background. Errors other than a clean close
// are logged, not returned; the caller shuts down via Stop.
func (s *Server) Start() {
	slog.Info("Agent API listening", "port", s.port)

	go func() {
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Agent API server error", "error", err)
		}
	}()
}

// Stop drains in-flight requests until ctx expires.
func (s *Server) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// withCORS allows a decoupled browser UI to call the API from any origin
// and answers preflight requests directly.
func withCORS(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next(w, r)
	}
}
