package httpserver

import (
	"context"
	"log"
	"net/http"
	"time"
)

// Server wraps the HTTP server setup for the storefront gateway.
type Server struct {
	httpServer *http.Server
	logger     *log.Logger
}

// New builds a Server with the gateway routes.
func New(addr string, logger *log.Logger, deps Deps, allowedOrigins []string) (*Server, error) {
	router := buildRouter(logger, deps, allowedOrigins)

	httpSrv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	return &Server{
		httpServer: httpSrv,
		logger:     logger,
	}, nil
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
