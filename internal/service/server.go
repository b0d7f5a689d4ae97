package service

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// apiServer HTTP front of the monitor, bound to the service lifetime
type apiServer struct {
	httpServer      *http.Server
	shutdownTimeout time.Duration
	logger          *zap.Logger
}

func newAPIServer(handler http.Handler, shutdownTimeout time.Duration, logger *zap.Logger) *apiServer {
	return &apiServer{
		httpServer: &http.Server{
			Handler:           handler,
			ReadHeaderTimeout: 5 * time.Second,
		},
		shutdownTimeout: shutdownTimeout,
		logger:          logger,
	}
}

// Run serves on l until ctx is done or serving fails, then shuts down,
// giving in-flight requests up to the shutdown timeout. A clean stop returns nil.
func (s *apiServer) Run(ctx context.Context, l net.Listener) error {
	s.logger.Info("Starting HTTP server", zap.String("addr", l.Addr().String()))

	srvErr := make(chan error, 1)
	go func() {
		srvErr <- s.httpServer.Serve(l)
	}()

	var runErr error
	select {
	case <-ctx.Done():
	case err := <-srvErr:
		if !errors.Is(err, http.ErrServerClosed) {
			runErr = fmt.Errorf("http server failed: %w", err)
		}
	}

	s.logger.Info("Stopping HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		s.logger.Error("Failed to stop HTTP server", zap.Error(err))
	}
	return runErr
}
