package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jonesrussell/product-curator/internal/api"
	"github.com/jonesrussell/product-curator/internal/blacklist"
	"github.com/jonesrussell/product-curator/internal/config"
	"github.com/jonesrussell/product-curator/internal/events"
	"github.com/jonesrussell/product-curator/internal/logger"
	"github.com/jonesrussell/product-curator/internal/session"
)

const shutdownTimeout = 10 * time.Second

// Server wraps the HTTP server with graceful shutdown handling.
type Server struct {
	server *http.Server
	logger logger.Logger
}

// SetupHTTPServer creates and configures the HTTP server.
func SetupHTTPServer(
	cfg *config.Config,
	sessions *session.Store,
	blacklistService *blacklist.Service,
	publisher *events.Publisher,
	log logger.Logger,
) *Server {
	if cfg.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := api.NewRouter(api.Deps{
		Sessions:    sessions,
		Blacklist:   blacklistService,
		Publisher:   publisher,
		CORSOrigins: cfg.Server.CORSOrigins,
		Logger:      log,
	})

	return &Server{
		server: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
			Handler:      router,
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
		},
		logger: log,
	}
}

// Run starts the server and blocks until a shutdown signal arrives or
// the listener fails, then shuts down gracefully.
func (s *Server) Run() error {
	errCh := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-sigCh:
		s.logger.Info("Shutdown signal received",
			logger.String("signal", sig.String()),
		)
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	s.logger.Info("HTTP server stopped gracefully")
	return nil
}
