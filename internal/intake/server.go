package intake

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/muurk/logobrief/internal/logging"
	"github.com/muurk/logobrief/internal/questionnaire"
)

const (
	// BriefsPath accepts submitted briefs
	BriefsPath = "/api/v1/briefs"

	// FeedPath streams accepted briefs over a websocket
	FeedPath = "/api/v1/feed"

	// HealthPath reports liveness and version
	HealthPath = "/healthz"

	// DefaultShutdownTimeout bounds graceful shutdown
	DefaultShutdownTimeout = 10 * time.Second
)

// Config holds the server configuration
type Config struct {
	Addr            string // Listen address, e.g. ":8080"
	LogLevel        string
	ShutdownTimeout time.Duration
}

// Server receives briefs over HTTP and relays them to feed subscribers.
// Nothing is persisted.
type Server struct {
	config     *Config
	catalog    *questionnaire.Catalog
	hub        *Hub
	httpServer *http.Server
	listener   net.Listener

	// overridable in tests
	newID func() string
	now   func() time.Time
}

// New creates a new Server instance
func New(config *Config) (*Server, error) {
	if err := logging.Initialize(config.LogLevel); err != nil {
		return nil, fmt.Errorf("failed to initialize logging: %w", err)
	}

	catalog, err := questionnaire.LoadCatalog()
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	if config.ShutdownTimeout <= 0 {
		config.ShutdownTimeout = DefaultShutdownTimeout
	}

	s := &Server{
		config:  config,
		catalog: catalog,
		hub:     NewHub(),
		newID:   uuid.NewString,
		now:     func() time.Time { return time.Now().UTC() },
	}
	s.httpServer = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s, nil
}

// Handler returns the HTTP routes of the intake server.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST "+BriefsPath, s.handleSubmitBrief)
	mux.HandleFunc("GET "+HealthPath, s.handleHealth)
	mux.HandleFunc("GET "+FeedPath, s.handleFeed)
	return logRequests(mux)
}

// Hub returns the feed hub.
func (s *Server) Hub() *Hub {
	return s.hub
}

// Listen binds the listen address. Serve calls it if needed; calling it
// first lets the caller learn the bound port (for ":0" and mDNS).
func (s *Server) Listen() error {
	listener, err := net.Listen("tcp", s.config.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.config.Addr, err)
	}
	s.listener = listener
	return nil
}

// Addr returns the bound address, or nil before Listen.
func (s *Server) Addr() net.Addr {
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// Port returns the bound TCP port, or 0 before Listen.
func (s *Server) Port() int {
	if tcp, ok := s.Addr().(*net.TCPAddr); ok {
		return tcp.Port
	}
	return 0
}

// Serve accepts requests until ctx is cancelled, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context) error {
	if s.listener == nil {
		if err := s.Listen(); err != nil {
			return err
		}
	}

	logging.Info("Starting logobrief intake server",
		zap.String("addr", s.listener.Addr().String()),
		zap.String("log_level", s.config.LogLevel),
	)

	errChan := make(chan error, 1)
	go func() {
		errChan <- s.httpServer.Serve(s.listener)
	}()

	select {
	case <-ctx.Done():
		logging.Info("Shutdown requested, stopping server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
		defer cancel()
		return s.Shutdown(shutdownCtx)
	case err := <-errChan:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	logging.Info("Shutting down server...")

	// hijacked feed connections are not covered by http.Server.Shutdown
	s.hub.Close(ctx)

	err := s.httpServer.Shutdown(ctx)
	if err != nil {
		logging.Warn("Shutdown timeout, forcing close", zap.Error(err))
		_ = s.httpServer.Close()
	} else {
		logging.Info("All connections closed gracefully")
	}

	logging.Sync()
	return err
}
