// Package debug serves the loop's live status over HTTP while it runs
package debug

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"

	"github.com/lixenwraith/tickloop/constants"
	"github.com/lixenwraith/tickloop/core"
	"github.com/lixenwraith/tickloop/status"
)

// Options configures a Server
type Options struct {
	// Addr is the listen address; ":0" picks a free port
	Addr      string
	SessionID string
	Status    *status.Registry
}

// StatusResponse is the body of GET /status
type StatusResponse struct {
	Session string         `json:"session"`
	State   string         `json:"state"`
	Metrics map[string]any `json:"metrics"`
}

// Server is the debug HTTP service
type Server struct {
	opts   Options
	router *gin.Engine

	mu       sync.Mutex
	srv      *http.Server
	listener net.Listener
	done     chan struct{}
}

// NewServer builds the router; nothing listens until Start
func NewServer(opts Options) *Server {
	if opts.Status == nil {
		opts.Status = status.NewRegistry()
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(LoggingMiddleware())

	s := &Server{opts: opts, router: router}
	router.GET("/healthz", s.handleHealth)
	router.GET("/status", s.handleStatus)
	return s
}

// Name implements services.Service
func (s *Server) Name() string { return "debug" }

// Dependencies implements services.Service
func (s *Server) Dependencies() []string { return nil }

// Init binds the listen address so a busy port fails startup
func (s *Server) Init() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.listener != nil {
		return nil
	}

	ln, err := net.Listen("tcp", s.opts.Addr)
	if err != nil {
		return fmt.Errorf("debug listen %s: %w", s.opts.Addr, err)
	}
	s.listener = ln
	s.srv = &http.Server{Handler: s.router}
	return nil
}

// Start serves on the bound listener in the background
func (s *Server) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.listener == nil {
		return errors.New("debug server not initialized")
	}
	if s.done != nil {
		return nil
	}

	srv, ln := s.srv, s.listener
	done := make(chan struct{})
	s.done = done

	core.Go(func() {
		defer close(done)
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("debug: serve: %v", err)
		}
	})

	log.Printf("debug: listening on http://%s", ln.Addr())
	return nil
}

// Stop shuts the server down, waiting up to DebugShutdownTimeout for open requests
func (s *Server) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.listener == nil {
		return nil
	}

	var err error
	if s.done != nil {
		ctx, cancel := context.WithTimeout(context.Background(), constants.DebugShutdownTimeout)
		defer cancel()
		if err = s.srv.Shutdown(ctx); err != nil {
			err = fmt.Errorf("debug shutdown: %w", err)
		}
		<-s.done
	} else {
		// Initialized but never started
		err = s.listener.Close()
	}

	s.listener = nil
	s.srv = nil
	s.done = nil
	return err
}

// Addr returns the bound address, or nil before Init
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// Handler exposes the router for in-process testing
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleStatus(c *gin.Context) {
	c.JSON(http.StatusOK, StatusResponse{
		Session: s.opts.SessionID,
		State:   s.opts.Status.Strings.Get("loop.state").Load(),
		Metrics: s.opts.Status.Snapshot(),
	})
}
