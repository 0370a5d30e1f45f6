// Package web serves a read-only WebSocket feed of play session events,
// so spectators can watch scores land without attaching a terminal.
package web

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
)

// ServerConfig holds configuration for the feed server.
type ServerConfig struct {
	// Address is the host:port to listen on (e.g., ":8080").
	Address string
}

// DefaultServerConfig returns a config with sensible defaults.
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Address: ":8080",
	}
}

// Server exposes a Hub over HTTP: /feed streams events, /healthz reports
// liveness and the current client count.
type Server struct {
	config   ServerConfig
	hub      *Hub
	server   *http.Server
	logger   *log.Logger
	upgrader websocket.Upgrader
}

// NewServer creates a feed server around the given hub.
func NewServer(cfg ServerConfig, hub *Hub) *Server {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "gameforge-web",
	})

	s := &Server{
		config: cfg,
		hub:    hub,
		logger: logger,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/feed", s.handleFeed)
	mux.HandleFunc("/healthz", s.handleHealthz)

	s.server = &http.Server{
		Addr:              cfg.Address,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Hub returns the hub this server broadcasts from.
func (s *Server) Hub() *Hub {
	return s.hub
}

// handleFeed upgrades the connection and streams session events until the
// client disconnects or falls too far behind the buffer.
func (s *Server) handleFeed(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "remote", r.RemoteAddr, "error", err)
		return
	}

	client := s.hub.subscribe()
	s.logger.Info("feed client connected", "remote", r.RemoteAddr, "clients", s.hub.ClientCount())

	defer func() {
		s.hub.unsubscribe(client)
		conn.Close()
		s.logger.Info("feed client disconnected", "remote", r.RemoteAddr)
	}()

	// The feed is write-only. The read loop exists to notice the close.
	go func() {
		for {
			if _, _, readErr := conn.ReadMessage(); readErr != nil {
				client.close()
				return
			}
		}
	}()

	for {
		select {
		case evt := <-client.events:
			if writeErr := conn.WriteJSON(evt); writeErr != nil {
				return
			}
		case <-client.done:
			return
		}
	}
}

// handleHealthz reports server liveness.
func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	fmt.Fprintf(w, "{\"status\":\"ok\",\"clients\":%d}\n", s.hub.ClientCount())
}

// ListenAndServe starts the feed server and blocks until shutdown.
func (s *Server) ListenAndServe() error {
	s.logger.Info("starting feed server", "address", s.config.Address)

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("server error", "error", err)
		}
	}()

	<-done
	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Serve starts listening without blocking on signals. The caller is
// responsible for calling Shutdown; used when the feed runs alongside
// the SSH server.
func (s *Server) Serve() error {
	s.logger.Info("starting feed server", "address", s.config.Address)
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}

// Addr returns the server's listen address string.
func (s *Server) Addr() string {
	return s.config.Address
}
