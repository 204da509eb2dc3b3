// Package server exposes the game engine to a browser client over
// websockets. Each connection gets its own room: one human seat and three
// bot seats driven server-side. This is the UI transport for a single
// player, not network multiplayer.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
	"golang.org/x/sync/errgroup"

	"github.com/dnguyen/cardchomp/internal/config"
	"github.com/dnguyen/cardchomp/internal/randutil"
)

// Server accepts websocket connections and runs one session per connection
type Server struct {
	cfg      *config.Config
	logger   *log.Logger
	upgrader websocket.Upgrader
}

// New creates a server
func New(cfg *config.Config, logger *log.Logger) *Server {
	return &Server{
		cfg:    cfg,
		logger: logger.WithPrefix("server"),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// The browser UI is served from anywhere during development.
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

// Run serves until the context is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWS)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	addr := fmt.Sprintf("%s:%d", s.cfg.Server.Address, s.cfg.Server.Port)
	httpServer := &http.Server{Addr: addr, Handler: mux}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("listening", "addr", addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// handleWS upgrades the connection and starts a fresh session for it
func (s *Server) handleWS(w http.ResponseWriter, req *http.Request) {
	conn, err := s.upgrader.Upgrade(w, req, nil)
	if err != nil {
		s.logger.Error("websocket upgrade failed", "error", err)
		return
	}

	seed := s.cfg.Game.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	client := NewClient(conn, s.logger)
	room := NewRoom(RoomOptions{
		PlayerName: s.cfg.Game.PlayerName,
		BotNames:   s.cfg.Game.BotNames,
		ThinkDelay: time.Duration(s.cfg.Game.ThinkDelayMs) * time.Millisecond,
		RNG:        randutil.New(seed),
	}, s.logger, client.Send)
	client.room = room

	s.logger.Info("session started", "room", room.ID(), "remote", req.RemoteAddr)

	go client.WritePump()
	go client.ReadPump()

	if err := room.Start(); err != nil {
		s.logger.Error("starting session failed", "room", room.ID(), "error", err)
		conn.Close()
	}
}
