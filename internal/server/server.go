// Package server hosts Kuhn poker sessions for remote bots over
// websockets. Bots connect in pairs; each pair plays a configured
// number of hands and receives the running score at the end.
package server

import (
	"fmt"
	"net/http"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/gorilla/websocket"

	"github.com/lox/kuhnforbots/internal/protocol"
)

// Server pairs websocket bots into sessions.
type Server struct {
	config   *Config
	upgrader websocket.Upgrader
	logger   *log.Logger
	clock    quartz.Clock

	mu      sync.Mutex
	waiting *player
}

// NewServer creates a server from the given configuration.
func NewServer(config *Config, logger *log.Logger, clock quartz.Clock) *Server {
	return &Server{
		config: config,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		logger: logger.WithPrefix("server"),
		clock:  clock,
	}
}

// Handler returns the HTTP handler serving the websocket and health
// endpoints.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/health", s.handleHealth)
	return mux
}

// Start listens on the configured address and blocks.
func (s *Server) Start() error {
	s.logger.Info("starting websocket server", "addr", s.config.Addr())
	return http.ListenAndServe(s.config.Addr(), s.Handler())
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "ok")
}

// handleWebSocket upgrades the connection, performs the connect
// handshake, and queues the bot for pairing.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	wsConn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("websocket upgrade failed", "error", err)
		return
	}

	var msg protocol.Message
	if err := wsConn.ReadJSON(&msg); err != nil {
		s.logger.Warn("failed to read connect message", "error", err)
		_ = wsConn.Close()
		return
	}
	var connect protocol.ConnectData
	if err := msg.Decode(protocol.TypeConnect, &connect); err != nil || connect.Name == "" {
		s.logger.Warn("invalid connect message", "error", err)
		_ = wsConn.Close()
		return
	}

	s.logger.Info("bot connected", "name", connect.Name)
	s.admit(newPlayer(connect.Name, wsConn, s.logger))
}

// admit pairs the player with a waiting one, or parks it until an
// opponent arrives.
func (s *Server) admit(p *player) {
	s.mu.Lock()
	opponent := s.waiting
	if opponent == nil {
		s.waiting = p
		s.mu.Unlock()
		if err := p.send(protocol.TypeConnected, protocol.ConnectedData{Seat: 0}); err != nil {
			s.removeWaiting(p)
			return
		}
		go p.readPump()
		return
	}
	s.waiting = nil
	s.mu.Unlock()

	if err := p.send(protocol.TypeConnected, protocol.ConnectedData{Seat: 1}); err != nil {
		s.mu.Lock()
		s.waiting = opponent
		s.mu.Unlock()
		return
	}
	go p.readPump()

	sess := newSession(opponent, p, s.config.Session, s.clock, s.logger)
	go func() {
		if err := sess.run(); err != nil {
			s.logger.Warn("session ended with error", "error", err)
		}
	}()
}

// removeWaiting clears the parked player if it is still the one given.
func (s *Server) removeWaiting(p *player) {
	s.mu.Lock()
	if s.waiting == p {
		s.waiting = nil
	}
	s.mu.Unlock()
	p.close()
}
