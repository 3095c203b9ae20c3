package net

import (
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Server is the websocket observer feed. Observers are read-only: the game
// loop pushes frames via Broadcast during the output phase; inbound traffic
// only services control frames. Connection bookkeeping has its own mutex —
// the accept path runs on http goroutines, not the game loop.
type Server struct {
	listener     net.Listener
	httpServer   *http.Server
	upgrader     websocket.Upgrader
	writeTimeout time.Duration
	log          *zap.Logger

	mu    sync.Mutex
	conns map[*websocket.Conn]struct{}
}

func NewServer(bindAddr string, writeTimeout time.Duration, log *zap.Logger) (*Server, error) {
	ln, err := net.Listen("tcp", bindAddr)
	if err != nil {
		return nil, err
	}
	s := &Server{
		listener:     ln,
		writeTimeout: writeTimeout,
		log:          log,
		conns:        make(map[*websocket.Conn]struct{}, 16),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/watch", s.handleWatch)
	s.httpServer = &http.Server{Handler: mux}
	return s, nil
}

func (s *Server) Addr() net.Addr { return s.listener.Addr() }

// Serve blocks on the HTTP listener. Runs in its own goroutine.
func (s *Server) Serve() {
	if err := s.httpServer.Serve(s.listener); err != nil && err != http.ErrServerClosed {
		s.log.Error("observer feed stopped", zap.Error(err))
	}
}

func (s *Server) handleWatch(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	s.mu.Lock()
	s.conns[conn] = struct{}{}
	n := len(s.conns)
	s.mu.Unlock()
	s.log.Info("observer connected", zap.String("remote", conn.RemoteAddr().String()), zap.Int("observers", n))

	// Drain inbound frames so pings/pongs and close handshakes work.
	go func() {
		defer s.drop(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

// Broadcast sends one JSON frame to every observer. Dead connections are
// dropped on write failure.
func (s *Server) Broadcast(frame []byte) {
	s.mu.Lock()
	conns := make([]*websocket.Conn, 0, len(s.conns))
	for c := range s.conns {
		conns = append(conns, c)
	}
	s.mu.Unlock()

	for _, c := range conns {
		c.SetWriteDeadline(time.Now().Add(s.writeTimeout))
		if err := c.WriteMessage(websocket.TextMessage, frame); err != nil {
			s.drop(c)
		}
	}
}

// Observers reports the current connection count.
func (s *Server) Observers() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.conns)
}

func (s *Server) drop(conn *websocket.Conn) {
	s.mu.Lock()
	_, ok := s.conns[conn]
	delete(s.conns, conn)
	s.mu.Unlock()
	if ok {
		conn.Close()
		s.log.Info("observer disconnected", zap.String("remote", conn.RemoteAddr().String()))
	}
}

func (s *Server) Shutdown() {
	s.httpServer.Close()
	s.mu.Lock()
	for c := range s.conns {
		c.Close()
	}
	s.conns = make(map[*websocket.Conn]struct{})
	s.mu.Unlock()
}
