package gameserver

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"sync"
	"time"

	"github.com/udisondev/roomserver/internal/config"
	"github.com/udisondev/roomserver/internal/constants"
)

const keepAlivePeriod = 30 * time.Second

// Server accepts TCP game client connections.
type Server struct {
	cfg     config.GameServer
	clients *ClientManager
	ingest  Ingester

	listener net.Listener
	mu       sync.Mutex
}

// NewServer creates a TCP server feeding ingest.
func NewServer(cfg config.GameServer, clients *ClientManager, ingest Ingester) *Server {
	return &Server{
		cfg:     cfg,
		clients: clients,
		ingest:  ingest,
	}
}

// Addr returns the address the server is listening on.
// Returns nil if the server hasn't started yet.
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// Close closes the listener.
func (s *Server) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener != nil {
		return s.listener.Close()
	}
	return nil
}

// Run listens on cfg.BindAddress:cfg.Port and serves until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	addr := fmt.Sprintf("%s:%d", s.cfg.BindAddress, s.cfg.Port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections from ln until ctx is cancelled.
// Used for testing with custom listeners.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	s.mu.Lock()
	s.listener = ln
	s.mu.Unlock()

	stop := context.AfterFunc(ctx, func() { _ = ln.Close() })
	defer stop()

	slog.Info("room server started", "address", ln.Addr())

	var wg sync.WaitGroup
	defer wg.Wait()

	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			if isClosed(err) {
				return nil
			}
			slog.Error("failed to accept new connection", "error", err)
			continue
		}

		// Enable TCP keepalive (detect dead connections)
		if tcpConn, ok := conn.(*net.TCPConn); ok {
			if err := tcpConn.SetKeepAlive(true); err != nil {
				slog.Warn("set keepalive failed", "error", err)
			}
			if err := tcpConn.SetKeepAlivePeriod(keepAlivePeriod); err != nil {
				slog.Warn("set keepalive period failed", "error", err)
			}
		}

		wg.Go(func() {
			s.handleConnection(ctx, conn)
		})
	}
}

func (s *Server) handleConnection(ctx context.Context, conn net.Conn) {
	chunkSize := s.cfg.ReadChunkSize
	if chunkSize <= 0 {
		chunkSize = constants.DefaultReadChunkSize
	}
	chunk := make([]byte, chunkSize)
	readTimeout := s.cfg.ReadTimeout

	read := func() ([]byte, error) {
		if readTimeout > 0 {
			if err := conn.SetReadDeadline(time.Now().Add(readTimeout)); err != nil {
				return nil, fmt.Errorf("setting read deadline: %w", err)
			}
		}
		n, err := conn.Read(chunk)
		return chunk[:n], err
	}

	slog.Debug("new connection", "remote", conn.RemoteAddr())

	runSession(ctx, s.clients, s.ingest, tcpTransport{conn: conn}, conn.RemoteAddr().String(), sessionOptions{
		sendQueueSize: s.cfg.SendQueueSize,
		writeTimeout:  s.cfg.WriteTimeout,
	}, read)
}
