package gameserver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/udisondev/roomserver/internal/config"
)

// wsTransport sends each batch of frames as one binary message.
// The client de-frames the stream exactly as it does for TCP.
type wsTransport struct {
	conn *websocket.Conn
}

func (t wsTransport) WriteFrames(frames [][]byte, deadline time.Time) error {
	if err := t.conn.SetWriteDeadline(deadline); err != nil {
		return fmt.Errorf("setting write deadline: %w", err)
	}
	w, err := t.conn.NextWriter(websocket.BinaryMessage)
	if err != nil {
		return err
	}
	for _, f := range frames {
		if _, err := w.Write(f); err != nil {
			_ = w.Close()
			return err
		}
	}
	return w.Close()
}

func (t wsTransport) Close() error {
	return t.conn.Close()
}

// WSServer carries the same frames over binary websocket messages for browser clients.
type WSServer struct {
	cfg     config.GameServer
	clients *ClientManager
	ingest  Ingester

	upgrader websocket.Upgrader

	mu       sync.Mutex
	listener net.Listener
}

// NewWSServer creates a websocket server sharing slots with the TCP server.
func NewWSServer(cfg config.GameServer, clients *ClientManager, ingest Ingester) *WSServer {
	return &WSServer{
		cfg:     cfg,
		clients: clients,
		ingest:  ingest,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  cfg.ReadChunkSize,
			WriteBufferSize: cfg.ReadChunkSize,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

// Addr returns the listening address or nil before Serve.
func (s *WSServer) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// Run listens on the websocket address and serves until ctx is cancelled.
func (s *WSServer) Run(ctx context.Context) error {
	addr := fmt.Sprintf("%s:%d", s.cfg.WebSocket.BindAddress, s.cfg.WebSocket.Port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve handles websocket upgrades on ln until ctx is cancelled.
func (s *WSServer) Serve(ctx context.Context, ln net.Listener) error {
	s.mu.Lock()
	s.listener = ln
	s.mu.Unlock()

	mux := http.NewServeMux()
	mux.HandleFunc(s.cfg.WebSocket.Path, func(w http.ResponseWriter, r *http.Request) {
		conn, err := s.upgrader.Upgrade(w, r, nil)
		if err != nil {
			slog.Warn("websocket upgrade failed", "remote", r.RemoteAddr, "error", err)
			return
		}
		// hijacked connection: the handler goroutine owns the session
		s.handleConnection(ctx, conn)
	})

	srv := &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	stop := context.AfterFunc(ctx, func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Warn("websocket server shutdown", "error", err)
		}
	})
	defer stop()

	slog.Info("websocket server started", "address", ln.Addr(), "path", s.cfg.WebSocket.Path)

	err := srv.Serve(ln)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (s *WSServer) handleConnection(ctx context.Context, conn *websocket.Conn) {
	conn.SetReadLimit(int64(s.cfg.ConnBufferSize))
	readTimeout := s.cfg.ReadTimeout

	read := func() ([]byte, error) {
		for {
			if readTimeout > 0 {
				if err := conn.SetReadDeadline(time.Now().Add(readTimeout)); err != nil {
					return nil, fmt.Errorf("setting read deadline: %w", err)
				}
			}
			kind, data, err := conn.ReadMessage()
			if err != nil {
				if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
					return nil, net.ErrClosed
				}
				return nil, err
			}
			if kind == websocket.BinaryMessage {
				return data, nil
			}
			slog.Debug("ignoring non-binary websocket message", "remote", conn.RemoteAddr())
		}
	}

	runSession(ctx, s.clients, s.ingest, wsTransport{conn: conn}, conn.RemoteAddr().String(), sessionOptions{
		sendQueueSize: s.cfg.SendQueueSize,
		writeTimeout:  s.cfg.WriteTimeout,
	}, read)
}
