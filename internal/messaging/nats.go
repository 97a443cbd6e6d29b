package messaging

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats-server/v2/server"
	"github.com/nats-io/nats.go"
)

// NatsBus is a Bus backed by a NATS connection.
type NatsBus struct {
	conn *nats.Conn
}

var _ Bus = (*NatsBus)(nil)

// ConnectNats dials the NATS server at url.
func ConnectNats(url string) (*NatsBus, error) {
	conn, err := nats.Connect(url,
		nats.Name("roomserver"),
		nats.MaxReconnects(-1),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				slog.Warn("nats disconnected", "error", err)
			}
		}),
		nats.ReconnectHandler(func(c *nats.Conn) {
			slog.Info("nats reconnected", "url", c.ConnectedUrl())
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("connecting to nats %s: %w", url, err)
	}
	return &NatsBus{conn: conn}, nil
}

// Publish implements Bus.
func (b *NatsBus) Publish(subject string, data []byte) error {
	if err := b.conn.Publish(subject, data); err != nil {
		return fmt.Errorf("publishing to %s: %w", subject, err)
	}
	return nil
}

// Subscribe implements Bus. The subscription is flushed to the server before returning.
func (b *NatsBus) Subscribe(subject string, handler Handler) (func(), error) {
	sub, err := b.conn.Subscribe(subject, func(msg *nats.Msg) {
		handler(msg.Data)
	})
	if err != nil {
		return nil, fmt.Errorf("subscribing to %s: %w", subject, err)
	}
	if err := b.conn.Flush(); err != nil {
		_ = sub.Unsubscribe()
		return nil, fmt.Errorf("flushing subscription %s: %w", subject, err)
	}
	return func() { _ = sub.Unsubscribe() }, nil
}

// Close drains pending messages and closes the connection.
func (b *NatsBus) Close() error {
	if err := b.conn.Drain(); err != nil {
		b.conn.Close()
		return fmt.Errorf("draining nats connection: %w", err)
	}
	return nil
}

// EmbeddedServer runs a NATS server inside the process.
type EmbeddedServer struct {
	ns             *server.Server
	startupTimeout time.Duration
}

// NewEmbeddedServer creates a server on host:port. Port -1 picks a random port.
func NewEmbeddedServer(host string, port int) (*EmbeddedServer, error) {
	ns, err := server.NewServer(&server.Options{
		Host:   host,
		Port:   port,
		NoSigs: true,
		NoLog:  true,
	})
	if err != nil {
		return nil, fmt.Errorf("creating nats server: %w", err)
	}
	return &EmbeddedServer{ns: ns, startupTimeout: 10 * time.Second}, nil
}

// Start launches the server and waits until it accepts connections.
func (s *EmbeddedServer) Start() error {
	s.ns.Start()

	if !s.ns.ReadyForConnections(s.startupTimeout) {
		s.ns.Shutdown()
		return fmt.Errorf("nats server not ready for connections")
	}
	slog.Info("nats server listening", "url", s.ns.ClientURL())
	return nil
}

// ClientURL returns the URL clients connect to.
func (s *EmbeddedServer) ClientURL() string {
	return s.ns.ClientURL()
}

// Shutdown stops the server and waits for it to exit.
func (s *EmbeddedServer) Shutdown() {
	s.ns.Shutdown()
	s.ns.WaitForShutdown()
}
