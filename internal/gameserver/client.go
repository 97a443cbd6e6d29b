package gameserver

import (
	"errors"
	"fmt"
	"log/slog"
	"net"
	"sync"
	"time"

	"github.com/udisondev/roomserver/internal/constants"
)

// Default write queue / timeout values.
// Overridden by config values when available.
const (
	defaultWriteTimeout = 5 * time.Second
	maxWriteBatch       = 64
)

var (
	// ErrSendQueueFull is returned by Send when the client does not drain its outbox.
	ErrSendQueueFull = errors.New("send queue full")

	// ErrClientClosed is returned by Send after the connection was closed.
	ErrClientClosed = errors.New("client closed")
)

// transport writes whole frames to one connection.
type transport interface {
	WriteFrames(frames [][]byte, deadline time.Time) error
	Close() error
}

// tcpTransport batches frames into a single writev.
type tcpTransport struct {
	conn net.Conn
}

func (t tcpTransport) WriteFrames(frames [][]byte, deadline time.Time) error {
	if err := t.conn.SetWriteDeadline(deadline); err != nil {
		return fmt.Errorf("setting write deadline: %w", err)
	}
	bufs := net.Buffers(frames)
	_, err := bufs.WriteTo(t.conn)
	return err
}

func (t tcpTransport) Close() error {
	return t.conn.Close()
}

// Client is the send side of one connection.
// Frames are queued by Send and written by a dedicated writePump goroutine,
// so neither the processor nor room loops ever block on a slow socket.
type Client struct {
	idx    uint32
	remote string
	tr     transport

	sendCh    chan []byte
	closeCh   chan struct{}
	closeOnce sync.Once

	writeTimeout time.Duration
}

func newClient(idx uint32, remote string, tr transport, sendQueueSize int, writeTimeout time.Duration) *Client {
	if sendQueueSize <= 0 {
		sendQueueSize = constants.DefaultSendQueueSize
	}
	if writeTimeout <= 0 {
		writeTimeout = defaultWriteTimeout
	}
	return &Client{
		idx:          idx,
		remote:       remote,
		tr:           tr,
		sendCh:       make(chan []byte, sendQueueSize),
		closeCh:      make(chan struct{}),
		writeTimeout: writeTimeout,
	}
}

// Index returns the connection index.
func (c *Client) Index() uint32 {
	return c.idx
}

// Remote returns the peer address.
func (c *Client) Remote() string {
	return c.remote
}

// Send queues a frame for async delivery.
// Non-blocking: a full queue closes the client (slow client → disconnect).
// Send does not retain data beyond the write; callers must not modify it afterwards.
func (c *Client) Send(data []byte) error {
	select {
	case <-c.closeCh:
		return ErrClientClosed
	default:
	}

	select {
	case c.sendCh <- data:
		return nil
	default:
		slog.Warn("send queue full, disconnecting slow client", "connIdx", c.idx, "remote", c.remote)
		c.Close()
		return ErrSendQueueFull
	}
}

// writePump drains sendCh until the client is closed.
// Queued frames are written in batches (Gorilla chat pattern).
func (c *Client) writePump() {
	batch := make([][]byte, 0, maxWriteBatch)

	for {
		select {
		case <-c.closeCh:
			return
		case frame := <-c.sendCh:
			batch = append(batch[:0], frame)
		drain:
			for len(batch) < maxWriteBatch {
				select {
				case next := <-c.sendCh:
					batch = append(batch, next)
				default:
					break drain
				}
			}

			if err := c.tr.WriteFrames(batch, time.Now().Add(c.writeTimeout)); err != nil {
				slog.Warn("write failed", "connIdx", c.idx, "remote", c.remote, "error", err)
				c.Close()
				return
			}
		}
	}
}

// Close stops the writePump and closes the connection. Safe to call multiple times.
func (c *Client) Close() {
	c.closeOnce.Do(func() {
		close(c.closeCh)
		if err := c.tr.Close(); err != nil {
			slog.Debug("closing connection", "connIdx", c.idx, "error", err)
		}
	})
}

// Done is closed once the client is closed.
func (c *Client) Done() <-chan struct{} {
	return c.closeCh
}
