// Package testutil holds helpers shared by integration tests.
package testutil

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"testing"
	"time"

	"github.com/udisondev/roomserver/internal/constants"
	"github.com/udisondev/roomserver/internal/protocol"
)

// FrameClient speaks the room protocol over a plain connection.
type FrameClient struct {
	t    testing.TB
	conn net.Conn
	buf  *protocol.Buffer
}

// Dial connects to a room server and closes the connection at test end.
func Dial(t testing.TB, addr string) *FrameClient {
	t.Helper()

	conn, err := net.DialTimeout("tcp", addr, 5*time.Second)
	if err != nil {
		t.Fatalf("connecting to %s: %v", addr, err)
	}
	return NewFrameClient(t, conn)
}

// NewFrameClient wraps an established connection.
func NewFrameClient(t testing.TB, conn net.Conn) *FrameClient {
	t.Helper()
	c := &FrameClient{
		t:    t,
		conn: conn,
		buf:  protocol.NewBuffer(constants.DefaultConnBufferSize),
	}
	t.Cleanup(func() { _ = conn.Close() })
	return c
}

// Send writes one or more complete frames.
func (c *FrameClient) Send(frames ...[]byte) {
	c.t.Helper()
	for _, f := range frames {
		if _, err := c.conn.Write(f); err != nil {
			c.t.Fatalf("writing frame: %v", err)
		}
	}
}

// Next returns the next frame from the server.
func (c *FrameClient) Next(timeout time.Duration) (protocol.Frame, error) {
	deadline := time.Now().Add(timeout)
	chunk := make([]byte, constants.DefaultReadChunkSize)

	for {
		frame, ok, err := c.buf.ExtractNext()
		if err != nil {
			return protocol.Frame{}, err
		}
		if ok {
			return frame, nil
		}

		if err := c.conn.SetReadDeadline(deadline); err != nil {
			return protocol.Frame{}, fmt.Errorf("setting read deadline: %w", err)
		}
		n, err := c.conn.Read(chunk)
		if n > 0 {
			if err := c.buf.Append(chunk[:n]); err != nil {
				return protocol.Frame{}, err
			}
		}
		if err != nil {
			return protocol.Frame{}, fmt.Errorf("reading: %w", err)
		}
	}
}

// Expect skips frames until one with id arrives.
func (c *FrameClient) Expect(id protocol.MessageID, timeout time.Duration) protocol.Frame {
	c.t.Helper()

	deadline := time.Now().Add(timeout)
	for {
		left := time.Until(deadline)
		if left <= 0 {
			c.t.Fatalf("timeout waiting for %s", id)
		}
		frame, err := c.Next(left)
		if err != nil {
			c.t.Fatalf("waiting for %s: %v", id, err)
		}
		if frame.ID == id {
			return frame
		}
	}
}

// ExpectNone fails if a frame with id arrives within wait.
func (c *FrameClient) ExpectNone(id protocol.MessageID, wait time.Duration) {
	c.t.Helper()

	deadline := time.Now().Add(wait)
	for {
		left := time.Until(deadline)
		if left <= 0 {
			return
		}
		frame, err := c.Next(left)
		if err != nil {
			if errors.Is(err, os.ErrDeadlineExceeded) {
				return
			}
			c.t.Fatalf("reading: %v", err)
		}
		if frame.ID == id {
			c.t.Fatalf("unexpected %s", id)
		}
	}
}

// Close closes the connection.
func (c *FrameClient) Close() error {
	return c.conn.Close()
}

// ContextWithTimeout создаёт context с timeout и отменяет его при завершении теста.
func ContextWithTimeout(t testing.TB, d time.Duration) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), d)
	t.Cleanup(cancel)
	return ctx
}
