package gameserver

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net"
	"time"

	"github.com/udisondev/roomserver/internal/protocol"
)

// Ingester is the processor side of the network layer.
type Ingester interface {
	Enqueue(idx uint32)
	PushSystem(idx uint32, id protocol.MessageID)
}

// sessionOptions are per-connection limits shared by the TCP and websocket servers.
type sessionOptions struct {
	sendQueueSize int
	writeTimeout  time.Duration
}

// runSession binds a connection to a slot and pumps its reads into the processor
// until read fails or ctx is cancelled. read returns the next received chunk;
// the returned slice is copied before the next call.
func runSession(
	ctx context.Context,
	clients *ClientManager,
	ingest Ingester,
	tr transport,
	remote string,
	opts sessionOptions,
	read func() ([]byte, error),
) {
	client, err := clients.Attach(tr, remote, opts.sendQueueSize, opts.writeTimeout)
	if err != nil {
		slog.Warn("rejecting connection", "remote", remote, "error", err)
		_ = tr.Close()
		return
	}
	idx := client.Index()

	ingest.PushSystem(idx, protocol.SysUserConnect)
	go client.writePump()

	defer func() {
		client.Close()
		ingest.PushSystem(idx, protocol.SysUserDisconnect)
	}()

	stop := context.AfterFunc(ctx, client.Close)
	defer stop()

	u, _ := clients.User(idx)
	for {
		chunk, err := read()
		if len(chunk) > 0 {
			if appendErr := u.AppendData(chunk); appendErr != nil {
				slog.Warn("closing connection", "connIdx", idx, "remote", remote, "error", appendErr)
				return
			}
			ingest.Enqueue(idx)
		}
		if err != nil {
			if isClosed(err) {
				slog.Debug("connection closed", "connIdx", idx, "remote", remote)
			} else {
				slog.Warn("read failed", "connIdx", idx, "remote", remote, "error", err)
			}
			return
		}
	}
}

func isClosed(err error) bool {
	return errors.Is(err, io.EOF) || errors.Is(err, net.ErrClosed)
}
