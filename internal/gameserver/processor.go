package gameserver

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/udisondev/roomserver/internal/gameserver/admin"
	"github.com/udisondev/roomserver/internal/gameserver/admin/commands"
	"github.com/udisondev/roomserver/internal/protocol"
	"github.com/udisondev/roomserver/internal/room"
	"github.com/udisondev/roomserver/internal/task"
)

const idleSleep = time.Millisecond

// TaskQueue is the persistence collaborator.
type TaskQueue interface {
	Push(t task.Task) error
	TakeResponse() (task.Task, bool)
}

// anySize disables the body size check (system and task bands).
const anySize = -1

type handlerFunc func(idx uint32, body []byte)

type handlerEntry struct {
	size int
	fn   handlerFunc
}

// systemPacket is a lifecycle event injected by the network layer.
type systemPacket struct {
	idx uint32
	id  protocol.MessageID
}

// Processor is the single consumer of all incoming work.
// Handlers run on the processor goroutine only; game state shared with room
// loops is protected by the rooms themselves.
type Processor struct {
	clients  *ClientManager
	rooms    *room.Manager
	tasks    TaskQueue
	commands *admin.Handler
	maxUsers int

	incoming fifo[uint32]       // connections with new bytes
	system   fifo[systemPacket] // connect / disconnect

	// logins — ожидающий ответа хранилища login task каждого слота.
	// Ответ принимается только если его ID совпадает: слот мог смениться.
	logins map[uint32]uuid.UUID

	handlers map[protocol.MessageID]handlerEntry
}

// NewProcessor creates a processor and its dispatch table.
// maxUsers limits logged-in users; 0 means every slot may log in.
func NewProcessor(clients *ClientManager, rooms *room.Manager, tasks TaskQueue, maxUsers int) *Processor {
	if maxUsers <= 0 || maxUsers > clients.Cap() {
		maxUsers = clients.Cap()
	}
	p := &Processor{
		clients:  clients,
		rooms:    rooms,
		tasks:    tasks,
		commands: admin.NewHandler(),
		maxUsers: maxUsers,
		logins:   make(map[uint32]uuid.UUID),
	}

	p.commands.Register(commands.CreateNpc{})
	p.commands.Register(commands.NewNotice(p))
	p.commands.Register(commands.Path{})

	p.registerHandlers()
	return p
}

// Enqueue marks idx as having new bytes in its buffer.
func (p *Processor) Enqueue(idx uint32) {
	p.incoming.push(idx)
}

// PushSystem injects a lifecycle event. Only system band ids are dispatched.
func (p *Processor) PushSystem(idx uint32, id protocol.MessageID) {
	p.system.push(systemPacket{idx: idx, id: id})
}

// Run loops ProcessOnce until ctx is cancelled, sleeping briefly when idle.
func (p *Processor) Run(ctx context.Context) error {
	slog.Info("packet processor started", "handlers", len(p.handlers), "commands", p.commands.Count())

	timer := time.NewTimer(idleSleep)
	defer timer.Stop()

	for {
		if ctx.Err() != nil {
			slog.Info("packet processor stopped")
			return nil
		}
		if p.ProcessOnce() {
			continue
		}

		timer.Reset(idleSleep)
		select {
		case <-ctx.Done():
		case <-timer.C:
		}
	}
}

// ProcessOnce performs one iteration: one frame from the ingestion queue,
// one system packet and one task completion. Reports whether any work was found.
func (p *Processor) ProcessOnce() bool {
	busy := false

	if idx, ok := p.incoming.pop(); ok {
		busy = true
		p.processConnection(idx)
	}

	if pkt, ok := p.system.pop(); ok {
		busy = true
		if pkt.id.IsSystem() {
			p.dispatch(pkt.idx, pkt.id, nil)
		} else {
			slog.Warn("non-system id in system queue dropped", "connIdx", pkt.idx, "id", pkt.id)
		}
	}

	if t, ok := p.tasks.TakeResponse(); ok {
		busy = true
		switch {
		case !t.Kind.IsTask():
			slog.Warn("non-task id in task completion dropped", "connIdx", t.ConnIdx, "id", t.Kind, "taskID", t.ID)
		case t.Kind == protocol.TaskResponseLogin && !p.takeLogin(t):
			slog.Info("stale login result dropped", "connIdx", t.ConnIdx, "taskID", t.ID)
		default:
			p.dispatch(t.ConnIdx, t.Kind, t.Payload)
		}
	}

	return busy
}

// takeLogin reports whether t answers the login pending on its slot and clears it.
func (p *Processor) takeLogin(t task.Task) bool {
	id, ok := p.logins[t.ConnIdx]
	if !ok || id != t.ID {
		return false
	}
	delete(p.logins, t.ConnIdx)
	return true
}

// processConnection extracts and dispatches one frame of idx.
func (p *Processor) processConnection(idx uint32) {
	u, ok := p.clients.User(idx)
	if !ok {
		slog.Warn("unknown connection index", "connIdx", idx)
		return
	}

	frame, ok, more, err := u.ExtractFrame()
	if err != nil {
		slog.Warn("dropping connection data", "connIdx", idx, "error", err)
		return
	}
	// одно Append может принести несколько фреймов
	if more {
		p.incoming.push(idx)
	}
	if !ok {
		return
	}

	if !frame.ID.IsClient() {
		slog.Warn("reserved id from connection dropped", "connIdx", idx, "id", frame.ID)
		return
	}
	p.dispatch(idx, frame.ID, frame.Body())
}

func (p *Processor) dispatch(idx uint32, id protocol.MessageID, body []byte) {
	h, ok := p.handlers[id]
	if !ok {
		slog.Debug("no handler for message", "connIdx", idx, "id", id)
		return
	}
	if h.size != anySize && len(body) != h.size {
		slog.Warn("wrong body size",
			"connIdx", idx,
			"id", id,
			"want", h.size,
			"got", len(body))
		return
	}
	h.fn(idx, body)
}

// Pending returns the number of queued connection and system entries.
func (p *Processor) Pending() (incoming, system int) {
	return p.incoming.len(), p.system.len()
}
