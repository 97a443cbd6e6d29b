package gameserver

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/udisondev/roomserver/internal/model"
	"github.com/udisondev/roomserver/internal/protocol"
)

var (
	// ErrNoFreeSlot is returned by Attach when every connection slot is taken.
	ErrNoFreeSlot = errors.New("no free connection slot")

	// ErrUnknownClient is returned by Send for an index without a live connection.
	ErrUnknownClient = errors.New("unknown client")
)

// ClientManager owns the fixed pool of user slots and their live connections.
//
// Slots are allocated by the network side (Attach) and returned by the
// processor (Release) once it has finished the disconnect, so a slot is never
// reused while the processor still holds work for the previous connection.
// Indices equal to a login failure code are never handed out: a successful
// LoginResponse carries the index in the same field as the code.
// Thread-safe for concurrent access.
type ClientManager struct {
	users []*model.User // index = connection index, nil for skipped indices
	slots int

	mu      sync.RWMutex
	clients []*Client // nil when the slot has no connection
	free    []uint32  // stack, lowest index on top
	active  int
}

// NewClientManager allocates maxClients user slots with bufferSize receive buffers.
func NewClientManager(maxClients, bufferSize int) *ClientManager {
	slots := make([]uint32, 0, maxClients)
	for i := uint32(0); len(slots) < maxClients; i++ {
		if protocol.ResultCode(i).IsLoginFailure() {
			continue
		}
		slots = append(slots, i)
	}
	size := 0
	if len(slots) > 0 {
		size = int(slots[len(slots)-1]) + 1
	}

	m := &ClientManager{
		users:   make([]*model.User, size),
		slots:   len(slots),
		clients: make([]*Client, size),
		free:    make([]uint32, 0, len(slots)),
	}
	for _, i := range slots {
		m.users[i] = model.NewUser(i, bufferSize)
	}
	for i := len(slots) - 1; i >= 0; i-- {
		m.free = append(m.free, slots[i])
	}
	return m
}

// Attach binds a new connection to the lowest free slot.
func (m *ClientManager) Attach(tr transport, remote string, sendQueueSize int, writeTimeout time.Duration) (*Client, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.free) == 0 {
		return nil, fmt.Errorf("attaching %s: %w", remote, ErrNoFreeSlot)
	}
	idx := m.free[len(m.free)-1]
	m.free = m.free[:len(m.free)-1]

	c := newClient(idx, remote, tr, sendQueueSize, writeTimeout)
	m.clients[idx] = c
	m.active++
	return c, nil
}

// Release clears the user slot and makes it available to Attach.
// Called by the processor after handling SysUserDisconnect.
func (m *ClientManager) Release(idx uint32) {
	if int(idx) >= len(m.users) || m.users[idx] == nil {
		return
	}
	m.users[idx].Clear()

	m.mu.Lock()
	defer m.mu.Unlock()
	if c := m.clients[idx]; c != nil {
		c.Close()
		m.clients[idx] = nil
		m.active--
		m.free = append(m.free, idx)
	}
}

// User returns the slot for idx.
func (m *ClientManager) User(idx uint32) (*model.User, bool) {
	if int(idx) >= len(m.users) || m.users[idx] == nil {
		return nil, false
	}
	return m.users[idx], true
}

// Client returns the live connection of idx.
func (m *ClientManager) Client(idx uint32) (*Client, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if int(idx) >= len(m.clients) || m.clients[idx] == nil {
		return nil, false
	}
	return m.clients[idx], true
}

// Send queues data for idx. Implements room.Sender.
func (m *ClientManager) Send(idx uint32, data []byte) error {
	c, ok := m.Client(idx)
	if !ok {
		return fmt.Errorf("sending to %d: %w", idx, ErrUnknownClient)
	}
	return c.Send(data)
}

// FindUserByID returns the logged-in user with userID.
func (m *ClientManager) FindUserByID(userID string) (*model.User, bool) {
	for _, u := range m.users {
		if u != nil && u.State() != model.DomainNone && u.UserID() == userID {
			return u, true
		}
	}
	return nil, false
}

// LoggedInCount returns the number of users past login.
func (m *ClientManager) LoggedInCount() int {
	n := 0
	for _, u := range m.users {
		if u != nil && u.State() != model.DomainNone {
			n++
		}
	}
	return n
}

// Count returns the number of attached connections.
func (m *ClientManager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.active
}

// Cap returns the number of usable slots.
func (m *ClientManager) Cap() int {
	return m.slots
}

// CloseAll closes every live connection. Slots are released by the processor.
func (m *ClientManager) CloseAll() {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, c := range m.clients {
		if c != nil {
			c.Close()
		}
	}
}
