package room

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/udisondev/roomserver/internal/game/quest"
	"github.com/udisondev/roomserver/internal/model"
	"github.com/udisondev/roomserver/internal/protocol"
)

// Manager owns the fixed pool of rooms created at startup.
// The pool never changes after NewManager, so lookups need no locking.
type Manager struct {
	rooms map[int32]*Room
	order []*Room
}

// NewManager creates count rooms numbered from start.
func NewManager(start, count int, cfg Config, sender Sender, paths PathFinder, quests *quest.Registry) *Manager {
	m := &Manager{rooms: make(map[int32]*Room, count)}
	for i := range count {
		number := int32(start + i)
		r := New(number, cfg, sender, paths, quests)
		m.rooms[number] = r
		m.order = append(m.order, r)
	}
	return m
}

// Room returns the room with number.
func (m *Manager) Room(number int32) (*Room, bool) {
	r, ok := m.rooms[number]
	return r, ok
}

// Rooms returns all rooms in number order.
func (m *Manager) Rooms() []*Room {
	return m.order
}

// EnterUser routes u into room number.
func (m *Manager) EnterUser(number int32, u *model.User) protocol.ResultCode {
	r, ok := m.rooms[number]
	if !ok {
		return protocol.RoomInvalidIndex
	}
	return r.EnterUser(u)
}

// LeaveUser removes u from room number.
func (m *Manager) LeaveUser(number int32, u *model.User) protocol.ResultCode {
	r, ok := m.rooms[number]
	if !ok || !r.LeaveUser(u) {
		return protocol.LeaveRoomInvalidRoomIndex
	}
	return protocol.ResultNone
}

// SendToAllUser broadcasts data to every user of every room.
func (m *Manager) SendToAllUser(data []byte) {
	for _, r := range m.order {
		r.SendToAllUser(data, 0, false)
	}
}

// Start starts every room. Rooms already started are stopped on failure.
func (m *Manager) Start(ctx context.Context) error {
	for i, r := range m.order {
		if err := r.Start(ctx); err != nil {
			for _, started := range m.order[:i] {
				started.Stop()
			}
			return fmt.Errorf("starting rooms: %w", err)
		}
	}
	slog.Info("rooms started", "count", len(m.order))
	return nil
}

// Stop stops every room and waits for their loops.
func (m *Manager) Stop() {
	for _, r := range m.order {
		r.Stop()
	}
	slog.Info("rooms stopped", "count", len(m.order))
}
