package model

import (
	"sync"

	"github.com/udisondev/roomserver/internal/protocol"
)

// DomainState — стадия сессии пользователя.
type DomainState int32

const (
	// DomainNone — слот свободен или соединение ещё не залогинено.
	DomainNone DomainState = iota
	// DomainLoggedIn — логин подтверждён.
	DomainLoggedIn
	// DomainInRoom — пользователь в комнате.
	DomainInRoom
)

// String returns human-readable state name
func (s DomainState) String() string {
	switch s {
	case DomainNone:
		return "NONE"
	case DomainLoggedIn:
		return "LOGGED_IN"
	case DomainInRoom:
		return "IN_ROOM"
	default:
		return "UNKNOWN"
	}
}

// NoRoom marks a user outside any room.
const NoRoom int32 = -1

// User — слот соединения. Index равен UUID пользователя на клиенте.
//
// Network goroutine appends received bytes, processor goroutine extracts frames
// and owns the domain state.
type User struct {
	Actor

	mu        sync.Mutex
	buffer    *protocol.Buffer
	state     DomainState
	roomIndex int32
}

// NewUser creates a user slot with a receive buffer of bufferSize bytes.
func NewUser(index uint32, bufferSize int) *User {
	u := &User{
		buffer:    protocol.NewBuffer(bufferSize),
		roomIndex: NoRoom,
	}
	u.init(int64(index), "", DefaultUserPosition)
	return u
}

// Index returns the connection index.
func (u *User) Index() uint32 {
	return uint32(u.uuid)
}

// State returns the current domain state.
func (u *User) State() DomainState {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.state
}

// RoomIndex returns the current room or NoRoom. Valid only in DomainInRoom.
func (u *User) RoomIndex() int32 {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.roomIndex
}

// SetLogin moves NONE → LOGGED_IN.
func (u *User) SetLogin(userID string) bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.state != DomainNone {
		return false
	}
	u.state = DomainLoggedIn
	u.setUserID(userID)
	return true
}

// EnterRoom moves LOGGED_IN → IN_ROOM.
func (u *User) EnterRoom(roomIndex int32) bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.state != DomainLoggedIn {
		return false
	}
	u.state = DomainInRoom
	u.roomIndex = roomIndex
	return true
}

// LeaveRoom moves IN_ROOM → LOGGED_IN.
func (u *User) LeaveRoom() {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.state == DomainInRoom {
		u.state = DomainLoggedIn
	}
	u.roomIndex = NoRoom
}

// Clear resets the slot for the next connection.
func (u *User) Clear() {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.state = DomainNone
	u.roomIndex = NoRoom
	u.buffer.Reset()
	u.setUserID("")
	u.SetPosition(DefaultUserPosition)
	u.SetRotation(IdentityQuaternion)
}

// AppendData appends received bytes to the connection buffer.
func (u *User) AppendData(p []byte) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.buffer.Append(p)
}

// ExtractFrame returns the next complete frame from the connection buffer.
// more reports whether another complete frame is already buffered.
func (u *User) ExtractFrame() (frame protocol.Frame, ok, more bool, err error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	frame, ok, err = u.buffer.ExtractNext()
	return frame, ok, u.buffer.HasFrame(), err
}
