// Package task runs persistence work off the packet processor goroutine.
//
// The processor pushes request tasks (login, notice) and polls completions with
// TakeResponse on every iteration; workers never touch game state.
package task

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/udisondev/roomserver/internal/constants"
	"github.com/udisondev/roomserver/internal/gameserver/packet"
	"github.com/udisondev/roomserver/internal/protocol"
)

// Task is one async request or its completion.
type Task struct {
	ID      uuid.UUID
	Kind    protocol.MessageID // task band id
	ConnIdx uint32
	Payload []byte
}

// New creates a task with a fresh id.
func New(kind protocol.MessageID, connIdx uint32, payload []byte) Task {
	return Task{
		ID:      uuid.New(),
		Kind:    kind,
		ConnIdx: connIdx,
		Payload: payload,
	}
}

// reply builds the completion of t.
func (t Task) reply(kind protocol.MessageID, payload []byte) Task {
	return Task{ID: t.ID, Kind: kind, ConnIdx: t.ConnIdx, Payload: payload}
}

// LoginRequest is the payload of TaskRequestLogin.
type LoginRequest struct {
	UserID   string
	Password string
}

// LoginResult is the payload of TaskResponseLogin.
type LoginResult struct {
	UserID string
	Result protocol.ResultCode
}

// Notice is the payload of TaskRequestNotice and TaskResponseNotice.
type Notice struct {
	UserID  string
	Message string
}

// EncodeLoginRequest serializes r.
func EncodeLoginRequest(r LoginRequest) []byte {
	w := packet.NewWriter(constants.MaxUserIDLen + constants.MaxUserPWLen)
	w.WriteFixedString(r.UserID, constants.MaxUserIDLen)
	w.WriteFixedString(r.Password, constants.MaxUserPWLen)
	return w.Bytes()
}

// DecodeLoginRequest parses a TaskRequestLogin payload.
func DecodeLoginRequest(data []byte) (LoginRequest, error) {
	r := packet.NewReader(data)
	var req LoginRequest
	var err error
	if req.UserID, err = r.ReadFixedString(constants.MaxUserIDLen); err != nil {
		return req, fmt.Errorf("reading userID: %w", err)
	}
	if req.Password, err = r.ReadFixedString(constants.MaxUserPWLen); err != nil {
		return req, fmt.Errorf("reading password: %w", err)
	}
	return req, nil
}

// EncodeLoginResult serializes r.
func EncodeLoginResult(r LoginResult) []byte {
	w := packet.NewWriter(constants.MaxUserIDLen + 2)
	w.WriteFixedString(r.UserID, constants.MaxUserIDLen)
	w.WriteUShort(uint16(r.Result))
	return w.Bytes()
}

// DecodeLoginResult parses a TaskResponseLogin payload.
func DecodeLoginResult(data []byte) (LoginResult, error) {
	r := packet.NewReader(data)
	var res LoginResult
	var err error
	if res.UserID, err = r.ReadFixedString(constants.MaxUserIDLen); err != nil {
		return res, fmt.Errorf("reading userID: %w", err)
	}
	code, err := r.ReadUShort()
	if err != nil {
		return res, fmt.Errorf("reading result: %w", err)
	}
	res.Result = protocol.ResultCode(code)
	return res, nil
}

// EncodeNotice serializes n.
func EncodeNotice(n Notice) []byte {
	w := packet.NewWriter(constants.MaxUserIDLen + constants.MaxChatMsgLen)
	w.WriteFixedString(n.UserID, constants.MaxUserIDLen)
	w.WriteFixedString(n.Message, constants.MaxChatMsgLen)
	return w.Bytes()
}

// DecodeNotice parses a notice payload.
func DecodeNotice(data []byte) (Notice, error) {
	r := packet.NewReader(data)
	var n Notice
	var err error
	if n.UserID, err = r.ReadFixedString(constants.MaxUserIDLen); err != nil {
		return n, fmt.Errorf("reading userID: %w", err)
	}
	if n.Message, err = r.ReadFixedString(constants.MaxChatMsgLen); err != nil {
		return n, fmt.Errorf("reading message: %w", err)
	}
	return n, nil
}
