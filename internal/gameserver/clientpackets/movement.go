package clientpackets

import (
	"fmt"

	"github.com/udisondev/roomserver/internal/gameserver/packet"
	"github.com/udisondev/roomserver/internal/model"
)

// Body sizes of movement packets.
const (
	PlayerMovementSize  = 8 + 4 + 4 + 16
	MovePathRequestSize = 8 + 12 + 12
)

// PlayerMovement is the client input axis for one fixed step.
//
// Structure:
//   - int64: uuid
//   - float32: horizontal axis
//   - float32: vertical axis
//   - float32[4]: rotation
type PlayerMovement struct {
	UUID     int64
	DX, DY   float32
	Rotation model.Quaternion
}

// ParsePlayerMovement parses a PlayerMovement body.
func ParsePlayerMovement(data []byte) (*PlayerMovement, error) {
	r := packet.NewReader(data)
	var p PlayerMovement
	var err error

	if p.UUID, err = r.ReadLong(); err != nil {
		return nil, fmt.Errorf("reading uuid: %w", err)
	}
	if p.DX, err = r.ReadFloat(); err != nil {
		return nil, fmt.Errorf("reading dx: %w", err)
	}
	if p.DY, err = r.ReadFloat(); err != nil {
		return nil, fmt.Errorf("reading dy: %w", err)
	}
	if p.Rotation, err = readQuaternion(r); err != nil {
		return nil, fmt.Errorf("reading rotation: %w", err)
	}
	return &p, nil
}

// MovePathRequest asks for a walkable path between two points.
//
// Structure:
//   - int64: uuid
//   - float32[3]: start
//   - float32[3]: end
type MovePathRequest struct {
	UUID  int64
	Start model.Vec3
	End   model.Vec3
}

// ParseMovePathRequest parses a MovePathRequest body.
func ParseMovePathRequest(data []byte) (*MovePathRequest, error) {
	r := packet.NewReader(data)
	var p MovePathRequest
	var err error

	if p.UUID, err = r.ReadLong(); err != nil {
		return nil, fmt.Errorf("reading uuid: %w", err)
	}
	if p.Start, err = readVec3(r); err != nil {
		return nil, fmt.Errorf("reading start: %w", err)
	}
	if p.End, err = readVec3(r); err != nil {
		return nil, fmt.Errorf("reading end: %w", err)
	}
	return &p, nil
}
