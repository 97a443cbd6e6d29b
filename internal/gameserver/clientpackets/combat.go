package clientpackets

import (
	"fmt"

	"github.com/udisondev/roomserver/internal/gameserver/packet"
	"github.com/udisondev/roomserver/internal/model"
)

// Body sizes of combat packets.
const (
	PlayerAttackRequestSize = 12 + 12
	HitReportSize           = 8 + 4 + 12 + 4
)

// PlayerAttackRequest is a melee swing resolved by the server hit box.
//
// Structure:
//   - float32[3]: attacker position
//   - float32[3]: facing direction
type PlayerAttackRequest struct {
	Position  model.Vec3
	Direction model.Vec3
}

// ParsePlayerAttackRequest parses a PlayerAttackRequest body.
func ParsePlayerAttackRequest(data []byte) (*PlayerAttackRequest, error) {
	r := packet.NewReader(data)
	var p PlayerAttackRequest
	var err error

	if p.Position, err = readVec3(r); err != nil {
		return nil, fmt.Errorf("reading position: %w", err)
	}
	if p.Direction, err = readVec3(r); err != nil {
		return nil, fmt.Errorf("reading direction: %w", err)
	}
	return &p, nil
}

// HitReport is a client-resolved hit on a specific enemy.
//
// Structure:
//   - int64: enemy id
//   - int32: damage
//   - float32[3]: hit point
//   - uint32: client sequence number
type HitReport struct {
	EnemyID  int64
	Damage   int32
	HitPoint model.Vec3
	Sequence uint32
}

// ParseHitReport parses a HitReport body.
func ParseHitReport(data []byte) (*HitReport, error) {
	r := packet.NewReader(data)
	var p HitReport
	var err error

	if p.EnemyID, err = r.ReadLong(); err != nil {
		return nil, fmt.Errorf("reading enemy id: %w", err)
	}
	if p.Damage, err = r.ReadInt(); err != nil {
		return nil, fmt.Errorf("reading damage: %w", err)
	}
	if p.HitPoint, err = readVec3(r); err != nil {
		return nil, fmt.Errorf("reading hit point: %w", err)
	}
	if p.Sequence, err = r.ReadUInt(); err != nil {
		return nil, fmt.Errorf("reading sequence: %w", err)
	}
	return &p, nil
}
