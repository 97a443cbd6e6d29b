// Package clientpackets parses frame bodies received from clients.
//
// Every parser receives the body without the 5-byte header. Size constants are
// the exact body sizes the processor checks before dispatch.
package clientpackets

import (
	"fmt"

	"github.com/udisondev/roomserver/internal/gameserver/packet"
	"github.com/udisondev/roomserver/internal/model"
)

func readVec3(r *packet.Reader) (model.Vec3, error) {
	var v model.Vec3
	var err error
	if v.X, err = r.ReadFloat(); err != nil {
		return v, fmt.Errorf("reading x: %w", err)
	}
	if v.Y, err = r.ReadFloat(); err != nil {
		return v, fmt.Errorf("reading y: %w", err)
	}
	if v.Z, err = r.ReadFloat(); err != nil {
		return v, fmt.Errorf("reading z: %w", err)
	}
	return v, nil
}

func readQuaternion(r *packet.Reader) (model.Quaternion, error) {
	var q model.Quaternion
	var err error
	if q.X, err = r.ReadFloat(); err != nil {
		return q, fmt.Errorf("reading x: %w", err)
	}
	if q.Y, err = r.ReadFloat(); err != nil {
		return q, fmt.Errorf("reading y: %w", err)
	}
	if q.Z, err = r.ReadFloat(); err != nil {
		return q, fmt.Errorf("reading z: %w", err)
	}
	if q.W, err = r.ReadFloat(); err != nil {
		return q, fmt.Errorf("reading w: %w", err)
	}
	return q, nil
}
