package serverpackets

import (
	"github.com/udisondev/roomserver/internal/constants"
	"github.com/udisondev/roomserver/internal/gameserver/packet"
	"github.com/udisondev/roomserver/internal/model"
	"github.com/udisondev/roomserver/internal/protocol"
)

// UpdatePlayerMovement broadcasts the applied motion of a player.
type UpdatePlayerMovement struct {
	UUID     int64
	Rotation model.Quaternion
	Motion   model.Vec3
}

// Write serializes UpdatePlayerMovement.
func (p UpdatePlayerMovement) Write() []byte {
	return frame(protocol.UpdatePlayerMovement, func(w *packet.Writer) {
		w.WriteLong(p.UUID)
		writeQuaternion(w, p.Rotation)
		writeVec3(w, p.Motion)
	})
}

// MovePathResponse carries a path of at most MaxPathPoints waypoints.
//
// Structure:
//   - int64: uuid
//   - float32[3] x 10: waypoints, unused slots zeroed
//   - int16: waypoint count
type MovePathResponse struct {
	UUID int64
	Path []model.Vec3
}

// Write serializes MovePathResponse. Longer paths are truncated.
func (p MovePathResponse) Write() []byte {
	path := p.Path
	if len(path) > constants.MaxPathPoints {
		path = path[:constants.MaxPathPoints]
	}

	return frame(protocol.MovePathResponse, func(w *packet.Writer) {
		w.WriteLong(p.UUID)
		for i := range constants.MaxPathPoints {
			var v model.Vec3
			if i < len(path) {
				v = path[i]
			}
			writeVec3(w, v)
		}
		w.WriteShort(int16(len(path)))
	})
}
