// Package serverpackets serializes frames sent to clients.
//
// Write returns a complete frame (header included) that the caller owns.
package serverpackets

import (
	"bytes"

	"github.com/udisondev/roomserver/internal/gameserver/packet"
	"github.com/udisondev/roomserver/internal/model"
	"github.com/udisondev/roomserver/internal/protocol"
)

// frame runs body on a pooled writer and returns a copy of the finished frame.
func frame(id protocol.MessageID, body func(w *packet.Writer)) []byte {
	w := packet.Get()
	defer w.Put()

	w.BeginFrame(id)
	body(w)
	return bytes.Clone(w.Finish())
}

func writeVec3(w *packet.Writer, v model.Vec3) {
	w.WriteFloat(v.X)
	w.WriteFloat(v.Y)
	w.WriteFloat(v.Z)
}

func writeQuaternion(w *packet.Writer, q model.Quaternion) {
	w.WriteFloat(q.X)
	w.WriteFloat(q.Y)
	w.WriteFloat(q.Z)
	w.WriteFloat(q.W)
}
