package serverpackets

import (
	"github.com/udisondev/roomserver/internal/gameserver/packet"
	"github.com/udisondev/roomserver/internal/protocol"
)

// LoginResponse answers LoginRequest.
// Result is the connection index on success, an error code otherwise.
type LoginResponse struct {
	Result uint16
}

// Write serializes LoginResponse.
func (p LoginResponse) Write() []byte {
	return frame(protocol.LoginResponse, func(w *packet.Writer) {
		w.WriteUShort(p.Result)
	})
}
