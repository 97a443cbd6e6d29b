package commands

import (
	"log/slog"

	"github.com/udisondev/roomserver/internal/gameserver/admin"
)

// CreateNpc handles /c — adds an NPC to the issuer's room.
type CreateNpc struct{}

func (CreateNpc) Names() []string { return []string{"c"} }

func (CreateNpc) Handle(issuer admin.Issuer, _ string) error {
	npc := issuer.Room.EnterNpc()
	slog.Info("npc created", "room", issuer.Room.Number(), "uuid", npc.UUID())
	return nil
}
