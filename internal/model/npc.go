package model

import "strconv"

// Npc — неигровой персонаж комнаты. Клиент видит его как обычного пользователя.
type Npc struct {
	Actor
}

// NewNpc creates an NPC; its display id is the decimal UUID.
func NewNpc(uuid int64, pos Vec3) *Npc {
	n := &Npc{}
	n.init(uuid, strconv.FormatInt(uuid, 10), pos)
	return n
}
