package room

import (
	"log/slog"

	"github.com/udisondev/roomserver/internal/constants"
	"github.com/udisondev/roomserver/internal/gameserver/serverpackets"
	"github.com/udisondev/roomserver/internal/model"
	"github.com/udisondev/roomserver/internal/protocol"
)

// EnterUser admits u, moves it to IN_ROOM and sends it the current room state:
// one info packet per user and NPC, one spawn packet per live enemy.
// The caller sends the enter response and then calls NotifyUserEnter.
func (r *Room) EnterUser(u *model.User) protocol.ResultCode {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.users) >= r.cfg.Capacity {
		return protocol.EnterRoomFullUser
	}
	if !u.EnterRoom(r.number) {
		return protocol.EnterRoomInvalidUserStatus
	}

	idx := u.Index()
	for _, other := range r.users {
		r.sendLocked(idx, userInfo(&other.Actor))
	}
	for _, npc := range r.npcs {
		r.sendLocked(idx, userInfo(&npc.Actor))
	}
	for _, e := range r.liveEnemiesLocked() {
		r.sendLocked(idx, serverpackets.NewEnemySpawnNotify(e).Write())
	}

	r.users = append(r.users, u)

	slog.Info("user entered room", "room", r.number, "userID", u.UserID(), "users", len(r.users))
	return protocol.ResultNone
}

// NotifyUserEnter broadcasts RoomNewUserNtf for u.
// The entrant itself is included when the room is configured to notify it.
func (r *Room) NotifyUserEnter(u *model.User) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.broadcastLocked(serverpackets.RoomNewUserNtf{
		UUID:   u.UUID(),
		UserID: u.UserID(),
	}.Write(), u.Index(), !r.cfg.NotifyEntrant)
}

// LeaveUser removes u and notifies the remaining users.
// Returns false when u is not in this room.
func (r *Room) LeaveUser(u *model.User) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	pos := -1
	for i, member := range r.users {
		if member == u {
			pos = i
			break
		}
	}
	if pos < 0 {
		return false
	}

	r.users = append(r.users[:pos], r.users[pos+1:]...)
	u.LeaveRoom()

	r.broadcastLocked(serverpackets.RoomLeaveUserNtf{
		UUID:   u.UUID(),
		UserID: u.UserID(),
	}.Write(), u.Index(), true)

	slog.Info("user left room", "room", r.number, "userID", u.UserID(), "users", len(r.users))
	return true
}

// NotifyChat broadcasts a chat line from userID.
func (r *Room) NotifyChat(passIdx uint32, userID, msg string, exceptMe bool) {
	r.SendToAllUser(serverpackets.RoomChatNotify{UserID: userID, Message: msg}.Write(), passIdx, exceptMe)
}

// SendToAllUser sends data to every user, skipping passIdx when exceptMe is set.
func (r *Room) SendToAllUser(data []byte, passIdx uint32, exceptMe bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.broadcastLocked(data, passIdx, exceptMe)
}

// UpdateMovement applies one movement step of u and broadcasts the result.
func (r *Room) UpdateMovement(u *model.User, dx, dy float32, rot model.Quaternion) {
	motion := u.UpdateMovement(dx, dy, rot)
	r.SendToAllUser(serverpackets.UpdatePlayerMovement{
		UUID:     u.UUID(),
		Rotation: rot,
		Motion:   motion,
	}.Write(), u.Index(), false)
}

// EnterNpc creates a new NPC and announces it to the room.
func (r *Room) EnterNpc() *model.Npc {
	r.mu.Lock()
	defer r.mu.Unlock()

	npc := r.createNpcLocked()
	r.broadcastLocked(serverpackets.RoomNewUserNtf{
		UUID:   npc.UUID(),
		UserID: npc.UserID(),
	}.Write(), 0, false)
	return npc
}

// NpcCount returns the number of NPCs.
func (r *Room) NpcCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.npcs)
}

func (r *Room) createNpcLocked() *model.Npc {
	npc := model.NewNpc(int64(constants.NpcUUIDStart+len(r.npcs)), model.DefaultUserPosition)
	r.npcs = append(r.npcs, npc)
	return npc
}

func (r *Room) hasNpcLocked(uuid int64) bool {
	if !constants.IsNpcUUID(uuid) {
		return false
	}
	for _, npc := range r.npcs {
		if npc.UUID() == uuid {
			return true
		}
	}
	return false
}

// FindPath returns a path from start to end.
// Without a path finder the path is the straight segment.
func (r *Room) FindPath(start, end model.Vec3) []model.Vec3 {
	if r.paths == nil {
		return []model.Vec3{start, end}
	}
	return r.paths.FindPath(start, end)
}

func (r *Room) broadcastLocked(data []byte, passIdx uint32, exceptMe bool) {
	for _, u := range r.users {
		if exceptMe && u.Index() == passIdx {
			continue
		}
		r.sendLocked(u.Index(), data)
	}
}

func (r *Room) sendLocked(idx uint32, data []byte) {
	if err := r.sender.Send(idx, data); err != nil {
		slog.Debug("room send failed", "room", r.number, "conn", idx, "error", err)
	}
}

func userInfo(a *model.Actor) []byte {
	return serverpackets.RoomUserInfoNtf{
		UUID:     a.UUID(),
		UserID:   a.UserID(),
		Position: a.Position(),
		Rotation: a.Rotation(),
	}.Write()
}
