package gameserver

import (
	"log/slog"

	"github.com/udisondev/roomserver/internal/gameserver/admin"
	"github.com/udisondev/roomserver/internal/gameserver/clientpackets"
	"github.com/udisondev/roomserver/internal/gameserver/serverpackets"
	"github.com/udisondev/roomserver/internal/model"
	"github.com/udisondev/roomserver/internal/protocol"
	"github.com/udisondev/roomserver/internal/room"
	"github.com/udisondev/roomserver/internal/task"
)

// gmUserID is the sender shown for GM notices.
const gmUserID = "[GM]"

func (p *Processor) registerHandlers() {
	p.handlers = map[protocol.MessageID]handlerEntry{
		protocol.SysUserConnect:    {anySize, p.handleConnect},
		protocol.SysUserDisconnect: {anySize, p.handleDisconnect},

		protocol.TaskResponseLogin:  {anySize, p.handleLoginResult},
		protocol.TaskResponseNotice: {anySize, p.handleNoticeResult},

		protocol.LoginRequest:     {clientpackets.LoginRequestSize, p.handleLogin},
		protocol.RoomEnterRequest: {clientpackets.RoomEnterRequestSize, p.handleRoomEnter},
		protocol.RoomLeaveRequest: {clientpackets.RoomLeaveRequestSize, p.handleRoomLeave},
		protocol.RoomChatRequest:  {clientpackets.RoomChatRequestSize, p.handleRoomChat},
		protocol.PlayerMovement:   {clientpackets.PlayerMovementSize, p.handlePlayerMovement},
		protocol.MovePathRequest:  {clientpackets.MovePathRequestSize, p.handleMovePath},

		protocol.PlayerAttackRequest: {clientpackets.PlayerAttackRequestSize, p.handlePlayerAttack},
		protocol.HitReport:           {clientpackets.HitReportSize, p.handleHitReport},

		protocol.QuestTalkRequest:     {clientpackets.QuestTalkRequestSize, p.handleQuestTalk},
		protocol.QuestAcceptRequest:   {clientpackets.QuestAcceptRequestSize, p.handleQuestAccept},
		protocol.QuestCompleteRequest: {clientpackets.QuestCompleteRequestSize, p.handleQuestComplete},
	}
}

func (p *Processor) send(idx uint32, data []byte) {
	if err := p.clients.Send(idx, data); err != nil {
		slog.Debug("send failed", "connIdx", idx, "error", err)
	}
}

// handleConnect — слот уже очищен при Release предыдущего соединения.
func (p *Processor) handleConnect(idx uint32, _ []byte) {
	remote := ""
	if c, ok := p.clients.Client(idx); ok {
		remote = c.Remote()
	}
	slog.Info("user connected", "connIdx", idx, "remote", remote, "connections", p.clients.Count())
}

func (p *Processor) handleDisconnect(idx uint32, _ []byte) {
	u, ok := p.clients.User(idx)
	if !ok {
		return
	}

	userID := u.UserID()
	if u.State() == model.DomainInRoom {
		if res := p.rooms.LeaveUser(u.RoomIndex(), u); res != protocol.ResultNone {
			slog.Warn("leaving room on disconnect", "connIdx", idx, "room", u.RoomIndex(), "result", res)
		}
	}
	delete(p.logins, idx)
	p.clients.Release(idx)

	slog.Info("user disconnected", "connIdx", idx, "userID", userID, "connections", p.clients.Count())
}

func (p *Processor) handleLogin(idx uint32, body []byte) {
	req, err := clientpackets.ParseLoginRequest(body)
	if err != nil {
		slog.Warn("parsing LoginRequest", "connIdx", idx, "error", err)
		return
	}
	u, ok := p.clients.User(idx)
	if !ok {
		return
	}

	reply := func(code protocol.ResultCode) {
		p.send(idx, serverpackets.LoginResponse{Result: uint16(code)}.Write())
	}

	if p.clients.LoggedInCount() >= p.maxUsers {
		slog.Info("login rejected: server full", "connIdx", idx, "userID", req.UserID)
		reply(protocol.LoginUserUsedAllObj)
		return
	}
	_, pending := p.logins[idx]
	if _, dup := p.clients.FindUserByID(req.UserID); dup || pending || u.State() != model.DomainNone {
		slog.Info("login rejected: already logged in", "connIdx", idx, "userID", req.UserID)
		reply(protocol.LoginUserAlready)
		return
	}

	t := task.New(protocol.TaskRequestLogin, idx, task.EncodeLoginRequest(task.LoginRequest{
		UserID:   req.UserID,
		Password: req.Password,
	}))
	if err := p.tasks.Push(t); err != nil {
		slog.Error("queueing login task", "connIdx", idx, "userID", req.UserID, "error", err)
		reply(protocol.LoginStoreFailure)
		return
	}
	p.logins[idx] = t.ID
	slog.Debug("login task queued", "connIdx", idx, "userID", req.UserID, "taskID", t.ID)
}

func (p *Processor) handleLoginResult(idx uint32, payload []byte) {
	res, err := task.DecodeLoginResult(payload)
	if err != nil {
		slog.Error("decoding login result", "connIdx", idx, "error", err)
		return
	}
	u, ok := p.clients.User(idx)
	if !ok {
		return
	}
	if _, live := p.clients.Client(idx); !live {
		slog.Info("login result for closed connection", "connIdx", idx, "userID", res.UserID)
		return
	}

	code := res.Result
	if code == protocol.ResultNone {
		// два логина с одним id могли пройти проверку до ответа хранилища
		if other, dup := p.clients.FindUserByID(res.UserID); dup && other != u {
			code = protocol.LoginUserAlready
		} else if !u.SetLogin(res.UserID) {
			code = protocol.LoginUserAlready
		}
	}

	if code != protocol.ResultNone {
		slog.Info("login failed", "connIdx", idx, "userID", res.UserID, "result", code)
		p.send(idx, serverpackets.LoginResponse{Result: uint16(code)}.Write())
		return
	}

	slog.Info("user logged in", "connIdx", idx, "userID", res.UserID)
	// клиент ожидает свой индекс соединения в поле result
	p.send(idx, serverpackets.LoginResponse{Result: uint16(idx)}.Write())
}

func (p *Processor) handleNoticeResult(idx uint32, payload []byte) {
	n, err := task.DecodeNotice(payload)
	if err != nil {
		slog.Error("decoding notice", "error", err)
		return
	}
	slog.Info("GM notice", "from", n.UserID, "message", n.Message)
	p.rooms.SendToAllUser(serverpackets.RoomChatNotify{UserID: gmUserID, Message: n.Message}.Write())
}

// PushNotice queues a GM notice. Used by the /n chat command.
func (p *Processor) PushNotice(idx uint32, userID, message string) error {
	return p.tasks.Push(task.New(protocol.TaskRequestNotice, idx, task.EncodeNotice(task.Notice{
		UserID:  userID,
		Message: message,
	})))
}

func (p *Processor) handleRoomEnter(idx uint32, body []byte) {
	req, err := clientpackets.ParseRoomEnterRequest(body)
	if err != nil {
		slog.Warn("parsing RoomEnterRequest", "connIdx", idx, "error", err)
		return
	}
	u, ok := p.clients.User(idx)
	if !ok {
		return
	}

	var res protocol.ResultCode
	if u.State() != model.DomainLoggedIn {
		res = protocol.EnterRoomInvalidUserStatus
	} else {
		res = p.rooms.EnterUser(req.RoomNumber, u)
	}

	p.send(idx, serverpackets.RoomEnterResponse{Result: res}.Write())
	if res != protocol.ResultNone {
		slog.Info("room enter rejected", "connIdx", idx, "room", req.RoomNumber, "result", res)
		return
	}

	if r, ok := p.rooms.Room(req.RoomNumber); ok {
		r.NotifyUserEnter(u)
	}
}

func (p *Processor) handleRoomLeave(idx uint32, _ []byte) {
	u, ok := p.clients.User(idx)
	if !ok {
		return
	}

	res := protocol.LeaveRoomInvalidRoomIndex
	if u.State() == model.DomainInRoom {
		res = p.rooms.LeaveUser(u.RoomIndex(), u)
	}
	p.send(idx, serverpackets.RoomLeaveResponse{Result: res}.Write())
}

// roomOf returns the room u is in.
func (p *Processor) roomOf(u *model.User) (*room.Room, bool) {
	if u.State() != model.DomainInRoom {
		return nil, false
	}
	return p.rooms.Room(u.RoomIndex())
}

func (p *Processor) handleRoomChat(idx uint32, body []byte) {
	req, err := clientpackets.ParseRoomChatRequest(body)
	if err != nil {
		slog.Warn("parsing RoomChatRequest", "connIdx", idx, "error", err)
		return
	}
	u, ok := p.clients.User(idx)
	if !ok {
		return
	}

	r, ok := p.roomOf(u)
	if !ok {
		p.send(idx, serverpackets.RoomChatResponse{Result: protocol.ChatRoomInvalidRoomNumber}.Write())
		return
	}

	if p.commands.Handle(admin.Issuer{User: u, Room: r}, req.Message) {
		return
	}

	p.send(idx, serverpackets.RoomChatResponse{Result: protocol.ResultNone}.Write())
	r.NotifyChat(idx, u.UserID(), req.Message, false)
}

func (p *Processor) handlePlayerMovement(idx uint32, body []byte) {
	req, err := clientpackets.ParsePlayerMovement(body)
	if err != nil {
		slog.Warn("parsing PlayerMovement", "connIdx", idx, "error", err)
		return
	}
	u, ok := p.clients.User(idx)
	if !ok {
		return
	}
	r, ok := p.roomOf(u)
	if !ok {
		slog.Debug("movement outside room", "connIdx", idx)
		return
	}
	if req.UUID != u.UUID() {
		slog.Warn("movement for foreign uuid", "connIdx", idx, "uuid", req.UUID)
		return
	}
	r.UpdateMovement(u, req.DX, req.DY, req.Rotation)
}

func (p *Processor) handleMovePath(idx uint32, body []byte) {
	req, err := clientpackets.ParseMovePathRequest(body)
	if err != nil {
		slog.Warn("parsing MovePathRequest", "connIdx", idx, "error", err)
		return
	}
	u, ok := p.clients.User(idx)
	if !ok {
		return
	}
	r, ok := p.roomOf(u)
	if !ok {
		slog.Debug("path request outside room", "connIdx", idx)
		return
	}

	path := r.FindPath(req.Start, req.End)
	p.send(idx, serverpackets.MovePathResponse{UUID: req.UUID, Path: path}.Write())
}

func (p *Processor) handlePlayerAttack(idx uint32, body []byte) {
	req, err := clientpackets.ParsePlayerAttackRequest(body)
	if err != nil {
		slog.Warn("parsing PlayerAttackRequest", "connIdx", idx, "error", err)
		return
	}
	u, ok := p.clients.User(idx)
	if !ok {
		return
	}
	r, ok := p.roomOf(u)
	if !ok {
		slog.Debug("attack outside room", "connIdx", idx)
		return
	}
	r.ProcessPlayerAttack(u, req.Position, req.Direction)
}

func (p *Processor) handleHitReport(idx uint32, body []byte) {
	req, err := clientpackets.ParseHitReport(body)
	if err != nil {
		slog.Warn("parsing HitReport", "connIdx", idx, "error", err)
		return
	}
	u, ok := p.clients.User(idx)
	if !ok {
		return
	}
	r, ok := p.roomOf(u)
	if !ok {
		slog.Debug("hit report outside room", "connIdx", idx)
		return
	}
	r.ProcessHitReport(u, req.EnemyID, req.Damage)
}

func (p *Processor) handleQuestTalk(idx uint32, body []byte) {
	req, err := clientpackets.ParseQuestTalkRequest(body)
	if err != nil {
		slog.Warn("parsing QuestTalkRequest", "connIdx", idx, "error", err)
		return
	}
	if u, r, ok := p.userInRoom(idx); ok {
		r.QuestTalk(u, req.NpcID)
	}
}

func (p *Processor) handleQuestAccept(idx uint32, body []byte) {
	req, err := clientpackets.ParseQuestRequest(body)
	if err != nil {
		slog.Warn("parsing QuestAcceptRequest", "connIdx", idx, "error", err)
		return
	}
	if u, r, ok := p.userInRoom(idx); ok {
		r.QuestAccept(u, req.NpcID, req.QuestID)
	}
}

func (p *Processor) handleQuestComplete(idx uint32, body []byte) {
	req, err := clientpackets.ParseQuestRequest(body)
	if err != nil {
		slog.Warn("parsing QuestCompleteRequest", "connIdx", idx, "error", err)
		return
	}
	if u, r, ok := p.userInRoom(idx); ok {
		r.QuestComplete(u, req.NpcID, req.QuestID)
	}
}

func (p *Processor) userInRoom(idx uint32) (*model.User, *room.Room, bool) {
	u, ok := p.clients.User(idx)
	if !ok {
		return nil, nil, false
	}
	r, ok := p.roomOf(u)
	if !ok {
		slog.Debug("quest request outside room", "connIdx", idx)
		return nil, nil, false
	}
	return u, r, true
}
