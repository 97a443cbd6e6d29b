package protocol

import "fmt"

// MessageID identifies a frame on the wire and in the internal queues.
//
// The id space is split into three bands by source:
//   - system (1..SysEnd): lifecycle events injected by the network layer
//   - task (SysEnd+1..TaskEnd): completions of async persistence tasks
//   - client (> TaskEnd): frames received from a connection buffer
type MessageID uint16

// System band.
const (
	SysUserConnect    MessageID = 11
	SysUserDisconnect MessageID = 12

	SysEnd MessageID = 30
)

// Task band.
const (
	TaskRequestLogin   MessageID = 101
	TaskResponseLogin  MessageID = 102
	TaskRequestNotice  MessageID = 103
	TaskResponseNotice MessageID = 104

	TaskEnd MessageID = 199
)

// Client band: login, room and chat.
const (
	LoginRequest  MessageID = 201
	LoginResponse MessageID = 202

	RoomEnterRequest  MessageID = 206
	RoomEnterResponse MessageID = 207
	RoomNewUserNtf    MessageID = 208
	RoomUserInfoNtf   MessageID = 209

	RoomLeaveRequest  MessageID = 215
	RoomLeaveResponse MessageID = 216
	RoomLeaveUserNtf  MessageID = 217

	PlayerMovement       MessageID = 218
	UpdatePlayerMovement MessageID = 219

	RoomChatRequest  MessageID = 221
	RoomChatResponse MessageID = 222
	RoomChatNotify   MessageID = 223

	MovePathRequest  MessageID = 225
	MovePathResponse MessageID = 226
)

// Client band: enemies and combat.
const (
	EnemySpawnNotify   MessageID = 301
	EnemyDespawnNotify MessageID = 302
	EnemyPatrolUpdate  MessageID = 303
	EnemyDamageNotify  MessageID = 304
	EnemyDeathNotify   MessageID = 305

	PlayerAttackRequest MessageID = 310
	HitReport           MessageID = 311
)

// Client band: quests.
const (
	QuestTalkRequest      MessageID = 501
	QuestTalkResponse     MessageID = 502
	QuestAcceptRequest    MessageID = 503
	QuestAcceptResponse   MessageID = 504
	QuestProgressNotify   MessageID = 505
	QuestCompleteRequest  MessageID = 506
	QuestCompleteResponse MessageID = 507
)

// IsSystem reports whether id belongs to the system band.
func (id MessageID) IsSystem() bool {
	return id > 0 && id <= SysEnd
}

// IsTask reports whether id belongs to the async-task band.
func (id MessageID) IsTask() bool {
	return id > SysEnd && id <= TaskEnd
}

// IsClient reports whether id may arrive from a connection buffer.
func (id MessageID) IsClient() bool {
	return id > TaskEnd
}

var messageNames = map[MessageID]string{
	SysUserConnect:        "SysUserConnect",
	SysUserDisconnect:     "SysUserDisconnect",
	TaskRequestLogin:      "TaskRequestLogin",
	TaskResponseLogin:     "TaskResponseLogin",
	TaskRequestNotice:     "TaskRequestNotice",
	TaskResponseNotice:    "TaskResponseNotice",
	LoginRequest:          "LoginRequest",
	LoginResponse:         "LoginResponse",
	RoomEnterRequest:      "RoomEnterRequest",
	RoomEnterResponse:     "RoomEnterResponse",
	RoomNewUserNtf:        "RoomNewUserNtf",
	RoomUserInfoNtf:       "RoomUserInfoNtf",
	RoomLeaveRequest:      "RoomLeaveRequest",
	RoomLeaveResponse:     "RoomLeaveResponse",
	RoomLeaveUserNtf:      "RoomLeaveUserNtf",
	PlayerMovement:        "PlayerMovement",
	UpdatePlayerMovement:  "UpdatePlayerMovement",
	RoomChatRequest:       "RoomChatRequest",
	RoomChatResponse:      "RoomChatResponse",
	RoomChatNotify:        "RoomChatNotify",
	MovePathRequest:       "MovePathRequest",
	MovePathResponse:      "MovePathResponse",
	EnemySpawnNotify:      "EnemySpawnNotify",
	EnemyDespawnNotify:    "EnemyDespawnNotify",
	EnemyPatrolUpdate:     "EnemyPatrolUpdate",
	EnemyDamageNotify:     "EnemyDamageNotify",
	EnemyDeathNotify:      "EnemyDeathNotify",
	PlayerAttackRequest:   "PlayerAttackRequest",
	HitReport:             "HitReport",
	QuestTalkRequest:      "QuestTalkRequest",
	QuestTalkResponse:     "QuestTalkResponse",
	QuestAcceptRequest:    "QuestAcceptRequest",
	QuestAcceptResponse:   "QuestAcceptResponse",
	QuestProgressNotify:   "QuestProgressNotify",
	QuestCompleteRequest:  "QuestCompleteRequest",
	QuestCompleteResponse: "QuestCompleteResponse",
}

func (id MessageID) String() string {
	if name, ok := messageNames[id]; ok {
		return name
	}
	return fmt.Sprintf("MessageID(%d)", uint16(id))
}
