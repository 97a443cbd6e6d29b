package protocol

import "fmt"

// ResultCode is the status carried by response frames.
type ResultCode uint16

const (
	ResultNone ResultCode = 0

	LoginUserAlready    ResultCode = 31
	LoginUserUsedAllObj ResultCode = 32
	LoginUserInvalidPW  ResultCode = 33
	LoginStoreFailure   ResultCode = 34

	EnterRoomInvalidUserStatus ResultCode = 52
	EnterRoomFullUser          ResultCode = 54

	RoomInvalidIndex          ResultCode = 61
	LeaveRoomInvalidRoomIndex ResultCode = 71
	ChatRoomInvalidRoomNumber ResultCode = 81
)

// IsLoginFailure reports whether c is one of the LoginResponse failure codes.
func (c ResultCode) IsLoginFailure() bool {
	return c >= LoginUserAlready && c <= LoginStoreFailure
}

// Quest responses carry a single result byte.
const (
	QuestResultFail byte = 0
	QuestResultOK   byte = 1
)

var resultNames = map[ResultCode]string{
	ResultNone:                 "None",
	LoginUserAlready:           "LoginUserAlready",
	LoginUserUsedAllObj:        "LoginUserUsedAllObj",
	LoginUserInvalidPW:         "LoginUserInvalidPW",
	LoginStoreFailure:          "LoginStoreFailure",
	EnterRoomInvalidUserStatus: "EnterRoomInvalidUserStatus",
	EnterRoomFullUser:          "EnterRoomFullUser",
	RoomInvalidIndex:           "RoomInvalidIndex",
	LeaveRoomInvalidRoomIndex:  "LeaveRoomInvalidRoomIndex",
	ChatRoomInvalidRoomNumber:  "ChatRoomInvalidRoomNumber",
}

func (c ResultCode) String() string {
	if name, ok := resultNames[c]; ok {
		return name
	}
	return fmt.Sprintf("ResultCode(%d)", uint16(c))
}
