package clientpackets

import (
	"fmt"

	"github.com/udisondev/roomserver/internal/constants"
	"github.com/udisondev/roomserver/internal/gameserver/packet"
)

// LoginRequestSize is the body size of LoginRequest.
const LoginRequestSize = constants.MaxUserIDLen + constants.MaxUserPWLen

// LoginRequest is the first packet of a session.
//
// Structure:
//   - char[33]: user id (NUL padded)
//   - char[33]: password (NUL padded)
type LoginRequest struct {
	UserID   string
	Password string
}

// ParseLoginRequest parses a LoginRequest body.
func ParseLoginRequest(data []byte) (*LoginRequest, error) {
	r := packet.NewReader(data)

	userID, err := r.ReadFixedString(constants.MaxUserIDLen)
	if err != nil {
		return nil, fmt.Errorf("reading user id: %w", err)
	}
	password, err := r.ReadFixedString(constants.MaxUserPWLen)
	if err != nil {
		return nil, fmt.Errorf("reading password: %w", err)
	}

	return &LoginRequest{UserID: userID, Password: password}, nil
}
