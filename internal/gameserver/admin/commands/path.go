package commands

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/udisondev/roomserver/internal/gameserver/admin"
	"github.com/udisondev/roomserver/internal/gameserver/serverpackets"
	"github.com/udisondev/roomserver/internal/model"
)

// Path handles /p x,y,z — finds a path from the issuer to the point and shows it to the room.
type Path struct{}

func (Path) Names() []string { return []string{"p"} }

func (Path) Handle(issuer admin.Issuer, params string) error {
	end, err := ParseVec3(params)
	if err != nil {
		return err
	}

	start := issuer.User.Position()
	path := issuer.Room.FindPath(start, end)

	slog.Debug("path command",
		"userID", issuer.User.UserID(),
		"start", start,
		"end", end,
		"points", len(path))

	issuer.Room.SendToAllUser(serverpackets.MovePathResponse{
		UUID: issuer.User.UUID(),
		Path: path,
	}.Write(), issuer.User.Index(), false)
	return nil
}

// ParseVec3 parses "x,y,z" (spaces allowed).
func ParseVec3(s string) (model.Vec3, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return model.Vec3{}, fmt.Errorf("usage: /p x,y,z (got %q)", s)
	}

	var xyz [3]float32
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 32)
		if err != nil {
			return model.Vec3{}, fmt.Errorf("parsing coordinate %d: %w", i, err)
		}
		xyz[i] = float32(v)
	}
	return model.Vec3{X: xyz[0], Y: xyz[1], Z: xyz[2]}, nil
}
