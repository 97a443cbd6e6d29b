package admin_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/roomserver/internal/gameserver/admin"
	"github.com/udisondev/roomserver/internal/model"
)

type stubRoom struct{}

func (stubRoom) Number() int32                               { return 3 }
func (stubRoom) EnterNpc() *model.Npc                        { return model.NewNpc(10000, model.Vec3{}) }
func (stubRoom) FindPath(start, end model.Vec3) []model.Vec3 { return []model.Vec3{start, end} }
func (stubRoom) SendToAllUser([]byte, uint32, bool)          {}

type recordingCmd struct {
	names  []string
	err    error
	params []string
}

func (c *recordingCmd) Names() []string { return c.names }

func (c *recordingCmd) Handle(_ admin.Issuer, params string) error {
	c.params = append(c.params, params)
	return c.err
}

func issuer() admin.Issuer {
	u := model.NewUser(250, 64)
	u.SetLogin("alice")
	return admin.Issuer{User: u, Room: stubRoom{}}
}

func TestHandler_Dispatch(t *testing.T) {
	h := admin.NewHandler()
	cmd := &recordingCmd{names: []string{"n", "notice"}}
	h.Register(cmd)

	require.Equal(t, 2, h.Count())

	assert.True(t, h.Handle(issuer(), "/n  hello world "))
	assert.True(t, h.Handle(issuer(), "/NOTICE hi"))
	assert.Equal(t, []string{"hello world", "hi"}, cmd.params)
}

func TestHandler_NotACommand(t *testing.T) {
	h := admin.NewHandler()
	cmd := &recordingCmd{names: []string{"c"}}
	h.Register(cmd)

	tests := []struct {
		name string
		msg  string
	}{
		{"plain chat", "hello"},
		{"lone slash", "/"},
		{"unknown command", "/x 1"},
		{"prefix only", "/cc"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.False(t, h.Handle(issuer(), tt.msg))
		})
	}
	assert.Empty(t, cmd.params)
}

func TestHandler_FailedCommandIsConsumed(t *testing.T) {
	h := admin.NewHandler()
	h.Register(&recordingCmd{names: []string{"p"}, err: errors.New("bad args")})

	assert.True(t, h.Handle(issuer(), "/p nope"))
}
