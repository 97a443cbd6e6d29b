package commands_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/roomserver/internal/gameserver/admin"
	"github.com/udisondev/roomserver/internal/gameserver/admin/commands"
	"github.com/udisondev/roomserver/internal/gameserver/packet"
	"github.com/udisondev/roomserver/internal/model"
	"github.com/udisondev/roomserver/internal/protocol"
)

type broadcast struct {
	data     []byte
	passIdx  uint32
	exceptMe bool
}

type fakeRoom struct {
	npcs  int
	sent  []broadcast
	paths [][2]model.Vec3
}

func (r *fakeRoom) Number() int32 { return 1 }

func (r *fakeRoom) EnterNpc() *model.Npc {
	r.npcs++
	return model.NewNpc(int64(10000+r.npcs), model.Vec3{})
}

func (r *fakeRoom) FindPath(start, end model.Vec3) []model.Vec3 {
	r.paths = append(r.paths, [2]model.Vec3{start, end})
	return []model.Vec3{start, end}
}

func (r *fakeRoom) SendToAllUser(data []byte, passIdx uint32, exceptMe bool) {
	r.sent = append(r.sent, broadcast{data, passIdx, exceptMe})
}

type fakePublisher struct {
	err     error
	notices []string
}

func (p *fakePublisher) PushNotice(_ uint32, userID, message string) error {
	if p.err != nil {
		return p.err
	}
	p.notices = append(p.notices, userID+":"+message)
	return nil
}

func setup(t *testing.T, pub commands.NoticePublisher) (*admin.Handler, *fakeRoom, admin.Issuer) {
	t.Helper()
	h := admin.NewHandler()
	h.Register(commands.CreateNpc{})
	h.Register(commands.NewNotice(pub))
	h.Register(commands.Path{})

	u := model.NewUser(201, 64)
	require.True(t, u.SetLogin("gm"))
	room := &fakeRoom{}
	return h, room, admin.Issuer{User: u, Room: room}
}

func TestCreateNpc(t *testing.T) {
	h, room, is := setup(t, &fakePublisher{})

	require.True(t, h.Handle(is, "/c"))
	assert.Equal(t, 1, room.npcs)
	assert.Empty(t, room.sent)
}

func TestNotice(t *testing.T) {
	pub := &fakePublisher{}
	h, _, is := setup(t, pub)

	require.True(t, h.Handle(is, "/n server restart in 5 min"))
	assert.Equal(t, []string{"gm:server restart in 5 min"}, pub.notices)

	// empty text and queue errors are consumed without publishing
	require.True(t, h.Handle(is, "/n"))
	assert.Len(t, pub.notices, 1)

	pub.err = errors.New("queue full")
	require.True(t, h.Handle(is, "/n again"))
	assert.Len(t, pub.notices, 1)
}

func TestPath(t *testing.T) {
	h, room, is := setup(t, &fakePublisher{})

	require.True(t, h.Handle(is, "/p 10, 2, 30.5"))

	require.Len(t, room.paths, 1)
	assert.Equal(t, model.DefaultUserPosition, room.paths[0][0])
	assert.Equal(t, model.Vec3{X: 10, Y: 2, Z: 30.5}, room.paths[0][1])

	require.Len(t, room.sent, 1)
	b := room.sent[0]
	assert.Equal(t, uint32(201), b.passIdx)
	assert.False(t, b.exceptMe)

	h5, err := protocol.ParseHeader(b.data)
	require.NoError(t, err)
	assert.Equal(t, protocol.MovePathResponse, h5.ID)

	r := packet.NewReader(b.data[5:])
	uuid, err := r.ReadLong()
	require.NoError(t, err)
	assert.Equal(t, int64(201), uuid)
}

func TestPath_BadCoordinates(t *testing.T) {
	h, room, is := setup(t, &fakePublisher{})

	require.True(t, h.Handle(is, "/p 1,2"))
	require.True(t, h.Handle(is, "/p a,b,c"))
	assert.Empty(t, room.sent)
}

func TestParseVec3(t *testing.T) {
	v, err := commands.ParseVec3("-1.5,0,7")
	require.NoError(t, err)
	assert.Equal(t, model.Vec3{X: -1.5, Y: 0, Z: 7}, v)

	_, err = commands.ParseVec3("")
	assert.Error(t, err)
}
