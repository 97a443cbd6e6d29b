package gameserver

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/udisondev/roomserver/internal/ai"
	"github.com/udisondev/roomserver/internal/game/quest"
	"github.com/udisondev/roomserver/internal/gameserver/packet"
	"github.com/udisondev/roomserver/internal/model"
	"github.com/udisondev/roomserver/internal/protocol"
	"github.com/udisondev/roomserver/internal/room"
	"github.com/udisondev/roomserver/internal/spawn"
	"github.com/udisondev/roomserver/internal/task"
	"github.com/udisondev/roomserver/internal/testutil"
)

// fakeTransport records written frames.
type fakeTransport struct {
	mu     sync.Mutex
	frames [][]byte
	closed bool
}

func (t *fakeTransport) WriteFrames(frames [][]byte, _ time.Time) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.frames = append(t.frames, frames...)
	return nil
}

func (t *fakeTransport) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.closed = true
	return nil
}

func (t *fakeTransport) isClosed() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.closed
}

// fakeTasks is a synchronous persistence collaborator.
type fakeTasks struct {
	pushed    []task.Task
	responses fifo[task.Task]
	pushErr   error
}

func (q *fakeTasks) Push(t task.Task) error {
	if q.pushErr != nil {
		return q.pushErr
	}
	q.pushed = append(q.pushed, t)
	return nil
}

func (q *fakeTasks) TakeResponse() (task.Task, bool) {
	return q.responses.pop()
}

// completeLogin answers the last pushed login task with code.
func (q *fakeTasks) completeLogin(t *testing.T, code protocol.ResultCode) {
	t.Helper()
	require.NotEmpty(t, q.pushed)
	req := q.pushed[len(q.pushed)-1]
	require.Equal(t, protocol.TaskRequestLogin, req.Kind)
	q.pushed = q.pushed[:len(q.pushed)-1]

	login, err := task.DecodeLoginRequest(req.Payload)
	require.NoError(t, err)
	q.responses.push(task.Task{
		ID:      req.ID,
		Kind:    protocol.TaskResponseLogin,
		ConnIdx: req.ConnIdx,
		Payload: task.EncodeLoginResult(task.LoginResult{UserID: login.UserID, Result: code}),
	})
}

type harness struct {
	t       *testing.T
	clients *ClientManager
	rooms   *room.Manager
	tasks   *fakeTasks
	proc    *Processor
}

func testRoomConfig() room.Config {
	return room.Config{
		Capacity:      2,
		NpcsPerRoom:   1,
		NotifyEntrant: true,
		TickInterval:  time.Hour,
		SyncInterval:  100 * time.Millisecond,
		Spawns: []spawn.Point{{
			ID:           1,
			EnemyType:    model.EnemySlime,
			Position:     model.Vec3{X: 20, Z: 60},
			RespawnDelay: time.Second,
		}},
		PatrolBounds: ai.DefaultPatrolBounds,
		RandomSeed:   1,
	}
}

func newHarness(t *testing.T, maxClients, maxUsers int) *harness {
	t.Helper()

	reg, err := quest.NewRegistry(quest.DefaultDefinitions()...)
	require.NoError(t, err)

	clients := NewClientManager(maxClients, 1024)
	rooms := room.NewManager(0, 2, testRoomConfig(), clients, nil, reg)
	require.NoError(t, rooms.Start(t.Context()))
	t.Cleanup(rooms.Stop)

	tasks := &fakeTasks{}
	return &harness{
		t:       t,
		clients: clients,
		rooms:   rooms,
		tasks:   tasks,
		proc:    NewProcessor(clients, rooms, tasks, maxUsers),
	}
}

// connect attaches a fake connection the way runSession does.
func (h *harness) connect() (*Client, *fakeTransport) {
	h.t.Helper()
	tr := &fakeTransport{}
	c, err := h.clients.Attach(tr, "test", 64, time.Second)
	require.NoError(h.t, err)
	h.proc.PushSystem(c.Index(), protocol.SysUserConnect)
	h.drain()
	return c, tr
}

// feed appends frames to the connection buffer as one chunk and processes them.
func (h *harness) feed(c *Client, frames ...[]byte) {
	h.t.Helper()
	u, ok := h.clients.User(c.Index())
	require.True(h.t, ok)

	var chunk []byte
	for _, f := range frames {
		chunk = append(chunk, f...)
	}
	require.NoError(h.t, u.AppendData(chunk))
	h.proc.Enqueue(c.Index())
	h.drain()
}

func (h *harness) drain() {
	for h.proc.ProcessOnce() {
	}
}

func (h *harness) login(c *Client, userID string) {
	h.t.Helper()
	h.feed(c, testutil.LoginFrame(userID, "pw"))
	h.tasks.completeLogin(h.t, protocol.ResultNone)
	h.drain()
	sent(c)
}

// sent returns the frames queued for c so far.
func sent(c *Client) []protocol.Frame {
	var out []protocol.Frame
	for {
		select {
		case data := <-c.sendCh:
			hdr, err := protocol.ParseHeader(data)
			if err != nil {
				continue
			}
			out = append(out, protocol.Frame{ID: hdr.ID, Data: data})
		default:
			return out
		}
	}
}

func only(frames []protocol.Frame, id protocol.MessageID) []protocol.Frame {
	var out []protocol.Frame
	for _, f := range frames {
		if f.ID == id {
			out = append(out, f)
		}
	}
	return out
}

// result reads the leading u16/i16 result field of a response frame.
func result(t *testing.T, f protocol.Frame) uint16 {
	t.Helper()
	v, err := packet.NewReader(f.Body()).ReadUShort()
	require.NoError(t, err)
	return v
}
