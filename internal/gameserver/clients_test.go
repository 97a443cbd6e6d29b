package gameserver

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/roomserver/internal/protocol"
)

func TestClientManager_AttachRelease(t *testing.T) {
	cm := NewClientManager(2, 64)

	a, err := cm.Attach(&fakeTransport{}, "a", 4, time.Second)
	require.NoError(t, err)
	b, err := cm.Attach(&fakeTransport{}, "b", 4, time.Second)
	require.NoError(t, err)
	assert.Equal(t, uint32(0), a.Index(), "lowest slot first")
	assert.Equal(t, uint32(1), b.Index())
	assert.Equal(t, 2, cm.Count())

	_, err = cm.Attach(&fakeTransport{}, "c", 4, time.Second)
	require.ErrorIs(t, err, ErrNoFreeSlot)

	cm.Release(0)
	assert.Equal(t, 1, cm.Count())
	_, ok := cm.Client(0)
	assert.False(t, ok)

	c, err := cm.Attach(&fakeTransport{}, "c", 4, time.Second)
	require.NoError(t, err)
	assert.Equal(t, uint32(0), c.Index())
}

func TestClientManager_SkipsLoginFailureIndices(t *testing.T) {
	cm := NewClientManager(40, 64)
	assert.Equal(t, 40, cm.Cap())

	seen := make(map[uint32]bool)
	for range 40 {
		c, err := cm.Attach(&fakeTransport{}, "x", 4, time.Second)
		require.NoError(t, err)
		assert.False(t, protocol.ResultCode(c.Index()).IsLoginFailure(), "index %d", c.Index())
		seen[c.Index()] = true
	}
	assert.Len(t, seen, 40)
	assert.True(t, seen[30])
	assert.True(t, seen[35])
	assert.True(t, seen[43])

	_, ok := cm.User(uint32(protocol.LoginUserInvalidPW))
	assert.False(t, ok)
	_, err := cm.Attach(&fakeTransport{}, "y", 4, time.Second)
	require.ErrorIs(t, err, ErrNoFreeSlot)
}

func TestClientManager_Send(t *testing.T) {
	cm := NewClientManager(1, 64)
	require.ErrorIs(t, cm.Send(0, []byte{1}), ErrUnknownClient)
	require.ErrorIs(t, cm.Send(5, []byte{1}), ErrUnknownClient)

	c, err := cm.Attach(&fakeTransport{}, "a", 1, time.Second)
	require.NoError(t, err)

	require.NoError(t, cm.Send(0, []byte{1}))
	// outbox of one: the next frame disconnects the slow client
	require.ErrorIs(t, cm.Send(0, []byte{2}), ErrSendQueueFull)
	require.ErrorIs(t, c.Send([]byte{3}), ErrClientClosed)
}

func TestClientManager_FindUserByID(t *testing.T) {
	cm := NewClientManager(3, 64)
	u, _ := cm.User(1)
	require.True(t, u.SetLogin("alice"))

	found, ok := cm.FindUserByID("alice")
	require.True(t, ok)
	assert.Same(t, u, found)
	assert.Equal(t, 1, cm.LoggedInCount())

	_, ok = cm.FindUserByID("bob")
	assert.False(t, ok)

	cm.Release(1)
	_, ok = cm.FindUserByID("alice")
	assert.False(t, ok)
}

func TestClient_WritePumpBatches(t *testing.T) {
	tr := &fakeTransport{}
	c := newClient(0, "a", tr, 8, time.Second)

	for i := range 3 {
		require.NoError(t, c.Send([]byte{byte(i)}))
	}
	go c.writePump()

	require.Eventually(t, func() bool {
		tr.mu.Lock()
		defer tr.mu.Unlock()
		return len(tr.frames) == 3
	}, time.Second, time.Millisecond)

	c.Close()
	<-c.Done()
	assert.True(t, tr.isClosed())
}
