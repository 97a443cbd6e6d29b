package db

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/roomserver/internal/login"
)

func TestAccountStore(t *testing.T) {
	d := setupTestDB(t)
	ctx := context.Background()

	t.Run("auto create then verify", func(t *testing.T) {
		s := NewAccountStore(d, true)

		require.NoError(t, s.Authenticate(ctx, "alice", "pw"))
		require.NoError(t, s.Authenticate(ctx, "alice", "pw"))

		err := s.Authenticate(ctx, "alice", "bad")
		assert.True(t, errors.Is(err, login.ErrInvalidPassword))
	})

	t.Run("unknown account without auto create", func(t *testing.T) {
		s := NewAccountStore(d, false)

		err := s.Authenticate(ctx, "nobody", "pw")
		assert.True(t, errors.Is(err, login.ErrAccountNotFound))
	})

	t.Run("concurrent create keeps first password", func(t *testing.T) {
		s := NewAccountStore(d, true)

		require.NoError(t, s.create(ctx, "carol", "first"))
		err := s.create(ctx, "carol", "second")
		assert.True(t, errors.Is(err, login.ErrInvalidPassword))
		assert.NoError(t, s.Authenticate(ctx, "carol", "first"))
	})
}

func TestNoticeStore(t *testing.T) {
	d := setupTestDB(t)
	ctx := context.Background()
	s := NewNoticeStore(d)

	require.NoError(t, s.Record(ctx, "gm", "server restart in 5 min"))
	require.NoError(t, s.Record(ctx, "gm", "event started"))

	notices, err := s.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, notices, 2)
	assert.Equal(t, "event started", notices[0].Message)
	assert.Equal(t, "gm", notices[1].UserID)
}
