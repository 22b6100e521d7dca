package store_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/chatstate/internal/event"
	"github.com/roach88/chatstate/internal/store"
)

func TestInTx_RollbackLeavesNothing(t *testing.T) {
	db, s := setupStore(t)
	ctx := context.Background()
	roomID := newRoomID()
	alice := event.UserID("@alice:example.org")
	errAbort := errors.New("abort")

	err := store.InTx(ctx, db.SQL, func(tx *sql.Tx) error {
		require.NoError(t, s.SetRoomInfo(ctx, tx, roomID, event.RoomInfo{RoomID: roomID, RoomState: event.RoomJoined}))
		require.NoError(t, s.SetRoomMembership(ctx, tx, roomID, alice, memberEvent(alice, ptr("Alice"))))
		require.NoError(t, s.SetGlobalAccountData(ctx, tx, event.GlobalDirect, event.NewRaw[event.AnyGlobalAccountDataEvent]([]byte(`{}`))))
		return errAbort
	})
	require.ErrorIs(t, err, errAbort)

	info, err := s.GetRoomInfo(ctx, roomID)
	require.NoError(t, err)
	assert.Nil(t, info)

	member, err := s.GetRoomMembership(ctx, roomID, alice)
	require.NoError(t, err)
	assert.Nil(t, member)

	data, err := s.GetAccountDataEvent(ctx, event.GlobalDirect)
	require.NoError(t, err)
	assert.Nil(t, data)
}

func TestInTx_RollbackOnPanic(t *testing.T) {
	db, s := setupStore(t)
	ctx := context.Background()
	roomID := newRoomID()

	assert.Panics(t, func() {
		_ = store.InTx(ctx, db.SQL, func(tx *sql.Tx) error {
			require.NoError(t, s.SetRoomInfo(ctx, tx, roomID, event.RoomInfo{RoomID: roomID}))
			panic("boom")
		})
	})

	info, err := s.GetRoomInfo(ctx, roomID)
	require.NoError(t, err)
	assert.Nil(t, info)
}

func TestInTx_Commit(t *testing.T) {
	db, s := setupStore(t)
	ctx := context.Background()
	roomID := newRoomID()

	err := store.InTx(ctx, db.SQL, func(tx *sql.Tx) error {
		return s.SetRoomInfo(ctx, tx, roomID, event.RoomInfo{RoomID: roomID, RoomState: event.RoomLeft})
	})
	require.NoError(t, err)

	info, err := s.GetRoomInfo(ctx, roomID)
	require.NoError(t, err)
	require.NotNil(t, info)
	assert.Equal(t, event.RoomLeft, info.RoomState)
}

func TestInTx_CanceledContext(t *testing.T) {
	db, _ := setupStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := store.InTx(ctx, db.SQL, func(tx *sql.Tx) error {
		called = true
		return nil
	})
	require.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}
