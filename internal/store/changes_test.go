package store_test

import (
	"bytes"
	"context"
	"database/sql"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/chatstate/internal/event"
	"github.com/roach88/chatstate/internal/store"
)

func TestChanges_ZeroValue(t *testing.T) {
	var ch store.Changes
	assert.Zero(t, ch.Len())

	roomID := newRoomID()
	ch.AddState(roomID, event.StateRoomName, "", event.NewRaw[event.AnySyncStateEvent]([]byte(`{}`)))
	ch.AddState(roomID, event.StateRoomName, "", event.NewRaw[event.AnySyncStateEvent]([]byte(`{"a":1}`)))
	ch.AddState(roomID, event.StateRoomTopic, "", event.NewRaw[event.AnySyncStateEvent]([]byte(`{}`)))
	ch.AddMember(roomID, "@a:example.org", event.MemberEvent{})
	ch.AddReceipt(store.ReceiptChange{RoomID: roomID})
	ch.RemoveRoom(roomID)

	assert.Equal(t, 5, ch.Len())
}

func TestSaveChanges_AppliesBatch(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	db, s := setupStore(t, store.WithLogger(logger))
	ctx := context.Background()

	joined := newRoomID()
	invited := newRoomID()
	alice := event.UserID("@alice:example.org")
	bob := event.UserID("@bob:example.org")
	eventID := newEventID()

	ch := &store.Changes{}
	ch.AddAccountData(event.GlobalPushRules, event.NewRaw[event.AnyGlobalAccountDataEvent]([]byte(`{"type":"m.push_rules","content":{}}`)))
	ch.AddPresence(bob, event.NewRaw[event.PresenceEvent]([]byte(`{"type":"m.presence","sender":"@bob:example.org","content":{"presence":"unavailable"}}`)))
	ch.AddRoomInfo(joined, event.RoomInfo{RoomID: joined, RoomState: event.RoomJoined})
	ch.AddStrippedRoomInfo(invited, event.RoomInfo{RoomID: invited, RoomState: event.RoomInvited})
	ch.AddMember(joined, alice, memberEvent(alice, ptr("Alice")))
	ch.AddMember(joined, bob, memberEvent(bob, ptr("Bob")))
	ch.AddStrippedMember(invited, bob, event.StrippedMemberEvent{
		Type:     event.StateRoomMember,
		Sender:   bob,
		StateKey: alice,
		Content:  event.MemberContent{Membership: event.MembershipInvite},
	})
	ch.AddProfile(joined, alice, event.MinimalMemberEvent{Sender: alice, Content: event.MinimalMemberContent{Displayname: ptr("Alice")}})
	ch.AddState(joined, event.StateRoomName, "", stateEvent(t, event.StateRoomName, "", `{"name":"Garden"}`))
	ch.AddStrippedState(invited, event.StateRoomName, "", event.NewRaw[event.AnyStrippedStateEvent]([]byte(`{"type":"m.room.name","content":{"name":"Invite"}}`)))
	ch.AddRoomAccountData(joined, event.RoomFullyRead, event.NewRaw[event.AnyRoomAccountDataEvent]([]byte(`{"type":"m.fully_read","content":{}}`)))
	ch.AddReceipt(store.ReceiptChange{RoomID: joined, EventID: eventID, Type: event.ReceiptRead, UserID: alice, Receipt: event.Receipt{TS: ptr(int64(7))}})

	write(t, db, func(tx *sql.Tx) error {
		return s.SaveChanges(ctx, tx, ch)
	})

	assert.Equal(t, 1, count(t, db, "SELECT COUNT(*) FROM account_data WHERE room_id = ''"))
	assert.Equal(t, 1, count(t, db, "SELECT COUNT(*) FROM presence"))
	assert.Equal(t, 2, count(t, db, "SELECT COUNT(*) FROM rooms"))
	assert.Equal(t, 3, count(t, db, "SELECT COUNT(*) FROM room_members"))
	assert.Equal(t, 1, count(t, db, "SELECT COUNT(*) FROM room_member_profiles"))
	assert.Equal(t, 2, count(t, db, "SELECT COUNT(*) FROM room_state"))
	assert.Equal(t, 1, count(t, db, "SELECT COUNT(*) FROM account_data WHERE room_id = ?", joined.String()))
	assert.Equal(t, 1, count(t, db, "SELECT COUNT(*) FROM receipts"))

	stripped, err := s.GetStrippedStateEvent(ctx, invited, event.StateRoomName, "")
	require.NoError(t, err)
	require.NotNil(t, stripped)

	receipt, err := s.GetReceipt(ctx, joined, eventID, event.ReceiptRead, alice)
	require.NoError(t, err)
	require.NotNil(t, receipt)
	assert.Equal(t, int64(7), *receipt.TS)

	assert.Contains(t, logs.String(), "changes saved")
	assert.Contains(t, logs.String(), "rows=12")
}

func TestSaveChanges_RemovalsRunLast(t *testing.T) {
	db, s := setupStore(t)
	ctx := context.Background()
	roomID := newRoomID()
	alice := event.UserID("@alice:example.org")

	ch := &store.Changes{}
	ch.RemoveRoom(roomID)
	ch.AddRoomInfo(roomID, event.RoomInfo{RoomID: roomID, RoomState: event.RoomLeft})
	ch.AddMember(roomID, alice, memberEvent(alice, nil))

	write(t, db, func(tx *sql.Tx) error {
		return s.SaveChanges(ctx, tx, ch)
	})

	info, err := s.GetRoomInfo(ctx, roomID)
	require.NoError(t, err)
	assert.Nil(t, info)
	assert.Zero(t, count(t, db, "SELECT COUNT(*) FROM room_members"))
}

func TestSaveChanges_Nil(t *testing.T) {
	db, s := setupStore(t)
	write(t, db, func(tx *sql.Tx) error {
		return s.SaveChanges(context.Background(), tx, nil)
	})
}

func TestSaveChanges_StopsAtFirstError(t *testing.T) {
	db, s := setupStore(t)
	ctx := context.Background()

	ch := &store.Changes{}
	ch.AddPresence("@alice:example.org", event.NewRaw[event.PresenceEvent]([]byte(`{}`)))

	_, err := db.SQL.Exec("DROP TABLE presence")
	require.NoError(t, err)

	err = store.InTx(ctx, db.SQL, func(tx *sql.Tx) error {
		return s.SaveChanges(ctx, tx, ch)
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "save changes: set presence event")
}

func TestSaveChanges_RoomInfoKeyedByRoomID(t *testing.T) {
	db, s := setupStore(t)
	ctx := context.Background()
	roomID := newRoomID()
	invited := newRoomID()

	ch := &store.Changes{}
	ch.AddRoomInfo(roomID, event.RoomInfo{RoomState: event.RoomJoined})
	ch.AddStrippedRoomInfo(invited, event.RoomInfo{RoomID: newRoomID(), RoomState: event.RoomInvited})

	write(t, db, func(tx *sql.Tx) error {
		return s.SaveChanges(ctx, tx, ch)
	})

	info, err := s.GetRoomInfo(ctx, roomID)
	require.NoError(t, err)
	require.NotNil(t, info)
	assert.Equal(t, event.RoomJoined, info.RoomState)

	stripped, err := s.GetStrippedRoomInfo(ctx, invited)
	require.NoError(t, err)
	require.NotNil(t, stripped)
	assert.Equal(t, event.RoomInvited, stripped.RoomState)

	assert.Zero(t, count(t, db, "SELECT COUNT(*) FROM rooms WHERE room_id = ''"))
	assert.Equal(t, 2, count(t, db, "SELECT COUNT(*) FROM rooms"))
}

func TestSaveChanges_RejectsEmptyRoomRemoval(t *testing.T) {
	db, s := setupStore(t)
	ctx := context.Background()

	write(t, db, func(tx *sql.Tx) error {
		return s.SetGlobalAccountData(ctx, tx, event.GlobalDirect, event.NewRaw[event.AnyGlobalAccountDataEvent]([]byte(`{"type":"m.direct","content":{}}`)))
	})

	ch := &store.Changes{}
	ch.RemoveRoom("")
	err := store.InTx(ctx, db.SQL, func(tx *sql.Tx) error {
		return s.SaveChanges(ctx, tx, ch)
	})
	require.ErrorIs(t, err, store.ErrEmptyRoomID)
	assert.Equal(t, 1, count(t, db, "SELECT COUNT(*) FROM account_data WHERE room_id = ''"))
}
