package store

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"maps"
	"slices"

	"github.com/roach88/chatstate/internal/event"
)

// ReceiptChange is one receipt to store.
type ReceiptChange struct {
	RoomID  event.RoomID
	EventID event.EventID
	Type    event.ReceiptType
	UserID  event.UserID
	Receipt event.Receipt
}

// Changes collects the writes produced by one sync response so they can be
// applied together on one transaction. Deciding what goes into a batch is
// the caller's job; Changes only records it.
//
// The zero value is ready to use.
type Changes struct {
	AccountData       map[event.GlobalAccountDataEventType]event.Raw[event.AnyGlobalAccountDataEvent]
	Presence          map[event.UserID]event.Raw[event.PresenceEvent]
	RoomInfos         map[event.RoomID]event.RoomInfo
	StrippedRoomInfos map[event.RoomID]event.RoomInfo
	Members           map[event.RoomID]map[event.UserID]event.MemberEvent
	StrippedMembers   map[event.RoomID]map[event.UserID]event.StrippedMemberEvent
	Profiles          map[event.RoomID]map[event.UserID]event.MinimalMemberEvent
	State             map[event.RoomID]map[event.StateEventType]map[string]event.Raw[event.AnySyncStateEvent]
	StrippedState     map[event.RoomID]map[event.StateEventType]map[string]event.Raw[event.AnyStrippedStateEvent]
	RoomAccountData   map[event.RoomID]map[event.RoomAccountDataEventType]event.Raw[event.AnyRoomAccountDataEvent]
	Receipts          []ReceiptChange
	RemovedRooms      []event.RoomID
}

// AddAccountData records a global account data event.
func (c *Changes) AddAccountData(t event.GlobalAccountDataEventType, data event.Raw[event.AnyGlobalAccountDataEvent]) {
	if c.AccountData == nil {
		c.AccountData = make(map[event.GlobalAccountDataEventType]event.Raw[event.AnyGlobalAccountDataEvent])
	}
	c.AccountData[t] = data
}

// AddPresence records a presence event.
func (c *Changes) AddPresence(userID event.UserID, presence event.Raw[event.PresenceEvent]) {
	if c.Presence == nil {
		c.Presence = make(map[event.UserID]event.Raw[event.PresenceEvent])
	}
	c.Presence[userID] = presence
}

// AddRoomInfo records the summary of a joined or left room under roomID.
func (c *Changes) AddRoomInfo(roomID event.RoomID, info event.RoomInfo) {
	if c.RoomInfos == nil {
		c.RoomInfos = make(map[event.RoomID]event.RoomInfo)
	}
	c.RoomInfos[roomID] = info
}

// AddStrippedRoomInfo records the summary of an invited room under roomID.
func (c *Changes) AddStrippedRoomInfo(roomID event.RoomID, info event.RoomInfo) {
	if c.StrippedRoomInfos == nil {
		c.StrippedRoomInfos = make(map[event.RoomID]event.RoomInfo)
	}
	c.StrippedRoomInfos[roomID] = info
}

// AddMember records a full membership event.
func (c *Changes) AddMember(roomID event.RoomID, userID event.UserID, member event.MemberEvent) {
	if c.Members == nil {
		c.Members = make(map[event.RoomID]map[event.UserID]event.MemberEvent)
	}
	if c.Members[roomID] == nil {
		c.Members[roomID] = make(map[event.UserID]event.MemberEvent)
	}
	c.Members[roomID][userID] = member
}

// AddStrippedMember records an invite-preview membership event.
func (c *Changes) AddStrippedMember(roomID event.RoomID, userID event.UserID, member event.StrippedMemberEvent) {
	if c.StrippedMembers == nil {
		c.StrippedMembers = make(map[event.RoomID]map[event.UserID]event.StrippedMemberEvent)
	}
	if c.StrippedMembers[roomID] == nil {
		c.StrippedMembers[roomID] = make(map[event.UserID]event.StrippedMemberEvent)
	}
	c.StrippedMembers[roomID][userID] = member
}

// AddProfile records a member profile.
func (c *Changes) AddProfile(roomID event.RoomID, userID event.UserID, profile event.MinimalMemberEvent) {
	if c.Profiles == nil {
		c.Profiles = make(map[event.RoomID]map[event.UserID]event.MinimalMemberEvent)
	}
	if c.Profiles[roomID] == nil {
		c.Profiles[roomID] = make(map[event.UserID]event.MinimalMemberEvent)
	}
	c.Profiles[roomID][userID] = profile
}

// AddState records a full state event.
func (c *Changes) AddState(roomID event.RoomID, t event.StateEventType, stateKey string, state event.Raw[event.AnySyncStateEvent]) {
	if c.State == nil {
		c.State = make(map[event.RoomID]map[event.StateEventType]map[string]event.Raw[event.AnySyncStateEvent])
	}
	if c.State[roomID] == nil {
		c.State[roomID] = make(map[event.StateEventType]map[string]event.Raw[event.AnySyncStateEvent])
	}
	if c.State[roomID][t] == nil {
		c.State[roomID][t] = make(map[string]event.Raw[event.AnySyncStateEvent])
	}
	c.State[roomID][t][stateKey] = state
}

// AddStrippedState records an invite-preview state event.
func (c *Changes) AddStrippedState(roomID event.RoomID, t event.StateEventType, stateKey string, state event.Raw[event.AnyStrippedStateEvent]) {
	if c.StrippedState == nil {
		c.StrippedState = make(map[event.RoomID]map[event.StateEventType]map[string]event.Raw[event.AnyStrippedStateEvent])
	}
	if c.StrippedState[roomID] == nil {
		c.StrippedState[roomID] = make(map[event.StateEventType]map[string]event.Raw[event.AnyStrippedStateEvent])
	}
	if c.StrippedState[roomID][t] == nil {
		c.StrippedState[roomID][t] = make(map[string]event.Raw[event.AnyStrippedStateEvent])
	}
	c.StrippedState[roomID][t][stateKey] = state
}

// AddRoomAccountData records a room-scoped account data event.
func (c *Changes) AddRoomAccountData(roomID event.RoomID, t event.RoomAccountDataEventType, data event.Raw[event.AnyRoomAccountDataEvent]) {
	if c.RoomAccountData == nil {
		c.RoomAccountData = make(map[event.RoomID]map[event.RoomAccountDataEventType]event.Raw[event.AnyRoomAccountDataEvent])
	}
	if c.RoomAccountData[roomID] == nil {
		c.RoomAccountData[roomID] = make(map[event.RoomAccountDataEventType]event.Raw[event.AnyRoomAccountDataEvent])
	}
	c.RoomAccountData[roomID][t] = data
}

// AddReceipt records a receipt.
func (c *Changes) AddReceipt(r ReceiptChange) {
	c.Receipts = append(c.Receipts, r)
}

// RemoveRoom records a room to delete. Removals are applied after every
// other write of the batch, so a room both updated and removed ends up gone.
func (c *Changes) RemoveRoom(roomID event.RoomID) {
	c.RemovedRooms = append(c.RemovedRooms, roomID)
}

// Len returns the number of rows the batch writes or removes.
func (c *Changes) Len() int {
	n := len(c.AccountData) + len(c.Presence) + len(c.RoomInfos) + len(c.StrippedRoomInfos) +
		len(c.Receipts) + len(c.RemovedRooms)
	for _, m := range c.Members {
		n += len(m)
	}
	for _, m := range c.StrippedMembers {
		n += len(m)
	}
	for _, m := range c.Profiles {
		n += len(m)
	}
	for _, byType := range c.State {
		for _, m := range byType {
			n += len(m)
		}
	}
	for _, byType := range c.StrippedState {
		for _, m := range byType {
			n += len(m)
		}
	}
	for _, m := range c.RoomAccountData {
		n += len(m)
	}
	return n
}

// sortedKeys returns the keys of m in ascending order so batches apply
// deterministically.
func sortedKeys[K cmp.Ordered, V any](m map[K]V) []K {
	return slices.Sorted(maps.Keys(m))
}

// SaveChanges applies every write of ch on tx: account data, presence, room
// summaries, memberships, profiles, state, room account data and receipts,
// then room removals. It stops at the first error and leaves commit or
// rollback of tx to the caller.
func (s *Store) SaveChanges(ctx context.Context, tx Execer, ch *Changes) error {
	if ch == nil {
		return nil
	}

	for _, t := range sortedKeys(ch.AccountData) {
		if err := s.SetGlobalAccountData(ctx, tx, t, ch.AccountData[t]); err != nil {
			return fmt.Errorf("save changes: %w", err)
		}
	}

	for _, userID := range sortedKeys(ch.Presence) {
		if err := s.SetPresenceEvent(ctx, tx, userID, ch.Presence[userID]); err != nil {
			return fmt.Errorf("save changes: %w", err)
		}
	}

	for _, roomID := range sortedKeys(ch.RoomInfos) {
		if err := s.SetRoomInfo(ctx, tx, roomID, ch.RoomInfos[roomID]); err != nil {
			return fmt.Errorf("save changes: %w", err)
		}
	}

	for _, roomID := range sortedKeys(ch.StrippedRoomInfos) {
		if err := s.SetStrippedRoomInfo(ctx, tx, roomID, ch.StrippedRoomInfos[roomID]); err != nil {
			return fmt.Errorf("save changes: %w", err)
		}
	}

	for _, roomID := range sortedKeys(ch.Members) {
		for _, userID := range sortedKeys(ch.Members[roomID]) {
			if err := s.SetRoomMembership(ctx, tx, roomID, userID, ch.Members[roomID][userID]); err != nil {
				return fmt.Errorf("save changes: %w", err)
			}
		}
	}

	for _, roomID := range sortedKeys(ch.StrippedMembers) {
		for _, userID := range sortedKeys(ch.StrippedMembers[roomID]) {
			if err := s.SetStrippedRoomMembership(ctx, tx, roomID, userID, ch.StrippedMembers[roomID][userID]); err != nil {
				return fmt.Errorf("save changes: %w", err)
			}
		}
	}

	for _, roomID := range sortedKeys(ch.Profiles) {
		for _, userID := range sortedKeys(ch.Profiles[roomID]) {
			if err := s.SetRoomProfile(ctx, tx, roomID, userID, ch.Profiles[roomID][userID]); err != nil {
				return fmt.Errorf("save changes: %w", err)
			}
		}
	}

	for _, roomID := range sortedKeys(ch.State) {
		for _, t := range sortedKeys(ch.State[roomID]) {
			for _, key := range sortedKeys(ch.State[roomID][t]) {
				if err := s.SetRoomState(ctx, tx, roomID, t, key, ch.State[roomID][t][key]); err != nil {
					return fmt.Errorf("save changes: %w", err)
				}
			}
		}
	}

	for _, roomID := range sortedKeys(ch.StrippedState) {
		for _, t := range sortedKeys(ch.StrippedState[roomID]) {
			for _, key := range sortedKeys(ch.StrippedState[roomID][t]) {
				if err := s.SetStrippedRoomState(ctx, tx, roomID, t, key, ch.StrippedState[roomID][t][key]); err != nil {
					return fmt.Errorf("save changes: %w", err)
				}
			}
		}
	}

	for _, roomID := range sortedKeys(ch.RoomAccountData) {
		for _, t := range sortedKeys(ch.RoomAccountData[roomID]) {
			if err := s.SetRoomAccountData(ctx, tx, roomID, t, ch.RoomAccountData[roomID][t]); err != nil {
				return fmt.Errorf("save changes: %w", err)
			}
		}
	}

	for _, r := range ch.Receipts {
		if err := s.SetReceipt(ctx, tx, r.RoomID, r.EventID, r.Type, r.UserID, r.Receipt); err != nil {
			return fmt.Errorf("save changes: %w", err)
		}
	}

	for _, roomID := range ch.RemovedRooms {
		if err := s.RemoveRoom(ctx, tx, roomID); err != nil {
			return fmt.Errorf("save changes: %w", err)
		}
	}

	s.logger.Debug("changes saved", slog.Int("rows", ch.Len()))
	return nil
}
