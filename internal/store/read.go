package store

import (
	"context"
	"fmt"

	"github.com/roach88/chatstate/internal/event"
)

// GetAccountDataEvent returns the global account data event of eventType,
// or nil if none is stored.
func (s *Store) GetAccountDataEvent(
	ctx context.Context,
	eventType event.GlobalAccountDataEventType,
) (*event.Raw[event.AnyGlobalAccountDataEvent], error) {
	return load[event.Raw[event.AnyGlobalAccountDataEvent]](ctx, s,
		"get account data event", "account_data", s.cat.AccountDataLoad(),
		nil,
		eventType.String(),
	)
}

// GetRoomAccountDataEvent returns the account data event of eventType scoped
// to roomID, or nil if none is stored.
func (s *Store) GetRoomAccountDataEvent(
	ctx context.Context,
	roomID event.RoomID,
	eventType event.RoomAccountDataEventType,
) (*event.Raw[event.AnyRoomAccountDataEvent], error) {
	if roomID == "" {
		return nil, fmt.Errorf("get room account data event: %w", ErrEmptyRoomID)
	}
	return load[event.Raw[event.AnyRoomAccountDataEvent]](ctx, s,
		"get room account data event", "account_data", s.cat.AccountDataLoad(),
		roomID.String(),
		eventType.String(),
	)
}

// GetPresenceEvent returns the latest presence of userID.
func (s *Store) GetPresenceEvent(ctx context.Context, userID event.UserID) (*event.Raw[event.PresenceEvent], error) {
	return load[event.Raw[event.PresenceEvent]](ctx, s,
		"get presence event", "presence", s.cat.PresenceLoad(),
		userID.String(),
	)
}

// GetStateEvent returns the full state event of roomID under
// (eventType, stateKey). Stripped state is never returned; use
// GetStrippedStateEvent for invite previews.
func (s *Store) GetStateEvent(
	ctx context.Context,
	roomID event.RoomID,
	eventType event.StateEventType,
	stateKey string,
) (*event.Raw[event.AnySyncStateEvent], error) {
	return load[event.Raw[event.AnySyncStateEvent]](ctx, s,
		"get state event", "state_event", s.cat.StateLoad(),
		roomID.String(),
		eventType.String(),
		stateKey,
	)
}

// GetStrippedStateEvent returns the invite-preview state event of roomID
// under (eventType, stateKey).
func (s *Store) GetStrippedStateEvent(
	ctx context.Context,
	roomID event.RoomID,
	eventType event.StateEventType,
	stateKey string,
) (*event.Raw[event.AnyStrippedStateEvent], error) {
	return load[event.Raw[event.AnyStrippedStateEvent]](ctx, s,
		"get stripped state event", "state_event", s.cat.StrippedStateLoad(),
		roomID.String(),
		eventType.String(),
		stateKey,
	)
}

// GetRoomMembership returns the full membership event of userID in roomID.
func (s *Store) GetRoomMembership(ctx context.Context, roomID event.RoomID, userID event.UserID) (*event.MemberEvent, error) {
	return load[event.MemberEvent](ctx, s,
		"get room membership", "member_event", s.cat.MemberLoad(),
		roomID.String(),
		userID.String(),
		false,
	)
}

// GetStrippedRoomMembership returns the invite-preview membership event of
// userID in roomID.
func (s *Store) GetStrippedRoomMembership(
	ctx context.Context,
	roomID event.RoomID,
	userID event.UserID,
) (*event.StrippedMemberEvent, error) {
	return load[event.StrippedMemberEvent](ctx, s,
		"get stripped room membership", "member_event", s.cat.MemberLoad(),
		roomID.String(),
		userID.String(),
		true,
	)
}

// GetRoomProfile returns the profile of userID within roomID.
func (s *Store) GetRoomProfile(ctx context.Context, roomID event.RoomID, userID event.UserID) (*event.MinimalMemberEvent, error) {
	return load[event.MinimalMemberEvent](ctx, s,
		"get room profile", "profile", s.cat.MemberProfileLoad(),
		roomID.String(),
		userID.String(),
	)
}

// GetRoomInfo returns the summary of a joined or left room.
func (s *Store) GetRoomInfo(ctx context.Context, roomID event.RoomID) (*event.RoomInfo, error) {
	return load[event.RoomInfo](ctx, s,
		"get room info", "room_info", s.cat.RoomLoad(),
		roomID.String(),
		false,
	)
}

// GetStrippedRoomInfo returns the summary of an invited room.
func (s *Store) GetStrippedRoomInfo(ctx context.Context, roomID event.RoomID) (*event.RoomInfo, error) {
	return load[event.RoomInfo](ctx, s,
		"get stripped room info", "room_info", s.cat.RoomLoad(),
		roomID.String(),
		true,
	)
}

// GetReceipt returns the receipt of userID for eventID in roomID.
func (s *Store) GetReceipt(
	ctx context.Context,
	roomID event.RoomID,
	eventID event.EventID,
	receiptType event.ReceiptType,
	userID event.UserID,
) (*event.Receipt, error) {
	return load[event.Receipt](ctx, s,
		"get receipt", "receipt", s.cat.ReceiptLoad(),
		roomID.String(),
		eventID.String(),
		receiptType.String(),
		userID.String(),
	)
}
