package store

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/roach88/chatstate/internal/codec"
	"github.com/roach88/chatstate/internal/event"
)

// SetGlobalAccountData stores account data that is not tied to a room,
// replacing any previous event of the same type.
func (s *Store) SetGlobalAccountData(
	ctx context.Context,
	tx Execer,
	eventType event.GlobalAccountDataEventType,
	data event.Raw[event.AnyGlobalAccountDataEvent],
) error {
	payload, err := s.encode(data)
	if err != nil {
		return fmt.Errorf("set global account data: %w", err)
	}
	return s.exec(ctx, tx, "set global account data", s.cat.AccountDataUpsert(),
		nil,
		eventType.String(),
		payload,
	)
}

// SetRoomAccountData stores account data scoped to roomID. It never touches
// global account data of the same type.
func (s *Store) SetRoomAccountData(
	ctx context.Context,
	tx Execer,
	roomID event.RoomID,
	eventType event.RoomAccountDataEventType,
	data event.Raw[event.AnyRoomAccountDataEvent],
) error {
	if roomID == "" {
		return fmt.Errorf("set room account data: %w", ErrEmptyRoomID)
	}
	payload, err := s.encode(data)
	if err != nil {
		return fmt.Errorf("set room account data: %w", err)
	}
	return s.exec(ctx, tx, "set room account data", s.cat.AccountDataUpsert(),
		roomID.String(),
		eventType.String(),
		payload,
	)
}

// SetPresenceEvent stores the latest presence of userID.
func (s *Store) SetPresenceEvent(
	ctx context.Context,
	tx Execer,
	userID event.UserID,
	presence event.Raw[event.PresenceEvent],
) error {
	payload, err := s.encode(presence)
	if err != nil {
		return fmt.Errorf("set presence event: %w", err)
	}
	return s.exec(ctx, tx, "set presence event", s.cat.PresenceUpsert(),
		userID.String(),
		payload,
	)
}

// SetRoomMembership stores the full membership event of userID in roomID.
// The displayname column is derived from the event; redacted events clear it.
func (s *Store) SetRoomMembership(
	ctx context.Context,
	tx Execer,
	roomID event.RoomID,
	userID event.UserID,
	member event.MemberEvent,
) error {
	payload, err := s.encode(member)
	if err != nil {
		return fmt.Errorf("set room membership: %w", err)
	}
	return s.exec(ctx, tx, "set room membership", s.cat.MemberUpsert(),
		roomID.String(),
		userID.String(),
		false,
		payload,
		nullString(codec.NormalizeDisplayname(member.Displayname())),
	)
}

// SetStrippedRoomMembership stores the invite-preview membership event of
// userID in roomID. It does not affect the full membership slot.
func (s *Store) SetStrippedRoomMembership(
	ctx context.Context,
	tx Execer,
	roomID event.RoomID,
	userID event.UserID,
	member event.StrippedMemberEvent,
) error {
	payload, err := s.encode(member)
	if err != nil {
		return fmt.Errorf("set stripped room membership: %w", err)
	}
	return s.exec(ctx, tx, "set stripped room membership", s.cat.MemberUpsert(),
		roomID.String(),
		userID.String(),
		true,
		payload,
		nullString(codec.NormalizeDisplayname(member.Displayname())),
	)
}

// SetRoomProfile stores the profile of userID within roomID.
func (s *Store) SetRoomProfile(
	ctx context.Context,
	tx Execer,
	roomID event.RoomID,
	userID event.UserID,
	profile event.MinimalMemberEvent,
) error {
	payload, err := s.encode(profile)
	if err != nil {
		return fmt.Errorf("set room profile: %w", err)
	}
	return s.exec(ctx, tx, "set room profile", s.cat.MemberProfileUpsert(),
		roomID.String(),
		userID.String(),
		payload,
	)
}

// SetRoomState stores a full state event of roomID under
// (eventType, stateKey).
func (s *Store) SetRoomState(
	ctx context.Context,
	tx Execer,
	roomID event.RoomID,
	eventType event.StateEventType,
	stateKey string,
	state event.Raw[event.AnySyncStateEvent],
) error {
	payload, err := s.encode(state)
	if err != nil {
		return fmt.Errorf("set room state: %w", err)
	}
	return s.exec(ctx, tx, "set room state", s.cat.StateUpsert(),
		roomID.String(),
		eventType.String(),
		stateKey,
		false,
		payload,
	)
}

// SetStrippedRoomState stores an invite-preview state event of roomID under
// (eventType, stateKey). It does not affect the full state slot.
func (s *Store) SetStrippedRoomState(
	ctx context.Context,
	tx Execer,
	roomID event.RoomID,
	eventType event.StateEventType,
	stateKey string,
	state event.Raw[event.AnyStrippedStateEvent],
) error {
	payload, err := s.encode(state)
	if err != nil {
		return fmt.Errorf("set stripped room state: %w", err)
	}
	return s.exec(ctx, tx, "set stripped room state", s.cat.StateUpsert(),
		roomID.String(),
		eventType.String(),
		stateKey,
		true,
		payload,
	)
}

// SetRoomInfo stores the summary of a joined (or left) room.
func (s *Store) SetRoomInfo(ctx context.Context, tx Execer, roomID event.RoomID, info event.RoomInfo) error {
	payload, err := s.encode(info)
	if err != nil {
		return fmt.Errorf("set room info: %w", err)
	}
	return s.exec(ctx, tx, "set room info", s.cat.RoomUpsert(),
		roomID.String(),
		false,
		payload,
	)
}

// SetStrippedRoomInfo stores the summary of an invited room.
func (s *Store) SetStrippedRoomInfo(ctx context.Context, tx Execer, roomID event.RoomID, info event.RoomInfo) error {
	payload, err := s.encode(info)
	if err != nil {
		return fmt.Errorf("set stripped room info: %w", err)
	}
	return s.exec(ctx, tx, "set stripped room info", s.cat.RoomUpsert(),
		roomID.String(),
		true,
		payload,
	)
}

// SetReceipt stores the receipt of userID for eventID in roomID.
func (s *Store) SetReceipt(
	ctx context.Context,
	tx Execer,
	roomID event.RoomID,
	eventID event.EventID,
	receiptType event.ReceiptType,
	userID event.UserID,
	receipt event.Receipt,
) error {
	payload, err := s.encode(receipt)
	if err != nil {
		return fmt.Errorf("set receipt: %w", err)
	}
	return s.exec(ctx, tx, "set receipt", s.cat.ReceiptUpsert(),
		roomID.String(),
		eventID.String(),
		receiptType.String(),
		userID.String(),
		payload,
	)
}

// RemoveRoom deletes the room and every row keyed by it: memberships,
// profiles, state, room account data and receipts, in both slots.
// The deletes run in order on tx; pass a transaction to make them atomic.
func (s *Store) RemoveRoom(ctx context.Context, tx Execer, roomID event.RoomID) error {
	if roomID == "" {
		return fmt.Errorf("remove room: %w", ErrEmptyRoomID)
	}
	for _, query := range s.cat.RoomRemove() {
		if err := s.exec(ctx, tx, "remove room", query, roomID.String()); err != nil {
			return err
		}
	}
	s.logger.Debug("room removed", slog.String("room_id", roomID.String()))
	return nil
}
