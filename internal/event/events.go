package event

import "encoding/json"

// MembershipState is the "membership" field of an m.room.member event.
type MembershipState string

// Membership states.
const (
	MembershipJoin   MembershipState = "join"
	MembershipInvite MembershipState = "invite"
	MembershipLeave  MembershipState = "leave"
	MembershipBan    MembershipState = "ban"
	MembershipKnock  MembershipState = "knock"
)

// MemberContent is the content of an m.room.member event.
type MemberContent struct {
	Membership       MembershipState `json:"membership"`
	Displayname      *string         `json:"displayname,omitempty"`
	AvatarURL        *string         `json:"avatar_url,omitempty"`
	IsDirect         *bool           `json:"is_direct,omitempty"`
	Reason           *string         `json:"reason,omitempty"`
	ThirdPartyInvite json.RawMessage `json:"third_party_invite,omitempty"`
}

// Unsigned carries the server-added metadata of a sync event.
type Unsigned struct {
	Age             *int64          `json:"age,omitempty"`
	TransactionID   string          `json:"transaction_id,omitempty"`
	PrevContent     json.RawMessage `json:"prev_content,omitempty"`
	RedactedBecause json.RawMessage `json:"redacted_because,omitempty"`
}

// MemberEvent is an m.room.member event as delivered in a sync timeline or
// state block of a joined room.
//
// A redacted membership event keeps only its membership field; Original
// reports whether the full content is still available.
type MemberEvent struct {
	Type           StateEventType `json:"type"`
	EventID        EventID        `json:"event_id"`
	Sender         UserID         `json:"sender"`
	StateKey       UserID         `json:"state_key"`
	OriginServerTS int64          `json:"origin_server_ts"`
	Content        MemberContent  `json:"content"`
	Unsigned       *Unsigned      `json:"unsigned,omitempty"`
}

// Redacted reports whether the event has been redacted.
func (e MemberEvent) Redacted() bool {
	return e.Unsigned != nil && len(e.Unsigned.RedactedBecause) > 0
}

// Original returns the unredacted content, or nil if the event was redacted.
func (e MemberEvent) Original() *MemberContent {
	if e.Redacted() {
		return nil
	}
	return &e.Content
}

// Displayname returns the displayname set by the event, if any. Redacted
// events have no displayname.
func (e MemberEvent) Displayname() *string {
	if c := e.Original(); c != nil {
		return c.Displayname
	}
	return nil
}

// StrippedMemberEvent is the reduced m.room.member event seen in the invite
// preview of a room the user has not joined.
type StrippedMemberEvent struct {
	Type     StateEventType `json:"type"`
	Sender   UserID         `json:"sender"`
	StateKey UserID         `json:"state_key"`
	Content  MemberContent  `json:"content"`
}

// Displayname returns the displayname carried by the stripped event, if any.
func (e StrippedMemberEvent) Displayname() *string {
	return e.Content.Displayname
}

// MinimalMemberContent is the profile subset of a membership event.
type MinimalMemberContent struct {
	Displayname *string `json:"displayname,omitempty"`
	AvatarURL   *string `json:"avatar_url,omitempty"`
}

// MinimalMemberEvent is a user's profile within one room, kept separately
// from the full membership event so it can be loaded cheaply.
type MinimalMemberEvent struct {
	EventID        *EventID             `json:"event_id,omitempty"`
	Sender         UserID               `json:"sender"`
	OriginServerTS *int64               `json:"origin_server_ts,omitempty"`
	Content        MinimalMemberContent `json:"content"`
}

// RoomState describes the client's relation to a room.
type RoomState string

// Room states.
const (
	RoomJoined  RoomState = "Joined"
	RoomLeft    RoomState = "Left"
	RoomInvited RoomState = "Invited"
)

// NotificationCounts are the unread counters of a room.
type NotificationCounts struct {
	HighlightCount    uint64 `json:"highlight_count"`
	NotificationCount uint64 `json:"notification_count"`
}

// RoomSummary is the heroes/member-count summary sent with a room.
type RoomSummary struct {
	Heroes             []UserID `json:"heroes,omitempty"`
	JoinedMemberCount  uint64   `json:"joined_member_count"`
	InvitedMemberCount uint64   `json:"invited_member_count"`
}

// RoomInfo is the client's summary of a room: everything needed to list it
// without loading its state.
type RoomInfo struct {
	RoomID             RoomID             `json:"room_id"`
	RoomState          RoomState          `json:"room_state"`
	Name               *string            `json:"name,omitempty"`
	Topic              *string            `json:"topic,omitempty"`
	CanonicalAlias     *string            `json:"canonical_alias,omitempty"`
	AvatarURL          *string            `json:"avatar_url,omitempty"`
	Encrypted          bool               `json:"encrypted"`
	Summary            RoomSummary        `json:"summary"`
	NotificationCounts NotificationCounts `json:"notification_counts"`
	LastPrevBatch      *string            `json:"last_prev_batch,omitempty"`
	Tombstoned         bool               `json:"tombstoned,omitempty"`
}

// Receipt records when a user read up to an event.
type Receipt struct {
	TS       *int64 `json:"ts,omitempty"`
	ThreadID string `json:"thread_id,omitempty"`
}

// PresenceState is the availability advertised by a user.
type PresenceState string

// Presence states.
const (
	PresenceOnline      PresenceState = "online"
	PresenceOffline     PresenceState = "offline"
	PresenceUnavailable PresenceState = "unavailable"
)

// PresenceContent is the content of an m.presence event.
type PresenceContent struct {
	Presence        PresenceState `json:"presence"`
	LastActiveAgo   *int64        `json:"last_active_ago,omitempty"`
	CurrentlyActive *bool         `json:"currently_active,omitempty"`
	StatusMsg       *string       `json:"status_msg,omitempty"`
	Displayname     *string       `json:"displayname,omitempty"`
	AvatarURL       *string       `json:"avatar_url,omitempty"`
}

// PresenceEvent is an m.presence event.
type PresenceEvent struct {
	Type    string          `json:"type"`
	Sender  UserID          `json:"sender"`
	Content PresenceContent `json:"content"`
}

// AnySyncStateEvent is any state event of a joined room. Content is left
// undecoded; callers that know the type decode it themselves.
type AnySyncStateEvent struct {
	Type           StateEventType  `json:"type"`
	EventID        EventID         `json:"event_id"`
	Sender         UserID          `json:"sender"`
	StateKey       string          `json:"state_key"`
	OriginServerTS int64           `json:"origin_server_ts"`
	Content        json.RawMessage `json:"content"`
	Unsigned       *Unsigned       `json:"unsigned,omitempty"`
}

// AnyStrippedStateEvent is any state event from an invite preview.
type AnyStrippedStateEvent struct {
	Type     StateEventType  `json:"type"`
	Sender   UserID          `json:"sender"`
	StateKey string          `json:"state_key"`
	Content  json.RawMessage `json:"content"`
}

// AnyGlobalAccountDataEvent is any account data event not tied to a room.
type AnyGlobalAccountDataEvent struct {
	Type    GlobalAccountDataEventType `json:"type"`
	Content json.RawMessage            `json:"content"`
}

// AnyRoomAccountDataEvent is any account data event scoped to a room.
type AnyRoomAccountDataEvent struct {
	Type    RoomAccountDataEventType `json:"type"`
	Content json.RawMessage          `json:"content"`
}
