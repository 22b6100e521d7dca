package event

// RoomID identifies a room, e.g. "!abc:example.org".
//
// The empty RoomID is reserved: account data stores global events under it,
// so room-scoped store operations reject it.
type RoomID string

func (id RoomID) String() string { return string(id) }

// UserID identifies a user, e.g. "@alice:example.org".
type UserID string

func (id UserID) String() string { return string(id) }

// EventID identifies an event, e.g. "$143273582443PhrSn".
type EventID string

func (id EventID) String() string { return string(id) }

// StateEventType is the type of a room state event.
type StateEventType string

// Well-known state event types.
const (
	StateRoomCreate            StateEventType = "m.room.create"
	StateRoomMember            StateEventType = "m.room.member"
	StateRoomName              StateEventType = "m.room.name"
	StateRoomTopic             StateEventType = "m.room.topic"
	StateRoomAvatar            StateEventType = "m.room.avatar"
	StateRoomCanonicalAlias    StateEventType = "m.room.canonical_alias"
	StateRoomJoinRules         StateEventType = "m.room.join_rules"
	StateRoomPowerLevels       StateEventType = "m.room.power_levels"
	StateRoomEncryption        StateEventType = "m.room.encryption"
	StateRoomHistoryVisibility StateEventType = "m.room.history_visibility"
	StateRoomTombstone         StateEventType = "m.room.tombstone"
)

func (t StateEventType) String() string { return string(t) }

// GlobalAccountDataEventType is the type of an account data event that is
// not tied to a room.
type GlobalAccountDataEventType string

// Well-known global account data types.
const (
	GlobalPushRules   GlobalAccountDataEventType = "m.push_rules"
	GlobalDirect      GlobalAccountDataEventType = "m.direct"
	GlobalIgnoredUser GlobalAccountDataEventType = "m.ignored_user_list"
)

func (t GlobalAccountDataEventType) String() string { return string(t) }

// RoomAccountDataEventType is the type of an account data event scoped to a
// single room.
type RoomAccountDataEventType string

// Well-known room account data types.
const (
	RoomFullyRead    RoomAccountDataEventType = "m.fully_read"
	RoomTag          RoomAccountDataEventType = "m.tag"
	RoomMarkedUnread RoomAccountDataEventType = "m.marked_unread"
)

func (t RoomAccountDataEventType) String() string { return string(t) }

// ReceiptType distinguishes public and private read receipts.
type ReceiptType string

// Receipt types.
const (
	ReceiptRead        ReceiptType = "m.read"
	ReceiptReadPrivate ReceiptType = "m.read.private"
	ReceiptFullyRead   ReceiptType = "m.fully_read"
)

func (t ReceiptType) String() string { return string(t) }
