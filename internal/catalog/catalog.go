// Package catalog supplies the SQL text for every logical operation of the
// state store, once per supported dialect.
//
// The set of operations is closed: it is the method set of Catalog. A new
// backend is added by implementing every method, never by branching on the
// dialect at call sites. Each operation has the same parameter contract in
// every dialect (see ParamCount); only placeholder syntax, boolean literals
// and column types differ.
//
// Nothing in this package performs I/O.
package catalog

import (
	"errors"
	"fmt"
	"strings"
)

// Dialect names a SQL backend.
type Dialect string

// Supported dialects.
const (
	SQLite   Dialect = "sqlite"
	Postgres Dialect = "postgres"
)

// Dialects lists the supported dialects.
var Dialects = []Dialect{SQLite, Postgres}

// ErrUnknownDialect is returned by New for an unsupported dialect.
var ErrUnknownDialect = errors.New("unknown dialect")

// Op names a logical operation.
type Op string

// Logical operations, in catalog order.
const (
	OpRoomRemove          Op = "room_remove"
	OpRoomUpsert          Op = "room_upsert"
	OpRoomLoad            Op = "room_load"
	OpMemberUpsert        Op = "member_upsert"
	OpMemberLoad          Op = "member_load"
	OpMemberProfileUpsert Op = "member_profile_upsert"
	OpMemberProfileLoad   Op = "member_profile_load"
	OpStateUpsert         Op = "state_upsert"
	OpStateLoad           Op = "state_load"
	OpStrippedStateLoad   Op = "stripped_state_load"
	OpAccountDataUpsert   Op = "account_data_upsert"
	OpAccountDataLoad     Op = "account_data_load"
	OpPresenceUpsert      Op = "presence_upsert"
	OpPresenceLoad        Op = "presence_load"
	OpReceiptUpsert       Op = "receipt_upsert"
	OpReceiptLoad         Op = "receipt_load"
)

// Ops lists every operation in catalog order.
var Ops = []Op{
	OpRoomRemove,
	OpRoomUpsert,
	OpRoomLoad,
	OpMemberUpsert,
	OpMemberLoad,
	OpMemberProfileUpsert,
	OpMemberProfileLoad,
	OpStateUpsert,
	OpStateLoad,
	OpStrippedStateLoad,
	OpAccountDataUpsert,
	OpAccountDataLoad,
	OpPresenceUpsert,
	OpPresenceLoad,
	OpReceiptUpsert,
	OpReceiptLoad,
}

// paramCounts is the bind contract of each operation. Parameters are bound
// positionally in the order documented on the Catalog method.
var paramCounts = map[Op]int{
	OpRoomRemove:          1,
	OpRoomUpsert:          3,
	OpRoomLoad:            2,
	OpMemberUpsert:        5,
	OpMemberLoad:          3,
	OpMemberProfileUpsert: 3,
	OpMemberProfileLoad:   2,
	OpStateUpsert:         5,
	OpStateLoad:           3,
	OpStrippedStateLoad:   3,
	OpAccountDataUpsert:   3,
	OpAccountDataLoad:     2,
	OpPresenceUpsert:      2,
	OpPresenceLoad:        1,
	OpReceiptUpsert:       5,
	OpReceiptLoad:         4,
}

// ParamCount returns the number of parameters op binds, or -1 for an
// unknown operation.
func ParamCount(op Op) int {
	n, ok := paramCounts[op]
	if !ok {
		return -1
	}
	return n
}

// Catalog supplies statement text for one dialect.
//
// Upserts replace the payload of an existing key in place. Loads select the
// single payload column and match at most one row.
type Catalog interface {
	// Dialect reports which backend the statements target.
	Dialect() Dialect

	// Schema returns idempotent DDL creating every table the statements use.
	Schema() []string

	// RoomRemove deletes every row keyed by a room. Each statement binds
	// (room_id) and all of them must run, in order, on the same handle.
	RoomRemove() []string

	// RoomUpsert binds (room_id, is_stripped, payload).
	RoomUpsert() string

	// RoomLoad binds (room_id, is_stripped).
	RoomLoad() string

	// MemberUpsert binds (room_id, user_id, is_stripped, payload, displayname).
	MemberUpsert() string

	// MemberLoad binds (room_id, user_id, is_stripped).
	MemberLoad() string

	// MemberProfileUpsert binds (room_id, user_id, payload).
	MemberProfileUpsert() string

	// MemberProfileLoad binds (room_id, user_id).
	MemberProfileLoad() string

	// StateUpsert binds (room_id, event_type, state_key, is_stripped, payload).
	StateUpsert() string

	// StateLoad binds (room_id, event_type, state_key) and matches only the
	// full (non-stripped) slot.
	StateLoad() string

	// StrippedStateLoad binds (room_id, event_type, state_key) and matches
	// only the stripped slot.
	StrippedStateLoad() string

	// AccountDataUpsert binds (room_id or nil, event_type, payload). A nil
	// room id stores global account data.
	AccountDataUpsert() string

	// AccountDataLoad binds (room_id or nil, event_type).
	AccountDataLoad() string

	// PresenceUpsert binds (user_id, payload).
	PresenceUpsert() string

	// PresenceLoad binds (user_id).
	PresenceLoad() string

	// ReceiptUpsert binds (room_id, event_id, receipt_type, user_id, payload).
	ReceiptUpsert() string

	// ReceiptLoad binds (room_id, event_id, receipt_type, user_id).
	ReceiptLoad() string
}

// New returns the catalog for dialect d.
func New(d Dialect) (Catalog, error) {
	switch d {
	case SQLite:
		return sqliteCatalog{}, nil
	case Postgres:
		return postgresCatalog{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDialect, d)
	}
}

// MustNew is New for dialects known to be valid; it panics otherwise.
func MustNew(d Dialect) Catalog {
	c, err := New(d)
	if err != nil {
		panic(err)
	}
	return c
}

// Statement pairs an operation with one statement of its text.
type Statement struct {
	Op  Op
	SQL string
}

// Statements lists the text of every operation of c in catalog order.
// Multi-statement operations contribute one entry per statement.
func Statements(c Catalog) []Statement {
	stmts := make([]Statement, 0, len(Ops)+8)
	for _, sql := range c.RoomRemove() {
		stmts = append(stmts, Statement{Op: OpRoomRemove, SQL: sql})
	}
	single := []Statement{
		{OpRoomUpsert, c.RoomUpsert()},
		{OpRoomLoad, c.RoomLoad()},
		{OpMemberUpsert, c.MemberUpsert()},
		{OpMemberLoad, c.MemberLoad()},
		{OpMemberProfileUpsert, c.MemberProfileUpsert()},
		{OpMemberProfileLoad, c.MemberProfileLoad()},
		{OpStateUpsert, c.StateUpsert()},
		{OpStateLoad, c.StateLoad()},
		{OpStrippedStateLoad, c.StrippedStateLoad()},
		{OpAccountDataUpsert, c.AccountDataUpsert()},
		{OpAccountDataLoad, c.AccountDataLoad()},
		{OpPresenceUpsert, c.PresenceUpsert()},
		{OpPresenceLoad, c.PresenceLoad()},
		{OpReceiptUpsert, c.ReceiptUpsert()},
		{OpReceiptLoad, c.ReceiptLoad()},
	}
	return append(stmts, single...)
}

// Render writes the schema and every statement of c as an annotated SQL
// listing, one "-- <op>" header per statement.
func Render(c Catalog) string {
	var b strings.Builder
	for _, ddl := range c.Schema() {
		fmt.Fprintf(&b, "-- schema\n%s\n", ddl)
	}
	for _, st := range Statements(c) {
		fmt.Fprintf(&b, "-- %s\n%s\n", st.Op, st.SQL)
	}
	return b.String()
}
