// Package store persists a chat client's view of rooms, memberships, state,
// account data, presence and receipts.
//
// The store is a typed facade over a catalog.Catalog: every method picks one
// catalog statement, encodes the payload with the configured codec.Codec and
// binds parameters in the operation's fixed order. The SQL dialect is a
// property of the catalog, never of the call site.
//
// # Key spaces
//
// Each key maps to exactly one current row. Writing an existing key replaces
// its payload in place; there is no history.
//
//   - Rooms, memberships and state have independent stripped (invite
//     preview) and full slots under the same key.
//   - Global account data and room account data never collide, even when
//     their event types are equal.
//   - The membership displayname column is recomputed from the payload on
//     every write.
//   - RemoveRoom deletes every row keyed by the room; the store issues the
//     deletes itself instead of relying on foreign keys.
//
// # Transactions
//
// Writes run on an Execer supplied by the caller, normally a *sql.Tx shared
// by every write of one sync batch. The store never begins, commits or rolls
// back a transaction; InTx is a helper for callers that want scoped
// commit/rollback.
//
// Reads run on the shared Querier given to New and fetch at most one row.
// A missing row is reported as a nil result with a nil error. A row whose
// payload cannot be decoded is an error (*codec.DecodeError), never absence.
//
// # Errors
//
// Driver errors are wrapped with the operation name and otherwise passed
// through untouched; errors.Is and errors.As see the original cause. The
// store does not retry.
package store
