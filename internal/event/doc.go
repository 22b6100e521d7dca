// Package event provides the protocol value types persisted by the state store.
//
// The store treats every payload as opaque: these types exist so callers get
// typed values back on read and so the store can project a few indexed
// columns (the membership displayname) out of a payload on write. Nothing in
// this package validates protocol rules.
//
// Identifiers follow the Matrix grammar loosely:
//   - RoomID   "!opaque:server"
//   - UserID   "@local:server"
//   - EventID  "$opaque"
//
// Payloads the store never inspects are carried as Raw[T]: the undecoded JSON
// bytes plus the type they are expected to decode into.
package event
