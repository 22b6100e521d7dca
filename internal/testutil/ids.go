package testutil

import (
	"github.com/google/uuid"

	"github.com/roach88/chatstate/internal/event"
)

// DefaultServer is the server name used when an IDs is created without one.
const DefaultServer = "example.org"

// IDs generates unique Matrix identifiers on one server so tests sharing a
// database never collide.
//
// Thread-safety: IDs is stateless and safe for concurrent use.
type IDs struct {
	server string
}

// NewIDs creates a generator for server. If server is empty, DefaultServer
// is used.
func NewIDs(server string) *IDs {
	if server == "" {
		server = DefaultServer
	}
	return &IDs{server: server}
}

// RoomID returns a fresh room id such as "!<uuid>:example.org".
func (g *IDs) RoomID() event.RoomID {
	return event.RoomID("!" + uuid.NewString() + ":" + g.server)
}

// EventID returns a fresh event id such as "$<uuid>".
func (g *IDs) EventID() event.EventID {
	return event.EventID("$" + uuid.NewString())
}

// UserID returns the user id of localpart on the generator's server.
func (g *IDs) UserID(localpart string) event.UserID {
	return event.UserID("@" + localpart + ":" + g.server)
}

// UniqueUserID returns a user id with a fresh localpart.
func (g *IDs) UniqueUserID() event.UserID {
	return g.UserID(uuid.NewString())
}
