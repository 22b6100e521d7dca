package cli

import (
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/chatstate/internal/event"
	"github.com/roach88/chatstate/internal/store"
)

// RemoveRoomResult is the output of the remove-room command.
type RemoveRoomResult struct {
	RoomID  string `json:"room_id" yaml:"room_id"`
	Removed bool   `json:"removed" yaml:"removed"`
}

func (r RemoveRoomResult) String() string {
	return fmt.Sprintf("removed %s", r.RoomID)
}

// NewRemoveRoomCommand creates the remove-room command.
func NewRemoveRoomCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "remove-room ROOM_ID",
		Short: "Delete a room and everything keyed by it",
		Long: `Delete a room together with its members, profiles, state events, room
account data and receipts, in both the joined and invite-preview slots.
Global account data and presence are kept. All deletes run in one
transaction. Removing an unknown room succeeds and changes nothing.

Examples:
  chatstate remove-room '!abc:example.org'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRemoveRoom(rootOpts, cmd, event.RoomID(args[0]))
		},
	}
}

func runRemoveRoom(opts *RootOptions, cmd *cobra.Command, roomID event.RoomID) error {
	ctx := cmd.Context()
	db, st, err := opts.openStore(ctx, cmd)
	if err != nil {
		return err
	}
	defer db.Close()

	opts.formatter(cmd).VerboseLog("removing room %s", roomID)

	err = store.InTx(ctx, db.SQL, func(tx *sql.Tx) error {
		return st.RemoveRoom(ctx, tx, roomID)
	})
	if err != nil {
		return wrapStoreError("failed to remove room", err)
	}

	return opts.formatter(cmd).Success(RemoveRoomResult{RoomID: roomID.String(), Removed: true})
}
