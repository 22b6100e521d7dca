package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/chatstate/internal/event"
	"github.com/roach88/chatstate/internal/store"
)

// NewGetCommand creates the get command and its per-entity subcommands.
func NewGetCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get",
		Short: "Read one stored entity",
		Long: `Read one stored entity by its key and print its payload.

Exit codes:
  0 - Entity found
  1 - Entity not found, or its stored payload is corrupt
  2 - Command error (invalid arguments, database unreachable, etc.)
  3 - Database busy

Examples:
  chatstate get room '!abc:example.org'
  chatstate get state '!abc:example.org' m.room.name
  chatstate get account-data m.push_rules
  chatstate get account-data m.tag --room '!abc:example.org' --format yaml`,
	}

	cmd.AddCommand(newGetStateCommand(rootOpts, false))
	cmd.AddCommand(newGetStateCommand(rootOpts, true))
	cmd.AddCommand(newGetAccountDataCommand(rootOpts))
	cmd.AddCommand(newGetPresenceCommand(rootOpts))
	cmd.AddCommand(newGetMemberCommand(rootOpts))
	cmd.AddCommand(newGetProfileCommand(rootOpts))
	cmd.AddCommand(newGetRoomCommand(rootOpts))
	cmd.AddCommand(newGetReceiptCommand(rootOpts))

	return cmd
}

func newGetStateCommand(opts *RootOptions, stripped bool) *cobra.Command {
	use, short := "state", "Read a state event"
	if stripped {
		use, short = "stripped-state", "Read an invite-preview state event"
	}

	return &cobra.Command{
		Use:   use + " ROOM_ID EVENT_TYPE [STATE_KEY]",
		Short: short,
		Args:  cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			roomID := event.RoomID(args[0])
			eventType := event.StateEventType(args[1])
			stateKey := ""
			if len(args) == 3 {
				stateKey = args[2]
			}

			return opts.withStore(cmd, func(ctx context.Context, st *store.Store) error {
				what := fmt.Sprintf("%s %s/%q in %s", use, eventType, stateKey, roomID)
				if stripped {
					ev, err := st.GetStrippedStateEvent(ctx, roomID, eventType, stateKey)
					return printPayload(opts, cmd, what, ev, err)
				}
				ev, err := st.GetStateEvent(ctx, roomID, eventType, stateKey)
				return printPayload(opts, cmd, what, ev, err)
			})
		},
	}
}

func newGetAccountDataCommand(opts *RootOptions) *cobra.Command {
	var room string

	cmd := &cobra.Command{
		Use:   "account-data EVENT_TYPE",
		Short: "Read a global or room account data event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withStore(cmd, func(ctx context.Context, st *store.Store) error {
				if room == "" {
					ev, err := st.GetAccountDataEvent(ctx, event.GlobalAccountDataEventType(args[0]))
					return printPayload(opts, cmd, "global account data "+args[0], ev, err)
				}
				ev, err := st.GetRoomAccountDataEvent(ctx, event.RoomID(room), event.RoomAccountDataEventType(args[0]))
				return printPayload(opts, cmd, fmt.Sprintf("account data %s in %s", args[0], room), ev, err)
			})
		},
	}

	cmd.Flags().StringVar(&room, "room", "", "read room account data of this room instead of global account data")

	return cmd
}

func newGetPresenceCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "presence USER_ID",
		Short: "Read the latest presence of a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withStore(cmd, func(ctx context.Context, st *store.Store) error {
				ev, err := st.GetPresenceEvent(ctx, event.UserID(args[0]))
				return printPayload(opts, cmd, "presence of "+args[0], ev, err)
			})
		},
	}
}

func newGetMemberCommand(opts *RootOptions) *cobra.Command {
	var stripped bool

	cmd := &cobra.Command{
		Use:   "member ROOM_ID USER_ID",
		Short: "Read the membership event of a user in a room",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			roomID, userID := event.RoomID(args[0]), event.UserID(args[1])
			what := fmt.Sprintf("membership of %s in %s", userID, roomID)

			return opts.withStore(cmd, func(ctx context.Context, st *store.Store) error {
				if stripped {
					ev, err := st.GetStrippedRoomMembership(ctx, roomID, userID)
					return printPayload(opts, cmd, "stripped "+what, ev, err)
				}
				ev, err := st.GetRoomMembership(ctx, roomID, userID)
				return printPayload(opts, cmd, what, ev, err)
			})
		},
	}

	cmd.Flags().BoolVar(&stripped, "stripped", false, "read the invite-preview membership")

	return cmd
}

func newGetProfileCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "profile ROOM_ID USER_ID",
		Short: "Read the profile of a user in a room",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withStore(cmd, func(ctx context.Context, st *store.Store) error {
				ev, err := st.GetRoomProfile(ctx, event.RoomID(args[0]), event.UserID(args[1]))
				return printPayload(opts, cmd, fmt.Sprintf("profile of %s in %s", args[1], args[0]), ev, err)
			})
		},
	}
}

func newGetRoomCommand(opts *RootOptions) *cobra.Command {
	var stripped bool

	cmd := &cobra.Command{
		Use:   "room ROOM_ID",
		Short: "Read the summary of a room",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			roomID := event.RoomID(args[0])

			return opts.withStore(cmd, func(ctx context.Context, st *store.Store) error {
				if stripped {
					info, err := st.GetStrippedRoomInfo(ctx, roomID)
					return printPayload(opts, cmd, "invited room "+args[0], info, err)
				}
				info, err := st.GetRoomInfo(ctx, roomID)
				return printPayload(opts, cmd, "room "+args[0], info, err)
			})
		},
	}

	cmd.Flags().BoolVar(&stripped, "stripped", false, "read the invited-room summary")

	return cmd
}

func newGetReceiptCommand(opts *RootOptions) *cobra.Command {
	var receiptType string

	cmd := &cobra.Command{
		Use:   "receipt ROOM_ID EVENT_ID USER_ID",
		Short: "Read the receipt of a user for an event",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withStore(cmd, func(ctx context.Context, st *store.Store) error {
				r, err := st.GetReceipt(ctx,
					event.RoomID(args[0]),
					event.EventID(args[1]),
					event.ReceiptType(receiptType),
					event.UserID(args[2]),
				)
				return printPayload(opts, cmd, fmt.Sprintf("%s receipt of %s for %s", receiptType, args[2], args[1]), r, err)
			})
		},
	}

	cmd.Flags().StringVar(&receiptType, "type", event.ReceiptRead.String(), "receipt type")

	return cmd
}

// withStore opens the configured store, runs fn and closes the database.
func (o *RootOptions) withStore(cmd *cobra.Command, fn func(ctx context.Context, st *store.Store) error) error {
	ctx := cmd.Context()
	db, st, err := o.openStore(ctx, cmd)
	if err != nil {
		return err
	}
	defer db.Close()

	return fn(ctx, st)
}

// printPayload writes a loaded entity. A nil v with a nil err means the
// entity is absent.
func printPayload[T any](opts *RootOptions, cmd *cobra.Command, what string, v *T, err error) error {
	if err != nil {
		return wrapStoreError("failed to read "+what, err)
	}
	if v == nil {
		return NewExitError(ExitFailure, what+" not found")
	}

	data, err := json.Marshal(v)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to encode "+what, err)
	}

	f := opts.formatter(cmd)
	if f.Format == "text" {
		var buf bytes.Buffer
		if err := json.Indent(&buf, data, "", "  "); err != nil {
			return WrapExitError(ExitCommandError, "failed to encode "+what, err)
		}
		return f.Success(buf.String())
	}

	var tree any
	if err := json.Unmarshal(data, &tree); err != nil {
		return WrapExitError(ExitCommandError, "failed to encode "+what, err)
	}
	return f.Success(tree)
}
