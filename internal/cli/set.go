package cli

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/chatstate/internal/event"
	"github.com/roach88/chatstate/internal/store"
)

// SetResult is the output of the set commands.
type SetResult struct {
	Kind      string `json:"kind" yaml:"kind"`
	EventType string `json:"event_type" yaml:"event_type"`
	RoomID    string `json:"room_id,omitempty" yaml:"room_id,omitempty"`
}

func (r SetResult) String() string {
	if r.RoomID != "" {
		return fmt.Sprintf("stored %s %s in %s", r.Kind, r.EventType, r.RoomID)
	}
	return fmt.Sprintf("stored %s %s", r.Kind, r.EventType)
}

// NewSetCommand creates the set command.
func NewSetCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Write one entity",
	}

	cmd.AddCommand(newSetAccountDataCommand(rootOpts))

	return cmd
}

func newSetAccountDataCommand(opts *RootOptions) *cobra.Command {
	var room string

	cmd := &cobra.Command{
		Use:   "account-data EVENT_TYPE [EVENT_JSON|-]",
		Short: "Store a global or room account data event",
		Long: `Store an account data event, replacing any previous event of the same
type. Without --room the event is global; with --room it is scoped to that
room and never affects global account data of the same type.

The event is read from the second argument, or from stdin when the argument
is "-" or missing.

Examples:
  chatstate set account-data m.push_rules '{"type":"m.push_rules","content":{}}'
  chatstate set account-data m.tag --room '!abc:example.org' - < tag.json`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var data []byte
			if len(args) == 2 && args[1] != "-" {
				data = []byte(args[1])
			} else {
				in, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return WrapExitError(ExitCommandError, "failed to read event from stdin", err)
				}
				data = in
			}
			if !json.Valid(data) {
				return NewExitError(ExitCommandError, "event is not valid JSON")
			}

			return runSetAccountData(opts, cmd, args[0], room, data)
		},
	}

	cmd.Flags().StringVar(&room, "room", "", "store room account data of this room instead of global account data")

	return cmd
}

func runSetAccountData(opts *RootOptions, cmd *cobra.Command, eventType, room string, data []byte) error {
	ctx := cmd.Context()
	db, st, err := opts.openStore(ctx, cmd)
	if err != nil {
		return err
	}
	defer db.Close()

	result := SetResult{Kind: "global account data", EventType: eventType, RoomID: room}
	err = store.InTx(ctx, db.SQL, func(tx *sql.Tx) error {
		if room == "" {
			return st.SetGlobalAccountData(ctx, tx,
				event.GlobalAccountDataEventType(eventType),
				event.NewRaw[event.AnyGlobalAccountDataEvent](data),
			)
		}
		result.Kind = "room account data"
		return st.SetRoomAccountData(ctx, tx,
			event.RoomID(room),
			event.RoomAccountDataEventType(eventType),
			event.NewRaw[event.AnyRoomAccountDataEvent](data),
		)
	})
	if err != nil {
		return wrapStoreError("failed to store account data", err)
	}

	return opts.formatter(cmd).Success(result)
}
