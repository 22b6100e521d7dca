package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// MigrateResult is the output of the migrate command.
type MigrateResult struct {
	Driver        string `json:"driver" yaml:"driver"`
	Dialect       string `json:"dialect" yaml:"dialect"`
	SchemaVersion int    `json:"schema_version" yaml:"schema_version"`
}

func (r MigrateResult) String() string {
	return fmt.Sprintf("schema version %d (%s, %s dialect)", r.SchemaVersion, r.Driver, r.Dialect)
}

// NewMigrateCommand creates the migrate command.
func NewMigrateCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or upgrade the database schema",
		Long: `Create every table and index the state store needs, then record the
schema version. Running it on an up-to-date database changes nothing.

Examples:
  chatstate migrate --dsn ./chatstate.db
  chatstate migrate --driver pgx --dsn postgres://localhost/chatstate`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigrate(rootOpts, cmd)
		},
	}
}

func runMigrate(opts *RootOptions, cmd *cobra.Command) error {
	ctx := cmd.Context()

	// Open applies the schema.
	db, _, err := opts.openStore(ctx, cmd)
	if err != nil {
		return err
	}
	defer db.Close()

	version, err := db.SchemaVersion(ctx)
	if err != nil {
		return wrapStoreError("failed to read schema version", err)
	}

	return opts.formatter(cmd).Success(MigrateResult{
		Driver:        db.Driver,
		Dialect:       string(db.Catalog.Dialect()),
		SchemaVersion: version,
	})
}
