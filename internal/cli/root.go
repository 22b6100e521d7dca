package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/roach88/chatstate/internal/codec"
	"github.com/roach88/chatstate/internal/config"
	"github.com/roach88/chatstate/internal/database"
	"github.com/roach88/chatstate/internal/logging"
	"github.com/roach88/chatstate/internal/store"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose    bool
	Format     string // "text" | "json" | "yaml"
	ConfigFile string

	viper *viper.Viper
	cfg   config.AppConfig
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json", "yaml"}

// NewRootCommand creates the root command for the chatstate CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{viper: config.NewViper()}

	cmd := &cobra.Command{
		Use:   "chatstate",
		Short: "chatstate - chat client state store",
		Long:  "Inspect and maintain the persisted state of a chat client: rooms, members, state events, account data, presence and receipts.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Validate format flag
			if !isValidFormat(opts.Format) {
				return NewExitError(ExitCommandError, fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats))
			}
			if err := config.ReadFile(opts.viper, opts.ConfigFile); err != nil {
				return WrapExitError(ExitCommandError, "failed to read config", err)
			}
			cfg, err := config.Load(opts.viper)
			if err != nil {
				return WrapExitError(ExitCommandError, "invalid configuration", err)
			}
			opts.cfg = cfg
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags
	defaults := config.NewViper()
	flags := cmd.PersistentFlags()
	flags.BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	flags.StringVar(&opts.Format, "format", "text", "output format (text|json|yaml)")
	flags.StringVar(&opts.ConfigFile, "config", "", "path to configuration file")
	flags.String("driver", defaults.GetString(config.KeyDatabaseDriver), "database driver (sqlite3|sqlite|pgx)")
	flags.String("dsn", defaults.GetString(config.KeyDatabaseDSN), "database file path or connection string")
	flags.String("codec", defaults.GetString(config.KeyCodec), "payload codec (json|canonical)")
	flags.String("log-level", defaults.GetString(config.KeyLogLevel), "log level (debug|info|warn|error)")
	flags.String("log-format", defaults.GetString(config.KeyLogFormat), "log format (text|json)")

	bindFlag(opts.viper, cmd, config.KeyDatabaseDriver, "driver")
	bindFlag(opts.viper, cmd, config.KeyDatabaseDSN, "dsn")
	bindFlag(opts.viper, cmd, config.KeyCodec, "codec")
	bindFlag(opts.viper, cmd, config.KeyLogLevel, "log-level")
	bindFlag(opts.viper, cmd, config.KeyLogFormat, "log-format")

	// Add subcommands
	cmd.AddCommand(NewMigrateCommand(opts))
	cmd.AddCommand(NewQueriesCommand(opts))
	cmd.AddCommand(NewGetCommand(opts))
	cmd.AddCommand(NewSetCommand(opts))
	cmd.AddCommand(NewRemoveRoomCommand(opts))

	return cmd
}

func bindFlag(v *viper.Viper, cmd *cobra.Command, key, flag string) {
	if err := v.BindPFlag(key, cmd.PersistentFlags().Lookup(flag)); err != nil {
		panic(fmt.Sprintf("bind flag %s: %v", flag, err))
	}
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	return slices.Contains(ValidFormats, format)
}

// formatter returns the output formatter for cmd.
func (o *RootOptions) formatter(cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    o.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   o.Verbose,
	}
}

// logger builds the logger configured for this invocation. Logs go to
// stderr so they never mix with command output.
func (o *RootOptions) logger(w io.Writer) *slog.Logger {
	level := o.cfg.LogLevel
	if o.Verbose {
		level = "debug"
	}
	logger, err := logging.NewLogger(level, o.cfg.LogFormat, w)
	if err != nil {
		return logging.Discard()
	}
	return logger
}

// openStore opens the configured database and returns a store over it.
// The caller closes the returned DB.
func (o *RootOptions) openStore(ctx context.Context, cmd *cobra.Command) (*database.DB, *store.Store, error) {
	logger := o.logger(cmd.ErrOrStderr())

	c, err := codec.ByName(o.cfg.Codec)
	if err != nil {
		return nil, nil, WrapExitError(ExitCommandError, "invalid codec", err)
	}

	db, err := database.Open(ctx, o.cfg.Database, database.WithLogger(logger))
	if err != nil {
		if database.IsBusy(err) {
			return nil, nil, WrapExitError(ExitBusy, "failed to open database", err)
		}
		return nil, nil, WrapExitError(ExitCommandError, "failed to open database", err)
	}

	return db, db.Store(store.WithCodec(c), store.WithLogger(logger)), nil
}
