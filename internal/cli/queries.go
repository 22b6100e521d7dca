package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/chatstate/internal/catalog"
	"github.com/roach88/chatstate/internal/database"
)

// QueriesOptions holds flags for the queries command.
type QueriesOptions struct {
	*RootOptions
	Dialect string // optional - defaults to the configured driver's dialect
}

// QueryInfo describes one catalog statement.
type QueryInfo struct {
	Op     string `json:"op" yaml:"op"`
	Params int    `json:"params" yaml:"params"`
	SQL    string `json:"sql" yaml:"sql"`
}

// QueriesResult holds the catalog of one dialect.
type QueriesResult struct {
	Dialect    string      `json:"dialect" yaml:"dialect"`
	Schema     []string    `json:"schema" yaml:"schema"`
	Statements []QueryInfo `json:"statements" yaml:"statements"`
}

// NewQueriesCommand creates the queries command.
func NewQueriesCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &QueriesOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "queries",
		Short: "Print the statement catalog",
		Long: `Print the schema and every statement the state store issues for a
SQL dialect. No database connection is made.

Examples:
  chatstate queries
  chatstate queries --dialect postgres --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQueries(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Dialect, "dialect", "", "SQL dialect (sqlite|postgres)")

	return cmd
}

func runQueries(opts *QueriesOptions, cmd *cobra.Command) error {
	dialect := catalog.Dialect(opts.Dialect)
	if dialect == "" {
		d, err := database.DialectFor(opts.cfg.Database.Driver)
		if err != nil {
			return WrapExitError(ExitCommandError, "invalid driver", err)
		}
		dialect = d
	}

	cat, err := catalog.New(dialect)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid dialect", err)
	}

	f := opts.formatter(cmd)
	if f.Format == "text" {
		return f.Success(strings.TrimRight(catalog.Render(cat), "\n"))
	}

	result := QueriesResult{
		Dialect: string(cat.Dialect()),
		Schema:  cat.Schema(),
	}
	for _, stmt := range catalog.Statements(cat) {
		result.Statements = append(result.Statements, QueryInfo{
			Op:     string(stmt.Op),
			Params: catalog.ParamCount(stmt.Op),
			SQL:    stmt.SQL,
		})
	}
	return f.Success(result)
}
