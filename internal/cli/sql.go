package cli

import (
	sq "github.com/Masterminds/squirrel"
	"github.com/spf13/cobra"

	"github.com/aryankumar/parex/internal/util"
	"github.com/aryankumar/parex/pkg/source/sqldb"
)

// newSQLCmd creates the sql command
func newSQLCmd(a *app) *cobra.Command {
	var where string

	cmd := &cobra.Command{
		Use:   "sql",
		Short: "Search the rows of a SQL table",
		Long: `Search the rows of a SQL table in parallel.

Each row is one item read from a path column and optional name, kind and
depth columns. The sqlite driver is built in. Rows that cannot be read are
skipped and counted as failures.`,
		Example: `  # Find invoices in a sqlite catalogue
  parex sql --dsn catalogue.db --table documents --name invoice

  # Restrict rows with a WHERE condition and stop after 5 matches
  parex sql --dsn catalogue.db --table documents --where "owner = 'finance'" --limit 5`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := a.settings.SQL

			errs := &util.MultiError{}
			if s.DSN == "" {
				errs.Add(util.NewValidationError("dsn", nil, "a data source name is required"))
			}
			if s.Table == "" {
				errs.Add(util.NewValidationError("table", nil, "a table name is required"))
			}
			if err := errs.ErrorOrNil(); err != nil {
				return err
			}

			opts := []sqldb.Option{sqldb.WithColumns(sqldb.Columns{
				Path:  s.PathColumn,
				Name:  s.NameColumn,
				Kind:  s.KindColumn,
				Depth: s.DepthColumn,
			})}
			if where != "" {
				opts = append(opts, sqldb.WithFilter(sq.Expr(where)))
			}

			a.logger.Debug("opening database", "driver", s.Driver, "table", s.Table)

			src, err := sqldb.Open(s.Driver, s.DSN, s.Table, opts...)
			if err != nil {
				return err
			}
			defer src.Close()

			return a.runSearch(cmd, src)
		},
	}

	cmd.Flags().String("driver", "sqlite", "database/sql driver name")
	cmd.Flags().String("dsn", "", "data source name, e.g. a sqlite file path")
	cmd.Flags().String("table", "", "table to search")
	cmd.Flags().String("path-column", "path", "column holding the item path")
	cmd.Flags().String("name-column", "name", "column holding the item name (empty to derive from path)")
	cmd.Flags().String("kind-column", "kind", "column holding the item kind (empty for primary)")
	cmd.Flags().String("depth-column", "depth", "column holding the item depth (empty for 0)")
	cmd.Flags().StringVar(&where, "where", "", "extra SQL condition rows must satisfy")

	return cmd
}
