// Package sqldb is a parex producer over rows of a SQL table.
//
// Each row becomes one item. The path column is required; name, kind and
// depth columns are optional. Rows are streamed from a single query, so the
// table is never loaded into memory. When a depth column is configured the
// max depth hint is pushed down into the query.
package sqldb

import (
	"context"
	"database/sql"
	"fmt"
	"path"
	"strings"

	sq "github.com/Masterminds/squirrel"

	// registers the "sqlite" driver
	_ "modernc.org/sqlite"

	"github.com/aryankumar/parex/pkg/parex"
)

// Columns names the columns an item is read from. Empty optional columns are skipped.
type Columns struct {
	Path  string
	Name  string
	Kind  string
	Depth string
}

// DefaultColumns reads path, name, kind and depth columns
func DefaultColumns() Columns {
	return Columns{Path: "path", Name: "name", Kind: "kind", Depth: "depth"}
}

// Source walks the rows of one table
type Source struct {
	db      *sql.DB
	table   string
	columns Columns
	filters []sq.Sqlizer
	ownsDB  bool
}

var _ parex.Producer = (*Source)(nil)

// Option configures a Source
type Option func(*Source)

// WithColumns overrides the column mapping
func WithColumns(c Columns) Option {
	return func(s *Source) {
		s.columns = c
	}
}

// WithFilter adds a WHERE condition to the query, e.g. sq.Eq{"owner": "finance"}
func WithFilter(cond sq.Sqlizer) Option {
	return func(s *Source) {
		s.filters = append(s.filters, cond)
	}
}

// New creates a source reading table through db
func New(db *sql.DB, table string, opts ...Option) *Source {
	s := &Source{
		db:      db,
		table:   table,
		columns: DefaultColumns(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Open connects with driver and dsn and creates a source over table.
// The returned source owns the connection; release it with Close.
func Open(driver, dsn, table string, opts ...Option) (*Source, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, parex.InvalidSource(fmt.Sprintf("opening %s database: %v", driver, err))
	}
	s := New(db, table, opts...)
	s.ownsDB = true
	return s, nil
}

// Close closes the connection if the source opened it
func (s *Source) Close() error {
	if s.ownsDB && s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Query builds the SELECT statement for a walk
func (s *Source) Query(cfg parex.WalkConfig) sq.SelectBuilder {
	cols := []string{s.columns.Path}
	for _, c := range []string{s.columns.Name, s.columns.Kind, s.columns.Depth} {
		if c != "" {
			cols = append(cols, c)
		}
	}

	sb := sq.Select(cols...).From(s.table)
	for _, f := range s.filters {
		sb = sb.Where(f)
	}
	if s.columns.Depth != "" && cfg.MaxDepth >= 0 {
		sb = sb.Where(sq.LtOrEq{s.columns.Depth: cfg.MaxDepth})
	}
	return sb.OrderBy(s.columns.Path)
}

// Walk runs the query. A query that cannot run is fatal.
func (s *Source) Walk(ctx context.Context, cfg parex.WalkConfig) (parex.Iterator, error) {
	switch {
	case s.db == nil:
		return nil, parex.InvalidSource("no database")
	case strings.TrimSpace(s.table) == "":
		return nil, parex.InvalidSource("no table")
	case s.columns.Path == "":
		return nil, parex.InvalidSource("no path column")
	}

	rows, err := s.Query(cfg).RunWith(s.db).QueryContext(ctx)
	if err != nil {
		return nil, &parex.Error{Code: parex.CodeInvalidSource, Detail: "querying " + s.table, Err: err}
	}

	return &iterator{source: s, rows: rows}, nil
}

type iterator struct {
	source *Source
	rows   *sql.Rows
	row    int
	done   bool
}

func (it *iterator) Next(ctx context.Context) (parex.Item, error) {
	if it.done || ctx.Err() != nil {
		return parex.Item{}, parex.ErrIteratorDone
	}

	if !it.rows.Next() {
		it.done = true
		if err := it.rows.Err(); err != nil && ctx.Err() == nil {
			return parex.Item{}, parex.IOError(it.source.table, err)
		}
		return parex.Item{}, parex.ErrIteratorDone
	}
	it.row++

	item, err := it.scan()
	if err != nil {
		return parex.Item{}, parex.IOError(fmt.Sprintf("%s row %d", it.source.table, it.row), err)
	}
	return item, nil
}

func (it *iterator) scan() (parex.Item, error) {
	cols := it.source.columns

	var (
		p     sql.NullString
		name  sql.NullString
		kind  sql.NullString
		depth sql.NullInt64
	)
	dest := []any{&p}
	if cols.Name != "" {
		dest = append(dest, &name)
	}
	if cols.Kind != "" {
		dest = append(dest, &kind)
	}
	if cols.Depth != "" {
		dest = append(dest, &depth)
	}

	if err := it.rows.Scan(dest...); err != nil {
		return parex.Item{}, err
	}
	if !p.Valid {
		return parex.Item{}, fmt.Errorf("null %s", cols.Path)
	}

	item := parex.Item{
		Path:  p.String,
		Name:  name.String,
		Kind:  parex.KindPrimary,
		Depth: int(depth.Int64),
	}
	if item.Name == "" {
		item.Name = path.Base(item.Path)
	}
	if kind.Valid {
		item.Kind = parex.ParseKind(strings.ToLower(kind.String))
	}
	return item, nil
}

func (it *iterator) Stop() {
	it.done = true
	it.rows.Close()
}
