package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Akashdeep-Patra/tabula/internal/grid"

	_ "modernc.org/sqlite"
)

// queryTimeout bounds any single statement so a locked database cannot
// freeze the UI.
const queryTimeout = 10 * time.Second

// SQLiteService implements Service on a local SQLite file.
//   - WAL journal: the TUI reads while an import writes
//   - Search uses LIKE across the searchable columns
//   - Filters are grouped per column into IN (...) clauses
type SQLiteService struct {
	path string
	db   *sql.DB
}

// Compile-time check that SQLiteService implements Service.
var (
	_ Service       = (*SQLiteService)(nil)
	_ LocationStore = (*SQLiteService)(nil)
)

// OpenSQLite opens (creating if needed) the inventory database at path.
func OpenSQLite(path string) (*SQLiteService, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}

	dsn := abs +
		"?_pragma=journal_mode(WAL)" +
		"&_pragma=synchronous(NORMAL)" +
		"&_pragma=busy_timeout(5000)" +
		"&_pragma=temp_store(MEMORY)"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return &SQLiteService{path: abs, db: db}, nil
}

// Path returns the database file.
func (s *SQLiteService) Path() string { return s.path }

// Close releases the database handle.
func (s *SQLiteService) Close() error { return s.db.Close() }

// Columns returns the inventory columns.
func (s *SQLiteService) Columns() []string {
	return append([]string(nil), AssetColumns...)
}

// ── Reads ───────────────────────────────────────────────────────────────────

// selectList is the projection shared by every row query. NULLs are read as
// empty strings.
var selectList = func() string {
	cols := make([]string, 0, len(AssetColumns)+1)
	cols = append(cols, "id")
	for _, c := range AssetColumns {
		cols = append(cols, "COALESCE("+c+", '')")
	}
	return strings.Join(cols, ", ")
}()

// All returns every row.
func (s *SQLiteService) All(ctx context.Context) (grid.Rows, error) {
	return s.Search(ctx, "", nil)
}

// Search returns the rows matching term and filters, ordered by id.
func (s *SQLiteService) Search(ctx context.Context, term string, filters []string) (grid.Rows, error) {
	query, args := buildSearch(term, filters)

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("searching assets: %w", err)
	}
	defer rows.Close()

	var out grid.Rows
	dest := make([]any, len(AssetColumns)+1)
	vals := make([]string, len(AssetColumns))
	for rows.Next() {
		var id int64
		dest[0] = &id
		for i := range vals {
			dest[i+1] = &vals[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("reading asset row: %w", err)
		}
		fields := make(map[string]string, len(AssetColumns))
		for i, c := range AssetColumns {
			fields[c] = vals[i]
		}
		out = append(out, &grid.Row{ID: grid.RowID(id), Fields: fields})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading asset rows: %w", err)
	}
	return out, nil
}

// buildSearch assembles the search statement. Column names only come from
// AssetColumns; values are always bound.
func buildSearch(term string, filters []string) (string, []any) {
	var (
		where []string
		args  []any
	)

	if term = strings.TrimSpace(term); term != "" {
		like := "%" + escapeLike(term) + "%"
		ors := make([]string, 0, len(searchableColumns))
		for _, c := range searchableColumns {
			ors = append(ors, c+` LIKE ? ESCAPE '\'`)
			args = append(args, like)
		}
		where = append(where, "("+strings.Join(ors, " OR ")+")")
	}

	for _, g := range GroupFilters(filters) {
		marks := strings.TrimSuffix(strings.Repeat("?, ", len(g.Values)), ", ")
		where = append(where, g.Key+" IN ("+marks+")")
		for _, v := range g.Values {
			args = append(args, v)
		}
	}

	q := "SELECT " + selectList + " FROM " + assetTable
	if len(where) > 0 {
		q += " WHERE " + strings.Join(where, " AND ")
	}
	return q + " ORDER BY id", args
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string { return likeEscaper.Replace(s) }

// ── Writes ──────────────────────────────────────────────────────────────────

// Update writes one field. Unknown keys are rejected before reaching SQL.
func (s *SQLiteService) Update(ctx context.Context, id grid.RowID, key, value string) error {
	if !IsColumn(key) {
		return fmt.Errorf("updating %q: %w", key, ErrUnknownColumn)
	}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	res, err := s.db.ExecContext(ctx, "UPDATE "+assetTable+" SET "+key+" = ? WHERE id = ?", value, int64(id))
	if err != nil {
		return fmt.Errorf("updating asset %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating asset %d: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("updating asset %d: %w", id, ErrNotFound)
	}
	return nil
}

// Insert appends rows in one transaction and returns how many were written.
// Row identifiers are assigned by the database; unknown fields are ignored.
func (s *SQLiteService) Insert(ctx context.Context, rows []map[string]string) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("starting import: %w", err)
	}
	defer tx.Rollback()

	marks := strings.TrimSuffix(strings.Repeat("?, ", len(AssetColumns)), ", ")
	stmt, err := tx.PrepareContext(ctx,
		"INSERT INTO "+assetTable+" ("+strings.Join(AssetColumns, ", ")+") VALUES ("+marks+")")
	if err != nil {
		return 0, fmt.Errorf("preparing import: %w", err)
	}
	defer stmt.Close()

	args := make([]any, len(AssetColumns))
	for i, r := range rows {
		for j, c := range AssetColumns {
			args[j] = r[c]
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return 0, fmt.Errorf("importing row %d: %w", i+1, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing import: %w", err)
	}
	return len(rows), nil
}

// ── Locations ───────────────────────────────────────────────────────────────

// Location is an entry of the location catalogue.
type Location struct {
	ID   int64
	Name string
}

// Locations lists the catalogue by name.
func (s *SQLiteService) Locations(ctx context.Context) ([]Location, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id, name FROM "+locationTable+" ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("listing locations: %w", err)
	}
	defer rows.Close()

	var out []Location
	for rows.Next() {
		var l Location
		if err := rows.Scan(&l.ID, &l.Name); err != nil {
			return nil, fmt.Errorf("reading location: %w", err)
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

// AddLocation adds a name to the catalogue.
func (s *SQLiteService) AddLocation(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errors.New("location name is required")
	}
	var exists int
	err := s.db.QueryRowContext(ctx, "SELECT 1 FROM "+locationTable+" WHERE name = ?", name).Scan(&exists)
	switch {
	case err == nil:
		return fmt.Errorf("location %q: %w", name, ErrDuplicate)
	case !errors.Is(err, sql.ErrNoRows):
		return fmt.Errorf("checking location: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, "INSERT INTO "+locationTable+" (name) VALUES (?)", name); err != nil {
		return fmt.Errorf("adding location: %w", err)
	}
	return nil
}

// DeleteLocation removes a catalogue entry by id.
func (s *SQLiteService) DeleteLocation(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM "+locationTable+" WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting location: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("location %d: %w", id, ErrNotFound)
	}
	return nil
}
