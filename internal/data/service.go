// Package data is the row source behind the grid: an asset inventory held in
// SQLite, searched and filtered server-side, with a TTL cache in front and
// xlsx import/export on the side.
package data

import (
	"context"
	"errors"

	"github.com/Akashdeep-Patra/tabula/internal/grid"
)

// Sentinel errors. Match with errors.Is.
var (
	ErrUnknownColumn = errors.New("unknown column")
	ErrNotFound      = errors.New("row not found")
	ErrDuplicate     = errors.New("already exists")
)

// Service defines the contract for the row store.
// The TUI depends on this interface only, which keeps it testable with an
// in-memory implementation.
type Service interface {
	// Columns returns the editable field keys in display order.
	Columns() []string

	// All returns every row ordered by identifier.
	All(ctx context.Context) (grid.Rows, error)

	// Search returns the rows matching term (across the searchable columns)
	// and every filter. Filters use the "key:value" form; values for the
	// same key are OR-ed, different keys are AND-ed.
	Search(ctx context.Context, term string, filters []string) (grid.Rows, error)

	// Update writes one field of one row.
	Update(ctx context.Context, id grid.RowID, key, value string) error

	// Path returns the backing database file.
	Path() string

	Close() error
}

// LocationStore manages the catalogue of known locations.
type LocationStore interface {
	Locations(ctx context.Context) ([]Location, error)
	AddLocation(ctx context.Context, name string) error
	DeleteLocation(ctx context.Context, id int64) error
}
