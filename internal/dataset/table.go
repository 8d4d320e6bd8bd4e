package dataset

import (
	"github.com/google/uuid"

	"carsearch/pkg/contracts/domain"
)

// Table is the immutable canonical listing table produced by Load. Each load
// gets a unique snapshot ID so log lines and cache diagnostics can tell
// reloads apart.
type Table struct {
	id   string
	rows []domain.Listing
}

func newTable(rows []domain.Listing) *Table {
	return &Table{
		id:   uuid.NewString(),
		rows: rows,
	}
}

// ID returns the snapshot identifier assigned at load time
func (t *Table) ID() string {
	return t.id
}

// Len returns the number of canonical rows
func (t *Table) Len() int {
	return len(t.rows)
}

// Rows returns a copy of the canonical rows. Callers own the returned slice;
// the table itself is never mutated after load.
func (t *Table) Rows() []domain.Listing {
	out := make([]domain.Listing, len(t.rows))
	copy(out, t.rows)
	return out
}
