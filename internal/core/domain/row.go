package domain

import (
	"time"

	"github.com/google/uuid"
)

// Row is one parsed record: cell values keyed by column name. Column order
// lives in the owning Dataset's Headers; a missing key reads as absent.
type Row map[string]CellValue

// Cell returns the value for a column, Absent() when the row has no entry
func (r Row) Cell(column string) CellValue {
	if v, ok := r[column]; ok {
		return v
	}
	return Absent()
}

// Dataset is the immutable snapshot produced by a single parse: rows,
// ordered headers, and per-column metadata. A new parse produces an entirely
// new snapshot; nothing here is cached or mutated across calls.
type Dataset struct {
	ID          uuid.UUID        `json:"id"`
	SourceName  string           `json:"source_name"`
	Headers     []string         `json:"headers"`
	Rows        []Row            `json:"rows"`
	Columns     []ColumnMetadata `json:"columns"`
	RowCount    int              `json:"row_count"`
	SkippedRows int              `json:"skipped_rows"`
	ParseErrors []string         `json:"parse_errors,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
}

// Column looks up metadata by column name
func (d *Dataset) Column(name string) (*ColumnMetadata, bool) {
	for i := range d.Columns {
		if d.Columns[i].Name == name {
			return &d.Columns[i], true
		}
	}
	return nil, false
}
