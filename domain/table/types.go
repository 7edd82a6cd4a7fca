package table

import (
	"time"

	"assetlens/domain/core"
)

// Kind is the inferred semantic type of a column.
type Kind string

const (
	KindNumber Kind = "number"
	KindDate   Kind = "date"
	KindImage  Kind = "image"
	KindString Kind = "string"
)

// Column describes a single column of the inventory sheet: its header name
// and the Kind inferred once from the leading sample of rows. Descriptors
// are never mutated after inference, even when later rows would imply a
// different Kind.
type Column struct {
	Name string `json:"name"`
	Kind Kind   `json:"kind"`
}

// RawRow maps column name to the untyped cell text exactly as tokenized.
// Missing cells are present as empty strings, never absent keys.
type RawRow map[string]string

// TypedRow maps column name to the normalized value for that column's Kind:
// float64 for Number, string for Date/String, and a comma-joined list of
// transformed image URLs for Image.
type TypedRow map[string]interface{}

// Dataset is the full typed table handed to every downstream consumer.
// It is constructed once per refresh, treated as immutable by readers, and
// replaced wholesale on the next refresh.
type Dataset struct {
	Columns   []Column   `json:"columns"`
	Rows      []TypedRow `json:"rows"`
	FetchedAt time.Time  `json:"fetched_at"`
	SourceRef string     `json:"source_ref,omitempty"`
}

// Empty returns the soft-fallback dataset used for degenerate input.
func Empty() *Dataset {
	return &Dataset{
		Columns:   []Column{},
		Rows:      []TypedRow{},
		FetchedAt: time.Now(),
	}
}

// IsEmpty reports whether the dataset holds no columns and no rows.
func (d *Dataset) IsEmpty() bool {
	return len(d.Columns) == 0 && len(d.Rows) == 0
}

// ColumnNames returns header names in column order.
func (d *Dataset) ColumnNames() []string {
	names := make([]string, len(d.Columns))
	for i, col := range d.Columns {
		names[i] = col.Name
	}
	return names
}

// ColumnsOfKind returns the columns matching the given Kind, in order.
func (d *Dataset) ColumnsOfKind(kind Kind) []Column {
	var cols []Column
	for _, col := range d.Columns {
		if col.Kind == kind {
			cols = append(cols, col)
		}
	}
	return cols
}

// Column looks up a column descriptor by name.
func (d *Dataset) Column(name string) (Column, bool) {
	for _, col := range d.Columns {
		if col.Name == name {
			return col, true
		}
	}
	return Column{}, false
}

// NumberAt returns the numeric value at (row, column), or 0 when the column
// is not Number-typed or the value is missing.
func (d *Dataset) NumberAt(row TypedRow, column string) float64 {
	if v, ok := row[column].(float64); ok {
		return v
	}
	return 0
}

// StringAt returns the string value at (row, column), or "" when absent.
func (d *Dataset) StringAt(row TypedRow, column string) string {
	if v, ok := row[column].(string); ok {
		return v
	}
	return ""
}

// Snapshot captures the metadata of one completed refresh for persistence
// and auditing. The row payload itself is not persisted.
type Snapshot struct {
	ID          core.SnapshotID `json:"id"`
	FetchedAt   time.Time       `json:"fetched_at"`
	SourceRef   string          `json:"source_ref"`
	RowCount    int             `json:"row_count"`
	ColumnCount int             `json:"column_count"`
	Columns     []Column        `json:"columns"`
	ContentHash string          `json:"content_hash"`
	CreatedAt   time.Time       `json:"created_at"`
}

// NewSnapshot builds a snapshot record from a freshly constructed dataset.
func NewSnapshot(d *Dataset, contentHash string) *Snapshot {
	return &Snapshot{
		ID:          core.SnapshotID(core.NewID()),
		FetchedAt:   d.FetchedAt,
		SourceRef:   d.SourceRef,
		RowCount:    len(d.Rows),
		ColumnCount: len(d.Columns),
		Columns:     d.Columns,
		ContentHash: contentHash,
		CreatedAt:   time.Now(),
	}
}
