package table

import (
	"testing"
)

func TestColumnsOfKind(t *testing.T) {
	ds := &Dataset{
		Columns: []Column{
			{Name: "a", Kind: KindNumber},
			{Name: "b", Kind: KindString},
			{Name: "c", Kind: KindNumber},
		},
	}

	numeric := ds.ColumnsOfKind(KindNumber)
	if len(numeric) != 2 || numeric[0].Name != "a" || numeric[1].Name != "c" {
		t.Errorf("unexpected numeric columns: %#v", numeric)
	}
	if got := ds.ColumnsOfKind(KindImage); len(got) != 0 {
		t.Errorf("expected no image columns, got %#v", got)
	}
}

func TestAccessorsTolerateMissingValues(t *testing.T) {
	ds := &Dataset{Columns: []Column{{Name: "v", Kind: KindNumber}}}
	row := TypedRow{"v": 3.5}

	if got := ds.NumberAt(row, "v"); got != 3.5 {
		t.Errorf("NumberAt = %v", got)
	}
	if got := ds.NumberAt(row, "missing"); got != 0 {
		t.Errorf("NumberAt missing = %v, want 0", got)
	}
	if got := ds.StringAt(row, "v"); got != "" {
		t.Errorf("StringAt on number = %q, want empty", got)
	}
}

func TestNewSnapshot(t *testing.T) {
	ds := &Dataset{
		Columns: []Column{{Name: "a", Kind: KindNumber}},
		Rows:    []TypedRow{{"a": 1.0}, {"a": 2.0}},
	}

	snapshot := NewSnapshot(ds, "abc123")
	if snapshot.RowCount != 2 || snapshot.ColumnCount != 1 {
		t.Errorf("unexpected counts: %+v", snapshot)
	}
	if snapshot.ID == "" {
		t.Error("snapshot ID not assigned")
	}
	if snapshot.ContentHash != "abc123" {
		t.Errorf("content hash = %q", snapshot.ContentHash)
	}
}

func TestEmptyDataset(t *testing.T) {
	ds := Empty()
	if !ds.IsEmpty() {
		t.Error("Empty() dataset should report IsEmpty")
	}
	if ds.Columns == nil || ds.Rows == nil {
		t.Error("Empty() must return non-nil slices for JSON serialization")
	}
}
