package ingest

import (
	"regexp"
	"strconv"
	"strings"

	"assetlens/domain/table"
)

// imageCellSeparator splits a multi-image cell on runs of newlines and
// commas, so consecutive separators never produce empty candidates.
var imageCellSeparator = regexp.MustCompile(`[\n,]+`)

// NormalizeValue converts one raw cell value according to the column's
// inferred Kind. It never fails: unparseable numbers become 0, missing
// values become the Kind's zero representation, and rows are never dropped
// over a single bad cell.
func NormalizeValue(raw string, kind table.Kind) interface{} {
	switch kind {
	case table.KindNumber:
		return normalizeNumber(raw)
	case table.KindImage:
		return normalizeImageCell(raw)
	default:
		// Date and String pass through; downstream formats date strings.
		return raw
	}
}

// normalizeNumber strips formatting noise and parses the remainder as a
// float. Empty-after-strip and unparseable both degrade to 0.
func normalizeNumber(raw string) float64 {
	cleaned := stripNumericNoise(raw)
	if cleaned == "" {
		return 0
	}
	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}
	return value
}

// normalizeImageCell splits a cell that may hold several image links,
// rewrites each through the Drive URL transformer, and re-joins the
// survivors with a single comma. A cell can resolve to zero, one, or many
// images.
func normalizeImageCell(raw string) string {
	parts := imageCellSeparator.Split(raw, -1)
	urls := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed == "" {
			continue
		}
		if transformed := TransformImageURL(trimmed); transformed != "" {
			urls = append(urls, transformed)
		}
	}
	return strings.Join(urls, ",")
}

// NormalizeRow builds a TypedRow from a raw row against the fixed schema.
// Every column in the schema appears in the result; a missing raw value
// yields "" (or 0 for Number), never an absent key.
func NormalizeRow(raw table.RawRow, columns []table.Column) table.TypedRow {
	typed := make(table.TypedRow, len(columns))
	for _, col := range columns {
		typed[col.Name] = NormalizeValue(raw[col.Name], col.Kind)
	}
	return typed
}
