package ingest

import (
	"strings"
	"time"

	"assetlens/domain/table"

	"golang.org/x/sync/errgroup"
)

// Build runs the full ingestion pipeline over a raw CSV text blob:
// tokenize into header and raw rows, infer the fixed per-column schema
// from the leading sample, then normalize every row against it.
//
// Degenerate input (fewer than two lines) is not an error: it yields an
// empty dataset so callers can render an empty dashboard instead of
// failing the refresh.
func Build(text string) *table.Dataset {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	if len(lines) < 2 {
		return table.Empty()
	}

	headers := TokenizeLine(lines[0])
	rawRows := buildRawRows(headers, lines[1:])

	columns := InferColumns(headers, rawRows)
	rows := normalizeAll(rawRows, columns)

	return &table.Dataset{
		Columns:   columns,
		Rows:      rows,
		FetchedAt: time.Now(),
	}
}

// BuildFromRecords runs inference and normalization over pre-split records
// (e.g. rows read from an Excel sheet), sharing the schema path with Build.
func BuildFromRecords(records [][]string) *table.Dataset {
	if len(records) < 2 {
		return table.Empty()
	}

	headers := records[0]
	rawRows := make([]table.RawRow, 0, len(records)-1)
	for _, record := range records[1:] {
		if recordBlank(record) {
			continue
		}
		rawRows = append(rawRows, recordToRaw(headers, record))
	}

	columns := InferColumns(headers, rawRows)
	rows := normalizeAll(rawRows, columns)

	return &table.Dataset{
		Columns:   columns,
		Rows:      rows,
		FetchedAt: time.Now(),
	}
}

// buildRawRows tokenizes data lines into raw rows, skipping fully blank
// lines so they never produce spurious records.
func buildRawRows(headers []string, lines []string) []table.RawRow {
	rawRows := make([]table.RawRow, 0, len(lines))
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		rawRows = append(rawRows, recordToRaw(headers, TokenizeLine(line)))
	}
	return rawRows
}

// recordToRaw maps fields onto header names in order. Short records fill
// the remaining columns with empty strings; excess fields are dropped.
func recordToRaw(headers []string, fields []string) table.RawRow {
	raw := make(table.RawRow, len(headers))
	for i, header := range headers {
		if i < len(fields) {
			raw[header] = fields[i]
		} else {
			raw[header] = ""
		}
	}
	return raw
}

func recordBlank(record []string) bool {
	for _, field := range record {
		if strings.TrimSpace(field) != "" {
			return false
		}
	}
	return true
}

// normalizeAll converts every raw row against the fixed schema. Columns
// are independent given the read-only raw rows, so conversion runs one
// goroutine per column and the typed rows are assembled afterwards.
func normalizeAll(rawRows []table.RawRow, columns []table.Column) []table.TypedRow {
	if len(rawRows) == 0 {
		return []table.TypedRow{}
	}

	columnValues := make([][]interface{}, len(columns))
	var g errgroup.Group
	for i, col := range columns {
		g.Go(func() error {
			values := make([]interface{}, len(rawRows))
			for r, raw := range rawRows {
				values[r] = NormalizeValue(raw[col.Name], col.Kind)
			}
			columnValues[i] = values
			return nil
		})
	}
	// Normalization never fails; the group is used purely for the join.
	_ = g.Wait()

	rows := make([]table.TypedRow, len(rawRows))
	for r := range rawRows {
		typed := make(table.TypedRow, len(columns))
		for i, col := range columns {
			typed[col.Name] = columnValues[i][r]
		}
		rows[r] = typed
	}
	return rows
}
