// Package analysis builds the bounded payloads handed to the AI
// collaborators and the dashboard KPI endpoints. Payloads carry headers,
// counts, aggregates, and capped row samples — never the full dataset.
package analysis

import (
	"sort"

	"assetlens/domain/table"
	"assetlens/internal/ingest"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"
)

// Default caps for payloads sent to the AI collaborators.
const (
	SummarySampleCap = 15
	ChatSampleCap    = 10
)

// NumericSummary holds aggregate statistics for one Number column.
type NumericSummary struct {
	Column string  `json:"column"`
	Count  int     `json:"count"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	Sum    float64 `json:"sum"`
	StdDev float64 `json:"std_dev"`
}

// Correlation is the Pearson correlation between two numeric columns.
type Correlation struct {
	ColumnA string  `json:"column_a"`
	ColumnB string  `json:"column_b"`
	Pearson float64 `json:"pearson"`
}

// ValueCount is one entry of a categorical breakdown.
type ValueCount struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// DatasetSummary is the payload shape for the AI summarization call.
type DatasetSummary struct {
	Columns      []table.Column   `json:"columns"`
	RowCount     int              `json:"row_count"`
	MissingRate  float64          `json:"missing_rate"`
	Numeric      []NumericSummary `json:"numeric"`
	Correlations []Correlation    `json:"correlations"`
	Sample       []table.TypedRow `json:"sample"`
}

// ChatContext is the payload shape for the AI chat call: headers, the
// condition-column breakdown, row count, and a small sample.
type ChatContext struct {
	Columns            []table.Column   `json:"columns"`
	RowCount           int              `json:"row_count"`
	ConditionColumn    string           `json:"condition_column,omitempty"`
	ConditionBreakdown []ValueCount     `json:"condition_breakdown,omitempty"`
	Sample             []table.TypedRow `json:"sample"`
}

// Summarize computes the full summary payload for a dataset.
func Summarize(ds *table.Dataset) *DatasetSummary {
	return &DatasetSummary{
		Columns:      ds.Columns,
		RowCount:     len(ds.Rows),
		MissingRate:  MissingRate(ds),
		Numeric:      NumericSummaries(ds),
		Correlations: NumericCorrelations(ds),
		Sample:       SampleRows(ds, SummarySampleCap),
	}
}

// BuildChatContext computes the bounded context payload for a chat turn.
func BuildChatContext(ds *table.Dataset) *ChatContext {
	ctx := &ChatContext{
		Columns:  ds.Columns,
		RowCount: len(ds.Rows),
		Sample:   SampleRows(ds, ChatSampleCap),
	}
	if cond, ok := ingest.FindColumn(ds.Columns, ingest.RoleCondition); ok {
		ctx.ConditionColumn = cond.Name
		ctx.ConditionBreakdown = CountValues(ds, cond.Name)
	}
	return ctx
}

// NumericSummaries computes aggregates for every Number column.
func NumericSummaries(ds *table.Dataset) []NumericSummary {
	summaries := make([]NumericSummary, 0)
	for _, col := range ds.ColumnsOfKind(table.KindNumber) {
		values := numericColumn(ds, col.Name)
		if len(values) == 0 {
			summaries = append(summaries, NumericSummary{Column: col.Name})
			continue
		}

		min, _ := stats.Min(values)
		max, _ := stats.Max(values)
		mean, _ := stats.Mean(values)
		median, _ := stats.Median(values)
		sum, _ := stats.Sum(values)
		stdDev, _ := stats.StandardDeviation(values)

		summaries = append(summaries, NumericSummary{
			Column: col.Name,
			Count:  len(values),
			Min:    min,
			Max:    max,
			Mean:   mean,
			Median: median,
			Sum:    sum,
			StdDev: stdDev,
		})
	}
	return summaries
}

// NumericCorrelations computes pairwise Pearson correlations between all
// Number columns, in column order.
func NumericCorrelations(ds *table.Dataset) []Correlation {
	numeric := ds.ColumnsOfKind(table.KindNumber)
	correlations := make([]Correlation, 0)
	for i := 0; i < len(numeric); i++ {
		for j := i + 1; j < len(numeric); j++ {
			a := numericColumn(ds, numeric[i].Name)
			b := numericColumn(ds, numeric[j].Name)
			if len(a) < 2 || len(a) != len(b) {
				continue
			}
			correlations = append(correlations, Correlation{
				ColumnA: numeric[i].Name,
				ColumnB: numeric[j].Name,
				Pearson: stat.Correlation(a, b, nil),
			})
		}
	}
	return correlations
}

// CountValues builds a value-count breakdown for one column, most frequent
// first, ties broken by value for determinism.
func CountValues(ds *table.Dataset, column string) []ValueCount {
	counts := make(map[string]int)
	for _, row := range ds.Rows {
		counts[ds.StringAt(row, column)]++
	}

	breakdown := make([]ValueCount, 0, len(counts))
	for value, count := range counts {
		breakdown = append(breakdown, ValueCount{Value: value, Count: count})
	}
	sort.Slice(breakdown, func(i, j int) bool {
		if breakdown[i].Count != breakdown[j].Count {
			return breakdown[i].Count > breakdown[j].Count
		}
		return breakdown[i].Value < breakdown[j].Value
	})
	return breakdown
}

// SampleRows returns at most max leading rows.
func SampleRows(ds *table.Dataset, max int) []table.TypedRow {
	if len(ds.Rows) <= max {
		return ds.Rows
	}
	return ds.Rows[:max]
}

// MissingRate is the share of cells holding the zero value for their Kind.
func MissingRate(ds *table.Dataset) float64 {
	if len(ds.Rows) == 0 || len(ds.Columns) == 0 {
		return 0
	}
	missing := 0
	for _, row := range ds.Rows {
		for _, col := range ds.Columns {
			switch col.Kind {
			case table.KindNumber:
				if ds.NumberAt(row, col.Name) == 0 {
					missing++
				}
			default:
				if ds.StringAt(row, col.Name) == "" {
					missing++
				}
			}
		}
	}
	return float64(missing) / float64(len(ds.Rows)*len(ds.Columns))
}

// numericColumn extracts the column's float values in row order.
func numericColumn(ds *table.Dataset, column string) []float64 {
	values := make([]float64, 0, len(ds.Rows))
	for _, row := range ds.Rows {
		values = append(values, ds.NumberAt(row, column))
	}
	return values
}
