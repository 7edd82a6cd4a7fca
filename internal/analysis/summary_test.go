package analysis

import (
	"testing"

	"assetlens/domain/table"
	"assetlens/internal/ingest"

	"github.com/stretchr/testify/assert"
)

func buildFixture(t *testing.T) *table.Dataset {
	t.Helper()
	blob := "รายการ,มูลค่า,อายุ,สภาพ\n" +
		"โต๊ะ,100,1,ใช้งานได้\n" +
		"เก้าอี้,200,2,ชำรุด\n" +
		"ตู้,300,3,ใช้งานได้\n"
	return ingest.Build(blob)
}

func TestNumericSummaries(t *testing.T) {
	ds := buildFixture(t)

	summaries := NumericSummaries(ds)
	assert.Len(t, summaries, 2)

	value := summaries[0]
	assert.Equal(t, "มูลค่า", value.Column)
	assert.Equal(t, 3, value.Count)
	assert.Equal(t, 100.0, value.Min)
	assert.Equal(t, 300.0, value.Max)
	assert.Equal(t, 200.0, value.Mean)
	assert.Equal(t, 200.0, value.Median)
	assert.Equal(t, 600.0, value.Sum)
}

func TestNumericCorrelations(t *testing.T) {
	ds := buildFixture(t)

	correlations := NumericCorrelations(ds)
	assert.Len(t, correlations, 1)
	assert.Equal(t, "มูลค่า", correlations[0].ColumnA)
	assert.Equal(t, "อายุ", correlations[0].ColumnB)
	// Perfectly linear columns.
	assert.InDelta(t, 1.0, correlations[0].Pearson, 1e-9)
}

func TestCountValues(t *testing.T) {
	ds := buildFixture(t)

	breakdown := CountValues(ds, "สภาพ")
	assert.Equal(t, []ValueCount{
		{Value: "ใช้งานได้", Count: 2},
		{Value: "ชำรุด", Count: 1},
	}, breakdown)
}

func TestBuildChatContext(t *testing.T) {
	ds := buildFixture(t)

	ctx := BuildChatContext(ds)
	assert.Equal(t, 3, ctx.RowCount)
	assert.Equal(t, "สภาพ", ctx.ConditionColumn)
	assert.Len(t, ctx.ConditionBreakdown, 2)
	assert.Len(t, ctx.Sample, 3)
}

func TestSummarizeCapsSample(t *testing.T) {
	blob := "Name,Value\n"
	for i := 0; i < 40; i++ {
		blob += "item,5\n"
	}
	ds := ingest.Build(blob)

	summary := Summarize(ds)
	assert.Equal(t, 40, summary.RowCount)
	assert.Len(t, summary.Sample, SummarySampleCap)
}

func TestMissingRate(t *testing.T) {
	ds := ingest.Build("Name,Value\na,1\n,\n")
	// Row 2 has both cells missing: 2 of 4 cells.
	assert.InDelta(t, 0.5, MissingRate(ds), 1e-9)
}
