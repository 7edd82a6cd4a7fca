package ingest

import (
	"strings"
	"testing"

	"assetlens/domain/table"

	"github.com/stretchr/testify/assert"
)

func TestBuildShortInputFallback(t *testing.T) {
	for _, blob := range []string{"", "Name,Value"} {
		ds := Build(blob)
		assert.NotNil(t, ds)
		assert.Empty(t, ds.Columns, "blob=%q", blob)
		assert.Empty(t, ds.Rows, "blob=%q", blob)
	}
}

func TestBuildTypedDataset(t *testing.T) {
	blob := strings.Join([]string{
		`ลำดับ,รายการ,มูลค่า,สภาพอุปกรณ์,รูปภาพ`,
		`1,"โต๊ะทำงาน","12,500.00 ฿",ใช้งานได้,https://drive.google.com/file/d/ABCDEFGHIJKLMNOPQRSTUVWXY1234567/view`,
		`2,"เก้าอี้",980,ชำรุด,"http://a.png, http://b.png"`,
		``,
		`3,"ตู้เอกสาร","4,200",รอซ่อม,`,
	}, "\n")

	ds := Build(blob)

	assert.Len(t, ds.Columns, 5)
	assert.Equal(t, table.KindNumber, ds.Columns[0].Kind)
	assert.Equal(t, table.KindString, ds.Columns[1].Kind)
	assert.Equal(t, table.KindNumber, ds.Columns[2].Kind)
	assert.Equal(t, table.KindString, ds.Columns[3].Kind, "condition header must stay String")
	assert.Equal(t, table.KindImage, ds.Columns[4].Kind)

	// Blank line skipped: three data rows survive.
	assert.Len(t, ds.Rows, 3)

	assert.Equal(t, 12500.0, ds.Rows[0]["มูลค่า"])
	assert.Equal(t,
		"https://drive.google.com/thumbnail?id=ABCDEFGHIJKLMNOPQRSTUVWXY1234567&sz=w1000",
		ds.Rows[0]["รูปภาพ"])
	assert.Equal(t, "http://a.png,http://b.png", ds.Rows[1]["รูปภาพ"])
	assert.Equal(t, "", ds.Rows[2]["รูปภาพ"])
	assert.Equal(t, 4200.0, ds.Rows[2]["มูลค่า"])

	// Every row carries exactly the schema's key set.
	for _, row := range ds.Rows {
		assert.Len(t, row, len(ds.Columns))
		for _, col := range ds.Columns {
			_, ok := row[col.Name]
			assert.True(t, ok, "missing key %q", col.Name)
		}
	}
}

func TestBuildSchemaStability(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("Value\n")
	for i := 0; i < 20; i++ {
		sb.WriteString("100\n")
	}
	// Rows past the 20-row sample would imply String; the fixed schema
	// must keep Number and degrade these cells to 0.
	sb.WriteString("broken\n")
	sb.WriteString("also broken\n")

	ds := Build(sb.String())

	assert.Len(t, ds.Columns, 1)
	assert.Equal(t, table.KindNumber, ds.Columns[0].Kind)
	assert.Len(t, ds.Rows, 22)
	assert.Equal(t, float64(0), ds.Rows[20]["Value"])
	assert.Equal(t, float64(0), ds.Rows[21]["Value"])
}

func TestBuildCRLFInput(t *testing.T) {
	ds := Build("Name,Value\r\ndesk,10\r\nchair,20\r\n")
	assert.Len(t, ds.Rows, 2)
	assert.Equal(t, 10.0, ds.Rows[0]["Value"])
}

func TestBuildFromRecords(t *testing.T) {
	records := [][]string{
		{"Name", "Value"},
		{"desk", "1,000"},
		{"", ""},
		{"chair", "250"},
	}

	ds := BuildFromRecords(records)
	assert.Len(t, ds.Rows, 2)
	assert.Equal(t, table.KindNumber, ds.Columns[1].Kind)
	assert.Equal(t, 1000.0, ds.Rows[0]["Value"])

	assert.True(t, BuildFromRecords([][]string{{"Name"}}).IsEmpty())
	assert.True(t, BuildFromRecords(nil).IsEmpty())
}
