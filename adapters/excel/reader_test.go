package excel

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"assetlens/domain/table"

	"github.com/stretchr/testify/assert"
	"github.com/xuri/excelize/v2"
)

func TestFetchCSVFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inventory.csv")
	content := "Name,Value,Photo\ndesk,\"2,500 ฿\",http://x.test/a.png\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	reader := NewReader(path)
	ds, err := reader.Fetch(context.Background())

	assert.NoError(t, err)
	assert.Len(t, ds.Rows, 1)
	assert.Equal(t, table.KindNumber, ds.Columns[1].Kind)
	assert.Equal(t, 2500.0, ds.Rows[0]["Value"])
	assert.Equal(t, path, ds.SourceRef)
}

func TestFetchExcelFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inventory.xlsx")

	f := excelize.NewFile()
	rows := [][]interface{}{
		{"Name", "Value"},
		{"desk", "1500"},
		{"chair", "250"},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatal(err)
		}
		if err := f.SetSheetRow("Sheet1", cell, &row); err != nil {
			t.Fatal(err)
		}
	}
	if err := f.SaveAs(path); err != nil {
		t.Fatal(err)
	}
	f.Close()

	reader := NewReader(path)
	ds, err := reader.Fetch(context.Background())

	assert.NoError(t, err)
	assert.Len(t, ds.Rows, 2)
	assert.Equal(t, table.KindNumber, ds.Columns[1].Kind)
	assert.Equal(t, 1500.0, ds.Rows[0]["Value"])
}

func TestFetchMissingFile(t *testing.T) {
	reader := NewReader("/nonexistent/inventory.xlsx")
	_, err := reader.Fetch(context.Background())
	assert.Error(t, err)
}
