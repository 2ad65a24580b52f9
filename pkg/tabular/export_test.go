package tabular

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWriteXLSX(t *testing.T) {
	table, err := BuildTable(censusRows(t), censusOptions())
	require.NoError(t, err)
	require.NoError(t, table.Click("Census"))
	require.NoError(t, table.Click("Census"))

	buf := new(bytes.Buffer)
	require.NoError(t, WriteXLSX(buf, table.View(), XLSXOptions{SheetName: "Census", Title: "Unit census"}))

	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Census")
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, []string{"Unit census"}, rows[0])
	assert.Equal(t, []string{"Name", "Capacity", "Census"}, rows[1])
	assert.Equal(t, []string{"ER", "20", "5"}, rows[2])
	assert.Equal(t, []string{"ICU", "10", "12"}, rows[3])

	// the ICU row breaches its threshold and carries a fill; the ER row does not.
	errorStyle, err := f.GetCellStyle("Census", "A4")
	require.NoError(t, err)
	plainStyle, err := f.GetCellStyle("Census", "A3")
	require.NoError(t, err)
	assert.NotZero(t, errorStyle)
	assert.NotEqual(t, errorStyle, plainStyle)
}

func TestWriteXLSX_Defaults(t *testing.T) {
	table, err := BuildTable([]Row{NewRow("a", 1)}, nil)
	require.NoError(t, err)

	buf := new(bytes.Buffer)
	require.NoError(t, WriteXLSX(buf, table.View(), XLSXOptions{}))

	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{DefaultSheetName}, f.GetSheetList())
	rows, err := f.GetRows(DefaultSheetName)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"a"}, {"1"}}, rows)
}

func TestWriteCSV(t *testing.T) {
	rows := []Row{
		NewRow("Name", "ICU, north", "Census", 12),
		NewRow("Name", "ER", "Census", nil),
	}
	table, err := BuildTable(rows, &Options{Columns: []string{"Unit", "Census"}})
	require.NoError(t, err)

	buf := new(bytes.Buffer)
	require.NoError(t, WriteCSV(buf, table.View()))
	assert.Equal(t, "Unit,Census\n\"ICU, north\",12\nER,\n", buf.String())
}
