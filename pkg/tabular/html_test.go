package tabular

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteHTML(t *testing.T) {
	table, err := BuildTable(censusRows(t), censusOptions())
	require.NoError(t, err)
	require.NoError(t, table.Click("Census"))

	var buf bytes.Buffer
	err = WriteHTML(&buf, table.View(), HTMLOptions{
		SortURL: func(column string) string { return "/sort/" + column },
	})
	require.NoError(t, err)
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, `<table id="table-`+table.ID()+`"`))
	assert.Contains(t, out, `<th id="_headerName" class="header" data-sort-url="/sort/Name">Name</th>`)
	assert.Contains(t, out, `<th id="_headerCensus" class="asc" data-sort-url="/sort/Census">Census</th>`)
	assert.NotContains(t, out, "highAlarm")
	assert.NotContains(t, out, "_headerid")
	assert.Contains(t, out, `<tr class="errorColor">`)
	assert.Contains(t, out, `<span title="Upper threshold: 10 Lower threshold: 2">12</span>`)
	assert.Contains(t, out, `<td class="tableCell largeText centerAlign" data-th="Census">`)
	assert.Equal(t, 2, strings.Count(out, "<tr class="))

	// ICU (12) is rendered before ER (5) after one click.
	assert.Less(t, strings.Index(out, ">ICU<"), strings.Index(out, ">ER<"))
}

func TestWriteHTML_EscapesAndLinks(t *testing.T) {
	rows := []Row{NewRow("_Link", "example.org/a", "Name", "<b>Ward</b>")}
	table, err := BuildTable(rows, &Options{LinkCol: "_Link"})
	require.NoError(t, err)

	out, err := HTML(table.View(), HTMLOptions{})
	require.NoError(t, err)

	assert.Contains(t, string(out), `<a href="http://example.org/a">example.org/a</a>`)
	assert.Contains(t, string(out), "&lt;b&gt;Ward&lt;/b&gt;")
	assert.NotContains(t, string(out), "data-sort-url")
	assert.Contains(t, string(out), `<th id="_header_Link">_Link</th>`)
}

func TestWriteHTML_ValueCellWithoutThresholds(t *testing.T) {
	rows := []Row{NewRow("Census", 4)}
	table, err := BuildTable(rows, &Options{ThresholdCols: ThresholdColumns{Value: "Census"}})
	require.NoError(t, err)

	out, err := HTML(table.View(), HTMLOptions{})
	require.NoError(t, err)
	assert.Contains(t, string(out), "<span>4</span>")
}
