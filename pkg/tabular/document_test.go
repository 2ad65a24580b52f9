package tabular

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubFetcher struct {
	payloads map[string]string
	calls    []string
}

func (s *stubFetcher) Fetch(_ context.Context, path string) ([]Row, error) {
	s.calls = append(s.calls, path)
	body, ok := s.payloads[path]
	if !ok {
		return nil, errors.New("404 not found")
	}
	return DecodeRows(strings.NewReader(body))
}

func TestRenderer_CreateTable(t *testing.T) {
	fetcher := &stubFetcher{payloads: map[string]string{"units.json": censusJSON}}
	doc := NewDocument()
	r := NewRenderer(doc, fetcher)

	opts := censusOptions()
	opts.TargetTableElement = "#census"
	opts.SortCol = "Census"

	table, err := r.CreateTable(context.Background(), "units.json", opts)
	require.NoError(t, err)
	assert.Equal(t, []string{"units.json"}, fetcher.calls)

	mounted, err := doc.Table("#census")
	require.NoError(t, err)
	assert.Same(t, table, mounted)

	// the initial sort leaves the table as if Census was clicked once.
	view := table.View()
	assert.Equal(t, []string{"ICU", "ER"}, names(view))
	assert.Equal(t, AscHeaderClass, view.Headers[2].Class)
	assert.False(t, view.SortState.Ascending)

	// options passed in are not mutated by defaulting.
	assert.Equal(t, "", opts.LinkPrefix)
}

func TestRenderer_CreateTableDefaultsTarget(t *testing.T) {
	fetcher := &stubFetcher{payloads: map[string]string{"u": censusJSON}}
	doc := NewDocument()

	_, err := NewRenderer(doc, fetcher).CreateTable(context.Background(), "u", nil)
	require.NoError(t, err)

	table, err := doc.Table(DefaultTarget)
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "Name", "Capacity", "Census", "highAlarm", "lowAlarm"}, table.Columns())
}

func TestRenderer_CreateTableReplaces(t *testing.T) {
	fetcher := &stubFetcher{payloads: map[string]string{
		"first":  censusJSON,
		"second": `[{"Name":"NICU","Census":3}]`,
	}}
	doc := NewDocument()
	r := NewRenderer(doc, fetcher)
	opts := &Options{TargetTableElement: "#t"}

	first, err := r.CreateTable(context.Background(), "first", opts)
	require.NoError(t, err)
	second, err := r.CreateTable(context.Background(), "second", opts)
	require.NoError(t, err)
	assert.NotEqual(t, first.ID(), second.ID())

	mounted, err := doc.Table("#t")
	require.NoError(t, err)
	view := mounted.View()
	require.Len(t, view.Rows, 1)
	assert.Equal(t, []string{"NICU"}, names(view))
}

func TestRenderer_FetchFailure(t *testing.T) {
	doc := NewDocument()
	r := NewRenderer(doc, &stubFetcher{})

	table, err := r.CreateTable(context.Background(), "missing", &Options{TargetTableElement: "#t"})
	require.Error(t, err)
	assert.Nil(t, table)
	assert.Contains(t, err.Error(), "404 not found")

	_, err = doc.Table("#t")
	assert.ErrorIs(t, err, ErrNotMounted)
}

func TestRenderer_EmptyDataset(t *testing.T) {
	doc := NewDocument()
	r := NewRenderer(doc, &stubFetcher{payloads: map[string]string{"empty": `[]`}})

	_, err := r.CreateTable(context.Background(), "empty", nil)
	assert.ErrorIs(t, err, ErrEmptyDataset)
	_, err = doc.Table(DefaultTarget)
	assert.ErrorIs(t, err, ErrNotMounted)
}

func TestRenderer_UnknownSortColumnStillMounts(t *testing.T) {
	doc := NewDocument()
	r := NewRenderer(doc, &stubFetcher{payloads: map[string]string{"u": censusJSON}})

	opts := censusOptions()
	opts.SortCol = "highAlarm"
	table, err := r.CreateTable(context.Background(), "u", opts)
	assert.ErrorIs(t, err, ErrUnknownColumn)
	require.NotNil(t, table)

	mounted, err := doc.Table(DefaultTarget)
	require.NoError(t, err)
	assert.True(t, mounted.SortAscending())
}

func TestDocument_Text(t *testing.T) {
	doc := NewDocument()
	assert.Equal(t, "", doc.Text("#status"))
	doc.SetText("#status", "Last updated: now")
	assert.Equal(t, "Last updated: now", doc.Text("#status"))
}
