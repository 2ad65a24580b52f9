// Package tabular builds sortable, threshold-highlighted tables from rows of
// JSON data. Building is pure: BuildTable returns a Table model whose header,
// rows and cells carry their computed classes and content. The HTML, XLSX
// and CSV writers in this package materialize that model.
package tabular

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
)

var (
	// ErrEmptyDataset is returned when there is no first row to infer the
	// column set from.
	ErrEmptyDataset = errors.New("tabular: empty dataset")
	// ErrUnknownColumn is returned when sorting by a column with no header.
	ErrUnknownColumn = errors.New("tabular: unknown column")
)

// Header is one header cell.
type Header struct {
	Column string `json:"column"`
	Label  string `json:"label"`
	ID     string `json:"id"`
	Class  string `json:"class,omitempty"`
}

// BodyRow is one rendered data row.
type BodyRow struct {
	Class  string `json:"class"`
	Cells  []Cell `json:"cells"`
	source Row
}

// Source returns the data row this body row was rendered from.
func (r BodyRow) Source() Row { return r.source }

// TableView is an immutable snapshot of a table, safe to hand to writers.
type TableView struct {
	ID        string    `json:"id"`
	Target    string    `json:"target"`
	Headers   []Header  `json:"headers"`
	Rows      []BodyRow `json:"rows"`
	SortState SortState `json:"sortState"`
}

// Table is the live render result. Its sort state lives as long as the
// table and is replaced only by building a new table.
type Table struct {
	mu      sync.RWMutex
	id      string
	opts    Options
	headers []Header
	rows    []BodyRow
	state   *SortState
}

// BuildTable computes the table model for data.
func BuildTable(data []Row, opts *Options) (*Table, error) {
	if len(data) == 0 {
		return nil, ErrEmptyDataset
	}
	o := WithDefaults(opts)

	columns, labels := headerLabels(o.displayColumns(data[0]), o.Columns)

	t := &Table{
		id:      uuid.NewString(),
		opts:    o,
		headers: make([]Header, len(columns)),
		rows:    make([]BodyRow, len(data)),
		state:   NewSortState(),
	}
	for i, col := range columns {
		t.headers[i] = Header{
			Column: col,
			Label:  labels[i],
			ID:     HeaderIDPrefix + col,
		}
	}
	for i, row := range data {
		br := BodyRow{
			Class:  ClassifyRow(row, o),
			Cells:  make([]Cell, len(columns)),
			source: row,
		}
		for j, col := range columns {
			br.Cells[j] = RenderCell(row, col, labels[j], o)
		}
		t.rows[i] = br
	}
	return t, nil
}

// headerLabels pairs display columns with configured labels by position.
// Columns without a label use their key; a label starting with "_" drops the
// column it is paired with.
func headerLabels(columns, configured []string) ([]string, []string) {
	if len(configured) == 0 {
		return columns, append([]string(nil), columns...)
	}
	var cols, labels []string
	for i, col := range columns {
		label := col
		if i < len(configured) {
			label = configured[i]
		}
		if strings.HasPrefix(label, "_") {
			continue
		}
		cols = append(cols, col)
		labels = append(labels, label)
	}
	return cols, labels
}

func (t *Table) ID() string { return t.id }

// Target is the selector of the container the table belongs to.
func (t *Table) Target() string { return t.opts.TargetTableElement }

// Options returns the defaulted options the table was built with.
func (t *Table) Options() Options { return t.opts }

// Columns returns the display column keys in header order.
func (t *Table) Columns() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	cols := make([]string, len(t.headers))
	for i, h := range t.headers {
		cols[i] = h.Column
	}
	return cols
}

// Click sorts the rows by column as a click on its header would, toggling
// the sort state and updating the header classes.
func (t *Table) Click(column string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	idx := -1
	for i, h := range t.headers {
		if h.Column == column {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("%w: %q", ErrUnknownColumn, column)
	}

	for i := range t.headers {
		t.headers[i].Class = HeaderClass
	}
	t.headers[idx].Class = sortRows(t.rows, column, t.state)
	return nil
}

// ClickHeader resolves a header id such as "_headerCensus" and clicks it.
func (t *Table) ClickHeader(id string) error {
	if !strings.HasPrefix(id, HeaderIDPrefix) {
		return fmt.Errorf("%w: header %q", ErrUnknownColumn, id)
	}
	return t.Click(strings.TrimPrefix(id, HeaderIDPrefix))
}

// SortAscending reports the current sort flag.
func (t *Table) SortAscending() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.state.Ascending
}

// View returns a copy of the table's current state.
func (t *Table) View() TableView {
	t.mu.RLock()
	defer t.mu.RUnlock()
	v := TableView{
		ID:        t.id,
		Target:    t.opts.TargetTableElement,
		Headers:   append([]Header(nil), t.headers...),
		Rows:      make([]BodyRow, len(t.rows)),
		SortState: *t.state,
	}
	for i, r := range t.rows {
		r.Cells = append([]Cell(nil), r.Cells...)
		v.Rows[i] = r
	}
	return v
}
