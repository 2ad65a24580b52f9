package tabular

import "strings"

const (
	CellClass        = "tableCell"
	LargeTextClass   = "largeText"
	CenterAlignClass = "centerAlign"
)

// CellKind selects how the HTML adapter materializes a cell.
type CellKind int

const (
	CellText CellKind = iota
	CellLink
	CellThreshold
)

// Cell is the computed content of one table cell.
type Cell struct {
	Column  string   `json:"column"`
	Label   string   `json:"label"`
	Value   Value    `json:"value"`
	Kind    CellKind `json:"kind"`
	Href    string   `json:"href,omitempty"`
	Title   string   `json:"title,omitempty"`
	Classes []string `json:"classes"`
}

// Text is the visible text of the cell.
func (c Cell) Text() string { return c.Value.Text() }

// Class joins the cell's classes for the class attribute.
func (c Cell) Class() string { return strings.Join(c.Classes, " ") }

// ThresholdTitle builds the tooltip for a threshold value cell, or "" when
// neither bound is set.
func ThresholdTitle(high, low Value) string {
	var parts []string
	if high.Truthy() {
		parts = append(parts, "Upper threshold: "+high.Text())
	}
	if low.Truthy() {
		parts = append(parts, "Lower threshold: "+low.Text())
	}
	return strings.Join(parts, " ")
}

// RenderCell computes the cell for column of row.
func RenderCell(row Row, column, label string, opts Options) Cell {
	c := Cell{
		Column:  column,
		Label:   label,
		Value:   row.Get(column),
		Kind:    CellText,
		Classes: []string{CellClass},
	}

	switch {
	case opts.LinkCol != "" && column == opts.LinkCol:
		c.Kind = CellLink
		c.Href = opts.LinkPrefix + c.Value.Text()
	case opts.ThresholdCols.Value != "" && column == opts.ThresholdCols.Value:
		c.Kind = CellThreshold
		c.Title = ThresholdTitle(row.Get(opts.ThresholdCols.High), row.Get(opts.ThresholdCols.Low))
		c.Classes = append(c.Classes, LargeTextClass)
	}

	if c.Value.IsNumeric() {
		c.Classes = append(c.Classes, CenterAlignClass)
	}
	return c
}

func (c Cell) IsLink() bool { return c.Kind == CellLink }

func (c Cell) IsThreshold() bool { return c.Kind == CellThreshold }
