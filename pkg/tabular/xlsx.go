package tabular

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

const (
	DefaultSheetName   = "Table"
	DefaultColumnWidth = 20

	errorFillColor   = "F8D7DA"
	warningFillColor = "FFF3CD"
	headerFillColor  = "BBDEFB"
)

// XLSXOptions configures a spreadsheet export.
type XLSXOptions struct {
	SheetName   string
	Title       string // optional title row above the header
	ColumnWidth float64
	// RowFills maps row classes to fill colors; ErrorClass and WarningClass
	// have defaults.
	RowFills map[string]string
}

// StyleTemplate is the subset of cell styling the exporter uses.
type StyleTemplate struct {
	Bold      bool
	FontSize  float64
	FillColor string // hex, with or without leading '#'
	Center    bool
}

type xlsxWriter struct {
	file       *excelize.File
	styleCache map[StyleTemplate]int
}

func (x *xlsxWriter) style(tmpl StyleTemplate) (int, error) {
	if tmpl == (StyleTemplate{}) {
		return 0, nil
	}
	if id, ok := x.styleCache[tmpl]; ok {
		return id, nil
	}

	style := &excelize.Style{}
	if tmpl.Bold || tmpl.FontSize > 0 {
		style.Font = &excelize.Font{Bold: tmpl.Bold, Size: tmpl.FontSize}
	}
	if tmpl.FillColor != "" {
		style.Fill = excelize.Fill{
			Type:    "pattern",
			Color:   []string{strings.TrimPrefix(tmpl.FillColor, "#")},
			Pattern: 1,
		}
	}
	if tmpl.Center {
		style.Alignment = &excelize.Alignment{Horizontal: "center", Vertical: "center"}
	}
	id, err := x.file.NewStyle(style)
	if err != nil {
		return 0, fmt.Errorf("create style: %w", err)
	}
	x.styleCache[tmpl] = id
	return id, nil
}

// cellStyle maps a rendered cell's classes onto a spreadsheet style.
func cellStyle(rowFill string, c Cell) StyleTemplate {
	s := StyleTemplate{FillColor: rowFill}
	for _, class := range c.Classes {
		switch class {
		case LargeTextClass:
			s.Bold = true
			s.FontSize = 14
		case CenterAlignClass:
			s.Center = true
		}
	}
	return s
}

func cellValue(c Cell) interface{} {
	if f, ok := c.Value.Float(); ok {
		return f
	}
	return c.Text()
}

// WriteXLSX streams the table into a single-sheet workbook. Rows keep their
// current sort order; threshold classes become row fills.
func WriteXLSX(w io.Writer, view TableView, opts XLSXOptions) error {
	sheet := opts.SheetName
	if sheet == "" {
		sheet = DefaultSheetName
	}
	width := opts.ColumnWidth
	if width <= 0 {
		width = DefaultColumnWidth
	}
	fills := map[string]string{
		ErrorClass:   errorFillColor,
		WarningClass: warningFillColor,
	}
	for class, color := range opts.RowFills {
		fills[class] = color
	}

	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	sw, err := f.NewStreamWriter(sheet)
	if err != nil {
		return fmt.Errorf("failed to create stream writer for sheet %s: %w", sheet, err)
	}
	x := &xlsxWriter{file: f, styleCache: make(map[StyleTemplate]int)}

	if n := len(view.Headers); n > 0 {
		if err := sw.SetColWidth(1, n, width); err != nil {
			return err
		}
	}

	rowNum := 1
	if opts.Title != "" {
		styleID, err := x.style(StyleTemplate{Bold: true, FontSize: 14})
		if err != nil {
			return err
		}
		cell, _ := excelize.CoordinatesToCellName(1, rowNum)
		if err := sw.SetRow(cell, []interface{}{excelize.Cell{StyleID: styleID, Value: opts.Title}}); err != nil {
			return err
		}
		rowNum++
	}

	headerStyle, err := x.style(StyleTemplate{Bold: true, FillColor: headerFillColor, Center: true})
	if err != nil {
		return err
	}
	header := make([]interface{}, len(view.Headers))
	for i, h := range view.Headers {
		header[i] = excelize.Cell{StyleID: headerStyle, Value: h.Label}
	}
	cell, _ := excelize.CoordinatesToCellName(1, rowNum)
	if err := sw.SetRow(cell, header); err != nil {
		return err
	}
	rowNum++

	for _, r := range view.Rows {
		values := make([]interface{}, len(r.Cells))
		for i, c := range r.Cells {
			styleID, err := x.style(cellStyle(fills[r.Class], c))
			if err != nil {
				return err
			}
			values[i] = excelize.Cell{StyleID: styleID, Value: cellValue(c)}
		}
		cell, _ := excelize.CoordinatesToCellName(1, rowNum)
		if err := sw.SetRow(cell, values); err != nil {
			return err
		}
		rowNum++
	}

	if err := sw.Flush(); err != nil {
		return err
	}
	return f.Write(w)
}
