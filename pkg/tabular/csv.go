package tabular

import (
	"encoding/csv"
	"io"
)

// WriteCSV writes the header labels followed by each row's cell text, in the
// table's current sort order.
func WriteCSV(w io.Writer, view TableView) error {
	cw := csv.NewWriter(w)

	header := make([]string, len(view.Headers))
	for i, h := range view.Headers {
		header[i] = h.Label
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, r := range view.Rows {
		record := make([]string, len(r.Cells))
		for i, c := range r.Cells {
			record[i] = c.Text()
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
