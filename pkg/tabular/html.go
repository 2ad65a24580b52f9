package tabular

import (
	"html/template"
	"io"
	"strings"
)

// HTMLOptions tunes the HTML writer.
type HTMLOptions struct {
	// SortURL, when set, is emitted on each header as data-sort-url so a page
	// script can post header clicks back to the server.
	SortURL func(column string) string
}

var tableTemplate = template.Must(template.New("table").Parse(
	`<table id="table-{{.View.ID}}" data-target="{{.View.Target}}">` +
		`<thead><tr>` +
		`{{range .View.Headers}}<th id="{{.ID}}"{{if .Class}} class="{{.Class}}"{{end}}{{with $.SortURL .Column}} data-sort-url="{{.}}"{{end}}>{{.Label}}</th>{{end}}` +
		`</tr></thead>` +
		`<tbody>` +
		`{{range .View.Rows}}<tr class="{{.Class}}">` +
		`{{range .Cells}}<td class="{{.Class}}" data-th="{{.Label}}">` +
		`{{if .IsLink}}<a href="{{.Href}}">{{.Text}}</a>` +
		`{{else if .IsThreshold}}<span{{if .Title}} title="{{.Title}}"{{end}}>{{.Text}}</span>` +
		`{{else}}{{.Text}}{{end}}` +
		`</td>{{end}}` +
		`</tr>{{end}}` +
		`</tbody></table>`))

type tableData struct {
	View    TableView
	sortURL func(string) string
}

func (d tableData) SortURL(column string) string {
	if d.sortURL == nil {
		return ""
	}
	return d.sortURL(column)
}

// WriteHTML writes the table as an HTML <table> element.
func WriteHTML(w io.Writer, view TableView, opts HTMLOptions) error {
	return tableTemplate.Execute(w, tableData{View: view, sortURL: opts.SortURL})
}

// HTML renders the table to a template.HTML fragment for embedding in pages.
func HTML(view TableView, opts HTMLOptions) (template.HTML, error) {
	var buf strings.Builder
	if err := WriteHTML(&buf, view, opts); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}
