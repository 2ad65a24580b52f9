package tabular

import "strings"

const (
	// DefaultTarget is the container used when no target is configured.
	DefaultTarget = "body"
	// DefaultLinkPrefix is prepended to link column values to form the href.
	DefaultLinkPrefix = "http://"
	// HeaderIDPrefix prefixes the column key to form a header cell's id.
	HeaderIDPrefix = "_header"
)

// ThresholdColumns names the columns holding the upper bound, the lower
// bound and the measured value of a row.
type ThresholdColumns struct {
	High  string `json:"high" yaml:"high"`
	Low   string `json:"low" yaml:"low"`
	Value string `json:"value" yaml:"value"`
}

// Options configures a single table render.
type Options struct {
	TargetTableElement string           `json:"targetTableElement" yaml:"target_table_element"`
	SortCol            string           `json:"sortCol" yaml:"sort_col"`
	Columns            []string         `json:"columns" yaml:"columns"`
	HiddenCols         []string         `json:"hiddenCols" yaml:"hidden_cols"`
	ThresholdCols      ThresholdColumns `json:"thresholdCols" yaml:"threshold_cols"`
	// LinkCol is rendered as a hyperlink; it is shown even when it starts
	// with an underscore.
	LinkCol    string `json:"linkCol" yaml:"link_col"`
	LinkPrefix string `json:"linkPrefix" yaml:"link_prefix"`
}

// WithDefaults returns a copy of opts with missing fields filled in. A nil
// opts is treated as empty.
func WithDefaults(opts *Options) Options {
	var o Options
	if opts != nil {
		o = *opts
		o.Columns = append([]string(nil), opts.Columns...)
		o.HiddenCols = append([]string(nil), opts.HiddenCols...)
	}
	if o.TargetTableElement == "" {
		o.TargetTableElement = DefaultTarget
	}
	if o.LinkPrefix == "" {
		o.LinkPrefix = DefaultLinkPrefix
	}
	return o
}

func (o Options) isHidden(col string) bool {
	for _, h := range o.HiddenCols {
		if h == col {
			return true
		}
	}
	return false
}

// isMetadata reports whether col is an underscore-prefixed metadata column.
func (o Options) isMetadata(col string) bool {
	return strings.HasPrefix(col, "_") && col != o.LinkCol
}

// displayColumns computes the columns shown for rows shaped like first.
func (o Options) displayColumns(first Row) []string {
	var cols []string
	for _, key := range first.Keys() {
		if key == o.ThresholdCols.High && key != "" ||
			key == o.ThresholdCols.Low && key != "" ||
			o.isHidden(key) || o.isMetadata(key) {
			continue
		}
		cols = append(cols, key)
	}
	return cols
}
