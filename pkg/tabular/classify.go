package tabular

const (
	ErrorClass   = "errorColor"
	WarningClass = "warningColor"
)

// ClassifyRow returns the CSS class for row. A breached threshold yields
// ErrorClass, a value sitting exactly on a threshold yields WarningClass,
// otherwise the row's _Style (or "") stands. Error always wins over warning.
func ClassifyRow(row Row, opts Options) string {
	class := row.Get(StyleKey).Text()

	tc := opts.ThresholdCols
	value := row.Get(tc.Value)
	if value.IsAbsent() {
		return class
	}
	high := row.Get(tc.High)
	low := row.Get(tc.Low)

	if (high.Truthy() && compareValues(value, high) > 0) ||
		(low.Truthy() && compareValues(value, low) < 0) {
		return ErrorClass
	}
	if (high.Truthy() && compareValues(value, high) == 0) ||
		(low.Truthy() && compareValues(value, low) == 0) {
		return WarningClass
	}
	return class
}
