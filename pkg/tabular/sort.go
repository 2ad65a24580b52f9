package tabular

import (
	"sort"
	"strings"
)

const (
	HeaderClass     = "header"
	AscHeaderClass  = "asc"
	DescHeaderClass = "desc"
)

// SortState is the per-table header click state. Ascending starts true;
// while it is true a click orders strings ascending but numbers descending,
// and tags the header "asc". The next click inverts both and tags "desc".
type SortState struct {
	Ascending bool `json:"ascending"`
}

// NewSortState returns the state of a freshly built table.
func NewSortState() *SortState {
	return &SortState{Ascending: true}
}

// firstBranchLess orders values the way a click in the Ascending state does:
// numeric values first by descending magnitude, then everything else in
// ascending lexicographic order.
func firstBranchLess(a, b Value) bool {
	af, aok := a.Float()
	bf, bok := b.Float()
	switch {
	case aok && bok:
		return af > bf
	case aok != bok:
		return aok
	}
	return strings.Compare(a.Text(), b.Text()) < 0
}

// sortRows stably sorts rows by column and advances state. It returns the
// class for the clicked header.
func sortRows(rows []BodyRow, column string, state *SortState) string {
	if state.Ascending {
		sort.SliceStable(rows, func(i, j int) bool {
			return firstBranchLess(rows[i].source.Get(column), rows[j].source.Get(column))
		})
		state.Ascending = false
		return AscHeaderClass
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return firstBranchLess(rows[j].source.Get(column), rows[i].source.Get(column))
	})
	state.Ascending = true
	return DescHeaderClass
}
