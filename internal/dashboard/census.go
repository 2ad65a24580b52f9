package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/locvowork/census_dashboard/pkg/tabular"
)

const (
	CensusName          = "census"
	CensusSourceURL     = "https://private-66479-hospiqtest.apiary-mock.com/units"
	CensusTarget        = "#census-dashboard-table-container"
	CensusStatusElement = "#census-last-updated"

	// LastUpdatedLayout matches the browser's Date string form.
	LastUpdatedLayout = "Mon Jan 02 2006 15:04:05 GMT-0700 (MST)"
)

// Dashboard is one named table configuration.
type Dashboard struct {
	Name          string          `yaml:"name" json:"name"`
	Title         string          `yaml:"title" json:"title"`
	SourceURL     string          `yaml:"source_url" json:"sourceUrl"`
	StatusElement string          `yaml:"status_element" json:"statusElement"`
	Options       tabular.Options `yaml:"options" json:"options"`
}

// Census returns the unit census dashboard. An empty sourceURL uses the
// default census endpoint.
func Census(sourceURL string) Dashboard {
	if sourceURL == "" {
		sourceURL = CensusSourceURL
	}
	return Dashboard{
		Name:          CensusName,
		Title:         "Unit Census",
		SourceURL:     sourceURL,
		StatusElement: CensusStatusElement,
		Options: tabular.Options{
			SortCol:            "census",
			Columns:            []string{"Name", "Capacity", "Census"},
			TargetTableElement: CensusTarget,
			HiddenCols:         []string{"id"},
			ThresholdCols: tabular.ThresholdColumns{
				High:  "highAlarm",
				Value: "census",
				Low:   "lowAlarm",
			},
		},
	}
}

// LastUpdated formats the status stamp.
func LastUpdated(t time.Time) string {
	return "Last updated: " + t.Format(LastUpdatedLayout)
}

// Initialize renders d into the renderer's document and stamps its status
// element. The stamp is only written once the table is mounted.
func Initialize(ctx context.Context, r *tabular.Renderer, d Dashboard, now func() time.Time) (*tabular.Table, error) {
	opts := d.Options
	table, err := r.CreateTable(ctx, d.SourceURL, &opts)
	if err != nil && table == nil {
		return nil, fmt.Errorf("dashboard %s: %w", d.Name, err)
	}
	if d.StatusElement != "" {
		if now == nil {
			now = time.Now
		}
		r.Document().SetText(d.StatusElement, LastUpdated(now()))
	}
	if err != nil {
		return table, fmt.Errorf("dashboard %s: %w", d.Name, err)
	}
	return table, nil
}

// InitializeCensus renders the census dashboard from its default source.
func InitializeCensus(ctx context.Context, r *tabular.Renderer) (*tabular.Table, error) {
	return Initialize(ctx, r, Census(""), time.Now)
}
