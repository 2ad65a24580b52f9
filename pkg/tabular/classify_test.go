package tabular

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyRow(t *testing.T) {
	opts := *censusOptions()

	tests := []struct {
		name string
		row  Row
		want string
	}{
		{"within bounds", NewRow("Census", 5, "highAlarm", 18, "lowAlarm", 3), ""},
		{"no thresholds at all", NewRow("Census", 5), ""},
		{"above high", NewRow("Census", 12, "highAlarm", 10, "lowAlarm", 2), ErrorClass},
		{"above high without low", NewRow("Census", 12, "highAlarm", 10), ErrorClass},
		{"below low", NewRow("Census", 1, "highAlarm", 10, "lowAlarm", 2), ErrorClass},
		{"equal high", NewRow("Census", 10, "highAlarm", 10, "lowAlarm", 2), WarningClass},
		{"equal low", NewRow("Census", 3, "highAlarm", 10, "lowAlarm", 3), WarningClass},
		{"error beats warning", NewRow("Census", 8, "highAlarm", 5, "lowAlarm", 8), ErrorClass},
		{"style without breach", NewRow("_Style", "muted", "Census", 5, "highAlarm", 10), "muted"},
		{"breach overrides style", NewRow("_Style", "muted", "Census", 11, "highAlarm", 10), ErrorClass},
		{"absent value", NewRow("_Style", "muted", "highAlarm", 10, "lowAlarm", 2), "muted"},
		{"null value", NewRow("Census", nil, "highAlarm", 10, "lowAlarm", 2), ""},
		{"zero high is unset", NewRow("Census", 4, "highAlarm", 0), ""},
		{"empty low is unset", NewRow("Census", 4, "lowAlarm", ""), ""},
		{"numeric strings compare numerically", NewRow("Census", "9", "highAlarm", "10"), ""},
		{"numeric string equals number", NewRow("Census", "10", "highAlarm", 10), WarningClass},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyRow(tt.row, opts))
		})
	}
}

func TestClassifyRow_NoThresholdColumns(t *testing.T) {
	row := NewRow("Census", 100, "highAlarm", 1)
	assert.Equal(t, "", ClassifyRow(row, Options{}))
}

func TestThresholdTitle(t *testing.T) {
	assert.Equal(t, "Upper threshold: 10", ThresholdTitle(Number(10), Absent))
	assert.Equal(t, "Lower threshold: 2", ThresholdTitle(Absent, Number(2)))
	assert.Equal(t, "Upper threshold: 10 Lower threshold: 2", ThresholdTitle(Number(10), Number(2)))
	assert.Equal(t, "", ThresholdTitle(Absent, Number(0)))
}

func TestRenderCell(t *testing.T) {
	opts := WithDefaults(censusOptions())
	row := NewRow("Name", "ICU", "Census", 4)

	value := RenderCell(row, "Census", "Census", opts)
	assert.Equal(t, CellThreshold, value.Kind)
	assert.Empty(t, value.Title)
	assert.Equal(t, "tableCell largeText centerAlign", value.Class())

	name := RenderCell(row, "Name", "Unit", opts)
	assert.Equal(t, "Unit", name.Label)
	assert.Equal(t, "tableCell", name.Class())

	missing := RenderCell(row, "Capacity", "Capacity", opts)
	assert.True(t, missing.Value.IsAbsent())
	assert.Equal(t, "", missing.Text())
	assert.Equal(t, "tableCell", missing.Class())
}
