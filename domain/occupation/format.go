package occupation

import (
	"math"
	"strconv"
)

// FormatNumber renders a numeric cell for display; NaN is blank.
func FormatNumber(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Row is the five displayed columns of a detail row, in TableColumns order.
type Row []string

// TableRows projects detail rows onto TableColumns.
func TableRows(tasks []OccupationTaskDetail) []Row {
	rows := make([]Row, 0, len(tasks))
	for _, t := range tasks {
		row := make(Row, len(TableColumns))
		for i, col := range TableColumns {
			row[i] = t.Column(col)
		}
		rows = append(rows, row)
	}
	return rows
}

// LabeledField is one entry of the task detail panel
type LabeledField struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// DetailPanel lists the twelve DetailFields of a row, values verbatim.
func DetailPanel(t OccupationTaskDetail) []LabeledField {
	fields := make([]LabeledField, 0, len(DetailFields))
	for _, name := range DetailFields {
		fields = append(fields, LabeledField{Label: name, Value: t.Field(name)})
	}
	return fields
}
