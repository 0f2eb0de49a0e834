package charts

import "occustats/internal/profiling"

// Kind is the chart family
type Kind string

const (
	KindScatter Kind = "scatter"
	KindBar     Kind = "bar"
)

// Chart ids, in display order
const (
	AutomationAugmentationEmployment = "automation-augmentation-employment"
	AutomationAugmentationIncome     = "automation-augmentation-income"
	EmploymentIncomeProductivity     = "employment-income-productivity"
	AutomationBar                    = "automation-bar-chart"
	AugmentationBar                  = "augmentation-bar-chart"
	ProductivityIncreaseBar          = "productivity-increase-bar-chart"
)

// Range is an inclusive axis range
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Axis names the column plotted on an axis. A nil Range lets the renderer fit
// the data. Summary describes the plotted values of a numeric axis.
type Axis struct {
	Column  string                   `json:"column"`
	Range   *Range                   `json:"range,omitempty"`
	Summary *profiling.ColumnSummary `json:"summary,omitempty"`
}

// Point is one occupation on a chart. Bar charts leave X and Size zero.
type Point struct {
	Label string  `json:"label"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Size  float64 `json:"size,omitempty"`
}

// Spec fully describes one static chart
type Spec struct {
	ID            string  `json:"id"`
	Title         string  `json:"title"`
	Kind          Kind    `json:"kind"`
	X             Axis    `json:"x"`
	Y             Axis    `json:"y"`
	SizeColumn    string  `json:"size_column,omitempty"`
	Points        []Point `json:"points"`
	Narrative     string  `json:"narrative,omitempty"`
	NarrativeHTML string  `json:"narrative_html,omitempty"`
}

// Find returns the spec with the given id
func Find(specs []Spec, id string) (Spec, bool) {
	for _, s := range specs {
		if s.ID == id {
			return s, true
		}
	}
	return Spec{}, false
}
