package occupation

// Source column headers of the aggregate table
const (
	ColOccupations          = "Occupations"
	ColOccupation           = "Occupation"
	ColEmployment           = "Employment"
	ColMeanIncome           = "Mean Income"
	ColMedianIncome         = "Median Income"
	ColAutomationPercent    = "Automation Percent"
	ColAugmentationPercent  = "Augmentation Percent"
	ColProductivityIncrease = "Productivity Increase"
)

// Source column headers of the task detail table
const (
	ColTask                    = "Task"
	ColAutomationPercentage    = "Automation Percentage"
	ColAugmentationPercentage  = "Augmentation Percentage"
	ColProductivityMultiplier  = "Productivity Multiplier"
	ColImpactOnAutomation      = "Impact on Automation"
	ColAutomationExplanation   = "Automation Explanation"
	ColImpactOnAugmentation    = "Impact on Augmentation"
	ColAugmentationExplanation = "Augmentation Explanation"
	ColProductivityExplanation = "Productivity Explanation"
	ColProductExample1         = "Product Example 1"
	ColProductExample2         = "Product Example 2"
	ColProductExample3         = "Product Example 3"
	ColProductExample4         = "Product Example 4"
	ColCaseStudy1              = "Case Study 1"
	ColCaseStudy2              = "Case Study 2"
	ColConclusion              = "Conclusion"
)

// TableColumns are the task detail columns shown in the occupation table, in order.
var TableColumns = []string{
	ColOccupation,
	ColTask,
	ColAutomationPercentage,
	ColAugmentationPercentage,
	ColProductivityMultiplier,
}

// DetailFields are the labeled narrative fields of the task detail panel, in order.
var DetailFields = []string{
	ColImpactOnAutomation,
	ColAutomationExplanation,
	ColImpactOnAugmentation,
	ColAugmentationExplanation,
	ColProductivityExplanation,
	ColProductExample1,
	ColProductExample2,
	ColProductExample3,
	ColProductExample4,
	ColCaseStudy1,
	ColCaseStudy2,
	ColConclusion,
}

// OccupationAggregate is one row of the aggregate statistics table
type OccupationAggregate struct {
	Occupation           string  `json:"occupation" db:"occupation"`
	Employment           int     `json:"employment" db:"employment"`
	MeanIncome           int     `json:"mean_income" db:"mean_income"`
	MedianIncome         int     `json:"median_income" db:"median_income"`
	AutomationPercent    float64 `json:"automation_percent" db:"automation_percent"`
	AugmentationPercent  float64 `json:"augmentation_percent" db:"augmentation_percent"`
	ProductivityIncrease float64 `json:"productivity_increase" db:"productivity_increase"`
}

// OccupationTaskDetail is one (occupation, task) row of the detail table.
// Numeric fields are NaN when the source cell was empty.
type OccupationTaskDetail struct {
	Occupation              string    `json:"occupation"`
	Task                    string    `json:"task"`
	AutomationPercentage    float64   `json:"automation_percentage"`
	AugmentationPercentage  float64   `json:"augmentation_percentage"`
	ProductivityMultiplier  float64   `json:"productivity_multiplier"`
	ImpactOnAutomation      string    `json:"impact_on_automation"`
	AutomationExplanation   string    `json:"automation_explanation"`
	ImpactOnAugmentation    string    `json:"impact_on_augmentation"`
	AugmentationExplanation string    `json:"augmentation_explanation"`
	ProductivityExplanation string    `json:"productivity_explanation"`
	ProductExamples         [4]string `json:"product_examples"`
	CaseStudies             [2]string `json:"case_studies"`
	Conclusion              string    `json:"conclusion"`
}

// Field returns the text of a DetailFields entry; unknown names return "".
func (t OccupationTaskDetail) Field(name string) string {
	switch name {
	case ColImpactOnAutomation:
		return t.ImpactOnAutomation
	case ColAutomationExplanation:
		return t.AutomationExplanation
	case ColImpactOnAugmentation:
		return t.ImpactOnAugmentation
	case ColAugmentationExplanation:
		return t.AugmentationExplanation
	case ColProductivityExplanation:
		return t.ProductivityExplanation
	case ColProductExample1:
		return t.ProductExamples[0]
	case ColProductExample2:
		return t.ProductExamples[1]
	case ColProductExample3:
		return t.ProductExamples[2]
	case ColProductExample4:
		return t.ProductExamples[3]
	case ColCaseStudy1:
		return t.CaseStudies[0]
	case ColCaseStudy2:
		return t.CaseStudies[1]
	case ColConclusion:
		return t.Conclusion
	}
	return ""
}

// SetField is the inverse of Field, used by sources that fill rows column by column.
func (t *OccupationTaskDetail) SetField(name, value string) {
	switch name {
	case ColImpactOnAutomation:
		t.ImpactOnAutomation = value
	case ColAutomationExplanation:
		t.AutomationExplanation = value
	case ColImpactOnAugmentation:
		t.ImpactOnAugmentation = value
	case ColAugmentationExplanation:
		t.AugmentationExplanation = value
	case ColProductivityExplanation:
		t.ProductivityExplanation = value
	case ColProductExample1:
		t.ProductExamples[0] = value
	case ColProductExample2:
		t.ProductExamples[1] = value
	case ColProductExample3:
		t.ProductExamples[2] = value
	case ColProductExample4:
		t.ProductExamples[3] = value
	case ColCaseStudy1:
		t.CaseStudies[0] = value
	case ColCaseStudy2:
		t.CaseStudies[1] = value
	case ColConclusion:
		t.Conclusion = value
	}
}

// Column returns the displayed value of a TableColumns entry.
func (t OccupationTaskDetail) Column(name string) string {
	switch name {
	case ColOccupation:
		return t.Occupation
	case ColTask:
		return t.Task
	case ColAutomationPercentage:
		return FormatNumber(t.AutomationPercentage)
	case ColAugmentationPercentage:
		return FormatNumber(t.AugmentationPercentage)
	case ColProductivityMultiplier:
		return FormatNumber(t.ProductivityMultiplier)
	}
	return ""
}
