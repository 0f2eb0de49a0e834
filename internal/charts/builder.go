package charts

import (
	"occustats/domain/occupation"
	"occustats/internal/errors"
	"occustats/internal/profiling"
)

// Padding applied around the employment/income scatter
const (
	employmentPadLow  = 322000
	employmentPadHigh = 200000
	incomePadLow      = 15000
	incomePadHigh     = 20000
)

func percentRange() *Range { return &Range{Min: 0, Max: 100} }

type columns struct {
	employment   []float64
	medianIncome []float64
	automation   []float64
	augmentation []float64
	productivity []float64
}

func extract(aggs []occupation.OccupationAggregate) columns {
	var c columns
	for _, a := range aggs {
		c.employment = append(c.employment, float64(a.Employment))
		c.medianIncome = append(c.medianIncome, float64(a.MedianIncome))
		c.automation = append(c.automation, a.AutomationPercent)
		c.augmentation = append(c.augmentation, a.AugmentationPercent)
		c.productivity = append(c.productivity, a.ProductivityIncrease)
	}
	return c
}

// Build derives the six static charts from the aggregate table, in display order.
func Build(ds *occupation.Dataset) ([]Spec, error) {
	aggs := ds.Aggregates()
	if len(aggs) == 0 {
		return nil, errors.ValidationError("no occupation aggregates to chart")
	}
	cols := extract(aggs)

	empRange, err := paddedRange(cols.employment, employmentPadLow, employmentPadHigh)
	if err != nil {
		return nil, errors.Wrap(err, "employment range")
	}
	incomeRange, err := paddedRange(cols.medianIncome, incomePadLow, incomePadHigh)
	if err != nil {
		return nil, errors.Wrap(err, "median income range")
	}

	scatter := func(id, title string, x, y, size string, xs, ys, sizes []float64, xr, yr *Range) Spec {
		points := make([]Point, len(aggs))
		for i, a := range aggs {
			points[i] = Point{Label: a.Occupation, X: xs[i], Y: ys[i], Size: sizes[i]}
		}
		return Spec{
			ID:         id,
			Title:      title,
			Kind:       KindScatter,
			X:          Axis{Column: x, Range: xr, Summary: summarize(xs)},
			Y:          Axis{Column: y, Range: yr, Summary: summarize(ys)},
			SizeColumn: size,
			Points:     points,
		}
	}
	bar := func(id, title, y string, ys []float64) Spec {
		points := make([]Point, len(aggs))
		for i, a := range aggs {
			points[i] = Point{Label: a.Occupation, Y: ys[i]}
		}
		return Spec{
			ID:     id,
			Title:  title,
			Kind:   KindBar,
			X:      Axis{Column: occupation.ColOccupations},
			Y:      Axis{Column: y, Summary: summarize(ys)},
			Points: points,
		}
	}

	specs := []Spec{
		scatter(AutomationAugmentationEmployment, "Automation vs. Augmentation by Employment",
			occupation.ColAutomationPercent, occupation.ColAugmentationPercent, occupation.ColEmployment,
			cols.automation, cols.augmentation, cols.employment, percentRange(), percentRange()),
		scatter(AutomationAugmentationIncome, "Automation vs. Augmentation by Median Income",
			occupation.ColAutomationPercent, occupation.ColAugmentationPercent, occupation.ColMedianIncome,
			cols.automation, cols.augmentation, cols.medianIncome, percentRange(), percentRange()),
		scatter(EmploymentIncomeProductivity, "Employment vs. Median Income by Productivity Increase",
			occupation.ColEmployment, occupation.ColMedianIncome, occupation.ColProductivityIncrease,
			cols.employment, cols.medianIncome, cols.productivity, empRange, incomeRange),
		bar(AutomationBar, "Automation Percent per Occupation", occupation.ColAutomationPercent, cols.automation),
		bar(AugmentationBar, "Augmentation Percent per Occupation", occupation.ColAugmentationPercent, cols.augmentation),
		bar(ProductivityIncreaseBar, "Productivity Increase per Occupation", occupation.ColProductivityIncrease, cols.productivity),
	}

	narratives := [][]pair{
		{
			{occupation.ColEmployment, occupation.ColAutomationPercent, cols.employment, cols.automation},
			{occupation.ColEmployment, occupation.ColAugmentationPercent, cols.employment, cols.augmentation},
		},
		{
			{occupation.ColMedianIncome, occupation.ColAutomationPercent, cols.medianIncome, cols.automation},
			{occupation.ColMedianIncome, occupation.ColAugmentationPercent, cols.medianIncome, cols.augmentation},
		},
		{
			{occupation.ColMedianIncome, occupation.ColProductivityIncrease, cols.medianIncome, cols.productivity},
			{occupation.ColEmployment, occupation.ColProductivityIncrease, cols.employment, cols.productivity},
		},
	}
	for i, pairs := range narratives {
		md := narrative(pairs, len(aggs))
		specs[i].Narrative = md
		specs[i].NarrativeHTML = RenderMarkdown(md)
	}

	return specs, nil
}

// summarize is nil for a column with no values left after dropping NaN
func summarize(values []float64) *profiling.ColumnSummary {
	s, err := profiling.Summarize(values)
	if err != nil {
		return nil
	}
	return &s
}

// paddedRange is [min-low, max+high] of the column
func paddedRange(values []float64, low, high float64) (*Range, error) {
	summary, err := profiling.Summarize(values)
	if err != nil {
		return nil, err
	}
	return &Range{Min: summary.Min - low, Max: summary.Max + high}, nil
}
