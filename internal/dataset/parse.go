package dataset

import (
	"occustats/adapters/datareadiness/coercer"
	"occustats/adapters/excel"
	"occustats/domain/occupation"
	"occustats/internal/errors"
)

var aggregateColumns = []string{
	occupation.ColEmployment,
	occupation.ColMeanIncome,
	occupation.ColMedianIncome,
	occupation.ColAutomationPercent,
	occupation.ColAugmentationPercent,
	occupation.ColProductivityIncrease,
}

var taskColumns = []string{
	occupation.ColOccupation,
	occupation.ColTask,
	occupation.ColAutomationPercentage,
	occupation.ColAugmentationPercentage,
	occupation.ColProductivityMultiplier,
}

// occupationColumn picks the aggregate key header, accepting the singular form
func occupationColumn(data *excel.ExcelData) (string, error) {
	switch {
	case data.HasColumn(occupation.ColOccupations):
		return occupation.ColOccupations, nil
	case data.HasColumn(occupation.ColOccupation):
		return occupation.ColOccupation, nil
	}
	return "", errors.Newf(errors.CodeDatasetLoad, "missing required column %q", occupation.ColOccupations)
}

func requireColumns(data *excel.ExcelData, columns []string) error {
	for _, col := range columns {
		if !data.HasColumn(col) {
			return errors.Newf(errors.CodeDatasetLoad, "missing required column %q", col)
		}
	}
	return nil
}

// ParseAggregates converts raw rows of the aggregate table. Every numeric cell is required.
func ParseAggregates(data *excel.ExcelData, c *coercer.TypeCoercer) ([]occupation.OccupationAggregate, error) {
	keyCol, err := occupationColumn(data)
	if err != nil {
		return nil, err
	}
	if err := requireColumns(data, aggregateColumns); err != nil {
		return nil, err
	}

	out := make([]occupation.OccupationAggregate, 0, len(data.Rows))
	for i, row := range data.Rows {
		line := rowNumber(data, i)
		agg := occupation.OccupationAggregate{Occupation: row[keyCol]}

		ints := []struct {
			col string
			dst *int
		}{
			{occupation.ColEmployment, &agg.Employment},
			{occupation.ColMeanIncome, &agg.MeanIncome},
			{occupation.ColMedianIncome, &agg.MedianIncome},
		}
		for _, f := range ints {
			v, err := c.CoerceInt(row[f.col])
			if err != nil {
				return nil, errors.CoercionFailed(f.col, line, row[f.col], err)
			}
			*f.dst = v
		}

		floats := []struct {
			col string
			dst *float64
		}{
			{occupation.ColAutomationPercent, &agg.AutomationPercent},
			{occupation.ColAugmentationPercent, &agg.AugmentationPercent},
			{occupation.ColProductivityIncrease, &agg.ProductivityIncrease},
		}
		for _, f := range floats {
			v, err := c.CoerceRequiredFloat(row[f.col])
			if err != nil {
				return nil, errors.CoercionFailed(f.col, line, row[f.col], err)
			}
			*f.dst = v
		}

		out = append(out, agg)
	}
	return out, nil
}

// ParseTasks converts raw rows of the task detail table. Empty numeric cells
// become NaN; narrative columns missing from the header stay empty.
func ParseTasks(data *excel.ExcelData, c *coercer.TypeCoercer) ([]occupation.OccupationTaskDetail, error) {
	if err := requireColumns(data, taskColumns); err != nil {
		return nil, err
	}

	out := make([]occupation.OccupationTaskDetail, 0, len(data.Rows))
	for i, row := range data.Rows {
		line := rowNumber(data, i)
		task := occupation.OccupationTaskDetail{
			Occupation: row[occupation.ColOccupation],
			Task:       row[occupation.ColTask],
		}

		floats := []struct {
			col string
			dst *float64
		}{
			{occupation.ColAutomationPercentage, &task.AutomationPercentage},
			{occupation.ColAugmentationPercentage, &task.AugmentationPercentage},
			{occupation.ColProductivityMultiplier, &task.ProductivityMultiplier},
		}
		for _, f := range floats {
			v, err := c.CoerceFloat(row[f.col])
			if err != nil {
				return nil, errors.CoercionFailed(f.col, line, row[f.col], err)
			}
			*f.dst = v
		}

		for _, name := range occupation.DetailFields {
			task.SetField(name, row[name])
		}
		out = append(out, task)
	}
	return out, nil
}

// MissingDetailColumns lists narrative headers absent from the task table
func MissingDetailColumns(data *excel.ExcelData) []string {
	var missing []string
	for _, name := range occupation.DetailFields {
		if !data.HasColumn(name) {
			missing = append(missing, name)
		}
	}
	return missing
}

func rowNumber(data *excel.ExcelData, i int) int {
	if i < len(data.RowNumbers) {
		return data.RowNumbers[i]
	}
	return i + 2
}
