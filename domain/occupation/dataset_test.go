package occupation

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixtureDataset() *Dataset {
	return NewDataset(
		[]OccupationAggregate{
			{Occupation: "Accountant", Employment: 1234000, MeanIncome: 86740, MedianIncome: 79880, AutomationPercent: 45.2, AugmentationPercent: 30, ProductivityIncrease: 12.5},
			{Occupation: "Nurse", Employment: 3130600, MeanIncome: 89010, MedianIncome: 86070, AutomationPercent: 10, AugmentationPercent: 55.5, ProductivityIncrease: 8},
		},
		[]OccupationTaskDetail{
			{Occupation: "Accountant", Task: "Bookkeeping", AutomationPercentage: 80, AugmentationPercentage: 20, ProductivityMultiplier: 1.5, Conclusion: "Bookkeeping is largely automated."},
			{Occupation: "Nurse", Task: "Charting", AutomationPercentage: 40, AugmentationPercentage: 60, ProductivityMultiplier: 1.2},
			{Occupation: "Accountant", Task: "Auditing", AutomationPercentage: 35, AugmentationPercentage: 65, ProductivityMultiplier: math.NaN(), Conclusion: "Auditors remain in the loop."},
			{Occupation: "Nurse", Task: "Auditing", AutomationPercentage: 5, AugmentationPercentage: 25, ProductivityMultiplier: 1.1, Conclusion: "Clinical audits stay manual."},
		},
	)
}

func TestDataset_Occupations_FirstSeenOrder(t *testing.T) {
	ds := fixtureDataset()
	assert.Equal(t, []string{"Accountant", "Nurse"}, ds.Occupations())
}

func TestDataset_TasksFor(t *testing.T) {
	ds := fixtureDataset()

	rows := ds.TasksFor("Accountant")
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"Bookkeeping", "Auditing"}, DistinctTasks(rows))

	assert.Empty(t, ds.TasksFor(""))
	assert.Empty(t, ds.TasksFor("Pilot"))
}

func TestDataset_FindTask_CompositeKey(t *testing.T) {
	ds := fixtureDataset()

	acc, ok := ds.FindTask("Accountant", "Auditing")
	require.True(t, ok)
	assert.Equal(t, "Auditors remain in the loop.", acc.Conclusion)

	nurse, ok := ds.FindTask("Nurse", "Auditing")
	require.True(t, ok)
	assert.Equal(t, "Clinical audits stay manual.", nurse.Conclusion)

	_, ok = ds.FindTask("Nurse", "Bookkeeping")
	assert.False(t, ok)
}

func TestDataset_FirstTaskMatch_FileOrder(t *testing.T) {
	ds := fixtureDataset()

	row, ok := ds.FirstTaskMatch("Auditing")
	require.True(t, ok)
	assert.Equal(t, "Accountant", row.Occupation)

	_, ok = ds.FirstTaskMatch("Flying")
	assert.False(t, ok)
}

func TestDataset_TaskCollisions(t *testing.T) {
	ds := fixtureDataset()
	assert.Equal(t, map[string][]string{"Auditing": {"Accountant", "Nurse"}}, ds.TaskCollisions())
}

func TestDataset_ReturnsCopies(t *testing.T) {
	ds := fixtureDataset()

	tasks := ds.Tasks()
	tasks[0].Task = "mutated"
	aggs := ds.Aggregates()
	aggs[0].Occupation = "mutated"

	assert.Equal(t, "Bookkeeping", ds.Tasks()[0].Task)
	assert.Equal(t, "Accountant", ds.Aggregates()[0].Occupation)
}

func TestTableRows_FiveColumnsBlankNaN(t *testing.T) {
	ds := fixtureDataset()

	rows := TableRows(ds.TasksFor("Accountant"))
	require.Len(t, rows, 2)
	assert.Equal(t, Row{"Accountant", "Bookkeeping", "80", "20", "1.5"}, rows[0])
	assert.Equal(t, Row{"Accountant", "Auditing", "35", "65", ""}, rows[1])
}

func TestDetailPanel_TwelveFieldsInOrder(t *testing.T) {
	row := OccupationTaskDetail{Occupation: "Accountant", Task: "Auditing"}
	for i, name := range DetailFields {
		row.SetField(name, string(rune('a'+i)))
	}

	panel := DetailPanel(row)
	require.Len(t, panel, 12)
	assert.Equal(t, "Impact on Automation", panel[0].Label)
	assert.Equal(t, "a", panel[0].Value)
	assert.Equal(t, "Product Example 4", panel[8].Label)
	assert.Equal(t, "i", row.ProductExamples[3])
	assert.Equal(t, "Conclusion", panel[11].Label)
	assert.Equal(t, "l", row.Conclusion)
}
