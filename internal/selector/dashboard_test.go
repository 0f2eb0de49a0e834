package selector

import (
	"context"
	"fmt"
	"testing"

	"occustats/domain/occupation"
	"occustats/internal/errors"
	"occustats/internal/reactive"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixture() *occupation.Dataset {
	return occupation.NewDataset(
		[]occupation.OccupationAggregate{{Occupation: "Accountant"}, {Occupation: "Nurse"}},
		[]occupation.OccupationTaskDetail{
			{Occupation: "Accountant", Task: "Bookkeeping", AutomationPercentage: 80, AugmentationPercentage: 20, ProductivityMultiplier: 1.5, Conclusion: "Bookkeeping is largely automated."},
			{Occupation: "Accountant", Task: "Auditing", AutomationPercentage: 35, AugmentationPercentage: 65, ProductivityMultiplier: 1.2, ImpactOnAutomation: "Medium", Conclusion: "Auditors remain in the loop."},
			{Occupation: "Nurse", Task: "Charting", AutomationPercentage: 40, AugmentationPercentage: 60, ProductivityMultiplier: 1.2},
			{Occupation: "Nurse", Task: "Triage", AutomationPercentage: 20, AugmentationPercentage: 70, ProductivityMultiplier: 1.1},
			{Occupation: "Nurse", Task: "Auditing", AutomationPercentage: 5, AugmentationPercentage: 25, ProductivityMultiplier: 1.1, Conclusion: "Clinical audits stay manual."},
		},
	)
}

func newDashboard(t *testing.T, opts Options) (*Dashboard, *reactive.State) {
	t.Helper()
	d, err := New(fixture(), opts)
	require.NoError(t, err)
	st, err := d.NewState(context.Background())
	require.NoError(t, err)
	return d, st
}

func selectValue(t *testing.T, d *Dashboard, st *reactive.State, input, value string) reactive.Update {
	t.Helper()
	update, err := d.Select(context.Background(), st, input, value)
	require.NoError(t, err)
	return update
}

func TestInitialState_NothingSelected(t *testing.T) {
	d, st := newDashboard(t, DefaultOptions())

	v := ViewOf(st)
	assert.Equal(t, "", v.Occupation)
	assert.Equal(t, []string{}, v.TaskOptions)
	require.NotNil(t, v.Table)
	assert.Empty(t, v.Table.Rows)
	assert.Nil(t, v.Details)
	assert.Equal(t, []string{"Accountant", "Nurse"}, d.OccupationOptions())
}

func TestSelectOccupation_OptionsAndTable(t *testing.T) {
	d, st := newDashboard(t, DefaultOptions())

	update := selectValue(t, d, st, InputOccupation, "Accountant")
	assert.Equal(t, []string{InputOccupation}, update.Inputs)
	assert.Equal(t, []string{OutputTaskOptions, OutputOccupationTable, OutputTaskDetails}, update.Outputs)

	v := ViewOf(st)
	assert.Equal(t, []string{"Bookkeeping", "Auditing"}, v.TaskOptions)
	assert.Equal(t, occupation.TableColumns, v.Table.Columns)
	assert.Equal(t, []occupation.Row{
		{"Accountant", "Bookkeeping", "80", "20", "1.5"},
		{"Accountant", "Auditing", "35", "65", "1.2"},
	}, v.Table.Rows)
}

func TestSelectOccupation_ClearYieldsEmpty(t *testing.T) {
	d, st := newDashboard(t, DefaultOptions())
	selectValue(t, d, st, InputOccupation, "Accountant")

	selectValue(t, d, st, InputOccupation, "")
	v := ViewOf(st)
	assert.Empty(t, v.TaskOptions)
	assert.Empty(t, v.Table.Rows)
}

func TestSelectTask_DetailPanelVerbatim(t *testing.T) {
	d, st := newDashboard(t, DefaultOptions())
	selectValue(t, d, st, InputOccupation, "Accountant")

	update := selectValue(t, d, st, InputTask, "Auditing")
	assert.Equal(t, []string{OutputTaskDetails}, update.Outputs)

	v := ViewOf(st)
	require.NotNil(t, v.Details)
	require.Len(t, v.Details.Fields, 12)
	assert.Equal(t, occupation.LabeledField{Label: "Impact on Automation", Value: "Medium"}, v.Details.Fields[0])
	assert.Equal(t, occupation.LabeledField{Label: "Conclusion", Value: "Auditors remain in the loop."}, v.Details.Fields[11])
}

func TestSelectTask_ClearIsNotAnError(t *testing.T) {
	d, st := newDashboard(t, DefaultOptions())
	selectValue(t, d, st, InputOccupation, "Accountant")
	selectValue(t, d, st, InputTask, "Auditing")

	selectValue(t, d, st, InputTask, "")
	assert.Nil(t, ViewOf(st).Details)
}

func TestResetMode_OccupationChangeClearsTask(t *testing.T) {
	d, st := newDashboard(t, DefaultOptions())
	selectValue(t, d, st, InputOccupation, "Accountant")
	selectValue(t, d, st, InputTask, "Auditing")

	update := selectValue(t, d, st, InputOccupation, "Nurse")
	assert.Equal(t, []string{InputOccupation, InputTask}, update.Inputs)
	assert.Equal(t, []string{OutputTaskOptions, OutputOccupationTable, OutputTaskDetails}, update.Outputs)

	v := ViewOf(st)
	assert.Equal(t, []string{"Charting", "Triage", "Auditing"}, v.TaskOptions)
	assert.Equal(t, "", v.Task)
	assert.Nil(t, v.Details)
}

func TestResetMode_CompositeKeyDistinguishesSharedTask(t *testing.T) {
	d, st := newDashboard(t, DefaultOptions())
	selectValue(t, d, st, InputOccupation, "Nurse")
	selectValue(t, d, st, InputTask, "Auditing")

	v := ViewOf(st)
	require.NotNil(t, v.Details)
	assert.Equal(t, "Nurse", v.Details.Occupation)
	assert.Equal(t, "Clinical audits stay manual.", v.Details.Fields[11].Value)
}

func TestResetMode_TaskOutsideOccupationIsEmpty(t *testing.T) {
	d, st := newDashboard(t, DefaultOptions())
	selectValue(t, d, st, InputOccupation, "Nurse")

	selectValue(t, d, st, InputTask, "Bookkeeping")
	assert.Nil(t, ViewOf(st).Details)
}

func TestLegacyMode_StaleTaskSurvivesOccupationChange(t *testing.T) {
	d, st := newDashboard(t, Options{PageSize: 10, ResetStaleTask: false})
	selectValue(t, d, st, InputOccupation, "Accountant")
	selectValue(t, d, st, InputTask, "Bookkeeping")

	update := selectValue(t, d, st, InputOccupation, "Nurse")
	assert.Equal(t, []string{InputOccupation}, update.Inputs)
	assert.Equal(t, []string{OutputTaskOptions, OutputOccupationTable}, update.Outputs)

	v := ViewOf(st)
	assert.Equal(t, []string{"Charting", "Triage", "Auditing"}, v.TaskOptions)
	assert.Equal(t, "Bookkeeping", v.Task)
	assert.NotContains(t, v.TaskOptions, v.Task)
	require.NotNil(t, v.Details)
	assert.Equal(t, "Bookkeeping is largely automated.", v.Details.Fields[11].Value)
}

func TestLegacyMode_FirstMatchWins(t *testing.T) {
	d, st := newDashboard(t, Options{PageSize: 10, ResetStaleTask: false})
	selectValue(t, d, st, InputOccupation, "Nurse")

	selectValue(t, d, st, InputTask, "Auditing")
	v := ViewOf(st)
	require.NotNil(t, v.Details)
	assert.Equal(t, "Accountant", v.Details.Occupation)
	assert.Equal(t, "Auditors remain in the loop.", v.Details.Fields[11].Value)
}

func TestLegacyMode_MissingTaskIsAnError(t *testing.T) {
	d, st := newDashboard(t, Options{PageSize: 10, ResetStaleTask: false})
	selectValue(t, d, st, InputTask, "Charting")

	_, err := d.Select(context.Background(), st, InputTask, "Flying")
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.CodeNotFound))
	var computeErr *reactive.ComputeError
	require.ErrorAs(t, err, &computeErr)
	assert.Equal(t, OutputTaskDetails, computeErr.Node)

	assert.Equal(t, "Charting", ViewOf(st).Task)
}

func TestNew_RejectsZeroPageSize(t *testing.T) {
	_, err := New(fixture(), Options{})
	require.Error(t, err)
	assert.Equal(t, errors.CodeConfigInvalid, errors.GetCode(err))
}

func TestTable_Pagination(t *testing.T) {
	var rows []occupation.OccupationTaskDetail
	for i := 0; i < 23; i++ {
		rows = append(rows, occupation.OccupationTaskDetail{Occupation: "Clerk", Task: fmt.Sprintf("Task %02d", i)})
	}
	table := newTable(rows, 10)

	assert.Equal(t, 3, table.PageCount())

	first, err := table.Page(1)
	require.NoError(t, err)
	assert.Len(t, first.Rows, 10)
	assert.Equal(t, "Task 00", first.Rows[0][1])
	assert.Equal(t, 23, first.Total)

	last, err := table.Page(3)
	require.NoError(t, err)
	assert.Len(t, last.Rows, 3)
	assert.Equal(t, "Task 22", last.Rows[2][1])

	_, err = table.Page(4)
	assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))
	_, err = table.Page(0)
	assert.Error(t, err)

	empty := newTable(nil, 10)
	page, err := empty.Page(1)
	require.NoError(t, err)
	assert.Empty(t, page.Rows)
	assert.Equal(t, 1, page.Count)
}
