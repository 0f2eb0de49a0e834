// Package selector wires the occupation and task dropdowns to their outputs
// through a reactive graph.
package selector

import (
	"context"
	"fmt"

	"occustats/domain/occupation"
	"occustats/internal/errors"
	"occustats/internal/reactive"
)

// Node ids
const (
	InputOccupation       = "occupation"
	InputTask             = "task"
	OutputTaskOptions     = "task_options"
	OutputOccupationTable = "occupation_table"
	OutputTaskDetails     = "task_details"
)

// Options controls how the task selection behaves
type Options struct {
	PageSize int
	// ResetStaleTask clears the task when the occupation changes and looks
	// tasks up by (occupation, task). When false the task survives an
	// occupation change and lookup is first match by task name.
	ResetStaleTask bool
}

// DefaultOptions returns 10 rows per page with stale task reset on
func DefaultOptions() Options {
	return Options{PageSize: 10, ResetStaleTask: true}
}

// TaskDetails is the detail panel for one task
type TaskDetails struct {
	Occupation string                    `json:"occupation"`
	Task       string                    `json:"task"`
	Fields     []occupation.LabeledField `json:"fields"`
}

// Dashboard owns the graph built over one dataset
type Dashboard struct {
	ds    *occupation.Dataset
	graph *reactive.Graph
	opts  Options
}

// New builds the dashboard graph
func New(ds *occupation.Dataset, opts Options) (*Dashboard, error) {
	if opts.PageSize < 1 {
		return nil, errors.ConfigInvalid("page size must be at least 1")
	}
	d := &Dashboard{ds: ds, opts: opts}

	b := reactive.NewBuilder().
		Input(InputOccupation).
		Input(InputTask).
		Output(OutputTaskOptions, []string{InputOccupation}, d.taskOptions).
		Output(OutputOccupationTable, []string{InputOccupation}, d.occupationTable)

	if opts.ResetStaleTask {
		b.Output(OutputTaskDetails, []string{InputOccupation, InputTask}, d.taskDetails).
			ResetOnChange(InputOccupation, InputTask)
	} else {
		b.Output(OutputTaskDetails, []string{InputTask}, d.firstMatchTaskDetails)
	}

	g, err := b.Build()
	if err != nil {
		return nil, err
	}
	d.graph = g
	return d, nil
}

// Graph exposes the underlying dependency graph
func (d *Dashboard) Graph() *reactive.Graph {
	return d.graph
}

// Dataset returns the dataset the dashboard reads
func (d *Dashboard) Dataset() *occupation.Dataset {
	return d.ds
}

// Options returns the options the dashboard was built with
func (d *Dashboard) Options() Options {
	return d.opts
}

// OccupationOptions is the occupation dropdown domain
func (d *Dashboard) OccupationOptions() []string {
	return d.ds.Occupations()
}

// NewState returns the initial state: nothing selected, outputs rendered once
func (d *Dashboard) NewState(ctx context.Context) (*reactive.State, error) {
	return d.graph.NewState(ctx)
}

// Select sets an input; an empty value clears it
func (d *Dashboard) Select(ctx context.Context, st *reactive.State, input, value string) (reactive.Update, error) {
	var v interface{}
	if value != "" {
		v = value
	}
	return d.graph.Set(ctx, st, input, v)
}

func (d *Dashboard) taskOptions(_ context.Context, in reactive.Values) (interface{}, error) {
	return occupation.DistinctTasks(d.ds.TasksFor(in.String(InputOccupation))), nil
}

func (d *Dashboard) occupationTable(_ context.Context, in reactive.Values) (interface{}, error) {
	return newTable(d.ds.TasksFor(in.String(InputOccupation)), d.opts.PageSize), nil
}

// taskDetails looks the task up within the selected occupation; a task from
// another occupation renders nothing.
func (d *Dashboard) taskDetails(_ context.Context, in reactive.Values) (interface{}, error) {
	task := in.String(InputTask)
	if task == "" {
		return (*TaskDetails)(nil), nil
	}
	row, ok := d.ds.FindTask(in.String(InputOccupation), task)
	if !ok {
		return (*TaskDetails)(nil), nil
	}
	return details(row), nil
}

// firstMatchTaskDetails takes the first row with that task name in file order
func (d *Dashboard) firstMatchTaskDetails(_ context.Context, in reactive.Values) (interface{}, error) {
	task := in.String(InputTask)
	if task == "" {
		return (*TaskDetails)(nil), nil
	}
	row, ok := d.ds.FirstTaskMatch(task)
	if !ok {
		return nil, errors.NotFound(fmt.Sprintf("task %q", task))
	}
	return details(row), nil
}

func details(row occupation.OccupationTaskDetail) *TaskDetails {
	return &TaskDetails{
		Occupation: row.Occupation,
		Task:       row.Task,
		Fields:     occupation.DetailPanel(row),
	}
}
