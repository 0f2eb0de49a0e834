package selector

import "occustats/internal/reactive"

// View is a typed snapshot of one session's state
type View struct {
	Occupation  string       `json:"occupation"`
	Task        string       `json:"task"`
	TaskOptions []string     `json:"task_options"`
	Table       *Table       `json:"occupation_table"`
	Details     *TaskDetails `json:"task_details"`
}

// ViewOf reads every node of st into a View
func ViewOf(st *reactive.State) View {
	values := st.Values()
	v := View{
		Occupation: values.String(InputOccupation),
		Task:       values.String(InputTask),
	}
	v.TaskOptions, _ = values[OutputTaskOptions].([]string)
	v.Table, _ = values[OutputOccupationTable].(*Table)
	v.Details, _ = values[OutputTaskDetails].(*TaskDetails)
	if v.TaskOptions == nil {
		v.TaskOptions = []string{}
	}
	return v
}
