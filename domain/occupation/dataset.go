package occupation

// Dataset holds both occupation tables. It is built once and never mutated,
// so any number of goroutines may read it without locking.
type Dataset struct {
	aggregates  []OccupationAggregate
	tasks       []OccupationTaskDetail
	occupations []string
	byOcc       map[string][]int
	byKey       map[taskKey]int
	byTask      map[string]int
}

type taskKey struct {
	occupation string
	task       string
}

// NewDataset copies the given rows and indexes them for lookups.
func NewDataset(aggregates []OccupationAggregate, tasks []OccupationTaskDetail) *Dataset {
	ds := &Dataset{
		aggregates: append([]OccupationAggregate(nil), aggregates...),
		tasks:      append([]OccupationTaskDetail(nil), tasks...),
		byOcc:      make(map[string][]int),
		byKey:      make(map[taskKey]int),
		byTask:     make(map[string]int),
	}

	for i, t := range ds.tasks {
		if _, seen := ds.byOcc[t.Occupation]; !seen {
			ds.occupations = append(ds.occupations, t.Occupation)
		}
		ds.byOcc[t.Occupation] = append(ds.byOcc[t.Occupation], i)

		// first row wins for both indexes
		key := taskKey{t.Occupation, t.Task}
		if _, ok := ds.byKey[key]; !ok {
			ds.byKey[key] = i
		}
		if _, ok := ds.byTask[t.Task]; !ok {
			ds.byTask[t.Task] = i
		}
	}

	return ds
}

// Aggregates returns a copy of the aggregate table in file order
func (d *Dataset) Aggregates() []OccupationAggregate {
	return append([]OccupationAggregate(nil), d.aggregates...)
}

// Tasks returns a copy of the task detail table in file order
func (d *Dataset) Tasks() []OccupationTaskDetail {
	return append([]OccupationTaskDetail(nil), d.tasks...)
}

// Occupations lists the distinct occupations of the detail table, first-seen order.
func (d *Dataset) Occupations() []string {
	return append([]string(nil), d.occupations...)
}

// TasksFor returns the detail rows of one occupation. An empty occupation matches nothing.
func (d *Dataset) TasksFor(occupation string) []OccupationTaskDetail {
	if occupation == "" {
		return nil
	}
	idx := d.byOcc[occupation]
	rows := make([]OccupationTaskDetail, 0, len(idx))
	for _, i := range idx {
		rows = append(rows, d.tasks[i])
	}
	return rows
}

// DistinctTasks returns the distinct Task values of rows, first-seen order.
func DistinctTasks(rows []OccupationTaskDetail) []string {
	seen := make(map[string]bool, len(rows))
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		if seen[r.Task] {
			continue
		}
		seen[r.Task] = true
		out = append(out, r.Task)
	}
	return out
}

// FindTask looks a row up by its composite (occupation, task) key.
func (d *Dataset) FindTask(occupation, task string) (OccupationTaskDetail, bool) {
	i, ok := d.byKey[taskKey{occupation, task}]
	if !ok {
		return OccupationTaskDetail{}, false
	}
	return d.tasks[i], true
}

// FirstTaskMatch returns the first row in file order whose Task equals task,
// whatever its occupation.
func (d *Dataset) FirstTaskMatch(task string) (OccupationTaskDetail, bool) {
	i, ok := d.byTask[task]
	if !ok {
		return OccupationTaskDetail{}, false
	}
	return d.tasks[i], true
}

// TaskCollisions maps each task name used by more than one occupation to
// those occupations, first-seen order.
func (d *Dataset) TaskCollisions() map[string][]string {
	owners := make(map[string][]string)
	for _, occ := range d.occupations {
		for _, task := range DistinctTasks(d.TasksFor(occ)) {
			owners[task] = append(owners[task], occ)
		}
	}
	collisions := make(map[string][]string)
	for task, occs := range owners {
		if len(occs) > 1 {
			collisions[task] = occs
		}
	}
	return collisions
}
