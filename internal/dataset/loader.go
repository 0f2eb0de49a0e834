package dataset

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"occustats/adapters/datareadiness/coercer"
	"occustats/adapters/excel"
	"occustats/domain/occupation"
	"occustats/internal"
	"occustats/internal/errors"

	"golang.org/x/sync/errgroup"
)

// FileSource loads the aggregate and task detail tables from two files
type FileSource struct {
	statsPath string
	tasksPath string
	coercer   *coercer.TypeCoercer
	logger    *internal.Logger
}

// NewFileSource creates a source over the two table files
func NewFileSource(statsPath, tasksPath string) *FileSource {
	return &FileSource{
		statsPath: statsPath,
		tasksPath: tasksPath,
		coercer:   coercer.NewTypeCoercer(coercer.DefaultCoercionConfig()),
		logger:    internal.DefaultLogger.Named("DatasetLoader"),
	}
}

// WithLogger replaces the loader's logger
func (s *FileSource) WithLogger(logger *internal.Logger) *FileSource {
	s.logger = logger
	return s
}

// Load reads both files concurrently; the first failure cancels the other read.
func (s *FileSource) Load(ctx context.Context) (*occupation.Dataset, error) {
	start := time.Now()

	var (
		aggregates []occupation.OccupationAggregate
		tasks      []occupation.OccupationTaskDetail
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		data, err := s.read(gctx, s.statsPath)
		if err != nil {
			return err
		}
		aggregates, err = ParseAggregates(data, s.coercer)
		return errors.Wrapf(err, "load %s", s.statsPath)
	})
	g.Go(func() error {
		data, err := s.read(gctx, s.tasksPath)
		if err != nil {
			return err
		}
		if missing := MissingDetailColumns(data); len(missing) > 0 {
			s.logger.Warn("%s has no %s column(s); those detail fields will be empty", s.tasksPath, strings.Join(missing, ", "))
		}
		tasks, err = ParseTasks(data, s.coercer)
		return errors.Wrapf(err, "load %s", s.tasksPath)
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	ds := occupation.NewDataset(aggregates, tasks)
	s.logger.Info("dataset loaded in %s", time.Since(start).Round(time.Millisecond))
	return ds, nil
}

func (s *FileSource) read(ctx context.Context, path string) (*excel.ExcelData, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := excel.NewDataReader(path).ReadData()
	if err != nil {
		return nil, errors.WithCode(errors.CodeDatasetLoad, errors.Wrapf(err, "read %s", path))
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return data, nil
}

// Report logs row counts, percentages outside [0,100] and task names shared
// by several occupations. It never rejects data.
func Report(ds *occupation.Dataset, logger *internal.Logger) []string {
	var warnings []string
	warn := func(format string, args ...interface{}) {
		msg := fmt.Sprintf(format, args...)
		logger.Warn("%s", msg)
		warnings = append(warnings, msg)
	}

	aggregates := ds.Aggregates()
	tasks := ds.Tasks()
	logger.Info("%d occupations, %d task rows, %d occupations with tasks",
		len(aggregates), len(tasks), len(ds.Occupations()))

	for _, a := range aggregates {
		checkPercent(warn, a.Occupation, occupation.ColAutomationPercent, a.AutomationPercent)
		checkPercent(warn, a.Occupation, occupation.ColAugmentationPercent, a.AugmentationPercent)
	}
	for _, t := range tasks {
		label := t.Occupation + " / " + t.Task
		checkPercent(warn, label, occupation.ColAutomationPercentage, t.AutomationPercentage)
		checkPercent(warn, label, occupation.ColAugmentationPercentage, t.AugmentationPercentage)
	}

	collisions := ds.TaskCollisions()
	names := make([]string, 0, len(collisions))
	for task := range collisions {
		names = append(names, task)
	}
	sort.Strings(names)
	for _, task := range names {
		warn("task %q is shared by occupations %s", task, strings.Join(collisions[task], ", "))
	}
	return warnings
}

func checkPercent(warn func(string, ...interface{}), row, column string, v float64) {
	if math.IsNaN(v) || (v >= 0 && v <= 100) {
		return
	}
	warn("%s %s = %g is outside [0,100]", row, column, v)
}
