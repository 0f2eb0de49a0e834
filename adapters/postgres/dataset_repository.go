package postgres

import (
	"context"
	"database/sql"
	"math"

	"occustats/domain/occupation"
	"occustats/internal/errors"

	"github.com/jmoiron/sqlx"
)

// DatasetRepository reads and replaces the two occupation tables
type DatasetRepository struct {
	db *sqlx.DB
}

// NewDatasetRepository creates a new dataset repository
func NewDatasetRepository(db *sqlx.DB) *DatasetRepository {
	return &DatasetRepository{db: db}
}

type aggregateRow struct {
	Position int `db:"position"`
	occupation.OccupationAggregate
}

type taskRow struct {
	Position                int             `db:"position"`
	Occupation              string          `db:"occupation"`
	Task                    string          `db:"task"`
	AutomationPercentage    sql.NullFloat64 `db:"automation_percentage"`
	AugmentationPercentage  sql.NullFloat64 `db:"augmentation_percentage"`
	ProductivityMultiplier  sql.NullFloat64 `db:"productivity_multiplier"`
	ImpactOnAutomation      string          `db:"impact_on_automation"`
	AutomationExplanation   string          `db:"automation_explanation"`
	ImpactOnAugmentation    string          `db:"impact_on_augmentation"`
	AugmentationExplanation string          `db:"augmentation_explanation"`
	ProductivityExplanation string          `db:"productivity_explanation"`
	ProductExample1         string          `db:"product_example_1"`
	ProductExample2         string          `db:"product_example_2"`
	ProductExample3         string          `db:"product_example_3"`
	ProductExample4         string          `db:"product_example_4"`
	CaseStudy1              string          `db:"case_study_1"`
	CaseStudy2              string          `db:"case_study_2"`
	Conclusion              string          `db:"conclusion"`
}

func toNull(v float64) sql.NullFloat64 {
	if math.IsNaN(v) {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: v, Valid: true}
}

func fromNull(v sql.NullFloat64) float64 {
	if !v.Valid {
		return math.NaN()
	}
	return v.Float64
}

func newTaskRow(position int, t occupation.OccupationTaskDetail) taskRow {
	return taskRow{
		Position:                position,
		Occupation:              t.Occupation,
		Task:                    t.Task,
		AutomationPercentage:    toNull(t.AutomationPercentage),
		AugmentationPercentage:  toNull(t.AugmentationPercentage),
		ProductivityMultiplier:  toNull(t.ProductivityMultiplier),
		ImpactOnAutomation:      t.ImpactOnAutomation,
		AutomationExplanation:   t.AutomationExplanation,
		ImpactOnAugmentation:    t.ImpactOnAugmentation,
		AugmentationExplanation: t.AugmentationExplanation,
		ProductivityExplanation: t.ProductivityExplanation,
		ProductExample1:         t.ProductExamples[0],
		ProductExample2:         t.ProductExamples[1],
		ProductExample3:         t.ProductExamples[2],
		ProductExample4:         t.ProductExamples[3],
		CaseStudy1:              t.CaseStudies[0],
		CaseStudy2:              t.CaseStudies[1],
		Conclusion:              t.Conclusion,
	}
}

func (r taskRow) detail() occupation.OccupationTaskDetail {
	return occupation.OccupationTaskDetail{
		Occupation:              r.Occupation,
		Task:                    r.Task,
		AutomationPercentage:    fromNull(r.AutomationPercentage),
		AugmentationPercentage:  fromNull(r.AugmentationPercentage),
		ProductivityMultiplier:  fromNull(r.ProductivityMultiplier),
		ImpactOnAutomation:      r.ImpactOnAutomation,
		AutomationExplanation:   r.AutomationExplanation,
		ImpactOnAugmentation:    r.ImpactOnAugmentation,
		AugmentationExplanation: r.AugmentationExplanation,
		ProductivityExplanation: r.ProductivityExplanation,
		ProductExamples:         [4]string{r.ProductExample1, r.ProductExample2, r.ProductExample3, r.ProductExample4},
		CaseStudies:             [2]string{r.CaseStudy1, r.CaseStudy2},
		Conclusion:              r.Conclusion,
	}
}

// Load reads both tables in their stored order
func (r *DatasetRepository) Load(ctx context.Context) (*occupation.Dataset, error) {
	var aggRows []aggregateRow
	err := r.db.SelectContext(ctx, &aggRows, `SELECT
		position, occupation, employment, mean_income, median_income,
		automation_percent, augmentation_percent, productivity_increase
	FROM occupation_stats ORDER BY position`)
	if err != nil {
		return nil, errors.WithCode(errors.CodeDatabaseError, errors.Wrap(err, "failed to query occupation_stats"))
	}

	var rows []taskRow
	err = r.db.SelectContext(ctx, &rows, `SELECT
		position, occupation, task, automation_percentage, augmentation_percentage, productivity_multiplier,
		impact_on_automation, automation_explanation, impact_on_augmentation, augmentation_explanation,
		productivity_explanation, product_example_1, product_example_2, product_example_3, product_example_4,
		case_study_1, case_study_2, conclusion
	FROM occupation_tasks ORDER BY position`)
	if err != nil {
		return nil, errors.WithCode(errors.CodeDatabaseError, errors.Wrap(err, "failed to query occupation_tasks"))
	}

	aggregates := make([]occupation.OccupationAggregate, len(aggRows))
	for i, row := range aggRows {
		aggregates[i] = row.OccupationAggregate
	}
	tasks := make([]occupation.OccupationTaskDetail, len(rows))
	for i, row := range rows {
		tasks[i] = row.detail()
	}

	return occupation.NewDataset(aggregates, tasks), nil
}

// Import replaces the contents of both tables in one transaction
func (r *DatasetRepository) Import(ctx context.Context, ds *occupation.Dataset) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.WithCode(errors.CodeDatabaseError, errors.Wrap(err, "failed to begin transaction"))
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM occupation_tasks`); err != nil {
		return errors.WithCode(errors.CodeDatabaseError, errors.Wrap(err, "failed to clear occupation_tasks"))
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM occupation_stats`); err != nil {
		return errors.WithCode(errors.CodeDatabaseError, errors.Wrap(err, "failed to clear occupation_stats"))
	}

	for i, a := range ds.Aggregates() {
		_, err := tx.NamedExecContext(ctx, `INSERT INTO occupation_stats (
			position, occupation, employment, mean_income, median_income,
			automation_percent, augmentation_percent, productivity_increase
		) VALUES (
			:position, :occupation, :employment, :mean_income, :median_income,
			:automation_percent, :augmentation_percent, :productivity_increase
		)`, aggregateRow{Position: i, OccupationAggregate: a})
		if err != nil {
			return errors.WithCode(errors.CodeDatabaseError, errors.Wrapf(err, "failed to insert occupation %q", a.Occupation))
		}
	}

	for i, t := range ds.Tasks() {
		_, err := tx.NamedExecContext(ctx, `INSERT INTO occupation_tasks (
			position, occupation, task, automation_percentage, augmentation_percentage, productivity_multiplier,
			impact_on_automation, automation_explanation, impact_on_augmentation, augmentation_explanation,
			productivity_explanation, product_example_1, product_example_2, product_example_3, product_example_4,
			case_study_1, case_study_2, conclusion
		) VALUES (
			:position, :occupation, :task, :automation_percentage, :augmentation_percentage, :productivity_multiplier,
			:impact_on_automation, :automation_explanation, :impact_on_augmentation, :augmentation_explanation,
			:productivity_explanation, :product_example_1, :product_example_2, :product_example_3, :product_example_4,
			:case_study_1, :case_study_2, :conclusion
		)`, newTaskRow(i, t))
		if err != nil {
			return errors.WithCode(errors.CodeDatabaseError, errors.Wrapf(err, "failed to insert task %q / %q", t.Occupation, t.Task))
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.WithCode(errors.CodeDatabaseError, errors.Wrap(err, "failed to commit import"))
	}
	return nil
}
