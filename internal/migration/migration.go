package migration

import (
	"context"

	"occustats/internal/errors"

	"github.com/jmoiron/sqlx"
)

// Migrator defines the interface for database migration operations
type Migrator interface {
	Run(ctx context.Context, db *sqlx.DB) error
	Version() string
}

// MigrationRunner handles database schema migrations
type MigrationRunner struct {
	version string
}

// NewRunner creates a new migration runner
func NewRunner() *MigrationRunner {
	return &MigrationRunner{
		version: "1.0.0",
	}
}

// Version returns the migration version
func (r *MigrationRunner) Version() string {
	return r.version
}

// Run executes all database migrations in the correct order. Every step is idempotent.
func (r *MigrationRunner) Run(ctx context.Context, db *sqlx.DB) error {
	if err := r.createOccupationStatsTable(ctx, db); err != nil {
		return errors.WithCode(errors.CodeDatabaseError, errors.Wrap(err, "failed to create occupation_stats table"))
	}

	if err := r.createOccupationTasksTable(ctx, db); err != nil {
		return errors.WithCode(errors.CodeDatabaseError, errors.Wrap(err, "failed to create occupation_tasks table"))
	}

	if err := r.createIndexes(ctx, db); err != nil {
		return errors.WithCode(errors.CodeDatabaseError, errors.Wrap(err, "failed to create indexes"))
	}

	return nil
}

func (r *MigrationRunner) createOccupationStatsTable(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS occupation_stats (
			position INTEGER PRIMARY KEY,
			occupation TEXT NOT NULL,
			employment BIGINT NOT NULL,
			mean_income BIGINT NOT NULL,
			median_income BIGINT NOT NULL,
			automation_percent DOUBLE PRECISION NOT NULL,
			augmentation_percent DOUBLE PRECISION NOT NULL,
			productivity_increase DOUBLE PRECISION NOT NULL
		)
	`)
	return err
}

func (r *MigrationRunner) createOccupationTasksTable(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS occupation_tasks (
			position INTEGER PRIMARY KEY,
			occupation TEXT NOT NULL,
			task TEXT NOT NULL,
			automation_percentage DOUBLE PRECISION,
			augmentation_percentage DOUBLE PRECISION,
			productivity_multiplier DOUBLE PRECISION,
			impact_on_automation TEXT NOT NULL DEFAULT '',
			automation_explanation TEXT NOT NULL DEFAULT '',
			impact_on_augmentation TEXT NOT NULL DEFAULT '',
			augmentation_explanation TEXT NOT NULL DEFAULT '',
			productivity_explanation TEXT NOT NULL DEFAULT '',
			product_example_1 TEXT NOT NULL DEFAULT '',
			product_example_2 TEXT NOT NULL DEFAULT '',
			product_example_3 TEXT NOT NULL DEFAULT '',
			product_example_4 TEXT NOT NULL DEFAULT '',
			case_study_1 TEXT NOT NULL DEFAULT '',
			case_study_2 TEXT NOT NULL DEFAULT '',
			conclusion TEXT NOT NULL DEFAULT ''
		)
	`)
	return err
}

func (r *MigrationRunner) createIndexes(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE INDEX IF NOT EXISTS idx_occupation_tasks_occupation ON occupation_tasks(occupation);
		CREATE INDEX IF NOT EXISTS idx_occupation_tasks_task ON occupation_tasks(task);
	`)
	return err
}
