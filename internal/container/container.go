package container

import (
	"context"
	"fmt"
	"log"
	"time"

	"occustats/adapters/plot"
	"occustats/adapters/postgres"
	"occustats/domain/occupation"
	"occustats/internal"
	"occustats/internal/charts"
	"occustats/internal/config"
	"occustats/internal/dataset"
	"occustats/internal/errors"
	"occustats/internal/migration"
	"occustats/internal/selector"
	"occustats/internal/session"
	"occustats/ports"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// Container holds all application dependencies and manages their lifecycle
type Container struct {
	Config *config.Config
	Logger *internal.Logger

	// Infrastructure
	DB     *sqlx.DB
	Source ports.DatasetSource

	// Loaded once at startup, read-only afterwards
	Dataset  *occupation.Dataset
	Warnings []string

	// Charts
	Renderer    *plot.Renderer
	Charts      []charts.Spec
	ChartImages map[string][]byte

	// Interaction
	Dashboard *selector.Dashboard
	Sessions  *session.Store
}

// New creates a new dependency injection container
func New(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	logger := internal.NewLogger(internal.ParseLogLevel(cfg.LogLevel))
	return &Container{
		Config:   cfg,
		Logger:   logger,
		Renderer: plot.NewRenderer(),
	}, nil
}

// Init opens the configured dataset source and builds everything on top of it
func (c *Container) Init(ctx context.Context) error {
	src, err := c.openSource(ctx)
	if err != nil {
		return err
	}
	return c.InitWithSource(ctx, src)
}

// InitWithSource builds the container over an already constructed source
func (c *Container) InitWithSource(ctx context.Context, src ports.DatasetSource) error {
	if src == nil {
		return fmt.Errorf("dataset source cannot be nil")
	}
	c.Source = src

	if err := c.initDataset(ctx); err != nil {
		return fmt.Errorf("failed to load dataset: %w", err)
	}
	if err := c.initCharts(ctx); err != nil {
		return fmt.Errorf("failed to build charts: %w", err)
	}
	if err := c.initDashboard(); err != nil {
		return fmt.Errorf("failed to build dashboard: %w", err)
	}

	log.Printf("Container initialized: %d occupations, %d tasks, %d charts",
		len(c.Dataset.Aggregates()), len(c.Dataset.Tasks()), len(c.Charts))
	return nil
}

// openSource picks the file loader or the Postgres repository
func (c *Container) openSource(ctx context.Context) (ports.DatasetSource, error) {
	switch c.Config.Data.Source {
	case config.SourcePostgres:
		db, err := sqlx.ConnectContext(ctx, "postgres", c.Config.Database.URL)
		if err != nil {
			return nil, errors.WithCode(errors.CodeDatabaseError, errors.Wrap(err, "failed to connect to database"))
		}
		c.DB = db

		if err := migration.NewRunner().Run(ctx, db); err != nil {
			return nil, errors.Wrap(err, "database migration failed")
		}
		return postgres.NewDatasetRepository(db), nil
	default:
		return dataset.NewFileSource(c.Config.Data.OccupationStatsFile, c.Config.Data.TaskDetailFile).
			WithLogger(c.Logger.Named("DatasetLoader")), nil
	}
}

func (c *Container) initDataset(ctx context.Context) error {
	ds, err := c.Source.Load(ctx)
	if err != nil {
		return err
	}
	c.Dataset = ds
	c.Warnings = dataset.Report(ds, c.Logger.Named("DatasetLoader"))
	return nil
}

// initCharts computes the six chart specs and renders them once
func (c *Container) initCharts(ctx context.Context) error {
	start := time.Now()

	specs, err := charts.Build(c.Dataset)
	if err != nil {
		return err
	}
	images, err := c.Renderer.RenderAll(ctx, specs)
	if err != nil {
		return err
	}

	c.Charts = specs
	c.ChartImages = images
	c.Logger.Named("Charts").Info("rendered %d charts in %v", len(images), time.Since(start))
	return nil
}

func (c *Container) initDashboard() error {
	d, err := selector.New(c.Dataset, selector.Options{
		PageSize:       c.Config.Dashboard.PageSize,
		ResetStaleTask: c.Config.Dashboard.ResetStaleTask,
	})
	if err != nil {
		return err
	}
	c.Dashboard = d
	c.Sessions = session.NewStore(d.NewState, c.Config.Dashboard.SessionTTL)
	return nil
}

// Shutdown gracefully shuts down all components
func (c *Container) Shutdown(ctx context.Context) error {
	if c.DB != nil {
		return c.DB.Close()
	}
	return nil
}
