package main

import (
	"context"
	"log"
	"os"
	"time"

	"occustats/adapters/postgres"
	"occustats/internal/dataset"
	"occustats/internal/migration"
	"occustats/ports"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

func main() {
	if len(os.Args) < 4 {
		log.Fatal("Usage: migrate <database_url> <occupation_stats_file> <task_detail_file>")
	}

	databaseURL := os.Args[1]
	statsFile := os.Args[2]
	tasksFile := os.Args[3]

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	log.Printf("Loading %s and %s", statsFile, tasksFile)
	var source ports.DatasetSource = dataset.NewFileSource(statsFile, tasksFile)
	ds, err := source.Load(ctx)
	if err != nil {
		log.Fatalf("Failed to load dataset: %v", err)
	}

	// Connect to database
	db, err := sqlx.Connect("postgres", databaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	runner := migration.NewRunner()
	if err := runner.Run(ctx, db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Printf("Schema at version %s", runner.Version())

	var sink ports.DatasetSink = postgres.NewDatasetRepository(db)
	if err := sink.Import(ctx, ds); err != nil {
		log.Fatalf("Failed to import dataset: %v", err)
	}

	log.Printf("Import complete: %d occupations, %d task rows", len(ds.Aggregates()), len(ds.Tasks()))
}
