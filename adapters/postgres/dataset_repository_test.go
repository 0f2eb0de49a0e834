package postgres

import (
	"context"
	"math"
	"os"
	"testing"

	"occustats/domain/occupation"
	"occustats/internal/migration"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNullConversion(t *testing.T) {
	assert.False(t, toNull(math.NaN()).Valid)
	assert.Equal(t, 1.5, toNull(1.5).Float64)
	assert.True(t, math.IsNaN(fromNull(toNull(math.NaN()))))
	assert.Equal(t, 2.0, fromNull(toNull(2)))
}

func TestTaskRow_RoundTrip(t *testing.T) {
	in := occupation.OccupationTaskDetail{
		Occupation:             "Accountant",
		Task:                   "Auditing",
		AutomationPercentage:   35,
		AugmentationPercentage: 65,
		ProductivityMultiplier: math.NaN(),
		ProductExamples:        [4]string{"a", "b", "", "d"},
		CaseStudies:            [2]string{"case", ""},
		Conclusion:             "Auditors remain in the loop.",
	}

	out := newTaskRow(3, in).detail()
	assert.Equal(t, in.Occupation, out.Occupation)
	assert.Equal(t, in.ProductExamples, out.ProductExamples)
	assert.Equal(t, in.CaseStudies, out.CaseStudies)
	assert.Equal(t, in.Conclusion, out.Conclusion)
	assert.True(t, math.IsNaN(out.ProductivityMultiplier))
}

func TestDatasetRepository_ImportLoad(t *testing.T) {
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	db, err := sqlx.Connect("postgres", url)
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, migration.NewRunner().Run(ctx, db))

	ds := occupation.NewDataset(
		[]occupation.OccupationAggregate{
			{Occupation: "Nurse", Employment: 3130600, MeanIncome: 89010, MedianIncome: 86070, AutomationPercent: 10, AugmentationPercent: 55.5, ProductivityIncrease: 8},
			{Occupation: "Accountant", Employment: 1234000, MeanIncome: 86740, MedianIncome: 79880, AutomationPercent: 45.2, AugmentationPercent: 30, ProductivityIncrease: 12.5},
		},
		[]occupation.OccupationTaskDetail{
			{Occupation: "Nurse", Task: "Charting", AutomationPercentage: 40, AugmentationPercentage: 60, ProductivityMultiplier: math.NaN()},
			{Occupation: "Accountant", Task: "Auditing", AutomationPercentage: 35, AugmentationPercentage: 65, ProductivityMultiplier: 1.1, Conclusion: "Auditors remain in the loop."},
		},
	)

	repo := NewDatasetRepository(db)
	require.NoError(t, repo.Import(ctx, ds))
	require.NoError(t, repo.Import(ctx, ds))

	loaded, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, ds.Aggregates(), loaded.Aggregates())
	assert.Equal(t, []string{"Nurse", "Accountant"}, loaded.Occupations())

	row, ok := loaded.FindTask("Accountant", "Auditing")
	require.True(t, ok)
	assert.Equal(t, "Auditors remain in the loop.", row.Conclusion)

	charting, ok := loaded.FindTask("Nurse", "Charting")
	require.True(t, ok)
	assert.True(t, math.IsNaN(charting.ProductivityMultiplier))
}
