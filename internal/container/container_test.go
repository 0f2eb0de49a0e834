package container

import (
	"bytes"
	"context"
	stderrors "errors"
	"log"
	"os"
	"strings"
	"testing"

	"occustats/domain/occupation"
	"occustats/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockSource struct {
	mock.Mock
}

func (m *mockSource) Load(ctx context.Context) (*occupation.Dataset, error) {
	args := m.Called(ctx)
	ds, _ := args.Get(0).(*occupation.Dataset)
	return ds, args.Error(1)
}

func sampleDataset() *occupation.Dataset {
	return occupation.NewDataset(
		[]occupation.OccupationAggregate{
			{Occupation: "Accountant", Employment: 1234000, MeanIncome: 86740, MedianIncome: 79880, AutomationPercent: 45.2, AugmentationPercent: 30, ProductivityIncrease: 12.5},
			{Occupation: "Nurse", Employment: 3130600, MeanIncome: 89010, MedianIncome: 86070, AutomationPercent: 10, AugmentationPercent: 55.5, ProductivityIncrease: 8},
			{Occupation: "Software Developer", Employment: 1656880, MeanIncome: 132930, MedianIncome: 127260, AutomationPercent: 25.5, AugmentationPercent: 60, ProductivityIncrease: 22},
		},
		[]occupation.OccupationTaskDetail{
			{Occupation: "Accountant", Task: "Bookkeeping", AutomationPercentage: 80, AugmentationPercentage: 20, ProductivityMultiplier: 1.5},
			{Occupation: "Nurse", Task: "Charting", AutomationPercentage: 40, AugmentationPercentage: 60, ProductivityMultiplier: 1.2},
		},
	)
}

func TestNew_RejectsNilConfig(t *testing.T) {
	_, err := New(nil)
	assert.Error(t, err)
}

func TestInitWithSource(t *testing.T) {
	src := new(mockSource)
	src.On("Load", mock.Anything).Return(sampleDataset(), nil).Once()

	c, err := New(config.Default())
	require.NoError(t, err)
	require.NoError(t, c.InitWithSource(context.Background(), src))
	src.AssertExpectations(t)

	assert.Len(t, c.Charts, 6)
	assert.Len(t, c.ChartImages, 6)
	for _, spec := range c.Charts {
		assert.NotEmpty(t, c.ChartImages[spec.ID], spec.ID)
	}
	require.NotNil(t, c.Dashboard)
	assert.Equal(t, []string{"Accountant", "Nurse"}, c.Dashboard.OccupationOptions())
	assert.True(t, c.Dashboard.Options().ResetStaleTask)
	require.NotNil(t, c.Sessions)
	assert.Empty(t, c.Warnings)
	assert.NoError(t, c.Shutdown(context.Background()))
}

func TestInitWithSource_LoadError(t *testing.T) {
	boom := stderrors.New("disk on fire")
	src := new(mockSource)
	src.On("Load", mock.Anything).Return(nil, boom)

	c, err := New(config.Default())
	require.NoError(t, err)

	err = c.InitWithSource(context.Background(), src)
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Nil(t, c.Dashboard)
}

func TestInitWithSource_EmptyDatasetFailsChartBuild(t *testing.T) {
	src := new(mockSource)
	src.On("Load", mock.Anything).Return(occupation.NewDataset(nil, nil), nil)

	c, err := New(config.Default())
	require.NoError(t, err)
	err = c.InitWithSource(context.Background(), src)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to build charts")
}

func TestInit_FileSource(t *testing.T) {
	cfg := config.Default()
	cfg.Data.OccupationStatsFile = "../dataset/testdata/OccupationStats.csv"
	cfg.Data.TaskDetailFile = "../dataset/testdata/csvFile.csv"
	cfg.Dashboard.ResetStaleTask = false

	var logs bytes.Buffer
	log.SetOutput(&logs)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })

	c, err := New(cfg)
	require.NoError(t, err)
	require.NoError(t, c.Init(context.Background()))

	assert.Len(t, c.Dataset.Aggregates(), 3)
	assert.False(t, c.Dashboard.Options().ResetStaleTask)
	require.NotEmpty(t, c.Warnings, "shared Auditing task is reported")

	out := logs.String()
	for _, w := range c.Warnings {
		assert.Equal(t, 1, strings.Count(out, w), w)
	}
	assert.Equal(t, 1, strings.Count(out, "occupations, "), "row counts are logged once")
}
