package plot

import (
	"context"
	"math"
	"testing"

	"occustats/domain/occupation"
	"occustats/internal/charts"
	"occustats/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/plot/vg"
)

func fixtureSpecs(t *testing.T) []charts.Spec {
	t.Helper()
	ds := occupation.NewDataset([]occupation.OccupationAggregate{
		{Occupation: "Accountant", Employment: 1234000, MedianIncome: 79880, AutomationPercent: 45.2, AugmentationPercent: 30, ProductivityIncrease: 12.5},
		{Occupation: "Nurse", Employment: 3130600, MedianIncome: 86070, AutomationPercent: 10, AugmentationPercent: 55.5, ProductivityIncrease: 8},
		{Occupation: "Software Developer", Employment: 1656880, MedianIncome: 127260, AutomationPercent: 25.5, AugmentationPercent: 60, ProductivityIncrease: 22},
	}, nil)
	specs, err := charts.Build(ds)
	require.NoError(t, err)
	return specs
}

func TestRender_ProducesSVG(t *testing.T) {
	r := NewRenderer()
	for _, spec := range fixtureSpecs(t) {
		t.Run(spec.ID, func(t *testing.T) {
			img, err := r.Render(spec)
			require.NoError(t, err)
			assert.Contains(t, string(img), "<svg")
		})
	}
	assert.Equal(t, "image/svg+xml", r.ContentType())
}

func TestRender_UnknownKind(t *testing.T) {
	_, err := NewRenderer().Render(charts.Spec{ID: "pie", Kind: "pie"})
	require.Error(t, err)
	assert.Equal(t, errors.CodeRenderFailed, errors.GetCode(err))
}

func TestRenderAll(t *testing.T) {
	specs := fixtureSpecs(t)

	images, err := NewRenderer().RenderAll(context.Background(), specs)
	require.NoError(t, err)
	assert.Len(t, images, 6)
	for _, spec := range specs {
		assert.NotEmpty(t, images[spec.ID], spec.ID)
	}
}

func TestRadiusScale(t *testing.T) {
	r := NewRenderer()

	scale := r.radiusScale([]float64{100, 400, 2500})
	assert.Equal(t, r.MinRadius, scale(100))
	assert.Equal(t, r.MaxRadius, scale(2500))
	assert.InDelta(t, float64(r.MinRadius+(r.MaxRadius-r.MinRadius)/4), float64(scale(400)), 1e-9)
	assert.Equal(t, r.MinRadius, scale(math.NaN()))

	same := r.radiusScale([]float64{5, 5})
	assert.Equal(t, (r.MinRadius+r.MaxRadius)/2, same(5))

	empty := r.radiusScale(nil)
	assert.Equal(t, vg.Points(4), empty(10))
}
