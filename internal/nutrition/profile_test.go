package nutrition_test

import (
	"math"
	"testing"

	"github.com/saadjs/healthy-cli/internal/model"
	"github.com/saadjs/healthy-cli/internal/nutrition"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeProfileMale(t *testing.T) {
	t.Parallel()
	p, err := nutrition.ComputeProfile(nutrition.ProfileInput{Body: nutrition.Body{
		Age: 30, Gender: model.GenderMale, HeightCm: 180, WeightKg: 80, ActivityFactor: 1.2,
	}}, nil)
	require.NoError(t, err)

	assert.InDelta(t, 2136, p.TDEE, 1e-9)
	assert.Equal(t, 2136.0, p.KcalTarget)
	assert.Equal(t, model.MacroTargets{ProteinG: 128, CarbsG: 262, FatG: 64}, p.MacroTargets)
	assert.Equal(t, 2800.0, p.WaterGoalMl)
}

func TestComputeProfileOtherGenderUsesFloors(t *testing.T) {
	t.Parallel()
	p, err := nutrition.ComputeProfile(nutrition.ProfileInput{Body: nutrition.Body{
		Age: 25, Gender: "female", HeightCm: 165, WeightKg: 55, ActivityFactor: 1.375,
	}}, nutrition.MifflinStJeor{})
	require.NoError(t, err)

	assert.Equal(t, model.GenderOther, p.Gender)
	assert.Equal(t, 1781.0, p.KcalTarget)
	assert.Equal(t, 88.0, p.MacroTargets.ProteinG)
	assert.Equal(t, 45.0, p.MacroTargets.FatG)
	assert.Equal(t, 256.0, p.MacroTargets.CarbsG)
	assert.Equal(t, 1925.0, p.WaterGoalMl)
}

func TestComputeProfileDefaultsActivityFactor(t *testing.T) {
	t.Parallel()
	p, err := nutrition.ComputeProfile(nutrition.ProfileInput{Body: nutrition.Body{
		Age: 30, Gender: model.GenderMale, HeightCm: 180, WeightKg: 80,
	}}, nil)
	require.NoError(t, err)
	assert.Equal(t, nutrition.DefaultActivityFactor, p.ActivityFactor)
	assert.Equal(t, 2136.0, p.KcalTarget)
}

func TestComputeProfileWaterOverride(t *testing.T) {
	t.Parallel()
	p, err := nutrition.ComputeProfile(nutrition.ProfileInput{
		Body:            nutrition.Body{Age: 30, Gender: model.GenderMale, HeightCm: 180, WeightKg: 80, ActivityFactor: 1.2},
		WaterGoalLiters: 3.25,
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, 3250.0, p.WaterGoalMl)
}

func TestComputeProfileRejectsMissingMetrics(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name string
		body nutrition.Body
	}{
		{"zero age", nutrition.Body{Age: 0, HeightCm: 170, WeightKg: 70}},
		{"zero height", nutrition.Body{Age: 30, HeightCm: 0, WeightKg: 70}},
		{"zero weight", nutrition.Body{Age: 30, HeightCm: 170, WeightKg: 0}},
		{"nan weight", nutrition.Body{Age: 30, HeightCm: 170, WeightKg: math.NaN()}},
		{"infinite age", nutrition.Body{Age: math.Inf(1), HeightCm: 170, WeightKg: 70}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := nutrition.ComputeProfile(nutrition.ProfileInput{Body: tc.body}, nil)
			assert.Error(t, err)
		})
	}
}

type fixedEstimator float64

func (f fixedEstimator) EstimateEnergyExpenditure(nutrition.Body) (float64, error) {
	return float64(f), nil
}

func TestComputeProfileWithPluggableEstimator(t *testing.T) {
	t.Parallel()
	p, err := nutrition.ComputeProfile(nutrition.ProfileInput{Body: nutrition.Body{
		Age: 40, Gender: model.GenderMale, HeightCm: 175, WeightKg: 70, ActivityFactor: 1.5,
	}}, fixedEstimator(2499.6))
	require.NoError(t, err)
	assert.Equal(t, 2500.0, p.KcalTarget)
}

func TestDefaultMacroTargetsFloors(t *testing.T) {
	t.Parallel()
	for _, w := range []float64{30, 50, 70, 95, 120} {
		m := nutrition.DefaultMacroTargets(2000, w)
		assert.Equal(t, math.Max(80, nutrition.Round(1.6*w)), m.ProteinG, "protein for %.0fkg", w)
		assert.Equal(t, math.Max(45, nutrition.Round(0.8*w)), m.FatG, "fat for %.0fkg", w)
		assert.GreaterOrEqual(t, m.CarbsG, 50.0)
	}

	low := nutrition.DefaultMacroTargets(500, 40)
	assert.Equal(t, model.MacroTargets{ProteinG: 80, CarbsG: 50, FatG: 45}, low)
}

func TestDefaultWaterGoal(t *testing.T) {
	t.Parallel()
	assert.Equal(t, 2450.0, nutrition.DefaultWaterGoalMl(70))
	assert.Equal(t, 2450.0, nutrition.WaterGoalMl(70, 0))
	assert.Equal(t, 2000.0, nutrition.WaterGoalMl(70, 2))
}

func TestRoundHalfUp(t *testing.T) {
	t.Parallel()
	assert.Equal(t, 3.0, nutrition.Round(2.5))
	assert.Equal(t, -2.0, nutrition.Round(-2.5))
	assert.Equal(t, 62.0, nutrition.Round1(31*2))
	assert.Equal(t, 7.2, nutrition.Round1(3.6*2))
	assert.Equal(t, -0.2, nutrition.Round1(-0.25))
}
