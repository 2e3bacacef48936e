// Package nutrition derives daily energy, macro and water targets from body metrics.
package nutrition

import (
	"fmt"
	"math"

	"github.com/saadjs/healthy-cli/internal/model"
)

// DefaultActivityFactor applies when the caller leaves the activity factor unset.
const DefaultActivityFactor = 1.2

const (
	proteinPerKg   = 1.6
	fatPerKg       = 0.8
	proteinFloorG  = 80
	fatFloorG      = 45
	carbsFloorG    = 50
	waterMlPerKg   = 35
	kcalPerGProt   = 4
	kcalPerGCarb   = 4
	kcalPerGFat    = 9
	mlPerLiter     = 1000
	maleBMROffset  = 5
	otherBMROffset = -161
)

// Body is the raw input a profile is computed from.
type Body struct {
	Age            float64
	Gender         string
	HeightCm       float64
	WeightKg       float64
	ActivityFactor float64
}

// EnergyEstimator turns body metrics into total daily energy expenditure (kcal).
type EnergyEstimator interface {
	EstimateEnergyExpenditure(b Body) (float64, error)
}

// MifflinStJeor estimates TDEE as the Mifflin-St Jeor BMR times the activity factor.
type MifflinStJeor struct{}

func (MifflinStJeor) EstimateEnergyExpenditure(b Body) (float64, error) {
	if err := b.Validate(); err != nil {
		return 0, err
	}
	return BMR(b) * b.activityFactor(), nil
}

// BMR is 10·kg + 6.25·cm − 5·age, plus 5 for men or minus 161 otherwise.
func BMR(b Body) float64 {
	base := 10*b.WeightKg + 6.25*b.HeightCm - 5*b.Age
	if b.Gender == model.GenderMale {
		return base + maleBMROffset
	}
	return base + otherBMROffset
}

func (b Body) Validate() error {
	if !positive(b.Age) {
		return fmt.Errorf("age must be a positive number")
	}
	if !positive(b.HeightCm) {
		return fmt.Errorf("height must be a positive number")
	}
	if !positive(b.WeightKg) {
		return fmt.Errorf("weight must be a positive number")
	}
	if b.ActivityFactor < 0 || math.IsNaN(b.ActivityFactor) || math.IsInf(b.ActivityFactor, 0) {
		return fmt.Errorf("activity factor must be a positive number")
	}
	return nil
}

func (b Body) activityFactor() float64 {
	if b.ActivityFactor == 0 {
		return DefaultActivityFactor
	}
	return b.ActivityFactor
}

// ProfileInput is a body plus an optional explicit water goal in liters.
type ProfileInput struct {
	Body
	WaterGoalLiters float64
}

// ComputeProfile derives a maintenance profile. A nil estimator means Mifflin-St Jeor.
func ComputeProfile(in ProfileInput, est EnergyEstimator) (model.Profile, error) {
	if est == nil {
		est = MifflinStJeor{}
	}
	if err := in.Body.Validate(); err != nil {
		return model.Profile{}, err
	}
	tdee, err := est.EstimateEnergyExpenditure(in.Body)
	if err != nil {
		return model.Profile{}, err
	}
	kcalTarget := Round(tdee)

	gender := in.Gender
	if gender != model.GenderMale {
		gender = model.GenderOther
	}
	return model.Profile{
		Age:            in.Age,
		Gender:         gender,
		HeightCm:       in.HeightCm,
		WeightKg:       in.WeightKg,
		ActivityFactor: in.activityFactor(),
		TDEE:           tdee,
		KcalTarget:     kcalTarget,
		MacroTargets:   DefaultMacroTargets(kcalTarget, in.WeightKg),
		WaterGoalMl:    WaterGoalMl(in.WeightKg, in.WaterGoalLiters),
	}, nil
}

// DefaultMacroTargets fixes protein and fat by body weight; carbs absorb the remainder.
func DefaultMacroTargets(kcalTarget, weightKg float64) model.MacroTargets {
	protein := math.Max(proteinFloorG, Round(weightKg*proteinPerKg))
	fat := math.Max(fatFloorG, Round(weightKg*fatPerKg))
	kcalFromPF := protein*kcalPerGProt + fat*kcalPerGFat
	carbs := math.Max(carbsFloorG, Round((kcalTarget-kcalFromPF)/kcalPerGCarb))
	return model.MacroTargets{ProteinG: protein, CarbsG: carbs, FatG: fat}
}

func DefaultWaterGoalMl(weightKg float64) float64 {
	return Round(weightKg * waterMlPerKg)
}

// WaterGoalMl prefers an explicit liters override over the weight-based default.
func WaterGoalMl(weightKg, liters float64) float64 {
	if positive(liters) {
		return Round(liters * mlPerLiter)
	}
	return DefaultWaterGoalMl(weightKg)
}

// Round rounds half up, so -2.5 becomes -2.
func Round(v float64) float64 {
	return math.Floor(v + 0.5)
}

// Round1 rounds half up to one decimal place.
func Round1(v float64) float64 {
	return math.Floor(v*10+0.5) / 10
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}
