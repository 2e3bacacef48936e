package service

import (
	"math"
	"strings"
	"unicode/utf8"

	"github.com/saadjs/healthy-cli/internal/model"
	"github.com/saadjs/healthy-cli/internal/nutrition"
)

const (
	minNameLen     = 2
	kcalTargetMin  = 800
	waterGoalMinMl = 500
	hourMax        = 23
)

// SetName stores the display name chosen at onboarding.
func SetName(st model.State, name string) (model.State, error) {
	name = strings.TrimSpace(name)
	if utf8.RuneCountInString(name) < minNameLen {
		return st, invalidf("name must be at least %d characters", minNameLen)
	}
	st.User.Name = name
	return st, nil
}

// ProfileInput is the onboarding form; weight may be given in kg or lb.
type ProfileInput struct {
	Age             float64
	Gender          string
	HeightCm        float64
	Weight          float64
	WeightUnit      string
	ActivityFactor  float64
	WaterGoalLiters float64
}

// SetProfile recomputes the profile from raw body metrics, replacing any
// manual target edits.
func SetProfile(st model.State, in ProfileInput, est nutrition.EnergyEstimator) (model.State, model.Profile, error) {
	if !(in.Weight > 0) {
		return st, model.Profile{}, invalidf("weight must be a positive number")
	}
	kg, err := convertWeightToKg(in.Weight, in.WeightUnit)
	if err != nil {
		return st, model.Profile{}, err
	}
	if err := validateNonNegativeFloat("water goal liters", in.WaterGoalLiters); err != nil {
		return st, model.Profile{}, err
	}
	p, err := nutrition.ComputeProfile(nutrition.ProfileInput{
		Body: nutrition.Body{
			Age:            in.Age,
			Gender:         normalizeName(in.Gender),
			HeightCm:       in.HeightCm,
			WeightKg:       nutrition.Round1(kg),
			ActivityFactor: in.ActivityFactor,
		},
		WaterGoalLiters: in.WaterGoalLiters,
	}, est)
	if err != nil {
		return st, model.Profile{}, invalidf("%v", err)
	}
	st.User.Profile = &p
	return st, p, nil
}

// TargetsInput carries manual target edits; nil fields stay unchanged.
type TargetsInput struct {
	KcalTarget  *float64
	ProteinG    *float64
	CarbsG      *float64
	FatG        *float64
	WaterGoalMl *float64
}

// SetTargets applies manual target edits. Macros become whole grams clamped
// at zero; kcal and water respect their floors.
func SetTargets(st model.State, in TargetsInput) (model.State, error) {
	if st.User.Profile == nil {
		return st, invalidf("create a profile first")
	}
	p := *st.User.Profile
	for _, v := range []*float64{in.KcalTarget, in.ProteinG, in.CarbsG, in.FatG, in.WaterGoalMl} {
		if v != nil && (math.IsNaN(*v) || math.IsInf(*v, 0)) {
			return st, invalidf("targets must be numbers")
		}
	}
	if in.KcalTarget != nil {
		p.KcalTarget = math.Max(kcalTargetMin, math.Trunc(*in.KcalTarget))
	}
	if in.WaterGoalMl != nil {
		p.WaterGoalMl = math.Max(waterGoalMinMl, math.Trunc(*in.WaterGoalMl))
	}
	if in.ProteinG != nil {
		p.MacroTargets.ProteinG = math.Max(0, math.Trunc(*in.ProteinG))
	}
	if in.CarbsG != nil {
		p.MacroTargets.CarbsG = math.Max(0, math.Trunc(*in.CarbsG))
	}
	if in.FatG != nil {
		p.MacroTargets.FatG = math.Max(0, math.Trunc(*in.FatG))
	}
	st.User.Profile = &p
	return st, nil
}

// SettingsInput carries settings edits; nil fields stay unchanged.
type SettingsInput struct {
	RemindersEnabled *bool
	QuietFrom        *int
	QuietTo          *int
	OnlineLookup     *bool
}

// UpdateSettings applies edits, clamping quiet hours into 0..23.
func UpdateSettings(st model.State, in SettingsInput) model.State {
	s := st.Settings
	if in.RemindersEnabled != nil {
		s.SmartWater.Enabled = *in.RemindersEnabled
	}
	if in.QuietFrom != nil {
		s.SmartWater.QuietHours.From = clampInt(*in.QuietFrom, 0, hourMax)
	}
	if in.QuietTo != nil {
		s.SmartWater.QuietHours.To = clampInt(*in.QuietTo, 0, hourMax)
	}
	if in.OnlineLookup != nil {
		s.Lookup.OpenFoodFacts = *in.OnlineLookup
	}
	st.Settings = s
	return st
}
