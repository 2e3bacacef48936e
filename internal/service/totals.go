package service

import (
	"math"

	"github.com/saadjs/healthy-cli/internal/model"
	"github.com/saadjs/healthy-cli/internal/nutrition"
)

const (
	// ProgressDisplayCap bounds progress percentages for display.
	ProgressDisplayCap = 200
	// EatingOutTolerance is the relative width of the eating-out band.
	EatingOutTolerance = 0.15
)

type Totals struct {
	Kcal     float64 `json:"kcal"`
	ProteinG float64 `json:"protein"`
	CarbsG   float64 `json:"carbs"`
	FatG     float64 `json:"fat"`
	FiberG   float64 `json:"fiber"`
}

// SumDay adds up every entry of the day. Nothing is cached; callers recompute
// after each change.
func SumDay(d model.Day) Totals {
	var t Totals
	for _, f := range d.Foods {
		t.Kcal += finiteOrZero(f.Kcal)
		t.ProteinG += finiteOrZero(f.ProteinG)
		t.CarbsG += finiteOrZero(f.CarbsG)
		t.FatG += finiteOrZero(f.FatG)
		t.FiberG += finiteOrZero(f.FiberG)
	}
	return t
}

// ProgressPct is actual as a percentage of target, capped for display.
func ProgressPct(actual, target float64) float64 {
	return math.Min(ProgressDisplayCap, actual/math.Max(1, target)*100)
}

// Band is the informational eating-out range around a target.
type Band struct {
	Low  float64 `json:"low"`
	High float64 `json:"high"`
}

func ToleranceBand(target, tolerance float64) Band {
	return Band{
		Low:  nutrition.Round(target * (1 - tolerance)),
		High: nutrition.Round(target * (1 + tolerance)),
	}
}

// AdherenceWithin reports whether actual falls inside target ± tolerance.
func AdherenceWithin(actual float64, target float64, tolerance float64) bool {
	if target == 0 {
		return actual == 0
	}
	lower := target * (1 - tolerance)
	upper := target * (1 + tolerance)
	return actual >= lower && actual <= upper
}

type AxisProgress struct {
	Actual    float64 `json:"actual"`
	Target    float64 `json:"target"`
	Remaining float64 `json:"remaining"`
	Pct       float64 `json:"pct"`
	Band      *Band   `json:"band,omitempty"`
	InBand    bool    `json:"in_band,omitempty"`
}

func axis(actual, target float64, eatingOut bool) AxisProgress {
	a := AxisProgress{
		Actual:    actual,
		Target:    target,
		Remaining: target - actual,
		Pct:       ProgressPct(actual, target),
	}
	if eatingOut {
		b := ToleranceBand(target, EatingOutTolerance)
		a.Band = &b
		a.InBand = AdherenceWithin(actual, target, EatingOutTolerance)
	}
	return a
}

// DaySummary is the dashboard view of one date.
type DaySummary struct {
	Date      string       `json:"date"`
	Totals    Totals       `json:"totals"`
	HasTarget bool         `json:"has_target"`
	EatingOut bool         `json:"eating_out"`
	RestDay   bool         `json:"rest_day"`
	Kcal      AxisProgress `json:"kcal"`
	Protein   AxisProgress `json:"protein"`
	Carbs     AxisProgress `json:"carbs"`
	Fat       AxisProgress `json:"fat"`
	Water     AxisProgress `json:"water"`
}

// Summarize folds the day under iso against the profile targets. The
// eating-out band only widens what is shown; nothing is rejected.
func Summarize(st model.State, iso string) DaySummary {
	d := Day(st, iso)
	t := SumDay(d)
	eatingOut := st.User.Modes.EatingOut
	out := DaySummary{
		Date:      iso,
		Totals:    t,
		EatingOut: eatingOut,
		RestDay:   d.RestDay,
	}
	p := st.User.Profile
	var targets model.MacroTargets
	var kcal float64
	water := float64(DefaultWaterGoalMl)
	if p != nil {
		out.HasTarget = true
		targets = p.MacroTargets
		kcal = p.KcalTarget
		water = WaterGoal(p)
	}
	out.Kcal = axis(t.Kcal, kcal, eatingOut)
	out.Protein = axis(t.ProteinG, targets.ProteinG, eatingOut)
	out.Carbs = axis(t.CarbsG, targets.CarbsG, eatingOut)
	out.Fat = axis(t.FatG, targets.FatG, eatingOut)
	out.Water = axis(d.WaterMl, water, false)
	return out
}

func finiteOrZero(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
