package service

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/saadjs/healthy-cli/internal/estimate"
	"github.com/saadjs/healthy-cli/internal/model"
	"github.com/saadjs/healthy-cli/internal/nutrition"
)

// DefaultAmountText labels custom-unit entries logged without a description.
const DefaultAmountText = "free-text amount"

// FoodInput is a food entry as typed by the user. Zero nutrient values mean
// the field was left blank.
type FoodInput struct {
	Name         string
	Amount       float64
	AmountUnit   string
	AmountText   string
	Kcal         float64
	ProteinG     float64
	CarbsG       float64
	FatG         float64
	FiberG       float64
	PhotoDataURL string
	PhotoNotes   string
}

// NeedsEstimate reports whether kcal was left blank.
func (in FoodInput) NeedsEstimate() bool {
	return in.Kcal == 0
}

// ApplyEstimate fills blank fields from a lookup result. A value the user
// typed is never replaced, however late the result arrives.
func ApplyEstimate(in FoodInput, r estimate.Result) FoodInput {
	if !r.Found || !in.NeedsEstimate() || r.Estimate.Kcal <= 0 {
		return in
	}
	in.Kcal = r.Estimate.Kcal
	if in.ProteinG == 0 && r.Estimate.ProteinG > 0 {
		in.ProteinG = r.Estimate.ProteinG
	}
	if in.CarbsG == 0 && r.Estimate.CarbsG > 0 {
		in.CarbsG = r.Estimate.CarbsG
	}
	if in.FatG == 0 && r.Estimate.FatG > 0 {
		in.FatG = r.Estimate.FatG
	}
	return in
}

func normalizeFoodInput(in FoodInput) (FoodInput, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return in, invalidf("food name is required")
	}
	in.AmountUnit = strings.ToLower(strings.TrimSpace(in.AmountUnit))
	if in.AmountUnit == "" {
		in.AmountUnit = model.UnitGrams
	}
	in.AmountText = strings.TrimSpace(in.AmountText)
	switch in.AmountUnit {
	case model.UnitGrams:
		if !(in.Amount > 0) || math.IsInf(in.Amount, 0) {
			return in, invalidf("amount in grams must be > 0")
		}
	case model.UnitCustom:
		if in.AmountText == "" {
			in.AmountText = DefaultAmountText
		}
		if in.Amount < 0 || math.IsNaN(in.Amount) {
			in.Amount = 0
		}
	default:
		return in, invalidf("invalid amount unit %q (use g or custom)", in.AmountUnit)
	}
	for _, f := range []struct {
		name  string
		value float64
	}{
		{"kcal", in.Kcal}, {"protein", in.ProteinG}, {"carbs", in.CarbsG}, {"fat", in.FatG}, {"fiber", in.FiberG},
	} {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return in, invalidf("%s must be a number", f.name)
		}
	}
	in.PhotoNotes = strings.TrimSpace(in.PhotoNotes)
	return in, nil
}

// NewFoodEntry builds the stored entry: kcal rounded to a whole number,
// macros to one decimal, all clamped at zero.
func NewFoodEntry(in FoodInput, id string, now time.Time) (model.FoodEntry, error) {
	in, err := normalizeFoodInput(in)
	if err != nil {
		return model.FoodEntry{}, err
	}
	source := model.SourceManual
	if in.Kcal != 0 {
		source = model.SourceEstimated
	}
	return model.FoodEntry{
		ID:           id,
		Ts:           now.UnixMilli(),
		Name:         in.Name,
		Amount:       in.Amount,
		AmountUnit:   in.AmountUnit,
		AmountText:   in.AmountText,
		Kcal:         math.Max(0, nutrition.Round(in.Kcal)),
		ProteinG:     math.Max(0, nutrition.Round1(in.ProteinG)),
		CarbsG:       math.Max(0, nutrition.Round1(in.CarbsG)),
		FatG:         math.Max(0, nutrition.Round1(in.FatG)),
		FiberG:       math.Max(0, nutrition.Round1(in.FiberG)),
		PhotoDataURL: in.PhotoDataURL,
		PhotoNotes:   in.PhotoNotes,
		Source:       source,
	}, nil
}

// AddFood appends a new entry to iso.
func AddFood(st model.State, iso string, in FoodInput, id string, now time.Time) (model.State, model.FoodEntry, error) {
	entry, err := NewFoodEntry(in, id, now)
	if err != nil {
		return st, model.FoodEntry{}, err
	}
	next, err := appendFood(st, iso, entry)
	if err != nil {
		return st, model.FoodEntry{}, err
	}
	return next, entry, nil
}

func appendFood(st model.State, iso string, entry model.FoodEntry) (model.State, error) {
	return withDay(st, iso, func(d model.Day) (model.Day, error) {
		foods := make([]model.FoodEntry, 0, len(d.Foods)+1)
		foods = append(foods, d.Foods...)
		d.Foods = append(foods, entry)
		return d, nil
	})
}

// DeleteFood removes the entry with id from iso.
func DeleteFood(st model.State, iso, id string) (model.State, error) {
	return withDay(st, iso, func(d model.Day) (model.Day, error) {
		foods := make([]model.FoodEntry, 0, len(d.Foods))
		for _, f := range d.Foods {
			if f.ID != id {
				foods = append(foods, f)
			}
		}
		if len(foods) == len(d.Foods) {
			return d, notFoundf("food entry %q on %s", id, iso)
		}
		d.Foods = foods
		return d, nil
	})
}

// FindFood returns the entry with id on iso.
func FindFood(st model.State, iso, id string) (model.FoodEntry, error) {
	for _, f := range st.Days[iso].Foods {
		if f.ID == id {
			return f, nil
		}
	}
	return model.FoodEntry{}, notFoundf("food entry %q on %s", id, iso)
}

// FoodsNewestFirst lists a day's entries by timestamp, latest first.
func FoodsNewestFirst(d model.Day) []model.FoodEntry {
	out := append([]model.FoodEntry(nil), d.Foods...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Ts > out[j].Ts
	})
	return out
}
