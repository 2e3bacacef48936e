package service

import (
	"strings"
	"time"

	"github.com/saadjs/healthy-cli/internal/model"
	"github.com/saadjs/healthy-cli/internal/nutrition"
)

// EnsureDay returns the day stored under iso, creating an empty one when it
// is missing. The returned map is a new map whenever a day was created; days
// itself is never written.
func EnsureDay(days map[string]model.Day, iso string) (map[string]model.Day, model.Day) {
	if d, ok := days[iso]; ok {
		if d.Foods == nil {
			d.Foods = []model.FoodEntry{}
		}
		return days, d
	}
	out := copyDays(days)
	d := model.Day{Foods: []model.FoodEntry{}}
	out[iso] = d
	return out, d
}

// Day looks up iso without creating it.
func Day(st model.State, iso string) model.Day {
	_, d := EnsureDay(st.Days, iso)
	return d
}

// withDay applies fn to the day stored under iso and returns the next state.
func withDay(st model.State, iso string, fn func(model.Day) (model.Day, error)) (model.State, error) {
	if err := ValidateDateISO(iso); err != nil {
		return st, err
	}
	_, d := EnsureDay(st.Days, iso)
	next, err := fn(d)
	if err != nil {
		return st, err
	}
	days := copyDays(st.Days)
	days[iso] = next
	st.Days = days
	return st, nil
}

// ActiveDate is the day the user is currently viewing; today when unset.
func ActiveDate(st model.State, now time.Time) string {
	if ValidateDateISO(st.ActiveDate) == nil {
		return st.ActiveDate
	}
	return DateISO(now)
}

func SetActiveDate(st model.State, iso string) (model.State, error) {
	iso = strings.TrimSpace(iso)
	if err := ValidateDateISO(iso); err != nil {
		return st, err
	}
	st.ActiveDate = iso
	st.Days, _ = EnsureDay(st.Days, iso)
	return st, nil
}

// AddWater records ml of water on iso and stamps the time of the drink.
func AddWater(st model.State, iso string, ml float64, now time.Time) (model.State, error) {
	if !(ml > 0) {
		return st, invalidf("water amount must be > 0 ml")
	}
	ml = nutrition.Round(ml)
	return withDay(st, iso, func(d model.Day) (model.Day, error) {
		d.WaterMl += ml
		d.LastWaterTs = now.UnixMilli()
		return d, nil
	})
}

// ToggleRestDay flips the rest-day flag of iso.
func ToggleRestDay(st model.State, iso string) (model.State, error) {
	return withDay(st, iso, func(d model.Day) (model.Day, error) {
		d.RestDay = !d.RestDay
		return d, nil
	})
}

// ToggleEatingOut flips the user-level eating-out display mode.
func ToggleEatingOut(st model.State) model.State {
	st.User.Modes.EatingOut = !st.User.Modes.EatingOut
	return st
}
