package service

import (
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/saadjs/healthy-cli/internal/model"
	"github.com/saadjs/healthy-cli/internal/nutrition"
)

const (
	kgPerLb            = 0.45359237
	trendWindow        = 28 * 24 * time.Hour
	weighInsForFullPct = 4
)

type WeightInput struct {
	DateISO string
	Weight  float64
	Unit    string
}

// UpsertWeight stores one weigh-in per date; a second save for the same
// date replaces the first.
func UpsertWeight(st model.State, in WeightInput, now time.Time) (model.State, model.WeightRecord, error) {
	iso := strings.TrimSpace(in.DateISO)
	if err := ValidateDateISO(iso); err != nil {
		return st, model.WeightRecord{}, err
	}
	kg, err := convertWeightToKg(in.Weight, in.Unit)
	if err != nil {
		return st, model.WeightRecord{}, err
	}
	rec := model.WeightRecord{DateISO: iso, Kg: nutrition.Round1(kg), Ts: now.UnixMilli()}
	weights := make([]model.WeightRecord, 0, len(st.User.Weights)+1)
	for _, w := range st.User.Weights {
		if w.DateISO != iso {
			weights = append(weights, w)
		}
	}
	st.User.Weights = append(weights, rec)
	return st, rec, nil
}

func DeleteWeight(st model.State, iso string) (model.State, error) {
	if err := ValidateDateISO(iso); err != nil {
		return st, err
	}
	weights := make([]model.WeightRecord, 0, len(st.User.Weights))
	for _, w := range st.User.Weights {
		if w.DateISO != iso {
			weights = append(weights, w)
		}
	}
	if len(weights) == len(st.User.Weights) {
		return st, notFoundf("weight for %s", iso)
	}
	st.User.Weights = weights
	return st, nil
}

// WeightsNewestFirst orders records by save time, latest first.
func WeightsNewestFirst(weights []model.WeightRecord) []model.WeightRecord {
	out := append([]model.WeightRecord(nil), weights...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Ts > out[j].Ts
	})
	return out
}

// WeightTrend compares the last 28 days with the 28 days before them.
type WeightTrend struct {
	Last           *model.WeightRecord `json:"last,omitempty"`
	CurrentAvgKg   *float64            `json:"current_avg_kg,omitempty"`
	PreviousAvgKg  *float64            `json:"previous_avg_kg,omitempty"`
	DiffKg         *float64            `json:"diff_kg,omitempty"`
	RecentCount    int                 `json:"recent_count"`
	ConsistencyPct float64             `json:"consistency_pct"`
}

// ComputeWeightTrend averages weigh-ins dated in [now-28d, now) and
// [now-56d, now-28d). Either window being empty leaves the diff unset.
func ComputeWeightTrend(weights []model.WeightRecord, now time.Time) WeightTrend {
	var out WeightTrend
	sorted := append([]model.WeightRecord(nil), weights...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].DateISO < sorted[j].DateISO
	})
	if len(sorted) == 0 {
		return out
	}
	last := sorted[len(sorted)-1]
	out.Last = &last

	cut := now.Add(-trendWindow)
	cut2 := now.Add(-2 * trendWindow)
	var curr, prev []float64
	for _, w := range sorted {
		d, err := startOfDateISO(w.DateISO, now.Location())
		if err != nil {
			continue
		}
		switch {
		case !d.Before(cut) && d.Before(now):
			curr = append(curr, w.Kg)
		case !d.Before(cut2) && d.Before(cut):
			prev = append(prev, w.Kg)
		}
	}
	out.CurrentAvgKg = average(curr)
	out.PreviousAvgKg = average(prev)
	if out.CurrentAvgKg != nil && out.PreviousAvgKg != nil {
		diff := nutrition.Round1(*out.CurrentAvgKg - *out.PreviousAvgKg)
		out.DiffKg = &diff
	}
	out.RecentCount = len(curr)
	out.ConsistencyPct = math.Min(100, float64(len(curr))/weighInsForFullPct*100)
	return out
}

// FormatTrend renders a diff with an explicit sign: "+0.4", "-1.2", "0.0".
func FormatTrend(diff *float64) string {
	if diff == nil {
		return "-"
	}
	switch {
	case *diff == 0:
		return "0.0"
	case *diff > 0:
		return "+" + formatKg(*diff)
	default:
		return formatKg(*diff)
	}
}

func formatKg(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func average(values []float64) *float64 {
	if len(values) == 0 {
		return nil
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	avg := sum / float64(len(values))
	return &avg
}

func convertWeightToKg(value float64, unit string) (float64, error) {
	if !(value > 0) || math.IsInf(value, 0) {
		return 0, invalidf("weight must be > 0")
	}
	u := strings.ToLower(strings.TrimSpace(unit))
	if u == "" {
		u = "kg"
	}
	switch u {
	case "kg":
		return value, nil
	case "lb", "lbs":
		return value * kgPerLb, nil
	default:
		return 0, invalidf("invalid weight unit %q (use kg or lb)", unit)
	}
}

// WeightFromKg converts a stored kg value for display in unit.
func WeightFromKg(weightKg float64, unit string) (float64, error) {
	u := strings.ToLower(strings.TrimSpace(unit))
	if u == "" {
		u = "kg"
	}
	switch u {
	case "kg":
		return weightKg, nil
	case "lb", "lbs":
		return weightKg / kgPerLb, nil
	default:
		return 0, invalidf("invalid weight unit %q (use kg or lb)", unit)
	}
}
