package service

import (
	"sort"

	"github.com/saadjs/healthy-cli/internal/model"
)

// DefaultHistoryLimit is how many saved days history shows.
const DefaultHistoryLimit = 60

type HistoryDay struct {
	Date    string  `json:"date"`
	Totals  Totals  `json:"totals"`
	WaterMl float64 `json:"water_ml"`
	RestDay bool    `json:"rest_day"`
	Entries int     `json:"entries"`
}

// History lists saved days newest first with their sums.
func History(st model.State, limit int) []HistoryDay {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	dates := make([]string, 0, len(st.Days))
	for iso := range st.Days {
		dates = append(dates, iso)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(dates)))
	if len(dates) > limit {
		dates = dates[:limit]
	}
	out := make([]HistoryDay, 0, len(dates))
	for _, iso := range dates {
		d := st.Days[iso]
		out = append(out, HistoryDay{
			Date:    iso,
			Totals:  SumDay(d),
			WaterMl: d.WaterMl,
			RestDay: d.RestDay,
			Entries: len(d.Foods),
		})
	}
	return out
}
