package service

import (
	"fmt"
	"math"
	"time"

	"github.com/saadjs/healthy-cli/internal/model"
	"github.com/saadjs/healthy-cli/internal/nutrition"
)

// DefaultWaterGoalMl applies when no profile goal exists.
const DefaultWaterGoalMl = 2000

const (
	drinkingDayStartHour = 8
	drinkingDayEndHour   = 22
	behindThresholdMl    = 250
	idleReminderMinutes  = 90
	neverDrankMinutes    = 999
	reminderThrottle     = 30 * time.Minute
)

func WaterGoal(p *model.Profile) float64 {
	if p == nil || !(p.WaterGoalMl > 0) {
		return DefaultWaterGoalMl
	}
	return p.WaterGoalMl
}

type PaceStatus string

const (
	PaceRestDay PaceStatus = "rest_day"
	PaceGoalMet PaceStatus = "goal_met"
	PaceDrink   PaceStatus = "drink"
)

// Pace is the hydration hint for one day at one instant.
type Pace struct {
	Status      PaceStatus `json:"status"`
	GoalMl      float64    `json:"goal_ml"`
	DrunkMl     float64    `json:"drunk_ml"`
	RemainingMl float64    `json:"remaining_ml"`
	MinutesLeft float64    `json:"minutes_left,omitempty"`
	MlPerHour   float64    `json:"ml_per_hour,omitempty"`
}

// HydrationPace spreads the remaining water evenly until 22:00 local time.
// Rest days carry no numbers at all.
func HydrationPace(d model.Day, goal float64, now time.Time) Pace {
	if d.RestDay {
		return Pace{Status: PaceRestDay}
	}
	drunk := finiteOrZero(d.WaterMl)
	p := Pace{
		Status:      PaceDrink,
		GoalMl:      goal,
		DrunkMl:     drunk,
		RemainingMl: math.Max(0, goal-drunk),
	}
	if p.RemainingMl <= 0 {
		p.Status = PaceGoalMet
		return p
	}
	end := time.Date(now.Year(), now.Month(), now.Day(), drinkingDayEndHour, 0, 0, 0, now.Location())
	p.MinutesLeft = math.Max(1, nutrition.Round(float64(end.Sub(now))/float64(time.Minute)))
	p.MlPerHour = nutrition.Round(p.RemainingMl / (p.MinutesLeft / 60))
	return p
}

// InQuietHours reports whether hour lies in [From, To); a window whose From
// is not below To wraps past midnight.
func InQuietHours(q model.QuietHours, hour int) bool {
	if q.From < q.To {
		return hour >= q.From && hour < q.To
	}
	return hour >= q.From || hour < q.To
}

// ExpectedWaterMl is the linear target for now: nothing at 08:00, the whole
// goal at 22:00.
func ExpectedWaterMl(goal float64, hour int) float64 {
	h := clampInt(hour, drinkingDayStartHour, drinkingDayEndHour)
	frac := float64(h-drinkingDayStartHour) / float64(drinkingDayEndHour-drinkingDayStartHour)
	return goal * frac
}

type ReminderReason string

const (
	ReminderIdle   ReminderReason = "idle"
	ReminderBehind ReminderReason = "behind"
)

// Reminder is the outcome of one reminder check. Skip names the first
// eligibility rule that failed.
type Reminder struct {
	Fire         bool           `json:"fire"`
	Reason       ReminderReason `json:"reason,omitempty"`
	Skip         string         `json:"skip,omitempty"`
	Date         string         `json:"date"`
	RemainingMl  float64        `json:"remaining_ml"`
	ExpectedMl   float64        `json:"expected_ml"`
	MinutesSince float64        `json:"minutes_since"`
	Message      string         `json:"message,omitempty"`
}

// EvaluateReminder decides whether a hydration reminder is due for the
// active date.
func EvaluateReminder(st model.State, now time.Time) Reminder {
	iso := ActiveDate(st, now)
	r := Reminder{Date: iso}
	if st.User.Profile == nil {
		r.Skip = "no profile"
		return r
	}
	if !st.Settings.SmartWater.Enabled {
		r.Skip = "reminders disabled"
		return r
	}
	if InQuietHours(st.Settings.SmartWater.QuietHours, now.Hour()) {
		r.Skip = "quiet hours"
		return r
	}
	if iso != DateISO(now) {
		r.Skip = "viewing another date"
		return r
	}
	d := Day(st, iso)
	if d.RestDay {
		r.Skip = "rest day"
		return r
	}
	goal := WaterGoal(st.User.Profile)
	drunk := finiteOrZero(d.WaterMl)
	r.RemainingMl = goal - drunk
	if r.RemainingMl <= 0 {
		r.Skip = "goal met"
		return r
	}

	r.MinutesSince = neverDrankMinutes
	if d.LastWaterTs != 0 {
		r.MinutesSince = float64(now.UnixMilli()-d.LastWaterTs) / 60000
	}
	r.ExpectedMl = ExpectedWaterMl(goal, now.Hour())
	behind := drunk < r.ExpectedMl-behindThresholdMl

	switch {
	case behind:
		r.Fire = true
		r.Reason = ReminderBehind
		r.Message = fmt.Sprintf("You're a little behind. %.0f ml left for today.", math.Max(0, nutrition.Round(r.RemainingMl)))
	case r.MinutesSince >= idleReminderMinutes:
		r.Fire = true
		r.Reason = ReminderIdle
		r.Message = "No water logged for a while. Add 200-300 ml?"
	default:
		r.Skip = "on track"
	}
	return r
}

// TickReminder evaluates a reminder and, when it fires, moves lastWaterTs to
// now minus 30 minutes so the idle rule does not refire on the next tick.
func TickReminder(st model.State, now time.Time) (model.State, Reminder) {
	r := EvaluateReminder(st, now)
	if !r.Fire {
		return st, r
	}
	next, err := withDay(st, r.Date, func(d model.Day) (model.Day, error) {
		d.LastWaterTs = now.Add(-reminderThrottle).UnixMilli()
		return d, nil
	})
	if err != nil {
		return st, r
	}
	return next, r
}
