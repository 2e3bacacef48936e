// Package service holds the operations on the application state. Every
// operation takes the current model.State and returns the next one; inputs
// are never modified in place.
package service

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strings"
	"time"

	"github.com/saadjs/healthy-cli/internal/model"
)

// ErrValidation marks rejected user input. No state is written when an
// operation returns it.
var ErrValidation = errors.New("invalid input")

// ErrNotFound is returned when an id or date does not exist.
var ErrNotFound = errors.New("not found")

const dateLayout = "2006-01-02"

var dateISOPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

func notFoundf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrNotFound, fmt.Sprintf(format, args...))
}

// ValidateDateISO accepts only YYYY-MM-DD strings naming a real calendar day.
func ValidateDateISO(iso string) error {
	if !dateISOPattern.MatchString(iso) {
		return invalidf("date %q must be YYYY-MM-DD", iso)
	}
	if _, err := time.Parse(dateLayout, iso); err != nil {
		return invalidf("date %q is not a calendar day", iso)
	}
	return nil
}

// DateISO formats t as a local calendar date key.
func DateISO(t time.Time) string {
	return t.Format(dateLayout)
}

// startOfDateISO is local midnight of iso in loc.
func startOfDateISO(iso string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(dateLayout, iso, loc)
	if err != nil {
		return time.Time{}, invalidf("date %q is not a calendar day", iso)
	}
	return t, nil
}

func validateNonNegativeFloat(name string, value float64) error {
	if value < 0 || math.IsNaN(value) || math.IsInf(value, 0) {
		return invalidf("%s must be >= 0", name)
	}
	return nil
}

func normalizeName(name string) string {
	return strings.TrimSpace(strings.ToLower(name))
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// copyDays returns a shallow copy of days that callers may write to.
func copyDays(days map[string]model.Day) map[string]model.Day {
	out := make(map[string]model.Day, len(days)+1)
	for k, v := range days {
		out[k] = v
	}
	return out
}
