package service_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/saadjs/healthy-cli/internal/model"
	"github.com/saadjs/healthy-cli/internal/service"
)

func at(t *testing.T, iso string, hour, minute int) time.Time {
	t.Helper()
	d, err := time.ParseInLocation("2006-01-02", iso, time.Local)
	require.NoError(t, err)
	return d.Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute)
}

func withProfile(t *testing.T) model.State {
	t.Helper()
	st, _, err := service.SetProfile(model.DefaultState(), service.ProfileInput{
		Age: 30, Gender: "male", HeightCm: 180, Weight: 80, ActivityFactor: 1.2,
	}, nil)
	require.NoError(t, err)
	return st
}

func addKcal(t *testing.T, st model.State, iso, id string, kcal float64) model.State {
	t.Helper()
	next, _, err := service.AddFood(st, iso, service.FoodInput{Name: id, Amount: 100, Kcal: kcal}, id, time.Now())
	require.NoError(t, err)
	return next
}
