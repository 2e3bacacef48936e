package estimate_test

import (
	"context"
	"errors"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saadjs/healthy-cli/internal/db"
	"github.com/saadjs/healthy-cli/internal/estimate"
	"github.com/saadjs/healthy-cli/internal/fooddb"
	"github.com/saadjs/healthy-cli/internal/provider/openfoodfacts"
)

type fakeSearcher struct {
	calls atomic.Int32
	items []openfoodfacts.FoodLookup
	err   error
	block bool
}

func (f *fakeSearcher) SearchFoods(ctx context.Context, query string, limit int) ([]openfoodfacts.FoodLookup, []byte, error) {
	f.calls.Add(1)
	if f.block {
		<-ctx.Done()
		return nil, nil, ctx.Err()
	}
	return f.items, nil, f.err
}

func newEstimator(t *testing.T, online estimate.Searcher, withCache bool) *estimate.Estimator {
	t.Helper()
	tbl, err := fooddb.Builtin()
	require.NoError(t, err)
	e := &estimate.Estimator{Foods: tbl, Online: online, Timeout: time.Second, Log: zerolog.Nop()}
	if withCache {
		sqldb, err := db.Open(filepath.Join(t.TempDir(), "healthy.db"))
		require.NoError(t, err)
		t.Cleanup(func() { _ = sqldb.Close() })
		require.NoError(t, db.ApplyMigrations(sqldb))
		e.Cache = &estimate.Cache{DB: sqldb, TTL: time.Hour}
	}
	return e
}

func TestLocalTableScalesPer100g(t *testing.T) {
	t.Parallel()
	e := newEstimator(t, nil, false)
	r := e.Estimate(context.Background(), estimate.Request{Name: "עוף", Amount: 200, Unit: "g"})
	require.True(t, r.Found)
	assert.Equal(t, 330.0, r.Estimate.Kcal)
	assert.Equal(t, 62.0, r.Estimate.ProteinG)
	assert.Equal(t, 7.2, r.Estimate.FatG)
	assert.Equal(t, estimate.SourceLocal, r.Estimate.Source)
}

func TestCustomUnitOnlyEstimatesPita(t *testing.T) {
	t.Parallel()
	e := newEstimator(t, nil, false)

	r := e.Estimate(context.Background(), estimate.Request{Name: "Pita", Amount: 2, Unit: "custom"})
	require.True(t, r.Found)
	assert.Equal(t, 330.0, r.Estimate.Kcal)
	assert.Equal(t, 10.9, r.Estimate.ProteinG)

	r = e.Estimate(context.Background(), estimate.Request{Name: "pita", Amount: 0, Unit: "custom"})
	assert.False(t, r.Found)

	r = e.Estimate(context.Background(), estimate.Request{Name: "rice", Amount: 2, Unit: "custom"})
	assert.False(t, r.Found)
}

func TestUnknownFoodWithoutOnlineIsNotFound(t *testing.T) {
	t.Parallel()
	online := &fakeSearcher{items: []openfoodfacts.FoodLookup{{Kcal: 100}}}
	e := newEstimator(t, online, false)
	r := e.Estimate(context.Background(), estimate.Request{Name: "pizza", Amount: 100, Unit: "g", AllowOnline: false})
	assert.False(t, r.Found)
	assert.Equal(t, int32(0), online.calls.Load())
}

func TestOnlineFallbackUsesFirstProductWithEnergy(t *testing.T) {
	t.Parallel()
	online := &fakeSearcher{items: []openfoodfacts.FoodLookup{
		{Description: "empty"},
		{Description: "Margherita", Kcal: 250, ProteinG: 11, CarbsG: 30, FatG: 9.5},
	}}
	e := newEstimator(t, online, false)
	r := e.Estimate(context.Background(), estimate.Request{Name: "pizza", Amount: 150, Unit: "g", AllowOnline: true})
	require.True(t, r.Found)
	assert.Equal(t, 375.0, r.Estimate.Kcal)
	assert.Equal(t, 16.5, r.Estimate.ProteinG)
	assert.Equal(t, 14.3, r.Estimate.FatG)
	assert.Equal(t, estimate.SourceOpenFoodFacts, r.Estimate.Source)
}

func TestOnlineFailureIsNotFound(t *testing.T) {
	t.Parallel()
	e := newEstimator(t, &fakeSearcher{err: errors.New("network down")}, false)
	r := e.Estimate(context.Background(), estimate.Request{Name: "pizza", Amount: 100, Unit: "g", AllowOnline: true})
	assert.False(t, r.Found)
}

func TestOnlineTimeoutIsNotFound(t *testing.T) {
	t.Parallel()
	e := newEstimator(t, &fakeSearcher{block: true}, false)
	e.Timeout = 20 * time.Millisecond
	start := time.Now()
	r := e.Estimate(context.Background(), estimate.Request{Name: "pizza", Amount: 100, Unit: "g", AllowOnline: true})
	assert.False(t, r.Found)
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestCacheHitAvoidsNetwork(t *testing.T) {
	t.Parallel()
	online := &fakeSearcher{items: []openfoodfacts.FoodLookup{{Description: "Margherita", Kcal: 250}}}
	e := newEstimator(t, online, true)

	first := e.Estimate(context.Background(), estimate.Request{Name: "Pizza", Amount: 100, Unit: "g", AllowOnline: true})
	second := e.Estimate(context.Background(), estimate.Request{Name: "  pizza ", Amount: 200, Unit: "g", AllowOnline: true})
	require.True(t, first.Found)
	require.True(t, second.Found)
	assert.Equal(t, 250.0, first.Estimate.Kcal)
	assert.Equal(t, 500.0, second.Estimate.Kcal)
	assert.Equal(t, int32(1), online.calls.Load())
}

func TestCacheRemembersMisses(t *testing.T) {
	t.Parallel()
	online := &fakeSearcher{items: []openfoodfacts.FoodLookup{{Description: "no energy"}}}
	e := newEstimator(t, online, true)
	for i := 0; i < 2; i++ {
		r := e.Estimate(context.Background(), estimate.Request{Name: "mystery", Amount: 100, Unit: "g", AllowOnline: true})
		assert.False(t, r.Found)
	}
	assert.Equal(t, int32(1), online.calls.Load())
}

func TestCacheExpiry(t *testing.T) {
	t.Parallel()
	sqldb, err := db.Open(filepath.Join(t.TempDir(), "healthy.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqldb.Close() })
	require.NoError(t, db.ApplyMigrations(sqldb))

	now := time.Date(2026, 1, 5, 12, 0, 0, 0, time.UTC)
	c := &estimate.Cache{DB: sqldb, TTL: time.Hour, Now: func() time.Time { return now }}
	require.NoError(t, c.Put("openfoodfacts", "Pizza", &openfoodfacts.FoodLookup{Kcal: 250}))

	item, found, hit, err := c.Get("openfoodfacts", "pizza")
	require.NoError(t, err)
	assert.True(t, hit)
	assert.True(t, found)
	assert.Equal(t, 250.0, item.Kcal)

	now = now.Add(2 * time.Hour)
	_, _, hit, err = c.Get("openfoodfacts", "pizza")
	require.NoError(t, err)
	assert.False(t, hit)

	n, err := c.Purge()
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}
