package store_test

import (
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saadjs/healthy-cli/internal/db"
	"github.com/saadjs/healthy-cli/internal/model"
	"github.com/saadjs/healthy-cli/internal/store"
)

func newTestStore(t *testing.T) (*store.Store, *sql.DB) {
	t.Helper()
	sqldb, err := db.Open(filepath.Join(t.TempDir(), "healthy.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqldb.Close() })
	require.NoError(t, db.ApplyMigrations(sqldb))
	return store.New(sqldb, zerolog.Nop()), sqldb
}

func writeRaw(t *testing.T, sqldb *sql.DB, raw string) {
	t.Helper()
	_, err := sqldb.Exec(`INSERT INTO kv_store(key, value) VALUES(?, ?)`, model.StorageKey, raw)
	require.NoError(t, err)
}

func TestLoadEmptyReturnsDefaults(t *testing.T) {
	s, _ := newTestStore(t)
	st, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, model.DefaultState(), st)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s, _ := newTestStore(t)
	st := model.DefaultState()
	st.User.Name = "Dana"
	st.ActiveDate = "2026-01-05"
	st.Days["2026-01-05"] = model.Day{
		Foods:   []model.FoodEntry{{ID: "a", Name: "rice", Kcal: 260, Source: model.SourceManual}},
		WaterMl: 750,
	}
	st.Settings.SmartWater.Enabled = true
	require.NoError(t, s.Save(st))

	got, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, st, got)
}

func TestLoadCorruptDocumentFallsBackToDefaults(t *testing.T) {
	s, sqldb := newTestStore(t)
	writeRaw(t, sqldb, `{"user": {`)
	st, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, model.DefaultState(), st)
}

func TestLoadShallowMergesMissingTopLevelKeys(t *testing.T) {
	s, sqldb := newTestStore(t)
	writeRaw(t, sqldb, `{"schemaVersion":1,"user":{"name":"Noa","goalMode":"maintain","modes":{"eatingOut":true},"favorites":[],"weights":[]}}`)

	st, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, "Noa", st.User.Name)
	assert.True(t, st.User.Modes.EatingOut)
	assert.NotNil(t, st.Days)
	assert.Equal(t, model.DefaultState().Settings, st.Settings)
}

func TestLoadUpgradesLegacyNestedFields(t *testing.T) {
	s, sqldb := newTestStore(t)
	// no schemaVersion: nested settings written before quiet hours existed
	writeRaw(t, sqldb, `{"user":{"name":"Noa"},"settings":{"smartWater":{"enabled":true}},"days":{"2026-01-05":{"waterMl":300}}}`)

	st, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, model.SchemaVersion, st.SchemaVersion)
	assert.True(t, st.Settings.SmartWater.Enabled)
	assert.Equal(t, model.QuietHours{From: 22, To: 7}, st.Settings.SmartWater.QuietHours)
	assert.True(t, st.Settings.Lookup.OpenFoodFacts)
	assert.Equal(t, model.GoalModeMaintain, st.User.GoalMode)
	assert.NotNil(t, st.User.Favorites)
	assert.NotNil(t, st.Days["2026-01-05"].Foods)
	assert.Equal(t, 300.0, st.Days["2026-01-05"].WaterMl)
}

func TestCurrentVersionDocumentsAreNotDeepFilled(t *testing.T) {
	st, err := store.Decode([]byte(`{"schemaVersion":1,"settings":{"smartWater":{"enabled":true}}}`))
	require.NoError(t, err)
	assert.True(t, st.Settings.SmartWater.Enabled)
	assert.Equal(t, model.QuietHours{}, st.Settings.SmartWater.QuietHours)
	assert.False(t, st.Settings.Lookup.OpenFoodFacts)
}

func TestDecodeRejectsNonObjects(t *testing.T) {
	for _, raw := range []string{`[]`, `42`, `"x"`, `null`} {
		_, err := store.Decode([]byte(raw))
		assert.True(t, errors.Is(err, store.ErrNotObject), raw)
	}
	_, err := store.Decode([]byte(`{nope`))
	assert.Error(t, err)
}

func TestUpdateDoesNotWriteOnError(t *testing.T) {
	s, _ := newTestStore(t)
	st := model.DefaultState()
	st.User.Name = "before"
	require.NoError(t, s.Save(st))
	before, _, err := s.Raw()
	require.NoError(t, err)

	_, err = s.Update(func(cur model.State) (model.State, error) {
		cur.User.Name = "after"
		return cur, errors.New("boom")
	})
	require.Error(t, err)

	after, _, err := s.Raw()
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestResetDropsDocument(t *testing.T) {
	s, _ := newTestStore(t)
	st := model.DefaultState()
	st.User.Name = "Dana"
	require.NoError(t, s.Save(st))
	require.NoError(t, s.Reset())

	_, ok, err := s.Raw()
	require.NoError(t, err)
	assert.False(t, ok)
}
