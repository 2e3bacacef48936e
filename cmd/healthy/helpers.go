package healthy

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/saadjs/healthy-cli/internal/app"
	"github.com/saadjs/healthy-cli/internal/config"
	"github.com/saadjs/healthy-cli/internal/db"
	"github.com/saadjs/healthy-cli/internal/estimate"
	"github.com/saadjs/healthy-cli/internal/fooddb"
	"github.com/saadjs/healthy-cli/internal/logger"
	"github.com/saadjs/healthy-cli/internal/model"
	"github.com/saadjs/healthy-cli/internal/provider/openfoodfacts"
	"github.com/saadjs/healthy-cli/internal/service"
	"github.com/saadjs/healthy-cli/internal/store"
)

// nowFunc is the clock every command reads.
var nowFunc = time.Now

// newID returns ids for food entries and favorites.
var newID = uuid.NewString

// session is what a command needs for one turn.
type session struct {
	cfg   *config.Config
	log   zerolog.Logger
	db    *sql.DB
	store *store.Store
	path  string
}

func withStore(cmd *cobra.Command, run func(*session) error) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log := logger.New(cmd.ErrOrStderr(), debugLogs || cfg.Debug)

	path, err := resolveDBPath(cfg)
	if err != nil {
		return err
	}
	if err := app.EnsureDBDir(path); err != nil {
		return err
	}
	sqldb, err := db.Open(path)
	if err != nil {
		return err
	}
	defer sqldb.Close()

	if err := db.ApplyMigrations(sqldb); err != nil {
		return err
	}
	log.Debug().Str("db", path).Msg("database ready")
	return run(&session{cfg: cfg, log: log, db: sqldb, store: store.New(sqldb, log), path: path})
}

// update runs fn as one load-modify-save turn.
func (rt *session) update(fn func(model.State) (model.State, error)) (model.State, error) {
	return rt.store.Update(fn)
}

func (rt *session) estimator() (*estimate.Estimator, error) {
	foods, err := fooddb.Load(rt.cfg.FoodTablePath)
	if err != nil {
		return nil, err
	}
	return &estimate.Estimator{
		Foods:   foods,
		Online:  &openfoodfacts.Client{BaseURL: rt.cfg.OFFBaseURL, Timeout: rt.cfg.LookupTimeout},
		Cache:   rt.lookupCache(),
		Timeout: rt.cfg.LookupTimeout,
		Log:     rt.log,
	}, nil
}

func (rt *session) lookupCache() *estimate.Cache {
	return &estimate.Cache{DB: rt.db, TTL: rt.cfg.LookupCacheTTL, Now: nowFunc}
}

// resolveDate picks the --date flag value, falling back to the active date.
func resolveDate(st model.State, flagValue string) (string, error) {
	iso := strings.TrimSpace(flagValue)
	if iso == "" {
		return service.ActiveDate(st, nowFunc()), nil
	}
	if iso == "today" {
		return service.DateISO(nowFunc()), nil
	}
	if err := service.ValidateDateISO(iso); err != nil {
		return "", err
	}
	return iso, nil
}

func parseOnOff(name, value string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "on", "true", "yes", "1":
		return true, nil
	case "off", "false", "no", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid --%s %q (use on or off)", name, value)
	}
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}

func printJSON(cmd *cobra.Command, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(b))
	return nil
}

func amountLabel(amount float64, unit, text string) string {
	if unit == model.UnitGrams {
		return fmt.Sprintf("%gg", amount)
	}
	return text
}

func requireProfile(st model.State) (*model.Profile, error) {
	if st.User.Profile == nil {
		return nil, fmt.Errorf("%w: no profile yet; run `healthy profile set` first", service.ErrValidation)
	}
	return st.User.Profile, nil
}
