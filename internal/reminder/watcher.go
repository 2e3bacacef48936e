// Package reminder runs the periodic hydration reminder check.
package reminder

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/saadjs/healthy-cli/internal/model"
	"github.com/saadjs/healthy-cli/internal/service"
)

// DefaultInterval is how often the watcher checks.
const DefaultInterval = time.Minute

// Updater applies one load-modify-save turn to the state document.
type Updater interface {
	Update(fn func(model.State) (model.State, error)) (model.State, error)
}

// Notifier delivers a fired reminder to the user.
type Notifier func(service.Reminder)

type Config struct {
	Interval time.Duration
	Now      func() time.Time
}

type Watcher struct {
	store  Updater
	notify Notifier
	cfg    Config
	log    zerolog.Logger
}

var errNothingToSave = errors.New("reminder did not fire")

func NewWatcher(store Updater, notify Notifier, cfg Config, log zerolog.Logger) *Watcher {
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultInterval
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if notify == nil {
		notify = func(service.Reminder) {}
	}
	return &Watcher{store: store, notify: notify, cfg: cfg, log: log}
}

// Tick runs a single check as one atomic turn. State is only written when
// the reminder fires.
func (w *Watcher) Tick() (service.Reminder, error) {
	now := w.cfg.Now()
	var r service.Reminder
	_, err := w.store.Update(func(st model.State) (model.State, error) {
		var next model.State
		next, r = service.TickReminder(st, now)
		if !r.Fire {
			return st, errNothingToSave
		}
		return next, nil
	})
	if err != nil && !errors.Is(err, errNothingToSave) {
		return r, err
	}
	if r.Fire {
		w.log.Info().Str("date", r.Date).Str("reason", string(r.Reason)).Msg("hydration reminder")
		w.notify(r)
	} else {
		w.log.Debug().Str("date", r.Date).Str("skip", r.Skip).Msg("no reminder")
	}
	return r, nil
}

// Run checks once immediately and then on every interval until ctx is
// canceled.
func (w *Watcher) Run(ctx context.Context) error {
	w.log.Info().Dur("interval", w.cfg.Interval).Msg("hydration watcher starting")
	ticker := time.NewTicker(w.cfg.Interval)
	defer ticker.Stop()

	if _, err := w.Tick(); err != nil {
		w.log.Error().Err(err).Msg("reminder tick")
	}
	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("hydration watcher stopping")
			return ctx.Err()
		case <-ticker.C:
			if _, err := w.Tick(); err != nil {
				w.log.Error().Err(err).Msg("reminder tick")
			}
		}
	}
}
