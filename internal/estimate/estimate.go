// Package estimate produces best-effort calorie and macro estimates for a
// named food, first from the local reference table and then online.
package estimate

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/saadjs/healthy-cli/internal/fooddb"
	"github.com/saadjs/healthy-cli/internal/model"
	"github.com/saadjs/healthy-cli/internal/nutrition"
	"github.com/saadjs/healthy-cli/internal/provider/openfoodfacts"
)

const (
	SourceLocal         = "local table (per 100g)"
	SourceOpenFoodFacts = "Open Food Facts (per 100g)"

	providerOpenFoodFacts = "openfoodfacts"
	searchPageSize        = 10
	gramsPerPita          = 60
	defaultTimeout        = 8 * time.Second
)

var pitaKeywords = []string{"פיתה", "pita"}

type Estimate struct {
	Kcal     float64 `json:"kcal"`
	ProteinG float64 `json:"protein"`
	CarbsG   float64 `json:"carbs"`
	FatG     float64 `json:"fat"`
	Source   string  `json:"source"`
}

// Result is either Found with an Estimate or not found. Lookup failures
// are never errors.
type Result struct {
	Found    bool     `json:"found"`
	Estimate Estimate `json:"estimate"`
}

type Request struct {
	Name   string
	Amount float64
	Unit   string
	// AllowOnline mirrors the user's online lookup setting.
	AllowOnline bool
}

// Searcher is the online product search the estimator falls back to.
type Searcher interface {
	SearchFoods(ctx context.Context, query string, limit int) ([]openfoodfacts.FoodLookup, []byte, error)
}

type Estimator struct {
	Foods   *fooddb.Table
	Online  Searcher
	Cache   *Cache
	Timeout time.Duration
	Log     zerolog.Logger
}

func (e *Estimator) Estimate(ctx context.Context, req Request) Result {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return Result{}
	}
	unit := strings.ToLower(strings.TrimSpace(req.Unit))
	if unit == "" {
		unit = model.UnitGrams
	}
	if unit != model.UnitGrams {
		return e.estimateCustom(name, req.Amount)
	}
	if !(req.Amount > 0) {
		return Result{}
	}
	if r := e.estimateLocal(name, req.Amount); r.Found {
		return r
	}
	if !req.AllowOnline || e.Online == nil {
		return Result{}
	}
	return e.estimateOnline(ctx, name, req.Amount)
}

// estimateCustom only understands counts of pita, at 60 g each.
func (e *Estimator) estimateCustom(name string, count float64) Result {
	n := strings.ToLower(name)
	for _, k := range pitaKeywords {
		if strings.Contains(n, k) && count > 0 {
			return e.estimateLocal(name, count*gramsPerPita)
		}
	}
	return Result{}
}

func (e *Estimator) estimateLocal(name string, grams float64) Result {
	if e.Foods == nil {
		return Result{}
	}
	f, ok := e.Foods.Match(name)
	if !ok {
		return Result{}
	}
	e.Log.Debug().Str("food", name).Str("keyword", f.Keywords[0]).Msg("local table match")
	return scaled(f.Kcal, f.ProteinG, f.CarbsG, f.FatG, grams, SourceLocal)
}

func (e *Estimator) estimateOnline(ctx context.Context, name string, grams float64) Result {
	item, found, hit, err := e.Cache.Get(providerOpenFoodFacts, name)
	if err != nil {
		e.Log.Debug().Err(err).Msg("lookup cache read failed")
	}
	if hit {
		e.Log.Debug().Str("food", name).Bool("found", found).Msg("lookup cache hit")
		if !found {
			return Result{}
		}
		return scaled(item.Kcal, item.ProteinG, item.CarbsG, item.FatG, grams, SourceOpenFoodFacts)
	}

	timeout := e.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	items, _, err := e.Online.SearchFoods(ctx, name, searchPageSize)
	if err != nil {
		e.Log.Debug().Err(err).Str("food", name).Msg("online lookup failed")
		return Result{}
	}
	best, ok := openfoodfacts.FirstWithEnergy(items)
	var cached *openfoodfacts.FoodLookup
	if ok {
		cached = &best
	}
	if err := e.Cache.Put(providerOpenFoodFacts, name, cached); err != nil {
		e.Log.Debug().Err(err).Msg("lookup cache write failed")
	}
	if !ok {
		e.Log.Debug().Str("food", name).Int("products", len(items)).Msg("no product with energy data")
		return Result{}
	}
	e.Log.Debug().Str("food", name).Str("product", best.Description).Bool("from_kj", best.FromKJ).Msg("online lookup hit")
	return scaled(best.Kcal, best.ProteinG, best.CarbsG, best.FatG, grams, SourceOpenFoodFacts)
}

func scaled(kcal, protein, carbs, fat, grams float64, source string) Result {
	factor := grams / 100
	est := Estimate{
		Kcal:     nutrition.Round(kcal * factor),
		ProteinG: nutrition.Round1(protein * factor),
		CarbsG:   nutrition.Round1(carbs * factor),
		FatG:     nutrition.Round1(fat * factor),
		Source:   source,
	}
	if !(est.Kcal > 0) {
		return Result{}
	}
	return Result{Found: true, Estimate: est}
}
