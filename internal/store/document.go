package store

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/saadjs/healthy-cli/internal/model"
)

// ErrNotObject is returned when a document parses but is not a JSON object.
var ErrNotObject = errors.New("state document must be a JSON object")

type upgradeStep struct {
	version int
	name    string
	apply   func(doc, defaults map[string]any)
}

// Steps run in order for documents written with an older schemaVersion.
var upgradeSteps = []upgradeStep{
	{
		version: 1,
		name:    "nested_defaults",
		apply:   fillMissing,
	},
}

// Decode parses a stored or imported document. Top-level keys are merged
// shallowly over the default skeleton; nested defaults are only supplied by
// the versioned upgrade steps.
func Decode(raw []byte) (model.State, error) {
	var loaded any
	if err := json.Unmarshal(raw, &loaded); err != nil {
		return model.State{}, fmt.Errorf("parse state document: %w", err)
	}
	doc, ok := loaded.(map[string]any)
	if !ok || doc == nil {
		return model.State{}, ErrNotObject
	}

	defaults, err := defaultDocument()
	if err != nil {
		return model.State{}, err
	}
	from := documentVersion(doc)

	merged := make(map[string]any, len(defaults)+len(doc))
	for k, v := range defaults {
		merged[k] = v
	}
	for k, v := range doc {
		merged[k] = v
	}

	for _, step := range upgradeSteps {
		if step.version <= from {
			continue
		}
		step.apply(merged, defaults)
	}
	if from < model.SchemaVersion {
		merged["schemaVersion"] = model.SchemaVersion
	}

	b, err := json.Marshal(merged)
	if err != nil {
		return model.State{}, fmt.Errorf("re-encode merged document: %w", err)
	}
	var st model.State
	if err := json.Unmarshal(b, &st); err != nil {
		return model.State{}, fmt.Errorf("decode state document: %w", err)
	}
	return normalize(st), nil
}

// Encode renders the document; indent selects the pretty export layout.
func Encode(st model.State, indent bool) ([]byte, error) {
	st = normalize(st)
	var (
		b   []byte
		err error
	)
	if indent {
		b, err = json.MarshalIndent(st, "", "  ")
	} else {
		b, err = json.Marshal(st)
	}
	if err != nil {
		return nil, fmt.Errorf("encode state document: %w", err)
	}
	return b, nil
}

func defaultDocument() (map[string]any, error) {
	b, err := json.Marshal(model.DefaultState())
	if err != nil {
		return nil, fmt.Errorf("encode default state: %w", err)
	}
	var out map[string]any
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, fmt.Errorf("decode default state: %w", err)
	}
	return out, nil
}

func documentVersion(doc map[string]any) int {
	v, ok := doc["schemaVersion"].(float64)
	if !ok || v < 0 {
		return 0
	}
	return int(v)
}

// fillMissing copies default keys into doc wherever doc lacks them, recursing
// into objects present on both sides. Existing values always win.
func fillMissing(doc, defaults map[string]any) {
	for k, def := range defaults {
		cur, ok := doc[k]
		if !ok {
			doc[k] = def
			continue
		}
		curMap, curIsMap := cur.(map[string]any)
		defMap, defIsMap := def.(map[string]any)
		if curIsMap && defIsMap {
			fillMissing(curMap, defMap)
		}
	}
}

func normalize(st model.State) model.State {
	if st.Days == nil {
		st.Days = map[string]model.Day{}
	}
	for iso, d := range st.Days {
		if d.Foods == nil {
			d.Foods = []model.FoodEntry{}
			st.Days[iso] = d
		}
	}
	if st.User.Favorites == nil {
		st.User.Favorites = []model.FavoriteMeal{}
	}
	if st.User.Weights == nil {
		st.User.Weights = []model.WeightRecord{}
	}
	if st.User.GoalMode == "" {
		st.User.GoalMode = model.GoalModeMaintain
	}
	return st
}
