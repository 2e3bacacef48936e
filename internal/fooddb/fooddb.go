// Package fooddb is the small keyword-matched reference table used for
// offline calorie estimates.
package fooddb

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed foods.yaml
var builtinYAML []byte

// Food holds reference values per 100 g.
type Food struct {
	Keywords []string `yaml:"keywords"`
	Kcal     float64  `yaml:"kcal"`
	ProteinG float64  `yaml:"protein"`
	CarbsG   float64  `yaml:"carbs"`
	FatG     float64  `yaml:"fat"`
}

type Table struct {
	Foods []Food `yaml:"foods"`
}

// Builtin returns the table shipped with the binary.
func Builtin() (*Table, error) {
	return Parse(builtinYAML)
}

// Load reads a replacement table from path; an empty path means Builtin.
func Load(path string) (*Table, error) {
	if strings.TrimSpace(path) == "" {
		return Builtin()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read food table: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (*Table, error) {
	var t Table
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parse food table: %w", err)
	}
	for i, f := range t.Foods {
		if len(f.Keywords) == 0 {
			return nil, fmt.Errorf("food table row %d has no keywords", i+1)
		}
		if f.Kcal < 0 || f.ProteinG < 0 || f.CarbsG < 0 || f.FatG < 0 {
			return nil, fmt.Errorf("food table row %d (%s) has negative values", i+1, f.Keywords[0])
		}
	}
	return &t, nil
}

// Match returns the first row with a keyword contained in name. There is no
// ranking between several matching rows.
func (t *Table) Match(name string) (Food, bool) {
	n := strings.ToLower(name)
	if strings.TrimSpace(n) == "" {
		return Food{}, false
	}
	for _, f := range t.Foods {
		for _, k := range f.Keywords {
			k = strings.ToLower(strings.TrimSpace(k))
			if k != "" && strings.Contains(n, k) {
				return f, true
			}
		}
	}
	return Food{}, false
}
