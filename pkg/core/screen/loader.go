package screen

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	hjson "github.com/hjson/hjson-go/v4"
)

// ==========================================================================
// Strategy loading
// ==========================================================================
//
// Strategies live as .hjson files so analysts can comment their rules
// inline. A handful of built-ins are always available; files with the same
// name override them.

func f(v float64) *float64 { return &v }

func builtinStrategies() map[string]*Strategy {
	return map[string]*Strategy{
		"value": {
			Name:        "value",
			Description: "Cheap on earnings and book with a safe balance sheet",
			Criteria: []Criterion{
				{Column: "pe_ratio", Operator: "between", Value: 0, Value2: f(10), Weight: 2},
				{Column: "pb_ratio", Operator: "between", Value: 0, Value2: f(1.2), Weight: 2},
				{Column: "debt_to_equity", Operator: "lt", Value: 1, Weight: 1},
				{Column: "roe", Operator: "gt", Value: 0.10, Weight: 1},
			},
		},
		"dividend": {
			Name:        "dividend",
			Description: "Sustainable income payers",
			Criteria: []Criterion{
				{Column: "dividend_yield", Operator: "gt", Value: 4, Weight: 2},
				{Column: "income_net_profit", Operator: "gt", Value: 0, Weight: 1},
				{Column: "current_ratio", Operator: "gt", Value: 1, Weight: 1},
			},
		},
		"growth": {
			Name:        "growth",
			Description: "Profitable compounders",
			Criteria: []Criterion{
				{Column: "roe", Operator: "gt", Value: 0.15, Weight: 2},
				{Column: "net_margin", Operator: "gt", Value: 0.10, Weight: 1},
				{Column: "income_net_profit", Operator: "gt", Value: 0, Weight: 1},
			},
		},
		"quality": {
			Name:        "quality",
			Description: "Strong fundamentals regardless of price",
			Criteria: []Criterion{
				{Column: "piotroski_f_score", Operator: "gte", Value: 7, Weight: 2},
				{Column: "altman_z_score", Operator: "gt", Value: 2.99, Weight: 2},
				{Column: "interest_coverage", Operator: "gt", Value: 3, Weight: 1},
			},
		},
		"garp": {
			Name:        "garp",
			Description: "Growth at a reasonable price",
			Criteria: []Criterion{
				{Column: "pe_ratio", Operator: "between", Value: 0, Value2: f(15), Weight: 1},
				{Column: "roe", Operator: "gt", Value: 0.12, Weight: 2},
				{Column: "debt_to_equity", Operator: "lt", Value: 1.5, Weight: 1},
			},
		},
	}
}

// LoadStrategy reads one .hjson strategy file.
func LoadStrategy(path string) (*Strategy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read strategy %s: %w", path, err)
	}
	var s Strategy
	if err := hjson.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse strategy %s: %w", path, err)
	}
	if s.Name == "" {
		s.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// LoadStrategies returns the built-ins merged with any .hjson files in dir.
// A missing dir is not an error; you just get the built-ins.
func LoadStrategies(dir string) (map[string]*Strategy, error) {
	strategies := builtinStrategies()
	if dir == "" {
		return strategies, nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return strategies, nil
		}
		return nil, fmt.Errorf("read strategy dir %s: %w", dir, err)
	}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".hjson") {
			continue
		}
		s, err := LoadStrategy(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, err
		}
		strategies[s.Name] = s
	}
	return strategies, nil
}

// StrategyNames lists available strategies sorted by name.
func StrategyNames(strategies map[string]*Strategy) []string {
	names := make([]string, 0, len(strategies))
	for name := range strategies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
