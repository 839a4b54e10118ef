package screen

import (
	"sort"

	"cse_research/pkg/models"
)

// ==========================================================================
// Rankings
// ==========================================================================

// RankedRow pairs a dataset row with its normalized ranking score.
type RankedRow struct {
	Row   models.DatasetRow `json:"row"`
	Score float64           `json:"score"` // 0..100
	Rank  int               `json:"rank"`  // 1 = best
}

// lowerIsBetter marks columns where a smaller value should score higher.
var lowerIsBetter = map[string]bool{
	"pe_ratio":           true,
	"pb_ratio":           true,
	"debt_to_equity":     true,
	"peg_ratio":          true,
	"magic_formula_rank": true,
}

// Rank orders rows by a weighted composite of the strategy's criterion
// columns. Each column is min-max normalized to 0..100 across the candidate
// set, inverted where lower is better, then combined by criterion weight.
// Rows missing a column take that column's worst score rather than being
// dropped.
func Rank(rows []models.DatasetRow, s *Strategy) []RankedRow {
	if len(rows) == 0 || len(s.Criteria) == 0 {
		return nil
	}

	type columnStats struct {
		min, max float64
		seen     bool
	}
	stats := make(map[string]*columnStats)
	for _, c := range s.Criteria {
		stats[c.Column] = &columnStats{}
	}
	for i := range rows {
		for col, st := range stats {
			v, ok := ColumnValue(&rows[i], col)
			if !ok {
				continue
			}
			if !st.seen || v < st.min {
				st.min = v
			}
			if !st.seen || v > st.max {
				st.max = v
			}
			st.seen = true
		}
	}

	normalize := func(row *models.DatasetRow, col string) float64 {
		st := stats[col]
		if !st.seen || st.max == st.min {
			return 50
		}
		v, ok := ColumnValue(row, col)
		if !ok {
			if lowerIsBetter[col] {
				v = st.max
			} else {
				v = st.min
			}
		}
		score := (v - st.min) / (st.max - st.min) * 100
		if lowerIsBetter[col] {
			score = 100 - score
		}
		return score
	}

	ranked := make([]RankedRow, 0, len(rows))
	for i := range rows {
		var total, weightSum float64
		for _, c := range s.Criteria {
			w := c.Weight
			if w <= 0 {
				w = 1
			}
			total += normalize(&rows[i], c.Column) * w
			weightSum += w
		}
		ranked = append(ranked, RankedRow{Row: rows[i], Score: total / weightSum})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].Row.Ticker < ranked[j].Row.Ticker
	})
	for i := range ranked {
		ranked[i].Rank = i + 1
	}
	return ranked
}

// TopN truncates a ranking to its first n entries.
func TopN(ranked []RankedRow, n int) []RankedRow {
	if n <= 0 || n >= len(ranked) {
		return ranked
	}
	return ranked[:n]
}
