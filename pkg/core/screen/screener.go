// Package screen filters and ranks the assembled dataset: rule-based
// screening over named columns plus min-max normalized composite rankings.
package screen

import (
	"fmt"
	"strings"

	"cse_research/pkg/models"
)

// Criterion is one screening rule against a dataset column.
type Criterion struct {
	Column   string   `json:"column"`
	Operator string   `json:"operator"` // gt, gte, lt, lte, between
	Value    float64  `json:"value"`
	Value2   *float64 `json:"value2,omitempty"` // upper bound for between
	Weight   float64  `json:"weight,omitempty"` // ranking weight, default 1
}

// Strategy is a named set of criteria.
type Strategy struct {
	Name        string      `json:"name"`
	Description string      `json:"description,omitempty"`
	Criteria    []Criterion `json:"criteria"`
}

// columnAccessors maps screenable column names to row getters. Rows with a
// nil value for a referenced column never pass that criterion.
var columnAccessors = map[string]func(*models.DatasetRow) *float64{
	"income_revenue":       func(r *models.DatasetRow) *float64 { return r.IncomeRevenue },
	"income_net_profit":    func(r *models.DatasetRow) *float64 { return r.IncomeNetProfit },
	"income_eps":           func(r *models.DatasetRow) *float64 { return r.IncomeEPS },
	"balance_total_assets": func(r *models.DatasetRow) *float64 { return r.BalanceTotalAssets },
	"balance_equity":       func(r *models.DatasetRow) *float64 { return r.BalanceEquity },
	"cash_operating":       func(r *models.DatasetRow) *float64 { return r.CashOperating },
	"cash_free_flow":       func(r *models.DatasetRow) *float64 { return r.CashFreeFlow },
	"roe":                  func(r *models.DatasetRow) *float64 { return r.ROE },
	"roa":                  func(r *models.DatasetRow) *float64 { return r.ROA },
	"debt_to_equity":       func(r *models.DatasetRow) *float64 { return r.DebtToEquity },
	"gross_margin":         func(r *models.DatasetRow) *float64 { return r.GrossMargin },
	"operating_margin":     func(r *models.DatasetRow) *float64 { return r.OperatingMargin },
	"net_margin":           func(r *models.DatasetRow) *float64 { return r.NetMargin },
	"current_ratio":        func(r *models.DatasetRow) *float64 { return r.CurrentRatio },
	"quick_ratio":          func(r *models.DatasetRow) *float64 { return r.QuickRatio },
	"interest_coverage":    func(r *models.DatasetRow) *float64 { return r.InterestCoverage },
	"asset_turnover":       func(r *models.DatasetRow) *float64 { return r.AssetTurnover },
	"price":                func(r *models.DatasetRow) *float64 { return r.Price },
	"pe_ratio":             func(r *models.DatasetRow) *float64 { return r.PERatio },
	"pb_ratio":             func(r *models.DatasetRow) *float64 { return r.PBRatio },
	"dividend_yield":       func(r *models.DatasetRow) *float64 { return r.DividendYield },
	"market_cap":           func(r *models.DatasetRow) *float64 { return r.MarketCap },
	"change_percent":       func(r *models.DatasetRow) *float64 { return r.ChangePercent },
	"altman_z_score":       func(r *models.DatasetRow) *float64 { return r.AltmanZScore },
	"graham_upside":        func(r *models.DatasetRow) *float64 { return r.GrahamUpside },
	"dcf_value":            func(r *models.DatasetRow) *float64 { return r.DCFValue },
	"peg_ratio":            func(r *models.DatasetRow) *float64 { return r.PEGRatio },
	"piotroski_f_score":    func(r *models.DatasetRow) *float64 { return intColumn(r.PiotroskiFScore) },
	"magic_formula_rank":   func(r *models.DatasetRow) *float64 { return intColumn(r.MagicFormulaRank) },
	"momentum_score":       func(r *models.DatasetRow) *float64 { return intColumn(r.MomentumScore) },
	"composite_score":      func(r *models.DatasetRow) *float64 { return intColumn(r.CompositeScore) },
}

func intColumn(v *int) *float64 {
	if v == nil {
		return nil
	}
	f := float64(*v)
	return &f
}

// ColumnValue resolves a screenable column on a row. The bool reports
// whether the column exists and the row has a value for it.
func ColumnValue(row *models.DatasetRow, column string) (float64, bool) {
	accessor, ok := columnAccessors[strings.ToLower(column)]
	if !ok {
		return 0, false
	}
	v := accessor(row)
	if v == nil {
		return 0, false
	}
	return *v, true
}

// Validate checks a strategy's criteria are well formed.
func (s *Strategy) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("strategy has no name")
	}
	if len(s.Criteria) == 0 {
		return fmt.Errorf("strategy %q has no criteria", s.Name)
	}
	for _, c := range s.Criteria {
		if _, ok := columnAccessors[strings.ToLower(c.Column)]; !ok {
			return fmt.Errorf("strategy %q: unknown column %q", s.Name, c.Column)
		}
		switch c.Operator {
		case "gt", "gte", "lt", "lte":
		case "between":
			if c.Value2 == nil {
				return fmt.Errorf("strategy %q: between on %q needs value2", s.Name, c.Column)
			}
		default:
			return fmt.Errorf("strategy %q: unknown operator %q", s.Name, c.Operator)
		}
	}
	return nil
}

// matches reports whether the row satisfies one criterion. Missing values
// fail the criterion rather than being treated as zero.
func matches(row *models.DatasetRow, c Criterion) bool {
	v, ok := ColumnValue(row, c.Column)
	if !ok {
		return false
	}
	switch c.Operator {
	case "gt":
		return v > c.Value
	case "gte":
		return v >= c.Value
	case "lt":
		return v < c.Value
	case "lte":
		return v <= c.Value
	case "between":
		return c.Value2 != nil && v >= c.Value && v <= *c.Value2
	}
	return false
}

// Run returns the rows passing every criterion of the strategy.
func Run(rows []models.DatasetRow, s *Strategy) ([]models.DatasetRow, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	var out []models.DatasetRow
	for i := range rows {
		pass := true
		for _, c := range s.Criteria {
			if !matches(&rows[i], c) {
				pass = false
				break
			}
		}
		if pass {
			out = append(out, rows[i])
		}
	}
	return out, nil
}

// LatestPerTicker keeps only each company's newest row, the usual input for
// screening so a company is judged on its most recent period.
func LatestPerTicker(rows []models.DatasetRow) []models.DatasetRow {
	latest := make(map[string]models.DatasetRow)
	for _, r := range rows {
		if have, ok := latest[r.Ticker]; !ok || r.PeriodEnd.After(have.PeriodEnd) {
			latest[r.Ticker] = r
		}
	}
	out := make([]models.DatasetRow, 0, len(latest))
	for _, r := range latest {
		out = append(out, r)
	}
	return out
}
