// Package models defines the shared data model for the CSE research engine.
package models

import (
	"time"
)

// StatementType identifies which financial statement a period's data came from.
type StatementType string

const (
	StatementIncome       StatementType = "income_statement"
	StatementBalanceSheet StatementType = "balance_sheet"
	StatementCashFlow     StatementType = "cash_flow"
)

// CanonicalField is a normalized financial-statement line item name,
// independent of the wording used in a particular annual report.
type CanonicalField string

// Income statement fields.
const (
	FieldRevenue           CanonicalField = "revenue"
	FieldCostOfSales       CanonicalField = "cost_of_sales"
	FieldGrossProfit       CanonicalField = "gross_profit"
	FieldOperatingExpenses CanonicalField = "operating_expenses"
	FieldOperatingProfit   CanonicalField = "operating_profit"
	FieldFinanceCosts      CanonicalField = "finance_costs"
	FieldProfitBeforeTax   CanonicalField = "profit_before_tax"
	FieldTaxExpense        CanonicalField = "tax_expense"
	FieldNetProfit         CanonicalField = "net_profit"
	FieldEPS               CanonicalField = "eps"
)

// Balance sheet fields.
const (
	FieldTotalAssets           CanonicalField = "total_assets"
	FieldCurrentAssets         CanonicalField = "current_assets"
	FieldNonCurrentAssets      CanonicalField = "non_current_assets"
	FieldCashAndEquivalents    CanonicalField = "cash_and_equivalents"
	FieldInventories           CanonicalField = "inventories"
	FieldTradeReceivables      CanonicalField = "trade_receivables"
	FieldTotalLiabilities      CanonicalField = "total_liabilities"
	FieldCurrentLiabilities    CanonicalField = "current_liabilities"
	FieldNonCurrentLiabilities CanonicalField = "non_current_liabilities"
	FieldTotalDebt             CanonicalField = "total_debt"
	FieldEquity                CanonicalField = "equity"
	FieldRetainedEarnings      CanonicalField = "retained_earnings"
	FieldStatedCapital         CanonicalField = "stated_capital"
)

// Cash flow fields.
const (
	FieldOperatingCashFlow CanonicalField = "operating_cash_flow"
	FieldInvestingCashFlow CanonicalField = "investing_cash_flow"
	FieldFinancingCashFlow CanonicalField = "financing_cash_flow"
	FieldNetCashFlow       CanonicalField = "net_cash_flow"
	FieldCapex             CanonicalField = "capex"
	FieldDividendsPaid     CanonicalField = "dividends_paid"
)

// FinancialPeriod holds one fiscal period's statement data for one company.
// Field values are always in base LKR (unit scaling already applied).
// A period is immutable once written; re-parsing a document replaces the
// whole period rather than patching individual fields.
type FinancialPeriod struct {
	Ticker        string                     `json:"ticker"`
	PeriodEnd     time.Time                  `json:"period_end"`
	Statement     StatementType              `json:"statement_type"`
	Fields        map[CanonicalField]float64 `json:"fields"`
	UnitScale     float64                    `json:"unit_scale"`     // scale the source table reported in (1, 1e3, 1e6, ...)
	SourceDoc     string                     `json:"source_doc"`     // path or URL of the PDF this came from
	ParsedAt      time.Time                  `json:"parsed_at"`      // used for last-write-wins deduplication
	LowConfidence bool                       `json:"low_confidence"` // set when the year column had to be guessed
}

// PeriodKey is the deduplication identity of a FinancialPeriod.
type PeriodKey struct {
	Ticker    string
	PeriodEnd string // yyyy-mm-dd
	Statement StatementType
}

// Key returns the deduplication key for this period.
func (p *FinancialPeriod) Key() PeriodKey {
	return PeriodKey{
		Ticker:    p.Ticker,
		PeriodEnd: p.PeriodEnd.Format("2006-01-02"),
		Statement: p.Statement,
	}
}

// Get returns a field value and whether it is present.
func (p *FinancialPeriod) Get(f CanonicalField) (float64, bool) {
	if p == nil || p.Fields == nil {
		return 0, false
	}
	v, ok := p.Fields[f]
	return v, ok
}

// MarketQuote is a scraped point-in-time market snapshot for one security.
type MarketQuote struct {
	Ticker            string    `json:"ticker" csv:"ticker"`
	Name              string    `json:"name" csv:"name"`
	Sector            string    `json:"sector" csv:"sector"`
	Price             float64   `json:"price" csv:"price"`
	ChangePercent     float64   `json:"change_percent" csv:"change_percent"`
	Volume            float64   `json:"volume" csv:"volume"`
	MarketCap         float64   `json:"market_cap" csv:"market_cap"`
	SharesOutstanding float64   `json:"shares_outstanding" csv:"shares_outstanding"`
	EPS               float64   `json:"eps" csv:"eps"`
	PERatio           float64   `json:"pe_ratio" csv:"pe_ratio"`
	PBRatio           float64   `json:"pb_ratio" csv:"pb_ratio"`
	NAV               float64   `json:"nav" csv:"nav"`
	DividendYield     float64   `json:"dividend_yield" csv:"dividend_yield"`
	DividendPerShare  float64   `json:"dividend_per_share" csv:"dividend_per_share"`
	High52Week        float64   `json:"high_52_week" csv:"high_52_week"`
	Low52Week         float64   `json:"low_52_week" csv:"low_52_week"`
	AsOf              time.Time `json:"as_of" csv:"as_of"`
}

// CompanyRecord is the append-only per-company history: identity plus every
// FinancialPeriod extracted so far and the quote history from the scraper.
type CompanyRecord struct {
	Ticker    string             `json:"ticker"`
	Name      string             `json:"name"`
	Sector    string             `json:"sector"`
	Periods   []*FinancialPeriod `json:"periods"`
	Quotes    []MarketQuote      `json:"quotes"`
	UpdatedAt time.Time          `json:"updated_at"`
}

// LatestQuote returns the most recent quote, or nil when none exist.
func (c *CompanyRecord) LatestQuote() *MarketQuote {
	var latest *MarketQuote
	for i := range c.Quotes {
		q := &c.Quotes[i]
		if latest == nil || q.AsOf.After(latest.AsOf) {
			latest = q
		}
	}
	return latest
}
