package models

import "time"

// DatasetRow is the flat, persisted output row: one row per company per
// period, with canonical column names. Pointer columns are blank in CSV and
// null in JSON when the underlying value was missing or a ratio was
// undefined.
type DatasetRow struct {
	Ticker    string    `json:"ticker" csv:"ticker"`
	Name      string    `json:"name" csv:"name"`
	Sector    string    `json:"sector" csv:"sector"`
	PeriodEnd time.Time `json:"period_end" csv:"period_end"`

	// Income statement (base LKR)
	IncomeRevenue         *float64 `json:"income_revenue" csv:"income_revenue"`
	IncomeCostOfSales     *float64 `json:"income_cost_of_sales" csv:"income_cost_of_sales"`
	IncomeGrossProfit     *float64 `json:"income_gross_profit" csv:"income_gross_profit"`
	IncomeOperatingProfit *float64 `json:"income_operating_profit" csv:"income_operating_profit"`
	IncomeFinanceCosts    *float64 `json:"income_finance_costs" csv:"income_finance_costs"`
	IncomeProfitBeforeTax *float64 `json:"income_profit_before_tax" csv:"income_profit_before_tax"`
	IncomeNetProfit       *float64 `json:"income_net_profit" csv:"income_net_profit"`
	IncomeEPS             *float64 `json:"income_eps" csv:"income_eps"`

	// Balance sheet (base LKR)
	BalanceTotalAssets        *float64 `json:"balance_total_assets" csv:"balance_total_assets"`
	BalanceCurrentAssets      *float64 `json:"balance_current_assets" csv:"balance_current_assets"`
	BalanceCashAndEquivalents *float64 `json:"balance_cash_and_equivalents" csv:"balance_cash_and_equivalents"`
	BalanceInventories        *float64 `json:"balance_inventories" csv:"balance_inventories"`
	BalanceTotalLiabilities   *float64 `json:"balance_total_liabilities" csv:"balance_total_liabilities"`
	BalanceCurrentLiabilities *float64 `json:"balance_current_liabilities" csv:"balance_current_liabilities"`
	BalanceTotalDebt          *float64 `json:"balance_total_debt" csv:"balance_total_debt"`
	BalanceEquity             *float64 `json:"balance_equity" csv:"balance_equity"`
	BalanceRetainedEarnings   *float64 `json:"balance_retained_earnings" csv:"balance_retained_earnings"`

	// Cash flow (base LKR)
	CashOperating *float64 `json:"cash_operating" csv:"cash_operating"`
	CashInvesting *float64 `json:"cash_investing" csv:"cash_investing"`
	CashFinancing *float64 `json:"cash_financing" csv:"cash_financing"`
	CashCapex     *float64 `json:"cash_capex" csv:"cash_capex"`
	CashFreeFlow  *float64 `json:"cash_free_flow" csv:"cash_free_flow"`

	// Derived ratios (undefined = null, never zero)
	ROE              *float64 `json:"roe" csv:"roe"`
	ROA              *float64 `json:"roa" csv:"roa"`
	DebtToEquity     *float64 `json:"debt_to_equity" csv:"debt_to_equity"`
	GrossMargin      *float64 `json:"gross_margin" csv:"gross_margin"`
	OperatingMargin  *float64 `json:"operating_margin" csv:"operating_margin"`
	NetMargin        *float64 `json:"net_margin" csv:"net_margin"`
	CurrentRatio     *float64 `json:"current_ratio" csv:"current_ratio"`
	QuickRatio       *float64 `json:"quick_ratio" csv:"quick_ratio"`
	InterestCoverage *float64 `json:"interest_coverage" csv:"interest_coverage"`
	AssetTurnover    *float64 `json:"asset_turnover" csv:"asset_turnover"`

	// Market metrics matched by nearest quote date
	Price             *float64   `json:"price" csv:"price"`
	PERatio           *float64   `json:"pe_ratio" csv:"pe_ratio"`
	PBRatio           *float64   `json:"pb_ratio" csv:"pb_ratio"`
	DividendYield     *float64   `json:"dividend_yield" csv:"dividend_yield"`
	MarketCap         *float64   `json:"market_cap" csv:"market_cap"`
	SharesOutstanding *float64   `json:"shares_outstanding" csv:"shares_outstanding"`
	ChangePercent     *float64   `json:"change_percent" csv:"change_percent"`
	High52Week        *float64   `json:"high_52_week" csv:"high_52_week"`
	Low52Week         *float64   `json:"low_52_week" csv:"low_52_week"`
	QuoteDate         *time.Time `json:"quote_date" csv:"quote_date"`

	// Investment scores
	PiotroskiFScore  *int     `json:"piotroski_f_score" csv:"piotroski_f_score"`
	AltmanZScore     *float64 `json:"altman_z_score" csv:"altman_z_score"`
	GrahamValue      *float64 `json:"graham_value" csv:"graham_value"`
	GrahamUpside     *float64 `json:"graham_upside" csv:"graham_upside"`
	DCFValue         *float64 `json:"dcf_value" csv:"dcf_value"`
	PEGRatio         *float64 `json:"peg_ratio" csv:"peg_ratio"`
	MagicFormulaRank *int     `json:"magic_formula_rank" csv:"magic_formula_rank"`
	MomentumScore    *int     `json:"momentum_score" csv:"momentum_score"`
	CompositeScore   *int     `json:"composite_score" csv:"composite_score"`
	Grade            string   `json:"grade" csv:"grade"`
	Recommendation   string   `json:"recommendation" csv:"recommendation"`

	LowConfidence bool `json:"low_confidence" csv:"low_confidence"`
}

// FloatPtr is a convenience for building rows with optional columns.
func FloatPtr(f float64) *float64 { return &f }

// IntPtr is the int counterpart of FloatPtr.
func IntPtr(i int) *int { return &i }
