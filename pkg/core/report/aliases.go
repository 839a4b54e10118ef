package report

import (
	"sort"
	"strings"

	"cse_research/pkg/models"
)

// =============================================================================
// LABEL ALIAS TABLE
// =============================================================================
//
// Static, append-only mapping from the wording found in Sri Lankan annual
// reports (SLFRS/LKAS conventions) to canonical field names. New report
// formats are handled by appending aliases, never by editing existing ones.

type labelAlias struct {
	alias string
	field models.CanonicalField
}

var labelAliases = []labelAlias{
	// Revenue
	{"revenue", models.FieldRevenue},
	{"turnover", models.FieldRevenue},
	{"gross income", models.FieldRevenue},
	{"income from operations", models.FieldRevenue},

	// Costs and expenses
	{"cost of sales", models.FieldCostOfSales},
	{"cost of goods sold", models.FieldCostOfSales},
	{"cost of revenue", models.FieldCostOfSales},
	{"administrative expenses", models.FieldOperatingExpenses},
	{"admin expenses", models.FieldOperatingExpenses},
	{"distribution costs", models.FieldOperatingExpenses},
	{"selling and distribution", models.FieldOperatingExpenses},
	{"operating expenses", models.FieldOperatingExpenses},
	{"finance cost", models.FieldFinanceCosts},
	{"finance costs", models.FieldFinanceCosts},
	{"finance expenses", models.FieldFinanceCosts},
	{"interest expense", models.FieldFinanceCosts},

	// Profit lines
	{"gross profit", models.FieldGrossProfit},
	{"gross margin", models.FieldGrossProfit},
	{"operating profit", models.FieldOperatingProfit},
	{"results from operating activities", models.FieldOperatingProfit},
	{"profit from operations", models.FieldOperatingProfit},
	{"profit before tax", models.FieldProfitBeforeTax},
	{"profit before income tax", models.FieldProfitBeforeTax},
	{"income tax expense", models.FieldTaxExpense},
	{"taxation", models.FieldTaxExpense},
	{"tax expense", models.FieldTaxExpense},
	{"profit for the year", models.FieldNetProfit},
	{"profit for the period", models.FieldNetProfit},
	{"profit after tax", models.FieldNetProfit},
	{"net profit", models.FieldNetProfit},
	{"net income", models.FieldNetProfit},
	{"earnings per share", models.FieldEPS},
	{"basic earnings per share", models.FieldEPS},
	{"basic eps", models.FieldEPS},

	// Assets
	{"total assets", models.FieldTotalAssets},
	{"total current assets", models.FieldCurrentAssets},
	{"current assets", models.FieldCurrentAssets},
	{"total non-current assets", models.FieldNonCurrentAssets},
	{"non-current assets", models.FieldNonCurrentAssets},
	{"non current assets", models.FieldNonCurrentAssets},
	{"cash and cash equivalents", models.FieldCashAndEquivalents},
	{"cash and bank balances", models.FieldCashAndEquivalents},
	{"cash at bank", models.FieldCashAndEquivalents},
	{"inventories", models.FieldInventories},
	{"trade and other receivables", models.FieldTradeReceivables},
	{"trade receivables", models.FieldTradeReceivables},

	// Liabilities
	{"total liabilities", models.FieldTotalLiabilities},
	{"total current liabilities", models.FieldCurrentLiabilities},
	{"current liabilities", models.FieldCurrentLiabilities},
	{"total non-current liabilities", models.FieldNonCurrentLiabilities},
	{"non-current liabilities", models.FieldNonCurrentLiabilities},
	{"long term liabilities", models.FieldNonCurrentLiabilities},
	{"interest bearing borrowings", models.FieldTotalDebt},
	{"loans and borrowings", models.FieldTotalDebt},
	{"bank borrowings", models.FieldTotalDebt},
	{"total borrowings", models.FieldTotalDebt},

	// Equity
	{"total equity", models.FieldEquity},
	{"shareholders equity", models.FieldEquity},
	{"shareholders' funds", models.FieldEquity},
	{"equity attributable to owners", models.FieldEquity},
	{"retained earnings", models.FieldRetainedEarnings},
	{"accumulated profits", models.FieldRetainedEarnings},
	{"stated capital", models.FieldStatedCapital},
	{"share capital", models.FieldStatedCapital},
	{"issued capital", models.FieldStatedCapital},

	// Cash flow
	{"cash generated from operations", models.FieldOperatingCashFlow},
	{"net cash from operating activities", models.FieldOperatingCashFlow},
	{"cash flows from operating activities", models.FieldOperatingCashFlow},
	{"operating activities", models.FieldOperatingCashFlow},
	{"cash flows from investing activities", models.FieldInvestingCashFlow},
	{"investing activities", models.FieldInvestingCashFlow},
	{"cash flows from financing activities", models.FieldFinancingCashFlow},
	{"financing activities", models.FieldFinancingCashFlow},
	{"net increase in cash", models.FieldNetCashFlow},
	{"net change in cash", models.FieldNetCashFlow},
	{"purchase of property, plant and equipment", models.FieldCapex},
	{"capital expenditure", models.FieldCapex},
	{"acquisition of property", models.FieldCapex},
	{"dividends paid", models.FieldDividendsPaid},
	{"dividend paid", models.FieldDividendsPaid},
}

// sortedAliases is labelAliases ordered longest-first so that the most
// specific alias wins a substring match ("total current assets" before
// "current assets").
var sortedAliases = func() []labelAlias {
	s := make([]labelAlias, len(labelAliases))
	copy(s, labelAliases)
	sort.SliceStable(s, func(i, j int) bool { return len(s[i].alias) > len(s[j].alias) })
	return s
}()

// NormalizeLabel lowercases a raw row label and collapses whitespace.
// Underscores count as separators so canonical field names resolve to
// themselves.
func NormalizeLabel(label string) string {
	s := strings.ReplaceAll(strings.ToLower(label), "_", " ")
	return strings.Join(strings.Fields(s), " ")
}

// MatchLabel resolves a raw row label to its canonical field. Exact matches
// are tried first, then substring containment against the longest aliases.
func MatchLabel(label string) (models.CanonicalField, bool) {
	norm := NormalizeLabel(label)
	if norm == "" {
		return "", false
	}

	for _, a := range sortedAliases {
		if norm == a.alias {
			return a.field, true
		}
	}
	for _, a := range sortedAliases {
		if strings.Contains(norm, a.alias) {
			return a.field, true
		}
	}
	return "", false
}
