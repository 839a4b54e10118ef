// Package assemble merges PDF-derived financial periods with scraped market
// quotes into per-company records and flat dataset rows.
//
// Deduplication rule: one FinancialPeriod per (ticker, period end, statement
// type); when the same identity is parsed twice the most recently parsed one
// wins, since re-runs are expected to only improve extraction quality.
package assemble

import (
	"sort"
	"time"

	"cse_research/pkg/core/ratios"
	"cse_research/pkg/models"
)

// MergePeriods folds newly extracted periods into a company record,
// last-write-wins on the period key.
func MergePeriods(record *models.CompanyRecord, incoming []*models.FinancialPeriod) {
	byKey := make(map[models.PeriodKey]*models.FinancialPeriod, len(record.Periods))
	for _, p := range record.Periods {
		byKey[p.Key()] = p
	}

	for _, p := range incoming {
		existing, ok := byKey[p.Key()]
		if !ok || !p.ParsedAt.Before(existing.ParsedAt) {
			byKey[p.Key()] = p
		}
	}

	merged := make([]*models.FinancialPeriod, 0, len(byKey))
	for _, p := range byKey {
		merged = append(merged, p)
	}
	sort.Slice(merged, func(i, j int) bool {
		if !merged[i].PeriodEnd.Equal(merged[j].PeriodEnd) {
			return merged[i].PeriodEnd.Before(merged[j].PeriodEnd)
		}
		return merged[i].Statement < merged[j].Statement
	})
	record.Periods = merged
	record.UpdatedAt = time.Now()
}

// AddQuote appends a market quote, replacing any quote with the same as-of
// date.
func AddQuote(record *models.CompanyRecord, quote models.MarketQuote) {
	for i := range record.Quotes {
		if record.Quotes[i].AsOf.Equal(quote.AsOf) {
			record.Quotes[i] = quote
			return
		}
	}
	record.Quotes = append(record.Quotes, quote)
	sort.Slice(record.Quotes, func(i, j int) bool {
		return record.Quotes[i].AsOf.Before(record.Quotes[j].AsOf)
	})
}

// NearestQuote picks the quote closest in time to the given period end, or
// nil when there are none.
func NearestQuote(quotes []models.MarketQuote, periodEnd time.Time) *models.MarketQuote {
	var best *models.MarketQuote
	var bestGap time.Duration
	for i := range quotes {
		gap := quotes[i].AsOf.Sub(periodEnd)
		if gap < 0 {
			gap = -gap
		}
		if best == nil || gap < bestGap {
			best = &quotes[i]
			bestGap = gap
		}
	}
	return best
}

// Rows flattens a company record into one dataset row per period end,
// combining all statement types that share the same period end and
// attaching the nearest market quote plus derived ratios.
func Rows(record *models.CompanyRecord) []models.DatasetRow {
	type periodGroup struct {
		end           time.Time
		fields        ratios.Fields
		lowConfidence bool
	}

	groups := make(map[string]*periodGroup)
	for _, p := range record.Periods {
		key := p.PeriodEnd.Format("2006-01-02")
		g, ok := groups[key]
		if !ok {
			g = &periodGroup{end: p.PeriodEnd, fields: make(ratios.Fields)}
			groups[key] = g
		}
		for f, v := range p.Fields {
			g.fields[f] = v
		}
		g.lowConfidence = g.lowConfidence || p.LowConfidence
	}

	rows := make([]models.DatasetRow, 0, len(groups))
	for _, g := range groups {
		row := models.DatasetRow{
			Ticker:        record.Ticker,
			Name:          record.Name,
			Sector:        record.Sector,
			PeriodEnd:     g.end,
			LowConfidence: g.lowConfidence,
		}

		fill := func(dst **float64, f models.CanonicalField) {
			if v, ok := g.fields[f]; ok {
				*dst = models.FloatPtr(v)
			}
		}
		fill(&row.IncomeRevenue, models.FieldRevenue)
		fill(&row.IncomeCostOfSales, models.FieldCostOfSales)
		fill(&row.IncomeGrossProfit, models.FieldGrossProfit)
		fill(&row.IncomeOperatingProfit, models.FieldOperatingProfit)
		fill(&row.IncomeFinanceCosts, models.FieldFinanceCosts)
		fill(&row.IncomeProfitBeforeTax, models.FieldProfitBeforeTax)
		fill(&row.IncomeNetProfit, models.FieldNetProfit)
		fill(&row.IncomeEPS, models.FieldEPS)
		fill(&row.BalanceTotalAssets, models.FieldTotalAssets)
		fill(&row.BalanceCurrentAssets, models.FieldCurrentAssets)
		fill(&row.BalanceCashAndEquivalents, models.FieldCashAndEquivalents)
		fill(&row.BalanceInventories, models.FieldInventories)
		fill(&row.BalanceTotalLiabilities, models.FieldTotalLiabilities)
		fill(&row.BalanceCurrentLiabilities, models.FieldCurrentLiabilities)
		fill(&row.BalanceTotalDebt, models.FieldTotalDebt)
		fill(&row.BalanceEquity, models.FieldEquity)
		fill(&row.BalanceRetainedEarnings, models.FieldRetainedEarnings)
		fill(&row.CashOperating, models.FieldOperatingCashFlow)
		fill(&row.CashInvesting, models.FieldInvestingCashFlow)
		fill(&row.CashFinancing, models.FieldFinancingCashFlow)
		fill(&row.CashCapex, models.FieldCapex)

		rs := ratios.Compute(g.fields)
		row.ROE = rs.ROE
		row.ROA = rs.ROA
		row.DebtToEquity = rs.DebtToEquity
		row.GrossMargin = rs.GrossMargin
		row.OperatingMargin = rs.OperatingMargin
		row.NetMargin = rs.NetMargin
		row.CurrentRatio = rs.CurrentRatio
		row.QuickRatio = rs.QuickRatio
		row.InterestCoverage = rs.InterestCoverage
		row.AssetTurnover = rs.AssetTurnover
		row.CashFreeFlow = rs.FreeCashFlow

		if q := NearestQuote(record.Quotes, g.end); q != nil {
			row.Price = models.FloatPtr(q.Price)
			row.PERatio = models.FloatPtr(q.PERatio)
			row.PBRatio = models.FloatPtr(q.PBRatio)
			row.DividendYield = models.FloatPtr(q.DividendYield)
			row.MarketCap = models.FloatPtr(q.MarketCap)
			row.SharesOutstanding = models.FloatPtr(q.SharesOutstanding)
			row.ChangePercent = models.FloatPtr(q.ChangePercent)
			row.High52Week = models.FloatPtr(q.High52Week)
			row.Low52Week = models.FloatPtr(q.Low52Week)
			asOf := q.AsOf
			row.QuoteDate = &asOf
		}

		rows = append(rows, row)
	}

	sort.Slice(rows, func(i, j int) bool { return rows[i].PeriodEnd.Before(rows[j].PeriodEnd) })
	return rows
}
