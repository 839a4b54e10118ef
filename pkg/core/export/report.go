package export

import (
	"fmt"
	"sort"
	"strings"

	"cse_research/pkg/models"
)

// ==========================================================================
// Markdown analyst report
// ==========================================================================

// BuildReport renders a per-company Markdown summary from its dataset rows,
// newest period first. Missing values render as a dash so the table shape is
// stable across companies.
func BuildReport(rows []models.DatasetRow) string {
	if len(rows) == 0 {
		return "# No data\n\nNo extracted periods are available for this company.\n"
	}

	sorted := make([]models.DatasetRow, len(rows))
	copy(sorted, rows)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].PeriodEnd.After(sorted[j].PeriodEnd)
	})
	latest := sorted[0]

	var b strings.Builder
	name := latest.Name
	if name == "" {
		name = latest.Ticker
	}
	fmt.Fprintf(&b, "# %s (%s)\n\n", name, latest.Ticker)
	if latest.Sector != "" {
		fmt.Fprintf(&b, "Sector: %s\n\n", latest.Sector)
	}

	b.WriteString("## Snapshot\n\n")
	fmt.Fprintf(&b, "| Metric | Value |\n|---|---|\n")
	fmt.Fprintf(&b, "| Latest period | %s |\n", latest.PeriodEnd.Format("2006-01-02"))
	fmt.Fprintf(&b, "| Price | %s |\n", fmtMoney(latest.Price))
	fmt.Fprintf(&b, "| Market cap | %s |\n", fmtMoney(latest.MarketCap))
	fmt.Fprintf(&b, "| P/E | %s |\n", fmtFloat(latest.PERatio, 2))
	fmt.Fprintf(&b, "| P/B | %s |\n", fmtFloat(latest.PBRatio, 2))
	fmt.Fprintf(&b, "| Dividend yield | %s |\n", fmtPercentUnits(latest.DividendYield))
	fmt.Fprintf(&b, "| Grade | %s |\n", dashIfEmpty(latest.Grade))
	fmt.Fprintf(&b, "| Recommendation | %s |\n\n", dashIfEmpty(latest.Recommendation))

	b.WriteString("## Scores\n\n")
	fmt.Fprintf(&b, "| Score | Value |\n|---|---|\n")
	fmt.Fprintf(&b, "| Piotroski F-Score | %s / 9 |\n", fmtInt(latest.PiotroskiFScore))
	fmt.Fprintf(&b, "| Altman Z-Score | %s |\n", fmtFloat(latest.AltmanZScore, 2))
	fmt.Fprintf(&b, "| Graham value | %s |\n", fmtMoney(latest.GrahamValue))
	fmt.Fprintf(&b, "| Graham upside | %s |\n", fmtPercentUnits(latest.GrahamUpside))
	fmt.Fprintf(&b, "| DCF value | %s |\n", fmtMoney(latest.DCFValue))
	fmt.Fprintf(&b, "| PEG | %s |\n", fmtFloat(latest.PEGRatio, 2))
	fmt.Fprintf(&b, "| Magic formula rank | %s |\n", fmtInt(latest.MagicFormulaRank))
	fmt.Fprintf(&b, "| Momentum | %s / 100 |\n", fmtInt(latest.MomentumScore))
	fmt.Fprintf(&b, "| Composite | %s / 100 |\n\n", fmtInt(latest.CompositeScore))

	b.WriteString("## History\n\n")
	b.WriteString("| Period | Revenue | Net profit | ROE | Net margin | D/E | Current ratio |\n")
	b.WriteString("|---|---|---|---|---|---|---|\n")
	for _, row := range sorted {
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s | %s |\n",
			row.PeriodEnd.Format("2006-01-02"),
			fmtMoney(row.IncomeRevenue),
			fmtMoney(row.IncomeNetProfit),
			fmtPercent(row.ROE),
			fmtPercent(row.NetMargin),
			fmtFloat(row.DebtToEquity, 2),
			fmtFloat(row.CurrentRatio, 2),
		)
	}
	b.WriteString("\n")

	if latest.LowConfidence {
		b.WriteString("> Note: the latest period was extracted with low confidence; " +
			"column years could not be read from the source document.\n")
	}
	return b.String()
}

func fmtFloat(v *float64, prec int) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%.*f", prec, *v)
}

func fmtInt(v *int) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%d", *v)
}

// fmtPercent renders a fractional ratio (0.15 = 15%).
func fmtPercent(v *float64) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%.1f%%", *v*100)
}

// fmtPercentUnits renders a value already in percent units.
func fmtPercentUnits(v *float64) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%.1f%%", *v)
}

// fmtMoney renders base-LKR amounts at a readable magnitude.
func fmtMoney(v *float64) string {
	if v == nil {
		return "-"
	}
	n := *v
	abs := n
	if abs < 0 {
		abs = -abs
	}
	switch {
	case abs >= 1e9:
		return fmt.Sprintf("LKR %.2f Bn", n/1e9)
	case abs >= 1e6:
		return fmt.Sprintf("LKR %.2f Mn", n/1e6)
	default:
		return fmt.Sprintf("LKR %.2f", n)
	}
}

func dashIfEmpty(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
