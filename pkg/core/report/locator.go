package report

import (
	"strings"

	"cse_research/pkg/models"
)

// =============================================================================
// STATEMENT LOCATOR - identify which pages carry which financial statement
// =============================================================================

// MinStatementScore is the confidence floor: a page whose best keyword score
// is below this is not treated as a statement candidate at all.
const MinStatementScore = 3

// statementKeywords scores page text per statement type. Heading phrases
// carry more weight than line-item words that also appear in narrative text.
var statementKeywords = map[models.StatementType][]weightedKeyword{
	models.StatementIncome: {
		{"statement of profit or loss", 4},
		{"income statement", 4},
		{"statement of comprehensive income", 4},
		{"statements of operations", 3},
		{"gross profit", 1},
		{"revenue", 1},
		{"profit for the year", 1},
		{"profit for the period", 1},
	},
	models.StatementBalanceSheet: {
		{"statement of financial position", 4},
		{"balance sheet", 4},
		{"total assets", 1},
		{"total liabilities", 1},
		{"total equity", 1},
		{"stated capital", 1},
	},
	models.StatementCashFlow: {
		{"statement of cash flows", 4},
		{"cash flow statement", 4},
		{"operating activities", 1},
		{"investing activities", 1},
		{"financing activities", 1},
	},
}

type weightedKeyword struct {
	phrase string
	weight int
}

// ScoreStatement is the pure keyword-scoring function: how strongly does the
// given page text look like the given statement type.
func ScoreStatement(pageText string, st models.StatementType) int {
	text := strings.ToLower(pageText)
	score := 0
	for _, kw := range statementKeywords[st] {
		if strings.Contains(text, kw.phrase) {
			score += kw.weight
		}
	}
	return score
}

// Locate scans parsed pages and returns at most one candidate per statement
// type. When several pages clear the score floor for the same type, the one
// with the highest keyword score wins; equal scores fall back to the page
// with the highest numeric cell density, since the statement itself carries
// more numbers than the notes discussing it.
func Locate(pages []PageContent) []Candidate {
	best := make(map[models.StatementType]*Candidate)

	for _, page := range pages {
		text := pageText(page)
		for st := range statementKeywords {
			score := ScoreStatement(text, st)
			if score < MinStatementScore {
				continue
			}
			cand := &Candidate{Statement: st, Page: page.Number, Score: score, Rows: page.Rows}
			cur := best[st]
			switch {
			case cur == nil:
				best[st] = cand
			case score > cur.Score:
				best[st] = cand
			case score == cur.Score && numericDensity(cand.Rows) > numericDensity(cur.Rows):
				best[st] = cand
			}
		}
	}

	out := make([]Candidate, 0, len(best))
	for _, st := range []models.StatementType{models.StatementIncome, models.StatementBalanceSheet, models.StatementCashFlow} {
		if c := best[st]; c != nil {
			out = append(out, *c)
		}
	}
	return out
}

// AbsentStatements lists the statement types Locate found no candidate for.
func AbsentStatements(found []Candidate) []models.StatementType {
	present := make(map[models.StatementType]bool, len(found))
	for _, c := range found {
		present[c.Statement] = true
	}
	var absent []models.StatementType
	for _, st := range []models.StatementType{models.StatementIncome, models.StatementBalanceSheet, models.StatementCashFlow} {
		if !present[st] {
			absent = append(absent, st)
		}
	}
	return absent
}

func pageText(p PageContent) string {
	var b strings.Builder
	for _, r := range p.Rows {
		b.WriteString(r.Text())
		b.WriteString("\n")
	}
	return b.String()
}

// numericDensity is the ratio of numeric cells to all cells on the page.
func numericDensity(rows []TableRow) float64 {
	total, numeric := 0, 0
	for _, r := range rows {
		for _, c := range r.Cells {
			total++
			if _, ok := ParseAmount(c); ok {
				numeric++
			}
		}
	}
	if total == 0 {
		return 0
	}
	return float64(numeric) / float64(total)
}
