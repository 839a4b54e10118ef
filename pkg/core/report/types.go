package report

import (
	"cse_research/pkg/models"
)

// PageContent is one PDF page reduced to text rows.
type PageContent struct {
	Number int
	Rows   []TableRow
}

// TableRow is one visual line of a page, split into cells left to right.
type TableRow struct {
	Cells []string
}

// Text returns the row joined back into a single lowercase-insensitive line.
func (r TableRow) Text() string {
	out := ""
	for i, c := range r.Cells {
		if i > 0 {
			out += " "
		}
		out += c
	}
	return out
}

// Candidate is a located statement table: the rows believed to belong to one
// financial statement, with the keyword score that identified it.
type Candidate struct {
	Statement models.StatementType
	Page      int
	Score     int
	Rows      []TableRow
}

// NormalizedStatement is the output of the line-item normalizer for a single
// located statement table.
type NormalizedStatement struct {
	Statement     models.StatementType
	Primary       map[models.CanonicalField]float64
	PrimaryYear   int // 0 when no year header was found
	Priors        map[int]map[models.CanonicalField]float64
	UnitScale     float64
	LowConfidence bool
}

// DocumentExtraction is everything recovered from one PDF.
type DocumentExtraction struct {
	Ticker    string
	Source    string
	Periods   []*models.FinancialPeriod
	Absent    []models.StatementType // statements no candidate table was found for
	PageCount int
}
