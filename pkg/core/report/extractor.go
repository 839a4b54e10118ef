package report

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"cse_research/pkg/models"
)

// Extractor runs the locate → normalize pipeline over one PDF at a time.
type Extractor struct {
	log zerolog.Logger
}

// NewExtractor creates an extractor logging through the given logger.
func NewExtractor(log zerolog.Logger) *Extractor {
	return &Extractor{log: log.With().Str("component", "extractor").Logger()}
}

// longDate matches period-end headings like "31 March 2024" or
// "31st December 2023".
var longDate = regexp.MustCompile(`(?i)(\d{1,2})(?:st|nd|rd|th)?\s+(january|february|march|april|may|june|july|august|september|october|november|december),?\s+(20\d{2})`)

var monthIndex = map[string]time.Month{
	"january": time.January, "february": time.February, "march": time.March,
	"april": time.April, "may": time.May, "june": time.June,
	"july": time.July, "august": time.August, "september": time.September,
	"october": time.October, "november": time.November, "december": time.December,
}

// ExtractDocument parses one annual/quarterly report PDF into FinancialPeriods.
// The context carries the per-document processing budget; an expired budget
// aborts this document only.
func (e *Extractor) ExtractDocument(ctx context.Context, path, ticker string) (*DocumentExtraction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	pages, err := ReadPages(path)
	if err != nil {
		return nil, err
	}
	if len(pages) == 0 {
		return nil, fmt.Errorf("no extractable text in %s", path)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	candidates := Locate(pages)
	result := &DocumentExtraction{
		Ticker:    ticker,
		Source:    path,
		Absent:    AbsentStatements(candidates),
		PageCount: len(pages),
	}
	for _, st := range result.Absent {
		e.log.Warn().Str("ticker", ticker).Str("statement", string(st)).Str("doc", path).
			Msg("no candidate table cleared the keyword score floor")
	}
	if len(candidates) == 0 {
		return result, nil
	}

	parsedAt := time.Now()
	for _, cand := range candidates {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		ns := NormalizeStatement(cand)
		if len(ns.Primary) == 0 && len(ns.Priors) == 0 {
			e.log.Warn().Str("ticker", ticker).Str("statement", string(cand.Statement)).
				Msg("candidate table yielded no recognized line items")
			continue
		}

		periodEnd, dated := findPeriodEnd(pages, cand.Page, ns.PrimaryYear)
		if len(ns.Primary) > 0 {
			result.Periods = append(result.Periods, &models.FinancialPeriod{
				Ticker:        ticker,
				PeriodEnd:     periodEnd,
				Statement:     cand.Statement,
				Fields:        ns.Primary,
				UnitScale:     ns.UnitScale,
				SourceDoc:     path,
				ParsedAt:      parsedAt,
				LowConfidence: ns.LowConfidence || !dated,
			})
		}

		// Prior-year columns become their own periods, anchored to the same
		// month/day one or more years earlier.
		for year, fields := range ns.Priors {
			if len(fields) == 0 || ns.PrimaryYear == 0 {
				continue
			}
			end := periodEnd.AddDate(year-ns.PrimaryYear, 0, 0)
			result.Periods = append(result.Periods, &models.FinancialPeriod{
				Ticker:        ticker,
				PeriodEnd:     end,
				Statement:     cand.Statement,
				Fields:        fields,
				UnitScale:     ns.UnitScale,
				SourceDoc:     path,
				ParsedAt:      parsedAt,
				LowConfidence: true, // carried column, not the report's own period
			})
		}
	}

	e.log.Info().Str("ticker", ticker).Str("doc", path).
		Int("periods", len(result.Periods)).Int("absent", len(result.Absent)).
		Msg("document extracted")
	return result, nil
}

// findPeriodEnd looks for an explicit period-end date near the statement
// page, preferring one whose year matches the detected primary year.
// Fallback: 31 December of the primary year, or of the current year when no
// year was detected at all; either fallback is reported as undated.
func findPeriodEnd(pages []PageContent, pageNum, primaryYear int) (time.Time, bool) {
	var fallback time.Time
	for _, p := range pages {
		// Only the statement page and its immediate neighbors.
		if p.Number < pageNum-1 || p.Number > pageNum+1 {
			continue
		}
		for _, m := range longDate.FindAllStringSubmatch(pageText(p), -1) {
			day, _ := strconv.Atoi(m[1])
			month := monthIndex[strings.ToLower(m[2])]
			year, _ := strconv.Atoi(m[3])
			d := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
			if primaryYear == 0 || year == primaryYear {
				return d, true
			}
			if fallback.IsZero() {
				fallback = d
			}
		}
	}
	if !fallback.IsZero() {
		return fallback, true
	}
	year := primaryYear
	if year == 0 {
		year = time.Now().Year()
	}
	return time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC), false
}
