package report

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"cse_research/pkg/models"
)

// =============================================================================
// LINE-ITEM NORMALIZER
// =============================================================================
//
// Turns raw table cells into a canonical field/value map in base LKR.
// Unmatched rows are dropped silently; malformed numeric cells become missing
// values. This is best-effort extraction, not a 100%-precision target.

var (
	yearPattern = regexp.MustCompile(`20\d{2}`)
	datePattern = regexp.MustCompile(`^\d{1,2}[./-]\d{1,2}[./-]\d{2,4}$`)
	numberCore  = regexp.MustCompile(`\d[\d.]*`)
)

var monthNames = []string{
	"jan", "feb", "mar", "apr", "may", "jun",
	"jul", "aug", "sep", "oct", "nov", "dec",
}

// ParseAmount extracts a numeric value from a statement cell.
// Handles currency prefixes (Rs., LKR), thousands separators, and the
// accounting convention of parentheses for negatives. Date-like cells and
// anything else that does not parse return ok=false, never an error.
func ParseAmount(cell string) (float64, bool) {
	s := strings.TrimSpace(cell)
	if s == "" || s == "-" || s == "—" || strings.EqualFold(s, "n/a") {
		return 0, false
	}
	if datePattern.MatchString(s) {
		return 0, false
	}
	lower := strings.ToLower(s)
	for _, m := range monthNames {
		if strings.Contains(lower, m) {
			return 0, false
		}
	}

	negative := strings.Contains(s, "(") && strings.Contains(s, ")")

	// Strip currency markers and separators before the numeric core.
	s = strings.NewReplacer(
		"Rs.", "", "Rs", "", "LKR", "", "lkr", "",
		",", "", "(", "", ")", "", "%", "",
	).Replace(s)
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "-") {
		negative = true
	}

	core := numberCore.FindString(s)
	if core == "" {
		return 0, false
	}
	// decimal tolerates trailing dots badly; trim them first.
	core = strings.TrimRight(core, ".")
	if core == "" {
		return 0, false
	}

	d, err := decimal.NewFromString(core)
	if err != nil {
		return 0, false
	}
	if negative {
		d = d.Neg()
	}
	f, _ := d.Float64()
	return f, true
}

// DetectUnitScale inspects header/context text for a unit suffix and returns
// the multiplier to base currency units plus the unit's name.
func DetectUnitScale(text string) (float64, string) {
	t := strings.ToLower(text)
	switch {
	case strings.Contains(t, "billion") || strings.Contains(t, "bn"):
		return 1e9, "billions"
	case strings.Contains(t, "million") || strings.Contains(t, " mn"):
		return 1e6, "millions"
	case strings.Contains(t, "'000") || strings.Contains(t, "’000") ||
		strings.Contains(t, "000s") || strings.Contains(t, "thousand"):
		return 1e3, "thousands"
	}
	return 1, ""
}

// DetectYearColumns scans the leading rows of a table for fiscal-year
// headers and maps value-column index to year. Column indexes are relative
// to the value columns (label column excluded).
func DetectYearColumns(rows []TableRow) map[int]int {
	cols := make(map[int]int)
	// Year headers sit within the first few rows of a statement table.
	limit := len(rows)
	if limit > 8 {
		limit = 8
	}
	for _, row := range rows[:limit] {
		if len(row.Cells) < 2 {
			continue
		}
		found := make(map[int]int)
		for i, cell := range row.Cells[1:] {
			if m := yearPattern.FindString(cell); m != "" {
				year := int(m[0]-'0')*1000 + int(m[1]-'0')*100 + int(m[2]-'0')*10 + int(m[3]-'0')
				found[i] = year
			}
		}
		// A real year header names at least two periods side by side, or a
		// single year on a one-value-column table.
		if len(found) >= 2 || (len(found) == 1 && len(row.Cells) == 2) {
			for i, y := range found {
				cols[i] = y
			}
			return cols
		}
	}
	return cols
}

// NormalizeStatement maps a located candidate's rows onto canonical fields.
//
// Column selection: the column whose header year is highest becomes the
// primary (current) period; remaining year columns become prior periods.
// When no year header is found, the left-most numeric column is assumed
// newest (reports conventionally print newest first) and the result is
// flagged low-confidence.
func NormalizeStatement(c Candidate) *NormalizedStatement {
	ns := &NormalizedStatement{
		Statement: c.Statement,
		Primary:   make(map[models.CanonicalField]float64),
		Priors:    make(map[int]map[models.CanonicalField]float64),
		UnitScale: 1,
	}

	var header strings.Builder
	for _, row := range c.Rows {
		header.WriteString(row.Text())
		header.WriteString("\n")
	}
	ns.UnitScale, _ = DetectUnitScale(header.String())

	yearCols := DetectYearColumns(c.Rows)
	primaryCol := -1
	for col, year := range yearCols {
		if year > ns.PrimaryYear {
			ns.PrimaryYear = year
			primaryCol = col
		}
	}
	if primaryCol < 0 {
		// Documented assumption, not a guaranteed inference.
		ns.LowConfidence = true
	}

	for _, row := range c.Rows {
		if len(row.Cells) < 2 {
			continue
		}
		field, ok := MatchLabel(row.Cells[0])
		if !ok {
			continue // accepted-lossy: unmatched rows are dropped
		}

		scale := ns.UnitScale
		if field == models.FieldEPS {
			scale = 1 // per-share figures are never reported in thousands
		}

		values := row.Cells[1:]
		if primaryCol >= 0 {
			if primaryCol < len(values) {
				if v, ok := ParseAmount(values[primaryCol]); ok {
					setIfAbsent(ns.Primary, field, v*scale)
				}
			}
			for col, year := range yearCols {
				if col == primaryCol || col >= len(values) {
					continue
				}
				if v, ok := ParseAmount(values[col]); ok {
					if ns.Priors[year] == nil {
						ns.Priors[year] = make(map[models.CanonicalField]float64)
					}
					setIfAbsent(ns.Priors[year], field, v*scale)
				}
			}
			continue
		}

		// No year header: first parseable column is treated as the current
		// period and the rest are ignored (they cannot be dated).
		for _, cell := range values {
			if v, ok := ParseAmount(cell); ok {
				setIfAbsent(ns.Primary, field, v*scale)
				break
			}
		}
	}

	return ns
}

// setIfAbsent keeps the first value seen for a field. Statements list the
// most specific line first; later repeats are usually note references.
func setIfAbsent(m map[models.CanonicalField]float64, f models.CanonicalField, v float64) {
	if _, exists := m[f]; !exists {
		m[f] = v
	}
}
