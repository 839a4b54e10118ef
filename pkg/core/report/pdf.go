package report

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Geometry tolerances for rebuilding table structure from positioned text.
// Annual reports are not tagged PDFs, so rows are recovered by Y proximity
// and cells by X gaps.
const (
	rowYTolerance = 2.0
	cellXGap      = 14.0
)

// ReadPages opens a PDF and reduces every page to rows of cells.
// A corrupt or unreadable file returns an error; the caller treats that as a
// recoverable per-document condition, not a batch failure.
func ReadPages(path string) (pages []PageContent, err error) {
	// The underlying reader panics on some malformed cross-reference tables.
	defer func() {
		if r := recover(); r != nil {
			pages = nil
			err = fmt.Errorf("unreadable pdf %s: %v", path, r)
		}
	}()

	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf %s: %w", path, err)
	}
	defer f.Close()

	for i := 1; i <= r.NumPage(); i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		rows := groupIntoRows(p.Content().Text)
		if len(rows) == 0 {
			continue
		}
		pages = append(pages, PageContent{Number: i, Rows: rows})
	}

	return pages, nil
}

// positioned is an intermediate cluster of text fragments on one line.
type positioned struct {
	y     float64
	parts []pdf.Text
}

// groupIntoRows clusters positioned text into visual rows, then splits each
// row into cells wherever the horizontal gap exceeds cellXGap.
func groupIntoRows(texts []pdf.Text) []TableRow {
	var lines []positioned

	for _, t := range texts {
		if strings.TrimSpace(t.S) == "" {
			continue
		}
		placed := false
		for i := range lines {
			if math.Abs(lines[i].y-t.Y) < rowYTolerance {
				lines[i].parts = append(lines[i].parts, t)
				placed = true
				break
			}
		}
		if !placed {
			lines = append(lines, positioned{y: t.Y, parts: []pdf.Text{t}})
		}
	}

	// PDF Y grows upward; sort top of page first.
	sort.Slice(lines, func(i, j int) bool { return lines[i].y > lines[j].y })

	rows := make([]TableRow, 0, len(lines))
	for _, ln := range lines {
		sort.Slice(ln.parts, func(i, j int) bool { return ln.parts[i].X < ln.parts[j].X })

		var cells []string
		var current strings.Builder
		lastEnd := math.Inf(-1)

		for _, t := range ln.parts {
			if current.Len() > 0 && t.X-lastEnd > cellXGap {
				cells = append(cells, strings.TrimSpace(current.String()))
				current.Reset()
			}
			current.WriteString(t.S)
			lastEnd = t.X + t.W
		}
		if current.Len() > 0 {
			cells = append(cells, strings.TrimSpace(current.String()))
		}
		if len(cells) > 0 {
			rows = append(rows, TableRow{Cells: cells})
		}
	}

	return rows
}
