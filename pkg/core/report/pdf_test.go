package report

import (
	"testing"

	"github.com/ledongthuc/pdf"
)

func frag(s string, x, y, w float64) pdf.Text {
	return pdf.Text{S: s, X: x, Y: y, W: w}
}

func TestGroupIntoRows(t *testing.T) {
	texts := []pdf.Text{
		// Two fragments on the same visual line, close enough to be one cell.
		frag("Reve", 50, 700, 20),
		frag("nue", 70.5, 700.8, 15),
		// A numeric cell far to the right of the label.
		frag("1,000", 300, 700.2, 25),
		// A second line lower on the page.
		frag("Cost of sales", 50, 680, 60),
		frag("(400)", 300, 680, 25),
		// Whitespace-only fragments are dropped.
		frag("  ", 10, 680, 5),
	}

	rows := groupIntoRows(texts)
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows))
	}
	// Higher Y renders first.
	if len(rows[0].Cells) != 2 || rows[0].Cells[0] != "Revenue" || rows[0].Cells[1] != "1,000" {
		t.Errorf("row 0 = %v", rows[0].Cells)
	}
	if rows[1].Cells[0] != "Cost of sales" || rows[1].Cells[1] != "(400)" {
		t.Errorf("row 1 = %v", rows[1].Cells)
	}
}

func TestGroupIntoRowsEmpty(t *testing.T) {
	if rows := groupIntoRows(nil); len(rows) != 0 {
		t.Errorf("rows = %v, want none", rows)
	}
}

func TestReadPagesMissingFile(t *testing.T) {
	if _, err := ReadPages("testdata/does-not-exist.pdf"); err == nil {
		t.Fatal("expected error for missing file")
	}
}
