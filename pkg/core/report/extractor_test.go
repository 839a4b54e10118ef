package report

import (
	"testing"
	"time"
)

func TestFindPeriodEnd(t *testing.T) {
	pages := []PageContent{
		{Number: 43, Rows: []TableRow{
			{Cells: []string{"For the year ended 31st March 2024"}},
		}},
		{Number: 44, Rows: []TableRow{
			{Cells: []string{"STATEMENT OF PROFIT OR LOSS"}},
		}},
		{Number: 90, Rows: []TableRow{
			{Cells: []string{"Signed on 15th June 2024"}}, // too far from the table
		}},
	}

	end, dated := findPeriodEnd(pages, 44, 2024)
	if !dated {
		t.Fatal("date on a neighboring page should be found")
	}
	want := time.Date(2024, time.March, 31, 0, 0, 0, 0, time.UTC)
	if !end.Equal(want) {
		t.Errorf("period end = %v, want %v", end, want)
	}
}

func TestFindPeriodEndPrefersPrimaryYear(t *testing.T) {
	pages := []PageContent{
		{Number: 44, Rows: []TableRow{
			{Cells: []string{"Comparatives as at 31 March 2023"}},
			{Cells: []string{"As at 31 March 2024"}},
		}},
	}
	end, dated := findPeriodEnd(pages, 44, 2024)
	if !dated || end.Year() != 2024 {
		t.Errorf("period end = %v dated=%v, want the 2024 date", end, dated)
	}
}

func TestFindPeriodEndFallback(t *testing.T) {
	pages := []PageContent{
		{Number: 44, Rows: []TableRow{{Cells: []string{"no dates here"}}}},
	}
	end, dated := findPeriodEnd(pages, 44, 2024)
	if dated {
		t.Error("fallback must be reported as undated")
	}
	want := time.Date(2024, time.December, 31, 0, 0, 0, 0, time.UTC)
	if !end.Equal(want) {
		t.Errorf("fallback = %v, want %v", end, want)
	}
}
