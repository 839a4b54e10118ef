package export

import (
	"strings"
	"testing"
	"time"

	"cse_research/pkg/models"
)

func TestBuildReport(t *testing.T) {
	end := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)
	rows := []models.DatasetRow{
		{
			Ticker:          "JKH.N0000",
			Name:            "John Keells Holdings",
			Sector:          "Capital Goods",
			PeriodEnd:       end,
			IncomeRevenue:   models.FloatPtr(2_500_000_000),
			IncomeNetProfit: models.FloatPtr(300_000_000),
			ROE:             models.FloatPtr(0.15),
			Price:           models.FloatPtr(195.50),
			Grade:           "B",
			Recommendation:  "Buy",
		},
		{
			Ticker:    "JKH.N0000",
			PeriodEnd: end.AddDate(-1, 0, 0),
		},
	}

	out := BuildReport(rows)
	for _, want := range []string{
		"John Keells Holdings",
		"JKH.N0000",
		"Capital Goods",
		"2024-03-31",
		"LKR 2.50 Bn", // revenue rendered at billions magnitude
		"15.0%",       // fractional ROE rendered as percent
		"| Buy |",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q\n%s", want, out)
		}
	}
	// The prior period has no values; its cells render as dashes.
	if !strings.Contains(out, "2023-03-31 | - | -") {
		t.Errorf("empty period should render dashes\n%s", out)
	}
}

func TestBuildReportEmpty(t *testing.T) {
	out := BuildReport(nil)
	if !strings.Contains(out, "No data") {
		t.Errorf("empty report = %q", out)
	}
}

func TestBuildReportLowConfidenceNote(t *testing.T) {
	rows := []models.DatasetRow{{
		Ticker:        "X.N0000",
		PeriodEnd:     time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC),
		LowConfidence: true,
	}}
	if !strings.Contains(BuildReport(rows), "low confidence") {
		t.Error("low confidence note missing")
	}
}
