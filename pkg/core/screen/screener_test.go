package screen

import (
	"testing"
	"time"

	"cse_research/pkg/models"
)

func row(ticker string, end time.Time, mutate func(*models.DatasetRow)) models.DatasetRow {
	r := models.DatasetRow{Ticker: ticker, PeriodEnd: end}
	if mutate != nil {
		mutate(&r)
	}
	return r
}

func TestRunOperators(t *testing.T) {
	end := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)
	rows := []models.DatasetRow{
		row("CHEAP.N0000", end, func(r *models.DatasetRow) {
			r.PERatio = models.FloatPtr(6)
			r.ROE = models.FloatPtr(0.18)
		}),
		row("DEAR.N0000", end, func(r *models.DatasetRow) {
			r.PERatio = models.FloatPtr(30)
			r.ROE = models.FloatPtr(0.18)
		}),
		row("NONUM.N0000", end, nil), // no values at all
	}
	s := &Strategy{
		Name: "test",
		Criteria: []Criterion{
			{Column: "pe_ratio", Operator: "lt", Value: 10},
			{Column: "roe", Operator: "gte", Value: 0.15},
		},
	}

	out, err := Run(rows, s)
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 1 || out[0].Ticker != "CHEAP.N0000" {
		t.Fatalf("Run = %v, want only CHEAP.N0000", out)
	}
}

func TestRunMissingValueFailsCriterion(t *testing.T) {
	end := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)
	rows := []models.DatasetRow{row("X.N0000", end, nil)}
	s := &Strategy{
		Name:     "test",
		Criteria: []Criterion{{Column: "roe", Operator: "gt", Value: 0}},
	}
	out, err := Run(rows, s)
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 0 {
		t.Error("a row with no value for the column must not pass")
	}
}

func TestRunBetween(t *testing.T) {
	end := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)
	upper := 10.0
	s := &Strategy{
		Name:     "test",
		Criteria: []Criterion{{Column: "pe_ratio", Operator: "between", Value: 0, Value2: &upper}},
	}
	rows := []models.DatasetRow{
		row("IN.N0000", end, func(r *models.DatasetRow) { r.PERatio = models.FloatPtr(5) }),
		row("OUT.N0000", end, func(r *models.DatasetRow) { r.PERatio = models.FloatPtr(15) }),
	}
	out, err := Run(rows, s)
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 1 || out[0].Ticker != "IN.N0000" {
		t.Fatalf("Run between = %v", out)
	}
}

func TestValidateRejectsBadStrategies(t *testing.T) {
	bad := []*Strategy{
		{Name: "x", Criteria: []Criterion{{Column: "nope", Operator: "gt", Value: 1}}},
		{Name: "x", Criteria: []Criterion{{Column: "roe", Operator: "eq", Value: 1}}},
		{Name: "x", Criteria: []Criterion{{Column: "roe", Operator: "between", Value: 1}}},
		{Name: "x"},
		{Criteria: []Criterion{{Column: "roe", Operator: "gt", Value: 1}}},
	}
	for i, s := range bad {
		if err := s.Validate(); err == nil {
			t.Errorf("strategy %d should fail validation", i)
		}
	}
}

func TestBuiltinStrategiesAreValid(t *testing.T) {
	for name, s := range builtinStrategies() {
		if err := s.Validate(); err != nil {
			t.Errorf("builtin %q invalid: %v", name, err)
		}
	}
}

func TestLatestPerTicker(t *testing.T) {
	old := time.Date(2023, 3, 31, 0, 0, 0, 0, time.UTC)
	newer := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)
	rows := []models.DatasetRow{
		row("A.N0000", old, nil),
		row("A.N0000", newer, nil),
		row("B.N0000", old, nil),
	}
	latest := LatestPerTicker(rows)
	if len(latest) != 2 {
		t.Fatalf("latest = %d rows, want 2", len(latest))
	}
	for _, r := range latest {
		if r.Ticker == "A.N0000" && !r.PeriodEnd.Equal(newer) {
			t.Error("kept the older period for A.N0000")
		}
	}
}

func TestRankOrdersByCompositeScore(t *testing.T) {
	end := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)
	rows := []models.DatasetRow{
		row("BEST.N0000", end, func(r *models.DatasetRow) {
			r.ROE = models.FloatPtr(0.30)
			r.PERatio = models.FloatPtr(5)
		}),
		row("MID.N0000", end, func(r *models.DatasetRow) {
			r.ROE = models.FloatPtr(0.15)
			r.PERatio = models.FloatPtr(10)
		}),
		row("WORST.N0000", end, func(r *models.DatasetRow) {
			r.ROE = models.FloatPtr(0.05)
			r.PERatio = models.FloatPtr(20)
		}),
	}
	s := &Strategy{
		Name: "test",
		Criteria: []Criterion{
			{Column: "roe", Operator: "gt", Value: 0, Weight: 1},
			{Column: "pe_ratio", Operator: "gt", Value: 0, Weight: 1},
		},
	}

	ranked := Rank(rows, s)
	if len(ranked) != 3 {
		t.Fatalf("ranked = %d rows", len(ranked))
	}
	if ranked[0].Row.Ticker != "BEST.N0000" || ranked[2].Row.Ticker != "WORST.N0000" {
		t.Errorf("order = %s, %s, %s", ranked[0].Row.Ticker, ranked[1].Row.Ticker, ranked[2].Row.Ticker)
	}
	if ranked[0].Score != 100 || ranked[2].Score != 0 {
		t.Errorf("scores = %v, %v; min-max should span 0..100", ranked[0].Score, ranked[2].Score)
	}
	if ranked[0].Rank != 1 || ranked[2].Rank != 3 {
		t.Errorf("ranks = %d, %d", ranked[0].Rank, ranked[2].Rank)
	}

	top := TopN(ranked, 2)
	if len(top) != 2 || top[0].Row.Ticker != "BEST.N0000" {
		t.Errorf("TopN = %v", top)
	}
}
