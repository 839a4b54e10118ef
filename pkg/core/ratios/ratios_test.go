package ratios

import (
	"math"
	"testing"

	"cse_research/pkg/models"
)

func TestComputeBasicRatios(t *testing.T) {
	f := Fields{
		models.FieldRevenue:            1000,
		models.FieldGrossProfit:        400,
		models.FieldOperatingProfit:    250,
		models.FieldNetProfit:          200,
		models.FieldFinanceCosts:       -50,
		models.FieldTotalAssets:        2000,
		models.FieldTotalLiabilities:   1200,
		models.FieldEquity:             800,
		models.FieldCurrentAssets:      600,
		models.FieldCurrentLiabilities: 300,
		models.FieldInventories:        150,
		models.FieldOperatingCashFlow:  220,
		models.FieldCapex:              -70,
	}
	s := Compute(f)

	checks := []struct {
		name string
		got  *float64
		want float64
	}{
		{"ROE", s.ROE, 0.25},
		{"ROA", s.ROA, 0.10},
		{"DebtToEquity", s.DebtToEquity, 1.5},
		{"GrossMargin", s.GrossMargin, 0.40},
		{"OperatingMargin", s.OperatingMargin, 0.25},
		{"NetMargin", s.NetMargin, 0.20},
		{"CurrentRatio", s.CurrentRatio, 2.0},
		{"QuickRatio", s.QuickRatio, 1.5},
		{"InterestCoverage", s.InterestCoverage, 5.0},
		{"AssetTurnover", s.AssetTurnover, 0.5},
		{"FreeCashFlow", s.FreeCashFlow, 150},
	}
	for _, c := range checks {
		if c.got == nil {
			t.Errorf("%s = nil, want %v", c.name, c.want)
			continue
		}
		if math.Abs(*c.got-c.want) > 1e-9 {
			t.Errorf("%s = %v, want %v", c.name, *c.got, c.want)
		}
	}
}

func TestComputeZeroEquityLeavesROEUndefined(t *testing.T) {
	s := Compute(Fields{
		models.FieldNetProfit: 100,
		models.FieldEquity:    0,
	})
	if s.ROE != nil {
		t.Errorf("ROE = %v, want nil for zero equity", *s.ROE)
	}
	if s.DebtToEquity != nil {
		t.Error("DebtToEquity should stay nil without liabilities")
	}
}

func TestComputeMissingInputs(t *testing.T) {
	s := Compute(Fields{models.FieldRevenue: 500})
	if s.NetMargin != nil || s.ROE != nil || s.CurrentRatio != nil {
		t.Error("ratios from missing inputs must be nil")
	}
}

// A negative net margin must come through signed, not clamped.
func TestComputeNegativeMargin(t *testing.T) {
	s := Compute(Fields{
		models.FieldRevenue:   1_000_000_000,
		models.FieldNetProfit: -50_000_000,
	})
	if s.NetMargin == nil || math.Abs(*s.NetMargin-(-0.05)) > 1e-9 {
		t.Fatalf("NetMargin = %v, want -0.05", s.NetMargin)
	}
}
