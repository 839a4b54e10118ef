package analysis

import (
	"math"
	"testing"

	"cse_research/pkg/core/config"
)

func strongCompany() Input {
	return Input{
		NetProfit:          200,
		Revenue:            1000,
		EPS:                5,
		OperatingCashFlow:  250,
		FreeCashFlow:       180,
		ROA:                12,
		ROE:                25,
		GrossMargin:        45,
		NetMargin:          20,
		AssetTurnover:      0.8,
		DebtEquity:         0.3,
		CurrentRatio:       2.5,
		TotalAssets:        1600,
		TotalLiabilities:   400,
		CurrentAssets:      700,
		CurrentLiabilities: 280,
		RetainedEarnings:   600,
		OperatingProfit:    280,
		Price:              40,
		PERatio:            8,
		PBRatio:            1.0,
		MarketCap:          2000,
		SharesOutstanding:  50,
		DividendYield:      5,
		PayoutRatio:        40,
		EPSGrowth:          15,
		RevenueGrowth:      12,
		ChangePercent:      1.5,
		High52Week:         55,
		Low52Week:          30,
	}
}

func TestPiotroskiFScoreStrongCompany(t *testing.T) {
	got := PiotroskiFScore(strongCompany())
	if got < 7 || got > 9 {
		t.Errorf("PiotroskiFScore = %d, want 7..9 for a strong company", got)
	}
}

func TestPiotroskiFScoreDistressed(t *testing.T) {
	in := Input{
		NetProfit:         -100,
		OperatingCashFlow: -50,
		ROA:               -8,
		DebtEquity:        3,
		CurrentRatio:      0.6,
		GrossMargin:       5,
		AssetTurnover:     0.2,
	}
	if got := PiotroskiFScore(in); got != 0 {
		t.Errorf("PiotroskiFScore = %d, want 0 for a distressed company", got)
	}
}

func TestAltmanZScore(t *testing.T) {
	in := strongCompany()
	// A=(700-280)/1600, B=600/1600, C=280/1600, D=2000/400, E=1000/1600
	want := 1.2*(420.0/1600) + 1.4*(600.0/1600) + 3.3*(280.0/1600) + 0.6*(2000.0/400) + 1000.0/1600
	got := AltmanZScore(in)
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("AltmanZScore = %v, want %v", got, want)
	}

	if got := AltmanZScore(Input{}); got != 0 {
		t.Errorf("AltmanZScore without balance sheet = %v, want 0", got)
	}
}

func TestGrahamValue(t *testing.T) {
	// V = 5 x (8.5 + 2*10) x 4.4/4.4
	if got := GrahamValue(5, 10, 0); math.Abs(got-142.5) > 1e-9 {
		t.Errorf("GrahamValue = %v, want 142.5", got)
	}
	if got := GrahamValue(-2, 10, 0); got != 0 {
		t.Errorf("GrahamValue with negative EPS = %v, want 0", got)
	}
}

func TestDCFValue(t *testing.T) {
	got := DCFValue(100, 0.05, 0.12, 0.02, 5, 10)
	if got <= 0 {
		t.Fatalf("DCFValue = %v, want positive", got)
	}
	// Discount rate at or below terminal growth is undefined.
	if got := DCFValue(100, 0.05, 0.02, 0.02, 5, 10); got != 0 {
		t.Errorf("DCFValue with r <= g = %v, want 0", got)
	}
}

func TestPEGRatio(t *testing.T) {
	if got := PEGRatio(15, 10); math.Abs(got-1.5) > 1e-9 {
		t.Errorf("PEGRatio = %v, want 1.5", got)
	}
	if got := PEGRatio(15, 0); got != 0 {
		t.Errorf("PEGRatio with zero growth = %v, want 0", got)
	}
}

func TestMomentumScore(t *testing.T) {
	tests := []struct {
		name string
		in   Input
		want int
	}{
		// 40% of range (50) + change 1.5 (20) + 27% off the high (20)
		{"mid range", Input{Price: 40, High52Week: 55, Low52Week: 30, ChangePercent: 1.5}, 90},
		// 3% of range (35) + flat (15) + 48% off the high (15)
		{"near low", Input{Price: 31, High52Week: 60, Low52Week: 30}, 65},
		// 97% of range (20) + falling (0) + 2% off the high (10)
		{"near high", Input{Price: 59, High52Week: 60, Low52Week: 30, ChangePercent: -3}, 30},
		// no quote data: only the flat-change component applies
		{"no quote", Input{}, 15},
	}
	for _, tt := range tests {
		if got := momentumScore(tt.in); got != tt.want {
			t.Errorf("%s: momentumScore = %d, want %d", tt.name, got, tt.want)
		}
	}
}

func TestMagicFormulaRank(t *testing.T) {
	// Earnings yield 100/8 = 12.5 -> 31.25 pts; ROC 25/1.3 = 19.2 -> 32.05 pts.
	if got := MagicFormulaRank(strongCompany()); got != 37 {
		t.Errorf("MagicFormulaRank = %d, want 37", got)
	}
	if got := MagicFormulaRank(Input{}); got != 100 {
		t.Errorf("MagicFormulaRank with no data = %d, want 100 (worst)", got)
	}
	// Both metrics maxed out clamp to the best rank.
	best := Input{PERatio: 4, ROE: 45, DebtEquity: 0.5}
	if got := MagicFormulaRank(best); got != 1 {
		t.Errorf("MagicFormulaRank maxed = %d, want 1", got)
	}
}

func TestAnalyzeStrongCompany(t *testing.T) {
	cfg := config.Default()
	analyzer := NewAnalyzer(cfg.Thresholds, cfg.Weights)
	s := analyzer.Analyze(strongCompany())

	if s.Composite < 60 {
		t.Errorf("Composite = %d, want a high score for strong inputs", s.Composite)
	}
	if s.DCFValue <= 0 {
		t.Errorf("DCFValue = %v, want positive with free cash flow and shares known", s.DCFValue)
	}
	if math.Abs(s.PEGRatio-8.0/15) > 1e-9 {
		t.Errorf("PEGRatio = %v, want %v", s.PEGRatio, 8.0/15)
	}
	if s.MomentumScore != 90 {
		t.Errorf("MomentumScore = %d, want 90", s.MomentumScore)
	}
	if s.MagicFormula != 37 {
		t.Errorf("MagicFormula = %d, want 37", s.MagicFormula)
	}
	if s.Grade != "A" && s.Grade != "B" {
		t.Errorf("Grade = %q, want A or B", s.Grade)
	}
	if s.Recommendation == "Sell" || s.Recommendation == "Avoid" {
		t.Errorf("Recommendation = %q, should not be negative", s.Recommendation)
	}
	if s.GrahamUpside <= 0 {
		t.Errorf("GrahamUpside = %v, want positive (value 142.5 vs price 40)", s.GrahamUpside)
	}

	noShares := strongCompany()
	noShares.SharesOutstanding = 0
	if s := analyzer.Analyze(noShares); s.DCFValue != 0 {
		t.Errorf("DCFValue = %v, want 0 when shares outstanding are unknown", s.DCFValue)
	}
}

func TestAnalyzeDistressZoneForcesAvoid(t *testing.T) {
	cfg := config.Default()
	analyzer := NewAnalyzer(cfg.Thresholds, cfg.Weights)

	in := strongCompany()
	// Push the balance sheet into the Altman distress zone.
	in.CurrentAssets = 100
	in.CurrentLiabilities = 900
	in.RetainedEarnings = -500
	in.OperatingProfit = 10
	in.MarketCap = 100
	in.TotalLiabilities = 1500
	in.Revenue = 200

	s := analyzer.Analyze(in)
	if s.AltmanZ >= 1.81 {
		t.Fatalf("AltmanZ = %v, test setup should be in distress zone", s.AltmanZ)
	}
	if s.Recommendation != "Avoid" {
		t.Errorf("Recommendation = %q, want Avoid in distress zone", s.Recommendation)
	}
}

func TestBandScorers(t *testing.T) {
	if got := bandHigherBetter(25, 20, 15, 10, 5); got != 40 {
		t.Errorf("bandHigherBetter excellent = %d, want 40", got)
	}
	if got := bandHigherBetter(1, 20, 15, 10, 5); got != 0 {
		t.Errorf("bandHigherBetter below poor = %d, want 0", got)
	}
	if got := bandLowerBetter(8, 10, 15, 20, 30); got != 40 {
		t.Errorf("bandLowerBetter excellent = %d, want 40", got)
	}
	if got := bandLowerBetter(-3, 10, 15, 20, 30); got != 0 {
		t.Errorf("bandLowerBetter negative metric = %d, want 0", got)
	}
}
