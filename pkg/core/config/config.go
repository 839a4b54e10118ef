// Package config loads the engine settings from a YAML file plus environment
// overrides. Defaults mirror the CSE endpoints and thresholds the research
// tool was built around, so an empty file is a valid configuration.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	yaml "gopkg.in/yaml.v2"
)

// Settings is the full engine configuration.
type Settings struct {
	CSE         CSESettings         `yaml:"cse"`
	Dirs        DirSettings         `yaml:"dirs"`
	Thresholds  ValuationThresholds `yaml:"thresholds"`
	Weights     ScoringWeights      `yaml:"scoring_weights"`
	Pipeline    PipelineSettings    `yaml:"pipeline"`
	DatabaseURL string              `yaml:"database_url"`
}

// CSESettings covers the upstream exchange endpoints and request behavior.
// Timing values are whole seconds so they read naturally in YAML.
type CSESettings struct {
	BaseURL            string `yaml:"base_url"`
	CDNURL             string `yaml:"cdn_url"`
	RequestTimeoutSecs int    `yaml:"request_timeout_secs"`
	RequestDelaySecs   int    `yaml:"request_delay_secs"`
	MaxRetries         int    `yaml:"max_retries"`
	UserAgent          string `yaml:"user_agent"`
}

// RequestTimeout returns the per-request timeout.
func (c CSESettings) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSecs) * time.Second
}

// RequestDelay returns the polite delay between requests.
func (c CSESettings) RequestDelay() time.Duration {
	return time.Duration(c.RequestDelaySecs) * time.Second
}

// DirSettings are the working directories for downloaded and produced files.
type DirSettings struct {
	RawData    string `yaml:"raw_data"`
	Processed  string `yaml:"processed"`
	Reports    string `yaml:"reports"`
	PDFCache   string `yaml:"pdf_cache"`
	Strategies string `yaml:"strategies"`
}

// ValuationThresholds drive the screening strategies and score calculators.
type ValuationThresholds struct {
	PEMax            float64 `yaml:"pe_ratio_max"`
	PBMax            float64 `yaml:"pb_ratio_max"`
	DebtEquityMax    float64 `yaml:"debt_equity_max"`
	DividendYieldMin float64 `yaml:"dividend_yield_min"`
	EPSGrowthMin     float64 `yaml:"eps_growth_min"`
	RevenueGrowthMin float64 `yaml:"revenue_growth_min"`
	ROEMin           float64 `yaml:"roe_min"`
	ProfitMarginMin  float64 `yaml:"profit_margin_min"`
	PEGMax           float64 `yaml:"peg_ratio_max"`
	MarketCapMin     float64 `yaml:"market_cap_min"`
}

// ScoringWeights combine the sub-scores into the composite score.
// They should sum to 1.0; Normalize rescales them if they do not.
type ScoringWeights struct {
	Value    float64 `yaml:"value_score"`
	Growth   float64 `yaml:"growth_score"`
	Quality  float64 `yaml:"quality_score"`
	Dividend float64 `yaml:"dividend_score"`
	Safety   float64 `yaml:"safety_score"`
	Momentum float64 `yaml:"momentum_score"`
}

// PipelineSettings bound the batch run.
type PipelineSettings struct {
	DocumentBudgetSecs int `yaml:"document_budget_secs"` // per-PDF processing budget
	MaxDocsPerCompany  int `yaml:"max_docs_per_company"`
}

// DocumentBudget returns the per-document processing budget.
func (p PipelineSettings) DocumentBudget() time.Duration {
	return time.Duration(p.DocumentBudgetSecs) * time.Second
}

// Default returns the built-in settings.
func Default() Settings {
	return Settings{
		CSE: CSESettings{
			BaseURL:            "https://www.cse.lk",
			CDNURL:             "https://cdn.cse.lk",
			RequestTimeoutSecs: 30,
			RequestDelaySecs:   1,
			MaxRetries:         3,
			UserAgent:          "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
		},
		Dirs: DirSettings{
			RawData:    "data/raw",
			Processed:  "data/processed",
			Reports:    "reports",
			PDFCache:   "data/raw/pdfs",
			Strategies: "config/strategies",
		},
		Thresholds: ValuationThresholds{
			PEMax:            15,
			PBMax:            1.5,
			DebtEquityMax:    0.5,
			DividendYieldMin: 4.0,
			EPSGrowthMin:     10,
			RevenueGrowthMin: 10,
			ROEMin:           15,
			ProfitMarginMin:  10,
			PEGMax:           1.0,
			MarketCapMin:     100_000_000,
		},
		Weights: ScoringWeights{
			Value:    0.25,
			Quality:  0.25,
			Safety:   0.20,
			Dividend: 0.15,
			Growth:   0.10,
			Momentum: 0.05,
		},
		Pipeline: PipelineSettings{
			DocumentBudgetSecs: 90,
			MaxDocsPerCompany:  2,
		},
	}
}

// Load reads settings from path (optional) and applies environment
// overrides. A missing file is not an error: callers get the defaults.
func Load(path string) (Settings, error) {
	// .env is optional
	_ = godotenv.Load()

	s := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return s, fmt.Errorf("read settings %s: %w", path, err)
			}
		} else if err := yaml.Unmarshal(data, &s); err != nil {
			return s, fmt.Errorf("parse settings %s: %w", path, err)
		}
	}

	if url := os.Getenv("DATABASE_URL"); url != "" {
		s.DatabaseURL = url
	}
	if dir := os.Getenv("CSE_PDF_CACHE"); dir != "" {
		s.Dirs.PDFCache = dir
	}

	return s, nil
}

// Normalize rescales the scoring weights to sum to 1.0.
func (w ScoringWeights) Normalize() ScoringWeights {
	total := w.Value + w.Growth + w.Quality + w.Dividend + w.Safety + w.Momentum
	if total == 0 {
		return Default().Weights
	}
	return ScoringWeights{
		Value:    w.Value / total,
		Growth:   w.Growth / total,
		Quality:  w.Quality / total,
		Dividend: w.Dividend / total,
		Safety:   w.Safety / total,
		Momentum: w.Momentum / total,
	}
}
