package config

import (
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultSettings(t *testing.T) {
	s := Default()
	if s.CSE.BaseURL != "https://www.cse.lk" {
		t.Errorf("BaseURL = %q", s.CSE.BaseURL)
	}
	if s.CSE.RequestTimeout() != 30*time.Second {
		t.Errorf("RequestTimeout = %v", s.CSE.RequestTimeout())
	}
	if s.Pipeline.DocumentBudget() != 90*time.Second {
		t.Errorf("DocumentBudget = %v", s.Pipeline.DocumentBudget())
	}
	total := s.Weights.Value + s.Weights.Growth + s.Weights.Quality + s.Weights.Dividend + s.Weights.Safety + s.Weights.Momentum
	if math.Abs(total-1.0) > 1e-9 {
		t.Errorf("default weights sum = %v, want 1.0", total)
	}
}

func TestLoadMissingFileFallsBackToDefaults(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if s.CSE.BaseURL != Default().CSE.BaseURL {
		t.Error("missing file should leave defaults untouched")
	}
}

func TestLoadYAMLOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.yaml")
	body := `
cse:
  request_timeout_secs: 5
thresholds:
  pe_ratio_max: 12
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	s, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if s.CSE.RequestTimeout() != 5*time.Second {
		t.Errorf("RequestTimeout = %v, want 5s", s.CSE.RequestTimeout())
	}
	if s.Thresholds.PEMax != 12 {
		t.Errorf("PEMax = %v, want 12", s.Thresholds.PEMax)
	}
	// Untouched keys keep defaults.
	if s.CSE.MaxRetries != 3 {
		t.Errorf("MaxRetries = %d, want default 3", s.CSE.MaxRetries)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://test/db")
	s, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if s.DatabaseURL != "postgres://test/db" {
		t.Errorf("DatabaseURL = %q", s.DatabaseURL)
	}
}

func TestNormalizeWeights(t *testing.T) {
	w := ScoringWeights{Value: 2, Growth: 1, Quality: 1, Dividend: 0, Safety: 0}.Normalize()
	if math.Abs(w.Value-0.5) > 1e-9 || math.Abs(w.Growth-0.25) > 1e-9 {
		t.Errorf("Normalize = %+v", w)
	}

	zero := ScoringWeights{}.Normalize()
	if zero.Value == 0 {
		t.Error("all-zero weights should fall back to defaults")
	}
}
