package screen

import (
	"os"
	"path/filepath"
	"testing"
)

const sampleStrategy = `{
  // analyst-maintained rules may carry comments
  name: deep-value
  description: Net-net style screen
  criteria: [
    {
      column: pb_ratio
      operator: lt
      value: 0.8
      weight: 2
    }
    {
      column: current_ratio
      operator: gt
      value: 1.5
    }
  ]
}`

func TestLoadStrategyFromHjson(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "deep-value.hjson")
	if err := os.WriteFile(path, []byte(sampleStrategy), 0o644); err != nil {
		t.Fatal(err)
	}

	s, err := LoadStrategy(path)
	if err != nil {
		t.Fatal(err)
	}
	if s.Name != "deep-value" {
		t.Errorf("Name = %q", s.Name)
	}
	if len(s.Criteria) != 2 {
		t.Fatalf("criteria = %d, want 2", len(s.Criteria))
	}
	if s.Criteria[0].Column != "pb_ratio" || s.Criteria[0].Weight != 2 {
		t.Errorf("first criterion = %+v", s.Criteria[0])
	}
}

func TestLoadStrategiesMergesBuiltins(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "deep-value.hjson"), []byte(sampleStrategy), 0o644); err != nil {
		t.Fatal(err)
	}

	strategies, err := LoadStrategies(dir)
	if err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"value", "dividend", "growth", "quality", "garp", "deep-value"} {
		if _, ok := strategies[name]; !ok {
			t.Errorf("strategy %q missing", name)
		}
	}
}

func TestLoadStrategiesMissingDir(t *testing.T) {
	strategies, err := LoadStrategies("does/not/exist")
	if err != nil {
		t.Fatal(err)
	}
	if len(strategies) != len(builtinStrategies()) {
		t.Errorf("missing dir should yield just the builtins, got %d", len(strategies))
	}
}
