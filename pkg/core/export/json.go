package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"cse_research/pkg/models"
)

// WriteDatasetJSON writes the flattened rows as indented JSON, the format
// consumed by the dashboard.
func WriteDatasetJSON(path string, dataset []models.DatasetRow) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(dataset); err != nil {
		return fmt.Errorf("write json %s: %w", path, err)
	}
	return nil
}
