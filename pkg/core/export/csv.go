// Package export writes the assembled dataset to files: a flat CSV for
// spreadsheet work and a Markdown analyst report per company.
package export

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"cse_research/pkg/models"
)

// WriteDatasetCSV writes the flattened rows to path, creating parent
// directories as needed. Column order follows the struct tags.
func WriteDatasetCSV(path string, dataset []models.DatasetRow) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	if err := gocsv.MarshalFile(&dataset, f); err != nil {
		return fmt.Errorf("write csv %s: %w", path, err)
	}
	return nil
}

// WriteQuotesCSV writes a market quote snapshot.
func WriteQuotesCSV(path string, quotes []models.MarketQuote) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	if err := gocsv.MarshalFile(&quotes, f); err != nil {
		return fmt.Errorf("write csv %s: %w", path, err)
	}
	return nil
}

// ReadQuotesCSV loads a previously written quote snapshot, letting the
// pipeline run offline against cached market data.
func ReadQuotesCSV(path string) ([]models.MarketQuote, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	var quotes []models.MarketQuote
	if err := gocsv.UnmarshalFile(f, &quotes); err != nil {
		return nil, fmt.Errorf("read csv %s: %w", path, err)
	}
	return quotes, nil
}
