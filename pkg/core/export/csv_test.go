package export

import (
	"path/filepath"
	"testing"
	"time"

	"cse_research/pkg/models"
)

func TestQuotesCSVRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "quotes.csv")
	in := []models.MarketQuote{
		{Ticker: "JKH.N0000", Name: "John Keells Holdings", Price: 195.5, AsOf: time.Date(2024, 4, 10, 0, 0, 0, 0, time.UTC)},
		{Ticker: "COMB.N0000", Name: "Commercial Bank of Ceylon", Price: 102.25, AsOf: time.Date(2024, 4, 10, 0, 0, 0, 0, time.UTC)},
	}

	if err := WriteQuotesCSV(path, in); err != nil {
		t.Fatal(err)
	}
	out, err := ReadQuotesCSV(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 2 {
		t.Fatalf("read %d quotes, want 2", len(out))
	}
	if out[0].Ticker != "JKH.N0000" || out[0].Price != 195.5 {
		t.Errorf("first quote = %+v", out[0])
	}
}

func TestWriteDatasetCSVCreatesDirs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "deep", "dataset.csv")
	rows := []models.DatasetRow{{Ticker: "X.N0000", PeriodEnd: time.Now()}}
	if err := WriteDatasetCSV(path, rows); err != nil {
		t.Fatal(err)
	}
}
