package pipeline

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"cse_research/pkg/core/config"
	"cse_research/pkg/core/cse"
	"cse_research/pkg/models"
)

// memoryRepo keeps records in memory so company runs can resume without a
// database.
type memoryRepo struct {
	records   map[string]*models.CompanyRecord
	rows      map[string][]models.DatasetRow
	summaries int
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{
		records: make(map[string]*models.CompanyRecord),
		rows:    make(map[string][]models.DatasetRow),
	}
}

func (m *memoryRepo) LoadRecord(ctx context.Context, ticker string) (*models.CompanyRecord, error) {
	if r, ok := m.records[ticker]; ok {
		return r, nil
	}
	return nil, fmt.Errorf("no record for %s", ticker)
}

func (m *memoryRepo) SaveRecord(ctx context.Context, record *models.CompanyRecord) error {
	m.records[record.Ticker] = record
	return nil
}

func (m *memoryRepo) SaveRows(ctx context.Context, ticker string, dataset []models.DatasetRow) error {
	m.rows[ticker] = dataset
	return nil
}

func (m *memoryRepo) SaveRunSummary(ctx context.Context, batchID uuid.UUID, summary interface{}, startedAt, finishedAt time.Time) error {
	m.summaries++
	return nil
}

func TestRunForCompanySkipsAlreadyProcessedDocuments(t *testing.T) {
	const symbol = "TEST.N0000"

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/companyAnnouncements":
			fmt.Fprint(w, `{"data":[{"title":"Annual Report 2024","url":"http://example.invalid/doc.pdf","date":"2024-06-01"}]}`)
		case "/api/companyInfoSummery":
			fmt.Fprint(w, `{"reqSymbolInfo":{"symbol":"TEST.N0000","name":"Test PLC","sectorName":"Banks",
				"lastTradedPrice":50,"per":8,"pbv":1.1,"marketCap":1000000,"numberOfSharesIssued":20000,
				"dividendYield":4.5,"hiTradePrice52Wk":60,"lowTradePrice52Wk":35}}`)
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	tmp := t.TempDir()
	cfg := config.Default()
	cfg.CSE.BaseURL = server.URL
	cfg.CSE.RequestTimeoutSecs = 5
	cfg.CSE.RequestDelaySecs = 0
	cfg.CSE.MaxRetries = 0
	cfg.Dirs.PDFCache = filepath.Join(tmp, "pdfs")
	cfg.Dirs.Processed = filepath.Join(tmp, "processed")
	cfg.Dirs.Reports = filepath.Join(tmp, "reports")

	// The document is already cached, so no download request is made.
	cacheDir := filepath.Join(cfg.Dirs.PDFCache, symbol)
	if err := os.MkdirAll(cacheDir, 0o755); err != nil {
		t.Fatal(err)
	}
	cached := filepath.Join(cacheDir, "Annual_Report_2024.pdf")
	if err := os.WriteFile(cached, []byte("%PDF-1.4 stub"), 0o644); err != nil {
		t.Fatal(err)
	}

	// A prior run stored this period with the cache path of that run, which
	// need not match today's cache directory.
	repo := newMemoryRepo()
	repo.records[symbol] = &models.CompanyRecord{
		Ticker: symbol,
		Periods: []*models.FinancialPeriod{{
			Ticker:    symbol,
			PeriodEnd: time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC),
			Statement: models.StatementIncome,
			Fields: map[models.CanonicalField]float64{
				models.FieldRevenue:   1_000_000_000,
				models.FieldNetProfit: 120_000_000,
			},
			SourceDoc: filepath.Join("old", "cache", symbol, "Annual_Report_2024.pdf"),
			ParsedAt:  time.Now().Add(-24 * time.Hour),
		}},
	}

	o := NewOrchestrator(cfg, cse.NewClient(cfg.CSE, zerolog.Nop()), repo, zerolog.Nop())
	summary := &RunSummary{}
	if err := o.RunForCompany(context.Background(), symbol, nil, summary); err != nil {
		t.Fatalf("RunForCompany: %v", err)
	}

	if summary.DocumentsSkipped != 1 {
		t.Errorf("DocumentsSkipped = %d, want 1", summary.DocumentsSkipped)
	}
	if summary.DocumentsProcessed != 0 {
		t.Errorf("DocumentsProcessed = %d, want 0 for an already-processed document", summary.DocumentsProcessed)
	}
	if summary.ParseFailures != 0 {
		t.Errorf("ParseFailures = %d, a skipped document must not be re-extracted", summary.ParseFailures)
	}
	if len(repo.rows[symbol]) == 0 {
		t.Error("existing periods should still produce dataset rows")
	}
}
