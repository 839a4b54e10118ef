// Package pipeline runs the end-to-end research flow: document discovery
// and download, statement extraction, record assembly, scoring, persistence
// and file export, batched over the company universe.
package pipeline

import (
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"cse_research/pkg/core/analysis"
	"cse_research/pkg/core/assemble"
	"cse_research/pkg/core/config"
	"cse_research/pkg/core/cse"
	"cse_research/pkg/core/export"
	"cse_research/pkg/core/report"
	"cse_research/pkg/core/store"
	"cse_research/pkg/models"
)

// balanceTolerancePercent is the allowed gap for Assets = Liabilities +
// Equity before an extraction is flagged.
const balanceTolerancePercent = 1.0

// Repository is the persistence surface the pipeline needs.
// *store.ResearchRepo satisfies it; nil disables persistence.
type Repository interface {
	LoadRecord(ctx context.Context, ticker string) (*models.CompanyRecord, error)
	SaveRecord(ctx context.Context, record *models.CompanyRecord) error
	SaveRows(ctx context.Context, ticker string, dataset []models.DatasetRow) error
	SaveRunSummary(ctx context.Context, batchID uuid.UUID, summary interface{}, startedAt, finishedAt time.Time) error
}

var _ Repository = (*store.ResearchRepo)(nil)

// Orchestrator wires the stages together. The repo may be nil; persistence
// is then skipped and only files are written.
type Orchestrator struct {
	cfg       config.Settings
	client    *cse.Client
	extractor *report.Extractor
	analyzer  *analysis.Analyzer
	repo      Repository
	log       zerolog.Logger
}

// NewOrchestrator builds an orchestrator from settings.
func NewOrchestrator(cfg config.Settings, client *cse.Client, repo Repository, log zerolog.Logger) *Orchestrator {
	return &Orchestrator{
		cfg:       cfg,
		client:    client,
		extractor: report.NewExtractor(log),
		analyzer:  analysis.NewAnalyzer(cfg.Thresholds, cfg.Weights),
		repo:      repo,
		log:       log.With().Str("component", "pipeline").Logger(),
	}
}

// RunSummary is the batch outcome. A company failure is recorded, never
// fatal to the batch.
type RunSummary struct {
	BatchID            uuid.UUID `json:"batch_id"`
	StartedAt          time.Time `json:"started_at"`
	FinishedAt         time.Time `json:"finished_at"`
	Companies          int       `json:"companies"`
	DocumentsProcessed int       `json:"documents_processed"`
	DocumentsSkipped   int       `json:"documents_skipped"`
	ParseFailures      int       `json:"parse_failures"`
	PeriodsExtracted   int       `json:"periods_extracted"`
	AbsentStatements   int       `json:"absent_statements"`
	RowsWritten        int       `json:"rows_written"`
	Failures           []string  `json:"failures,omitempty"`
}

// RunBatch processes every symbol, fetching one market snapshot up front so
// all companies in the batch share the same quote date.
func (o *Orchestrator) RunBatch(ctx context.Context, symbols []string) (*RunSummary, error) {
	summary := &RunSummary{BatchID: uuid.New(), StartedAt: time.Now()}
	o.log.Info().Str("batch_id", summary.BatchID.String()).Int("symbols", len(symbols)).Msg("batch started")

	quotes := make(map[string]models.MarketQuote)
	if snapshot, err := o.client.TradeSummary(ctx); err != nil {
		o.log.Warn().Err(err).Msg("trade summary unavailable, continuing without market data")
	} else {
		for _, q := range snapshot {
			quotes[q.Ticker] = q
		}
	}

	for _, symbol := range symbols {
		if ctx.Err() != nil {
			summary.Failures = append(summary.Failures, fmt.Sprintf("%s: %v", symbol, ctx.Err()))
			break
		}
		var quote *models.MarketQuote
		if q, ok := quotes[symbol]; ok {
			quote = &q
		}
		if err := o.RunForCompany(ctx, symbol, quote, summary); err != nil {
			o.log.Error().Err(err).Str("symbol", symbol).Msg("company failed")
			summary.Failures = append(summary.Failures, fmt.Sprintf("%s: %v", symbol, err))
			continue
		}
		summary.Companies++
	}

	summary.FinishedAt = time.Now()
	if o.repo != nil {
		if err := o.repo.SaveRunSummary(ctx, summary.BatchID, summary, summary.StartedAt, summary.FinishedAt); err != nil {
			o.log.Warn().Err(err).Msg("could not persist run summary")
		}
	}
	o.log.Info().
		Str("batch_id", summary.BatchID.String()).
		Int("companies", summary.Companies).
		Int("documents", summary.DocumentsProcessed).
		Int("failures", len(summary.Failures)).
		Dur("elapsed", summary.FinishedAt.Sub(summary.StartedAt)).
		Msg("batch finished")
	return summary, nil
}

// RunForCompany executes the full flow for one symbol. Already-processed
// documents are skipped so re-runs only pay for new filings.
func (o *Orchestrator) RunForCompany(ctx context.Context, symbol string, quote *models.MarketQuote, summary *RunSummary) error {
	log := o.log.With().Str("symbol", symbol).Logger()
	start := time.Now()

	record := o.loadOrCreateRecord(ctx, symbol)
	if quote == nil {
		if q, err := o.client.CompanyQuote(ctx, symbol); err == nil {
			quote = q
		} else {
			log.Warn().Err(err).Msg("company quote unavailable")
		}
	}
	if quote != nil {
		if record.Name == "" {
			record.Name = quote.Name
		}
		if record.Sector == "" {
			record.Sector = quote.Sector
		}
		assemble.AddQuote(record, *quote)
	}

	docs, err := o.discoverDocuments(ctx, symbol)
	if err != nil {
		log.Warn().Err(err).Msg("document discovery failed")
	}
	if max := o.cfg.Pipeline.MaxDocsPerCompany; max > 0 && len(docs) > max {
		docs = docs[:max]
	}

	// Documents are tracked by file name; the cache directory may move
	// between runs while the downloaded reports keep their names.
	processed := make(map[string]bool)
	for _, p := range record.Periods {
		processed[filepath.Base(p.SourceDoc)] = true
	}

	for _, doc := range docs {
		path, err := o.client.DownloadDocument(ctx, symbol, doc, o.cfg.Dirs.PDFCache)
		if err != nil {
			log.Warn().Err(err).Str("title", doc.Title).Msg("download failed")
			summary.ParseFailures++
			continue
		}
		if processed[filepath.Base(path)] {
			log.Debug().Str("doc", filepath.Base(path)).Msg("document already processed")
			summary.DocumentsSkipped++
			continue
		}

		extraction, err := o.extractWithBudget(ctx, path, symbol)
		if err != nil {
			log.Warn().Err(err).Str("doc", filepath.Base(path)).Msg("extraction failed")
			summary.ParseFailures++
			continue
		}
		for _, absent := range extraction.Absent {
			log.Info().Str("doc", filepath.Base(path)).Str("statement", string(absent)).Msg("statement not found in document")
		}
		summary.AbsentStatements += len(extraction.Absent)
		o.validatePeriods(log, extraction.Periods)

		assemble.MergePeriods(record, extraction.Periods)
		summary.DocumentsProcessed++
		summary.PeriodsExtracted += len(extraction.Periods)
	}

	if len(record.Periods) == 0 {
		return fmt.Errorf("no financial periods available for %s", symbol)
	}

	rows := assemble.Rows(record)
	attachScores(o.analyzer, rows)
	summary.RowsWritten += len(rows)

	if o.repo != nil {
		if err := o.repo.SaveRecord(ctx, record); err != nil {
			return fmt.Errorf("persist record: %w", err)
		}
		if err := o.repo.SaveRows(ctx, symbol, rows); err != nil {
			return fmt.Errorf("persist rows: %w", err)
		}
	}
	if err := o.writeOutputs(symbol, rows); err != nil {
		return err
	}

	log.Info().
		Int("periods", len(record.Periods)).
		Int("rows", len(rows)).
		Dur("elapsed", time.Since(start)).
		Msg("company completed")
	return nil
}

func (o *Orchestrator) loadOrCreateRecord(ctx context.Context, symbol string) *models.CompanyRecord {
	if o.repo != nil {
		if record, err := o.repo.LoadRecord(ctx, symbol); err == nil {
			o.log.Debug().Str("symbol", symbol).Int("periods", len(record.Periods)).Msg("resuming existing record")
			return record
		}
	}
	return &models.CompanyRecord{Ticker: symbol}
}

// discoverDocuments asks the announcements API first and falls back to
// scraping the company page.
func (o *Orchestrator) discoverDocuments(ctx context.Context, symbol string) ([]cse.Document, error) {
	docs, err := o.client.FinancialDocuments(ctx, symbol)
	if err == nil && len(docs) > 0 {
		return docs, nil
	}
	scraped, scrapeErr := o.client.ScrapeDocumentLinks(ctx, symbol)
	if scrapeErr != nil {
		if err != nil {
			return nil, err
		}
		return nil, scrapeErr
	}
	return scraped, nil
}

// extractWithBudget bounds one document's processing time so a pathological
// PDF cannot stall the batch.
func (o *Orchestrator) extractWithBudget(ctx context.Context, path, symbol string) (*report.DocumentExtraction, error) {
	if budget := o.cfg.Pipeline.DocumentBudget(); budget > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, budget)
		defer cancel()
	}
	return o.extractor.ExtractDocument(ctx, path, symbol)
}

// validatePeriods runs the accounting identity check on extracted balance
// sheets. A gap only produces a warning; the data is kept.
func (o *Orchestrator) validatePeriods(log zerolog.Logger, periods []*models.FinancialPeriod) {
	for _, p := range periods {
		if p.Statement != models.StatementBalanceSheet {
			continue
		}
		assets, okA := p.Get(models.FieldTotalAssets)
		liabilities, okL := p.Get(models.FieldTotalLiabilities)
		equity, okE := p.Get(models.FieldEquity)
		if !okA || !okL || !okE || assets == 0 {
			continue
		}
		diff := math.Abs(assets - (liabilities + equity))
		diffPercent := diff / math.Abs(assets) * 100
		if diffPercent > balanceTolerancePercent {
			log.Warn().
				Str("period_end", p.PeriodEnd.Format("2006-01-02")).
				Float64("gap_percent", diffPercent).
				Msg("balance sheet does not balance")
		}
	}
}

// writeOutputs emits the per-company CSV and Markdown report.
func (o *Orchestrator) writeOutputs(symbol string, rows []models.DatasetRow) error {
	csvPath := filepath.Join(o.cfg.Dirs.Processed, symbol+".csv")
	if err := export.WriteDatasetCSV(csvPath, rows); err != nil {
		return fmt.Errorf("write dataset: %w", err)
	}
	jsonPath := filepath.Join(o.cfg.Dirs.Processed, symbol+".json")
	if err := export.WriteDatasetJSON(jsonPath, rows); err != nil {
		return fmt.Errorf("write dataset json: %w", err)
	}
	reportPath := filepath.Join(o.cfg.Dirs.Reports, symbol+".md")
	if err := writeFile(reportPath, export.BuildReport(rows)); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

func writeFile(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(content), 0o644)
}
