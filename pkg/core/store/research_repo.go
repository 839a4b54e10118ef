package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"cse_research/pkg/models"
)

// ResearchRepo persists company records and their flattened dataset rows.
type ResearchRepo struct{}

// NewResearchRepo creates a new repository instance.
func NewResearchRepo() *ResearchRepo {
	return &ResearchRepo{}
}

// SaveRecord upserts the full per-company history as a JSONB blob keyed by
// ticker. The blob keeps every extracted period and quote, so a later
// pipeline run on the same company replaces rather than appends.
func (r *ResearchRepo) SaveRecord(ctx context.Context, record *models.CompanyRecord) error {
	pool := GetPool()
	if pool == nil {
		return fmt.Errorf("database pool not initialized")
	}

	jsonData, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}

	query := `
		INSERT INTO company_research (ticker, record_json, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (ticker)
		DO UPDATE SET
			record_json = EXCLUDED.record_json,
			updated_at = EXCLUDED.updated_at;
	`
	if _, err = pool.Exec(ctx, query, record.Ticker, jsonData, time.Now()); err != nil {
		return fmt.Errorf("failed to save record: %w", err)
	}
	return nil
}

// LoadRecord retrieves the stored history for a ticker.
func (r *ResearchRepo) LoadRecord(ctx context.Context, ticker string) (*models.CompanyRecord, error) {
	pool := GetPool()
	if pool == nil {
		return nil, fmt.Errorf("database pool not initialized")
	}

	var jsonData []byte
	err := pool.QueryRow(ctx, `SELECT record_json FROM company_research WHERE ticker = $1`, ticker).Scan(&jsonData)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, fmt.Errorf("no record found for ticker %s", ticker)
		}
		return nil, fmt.Errorf("failed to load record: %w", err)
	}

	var record models.CompanyRecord
	if err := json.Unmarshal(jsonData, &record); err != nil {
		return nil, fmt.Errorf("failed to unmarshal record: %w", err)
	}
	return &record, nil
}

// ListTickers returns every ticker with a stored record.
func (r *ResearchRepo) ListTickers(ctx context.Context) ([]string, error) {
	pool := GetPool()
	if pool == nil {
		return nil, fmt.Errorf("database pool not initialized")
	}

	rows, err := pool.Query(ctx, `SELECT ticker FROM company_research ORDER BY ticker`)
	if err != nil {
		return nil, fmt.Errorf("failed to list tickers: %w", err)
	}
	defer rows.Close()

	var tickers []string
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, fmt.Errorf("failed to scan ticker: %w", err)
		}
		tickers = append(tickers, t)
	}
	return tickers, rows.Err()
}

// SaveRows replaces a company's flattened dataset rows in one batch. The
// delete-then-insert keeps rows for dropped periods from lingering.
func (r *ResearchRepo) SaveRows(ctx context.Context, ticker string, dataset []models.DatasetRow) error {
	pool := GetPool()
	if pool == nil {
		return fmt.Errorf("database pool not initialized")
	}

	batch := &pgx.Batch{}
	batch.Queue(`DELETE FROM research_rows WHERE ticker = $1`, ticker)
	now := time.Now()
	for i := range dataset {
		row := &dataset[i]
		jsonData, err := json.Marshal(row)
		if err != nil {
			return fmt.Errorf("failed to marshal row: %w", err)
		}
		batch.Queue(
			`INSERT INTO research_rows (ticker, period_end, row_json, updated_at)
			 VALUES ($1, $2, $3, $4)
			 ON CONFLICT (ticker, period_end)
			 DO UPDATE SET row_json = EXCLUDED.row_json, updated_at = EXCLUDED.updated_at`,
			ticker, row.PeriodEnd, jsonData, now,
		)
	}

	results := pool.SendBatch(ctx, batch)
	defer results.Close()
	for i := 0; i < batch.Len(); i++ {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("failed to save rows for %s: %w", ticker, err)
		}
	}
	return nil
}

// LoadAllRows returns every stored dataset row across companies, for
// screening and ranking over the full universe.
func (r *ResearchRepo) LoadAllRows(ctx context.Context) ([]models.DatasetRow, error) {
	return r.queryRows(ctx, `SELECT row_json FROM research_rows ORDER BY ticker, period_end`)
}

// LoadRows returns one company's dataset rows oldest first.
func (r *ResearchRepo) LoadRows(ctx context.Context, ticker string) ([]models.DatasetRow, error) {
	return r.queryRows(ctx, `SELECT row_json FROM research_rows WHERE ticker = $1 ORDER BY period_end`, ticker)
}

func (r *ResearchRepo) queryRows(ctx context.Context, query string, args ...interface{}) ([]models.DatasetRow, error) {
	pool := GetPool()
	if pool == nil {
		return nil, fmt.Errorf("database pool not initialized")
	}

	rows, err := pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to load rows: %w", err)
	}
	defer rows.Close()

	var dataset []models.DatasetRow
	for rows.Next() {
		var jsonData []byte
		if err := rows.Scan(&jsonData); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		var dr models.DatasetRow
		if err := json.Unmarshal(jsonData, &dr); err != nil {
			return nil, fmt.Errorf("failed to unmarshal row: %w", err)
		}
		dataset = append(dataset, dr)
	}
	return dataset, rows.Err()
}

// SaveRunSummary records a pipeline run for later inspection.
func (r *ResearchRepo) SaveRunSummary(ctx context.Context, batchID uuid.UUID, summary interface{}, startedAt, finishedAt time.Time) error {
	pool := GetPool()
	if pool == nil {
		return fmt.Errorf("database pool not initialized")
	}

	jsonData, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("failed to marshal run summary: %w", err)
	}
	_, err = pool.Exec(ctx,
		`INSERT INTO pipeline_runs (batch_id, summary_json, started_at, finished_at)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (batch_id) DO UPDATE SET summary_json = EXCLUDED.summary_json, finished_at = EXCLUDED.finished_at`,
		batchID, jsonData, startedAt, finishedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save run summary: %w", err)
	}
	return nil
}
