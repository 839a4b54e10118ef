// Package cse talks to the Colombo Stock Exchange website: the JSON API the
// site's own frontend uses, plus an HTML fallback scraper and the report PDF
// downloader. It is the acquisition boundary; nothing in here interprets
// financial statements.
package cse

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	jsonrepair "github.com/RealAlexandreAI/json-repair"
	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"

	"cse_research/pkg/core/config"
	"cse_research/pkg/models"
)

// Client wraps the CSE JSON endpoints with retry, throttling and tolerant
// decoding. The site's API occasionally serves truncated or sloppy JSON;
// responses that fail a strict decode get one repair attempt before the
// request is considered failed.
type Client struct {
	http        *resty.Client
	baseURL     string
	delay       time.Duration
	lastRequest time.Time
	log         zerolog.Logger
}

// NewClient builds a client from settings.
func NewClient(cfg config.CSESettings, log zerolog.Logger) *Client {
	http := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.RequestTimeout()).
		SetRetryCount(cfg.MaxRetries).
		SetRetryWaitTime(2*time.Second).
		SetHeader("User-Agent", cfg.UserAgent).
		SetHeader("Accept", "application/json, text/plain, */*").
		SetHeader("Referer", cfg.BaseURL).
		SetHeader("Origin", cfg.BaseURL)

	return &Client{
		http:    http,
		baseURL: cfg.BaseURL,
		delay:   cfg.RequestDelay(),
		log:     log.With().Str("component", "cse-client").Logger(),
	}
}

// tradeSummaryEntry mirrors the relevant keys of /api/tradeSummary rows.
type tradeSummaryEntry struct {
	Symbol           string  `json:"symbol"`
	Name             string  `json:"name"`
	Price            float64 `json:"price"`
	ChangePercentage float64 `json:"changePercentage"`
	ShareVolume      float64 `json:"sharevolume"`
	MarketCap        float64 `json:"marketCap"`
}

// companyProfile mirrors /api/companyInfoSummery.
type companyProfile struct {
	SymbolInfo struct {
		Symbol           string  `json:"symbol"`
		Name             string  `json:"name"`
		Sector           string  `json:"sectorName"`
		LastTradedPrice  float64 `json:"lastTradedPrice"`
		ChangePercentage float64 `json:"changePercentage"`
		MarketCap        float64 `json:"marketCap"`
		SharesIssued     float64 `json:"numberOfSharesIssued"`
		EPS              float64 `json:"eps"`
		PER              float64 `json:"per"`
		PBV              float64 `json:"pbv"`
		NAV              float64 `json:"nav"`
		DividendYield    float64 `json:"dividendYield"`
		DPS              float64 `json:"dividendPerShare"`
		High52Week       float64 `json:"hiTradePrice52Wk"`
		Low52Week        float64 `json:"lowTradePrice52Wk"`
	} `json:"reqSymbolInfo"`
}

// announcement is one row of the company filings feed.
type announcement struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	Link        string `json:"link"`
	Date        string `json:"date"`
}

// Document is a downloadable company report reference.
type Document struct {
	Title string
	URL   string
	Date  string
}

// TradeSummary fetches the market-wide trade summary as quotes.
func (c *Client) TradeSummary(ctx context.Context) ([]models.MarketQuote, error) {
	var payload struct {
		ReqTradeSummery []tradeSummaryEntry `json:"reqTradeSummery"`
	}
	if err := c.post(ctx, "/api/tradeSummary", nil, &payload); err != nil {
		return nil, err
	}

	now := time.Now()
	quotes := make([]models.MarketQuote, 0, len(payload.ReqTradeSummery))
	for _, e := range payload.ReqTradeSummery {
		if e.Symbol == "" {
			continue
		}
		quotes = append(quotes, models.MarketQuote{
			Ticker:        e.Symbol,
			Name:          e.Name,
			Price:         e.Price,
			ChangePercent: e.ChangePercentage,
			Volume:        e.ShareVolume,
			MarketCap:     e.MarketCap,
			AsOf:          now,
		})
	}
	c.log.Info().Int("quotes", len(quotes)).Msg("trade summary fetched")
	return quotes, nil
}

// CompanyQuote fetches the detailed profile for one symbol.
func (c *Client) CompanyQuote(ctx context.Context, symbol string) (*models.MarketQuote, error) {
	var payload companyProfile
	if err := c.post(ctx, "/api/companyInfoSummery", map[string]string{"symbol": symbol}, &payload); err != nil {
		return nil, err
	}
	info := payload.SymbolInfo
	if info.Symbol == "" {
		return nil, fmt.Errorf("empty profile for %s", symbol)
	}
	return &models.MarketQuote{
		Ticker:            info.Symbol,
		Name:              info.Name,
		Sector:            info.Sector,
		Price:             info.LastTradedPrice,
		ChangePercent:     info.ChangePercentage,
		MarketCap:         info.MarketCap,
		SharesOutstanding: info.SharesIssued,
		EPS:               info.EPS,
		PERatio:           info.PER,
		PBRatio:           info.PBV,
		NAV:               info.NAV,
		DividendYield:     info.DividendYield,
		DividendPerShare:  info.DPS,
		High52Week:        info.High52Week,
		Low52Week:         info.Low52Week,
		AsOf:              time.Now(),
	}, nil
}

// FinancialDocuments lists a company's published financial report PDFs.
// Non-financial announcements are filtered out by title keywords.
func (c *Client) FinancialDocuments(ctx context.Context, symbol string) ([]Document, error) {
	var payload struct {
		Data []announcement `json:"data"`
	}
	if err := c.post(ctx, "/api/companyAnnouncements", map[string]string{"symbol": symbol}, &payload); err != nil {
		return nil, err
	}

	var docs []Document
	for _, a := range payload.Data {
		url := a.URL
		if url == "" {
			url = a.Link
		}
		if url == "" || !isFinancialTitle(a.Title+" "+a.Description) {
			continue
		}
		docs = append(docs, Document{Title: a.Title, URL: url, Date: a.Date})
	}
	return docs, nil
}

var financialTitleKeywords = []string{
	"annual report", "financial", "quarterly", "interim",
	"accounts", "statement", "balance sheet",
}

func isFinancialTitle(title string) bool {
	t := strings.ToLower(title)
	for _, kw := range financialTitleKeywords {
		if strings.Contains(t, kw) {
			return true
		}
	}
	return false
}

// post issues a throttled POST and decodes the response, attempting JSON
// repair when the strict decode fails.
func (c *Client) post(ctx context.Context, path string, body interface{}, out interface{}) error {
	c.throttle()

	req := c.http.R().SetContext(ctx)
	if body != nil {
		req.SetBody(body)
	} else {
		req.SetBody(map[string]string{})
	}

	resp, err := req.Post(path)
	if err != nil {
		return fmt.Errorf("cse %s: %w", path, err)
	}
	if resp.StatusCode() != 200 {
		return fmt.Errorf("cse %s: status %d", path, resp.StatusCode())
	}

	raw := resp.Body()
	if err := json.Unmarshal(raw, out); err == nil {
		return nil
	}

	repaired, repairErr := jsonrepair.RepairJSON(string(raw))
	if repairErr != nil {
		return fmt.Errorf("cse %s: undecodable response", path)
	}
	if err := json.Unmarshal([]byte(repaired), out); err != nil {
		return fmt.Errorf("cse %s: decode after repair: %w", path, err)
	}
	c.log.Debug().Str("path", path).Msg("response decoded after JSON repair")
	return nil
}

// throttle enforces the polite delay between any two requests.
func (c *Client) throttle() {
	if c.delay <= 0 {
		return
	}
	elapsed := time.Since(c.lastRequest)
	if elapsed < c.delay {
		time.Sleep(c.delay - elapsed)
	}
	c.lastRequest = time.Now()
}
