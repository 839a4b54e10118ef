package cse

import (
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ==========================================================================
// HTML fallback scraper
// ==========================================================================
//
// The JSON API is occasionally gated or returns empty payloads for symbols
// the website itself renders fine. When that happens we fall back to parsing
// the public company pages directly.

// ScrapeCompanyList pulls the listed-company table from the listing page.
// Returns symbol -> display name.
func (c *Client) ScrapeCompanyList(ctx context.Context) (map[string]string, error) {
	doc, err := c.fetchHTML(ctx, "/home/listed-companies")
	if err != nil {
		return nil, err
	}

	companies := make(map[string]string)
	doc.Find("table tbody tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() < 2 {
			return
		}
		name := strings.TrimSpace(cells.Eq(0).Text())
		symbol := strings.TrimSpace(cells.Eq(1).Text())
		if symbol != "" && name != "" {
			companies[symbol] = name
		}
	})
	if len(companies) == 0 {
		return nil, fmt.Errorf("company listing page yielded no rows")
	}
	return companies, nil
}

// ScrapeDocumentLinks extracts PDF links from a company's profile page as a
// fallback when the announcements API returns nothing.
func (c *Client) ScrapeDocumentLinks(ctx context.Context, symbol string) ([]Document, error) {
	path := "/home/company-info/" + symbol + "/financial"
	doc, err := c.fetchHTML(ctx, path)
	if err != nil {
		return nil, err
	}

	var docs []Document
	seen := make(map[string]bool)
	doc.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		if !strings.HasSuffix(strings.ToLower(href), ".pdf") || seen[href] {
			return
		}
		title := strings.TrimSpace(a.Text())
		if title == "" {
			title = hrefBasename(href)
		}
		if !isFinancialTitle(title) && !isFinancialTitle(href) {
			return
		}
		seen[href] = true
		docs = append(docs, Document{Title: title, URL: c.absoluteURL(href)})
	})
	return docs, nil
}

func (c *Client) fetchHTML(ctx context.Context, path string) (*goquery.Document, error) {
	c.throttle()
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Accept", "text/html,application/xhtml+xml").
		Get(path)
	if err != nil {
		return nil, fmt.Errorf("cse %s: %w", path, err)
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("cse %s: status %d", path, resp.StatusCode())
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(resp.Body())))
	if err != nil {
		return nil, fmt.Errorf("cse %s: parse html: %w", path, err)
	}
	return doc, nil
}

func (c *Client) absoluteURL(href string) string {
	if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return href
	}
	return strings.TrimRight(c.baseURL, "/") + "/" + strings.TrimLeft(href, "/")
}

func hrefBasename(href string) string {
	if i := strings.LastIndex(href, "/"); i >= 0 {
		return href[i+1:]
	}
	return href
}
