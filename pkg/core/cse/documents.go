package cse

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// ==========================================================================
// Report PDF downloads
// ==========================================================================

var unsafePathChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// cacheFileName derives a stable on-disk name from a document title or URL.
func cacheFileName(d Document) string {
	base := d.Title
	if base == "" {
		base = hrefBasename(d.URL)
	}
	base = unsafePathChars.ReplaceAllString(strings.TrimSpace(base), "_")
	base = strings.Trim(base, "_")
	if base == "" {
		base = "report"
	}
	if !strings.HasSuffix(strings.ToLower(base), ".pdf") {
		base += ".pdf"
	}
	return base
}

// DownloadDocument saves one report PDF under cacheDir/<symbol>/ and returns
// the local path. Already-cached files are not re-fetched.
func (c *Client) DownloadDocument(ctx context.Context, symbol string, d Document, cacheDir string) (string, error) {
	dir := filepath.Join(cacheDir, unsafePathChars.ReplaceAllString(symbol, "_"))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create cache dir: %w", err)
	}
	path := filepath.Join(dir, cacheFileName(d))

	if info, err := os.Stat(path); err == nil && info.Size() > 0 {
		c.log.Debug().Str("path", path).Msg("document already cached")
		return path, nil
	}

	c.throttle()
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Accept", "application/pdf,*/*").
		SetOutput(path).
		Get(d.URL)
	if err != nil {
		return "", fmt.Errorf("download %s: %w", d.URL, err)
	}
	if resp.StatusCode() != 200 {
		os.Remove(path)
		return "", fmt.Errorf("download %s: status %d", d.URL, resp.StatusCode())
	}

	info, err := os.Stat(path)
	if err != nil || info.Size() == 0 {
		os.Remove(path)
		return "", fmt.Errorf("download %s: empty file", d.URL)
	}
	c.log.Info().Str("symbol", symbol).Str("path", path).Int64("bytes", info.Size()).Msg("document downloaded")
	return path, nil
}

// DownloadAll fetches every document, skipping individual failures so one
// bad link does not stop a company's batch.
func (c *Client) DownloadAll(ctx context.Context, symbol string, docs []Document, cacheDir string) []string {
	var paths []string
	for _, d := range docs {
		if ctx.Err() != nil {
			break
		}
		path, err := c.DownloadDocument(ctx, symbol, d, cacheDir)
		if err != nil {
			c.log.Warn().Err(err).Str("symbol", symbol).Str("title", d.Title).Msg("document download failed")
			continue
		}
		paths = append(paths, path)
	}
	return paths
}
