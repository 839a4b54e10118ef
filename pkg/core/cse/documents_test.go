package cse

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
)

func TestDownloadDocumentCaches(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.Header().Set("Content-Type", "application/pdf")
		w.Write([]byte("%PDF-1.4 fake"))
	}))
	defer srv.Close()

	client := testClient(srv.URL)
	cacheDir := t.TempDir()
	doc := Document{Title: "Annual Report 2024", URL: srv.URL + "/reports/ar.pdf"}

	path, err := client.DownloadDocument(context.Background(), "JKH.N0000", doc, cacheDir)
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Dir(path) != filepath.Join(cacheDir, "JKH.N0000") {
		t.Errorf("cached under %s", path)
	}
	if info, err := os.Stat(path); err != nil || info.Size() == 0 {
		t.Fatalf("cached file missing: %v", err)
	}

	// Second call must hit the cache, not the server.
	if _, err := client.DownloadDocument(context.Background(), "JKH.N0000", doc, cacheDir); err != nil {
		t.Fatal(err)
	}
	if got := atomic.LoadInt32(&hits); got != 1 {
		t.Errorf("server hits = %d, want 1", got)
	}
}

func TestDownloadDocumentFailureLeavesNoFile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	client := testClient(srv.URL)
	cacheDir := t.TempDir()
	doc := Document{Title: "Missing", URL: srv.URL + "/gone.pdf"}

	if _, err := client.DownloadDocument(context.Background(), "X.N0000", doc, cacheDir); err == nil {
		t.Fatal("expected error for 404")
	}
	leftover := filepath.Join(cacheDir, "X.N0000", "Missing.pdf")
	if _, err := os.Stat(leftover); !os.IsNotExist(err) {
		t.Error("failed download should not leave a cache file")
	}
}
