package reports

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"cse_research/pkg/core/export"
	"cse_research/pkg/core/store"
)

var (
	repo *store.ResearchRepo
	// tables in the report body need GFM
	md = goldmark.New(goldmark.WithExtensions(extension.GFM))
)

// InitHandler wires the repository.
func InitHandler(r *store.ResearchRepo) {
	repo = r
}

func cors(w http.ResponseWriter, r *http.Request) bool {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return true
	}
	return false
}

type reportRequest struct {
	Ticker string `json:"ticker"`
	Format string `json:"format,omitempty"` // markdown (default) or html
}

// HandleReport builds the analyst report for a company on demand.
func HandleReport(w http.ResponseWriter, r *http.Request) {
	if cors(w, r) {
		return
	}
	if repo == nil {
		http.Error(w, "no database configured", http.StatusServiceUnavailable)
		return
	}

	var req reportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	ticker := strings.ToUpper(strings.TrimSpace(req.Ticker))
	if ticker == "" {
		http.Error(w, "ticker is required", http.StatusBadRequest)
		return
	}

	rows, err := repo.LoadRows(r.Context(), ticker)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if len(rows) == 0 {
		http.Error(w, "no data for "+ticker, http.StatusNotFound)
		return
	}

	markdown := export.BuildReport(rows)
	if req.Format == "html" {
		var buf bytes.Buffer
		if err := md.Convert([]byte(markdown), &buf); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write(buf.Bytes())
		return
	}

	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.Write([]byte(markdown))
}
