package companies

import (
	"encoding/json"
	"net/http"
	"strings"

	"cse_research/pkg/core/store"
	"cse_research/pkg/data"
)

var repo *store.ResearchRepo

// InitHandler wires the repository. A nil repo serves the built-in universe
// only.
func InitHandler(r *store.ResearchRepo) {
	repo = r
}

func cors(w http.ResponseWriter, r *http.Request) bool {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return true
	}
	return false
}

type companyEntry struct {
	Symbol   string `json:"symbol"`
	Name     string `json:"name,omitempty"`
	Sector   string `json:"sector,omitempty"`
	Analyzed bool   `json:"analyzed"`
}

// HandleList returns the known universe, flagging companies with stored
// research.
func HandleList(w http.ResponseWriter, r *http.Request) {
	if cors(w, r) {
		return
	}

	analyzed := make(map[string]bool)
	if repo != nil {
		if tickers, err := repo.ListTickers(r.Context()); err == nil {
			for _, t := range tickers {
				analyzed[t] = true
			}
		}
	}

	entries := make([]companyEntry, 0, len(data.DefaultUniverse))
	seen := make(map[string]bool)
	for _, c := range data.DefaultUniverse {
		entries = append(entries, companyEntry{
			Symbol:   c.Symbol,
			Name:     c.Name,
			Sector:   c.Sector,
			Analyzed: analyzed[c.Symbol],
		})
		seen[c.Symbol] = true
	}
	for symbol := range analyzed {
		if !seen[symbol] {
			entries = append(entries, companyEntry{Symbol: symbol, Analyzed: true})
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(entries)
}

type companyRequest struct {
	Ticker string `json:"ticker"`
}

// HandleCompany returns one company's full record and flattened rows.
func HandleCompany(w http.ResponseWriter, r *http.Request) {
	if cors(w, r) {
		return
	}
	if repo == nil {
		http.Error(w, "no database configured", http.StatusServiceUnavailable)
		return
	}

	var req companyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	ticker := strings.ToUpper(strings.TrimSpace(req.Ticker))
	if ticker == "" {
		http.Error(w, "ticker is required", http.StatusBadRequest)
		return
	}

	record, err := repo.LoadRecord(r.Context(), ticker)
	if err != nil {
		http.Error(w, "company not found: "+ticker, http.StatusNotFound)
		return
	}
	rows, err := repo.LoadRows(r.Context(), ticker)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"record": record,
		"rows":   rows,
	})
}
