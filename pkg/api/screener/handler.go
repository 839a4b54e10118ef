package screener

import (
	"encoding/json"
	"net/http"

	"cse_research/pkg/core/screen"
	"cse_research/pkg/core/store"
)

var (
	repo       *store.ResearchRepo
	strategies map[string]*screen.Strategy
)

// InitHandler wires the repository and the loaded strategy set.
func InitHandler(r *store.ResearchRepo, s map[string]*screen.Strategy) {
	repo = r
	strategies = s
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

// HandleStrategies lists the available strategy names.
func HandleStrategies(w http.ResponseWriter, r *http.Request) {
	if cors(w, r) {
		return
	}
	type entry struct {
		Name        string `json:"name"`
		Description string `json:"description,omitempty"`
		Criteria    int    `json:"criteria"`
	}
	var out []entry
	for _, name := range screen.StrategyNames(strategies) {
		s := strategies[name]
		out = append(out, entry{Name: s.Name, Description: s.Description, Criteria: len(s.Criteria)})
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(out)
}

type screenRequest struct {
	Strategy string             `json:"strategy"`
	Custom   []screen.Criterion `json:"custom,omitempty"` // overrides Strategy when set
	Top      int                `json:"top,omitempty"`
}

// HandleScreen runs a strategy (built-in, loaded, or ad hoc) over each
// company's latest period and returns the ranked survivors.
func HandleScreen(w http.ResponseWriter, r *http.Request) {
	if cors(w, r) {
		return
	}
	if repo == nil {
		http.Error(w, "no database configured", http.StatusServiceUnavailable)
		return
	}

	var req screenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var strategy *screen.Strategy
	if len(req.Custom) > 0 {
		strategy = &screen.Strategy{Name: "custom", Criteria: req.Custom}
	} else {
		var ok bool
		strategy, ok = strategies[req.Strategy]
		if !ok {
			http.Error(w, "unknown strategy: "+req.Strategy, http.StatusBadRequest)
			return
		}
	}

	all, err := repo.LoadAllRows(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	latest := screen.LatestPerTicker(all)

	passed, err := screen.Run(latest, strategy)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	ranked := screen.TopN(screen.Rank(passed, strategy), req.Top)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"strategy": strategy.Name,
		"universe": len(latest),
		"matches":  len(passed),
		"results":  ranked,
	})
}
