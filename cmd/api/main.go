package main

import (
	"context"
	"flag"
	"net/http"
	"os"

	"github.com/rs/zerolog"

	"cse_research/pkg/api/companies"
	"cse_research/pkg/api/reports"
	"cse_research/pkg/api/screener"
	"cse_research/pkg/core/config"
	"cse_research/pkg/core/screen"
	"cse_research/pkg/core/store"
)

func main() {
	var (
		configPath = flag.String("config", "config/settings.yaml", "settings file")
		addr       = flag.String("addr", ":8090", "listen address")
	)
	flag.Parse()

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		With().Timestamp().Logger()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("could not load settings")
	}

	var repo *store.ResearchRepo
	if err := store.InitDB(context.Background(), cfg.DatabaseURL); err != nil {
		log.Warn().Err(err).Msg("database unavailable, serving static universe only")
	} else {
		repo = store.NewResearchRepo()
		defer store.Close()
	}

	strategies, err := screen.LoadStrategies(cfg.Dirs.Strategies)
	if err != nil {
		log.Fatal().Err(err).Msg("could not load strategies")
	}
	log.Info().Int("strategies", len(strategies)).Msg("strategies loaded")

	companies.InitHandler(repo)
	screener.InitHandler(repo, strategies)
	reports.InitHandler(repo)

	http.HandleFunc("/api/companies", companies.HandleList)
	http.HandleFunc("/api/company", companies.HandleCompany)
	http.HandleFunc("/api/screener/strategies", screener.HandleStrategies)
	http.HandleFunc("/api/screener/run", screener.HandleScreen)
	http.HandleFunc("/api/report", reports.HandleReport)

	log.Info().Str("addr", *addr).Msg("api listening")
	if err := http.ListenAndServe(*addr, nil); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
