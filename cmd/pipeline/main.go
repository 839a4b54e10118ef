package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/rs/zerolog"

	"cse_research/pkg/core/config"
	"cse_research/pkg/core/cse"
	"cse_research/pkg/core/pipeline"
	"cse_research/pkg/core/store"
	"cse_research/pkg/data"
)

func main() {
	var (
		configPath = flag.String("config", "config/settings.yaml", "settings file")
		symbolList = flag.String("symbols", "", "comma separated symbols (default: built-in universe)")
		limit      = flag.Int("limit", 0, "process at most N companies")
		noDB       = flag.Bool("no-db", false, "skip database persistence, write files only")
		verbose    = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	level := zerolog.InfoLevel
	if *verbose {
		level = zerolog.DebugLevel
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("could not load settings")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var repo pipeline.Repository
	if !*noDB {
		if err := store.InitDB(ctx, cfg.DatabaseURL); err != nil {
			log.Warn().Err(err).Msg("database unavailable, continuing without persistence")
		} else {
			repo = store.NewResearchRepo()
			defer store.Close()
		}
	}

	symbols := data.DefaultSymbols()
	if *symbolList != "" {
		symbols = nil
		for _, s := range strings.Split(*symbolList, ",") {
			if s = strings.TrimSpace(strings.ToUpper(s)); s != "" {
				symbols = append(symbols, s)
			}
		}
	}
	if *limit > 0 && len(symbols) > *limit {
		symbols = symbols[:*limit]
	}

	client := cse.NewClient(cfg.CSE, log)
	orchestrator := pipeline.NewOrchestrator(cfg, client, repo, log)

	summary, err := orchestrator.RunBatch(ctx, symbols)
	if err != nil {
		log.Fatal().Err(err).Msg("batch failed")
	}
	if len(summary.Failures) > 0 {
		for _, f := range summary.Failures {
			log.Warn().Str("failure", f).Msg("company not completed")
		}
		os.Exit(1)
	}
}
