// Command extract runs statement extraction on one local PDF and prints the
// result as JSON, for inspecting how a particular annual report parses.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"os"

	"github.com/rs/zerolog"

	"cse_research/pkg/core/report"
)

func main() {
	var (
		path   = flag.String("pdf", "", "path to the report PDF")
		ticker = flag.String("ticker", "UNKNOWN", "symbol to stamp on extracted periods")
	)
	flag.Parse()
	if *path == "" {
		flag.Usage()
		os.Exit(2)
	}

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(zerolog.DebugLevel).
		With().Timestamp().Logger()

	extractor := report.NewExtractor(log)
	extraction, err := extractor.ExtractDocument(context.Background(), *path, *ticker)
	if err != nil {
		log.Fatal().Err(err).Msg("extraction failed")
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(extraction); err != nil {
		log.Fatal().Err(err).Msg("encode failed")
	}
}
