package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/omelnyk/voiceledger/internal/config"
	"github.com/omelnyk/voiceledger/internal/ledger"
	"github.com/omelnyk/voiceledger/internal/llm"
	"github.com/omelnyk/voiceledger/internal/logger"
	"github.com/omelnyk/voiceledger/internal/pipeline"
	"github.com/omelnyk/voiceledger/internal/rates"
)

// One-shot pipeline runner for local debugging: processes a single phrase
// and prints the result and the row it would append. With -append the row
// is actually written to the ledger.
func main() {
	var (
		text     = flag.String("text", "", "transaction phrase to process")
		doAppend = flag.Bool("append", false, "append the resulting row to the ledger")
	)
	flag.Parse()

	log := logger.New()

	if *text == "" {
		fmt.Fprintln(os.Stderr, "usage: cli -text \"Bought coffee for 15 PLN\" [-append]")
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	if err := cfg.MaterializeCredentials(); err != nil {
		log.Fatal().Err(err).Msg("Failed to materialize Google credentials")
	}

	ctx := context.Background()

	modelClient, err := llm.NewClient(ctx, cfg.GeminiAPIKey, cfg.ModelName)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create model client")
	}

	rateClient := rates.NewClient(cfg.ExchangeRateBaseURL, cfg.ExchangeRateAPIKey, cfg.OutboundTimeout)
	processor := pipeline.NewProcessor(modelClient, rateClient, cfg.ReferenceCurrency, log)

	res := processor.Process(ctx, *text)
	if res.Failed() {
		log.Fatal().Str("error", res.Err).Msg("Pipeline failed")
	}

	row := pipeline.AssembleRow(res)

	out, _ := json.MarshalIndent(map[string]interface{}{
		"result": res,
		"anchor": row.Anchor,
		"row":    row.Values,
	}, "", "  ")
	fmt.Println(string(out))

	if !*doAppend {
		return
	}

	ledgerClient, err := ledger.NewClient(ctx, cfg.SpreadsheetID, cfg.SheetName, cfg.CredentialsFile)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create ledger client")
	}
	if err := ledgerClient.Append(ctx, row); err != nil {
		log.Fatal().Err(err).Msg("Failed to append row")
	}
	log.Info().Str("anchor", row.Anchor).Msg("Row appended to ledger")
}
