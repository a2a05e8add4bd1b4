package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/omelnyk/voiceledger/internal/api/handlers"
	"github.com/omelnyk/voiceledger/internal/api/middleware"
	"github.com/omelnyk/voiceledger/internal/config"
	"github.com/omelnyk/voiceledger/internal/ledger"
	"github.com/omelnyk/voiceledger/internal/llm"
	"github.com/omelnyk/voiceledger/internal/logger"
	"github.com/omelnyk/voiceledger/internal/pipeline"
	"github.com/omelnyk/voiceledger/internal/rates"
)

func main() {
	log := logger.New()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log.Info().
		Str("port", cfg.Port).
		Str("model", cfg.ModelName).
		Str("sheet_id", cfg.SpreadsheetID).
		Str("reference_currency", cfg.ReferenceCurrency).
		Str("gemini_api_key", cfg.MaskedAPIKey()).
		Msg("Configuration loaded")

	if err := cfg.MaterializeCredentials(); err != nil {
		log.Fatal().Err(err).Msg("Failed to materialize Google credentials")
	}

	ctx := context.Background()

	// Clients are constructed once here and shared read-only across requests.
	modelClient, err := llm.NewClient(ctx, cfg.GeminiAPIKey, cfg.ModelName)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create model client")
	}

	ledgerClient, err := ledger.NewClient(ctx, cfg.SpreadsheetID, cfg.SheetName, cfg.CredentialsFile)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create ledger client")
	}

	rateClient := rates.NewClient(cfg.ExchangeRateBaseURL, cfg.ExchangeRateAPIKey, cfg.OutboundTimeout)

	processor := pipeline.NewProcessor(modelClient, rateClient, cfg.ReferenceCurrency, log)
	transactionsHandler := handlers.NewTransactionsHandler(processor, ledgerClient, log)

	mux := http.NewServeMux()

	mux.HandleFunc("/api/expense", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			transactionsHandler.HandleTransaction(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		middleware.WriteJSON(w, http.StatusOK, map[string]string{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// Apply middleware
	handler := middleware.Recovery(log)(
		middleware.Logger(log)(
			middleware.RequestID(
				middleware.CORS(mux),
			),
		),
	)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting webhook server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}
