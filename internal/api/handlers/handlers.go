package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/omelnyk/voiceledger/internal/api/middleware"
	"github.com/omelnyk/voiceledger/internal/ledger"
	"github.com/omelnyk/voiceledger/internal/pipeline"
)

// TransactionProcessor runs the text-to-record pipeline.
type TransactionProcessor interface {
	Process(ctx context.Context, text string) pipeline.Result
}

// LedgerStore appends assembled rows to the external ledger.
type LedgerStore interface {
	Append(ctx context.Context, row ledger.Row) error
}

// TransactionsHandler handles the transaction webhook endpoint.
type TransactionsHandler struct {
	processor TransactionProcessor
	store     LedgerStore
	log       zerolog.Logger
}

// NewTransactionsHandler creates a new transactions handler.
func NewTransactionsHandler(processor TransactionProcessor, store LedgerStore, log zerolog.Logger) *TransactionsHandler {
	return &TransactionsHandler{
		processor: processor,
		store:     store,
		log:       log,
	}
}

type transactionRequest struct {
	Text string `json:"text"`
}

type transactionResponse struct {
	Status          string                   `json:"status"`
	TransactionType pipeline.TransactionKind `json:"transaction_type"`
	Row             []interface{}            `json:"row"`
	Message         string                   `json:"message"`
}

// HandleTransaction handles POST /api/expense: runs the pipeline over the
// submitted text and appends the resulting row to the ledger. Only two
// failure classes surface here as errors (extraction and persistence); the
// pipeline absorbs everything else.
func (h *TransactionsHandler) HandleTransaction(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req transactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Text == "" {
		middleware.WriteError(w, http.StatusBadRequest, "Empty text")
		return
	}

	res := h.processor.Process(ctx, req.Text)
	if res.Failed() {
		h.log.Error().
			Str("kind", string(res.Kind)).
			Str("error", res.Err).
			Msg("Pipeline failed")
		middleware.WriteError(w, http.StatusInternalServerError, res.Err)
		return
	}

	row := pipeline.AssembleRow(res)
	if err := h.store.Append(ctx, row); err != nil {
		h.log.Error().Err(err).Str("anchor", row.Anchor).Msg("Failed to append row to ledger")
		middleware.WriteError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to write to ledger: %v", err))
		return
	}

	h.log.Info().
		Str("kind", string(res.Kind)).
		Str("anchor", row.Anchor).
		Msg("Row appended to ledger")

	middleware.WriteJSON(w, http.StatusOK, transactionResponse{
		Status:          "ok",
		TransactionType: res.Kind,
		Row:             row.Values,
		Message:         fmt.Sprintf("Successfully added %s: %s", res.Kind, req.Text),
	})
}
