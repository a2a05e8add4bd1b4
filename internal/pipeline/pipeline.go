package pipeline

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/omelnyk/voiceledger/internal/llm"
	"github.com/omelnyk/voiceledger/internal/logger"
)

// ModelService is the language-model boundary. The pipeline owns prompt
// construction and response parsing; transport and auth live behind this
// interface.
type ModelService interface {
	Generate(ctx context.Context, req llm.Request) (string, error)
}

// RateSource is the exchange-rate boundary. Latest returns the
// target-currency to rate table for the given base currency.
type RateSource interface {
	Latest(ctx context.Context, base string) (map[string]float64, error)
}

// Processor runs the text-to-record transformation: classify the phrase,
// extract structured fields, normalize the amount into the reference
// currency and stamp the capture time. Constructed once at startup; holds
// no per-request state.
type Processor struct {
	model       ModelService
	rates       RateSource
	refCurrency string
	log         zerolog.Logger

	now func() time.Time
}

// NewProcessor wires the pipeline to its external collaborators.
func NewProcessor(model ModelService, rates RateSource, referenceCurrency string, log zerolog.Logger) *Processor {
	return &Processor{
		model:       model,
		rates:       rates,
		refCurrency: strings.ToUpper(referenceCurrency),
		log:         logger.WithComponent(log, "pipeline"),
		now:         time.Now,
	}
}

// Process turns a free-text statement into a Result. The stages run
// strictly in sequence; each failure mode degrades the way its stage
// defines rather than aborting the request. The returned Result is either
// a normalized record or a designed error value (Failed() reports which).
func (p *Processor) Process(ctx context.Context, text string) Result {
	p.log.Info().Str("text", text).Msg("Processing transaction text")

	kind := p.classify(ctx, text)

	fields, failure := p.extract(ctx, text, kind)
	if failure != nil {
		failure.Timestamp = p.now()
		return *failure
	}

	amount, currency := p.normalize(ctx, fields.Amount, fields.Currency)

	res := Result{
		Kind:      fields.Kind,
		Amount:    amount,
		Currency:  currency,
		Timestamp: p.now(),
	}
	switch {
	case fields.Expense != nil:
		res.Category = fields.Expense.Category
		res.Description = fields.Expense.Description
	case fields.Income != nil:
		res.Source = fields.Income.Source
	}

	p.log.Info().
		Str("kind", string(res.Kind)).
		Str("currency", res.Currency).
		Msg("Transaction processed")

	return res
}
